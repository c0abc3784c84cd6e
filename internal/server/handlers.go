package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/storage"
)

const (
	uploadField      = "markdown"
	templateFilename = "cv-template.md"

	// multipartOverhead leaves room for form fields and boundaries.
	multipartOverhead = 1 << 20
)

// artifactName matches names produced by newArtifactName.
var artifactName = regexp.MustCompile(`^cv-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.pdf$`)

var (
	errNoUpload    = errors.New("no markdown file uploaded")
	errNotMarkdown = errors.New("only markdown (.md) files are allowed")
	errTooLarge    = errors.New("file too large")
)

var endpoints = map[string]string{
	"GET /":                       "Serve main application",
	"GET /api/template":           "Download CV template (?name=, default cv)",
	"GET /api/templates":          "List CV templates",
	"POST /api/generate":          "Generate CV PDF from markdown",
	"GET /api/download/:filename": "Download generated PDF",
	"POST /api/preview":           "Preview markdown as HTML",
	"GET /api/health":             "Health check",
	"GET /api":                    "This documentation",
}

func newArtifactName() string {
	return "cv-" + uuid.New().String() + ".pdf"
}

// index handles GET /
func (s *Server) index(c *gin.Context) {
	page, err := s.assets.LoadPage(assets.IndexPage)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, "Page not available", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// apiIndex handles GET /api
func (s *Server) apiIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":      "Markdown to ATS CV Generator API",
		"version":   s.version,
		"endpoints": endpoints,
	})
}

// health handles GET /api/health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.started).Seconds(),
	})
}

// template handles GET /api/template
func (s *Server) template(c *gin.Context) {
	name := c.DefaultQuery("name", assets.DefaultTemplate)
	content, err := s.assets.LoadTemplate(name)
	switch {
	case errors.Is(err, assets.ErrInvalidAssetName):
		s.respondError(c, http.StatusBadRequest, "Invalid template name", err)
		return
	case err != nil:
		s.respondError(c, http.StatusNotFound, "Template not found", err)
		return
	}
	filename := templateFilename
	if name != assets.DefaultTemplate {
		filename = name + "-template.md"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}

// templates handles GET /api/templates
func (s *Server) templates(c *gin.Context) {
	names := assets.ListTemplates(s.assets)
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"templates": names, "default": assets.DefaultTemplate})
}

// generate handles POST /api/generate
func (s *Server) generate(c *gin.Context) {
	markdown, err := s.readUpload(c)
	if err != nil {
		s.respondUploadError(c, err)
		return
	}

	in := md2cv.Input{
		Markdown: markdown,
		Title:    strings.TrimSpace(c.PostForm("title")),
		SkipATS:  c.DefaultPostForm("optimizeATS", "true") == "false",
	}

	name := newArtifactName()
	scratchPath := filepath.Join(s.scratch, name)
	defer os.Remove(scratchPath)

	if err := s.gen.Generate(c.Request.Context(), in, scratchPath); err != nil {
		s.respondError(c, statusFor(err), "Failed to generate CV", err)
		return
	}

	data, err := os.ReadFile(scratchPath) // #nosec G304 -- generated name under scratch dir
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, "Failed to generate CV", err)
		return
	}
	if err := s.store.Save(c.Request.Context(), name, data); err != nil {
		s.respondError(c, http.StatusInternalServerError, "Failed to store CV", err)
		return
	}
	s.artifacts.track(name)

	s.logger.WithField("filename", name).Info("CV generated")
	c.JSON(http.StatusOK, generateResponse{
		Success:     true,
		Filename:    name,
		Message:     "CV generated successfully",
		DownloadURL: "/api/download/" + name,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// preview handles POST /api/preview
func (s *Server) preview(c *gin.Context) {
	markdown, err := s.readUpload(c)
	if err != nil {
		s.respondUploadError(c, err)
		return
	}

	html, err := s.gen.Parse(c.Request.Context(), markdown)
	if err != nil {
		s.respondError(c, statusFor(err), "Failed to generate preview", err)
		return
	}
	c.JSON(http.StatusOK, previewResponse{HTML: html})
}

// download handles GET /api/download/:filename
func (s *Server) download(c *gin.Context) {
	name := c.Param("filename")
	if !artifactName.MatchString(name) || !s.artifacts.tracked(name) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "File not found"})
		return
	}

	rc, err := s.store.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "File not found"})
			return
		}
		s.respondError(c, http.StatusInternalServerError, "Download failed", err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, "application/pdf", rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", name),
	})
}

// readUpload returns the uploaded markdown after size and type checks.
func (s *Server) readUpload(c *gin.Context) (string, error) {
	limit := s.cfg.MaxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	fh, err := c.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", errTooLarge
		}
		return "", errNoUpload
	}
	if fh.Size > limit {
		return "", errTooLarge
	}
	if !isMarkdown(fh) {
		return "", errNotMarkdown
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > limit {
		return "", errTooLarge
	}
	return string(data), nil
}

func (s *Server) respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errTooLarge):
		s.respondError(c, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %dMB.", s.cfg.MaxUploadMB), nil)
	case errors.Is(err, errNotMarkdown):
		s.respondError(c, http.StatusBadRequest, "Only markdown (.md) files are allowed.", nil)
	case errors.Is(err, errNoUpload):
		s.respondError(c, http.StatusBadRequest, "No markdown file uploaded", nil)
	default:
		s.respondError(c, http.StatusInternalServerError, "Upload failed", err)
	}
}

func isMarkdown(fh *multipart.FileHeader) bool {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == ".md" || ext == ".markdown" {
		return true
	}
	return strings.HasPrefix(fh.Header.Get("Content-Type"), "text/markdown")
}
