package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	md2cv "github.com/alnah/go-md2cv"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// generateResponse is the body of a successful POST /api/generate.
type generateResponse struct {
	Success     bool   `json:"success"`
	Filename    string `json:"filename"`
	Message     string `json:"message"`
	DownloadURL string `json:"downloadUrl"`
	GeneratedAt string `json:"generatedAt"`
}

// previewResponse is the body of a successful POST /api/preview.
type previewResponse struct {
	HTML string `json:"html"`
}

// healthResponse is the body of GET /api/health.
type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"` // seconds
}

// respondError writes an error body, hiding details in production.
func (s *Server) respondError(c *gin.Context, status int, msg string, err error) {
	body := errorResponse{Error: msg}
	if err != nil {
		_ = c.Error(err)
		if !s.cfg.Production() || status < http.StatusInternalServerError {
			body.Details = err.Error()
		}
	}
	c.AbortWithStatusJSON(status, body)
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, md2cv.ErrInput):
		return http.StatusBadRequest
	case errors.Is(err, md2cv.ErrRenderTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, md2cv.ErrEngineLaunch):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
