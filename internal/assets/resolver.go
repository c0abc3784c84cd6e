package assets

import (
	"errors"
	"sort"
)

// AssetResolver serves assets from an optional custom directory first and
// the embedded set second. A custom asset shadows the embedded one of the
// same name; only not-found errors fall through.
type AssetResolver struct {
	custom   *FilesystemLoader // nil without --assets-dir
	embedded *EmbeddedLoader
}

// NewAssetResolver returns a resolver over customBasePath, or over the
// embedded assets alone when customBasePath is empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}
	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	if r.custom != nil {
		content, err := r.custom.LoadTemplate(name)
		if !errors.Is(err, ErrTemplateNotFound) {
			return content, err
		}
	}
	return r.embedded.LoadTemplate(name)
}

func (r *AssetResolver) LoadPage(name string) (string, error) {
	if r.custom != nil {
		content, err := r.custom.LoadPage(name)
		if !errors.Is(err, ErrPageNotFound) {
			return content, err
		}
	}
	return r.embedded.LoadPage(name)
}

// TemplateNames merges custom and embedded template names, sorted and
// without duplicates.
func (r *AssetResolver) TemplateNames() []string {
	names := r.embedded.TemplateNames()
	if r.custom == nil {
		return names
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range r.custom.TemplateNames() {
		if !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}
	sort.Strings(names)
	return names
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var (
	_ AssetLoader    = (*AssetResolver)(nil)
	_ TemplateLister = (*AssetResolver)(nil)
	_ TemplateLister = (*FilesystemLoader)(nil)
	_ TemplateLister = (*EmbeddedLoader)(nil)
)
