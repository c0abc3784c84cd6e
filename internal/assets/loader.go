package assets

// AssetLoader loads CV templates and web pages by bare name.
// Unknown names return ErrTemplateNotFound or ErrPageNotFound; names
// rejected by ValidateAssetName return ErrInvalidAssetName.
type AssetLoader interface {
	LoadTemplate(name string) (string, error)
	LoadPage(name string) (string, error)
}

// TemplateLister is implemented by loaders that can enumerate templates.
type TemplateLister interface {
	TemplateNames() []string
}

// ListTemplates returns the templates loader offers, or nil when it
// cannot enumerate them.
func ListTemplates(loader AssetLoader) []string {
	if l, ok := loader.(TemplateLister); ok {
		return l.TemplateNames()
	}
	return nil
}
