// Package assets provides the markdown CV starter templates and the web
// upload page.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader only when the asset is not found there. All three also
// implement TemplateLister; ListTemplates merges what a loader offers.
//
// # Directory Structure
//
//	{basePath}/
//	├── templates/
//	│   └── {name}.md    # CV starter template (e.g., cv.md)
//	└── web/
//	    └── {name}.html  # Web page (e.g., index.html)
//
// # Security
//
// Asset names are limited to [A-Za-z0-9_-], at most 64 characters.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
