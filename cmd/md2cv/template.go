package main

import (
	"fmt"

	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/fileutil"
)

// runTemplate writes a starter CV template to stdout or a file.
func runTemplate(args []string, env *Environment) error {
	f, names, err := parseTemplateFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	loader := env.AssetLoader
	if f.assetsDir != "" {
		resolver, err := assets.NewAssetResolver(f.assetsDir)
		if err != nil {
			return err
		}
		loader = resolver
	}

	if f.list {
		for _, name := range assets.ListTemplates(loader) {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}
	if len(names) > 1 {
		return fmt.Errorf("%w: template takes at most one name, got %d", ErrUsage, len(names))
	}

	name := assets.DefaultTemplate
	if len(names) == 1 {
		name = names[0]
	}

	content, err := loader.LoadTemplate(name)
	if err != nil {
		return err
	}

	if f.output == "" {
		_, err := fmt.Fprint(env.Stdout, content)
		return err
	}

	if err := fileutil.RequireExtension(f.output, ".md", ".markdown"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExtension, err)
	}
	if fileutil.FileExists(f.output) {
		return fmt.Errorf("%w: %s already exists", ErrOutputConflict, f.output)
	}
	if err := fileutil.WriteFileAtomic(f.output, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	fmt.Fprintf(env.Stdout, "Created %s\nNext: edit it, then run 'md2cv generate %s'\n", f.output, f.output)
	return nil
}
