// Package scaffold writes a starter site configuration for the siteconf CLI.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the template variables passed to every scaffold template.
type Data struct {
	Title    string
	Website  string
	Author   string
	Timezone string
}

// file is one template and the path it renders to.
type file struct {
	src string
	out string
}

// Write renders every template into dir and returns the paths it created.
// Unless force is set, nothing is written when any target already exists.
func Write(dir string, data Data, force bool) ([]string, error) {
	files, err := plan(dir)
	if err != nil {
		return nil, err
	}

	if !force {
		for _, f := range files {
			if _, err := os.Stat(f.out); err == nil {
				return nil, fmt.Errorf("%s already exists (use --force to overwrite)", f.out)
			}
		}
	}

	var created []string
	for _, f := range files {
		if err := render(f, data); err != nil {
			return created, err
		}
		created = append(created, f.out)
	}
	return created, nil
}

// plan walks the embedded templates and creates the output directories.
func plan(dir string) ([]file, error) {
	const root = "templates"
	var files []file

	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		// Strip the .tmpl suffix.
		outPath := filepath.Join(dir, relPath)
		outPath = strings.TrimSuffix(outPath, ".tmpl")

		// Rename dotenv to .env.example.
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}
		files = append(files, file{src: path, out: outPath})
		return nil
	})
	return files, err
}

func render(f file, data Data) error {
	content, err := Templates.ReadFile(f.src)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.src, err)
	}

	tmpl, err := template.New(filepath.Base(f.src)).Parse(string(content))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", f.src, err)
	}

	out, err := os.Create(f.out)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.out, err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("execute template %s: %w", f.src, err)
	}
	return out.Close()
}
