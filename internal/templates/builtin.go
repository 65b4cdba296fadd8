package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltinTemplates returns the built-in templates bundled with deskkit,
// ordered by name.
func LoadBuiltinTemplates() ([]Template, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin templates: %w", err)
	}

	templates := make([]Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin template %s: %w", entry.Name(), err)
		}
		tmpl, err := parseTemplate(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin template %s: %w", entry.Name(), err)
		}
		templates = append(templates, *tmpl)
	}

	sortByName(templates)
	return templates, nil
}

// LoadTemplate reads a single YAML template from disk.
func LoadTemplate(path string) (*Template, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("template path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	tmpl, err := parseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	return tmpl, nil
}

// LoadTemplatesFromDir loads all *.yaml / *.yml templates in dir. A missing
// directory yields an empty list. Files that fail to load are skipped; the
// returned error joins their failures and the good templates are still
// returned.
func LoadTemplatesFromDir(dir string) ([]Template, error) {
	if strings.TrimSpace(dir) == "" {
		return []Template{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Template{}, nil
		}
		return []Template{}, fmt.Errorf("read templates dir %s: %w", dir, err)
	}

	templates := make([]Template, 0)
	var failures []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		tmpl, err := LoadTemplate(filepath.Join(dir, entry.Name()))
		if err != nil {
			failures = append(failures, err)
			continue
		}
		templates = append(templates, *tmpl)
	}

	sortByName(templates)
	return templates, errors.Join(failures...)
}

func parseTemplate(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, err
	}

	tmpl.ID = strings.TrimSpace(tmpl.ID)
	tmpl.Name = strings.TrimSpace(tmpl.Name)
	if verr := validateOne(0, tmpl); verr != nil {
		return nil, fmt.Errorf("template %s %s", verr.Field, verr.Message)
	}
	return &tmpl, nil
}

func sortByName(templates []Template) {
	sort.SliceStable(templates, func(i, j int) bool {
		return strings.ToLower(templates[i].Name) < strings.ToLower(templates[j].Name)
	})
}
