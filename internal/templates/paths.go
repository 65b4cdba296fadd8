package templates

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// TemplateSearchPaths returns directories holding user default templates, in
// precedence order.
func TemplateSearchPaths(projectDir string) []string {
	paths := make([]string, 0, 2)
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".deskkit", "templates"))
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "deskkit", "templates"))
	} else if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "deskkit", "templates"))
	}

	return paths
}

// LoadDefaultTemplates builds the default set restored on first run and on
// reset: templates from the search paths first, then built-ins, with the first
// template seen for an id winning. Broken override files are logged and
// skipped; only the embedded built-ins can fail the load.
func LoadDefaultTemplates(projectDir string, logger zerolog.Logger) ([]Template, error) {
	return loadDefaultTemplates(TemplateSearchPaths(projectDir), logger)
}

func loadDefaultTemplates(paths []string, logger zerolog.Logger) ([]Template, error) {
	seen := make(map[string]struct{})
	resolved := make([]Template, 0)

	add := func(items []Template) {
		for _, tmpl := range items {
			if _, exists := seen[tmpl.ID]; exists {
				continue
			}
			seen[tmpl.ID] = struct{}{}
			resolved = append(resolved, tmpl)
		}
	}

	for _, path := range paths {
		items, err := LoadTemplatesFromDir(path)
		if err != nil {
			logger.Warn().Err(err).Str("dir", path).Msg("skipping unreadable template overrides")
		}
		add(items)
	}

	builtins, err := LoadBuiltinTemplates()
	if err != nil {
		return nil, err
	}
	add(builtins)

	return resolved, nil
}
