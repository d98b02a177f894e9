// Package templates provides the embedded C++ file templates and their renderer.
//
// Overview:
//   - Responsibility: Load, parse and execute the header/source templates compiled into the binary
//   - Key Types: Loader (parsed-template cache)
//   - Concurrency Model: Loader is safe for concurrent use; parsed templates are cached under a mutex
//   - Error Semantics: Load and execute errors carry the template path
//   - Performance Notes: Each template is parsed once per Loader
//
// Usage:
//
//	loader := templates.NewLoader()
//	content, err := loader.LoadAndRender(templates.ClassHeader, data)
package templates

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"
	"text/template"
)

//go:embed templates/*
var templateFS embed.FS

// Template paths relative to the templates directory.
const (
	ClassHeader = "class.hpp.tmpl"
	ClassSource = "class.cpp.tmpl"
)

// Loader reads embedded templates and caches their parsed form.
type Loader struct {
	templateDir string

	mu     sync.Mutex
	parsed map[string]*template.Template
}

// NewLoader creates a new template loader.
//
// Parameters:
//   - None
//
// Returns:
//   - *Loader: Template loader instance
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - Minimal initialization overhead
func NewLoader() *Loader {
	return &Loader{
		templateDir: "templates",
		parsed:      make(map[string]*template.Template),
	}
}

// LoadTemplate loads a template file from the embedded filesystem.
//
// Parameters:
//   - templatePath: Path to template file relative to templates directory
//
// Returns:
//   - string: Template content
//   - error: Loading error if any
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - Embedded file system access
func (l *Loader) LoadTemplate(templatePath string) (string, error) {
	content, err := templateFS.ReadFile(l.GetTemplatePath(templatePath))
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", templatePath, err)
	}

	return string(content), nil
}

// LoadAndRender loads a template and renders it with data.
//
// Parameters:
//   - templatePath: Path to template file
//   - data: Template data
//
// Returns:
//   - string: Rendered content
//   - error: Loading or rendering error if any
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - Template parsed once, executed per call
func (l *Loader) LoadAndRender(templatePath string, data any) (string, error) {
	tmpl, err := l.lookup(templatePath)
	if err != nil {
		return "", err
	}

	out, err := execute(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", templatePath, err)
	}
	return out, nil
}

func (l *Loader) lookup(templatePath string) (*template.Template, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tmpl, ok := l.parsed[templatePath]; ok {
		return tmpl, nil
	}

	content, err := l.LoadTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	tmpl, err := newTemplate(templatePath).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	l.parsed[templatePath] = tmpl
	return tmpl, nil
}

func newTemplate(name string) *template.Template {
	return template.New(name).Option("missingkey=error")
}

func execute(tmpl *template.Template, data any) (string, error) {
	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return result.String(), nil
}

// ListTemplates lists all available template files.
//
// Parameters:
//   - None
//
// Returns:
//   - []string: List of template file paths
//   - error: Listing error if any
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - Directory traversal
func (l *Loader) ListTemplates() ([]string, error) {
	var templates []string

	err := l.walkTemplates("", func(p string) error {
		if strings.HasSuffix(p, ".tmpl") {
			templates = append(templates, p)
		}
		return nil
	})

	return templates, err
}

func (l *Loader) walkTemplates(dir string, fn func(string) error) error {
	entries, err := templateFS.ReadDir(path.Join(l.templateDir, dir))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		p := path.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := l.walkTemplates(p, fn); err != nil {
				return err
			}
		} else {
			if err := fn(p); err != nil {
				return err
			}
		}
	}

	return nil
}

// GetTemplatePath returns the full path for a template file.
// Embedded filesystems always use forward slashes.
func (l *Loader) GetTemplatePath(templatePath string) string {
	return path.Join(l.templateDir, templatePath)
}

// ValidateAllTemplates parses every embedded template.
//
// Parameters:
//   - None
//
// Returns:
//   - error: First load or parse error, if any
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - Sequential; fills the parse cache as a side effect
func (l *Loader) ValidateAllTemplates() error {
	templates, err := l.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	for _, templatePath := range templates {
		if _, err := l.lookup(templatePath); err != nil {
			return fmt.Errorf("template validation failed for %s: %w", templatePath, err)
		}
	}

	return nil
}
