// Package render turns a parsed ClassSpec into C++ header and source text.
//
// Overview:
//   - Responsibility: Build the template view of a class and execute the embedded templates
//   - Key Types: RenderedFiles, Option
//   - Concurrency Model: Render is pure; the package-level template loader is safe for concurrent use
//   - Error Semantics: INVALID_CLASS_NAME for unusable names, INTERNAL for template failures
//   - Performance Notes: Templates are parsed once per process
//
// Usage:
//
//	files, err := render.Render(spec, render.WithIncludes([]string{"iostream"}))
//	fmt.Print(files.Header)
package render

import (
	"strings"

	"go.eggybyte.com/classgen/core/errors"
	"go.eggybyte.com/classgen/internal/decl"
	"go.eggybyte.com/classgen/internal/templates"
)

// DefaultIncludes are emitted when no WithIncludes option is given.
var DefaultIncludes = []string{"iostream", "string"}

var loader = templates.NewLoader()

// RenderedFiles holds the generated text for one class.
type RenderedFiles struct {
	ClassName string
	Header    string
	Source    string
}

// HeaderName returns "<ClassName>.hpp".
func (f *RenderedFiles) HeaderName() string { return f.ClassName + ".hpp" }

// SourceName returns "<ClassName>.cpp".
func (f *RenderedFiles) SourceName() string { return f.ClassName + ".cpp" }

type options struct {
	includes []string
}

// Option configures Render.
type Option func(*options)

// WithIncludes replaces the default include list. Bare names are wrapped in
// angle brackets; entries already quoted or bracketed are kept as is. An
// empty list omits the include block.
func WithIncludes(includes []string) Option {
	return func(o *options) {
		o.includes = append([]string{}, includes...)
	}
}

// Render produces the header and source text for spec.
func Render(spec *decl.ClassSpec, opts ...Option) (*RenderedFiles, error) {
	if spec == nil {
		return nil, errors.New(errors.CodeInvalidArgument, "class spec is nil")
	}
	if err := decl.ValidateClassName(spec.ClassName); err != nil {
		return nil, err
	}

	o := options{includes: DefaultIncludes}
	for _, opt := range opts {
		opt(&o)
	}

	view := newClassView(spec, o.includes)

	header, err := loader.LoadAndRender(templates.ClassHeader, view)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "render.Render", err)
	}
	source, err := loader.LoadAndRender(templates.ClassSource, view)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "render.Render", err)
	}

	return &RenderedFiles{
		ClassName: spec.ClassName,
		Header:    header,
		Source:    source,
	}, nil
}

// GuardToken derives the include guard for className: uppercased, every
// character outside [A-Z0-9] replaced with '_', then "_HPP" appended.
func GuardToken(className string) string {
	var b strings.Builder
	b.Grow(len(className) + 4)
	for _, r := range strings.ToUpper(className) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteString("_HPP")
	return b.String()
}

func normalizeInclude(inc string) string {
	inc = strings.TrimSpace(inc)
	if strings.HasPrefix(inc, "<") || strings.HasPrefix(inc, `"`) {
		return inc
	}
	return "<" + inc + ">"
}
