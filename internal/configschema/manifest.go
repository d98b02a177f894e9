package configschema

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"go.eggybyte.com/classgen/configx"
	"go.eggybyte.com/classgen/internal/decl"
)

// Manifest describes several classes for batch generation.
//
//	classes:
//	  - name: Zombie
//	    variables: std::string _name
//	    methods:
//	      - void announce() const
//	      - int hit(int dmg, bool crit)
type Manifest struct {
	Classes []ClassEntry `yaml:"classes" validate:"required,min=1,dive"`
}

// ClassEntry is one class in a manifest.
type ClassEntry struct {
	Name      string   `yaml:"name" validate:"required"`
	Variables DeclList `yaml:"variables"`
	Methods   DeclList `yaml:"methods"`
}

// DeclList accepts either one comma-separated string or a YAML sequence of
// single declarations.
type DeclList string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *DeclList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = DeclList(node.Value)
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: declaration list items must be strings", child.Line)
			}
			items = append(items, child.Value)
		}
		*l = DeclList(strings.Join(items, ", "))
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// LoadManifest reads and validates the batch manifest at path.
//
// Parameters:
//   - path: Manifest file path
//
// Returns:
//   - *Manifest: Parsed manifest (nil when unreadable or unparsable)
//   - *Diagnostics: Validation diagnostics
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - File I/O and YAML parsing
func LoadManifest(path string) (*Manifest, *Diagnostics) {
	diags := NewDiagnostics()

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			diags.AddError("Manifest file not found", path, "Check the manifest path")
		} else {
			diags.AddError(fmt.Sprintf("Failed to read manifest: %v", err), path, "Check file permissions")
		}
		return nil, diags
	}

	manifest, parseDiags := ParseManifest(data)
	for _, item := range parseDiags.Items() {
		if item.Path == "" {
			item.Path = path
		}
		diags.Add(item.Severity, item.Message, item.Path, item.Suggestion)
	}
	return manifest, diags
}

// ParseManifest decodes and validates manifest YAML. Declaration text is
// not parsed here; only class names are checked up front so that one bad
// name is reported before any file is written.
func ParseManifest(data []byte) (*Manifest, *Diagnostics) {
	diags := NewDiagnostics()

	var manifest Manifest
	if err := decodeStrict(data, &manifest); err != nil {
		diags.AddError(fmt.Sprintf("Failed to parse YAML: %v", err), "", "Check YAML syntax; each class needs name, variables and methods")
		return nil, diags
	}

	for _, fe := range configx.FieldErrors(configx.ValidateStruct(nil, &manifest)) {
		diags.AddError(fe.Message, fe.Path, suggestionFor(fe.Rule))
	}

	seen := make(map[string]int, len(manifest.Classes))
	for i, class := range manifest.Classes {
		path := fmt.Sprintf("classes[%d].name", i)
		name := strings.TrimSpace(class.Name)
		if name == "" {
			continue
		}
		if err := decl.ValidateClassName(name); err != nil {
			diags.AddError(err.Error(), path, "Use a C++ identifier such as Zombie or My_Class")
			continue
		}
		if first, ok := seen[name]; ok {
			diags.AddError(fmt.Sprintf("Class %s is listed twice", name), path,
				fmt.Sprintf("Remove the duplicate of classes[%d]", first))
			continue
		}
		seen[name] = i
	}

	return &manifest, diags
}
