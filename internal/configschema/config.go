// Package configschema loads and validates classgen project files.
//
// Overview:
//   - Responsibility: Parse .classgen.yaml and batch manifests, apply defaults and environment overrides
//   - Key Types: Config, Manifest, ClassEntry, Diagnostics
//   - Concurrency Model: Load functions are pure apart from file reads
//   - Error Semantics: Problems are reported as Diagnostics with path and suggestion, never panics
//   - Performance Notes: Whole-file reads; files are small
//
// Usage:
//
//	cfg, diags := configschema.Load(".classgen.yaml")
//	if diags.HasErrors() { ... }
package configschema

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"go.eggybyte.com/classgen/configx"
	"go.eggybyte.com/classgen/internal/render"
)

// DefaultFileName is the project configuration file looked up in the project root.
const DefaultFileName = ".classgen.yaml"

// Defaults applied when the configuration omits a value.
const (
	DefaultHeaderDir = "include"
	DefaultSourceDir = "src"
	DefaultJobs      = 4
)

// Config is the project configuration.
type Config struct {
	HeaderDir string `yaml:"header_dir" validate:"required,excludesall=*?"`
	SourceDir string `yaml:"source_dir" validate:"required,excludesall=*?"`
	// Includes replaces the default include list when set; an explicit
	// empty list emits no includes.
	Includes []string `yaml:"includes" validate:"omitempty,dive,required"`
	Jobs     int      `yaml:"jobs" validate:"min=1,max=64"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		HeaderDir: DefaultHeaderDir,
		SourceDir: DefaultSourceDir,
		Jobs:      DefaultJobs,
	}
}

// RenderOptions converts the configuration into renderer options.
func (c *Config) RenderOptions() []render.Option {
	if c.Includes == nil {
		return nil
	}
	return []render.Option{render.WithIncludes(c.Includes)}
}

// ApplySettings overlays non-empty environment settings onto c.
func (c *Config) ApplySettings(settings *configx.Settings) {
	if settings == nil {
		return
	}
	if settings.HeaderDir != "" {
		c.HeaderDir = settings.HeaderDir
	}
	if settings.SourceDir != "" {
		c.SourceDir = settings.SourceDir
	}
	if settings.Jobs > 0 {
		c.Jobs = settings.Jobs
	}
}

// Load reads the configuration file at path.
//
// Parameters:
//   - path: Configuration file path
//
// Returns:
//   - *Config: Parsed configuration with defaults applied (nil when unreadable)
//   - *Diagnostics: Validation diagnostics
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - File I/O and YAML parsing
func Load(path string) (*Config, *Diagnostics) {
	diags := NewDiagnostics()

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			diags.AddInfo("Configuration file not found, using defaults", path, "")
			return DefaultConfig(), diags
		}
		diags.AddError(fmt.Sprintf("Failed to read configuration file: %v", err), path, "Check file permissions")
		return nil, diags
	}

	config, parseDiags := Parse(data)
	for _, item := range parseDiags.Items() {
		if item.Path == "" {
			item.Path = path
		}
		diags.Add(item.Severity, item.Message, item.Path, item.Suggestion)
	}
	return config, diags
}

// Parse decodes and validates configuration YAML.
func Parse(data []byte) (*Config, *Diagnostics) {
	diags := NewDiagnostics()

	config := DefaultConfig()
	if err := decodeStrict(data, config); err != nil {
		diags.AddError(fmt.Sprintf("Failed to parse YAML: %v", err), "", "Check YAML syntax and key names (header_dir, source_dir, includes, jobs)")
		return nil, diags
	}

	validateConfig(config, diags)
	return config, diags
}

// Validate re-checks c, for example after flag or environment overrides.
func (c *Config) Validate() *Diagnostics {
	diags := NewDiagnostics()
	validateConfig(c, diags)
	return diags
}

func validateConfig(config *Config, diags *Diagnostics) {
	for _, fe := range configx.FieldErrors(configx.ValidateStruct(nil, config)) {
		diags.AddError(fe.Message, fe.Path, suggestionFor(fe.Rule))
	}

	checkProjectRelative(diags, "header_dir", config.HeaderDir)
	checkProjectRelative(diags, "source_dir", config.SourceDir)

	if config.HeaderDir != "" && config.HeaderDir == config.SourceDir {
		diags.AddInfo("Header and source files share one directory", "source_dir", "")
	}
}

// checkProjectRelative warns about output directories outside the project.
func checkProjectRelative(diags *Diagnostics, key, dir string) {
	if dir == "" {
		return
	}
	if filepath.IsAbs(dir) {
		diags.AddWarning("Directory is absolute and ignores --dir", key, "Use a path relative to the project root")
		return
	}
	clean := filepath.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		diags.AddWarning("Directory is outside the project root", key, "Use a path inside the project root")
	}
}

func suggestionFor(rule string) string {
	switch rule {
	case "required":
		return "Provide a non-empty value"
	case "min", "max":
		return "Use a value between 1 and 64"
	case "excludesall":
		return "Use a plain directory path without wildcards"
	default:
		return ""
	}
}

// decodeStrict decodes YAML into target rejecting unknown keys. An empty
// document leaves target untouched.
func decodeStrict(data []byte, target any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil && err != io.EOF {
		return err
	}
	return nil
}
