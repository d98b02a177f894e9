package configx

import (
	"context"
	"fmt"

	"go.eggybyte.com/classgen/configx/internal"
)

// EnvPrefix is the prefix of every environment variable classgen reads.
const EnvPrefix = "CLASSGEN_"

// Source describes a configuration source that yields a key/value snapshot.
type Source = internal.Source

// EnvOptions configures environment variable source behavior.
type EnvOptions = internal.EnvOptions

// NewEnvSource creates a source backed by the process environment.
func NewEnvSource(opts EnvOptions) Source {
	return internal.NewEnvSource(opts)
}

// NewMapSource creates a source backed by a fixed map.
func NewMapSource(values map[string]string) Source {
	return internal.NewMapSource(values)
}

// Settings holds the environment-provided overrides for a classgen run.
// Empty fields mean "not provided"; callers keep their own defaults for them.
type Settings struct {
	HeaderDir string `env:"HEADER_DIR" validate:"omitempty,excludesall=*?"`
	SourceDir string `env:"SOURCE_DIR" validate:"omitempty,excludesall=*?"`
	Jobs      int    `env:"JOBS" validate:"omitempty,min=1,max=64"`
	LogLevel  string `env:"LOG_LEVEL" default:"warn" validate:"oneof=debug info warn warning error"`
	LogFormat string `env:"LOG_FORMAT" default:"logfmt" validate:"oneof=logfmt json"`
	NoColor   bool   `env:"NO_COLOR"`
	// LogTimestamps prefixes log records with an RFC3339 time.
	LogTimestamps bool `env:"LOG_TIMESTAMPS"`
}

// Merge loads every source in order and merges the snapshots; later sources
// override earlier ones.
func Merge(ctx context.Context, sources ...Source) (map[string]string, error) {
	merged := make(map[string]string)
	for i, source := range sources {
		snapshot, err := source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration source %d: %w", i, err)
		}
		for k, v := range snapshot {
			merged[k] = v
		}
	}
	return merged, nil
}

// Bind decodes snapshot into target using `env` and `default` struct tags.
// target must be a pointer to a struct.
func Bind(snapshot map[string]string, target any) error {
	return internal.BindToStruct(snapshot, target)
}

// LoadSettings merges sources, binds them into Settings and validates the result.
func LoadSettings(ctx context.Context, sources ...Source) (*Settings, error) {
	snapshot, err := Merge(ctx, sources...)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := Bind(snapshot, &settings); err != nil {
		return nil, fmt.Errorf("failed to bind settings: %w", err)
	}

	if err := ValidateStruct(nil, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}
