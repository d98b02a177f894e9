// Package internal provides internal implementation details for configx.
//
// Overview:
//   - Responsibility: Implement configuration sources (environment, fixed maps)
//   - Key Types: Source, EnvSource, MapSource
//   - Concurrency Model: All sources are safe for concurrent use
//   - Error Semantics: Sources return errors for loading failures
//   - Performance Notes: Each Load takes a fresh snapshot
package internal

import (
	"context"
	"os"
	"strings"
)

// Source describes a configuration source that yields a key/value snapshot.
type Source interface {
	// Load reads the current configuration snapshot.
	Load(ctx context.Context) (map[string]string, error)
}

// EnvOptions configures environment variable source behavior.
type EnvOptions struct {
	Prefix    string // Only variables with this prefix are read; the prefix is stripped
	Lowercase bool   // Convert keys to lowercase
	Uppercase bool   // Convert keys to uppercase
	// Environ overrides os.Environ, mainly for tests.
	Environ func() []string
}

// EnvSource loads configuration from environment variables.
type EnvSource struct {
	prefix    string
	lowercase bool
	uppercase bool
	environ   func() []string
}

// NewEnvSource creates a new environment variable source.
func NewEnvSource(opts EnvOptions) Source {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ
	}
	return &EnvSource{
		prefix:    opts.Prefix,
		lowercase: opts.Lowercase,
		uppercase: opts.Uppercase,
		environ:   environ,
	}
}

// Load reads configuration from environment variables.
func (s *EnvSource) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config := make(map[string]string)
	for _, env := range s.environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		if s.prefix != "" {
			if !strings.HasPrefix(key, s.prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.prefix)
		}

		if s.lowercase {
			key = strings.ToLower(key)
		} else if s.uppercase {
			key = strings.ToUpper(key)
		}

		config[key] = value
	}

	return config, nil
}

// MapSource serves a fixed snapshot.
type MapSource struct {
	values map[string]string
}

// NewMapSource creates a source that returns a copy of values on every Load.
func NewMapSource(values map[string]string) Source {
	return &MapSource{values: values}
}

// Load returns a copy of the configured values.
func (s *MapSource) Load(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}
