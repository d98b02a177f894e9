// Package configx binds classgen settings from environment variables.
//
// # Overview
//
// configx reads key/value snapshots from one or more sources (process
// environment, in-memory maps), merges them with last-wins semantics, binds
// the result into structs through `env` and `default` tags, and validates the
// bound struct with go-playground/validator.
//
// # Usage
//
//	settings, err := configx.LoadSettings(ctx,
//		configx.NewEnvSource(configx.EnvOptions{Prefix: configx.EnvPrefix}),
//	)
//	if err != nil { return err }
//
// # Precedence
//
// Settings only carry values that were explicitly provided. Callers overlay
// them on top of the project file (.classgen.yaml) and below command-line
// flags.
package configx
