package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.eggybyte.com/classgen/configx"
	"go.eggybyte.com/classgen/core/errors"
	"go.eggybyte.com/classgen/core/log"
	"go.eggybyte.com/classgen/internal/configschema"
	"go.eggybyte.com/classgen/internal/projectfs"
	"go.eggybyte.com/classgen/internal/ui"
	"go.eggybyte.com/classgen/logx"
)

// environ is swapped in tests.
var environ = os.Environ

// logPayloadLimit truncates long string fields such as declaration lists.
const logPayloadLimit = 512

// app bundles what every generating command needs.
type app struct {
	cfg    *configschema.Config
	logger log.Logger
	fs     *projectfs.ProjectFS
}

// overrides are command-line values that win over file and environment.
type overrides struct {
	headerDir string
	sourceDir string
	jobs      int
}

// loadApp resolves settings in order: defaults, .classgen.yaml, CLASSGEN_*
// environment, then flags.
func loadApp(cmd *cobra.Command, flags overrides) (*app, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd, settings)
	if err != nil {
		return nil, err
	}

	path := configPath
	if path == "" {
		path = filepath.Join(projectDir, configschema.DefaultFileName)
	}
	cfg, diags := configschema.Load(path)
	reportDiagnostics(diags)
	if err := diags.Err(); err != nil {
		return nil, err
	}

	cfg.ApplySettings(settings)
	if flags.headerDir != "" {
		cfg.HeaderDir = flags.headerDir
	}
	if flags.sourceDir != "" {
		cfg.SourceDir = flags.sourceDir
	}
	if flags.jobs != 0 {
		cfg.Jobs = flags.jobs
	}
	if err := cfg.Validate().Err(); err != nil {
		return nil, err
	}

	logger.Debug("configuration resolved",
		log.Str("config", path),
		log.Str("header_dir", cfg.HeaderDir),
		log.Str("source_dir", cfg.SourceDir),
		log.Int("jobs", cfg.Jobs))

	return &app{
		cfg:    cfg,
		logger: logger,
		fs:     projectfs.NewProjectFS(projectDir, logger),
	}, nil
}

func loadSettings(cmd *cobra.Command) (*configx.Settings, error) {
	settings, err := configx.LoadSettings(cmd.Context(),
		configx.NewEnvSource(configx.EnvOptions{Prefix: configx.EnvPrefix, Environ: environ}),
	)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, "config.environment", err)
	}
	return settings, nil
}

func newLogger(cmd *cobra.Command, settings *configx.Settings) (log.Logger, error) {
	level, err := logx.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, "config.log_level", err)
	}
	if verbose {
		level = slog.LevelDebug
	}

	format, err := logx.ParseFormat(settings.LogFormat)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, "config.log_format", err)
	}

	return logx.New(
		logx.WithFormat(format),
		logx.WithLevel(level),
		logx.WithColor(!settings.NoColor && isTerminal(cmd.ErrOrStderr())),
		logx.WithWriter(cmd.ErrOrStderr()),
		logx.WithTimestamp(settings.LogTimestamps),
		logx.WithPayloadLimit(logPayloadLimit),
	), nil
}

// isTerminal reports whether v is a file attached to a terminal. Tests
// replace it to drive the interactive paths.
var isTerminal = func(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func reportDiagnostics(diags *configschema.Diagnostics) {
	for _, item := range diags.Items() {
		switch item.Severity {
		case configschema.SeverityWarning:
			ui.Warning("%s", item.String())
		case configschema.SeverityInfo:
			ui.Debug("%s", item.String())
		}
	}
}
