// Package generators turns class requests into header/source files on disk.
//
// Overview:
//   - Responsibility: Parse, render and write one class, or many in parallel
//   - Key Types: ClassGenerator, Request, Result, Outcome
//   - Concurrency Model: Generate is safe for concurrent use on distinct classes; Batch bounds parallelism with errgroup
//   - Error Semantics: Coded errors from decl/render/projectfs pass through; nothing is left half-written
//   - Performance Notes: Two file writes per class; templates are parsed once per process
//
// Usage:
//
//	gen := generators.NewClassGenerator(pfs, logger, generators.Options{HeaderDir: "include", SourceDir: "src"})
//	result, err := gen.Generate(ctx, generators.Request{ClassName: "Zombie", Variables: "std::string _name"})
package generators

import (
	"context"
	"path/filepath"

	"go.eggybyte.com/classgen/core/errors"
	"go.eggybyte.com/classgen/core/log"
	"go.eggybyte.com/classgen/internal/decl"
	"go.eggybyte.com/classgen/internal/render"
)

const fileMode = 0o644

// ClassGenerator provides class file generation.
//
// Parameters:
//   - fs: Project file system
//   - logger: Structured logger for generation events
//   - opts: Output directories and overwrite policy
//
// Returns:
//   - None (data structure)
//
// Concurrency:
//   - Safe for concurrent use on distinct classes
//
// Performance:
//   - Template-based generation
type ClassGenerator struct {
	fs     FileSystem
	logger log.Logger
	opts   Options
}

// NewClassGenerator creates a new class generator.
//
// Parameters:
//   - fs: Project file system
//   - logger: Structured logger; nil discards events
//   - opts: Generation options; empty directories default to include/ and src/
//
// Returns:
//   - *ClassGenerator: Generator instance
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - Minimal initialization overhead
func NewClassGenerator(fs FileSystem, logger log.Logger, opts Options) *ClassGenerator {
	if logger == nil {
		logger = log.Nop()
	}
	if opts.HeaderDir == "" {
		opts.HeaderDir = "include"
	}
	if opts.SourceDir == "" {
		opts.SourceDir = "src"
	}
	return &ClassGenerator{
		fs:     fs,
		logger: logger,
		opts:   opts,
	}
}

// Plan parses and renders req without touching the filesystem.
//
// Parameters:
//   - req: Raw class name, variables and methods text
//
// Returns:
//   - *Result: Rendered files and their target paths
//   - error: MALFORMED_DECLARATION or INVALID_CLASS_NAME for bad input
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - Pure computation
func (g *ClassGenerator) Plan(req Request) (*Result, error) {
	spec, err := decl.Parse(req.ClassName, req.Variables, req.Methods)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("parsed declarations",
		log.Str("class", spec.ClassName),
		log.Int("variables", len(spec.Variables)),
		log.Int("methods", len(spec.Methods)))

	files, err := render.Render(spec, g.opts.RenderOptions...)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("rendered class",
		log.Str("class", spec.ClassName),
		log.Int("header_bytes", len(files.Header)),
		log.Int("source_bytes", len(files.Source)))

	return &Result{
		ClassName:  spec.ClassName,
		HeaderPath: filepath.Join(g.opts.HeaderDir, files.HeaderName()),
		SourcePath: filepath.Join(g.opts.SourceDir, files.SourceName()),
		Files:      files,
	}, nil
}

// Generate plans req and writes both files unless DryRun is set.
//
// Parameters:
//   - ctx: Cancellation context, checked before any write
//   - req: Raw class name, variables and methods text
//
// Returns:
//   - *Result: Paths, rendered text and whether files were written
//   - error: Parse/render errors, ALREADY_EXISTS, CANCELED or INTERNAL write failures
//
// Concurrency:
//   - Safe for concurrent use on distinct classes
//
// Performance:
//   - At most two writes; one extra read per overwritten header
func (g *ClassGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	result, err := g.Plan(req)
	if err != nil {
		return nil, err
	}

	conflicts, err := g.conflicts(result)
	if err != nil {
		return nil, err
	}
	result.Conflicts = conflicts

	if g.opts.DryRun {
		return result, nil
	}

	if err := g.write(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *ClassGenerator) conflicts(result *Result) ([]string, error) {
	var existing []string
	for _, path := range []string{result.HeaderPath, result.SourcePath} {
		exists, err := g.fs.FileExists(path)
		if err != nil {
			return nil, err
		}
		if exists {
			existing = append(existing, path)
		}
	}
	return existing, nil
}

func (g *ClassGenerator) write(ctx context.Context, result *Result) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.CodeCanceled, "generators.Generate", err)
	}

	logger := g.logger.With(log.Str("class", result.ClassName))

	if len(result.Conflicts) > 0 {
		if !g.opts.Force {
			return errors.Build(errors.CodeAlreadyExists).
				WithOp("generators.Generate").
				WithMsgf("%s already exists", result.Conflicts[0]).
				WithDetails("paths", result.Conflicts).
				Err()
		}
		if g.opts.Confirm != nil && !g.opts.Confirm(result.Conflicts) {
			return errors.Build(errors.CodeAlreadyExists).
				WithOp("generators.Generate").
				WithMsgf("overwrite of %s declined", result.Conflicts[0]).
				WithDetails("paths", result.Conflicts).
				Err()
		}
		logger.Warn("overwriting existing files", "paths", result.Conflicts)
	}

	restoreHeader, err := g.put(result.HeaderPath, result.Files.Header)
	if err != nil {
		return err
	}

	if _, err := g.put(result.SourcePath, result.Files.Source); err != nil {
		if rerr := restoreHeader(); rerr != nil {
			logger.Error(rerr, "failed to roll back header", log.Str("path", result.HeaderPath))
		} else {
			logger.Warn("rolled back header after source write failure", log.Str("path", result.HeaderPath))
		}
		return err
	}

	result.Written = true
	logger.Info("generated class",
		log.Str("header", result.HeaderPath),
		log.Str("source", result.SourcePath))
	return nil
}

// put writes content to path and returns a func that undoes the write:
// a new file is removed, an overwritten file gets its old content back.
func (g *ClassGenerator) put(path, content string) (func() error, error) {
	if !g.opts.Force {
		if err := g.fs.CreateFile(path, content, fileMode); err != nil {
			return nil, err
		}
		return func() error { return g.fs.RemoveFile(path) }, nil
	}

	previous, err := g.fs.ReadFile(path)
	existed := err == nil
	if err != nil && !errors.IsCode(err, errors.CodeNotFound) {
		return nil, err
	}

	if err := g.fs.WriteFile(path, content, fileMode); err != nil {
		return nil, err
	}

	if existed {
		return func() error { return g.fs.WriteFile(path, previous, fileMode) }, nil
	}
	return func() error { return g.fs.RemoveFile(path) }, nil
}
