// Package projectfs provides rooted file operations for generated sources.
//
// Overview:
//   - Responsibility: Create directories, check existence, write/remove/read files under a project root
//   - Key Types: ProjectFS
//   - Concurrency Model: Stateless apart from the root and logger; safe for concurrent use on distinct paths
//   - Error Semantics: Failures are wrapped as INTERNAL / ALREADY_EXISTS / NOT_FOUND coded errors with the relative path
//   - Performance Notes: Direct os calls, no buffering beyond a single write
//
// Usage:
//
//	pfs := projectfs.NewProjectFS(".", logger)
//	err := pfs.CreateFile("include/Zombie.hpp", header, 0o644)
package projectfs

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.eggybyte.com/classgen/core/errors"
	"go.eggybyte.com/classgen/core/log"
)

// ProjectFS resolves every path against a root directory.
//
// Parameters:
//   - rootDir: Root directory for project operations
//   - logger: Receives debug events for each filesystem change
//
// Returns:
//   - None (data structure)
//
// Concurrency:
//   - Safe for concurrent use on distinct paths
//
// Performance:
//   - Minimal memory footprint
type ProjectFS struct {
	rootDir string
	logger  log.Logger
}

// NewProjectFS creates a new project filesystem rooted at rootDir.
// A nil logger discards events.
func NewProjectFS(rootDir string, logger log.Logger) *ProjectFS {
	if logger == nil {
		logger = log.Nop()
	}
	return &ProjectFS{
		rootDir: rootDir,
		logger:  logger,
	}
}

// GetRootDir returns the root directory.
func (p *ProjectFS) GetRootDir() string {
	return p.rootDir
}

// GetAbsolutePath joins path onto the root directory. Absolute paths are
// returned unchanged.
func (p *ProjectFS) GetAbsolutePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.rootDir, path)
}

// EnsureDirectory creates path and any missing parents.
//
// Parameters:
//   - path: Directory path relative to root
//
// Returns:
//   - error: INTERNAL coded error if creation fails
//
// Concurrency:
//   - Safe; MkdirAll tolerates concurrent creators
//
// Performance:
//   - One MkdirAll call
func (p *ProjectFS) EnsureDirectory(path string) error {
	if err := os.MkdirAll(p.GetAbsolutePath(path), 0o755); err != nil {
		return errors.Wrapf(errors.CodeInternal, "projectfs.EnsureDirectory", err, "failed to ensure directory %s", path)
	}

	p.logger.Debug("ensured directory", log.Str("path", path))
	return nil
}

// FileExists reports whether path exists.
//
// Parameters:
//   - path: File path relative to root
//
// Returns:
//   - bool: True if the path exists
//   - error: INTERNAL coded error for stat failures other than not-exist
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - One stat call
func (p *ProjectFS) FileExists(path string) (bool, error) {
	_, err := os.Stat(p.GetAbsolutePath(path))
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(errors.CodeInternal, "projectfs.FileExists", err, "failed to stat %s", path)
}

// WriteFile writes content to path, creating parent directories and
// replacing any existing file.
//
// Parameters:
//   - path: File path relative to root
//   - content: File content
//   - mode: File permissions
//
// Returns:
//   - error: INTERNAL coded error if the write fails
//
// Concurrency:
//   - Safe on distinct paths
//
// Performance:
//   - Single write
func (p *ProjectFS) WriteFile(path, content string, mode fs.FileMode) error {
	if err := p.EnsureDirectory(filepath.Dir(path)); err != nil {
		return err
	}

	if err := os.WriteFile(p.GetAbsolutePath(path), []byte(content), mode); err != nil {
		return errors.Wrapf(errors.CodeInternal, "projectfs.WriteFile", err, "failed to write file %s", path)
	}

	p.logger.Debug("wrote file", log.Str("path", path), log.Int("bytes", len(content)))
	return nil
}

// CreateFile writes content to path only if nothing exists there yet.
// The check and the create are one O_EXCL open, so two concurrent writers
// cannot both succeed.
//
// Parameters:
//   - path: File path relative to root
//   - content: File content
//   - mode: File permissions
//
// Returns:
//   - error: ALREADY_EXISTS if path exists, INTERNAL for other failures
//
// Concurrency:
//   - Safe; at most one caller creates a given path
//
// Performance:
//   - One open and one write
func (p *ProjectFS) CreateFile(path, content string, mode fs.FileMode) error {
	if err := p.EnsureDirectory(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.OpenFile(p.GetAbsolutePath(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return errors.Build(errors.CodeAlreadyExists).
				WithOp("projectfs.CreateFile").
				WithMsgf("%s already exists", path).
				WithDetails("path", path).
				Err()
		}
		return errors.Wrapf(errors.CodeInternal, "projectfs.CreateFile", err, "failed to create file %s", path)
	}

	_, werr := f.WriteString(content)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(f.Name())
		return errors.Wrapf(errors.CodeInternal, "projectfs.CreateFile", werr, "failed to write file %s", path)
	}

	p.logger.Debug("created file", log.Str("path", path), log.Int("bytes", len(content)))
	return nil
}

// ReadFile reads path.
//
// Parameters:
//   - path: File path relative to root
//
// Returns:
//   - string: File content
//   - error: NOT_FOUND if path does not exist, INTERNAL otherwise
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - Loads the whole file into memory
func (p *ProjectFS) ReadFile(path string) (string, error) {
	content, err := os.ReadFile(p.GetAbsolutePath(path))
	if err != nil {
		code := errors.CodeInternal
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.CodeNotFound
		}
		return "", errors.Wrapf(code, "projectfs.ReadFile", err, "failed to read file %s", path)
	}
	return string(content), nil
}

// RemoveFile removes path. A missing file is not an error.
//
// Parameters:
//   - path: File path relative to root
//
// Returns:
//   - error: INTERNAL coded error if removal fails
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - One remove call
func (p *ProjectFS) RemoveFile(path string) error {
	if err := os.Remove(p.GetAbsolutePath(path)); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			p.logger.Debug("file does not exist", log.Str("path", path))
			return nil
		}
		return errors.Wrapf(errors.CodeInternal, "projectfs.RemoveFile", err, "failed to remove file %s", path)
	}

	p.logger.Debug("removed file", log.Str("path", path))
	return nil
}

// CheckWritable verifies that files can be created in the existing
// directory path by creating and removing a temporary file.
//
// Parameters:
//   - path: Directory path relative to root
//
// Returns:
//   - error: NOT_FOUND if the directory is missing, INTERNAL if it is not writable
//
// Concurrency:
//   - Safe for concurrent use
//
// Performance:
//   - One create and one remove
func (p *ProjectFS) CheckWritable(path string) error {
	f, err := os.CreateTemp(p.GetAbsolutePath(path), ".classgen-*")
	if err != nil {
		code := errors.CodeInternal
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.CodeNotFound
		}
		return errors.Wrapf(code, "projectfs.CheckWritable", err, "directory %s is not writable", path)
	}
	name := f.Name()
	_ = f.Close()
	if err := os.Remove(name); err != nil {
		return errors.Wrapf(errors.CodeInternal, "projectfs.CheckWritable", err, "failed to remove probe in %s", path)
	}
	return nil
}

// ListFiles returns the names of regular entries directly under path.
func (p *ProjectFS) ListFiles(path string) ([]string, error) {
	entries, err := os.ReadDir(p.GetAbsolutePath(path))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(errors.CodeNotFound, "projectfs.ListFiles", err, "failed to list files in %s", path)
		}
		return nil, errors.Wrapf(errors.CodeInternal, "projectfs.ListFiles", err, "failed to list files in %s", path)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}
