package generators

import (
	"io/fs"

	"go.eggybyte.com/classgen/internal/render"
)

// FileSystem is the subset of projectfs.ProjectFS the generator writes through.
type FileSystem interface {
	FileExists(path string) (bool, error)
	CreateFile(path, content string, mode fs.FileMode) error
	WriteFile(path, content string, mode fs.FileMode) error
	ReadFile(path string) (string, error)
	RemoveFile(path string) error
}

// Request is the raw input for one class.
type Request struct {
	ClassName string
	Variables string
	Methods   string
}

// Options controls where and how files are written.
type Options struct {
	HeaderDir string
	SourceDir string
	// Force overwrites existing files. When Confirm is set it is asked once
	// per class before anything is replaced.
	Force   bool
	Confirm func(paths []string) bool
	// DryRun parses and renders without touching the filesystem.
	DryRun        bool
	RenderOptions []render.Option
}

// Result describes the outcome for one class.
type Result struct {
	ClassName  string
	HeaderPath string
	SourcePath string
	Files      *render.RenderedFiles
	// Conflicts lists target paths that already existed.
	Conflicts []string
	Written   bool
}

// Outcome pairs a batch request with its result or error.
type Outcome struct {
	Request Request
	Result  *Result
	Err     error
}
