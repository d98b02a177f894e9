package generators

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"go.eggybyte.com/classgen/core/errors"
	"go.eggybyte.com/classgen/internal/projectfs"
	"go.eggybyte.com/classgen/internal/render"
	"go.eggybyte.com/classgen/testingx"
)

var zombie = Request{
	ClassName: "Zombie",
	Variables: "std::string _name, int _hp",
	Methods:   "void announce() const, int hit(int dmg)",
}

func newGenerator(t *testing.T, opts Options) (*ClassGenerator, string, *testingx.MockLogger) {
	t.Helper()
	root := t.TempDir()
	logger := testingx.NewMockLogger(t)
	return NewClassGenerator(projectfs.NewProjectFS(root, logger), logger, opts), root, logger
}

func TestGenerate(t *testing.T) {
	gen, root, logger := newGenerator(t, Options{})

	result, err := gen.Generate(context.Background(), zombie)
	testingx.AssertNoError(t, err)

	if !result.Written {
		t.Error("Expected files to be written")
	}
	if result.HeaderPath != filepath.Join("include", "Zombie.hpp") || result.SourcePath != filepath.Join("src", "Zombie.cpp") {
		t.Errorf("Unexpected paths %s, %s", result.HeaderPath, result.SourcePath)
	}

	header := testingx.ReadFile(t, root, result.HeaderPath)
	source := testingx.ReadFile(t, root, result.SourcePath)
	if header != result.Files.Header || source != result.Files.Source {
		t.Error("Written files should match the rendered text")
	}
	testingx.AssertContains(t, header, "#ifndef ZOMBIE_HPP", "\tstd::string _name;", "\tint hit(int dmg);")
	testingx.AssertContains(t, source, "this->_hp = other._hp;", "int Zombie::hit(int dmg)")

	logger.AssertLogged("DEBUG", "parsed declarations")
	logger.AssertLogged("INFO", "generated class")
}

func TestGenerate_CustomDirectoriesAndIncludes(t *testing.T) {
	gen, root, _ := newGenerator(t, Options{
		HeaderDir:     "inc",
		SourceDir:     filepath.Join("lib", "core"),
		RenderOptions: []render.Option{render.WithIncludes([]string{"vector"})},
	})

	result, err := gen.Generate(context.Background(), Request{ClassName: "Horde"})
	testingx.AssertNoError(t, err)

	header := testingx.ReadFile(t, root, filepath.Join("inc", "Horde.hpp"))
	testingx.AssertContains(t, header, "# include <vector>")
	if !testingx.FileExists(t, root, result.SourcePath) || !strings.HasPrefix(result.SourcePath, filepath.Join("lib", "core")) {
		t.Errorf("Unexpected source path %s", result.SourcePath)
	}
}

func TestGenerate_InvalidInputWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		code errors.Code
	}{
		{name: "bad class", req: Request{ClassName: "9Lives"}, code: errors.CodeInvalidClassName},
		{name: "bad variable", req: Request{ClassName: "Zombie", Variables: "int"}, code: errors.CodeMalformedDeclaration},
		{name: "bad method", req: Request{ClassName: "Zombie", Methods: "void foo(int a"}, code: errors.CodeMalformedDeclaration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, root, _ := newGenerator(t, Options{})
			_, err := gen.Generate(context.Background(), tt.req)
			testingx.AssertError(t, err, tt.code)

			if testingx.FileExists(t, root, "include") || testingx.FileExists(t, root, "src") {
				t.Error("No directory should be created for invalid input")
			}
		})
	}
}

func TestGenerate_RefusesExistingFiles(t *testing.T) {
	for _, existing := range []string{"include/Zombie.hpp", "src/Zombie.cpp"} {
		t.Run(existing, func(t *testing.T) {
			gen, root, _ := newGenerator(t, Options{})
			testingx.WriteFile(t, root, existing, "keep me")

			_, err := gen.Generate(context.Background(), zombie)
			testingx.AssertError(t, err, errors.CodeAlreadyExists)

			if got := testingx.ReadFile(t, root, existing); got != "keep me" {
				t.Errorf("Existing file was modified: %q", got)
			}
			for _, other := range []string{"include/Zombie.hpp", "src/Zombie.cpp"} {
				if other != existing && testingx.FileExists(t, root, other) {
					t.Errorf("%s should not have been written", other)
				}
			}
		})
	}
}

func TestGenerate_Force(t *testing.T) {
	var asked []string
	gen, root, logger := newGenerator(t, Options{
		Force: true,
		Confirm: func(paths []string) bool {
			asked = append(asked, paths...)
			return true
		},
	})
	testingx.WriteFile(t, root, "include/Zombie.hpp", "old")

	result, err := gen.Generate(context.Background(), zombie)
	testingx.AssertNoError(t, err)

	if len(asked) != 1 || asked[0] != filepath.Join("include", "Zombie.hpp") {
		t.Errorf("Expected confirmation for the header only, got %v", asked)
	}
	if testingx.ReadFile(t, root, result.HeaderPath) != result.Files.Header {
		t.Error("Header should be overwritten")
	}
	logger.AssertLogged("WARN", "overwriting existing files")
}

func TestGenerate_ForceDeclined(t *testing.T) {
	gen, root, _ := newGenerator(t, Options{
		Force:   true,
		Confirm: func([]string) bool { return false },
	})
	testingx.WriteFile(t, root, "src/Zombie.cpp", "old")

	_, err := gen.Generate(context.Background(), zombie)
	testingx.AssertError(t, err, errors.CodeAlreadyExists)
	if testingx.ReadFile(t, root, "src/Zombie.cpp") != "old" {
		t.Error("Declined overwrite must leave the file alone")
	}
}

func TestGenerate_DryRun(t *testing.T) {
	gen, root, _ := newGenerator(t, Options{DryRun: true})
	testingx.WriteFile(t, root, "src/Zombie.cpp", "old")

	result, err := gen.Generate(context.Background(), zombie)
	testingx.AssertNoError(t, err)

	if result.Written {
		t.Error("Dry run must not write")
	}
	if testingx.FileExists(t, root, "include/Zombie.hpp") {
		t.Error("Dry run created a header")
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0] != filepath.Join("src", "Zombie.cpp") {
		t.Errorf("Expected the existing source as a conflict, got %v", result.Conflicts)
	}
	if result.Files == nil || result.Files.Header == "" {
		t.Error("Dry run should still render")
	}
}

func TestGenerate_Canceled(t *testing.T) {
	gen, root, _ := newGenerator(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, zombie)
	testingx.AssertError(t, err, errors.CodeCanceled)
	if testingx.FileExists(t, root, "include/Zombie.hpp") {
		t.Error("Canceled generation wrote a header")
	}
}

// failingFS fails every write whose path ends in suffix.
type failingFS struct {
	*projectfs.ProjectFS
	suffix string
}

func (f failingFS) CreateFile(path, content string, mode fs.FileMode) error {
	if strings.HasSuffix(path, f.suffix) {
		return errors.New(errors.CodeInternal, "disk full")
	}
	return f.ProjectFS.CreateFile(path, content, mode)
}

func (f failingFS) WriteFile(path, content string, mode fs.FileMode) error {
	if strings.HasSuffix(path, f.suffix) {
		return errors.New(errors.CodeInternal, "disk full")
	}
	return f.ProjectFS.WriteFile(path, content, mode)
}

func TestGenerate_RollsBackHeaderOnSourceFailure(t *testing.T) {
	root := t.TempDir()
	logger := testingx.NewMockLogger(t)
	pfs := failingFS{ProjectFS: projectfs.NewProjectFS(root, nil), suffix: ".cpp"}
	gen := NewClassGenerator(pfs, logger, Options{})

	_, err := gen.Generate(context.Background(), zombie)
	testingx.AssertError(t, err, errors.CodeInternal)

	if testingx.FileExists(t, root, "include/Zombie.hpp") {
		t.Error("Header should be removed when the source write fails")
	}
	logger.AssertLogged("WARN", "rolled back header after source write failure")
}

func TestGenerate_ForceRestoresOverwrittenHeader(t *testing.T) {
	root := t.TempDir()
	testingx.WriteFile(t, root, "include/Zombie.hpp", "previous header")
	pfs := failingFS{ProjectFS: projectfs.NewProjectFS(root, nil), suffix: ".cpp"}
	gen := NewClassGenerator(pfs, nil, Options{Force: true})

	_, err := gen.Generate(context.Background(), zombie)
	testingx.AssertError(t, err, errors.CodeInternal)

	if got := testingx.ReadFile(t, root, "include/Zombie.hpp"); got != "previous header" {
		t.Errorf("Expected the previous header to be restored, got %q", got)
	}
}
