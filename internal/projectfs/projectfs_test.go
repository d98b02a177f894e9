package projectfs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.eggybyte.com/classgen/core/errors"
	"go.eggybyte.com/classgen/testingx"
)

func TestEnsureDirectory(t *testing.T) {
	root := t.TempDir()
	logger := testingx.NewMockLogger(t)
	pfs := NewProjectFS(root, logger)

	testingx.AssertNoError(t, pfs.EnsureDirectory("include/nested"))
	testingx.AssertNoError(t, pfs.EnsureDirectory("include/nested"))

	info, err := os.Stat(filepath.Join(root, "include", "nested"))
	if err != nil || !info.IsDir() {
		t.Fatalf("Expected directory to exist, err=%v", err)
	}
	logger.AssertLogged("DEBUG", "ensured directory")
}

func TestFileExists(t *testing.T) {
	root := t.TempDir()
	pfs := NewProjectFS(root, nil)

	exists, err := pfs.FileExists("src/Zombie.cpp")
	testingx.AssertNoError(t, err)
	if exists {
		t.Error("Expected file to be absent")
	}

	testingx.WriteFile(t, root, "src/Zombie.cpp", "//")
	exists, err = pfs.FileExists("src/Zombie.cpp")
	testingx.AssertNoError(t, err)
	if !exists {
		t.Error("Expected file to exist")
	}
}

func TestWriteAndReadFile(t *testing.T) {
	root := t.TempDir()
	pfs := NewProjectFS(root, nil)

	testingx.AssertNoError(t, pfs.WriteFile("include/Zombie.hpp", "first", 0o644))
	testingx.AssertNoError(t, pfs.WriteFile("include/Zombie.hpp", "second", 0o644))

	content, err := pfs.ReadFile("include/Zombie.hpp")
	testingx.AssertNoError(t, err)
	if content != "second" {
		t.Errorf("Expected %q, got %q", "second", content)
	}

	_, err = pfs.ReadFile("include/Missing.hpp")
	testingx.AssertError(t, err, errors.CodeNotFound)
}

func TestCreateFile(t *testing.T) {
	root := t.TempDir()
	pfs := NewProjectFS(root, nil)

	testingx.AssertNoError(t, pfs.CreateFile("src/Zombie.cpp", "body", 0o644))

	err := pfs.CreateFile("src/Zombie.cpp", "other", 0o644)
	testingx.AssertError(t, err, errors.CodeAlreadyExists)

	if got := testingx.ReadFile(t, root, "src/Zombie.cpp"); got != "body" {
		t.Errorf("Existing file should be untouched, got %q", got)
	}
}

func TestCreateFile_Concurrent(t *testing.T) {
	root := t.TempDir()
	pfs := NewProjectFS(root, nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pfs.CreateFile("include/Horde.hpp", "x", 0o644); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("Expected exactly one creator, got %d", created)
	}
}

func TestRemoveFile(t *testing.T) {
	root := t.TempDir()
	pfs := NewProjectFS(root, nil)

	testingx.WriteFile(t, root, "include/Zombie.hpp", "x")
	testingx.AssertNoError(t, pfs.RemoveFile("include/Zombie.hpp"))
	if testingx.FileExists(t, root, "include/Zombie.hpp") {
		t.Error("Expected file to be removed")
	}

	// Removing again is a no-op.
	testingx.AssertNoError(t, pfs.RemoveFile("include/Zombie.hpp"))
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	pfs := NewProjectFS(root, nil)

	testingx.WriteFile(t, root, "include/A.hpp", "a")
	testingx.WriteFile(t, root, "include/B.hpp", "b")
	testingx.AssertNoError(t, pfs.EnsureDirectory("include/sub"))

	files, err := pfs.ListFiles("include")
	testingx.AssertNoError(t, err)
	if len(files) != 2 || files[0] != "A.hpp" || files[1] != "B.hpp" {
		t.Errorf("Unexpected files %v", files)
	}

	_, err = pfs.ListFiles("nope")
	testingx.AssertError(t, err, errors.CodeNotFound)
}

func TestCheckWritable(t *testing.T) {
	root := t.TempDir()
	pfs := NewProjectFS(root, nil)

	err := pfs.CheckWritable("include")
	testingx.AssertError(t, err, errors.CodeNotFound)

	testingx.AssertNoError(t, pfs.EnsureDirectory("include"))
	testingx.AssertNoError(t, pfs.CheckWritable("include"))

	files, err := pfs.ListFiles("include")
	testingx.AssertNoError(t, err)
	if len(files) != 0 {
		t.Errorf("Probe file should be removed, found %v", files)
	}
}

func TestGetAbsolutePath(t *testing.T) {
	root := t.TempDir()
	pfs := NewProjectFS(root, nil)

	if got := pfs.GetAbsolutePath("include/A.hpp"); got != filepath.Join(root, "include", "A.hpp") {
		t.Errorf("Unexpected path %q", got)
	}
	other := t.TempDir()
	if got := pfs.GetAbsolutePath(other); got != other {
		t.Errorf("Absolute paths should be kept, got %q", got)
	}
}
