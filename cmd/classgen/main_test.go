package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"go.eggybyte.com/classgen/internal/ui"
	"go.eggybyte.com/classgen/testingx"
)

type runResult struct {
	stdout string
	stderr string
	code   int
}

// run executes the CLI in-process with a clean flag state and the given
// environment.
func run(t *testing.T, stdin string, env []string, args ...string) runResult {
	t.Helper()

	verbose, nonInteractive, jsonOutput = false, false, false
	configPath, projectDir = "", "."
	createHeaderDir, createSourceDir, createForce, createDryRun = "", "", false, false
	batchJobs, batchForce, batchDryRun = 0, false, false
	environ = func() []string { return env }
	t.Cleanup(ui.Reset)

	var stdout, stderr bytes.Buffer
	ui.Reset()
	ui.SetOutput(&stdout, &stderr)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))

	code := Execute(context.Background())
	return runResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func TestCreate(t *testing.T) {
	root := t.TempDir()

	res := run(t, "", nil, "--dir", root, "create", "Zombie", "std::string _name, int _hp", "void announce() const")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", res.code, res.stderr)
	}

	testingx.AssertContains(t, res.stdout, "Created include/Zombie.hpp and src/Zombie.cpp")
	testingx.AssertContains(t, testingx.ReadFile(t, root, "include/Zombie.hpp"),
		"#ifndef ZOMBIE_HPP", "\tstd::string _name;", "\tvoid announce() const;")
	testingx.AssertContains(t, testingx.ReadFile(t, root, "src/Zombie.cpp"),
		"this->_hp = other._hp;", "void Zombie::announce() const")
}

func TestCreate_ClassNameOnly(t *testing.T) {
	root := t.TempDir()

	res := run(t, "", nil, "--dir", root, "create", "Harl")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", res.code, res.stderr)
	}
	if !testingx.FileExists(t, root, "include/Harl.hpp") || !testingx.FileExists(t, root, "src/Harl.cpp") {
		t.Error("Expected both files")
	}
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{name: "malformed variable", args: []string{"create", "Zombie", "int"}, stderr: "MALFORMED_DECLARATION"},
		{name: "unbalanced method", args: []string{"create", "Zombie", "", "void foo(int a"}, stderr: "MALFORMED_DECLARATION"},
		{name: "invalid class", args: []string{"create", "My-Class"}, stderr: "INVALID_CLASS_NAME"},
		{name: "no class non-interactive", args: []string{"--non-interactive", "create"}, stderr: "class name is required"},
		{name: "too many args", args: []string{"create", "A", "", "", "extra"}, stderr: "accepts at most 3 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			res := run(t, "", nil, append([]string{"--dir", root}, tt.args...)...)
			if res.code != 1 {
				t.Fatalf("Expected exit 1, got %d", res.code)
			}
			testingx.AssertContains(t, res.stderr, tt.stderr)
			if testingx.FileExists(t, root, "include") {
				t.Error("Nothing should be written on error")
			}
		})
	}
}

func TestCreate_ExistingFile(t *testing.T) {
	root := t.TempDir()
	testingx.WriteFile(t, root, "src/Zombie.cpp", "keep")

	res := run(t, "", nil, "--dir", root, "create", "Zombie")
	if res.code != 1 {
		t.Fatalf("Expected exit 1, got %d", res.code)
	}
	testingx.AssertContains(t, res.stderr, "ALREADY_EXISTS", "src/Zombie.cpp already exists")
	testingx.AssertContains(t, res.stdout, "--force")
	if testingx.FileExists(t, root, "include/Zombie.hpp") {
		t.Error("Header must not be written when the source exists")
	}
}

func TestCreate_Force(t *testing.T) {
	root := t.TempDir()
	testingx.WriteFile(t, root, "include/Zombie.hpp", "old")

	res := run(t, "n\n", nil, "--dir", root, "create", "Zombie", "--force")
	if res.code != 1 {
		t.Fatalf("Declined overwrite should fail, got %d", res.code)
	}
	if testingx.ReadFile(t, root, "include/Zombie.hpp") != "old" {
		t.Error("Declined overwrite changed the header")
	}

	res = run(t, "y\n", nil, "--dir", root, "create", "Zombie", "--force")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", res.code, res.stderr)
	}
	testingx.AssertContains(t, res.stdout, "Overwrite include/Zombie.hpp?")
	testingx.AssertContains(t, testingx.ReadFile(t, root, "include/Zombie.hpp"), "#ifndef ZOMBIE_HPP")
}

func TestCreate_Prompts(t *testing.T) {
	root := t.TempDir()
	stdinIsTerminal(t)

	res := run(t, "Zombie\nint _hp\nint getHp() const\n", nil, "--dir", root, "create")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", res.code, res.stderr)
	}
	testingx.AssertContains(t, res.stdout, "Class name", "Variables", "Methods")
	testingx.AssertContains(t, testingx.ReadFile(t, root, "src/Zombie.cpp"), "int Zombie::getHp() const", "return 0;")
}

func TestCreate_NoArgsWithoutTerminal(t *testing.T) {
	root := t.TempDir()

	res := run(t, "Zombie\n\n\n", nil, "--dir", root, "create")
	if res.code != 1 {
		t.Fatalf("Expected exit 1, got %d", res.code)
	}
	testingx.AssertContains(t, res.stderr, "INVALID_CLASS_NAME", "class name is required")
	if strings.Contains(res.stdout, "Class name") {
		t.Error("Piped stdin must not be prompted")
	}
	if testingx.FileExists(t, root, "include") {
		t.Error("Nothing should be written without a class name")
	}
}

// stdinIsTerminal makes the in-memory stdin count as a terminal.
func stdinIsTerminal(t *testing.T) {
	t.Helper()
	original := isTerminal
	isTerminal = func(v any) bool { return v != nil }
	t.Cleanup(func() { isTerminal = original })
}

func TestCreate_DryRun(t *testing.T) {
	root := t.TempDir()

	res := run(t, "", nil, "--dir", root, "create", "Zombie", "int _hp", "", "--dry-run")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", res.code, res.stderr)
	}
	testingx.AssertContains(t, res.stdout,
		"==> include/Zombie.hpp <==\n#ifndef ZOMBIE_HPP",
		"==> src/Zombie.cpp <==\n#include \"Zombie.hpp\"")
	if testingx.FileExists(t, root, "include") || testingx.FileExists(t, root, "src") {
		t.Error("Dry run wrote files")
	}
}

func TestCreate_ConfigEnvAndFlags(t *testing.T) {
	root := t.TempDir()
	testingx.WriteFile(t, root, ".classgen.yaml", "header_dir: headers\nsource_dir: sources\nincludes: [vector]\n")

	res := run(t, "", []string{"CLASSGEN_SOURCE_DIR=lib", "UNRELATED=1"}, "--dir", root, "create", "Horde")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", res.code, res.stderr)
	}
	testingx.AssertContains(t, testingx.ReadFile(t, root, "headers/Horde.hpp"), "# include <vector>")
	if !testingx.FileExists(t, root, "lib/Horde.cpp") {
		t.Error("Environment should override the config file source_dir")
	}

	res = run(t, "", []string{"CLASSGEN_SOURCE_DIR=lib"}, "--dir", root, "create", "Brain", "--header-dir", "hdr", "--source-dir", "cpp")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", res.code, res.stderr)
	}
	if !testingx.FileExists(t, root, "hdr/Brain.hpp") || !testingx.FileExists(t, root, "cpp/Brain.cpp") {
		t.Error("Flags should override file and environment")
	}
}

func TestCreate_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		env    []string
		stderr string
	}{
		{name: "bad yaml key", file: "headers: x\n", stderr: "Failed to parse YAML"},
		{name: "bad jobs env", env: []string{"CLASSGEN_JOBS=100"}, stderr: "INVALID_ARGUMENT"},
		{name: "bad log level", env: []string{"CLASSGEN_LOG_LEVEL=loud"}, stderr: "INVALID_ARGUMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.file != "" {
				testingx.WriteFile(t, root, ".classgen.yaml", tt.file)
			}
			res := run(t, "", tt.env, "--dir", root, "create", "Zombie")
			if res.code != 1 {
				t.Fatalf("Expected exit 1, got %d", res.code)
			}
			testingx.AssertContains(t, res.stderr, tt.stderr)
		})
	}
}

func TestCreate_VerboseLogs(t *testing.T) {
	root := t.TempDir()

	res := run(t, "", nil, "--dir", root, "-V", "create", "Zombie")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", res.code, res.stderr)
	}
	testingx.AssertContains(t, res.stderr, `level=DEBUG msg="parsed declarations"`, `class="Zombie"`)
	testingx.AssertContains(t, res.stdout, "DEBUG: Generating class Zombie")
}

func TestBatch(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, "classes.yaml")
	testingx.WriteFile(t, root, "classes.yaml", `
classes:
  - name: Zombie
    variables: std::string _name
    methods:
      - void announce() const
  - name: Horde
    variables: [Zombie* _zombies, int _size]
  - name: Harl
`)

	res := run(t, "", nil, "--dir", root, "--json", "batch", manifest, "--jobs", "2")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s %s", res.code, res.stdout, res.stderr)
	}

	var created []string
	for _, line := range strings.Split(strings.TrimSpace(res.stdout), "\n") {
		var msg ui.Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Fatalf("Invalid JSON line %q: %v", line, err)
		}
		if msg.Level == ui.LevelSuccess {
			data := msg.Data.(map[string]any)
			created = append(created, data["class"].(string))
		}
	}
	if strings.Join(created, ",") != "Zombie,Horde,Harl" {
		t.Errorf("Expected results in manifest order, got %v", created)
	}
	testingx.AssertContains(t, testingx.ReadFile(t, root, "include/Horde.hpp"), "\tZombie* _zombies;", "\tint _size;")
}

func TestBatch_Failure(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, "classes.yaml")
	testingx.WriteFile(t, root, "classes.yaml", "classes:\n  - name: Good\n  - name: Bad\n    variables: int\n")

	res := run(t, "", nil, "--dir", root, "batch", manifest)
	if res.code != 1 {
		t.Fatalf("Expected exit 1, got %d", res.code)
	}
	testingx.AssertContains(t, res.stderr, "Bad: MALFORMED_DECLARATION", "1 of 2 classes failed")
	testingx.AssertContains(t, res.stdout, "Good: created include/Good.hpp and src/Good.cpp")
	if !testingx.FileExists(t, root, "include/Good.hpp") {
		t.Error("Good class should still be generated")
	}
}

func TestBatch_InvalidManifest(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, "classes.yaml")
	testingx.WriteFile(t, root, "classes.yaml", "classes:\n  - name: A\n  - name: A\n")

	res := run(t, "", nil, "--dir", root, "batch", manifest)
	if res.code != 1 {
		t.Fatalf("Expected exit 1, got %d", res.code)
	}
	testingx.AssertContains(t, res.stderr, "listed twice")
	if testingx.FileExists(t, root, "include") {
		t.Error("Invalid manifest must not generate anything")
	}
}

func TestGuard(t *testing.T) {
	res := run(t, "", nil, "guard", "My_Class")
	if res.code != 0 || res.stdout != "MY_CLASS_HPP\n" {
		t.Errorf("Unexpected result %+v", res)
	}

	res = run(t, "", nil, "guard", "not valid")
	if res.code != 1 {
		t.Errorf("Expected exit 1 for invalid class name, got %d", res.code)
	}
}

func TestVersion(t *testing.T) {
	res := run(t, "", nil, "version")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d", res.code)
	}
	testingx.AssertContains(t, res.stdout, "classgen version", "go version")
}

func TestDoctor(t *testing.T) {
	root := t.TempDir()
	testingx.WriteFile(t, root, "include/Zombie.hpp", "x")

	res := run(t, "", nil, "--dir", root, "doctor")
	if res.code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", res.code, res.stderr)
	}
	testingx.AssertContains(t, res.stdout,
		"[+] 2 templates parse",
		"[+] header_dir include is writable (1 files)",
		"[-] source_dir src does not exist yet",
		"Ready to generate classes")
}

func TestDoctor_Problems(t *testing.T) {
	root := t.TempDir()
	testingx.WriteFile(t, root, ".classgen.yaml", "header_dir: ../include\njobs: 0\n")

	res := run(t, "", []string{"CLASSGEN_LOG_FORMAT=xml"}, "--dir", root, "doctor")
	if res.code != 1 {
		t.Fatalf("Expected exit 1, got %d", res.code)
	}
	testingx.AssertContains(t, res.stdout, "[!] warning: header_dir: Directory is outside the project root")
	testingx.AssertContains(t, res.stderr, "[x] error: jobs:", "[x] INVALID_ARGUMENT", "doctor found 2 problem(s)")
}
