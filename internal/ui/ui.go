// Package ui provides user-facing console output for the classgen CLI.
//
// Overview:
//   - Responsibility: Leveled messages, confirmations, prompts and JSON output mode
//   - Key Types: OutputLevel, Message
//   - Concurrency Model: Global settings guarded by an RWMutex; writes are serialized
//   - Error Semantics: Prompt returns an error in non-interactive mode or on read failure
//   - Performance Notes: Direct writes, no buffering
//
// Usage:
//
//	ui.SetVerbose(true)
//	ui.Info("Generating %s", name)
//	ui.Success("Created %s", path)
package ui

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.eggybyte.com/classgen/core/errors"
)

var (
	verbose        bool
	nonInteractive bool
	jsonOutput     bool
	stdout         io.Writer = os.Stdout
	stderr         io.Writer = os.Stderr
	stdin          *bufio.Reader
	mu             sync.RWMutex
	writeMu        sync.Mutex
)

// OutputLevel represents the level of output.
type OutputLevel string

const (
	LevelDebug   OutputLevel = "debug"
	LevelInfo    OutputLevel = "info"
	LevelWarning OutputLevel = "warning"
	LevelError   OutputLevel = "error"
	LevelSuccess OutputLevel = "success"
)

// Message represents a structured output message.
type Message struct {
	Level     OutputLevel `json:"level"`
	Text      string      `json:"text"`
	Data      any         `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SetVerbose enables or disables debug output.
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// SetNonInteractive disables confirmations and prompts.
func SetNonInteractive(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	nonInteractive = enabled
}

// IsNonInteractive reports whether prompts are disabled.
func IsNonInteractive() bool {
	mu.RLock()
	defer mu.RUnlock()
	return nonInteractive
}

// SetJSONOutput switches every message to one JSON object per line on stdout.
func SetJSONOutput(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOutput = enabled
}

// IsJSONOutput reports whether JSON output mode is on.
func IsJSONOutput() bool {
	mu.RLock()
	defer mu.RUnlock()
	return jsonOutput
}

// SetOutput redirects standard and error output. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// SetInput sets the reader used by Confirm and Prompt.
func SetInput(in io.Reader) {
	mu.Lock()
	defer mu.Unlock()
	stdin = bufio.NewReader(in)
}

// Reset restores the default settings and writers.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	verbose, nonInteractive, jsonOutput = false, false, false
	stdout, stderr, stdin = os.Stdout, os.Stderr, nil
}

func snapshot() (useJSON, useVerbose bool, out, errOut io.Writer) {
	mu.RLock()
	defer mu.RUnlock()
	return jsonOutput, verbose, stdout, stderr
}

func emit(level OutputLevel, text string, data any) {
	useJSON, useVerbose, out, errOut := snapshot()

	if level == LevelDebug && !useVerbose {
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	if useJSON {
		message := Message{
			Level:     level,
			Text:      text,
			Data:      data,
			Timestamp: time.Now(),
		}
		if err := json.NewEncoder(out).Encode(message); err != nil {
			fmt.Fprintf(errOut, "Failed to encode JSON output: %v\n", err)
		}
		return
	}

	writer := out
	if level == LevelError {
		writer = errOut
	}

	var prefix string
	switch level {
	case LevelDebug:
		prefix = "🔍 DEBUG:"
	case LevelInfo:
		prefix = "ℹ️  INFO:"
	case LevelWarning:
		prefix = "⚠️  WARN:"
	case LevelError:
		prefix = "❌ ERROR:"
	case LevelSuccess:
		prefix = "✅ SUCCESS:"
	}

	fmt.Fprintf(writer, "%s %s\n", prefix, text)
}

// Debug prints a debug message when verbose mode is on.
func Debug(format string, args ...any) {
	emit(LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Info prints an informational message.
func Info(format string, args ...any) {
	emit(LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warning prints a warning message.
func Warning(format string, args ...any) {
	emit(LevelWarning, fmt.Sprintf(format, args...), nil)
}

// Error prints an error message to stderr (stdout in JSON mode).
func Error(format string, args ...any) {
	emit(LevelError, fmt.Sprintf(format, args...), nil)
}

// Success prints a success message.
func Success(format string, args ...any) {
	emit(LevelSuccess, fmt.Sprintf(format, args...), nil)
}

// Result prints a message carrying structured data. In text mode only the
// text is shown.
func Result(level OutputLevel, data any, format string, args ...any) {
	emit(level, fmt.Sprintf(format, args...), data)
}

// Block prints content verbatim under a title. In JSON mode the content is
// carried in the message data.
func Block(title, content string) {
	useJSON, _, out, _ := snapshot()
	if useJSON {
		emit(LevelInfo, title, map[string]string{"content": content})
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	fmt.Fprintf(out, "==> %s <==\n%s", title, content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Fprintln(out)
	}
}

// Step prints a numbered step.
func Step(step, total int, format string, args ...any) {
	useJSON, _, out, _ := snapshot()
	if useJSON {
		Info(format, args...)
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	fmt.Fprintf(out, "  [%d/%d] %s\n", step, total, fmt.Sprintf(format, args...))
}

func readLine() (string, error) {
	mu.Lock()
	if stdin == nil {
		stdin = bufio.NewReader(os.Stdin)
	}
	in := stdin
	mu.Unlock()

	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question. Non-interactive mode answers yes.
func Confirm(format string, args ...any) bool {
	if IsNonInteractive() {
		return true
	}

	_, _, out, _ := snapshot()
	fmt.Fprintf(out, "❓ %s [y/N]: ", fmt.Sprintf(format, args...))

	response, err := readLine()
	if err != nil {
		return false
	}
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y" || response == "yes"
}

// Prompt asks for one line of free text.
//
// Parameters:
//   - label: Question shown to the user
//   - hint: Example input shown after the label; may be empty
//
// Returns:
//   - string: The line entered, trimmed
//   - error: INVALID_ARGUMENT in non-interactive mode, INTERNAL on read failure
//
// Concurrency:
//   - Not safe for concurrent prompting
//
// Performance:
//   - Blocks on user input
func Prompt(label, hint string) (string, error) {
	if IsNonInteractive() {
		return "", errors.Newf(errors.CodeInvalidArgument, "cannot prompt for %s in non-interactive mode", strings.ToLower(label))
	}

	_, _, out, _ := snapshot()
	if hint != "" {
		fmt.Fprintf(out, "❓ %s (e.g. %s): ", label, hint)
	} else {
		fmt.Fprintf(out, "❓ %s: ", label)
	}

	line, err := readLine()
	if err != nil {
		return "", errors.Wrapf(errors.CodeInternal, "ui.Prompt", err, "failed to read %s", strings.ToLower(label))
	}
	return strings.TrimSpace(line), nil
}
