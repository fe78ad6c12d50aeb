package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRunMain_SuccessReturnsZero(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if code := runMain(func() error { return nil }, &out); code != 0 {
		t.Fatalf("runMain() = %d, want 0", code)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestExitCodeForError_Canceled(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	var out bytes.Buffer
	if code := exitCodeForError(context.Canceled, &out); code != 130 {
		t.Fatalf("exitCodeForError() = %d, want 130", code)
	}
}

func TestExitCodeForError_ExitError(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	var out bytes.Buffer
	err := &exitError{code: 2, err: errors.New("boom")}
	if code := exitCodeForError(err, &out); code != 2 {
		t.Fatalf("exitCodeForError() = %d, want 2", code)
	}
	if !strings.Contains(out.String(), "boom") {
		t.Fatalf("error not emitted: %q", out.String())
	}
}

func TestExitCodeForError_SilentExitError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := &exitError{code: 130, err: context.Canceled, silent: true}
	if code := exitCodeForError(err, &out); code != 130 {
		t.Fatalf("exitCodeForError() = %d, want 130", code)
	}
	if out.Len() != 0 {
		t.Fatalf("silent exit produced output: %q", out.String())
	}
}

func TestEmitCommandError_StructuredOutput(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "info")

	var out bytes.Buffer
	emitCommandError(errors.New("boom"), "command failed", 1, &out)

	line := strings.TrimSpace(out.String())
	if line == "" {
		t.Fatal("expected structured log output")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got := payload["app"]; got != "opsdeck" {
		t.Fatalf("app = %v, want %q", got, "opsdeck")
	}
	if got := payload["exit_code"]; got != float64(1) {
		t.Fatalf("exit_code = %v, want %v", got, 1)
	}
	if got := payload["error"]; got != "boom" {
		t.Fatalf("error = %v, want %q", got, "boom")
	}
}

func TestEmitCommandError_FallsBackWhenLoggingEnvInvalid(t *testing.T) {
	t.Setenv("LOG_FORMAT", "invalid")
	t.Setenv("LOG_LEVEL", "info")

	var out bytes.Buffer
	emitCommandError(errors.New("boom"), "command failed", 1, &out)

	line := strings.TrimSpace(out.String())
	if line == "" {
		t.Fatal("expected structured log output")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("expected JSON fallback log, got parse error: %v", err)
	}
}
