package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"vibes", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"vibes", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"vibes"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandCheckOnly(t *testing.T) {
	scriptPath := writeScript(t, `v = vec.new(1, 2, 3)
undefined_at_runtime + v`)

	if err := runCommand([]string{"-check", scriptPath}); err != nil {
		t.Fatalf("runCommand check failed: %v", err)
	}
}

func TestRunCommandCheckReportsParseErrors(t *testing.T) {
	scriptPath := writeScript(t, `v = vec.new(1, 2`)

	err := runCommand([]string{"-check", scriptPath})
	if err == nil {
		t.Fatalf("expected compile error")
	}
	if !strings.Contains(err.Error(), "compile") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandPrintsResult(t *testing.T) {
	scriptPath := writeScript(t, `a = vec.new(1, 2, 3)
b = vec.new(4, 5, 6, 7)
vec.dot(a, b)`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "32" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestRunCommandNilResultPrintsNothing(t *testing.T) {
	scriptPath := writeScript(t, `nil`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty stdout, got %q", out)
	}
}

func TestRunCommandKeepsScriptOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, source := range []string{`"first"`, `"second"`, `"third"`} {
		paths = append(paths, writeNamedScript(t, dir, "script"+string(rune('a'+i))+".vibe", source))
	}

	out, err := captureStdout(t, func() error {
		return runCommand(paths)
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "first\nsecond\nthird" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestRunCommandStats(t *testing.T) {
	scriptPath := writeScript(t, `for i in 1..50
  vec.new(i, i, i)
end
collect()
"done"`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-stats", scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if !strings.Contains(out, "done") {
		t.Fatalf("missing script result: %q", out)
	}
	if !strings.Contains(out, "script.vibe: heap") || !strings.Contains(out, "cycles") {
		t.Fatalf("missing heap statistics: %q", out)
	}
}

func TestRunCommandRequiresScriptPath(t *testing.T) {
	err := runCommand(nil)
	if err == nil {
		t.Fatalf("expected script path error")
	}
	if !strings.Contains(err.Error(), "script path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandRuntimeError(t *testing.T) {
	scriptPath := writeScript(t, `vec.new(1, 2) + "x"`)

	err := runCommand([]string{scriptPath})
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	if !strings.Contains(err.Error(), "execution failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandVectorKindFlag(t *testing.T) {
	scriptPath := writeScript(t, `type(vec.new(1, 2, 3))`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-vector-kind", "boxed", scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "vec.box" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestRunCommandInvalidVectorKind(t *testing.T) {
	scriptPath := writeScript(t, `1`)

	err := runCommand([]string{"-vector-kind", "packed", scriptPath})
	if err == nil {
		t.Fatalf("expected vector kind error")
	}
	if !strings.Contains(err.Error(), "unknown vector kind") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandStepQuotaFlag(t *testing.T) {
	scriptPath := writeScript(t, `total = 0
for i in 1..100000
  total = total + i
end
total`)

	err := runCommand([]string{"-step-quota", "100", scriptPath})
	if err == nil {
		t.Fatalf("expected step quota error")
	}
	if !strings.Contains(err.Error(), "step quota exceeded") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := writeNamedScript(t, dir, "vibes.yaml", `vector_kind: boxed
memory_quota_bytes: 1048576
log_level: error
gc:
  pause: 150
  step_mul: 200
`)
	scriptPath := writeNamedScript(t, dir, "script.vibe", `v = vec.new(1, 2, 3)
v[1] = 9
[type(v), v[1]]`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-config", configPath, scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "[vec.box, 9]" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	configPath := writeNamedScript(t, t.TempDir(), "vibes.yaml", "vector_knd: boxed\n")

	_, err := loadConfig(configPath)
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
	if !strings.Contains(err.Error(), "vector_knd") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.VectorKind != "" || cfg.StepQuota != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := newLogger("loud"); err == nil {
		t.Fatalf("expected log level error")
	}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	return writeNamedScript(t, t.TempDir(), "script.vibe", source)
}

func writeNamedScript(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
