package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestRun_RequiresFlags(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	if err := execute(t, "run"); err == nil {
		t.Fatal("expected error when --input/--output are missing")
	}
}

func TestRun_MissingAPIKeyIsConfigurationError(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("GEMINI_API_KEY", "")

	dir := t.TempDir()
	err := execute(t,
		"run",
		"--input", filepath.Join(dir, "in.pdf"),
		"--output", filepath.Join(dir, "out.pdf"),
	)
	if err == nil {
		t.Fatal("expected configuration error without API key")
	}
	if !strings.Contains(err.Error(), "configuration error") {
		t.Errorf("error = %v, want configuration error", err)
	}
}

func TestRun_MissingInputFails(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("GEMINI_API_KEY", "test-key")

	dir := t.TempDir()
	err := execute(t,
		"run",
		"--input", filepath.Join(dir, "absent.pdf"),
		"--output", filepath.Join(dir, "out.pdf"),
	)
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestRun_MissingOutputDirIsConfigurationError(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("GEMINI_API_KEY", "test-key")

	dir := t.TempDir()
	err := execute(t,
		"run",
		"--input", filepath.Join(dir, "in.pdf"),
		"--output", filepath.Join(dir, "no-such-dir", "out.pdf"),
	)
	if err == nil {
		t.Fatal("expected error for missing output directory")
	}
	if !strings.Contains(err.Error(), "output directory") {
		t.Errorf("error = %v, want output directory complaint", err)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(buf.String(), "pressclip") {
		t.Errorf("unexpected version output: %q", buf.String())
	}
}
