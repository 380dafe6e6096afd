package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "fileninja.log")

	logger, err := New(Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("file moved", String(FieldPath, "/tmp/report.docx"), Int("attempt", 1))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "file moved") {
		t.Fatalf("log output missing message: %q", content)
	}
	if !strings.Contains(content, "path=/tmp/report.docx") {
		t.Fatalf("log output missing path attr: %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestComponentPrefixInConsoleOutput(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	logger, err := New(Options{Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	NewComponentLogger(logger, "watcher").Info("session started")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "watcher: session started") {
		t.Fatalf("expected component prefix, got %q", string(data))
	}
}

func TestParseLevelDefaults(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"warn":    "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"bogus":   "INFO",
		" Error ": "ERROR",
	}
	for input, want := range cases {
		if got := levelLabel(parseLevel(input)); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}
