package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	inbox := filepath.Join(base, "inbox")
	if err := os.MkdirAll(inbox, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := map[string]any{
		"watched_folders":  []string{inbox},
		"organized_folder": filepath.Join(base, "organized"),
		"auto_organize":    false,
		"delay_seconds":    0.05,
		"data_dir":         filepath.Join(base, "data"),
		"log_dir":          filepath.Join(base, "logs"),
	}
	payload, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(base, "fileninja.json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

func TestRootShowsHelp(t *testing.T) {
	out, err := runCLI(t)
	if err != nil {
		t.Fatalf("root command: %v", err)
	}
	requireContains(t, out, "fileninja")
	requireContains(t, out, "organize")
}

func TestClassifyCommand(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "-c", configPath, "classify", "invoice_2023.pdf", "diagram.png")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, out, "Finance_Files")
	requireContains(t, out, "Images")
	requireContains(t, out, "finance")
}

func TestOrganizeCommandLocal(t *testing.T) {
	configPath := writeTestConfig(t)

	base := filepath.Dir(configPath)
	source := filepath.Join(base, "inbox", "notes.txt")
	if err := os.WriteFile(source, []byte("lecture notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "-c", configPath, "organize", "--local")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Organized 1 file(s)")

	moved := filepath.Join(base, "organized", "Education_Files", "notes.txt")
	if _, err := os.Stat(moved); err != nil {
		t.Fatalf("expected organized file at %s: %v", moved, err)
	}
}
