package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fileninja/internal/api"
	"fileninja/internal/logging"
	"fileninja/internal/organize"
)

func newTestAPI(t *testing.T) (*Daemon, *httptest.Server) {
	t.Helper()
	cfg := testConfig(t)
	d := newTestDaemon(t, cfg)
	srv := newAPIServer(cfg, d, logging.NewNop())
	if srv == nil {
		t.Fatal("expected api server")
	}
	ts := httptest.NewServer(srv.server.Handler)
	t.Cleanup(ts.Close)
	return d, ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp
}

func TestAPIStatus(t *testing.T) {
	_, ts := newTestAPI(t)

	var status api.StatusResponse
	resp := getJSON(t, ts.URL+"/api/status", &status)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}
	if status.PID != os.Getpid() {
		t.Fatalf("pid = %d, want %d", status.PID, os.Getpid())
	}
	if status.Running {
		t.Fatal("daemon was never started")
	}
}

func TestAPIStatusMethodNotAllowed(t *testing.T) {
	_, ts := newTestAPI(t)

	resp, err := http.Post(ts.URL+"/api/status", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status code = %d, want 405", resp.StatusCode)
	}
}

func TestAPIHistory(t *testing.T) {
	d, ts := newTestAPI(t)

	record := organize.MoveRecord{
		OriginalName: "invoice.pdf",
		NewPath:      "/organized/Finance_Files/invoice.pdf",
		Category:     "Finance_Files",
		SizeBytes:    42,
		Tags:         []string{"finance", "type_pdf"},
		MovedAt:      time.Now().UTC(),
	}
	if err := d.History().Record(context.Background(), record); err != nil {
		t.Fatalf("record: %v", err)
	}

	var out api.HistoryResponse
	resp := getJSON(t, ts.URL+"/api/history?limit=5", &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}
	if len(out.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(out.Entries))
	}
	if out.Entries[0].Category != "Finance_Files" {
		t.Fatalf("category = %q", out.Entries[0].Category)
	}

	var filtered api.HistoryResponse
	getJSON(t, ts.URL+"/api/history?category=Images", &filtered)
	if len(filtered.Entries) != 0 {
		t.Fatalf("filtered entries = %d, want 0", len(filtered.Entries))
	}
}

func TestAPIStats(t *testing.T) {
	d, ts := newTestAPI(t)

	dest := filepath.Join(d.cfg.OrganizedFolder, "PDFs")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "a.pdf"), []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out api.StatsResponse
	resp := getJSON(t, ts.URL+"/api/stats", &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}
	if out.Organization.TotalFiles != 1 {
		t.Fatalf("total files = %d, want 1", out.Organization.TotalFiles)
	}
}

func TestAPIFiles(t *testing.T) {
	d, ts := newTestAPI(t)

	dest := filepath.Join(d.cfg.OrganizedFolder, "Images")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "photo.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	var root api.FilesResponse
	getJSON(t, ts.URL+"/api/files", &root)
	if len(root.Entries) != 1 || root.Entries[0].Name != "Images" || !root.Entries[0].IsDir {
		t.Fatalf("root entries = %+v", root.Entries)
	}

	var sub api.FilesResponse
	getJSON(t, ts.URL+"/api/files?path=Images", &sub)
	if len(sub.Entries) != 1 || sub.Entries[0].Name != "photo.png" {
		t.Fatalf("sub entries = %+v", sub.Entries)
	}
	if sub.Entries[0].SizeBytes != 3 {
		t.Fatalf("size = %d", sub.Entries[0].SizeBytes)
	}
}

func TestAPIFilesRejectsTraversal(t *testing.T) {
	_, ts := newTestAPI(t)

	resp := getJSON(t, ts.URL+"/api/files?path=../outside", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status code = %d, want 400", resp.StatusCode)
	}
}

func TestAPIFilesMissingFolder(t *testing.T) {
	_, ts := newTestAPI(t)

	resp := getJSON(t, ts.URL+"/api/files?path=Nothing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status code = %d, want 404", resp.StatusCode)
	}
}

func TestAPIOrganize(t *testing.T) {
	d, ts := newTestAPI(t)

	source := filepath.Join(d.cfg.WatchedFolders[0], "notes.txt")
	if err := os.WriteFile(source, []byte("study notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	body, _ := json.Marshal(api.OrganizeRequest{})
	resp, err := http.Post(ts.URL+"/api/organize", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status code = %d, want 202", resp.StatusCode)
	}
	var out api.OrganizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !out.Started {
		t.Fatal("expected started response")
	}

	want := filepath.Join(d.cfg.OrganizedFolder, "Education_Files", "notes.txt")
	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, err := os.Stat(want); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("file never arrived at %s", want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
