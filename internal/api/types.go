// Package api defines the JSON payloads exchanged between the daemon's HTTP
// surface and its clients, plus a small client used by the CLI.
package api

import (
	"time"

	"fileninja/internal/history"
	"fileninja/internal/stats"
	"fileninja/internal/watch"
)

// StatusResponse reports the daemon's runtime state.
type StatusResponse struct {
	Running         bool     `json:"running"`
	PID             int      `json:"pid"`
	AutoOrganize    bool     `json:"auto_organize"`
	WatchedRoots    []string `json:"watched_roots"`
	PendingCount    int      `json:"pending_count"`
	OrganizedFolder string   `json:"organized_folder"`
	DatabasePath    string   `json:"database_path"`
}

// StatsResponse combines the live destination snapshot with history totals.
type StatsResponse struct {
	Organization stats.Summary      `json:"organization"`
	History      history.Statistics `json:"history"`
}

// HistoryResponse lists movement log entries, newest first.
type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
}

// FileEntry describes one entry in a destination-tree listing.
type FileEntry struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"size_bytes"`
	IsDir      bool      `json:"is_dir"`
	ModifiedAt time.Time `json:"modified_at"`
}

// FilesResponse is a directory listing under the organized folder.
type FilesResponse struct {
	Path    string      `json:"path"`
	Entries []FileEntry `json:"entries"`
}

// OrganizeRequest triggers a manual existing-file scan. An empty folder means
// "all configured watch roots".
type OrganizeRequest struct {
	Folder string `json:"folder,omitempty"`
}

// OrganizeResponse acknowledges a manual scan. The scan itself runs in the
// background; Summary is only populated for synchronous completions.
type OrganizeResponse struct {
	Started bool               `json:"started"`
	Summary *watch.ScanSummary `json:"summary,omitempty"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
