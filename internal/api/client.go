package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a running daemon over its HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the daemon bound at addr (host:port).
func NewClient(addr string) *Client {
	trimmed := strings.TrimSpace(addr)
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	return &Client{
		baseURL: strings.TrimRight(trimmed, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Status fetches the daemon runtime state.
func (c *Client) Status(ctx context.Context) (StatusResponse, error) {
	var out StatusResponse
	err := c.get(ctx, "/api/status", nil, &out)
	return out, err
}

// Stats fetches organization and history statistics.
func (c *Client) Stats(ctx context.Context) (StatsResponse, error) {
	var out StatsResponse
	err := c.get(ctx, "/api/stats", nil, &out)
	return out, err
}

// History fetches movement log entries with optional filters.
func (c *Client) History(ctx context.Context, limit int, category, tag string) (HistoryResponse, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if category != "" {
		values.Set("category", category)
	}
	if tag != "" {
		values.Set("tag", tag)
	}
	var out HistoryResponse
	err := c.get(ctx, "/api/history", values, &out)
	return out, err
}

// Files lists the destination tree at the given relative path.
func (c *Client) Files(ctx context.Context, path string) (FilesResponse, error) {
	values := url.Values{}
	if path != "" {
		values.Set("path", path)
	}
	var out FilesResponse
	err := c.get(ctx, "/api/files", values, &out)
	return out, err
}

// Organize asks the daemon to run a manual scan of folder (or all roots when
// empty).
func (c *Client) Organize(ctx context.Context, folder string) (OrganizeResponse, error) {
	body, err := json.Marshal(OrganizeRequest{Folder: folder})
	if err != nil {
		return OrganizeResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/organize", bytes.NewReader(body))
	if err != nil {
		return OrganizeResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out OrganizeResponse
	if err := c.do(req, &out); err != nil {
		return OrganizeResponse{}, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, values url.Values, out any) error {
	target := c.baseURL + path
	if len(values) > 0 {
		target += "?" + values.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon error: %s", apiErr.Error)
		}
		return fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
