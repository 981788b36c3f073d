// Package cloud is the client side of the save service: list remote saves,
// load one into a League, or store the current League under a key. The
// drivers issue one request at a time and abandon a failed operation without
// retrying.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cbbgm/cbbgm/internal/league"
)

// SaveInfo is one remote save listing row.
type SaveInfo struct {
	Key       string `json:"key"`
	Size      int    `json:"size"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Client talks to one save service.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client for the service at base URL, e.g. "http://localhost:8080".
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// List fetches the remote save listing.
func (c *Client) List(ctx context.Context) ([]SaveInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/saves", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing cloud saves: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list", resp)
	}
	var out []SaveInfo
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding save listing: %w", err)
	}
	return out, nil
}

// Load fetches and deserializes the league stored under key.
func (c *Client) Load(ctx context.Context, key string) (*league.League, error) {
	u := c.base + "/api/saves/get?key=" + url.QueryEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loading cloud save %q: %w", key, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no league stored under %q", key)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("load", resp)
	}
	var payload struct {
		Key  string `json:"key"`
		Data string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding save payload: %w", err)
	}
	var l league.League
	if err := json.Unmarshal([]byte(payload.Data), &l); err != nil {
		return nil, fmt.Errorf("save %q holds malformed league JSON: %w", key, err)
	}
	return &l, nil
}

// Save serializes the league and stores it under key.
func (c *Client) Save(ctx context.Context, key string, l *league.League) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("serializing league: %w", err)
	}
	body, err := json.Marshal(map[string]string{"key": key, "data": string(data)})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/saves/put", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storing cloud save %q: %w", key, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError("save", resp)
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
	return fmt.Errorf("cloud %s failed: %s: %s", op, resp.Status, strings.TrimSpace(string(snippet)))
}
