// Copyright 2026 Lumisearch
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package meili

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client connects to a Meilisearch instance and exposes the instance
// level routes. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key sent as a bearer token on every request.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithTimeout sets the request timeout. Default is no timeout; use the
// request context for per-call deadlines.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient creates a client for the Meilisearch instance at url,
// e.g. "http://localhost:7700".
func NewClient(url string, opts ...ClientOption) (*Client, error) {
	if url == "" {
		return nil, ErrBaseURLRequired
	}

	c := &Client{
		baseURL: strings.TrimSuffix(url, "/"),
		http:    &http.Client{},
		logger:  slog.Default().With("component", "meili-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Health returns the status of the server.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.send(ctx, http.MethodGet, "health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// IsHealthy reports whether the server answers the health route without
// error. Communication failures are reported as unhealthy, not errors.
func (c *Client) IsHealthy(ctx context.Context) bool {
	health, err := c.Health(ctx)
	return err == nil && health.Status == "available"
}

// Version returns the Meilisearch build information.
func (c *Client) Version(ctx context.Context) (*Version, error) {
	var version Version
	if err := c.send(ctx, http.MethodGet, "version", nil, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// Stats returns database size and stats for all indexes.
func (c *Client) Stats(ctx context.Context) (*ClientStats, error) {
	var stats ClientStats
	if err := c.send(ctx, http.MethodGet, "stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateDump triggers the creation of a dump.
func (c *Client) CreateDump(ctx context.Context) (*DumpInfo, error) {
	var info DumpInfo
	if err := c.send(ctx, http.MethodPost, "dumps", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DumpStatus retrieves the status of a dump creation.
func (c *Client) DumpStatus(ctx context.Context, uid string) (*DumpInfo, error) {
	var info DumpInfo
	if err := c.send(ctx, http.MethodGet, "dumps/"+uid+"/status", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Index returns a local handle for the index identified by uid without
// making an HTTP call.
func (c *Client) Index(uid string) *Index {
	return newIndex(c, uid)
}

// CreateIndex creates a new index, waits for the creation task to finish
// and returns a handle with the index information populated.
func (c *Client) CreateIndex(ctx context.Context, uid, primaryKey string) (*Index, error) {
	payload := map[string]string{"uid": uid}
	if primaryKey != "" {
		payload["primaryKey"] = primaryKey
	}

	var info TaskInfo
	if err := c.send(ctx, http.MethodPost, "indexes", payload, &info); err != nil {
		return nil, err
	}
	task, err := c.WaitForTask(ctx, info.TaskUID, WithWaitTimeout(indexCreateTimeout))
	if err != nil {
		return nil, err
	}
	if task.Status != TaskStatusSucceeded {
		if task.Error != nil {
			return nil, fmt.Errorf("create index %q: %w", uid, task.Error)
		}
		return nil, fmt.Errorf("create index %q: task %s", uid, task.Status)
	}
	return c.GetIndex(ctx, uid)
}

// GetIndex fetches a single index by uid.
func (c *Client) GetIndex(ctx context.Context, uid string) (*Index, error) {
	index := newIndex(c, uid)
	if err := index.FetchInfo(ctx); err != nil {
		return nil, err
	}
	return index, nil
}

// GetIndexes returns handles for all indexes.
func (c *Client) GetIndexes(ctx context.Context) ([]*Index, error) {
	infos, err := c.GetRawIndexes(ctx)
	if err != nil {
		return nil, err
	}

	indexes := make([]*Index, 0, len(infos))
	for _, info := range infos {
		index := newIndex(c, info.UID)
		index.PrimaryKey = info.PrimaryKey
		index.CreatedAt = info.CreatedAt.Time
		index.UpdatedAt = info.UpdatedAt.Time
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// GetRawIndex returns the index information for uid, or nil when the
// index does not exist.
func (c *Client) GetRawIndex(ctx context.Context, uid string) (*IndexInfo, error) {
	var info IndexInfo
	err := c.send(ctx, http.MethodGet, "indexes/"+uid, nil, &info)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// GetRawIndexes returns the information of all indexes.
func (c *Client) GetRawIndexes(ctx context.Context) ([]IndexInfo, error) {
	var infos []IndexInfo
	if err := c.send(ctx, http.MethodGet, "indexes", nil, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// GetOrCreateIndex fetches the index, creating it when it does not exist.
func (c *Client) GetOrCreateIndex(ctx context.Context, uid, primaryKey string) (*Index, error) {
	index, err := c.GetIndex(ctx, uid)
	if err == nil {
		return index, nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.Contains(apiErr.Code, "index_not_found") {
		return c.CreateIndex(ctx, uid, primaryKey)
	}
	return nil, err
}

// DeleteIndexIfExists deletes the index and reports whether an index was
// actually removed.
func (c *Client) DeleteIndexIfExists(ctx context.Context, uid string) (bool, error) {
	var info TaskInfo
	if err := c.send(ctx, http.MethodDelete, "indexes/"+uid, nil, &info); err != nil {
		return false, err
	}
	task, err := c.WaitForTask(ctx, info.TaskUID)
	if err != nil {
		return false, err
	}
	return task.Status == TaskStatusSucceeded, nil
}

// CreateKey creates a new API key. ExpiresAt, when set, should be in
// UTC.
func (c *Client) CreateKey(ctx context.Context, key KeyCreate) (*Key, error) {
	var created Key
	if err := c.send(ctx, http.MethodPost, "keys", key, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetKey retrieves a single API key.
func (c *Client) GetKey(ctx context.Context, key string) (*Key, error) {
	var found Key
	if err := c.send(ctx, http.MethodGet, "keys/"+key, nil, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// GetKeys returns all API keys.
func (c *Client) GetKeys(ctx context.Context) ([]Key, error) {
	var results keysResults
	if err := c.send(ctx, http.MethodGet, "keys", nil, &results); err != nil {
		return nil, err
	}
	return results.Results, nil
}

// UpdateKey updates an API key.
func (c *Client) UpdateKey(ctx context.Context, key KeyUpdate) (*Key, error) {
	var updated Key
	if err := c.send(ctx, http.MethodPatch, "keys/"+key.Key, key, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteKey deletes an API key.
func (c *Client) DeleteKey(ctx context.Context, key string) error {
	return c.send(ctx, http.MethodDelete, "keys/"+key, nil, nil)
}
