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
	"net/http"
	"strconv"
	"time"
)

const (
	defaultWaitInterval = 50 * time.Millisecond
	defaultWaitTimeout  = 5 * time.Second

	// Index creation and primary key updates can queue behind document
	// indexing, so internal waits on them use a longer timeout.
	indexCreateTimeout = 100 * time.Second
)

// waitConfig holds the polling parameters for WaitForTask.
type waitConfig struct {
	interval time.Duration
	timeout  time.Duration
}

// WaitOption configures WaitForTask.
type WaitOption func(*waitConfig)

// WithWaitInterval sets the polling interval.
// Default is 50ms.
func WithWaitInterval(interval time.Duration) WaitOption {
	return func(cfg *waitConfig) {
		if interval > 0 {
			cfg.interval = interval
		}
	}
}

// WithWaitTimeout sets how long to poll before giving up with
// ErrTaskTimeout.
// Default is 5s.
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(cfg *waitConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// GetTask retrieves a single task.
func (c *Client) GetTask(ctx context.Context, taskUID int64) (*Task, error) {
	var task Task
	path := "tasks/" + strconv.FormatInt(taskUID, 10)
	if err := c.send(ctx, http.MethodGet, path, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTasks retrieves all tasks.
func (c *Client) GetTasks(ctx context.Context) (*TasksResults, error) {
	var results TasksResults
	if err := c.send(ctx, http.MethodGet, "tasks", nil, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// WaitForTask polls the task until it succeeds or fails, returning the
// final task. ErrTaskTimeout is returned when the task does not reach a
// terminal status within the wait timeout; the context cancels the wait
// early.
func (c *Client) WaitForTask(ctx context.Context, taskUID int64, opts ...WaitOption) (*Task, error) {
	cfg := &waitConfig{
		interval: defaultWaitInterval,
		timeout:  defaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	deadline := time.Now().Add(cfg.timeout)
	for {
		task, err := c.GetTask(ctx, taskUID)
		if err != nil {
			return nil, err
		}
		if task.Finished() {
			return task, nil
		}

		if time.Now().After(deadline) {
			c.logger.Debug("task wait timed out", "taskUid", taskUID, "status", task.Status)
			return nil, ErrTaskTimeout
		}

		timer := time.NewTimer(cfg.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
