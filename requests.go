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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	contentTypeJSON   = "application/json"
	contentTypeCSV    = "text/csv"
	contentTypeNDJSON = "application/x-ndjson"
)

// send issues a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func (c *Client) send(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		payload = encoded
		contentType = contentTypeJSON
	}
	return c.sendRaw(ctx, method, path, payload, contentType, out)
}

// sendRaw issues a request with a preencoded body. Non-2xx responses are
// mapped to an APIError, transport failures to a CommunicationError.
func (c *Client) sendRaw(ctx context.Context, method, path string, body []byte, contentType string, out any) error {
	url := c.baseURL + "/" + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug("sending request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return &CommunicationError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &CommunicationError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// newAPIError builds an APIError from an error response body. Bodies that
// are not the documented error object still produce an APIError carrying
// the status code.
func newAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}
	if len(body) > 0 {
		// Best effort decode; the status code alone is still useful.
		_ = json.Unmarshal(body, apiErr)
	}
	return apiErr
}
