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
	"errors"
	"fmt"
)

// Client usage errors
var (
	// ErrBaseURLRequired indicates NewClient was called without a URL.
	ErrBaseURLRequired = errors.New("base URL is required")

	// ErrInvalidKey indicates a key with actions other than search was used
	// to sign a tenant token.
	ErrInvalidKey = errors.New("only search keys can be used for tenant tokens")

	// ErrInvalidRestriction indicates a tenant token restriction is less
	// strict than the permissions of the signing key.
	ErrInvalidRestriction = errors.New("token cannot be less restrictive than the API key")

	// ErrKeyNotFound indicates no default search API key could be found.
	ErrKeyNotFound = errors.New("no API search key found")

	// ErrInvalidDocument indicates a json document payload is not an array.
	ErrInvalidDocument = errors.New("documents must be an array")

	// ErrNoDocumentsFound indicates a directory contained no files of the
	// requested document type.
	ErrNoDocumentsFound = errors.New("no document files found")

	// ErrInvalidDocumentType indicates a file extension outside of json,
	// ndjson and csv.
	ErrInvalidDocumentType = errors.New("file must be a json, ndjson, or csv file")

	// ErrInvalidRawDocumentType indicates a raw upload with an extension
	// other than csv or ndjson.
	ErrInvalidRawDocumentType = errors.New("only csv and ndjson files can be sent as raw files")

	// ErrTaskTimeout indicates a task did not finish within the wait timeout.
	ErrTaskTimeout = errors.New("timeout waiting for task to complete")
)

// APIError is an error response returned by the Meilisearch API.
// The fields mirror the error object documented at
// https://docs.meilisearch.com/reference/api/error_codes.html
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Code identifies the error, e.g. "index_not_found".
	Code string `json:"code"`

	// Message is the human readable description.
	Message string `json:"message"`

	// Type classifies the error, e.g. "invalid_request".
	Type string `json:"type"`

	// Link points at the documentation for the error.
	Link string `json:"link"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("meilisearch api error: http status %d", e.StatusCode)
	}
	return fmt.Sprintf("meilisearch api error: %s (%s)", e.Message, e.Code)
}

// CommunicationError wraps a transport level failure talking to the server.
type CommunicationError struct {
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("error communicating with meilisearch: %v", e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}
