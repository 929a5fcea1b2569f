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
	"encoding/json"
	"strings"
	"time"
)

// Document is a single Meilisearch document.
type Document map[string]any

// Timestamp is a time.Time that tolerates the long fractional seconds
// Meilisearch sometimes emits. Digits beyond nanosecond precision are
// trimmed before parsing.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := parseMeiliTime(*raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// parseMeiliTime parses an RFC 3339 timestamp, trimming fractional second
// digits beyond nanosecond precision when present.
func parseMeiliTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err == nil {
		return parsed, nil
	}
	dot := strings.IndexByte(value, '.')
	if dot == -1 {
		return time.Time{}, err
	}
	rest := value[dot+1:]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end <= 9 {
		return time.Time{}, err
	}
	trimmed := value[:dot+1] + rest[:9] + rest[end:]
	return time.Parse(time.RFC3339Nano, trimmed)
}

// IndexInfo is the raw representation of an index as returned by the
// indexes routes.
type IndexInfo struct {
	UID        string    `json:"uid"`
	PrimaryKey string    `json:"primaryKey,omitempty"`
	CreatedAt  Timestamp `json:"createdAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
}

// IndexStats holds the stats of a single index.
type IndexStats struct {
	NumberOfDocuments int64            `json:"numberOfDocuments"`
	IsIndexing        bool             `json:"isIndexing"`
	FieldDistribution map[string]int64 `json:"fieldDistribution"`
}

// ClientStats holds database size and stats for all indexes.
type ClientStats struct {
	DatabaseSize int64                 `json:"databaseSize"`
	LastUpdate   Timestamp             `json:"lastUpdate"`
	Indexes      map[string]IndexStats `json:"indexes"`
}

// Health is the status of the Meilisearch server.
type Health struct {
	Status string `json:"status"`
}

// Version describes the Meilisearch build.
type Version struct {
	CommitSha  string `json:"commitSha"`
	CommitDate string `json:"commitDate"`
	PkgVersion string `json:"pkgVersion"`
}

// DumpInfo describes a dump creation task.
type DumpInfo struct {
	UID        string    `json:"uid"`
	Status     string    `json:"status"`
	StartedAt  Timestamp `json:"startedAt"`
	FinishedAt Timestamp `json:"finishedAt"`
}

// Task statuses reported by the tasks routes.
const (
	TaskStatusEnqueued   = "enqueued"
	TaskStatusProcessing = "processing"
	TaskStatusSucceeded  = "succeeded"
	TaskStatusFailed     = "failed"
)

// TaskInfo is the summary returned when an asynchronous operation is
// enqueued.
type TaskInfo struct {
	TaskUID    int64     `json:"taskUid"`
	IndexUID   string    `json:"indexUid"`
	Status     string    `json:"status"`
	Type       string    `json:"type"`
	EnqueuedAt Timestamp `json:"enqueuedAt"`
}

// Task is the full representation of a task from the tasks routes.
type Task struct {
	UID        int64          `json:"uid"`
	IndexUID   string         `json:"indexUid"`
	Status     string         `json:"status"`
	Type       string         `json:"type"`
	Details    map[string]any `json:"details,omitempty"`
	Error      *APIError      `json:"error,omitempty"`
	Duration   string         `json:"duration,omitempty"`
	EnqueuedAt Timestamp      `json:"enqueuedAt"`
	StartedAt  Timestamp      `json:"startedAt"`
	FinishedAt Timestamp      `json:"finishedAt"`
}

// Finished reports whether the task reached a terminal status.
func (t *Task) Finished() bool {
	return t.Status == TaskStatusSucceeded || t.Status == TaskStatusFailed
}

// TasksResults is the paginated response of the list tasks route.
type TasksResults struct {
	Results []Task `json:"results"`
	Limit   int64  `json:"limit"`
	From    int64  `json:"from"`
	Next    int64  `json:"next"`
}

// Key is a Meilisearch API key.
type Key struct {
	Key         string     `json:"key"`
	Description string     `json:"description"`
	Actions     []string   `json:"actions"`
	Indexes     []string   `json:"indexes"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	CreatedAt   Timestamp  `json:"createdAt"`
	UpdatedAt   Timestamp  `json:"updatedAt"`
}

// KeyCreate is the payload for creating an API key. ExpiresAt, when set,
// should be in UTC.
type KeyCreate struct {
	Description string     `json:"description,omitempty"`
	Actions     []string   `json:"actions"`
	Indexes     []string   `json:"indexes"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// KeyUpdate is the payload for updating an API key.
type KeyUpdate struct {
	Key         string     `json:"key"`
	Description string     `json:"description,omitempty"`
	Actions     []string   `json:"actions,omitempty"`
	Indexes     []string   `json:"indexes,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// keysResults is the envelope of the list keys route.
type keysResults struct {
	Results []Key `json:"results"`
}

// DocumentsInfo is the paginated response of the get documents route.
type DocumentsInfo struct {
	Results []Document `json:"results"`
	Offset  int64      `json:"offset"`
	Limit   int64      `json:"limit"`
	Total   int64      `json:"total"`
}

// SearchParams are the optional parameters of a search request. The zero
// value uses the server defaults described on each field.
type SearchParams struct {
	// Offset is the number of documents to skip. Defaults to 0.
	Offset int64

	// Limit is the maximum number of documents returned. Defaults to 20.
	Limit int64

	// Filter restricts results by attribute value. It accepts a string or
	// a (possibly nested) list of strings, matching the filter expressions
	// Meilisearch understands.
	Filter any

	// Facets are the facets for which to retrieve the matching count.
	Facets []string

	// AttributesToRetrieve selects the attributes to include in returned
	// documents. Defaults to all ("*").
	AttributesToRetrieve []string

	// AttributesToCrop lists attributes whose values are cropped.
	AttributesToCrop []string

	// CropLength is the maximum number of words to display. Defaults to 200.
	CropLength int64

	// AttributesToHighlight lists attributes whose matches are highlighted.
	AttributesToHighlight []string

	// Sort orders results by the given attributes.
	Sort []string

	// ShowMatchesPosition includes match position metadata in each hit.
	ShowMatchesPosition bool

	// HighlightPreTag is the opening highlight tag. Defaults to "<em>".
	HighlightPreTag string

	// HighlightPostTag is the closing highlight tag. Defaults to "</em>".
	HighlightPostTag string

	// CropMarker is shown where a cropped value was truncated. Defaults
	// to "...".
	CropMarker string

	// MatchingStrategy selects how query words are matched. Defaults
	// to "all".
	MatchingStrategy string
}

// searchRequest is the wire form of a search request.
type searchRequest struct {
	Query                 string   `json:"q"`
	Offset                int64    `json:"offset"`
	Limit                 int64    `json:"limit"`
	Filter                any      `json:"filter,omitempty"`
	Facets                []string `json:"facets,omitempty"`
	AttributesToRetrieve  []string `json:"attributesToRetrieve"`
	AttributesToCrop      []string `json:"attributesToCrop,omitempty"`
	CropLength            int64    `json:"cropLength"`
	AttributesToHighlight []string `json:"attributesToHighlight,omitempty"`
	Sort                  []string `json:"sort,omitempty"`
	ShowMatchesPosition   bool     `json:"showMatchesPosition"`
	HighlightPreTag       string   `json:"highlightPreTag"`
	HighlightPostTag      string   `json:"highlightPostTag"`
	CropMarker            string   `json:"cropMarker"`
	MatchingStrategy      string   `json:"matchingStrategy"`
}

// SearchResults holds the hits and metadata of a search.
type SearchResults struct {
	Hits               []Document                  `json:"hits"`
	Offset             int64                       `json:"offset"`
	Limit              int64                       `json:"limit"`
	EstimatedTotalHits int64                       `json:"estimatedTotalHits"`
	ProcessingTimeMs   int64                       `json:"processingTimeMs"`
	Query              string                      `json:"query"`
	FacetDistribution  map[string]map[string]int64 `json:"facetDistribution,omitempty"`
}

// MinWordSizeForTypos configures at which word lengths one and two typos
// are tolerated.
type MinWordSizeForTypos struct {
	OneTypo  int64 `json:"oneTypo,omitempty"`
	TwoTypos int64 `json:"twoTypos,omitempty"`
}

// TypoTolerance is the typo tolerance settings of an index.
type TypoTolerance struct {
	Enabled             bool                 `json:"enabled"`
	DisableOnAttributes []string             `json:"disableOnAttributes,omitempty"`
	DisableOnWords      []string             `json:"disableOnWords,omitempty"`
	MinWordSizeForTypos *MinWordSizeForTypos `json:"minWordSizeForTypos,omitempty"`
}

// Faceting is the faceting settings of an index.
type Faceting struct {
	MaxValuesPerFacet int64 `json:"maxValuesPerFacet"`
}

// Settings is the full settings object of an index. Nil fields are
// omitted from update payloads so partial updates leave the remaining
// settings untouched.
type Settings struct {
	Synonyms             map[string][]string `json:"synonyms,omitempty"`
	StopWords            []string            `json:"stopWords,omitempty"`
	RankingRules         []string            `json:"rankingRules,omitempty"`
	FilterableAttributes []string            `json:"filterableAttributes,omitempty"`
	DistinctAttribute    *string             `json:"distinctAttribute,omitempty"`
	SearchableAttributes []string            `json:"searchableAttributes,omitempty"`
	DisplayedAttributes  []string            `json:"displayedAttributes,omitempty"`
	SortableAttributes   []string            `json:"sortableAttributes,omitempty"`
	TypoTolerance        *TypoTolerance      `json:"typoTolerance,omitempty"`
	Faceting             *Faceting           `json:"faceting,omitempty"`
}
