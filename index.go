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
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Index is a handle to a single index and its child routes.
// https://docs.meilisearch.com/reference/api/indexes.html
type Index struct {
	UID        string
	PrimaryKey string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	client *Client
}

func newIndex(c *Client, uid string) *Index {
	return &Index{UID: uid, client: c}
}

func (i *Index) String() string {
	return fmt.Sprintf("Index(uid=%s, primaryKey=%s)", i.UID, i.PrimaryKey)
}

func (i *Index) path() string {
	return "indexes/" + i.UID
}

func (i *Index) documentsPath() string {
	return i.path() + "/documents"
}

// FetchInfo refreshes the index information from the server.
func (i *Index) FetchInfo(ctx context.Context) error {
	var info IndexInfo
	if err := i.client.send(ctx, http.MethodGet, i.path(), nil, &info); err != nil {
		return err
	}
	i.PrimaryKey = info.PrimaryKey
	i.CreatedAt = info.CreatedAt.Time
	i.UpdatedAt = info.UpdatedAt.Time
	return nil
}

// GetPrimaryKey fetches the current primary key of the index. An empty
// string means no primary key has been set yet.
func (i *Index) GetPrimaryKey(ctx context.Context) (string, error) {
	if err := i.FetchInfo(ctx); err != nil {
		return "", err
	}
	return i.PrimaryKey, nil
}

// Update changes the primary key of the index and waits for the task to
// finish. The primary key can only be changed while the index holds no
// documents.
func (i *Index) Update(ctx context.Context, primaryKey string) error {
	payload := map[string]string{"primaryKey": primaryKey}
	var info TaskInfo
	if err := i.client.send(ctx, http.MethodPatch, i.path(), payload, &info); err != nil {
		return err
	}
	task, err := i.client.WaitForTask(ctx, info.TaskUID, WithWaitTimeout(indexCreateTimeout))
	if err != nil {
		return err
	}
	if task.Status != TaskStatusSucceeded {
		if task.Error != nil {
			return fmt.Errorf("update index %q: %w", i.UID, task.Error)
		}
		return fmt.Errorf("update index %q: task %s", i.UID, task.Status)
	}
	return i.FetchInfo(ctx)
}

// Delete deletes the index.
func (i *Index) Delete(ctx context.Context) (*TaskInfo, error) {
	var info TaskInfo
	if err := i.client.send(ctx, http.MethodDelete, i.path(), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteIfExists deletes the index and reports whether an index was
// actually removed.
func (i *Index) DeleteIfExists(ctx context.Context) (bool, error) {
	info, err := i.Delete(ctx)
	if err != nil {
		return false, err
	}
	task, err := i.client.WaitForTask(ctx, info.TaskUID)
	if err != nil {
		return false, err
	}
	return task.Status == TaskStatusSucceeded, nil
}

// Stats returns the stats of the index.
func (i *Index) Stats(ctx context.Context) (*IndexStats, error) {
	var stats IndexStats
	if err := i.client.send(ctx, http.MethodGet, i.path()+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Search searches the index. A nil params uses the server defaults.
func (i *Index) Search(ctx context.Context, query string, params *SearchParams) (*SearchResults, error) {
	if params == nil {
		params = &SearchParams{}
	}

	body := searchRequest{
		Query:                 query,
		Offset:                params.Offset,
		Limit:                 params.Limit,
		Filter:                params.Filter,
		Facets:                params.Facets,
		AttributesToRetrieve:  params.AttributesToRetrieve,
		AttributesToCrop:      params.AttributesToCrop,
		CropLength:            params.CropLength,
		AttributesToHighlight: params.AttributesToHighlight,
		Sort:                  params.Sort,
		ShowMatchesPosition:   params.ShowMatchesPosition,
		HighlightPreTag:       params.HighlightPreTag,
		HighlightPostTag:      params.HighlightPostTag,
		CropMarker:            params.CropMarker,
		MatchingStrategy:      params.MatchingStrategy,
	}
	if body.Limit == 0 {
		body.Limit = 20
	}
	if len(body.AttributesToRetrieve) == 0 {
		body.AttributesToRetrieve = []string{"*"}
	}
	if body.CropLength == 0 {
		body.CropLength = 200
	}
	if body.HighlightPreTag == "" {
		body.HighlightPreTag = "<em>"
	}
	if body.HighlightPostTag == "" {
		body.HighlightPostTag = "</em>"
	}
	if body.CropMarker == "" {
		body.CropMarker = "..."
	}
	if body.MatchingStrategy == "" {
		body.MatchingStrategy = "all"
	}

	var results SearchResults
	if err := i.client.send(ctx, http.MethodPost, i.path()+"/search", body, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// GetDocument retrieves one document by its identifier.
func (i *Index) GetDocument(ctx context.Context, documentID string) (Document, error) {
	var document Document
	path := i.documentsPath() + "/" + documentID
	if err := i.client.send(ctx, http.MethodGet, path, nil, &document); err != nil {
		return nil, err
	}
	return document, nil
}

// GetDocuments retrieves a batch of documents. Offset defaults to 0 and
// limit to 20. A non-empty fields list restricts the attributes returned.
func (i *Index) GetDocuments(ctx context.Context, offset, limit int64, fields []string) (*DocumentsInfo, error) {
	if limit == 0 {
		limit = 20
	}

	query := url.Values{}
	query.Set("offset", strconv.FormatInt(offset, 10))
	query.Set("limit", strconv.FormatInt(limit, 10))
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}

	var info DocumentsInfo
	path := i.documentsPath() + "?" + query.Encode()
	if err := i.client.send(ctx, http.MethodGet, path, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// documentsPathWithPrimaryKey appends the primaryKey query parameter when
// set. The server ignores it on indexes that already have one.
func (i *Index) documentsPathWithPrimaryKey(primaryKey string) string {
	path := i.documentsPath()
	if primaryKey != "" {
		path += "?" + url.Values{"primaryKey": {primaryKey}}.Encode()
	}
	return path
}

// AddDocuments adds documents to the index. The documents value is
// serialized to a JSON array; []Document and slices of custom structs
// both work.
func (i *Index) AddDocuments(ctx context.Context, documents any, primaryKey string) (*TaskInfo, error) {
	var info TaskInfo
	path := i.documentsPathWithPrimaryKey(primaryKey)
	if err := i.client.send(ctx, http.MethodPost, path, documents, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateDocuments updates documents already in the index, adding any that
// are missing.
func (i *Index) UpdateDocuments(ctx context.Context, documents any, primaryKey string) (*TaskInfo, error) {
	var info TaskInfo
	path := i.documentsPathWithPrimaryKey(primaryKey)
	if err := i.client.send(ctx, http.MethodPut, path, documents, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteDocument deletes one document from the index.
func (i *Index) DeleteDocument(ctx context.Context, documentID string) (*TaskInfo, error) {
	var info TaskInfo
	path := i.documentsPath() + "/" + documentID
	if err := i.client.send(ctx, http.MethodDelete, path, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteDocuments deletes multiple documents from the index.
func (i *Index) DeleteDocuments(ctx context.Context, documentIDs []string) (*TaskInfo, error) {
	var info TaskInfo
	path := i.documentsPath() + "/delete-batch"
	if err := i.client.send(ctx, http.MethodPost, path, documentIDs, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteAllDocuments deletes every document in the index.
func (i *Index) DeleteAllDocuments(ctx context.Context) (*TaskInfo, error) {
	var info TaskInfo
	if err := i.client.send(ctx, http.MethodDelete, i.documentsPath(), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
