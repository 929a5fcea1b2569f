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
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Document file types accepted by the file and directory loaders.
const (
	DocumentTypeJSON   = "json"
	DocumentTypeNDJSON = "ndjson"
	DocumentTypeCSV    = "csv"
)

// DirectoryOptions configures the directory loaders.
type DirectoryOptions struct {
	// PrimaryKey is passed along with the documents. Ignored by the
	// server on indexes that already have one.
	PrimaryKey string

	// DocumentType selects which files to load: json (default), ndjson
	// or csv.
	DocumentType string

	// SeparateFiles submits each file as its own payload instead of
	// combining all files into one.
	SeparateFiles bool

	// BatchSize is the batch size used by the *InBatches variants.
	// 0 uses DefaultBatchSize.
	BatchSize int
}

func (o *DirectoryOptions) documentType() string {
	if o == nil || o.DocumentType == "" {
		return DocumentTypeJSON
	}
	return o.DocumentType
}

func (o *DirectoryOptions) primaryKey() string {
	if o == nil {
		return ""
	}
	return o.PrimaryKey
}

// LoadDocumentsFromFile reads documents from a json, ndjson or csv file.
// For csv files the first row must be a header row containing the field
// names; every field is read as a string.
func LoadDocumentsFromFile(path string) ([]Document, error) {
	switch filepath.Ext(path) {
	case ".json":
		return loadJSONDocuments(path)
	case ".ndjson":
		return loadNDJSONDocuments(path)
	case ".csv":
		return loadCSVDocuments(path)
	default:
		return nil, ErrInvalidDocumentType
	}
}

func loadJSONDocuments(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var documents []Document
	if err := json.Unmarshal(data, &documents); err != nil {
		// Distinguish a non-array payload from malformed json.
		var single any
		if jsonErr := json.Unmarshal(data, &single); jsonErr == nil {
			return nil, ErrInvalidDocument
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return documents, nil
}

func loadNDJSONDocuments(path string) ([]Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var documents []Document
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var document Document
		if err := json.Unmarshal([]byte(line), &document); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		documents = append(documents, document)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return documents, nil
}

func loadCSVDocuments(path string) ([]Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	documents := make([]Document, 0, len(rows)-1)
	for _, row := range rows[1:] {
		document := make(Document, len(header))
		for n, field := range header {
			document[field] = row[n]
		}
		documents = append(documents, document)
	}
	return documents, nil
}

// AddDocumentsFromFile adds the documents contained in a json, ndjson or
// csv file to the index.
func (i *Index) AddDocumentsFromFile(ctx context.Context, path, primaryKey string) (*TaskInfo, error) {
	documents, err := LoadDocumentsFromFile(path)
	if err != nil {
		return nil, err
	}
	return i.AddDocuments(ctx, documents, primaryKey)
}

// AddDocumentsFromFileInBatches adds the documents contained in a file
// in batches of batchSize.
func (i *Index) AddDocumentsFromFileInBatches(ctx context.Context, path string, batchSize int, primaryKey string) ([]TaskInfo, error) {
	documents, err := LoadDocumentsFromFile(path)
	if err != nil {
		return nil, err
	}
	return i.AddDocumentsInBatches(ctx, documents, batchSize, primaryKey)
}

// UpdateDocumentsFromFile updates the index with the documents contained
// in a json, ndjson or csv file.
func (i *Index) UpdateDocumentsFromFile(ctx context.Context, path, primaryKey string) (*TaskInfo, error) {
	documents, err := LoadDocumentsFromFile(path)
	if err != nil {
		return nil, err
	}
	return i.UpdateDocuments(ctx, documents, primaryKey)
}

// UpdateDocumentsFromFileInBatches updates the index with the documents
// contained in a file in batches of batchSize.
func (i *Index) UpdateDocumentsFromFileInBatches(ctx context.Context, path string, batchSize int, primaryKey string) ([]TaskInfo, error) {
	documents, err := LoadDocumentsFromFile(path)
	if err != nil {
		return nil, err
	}
	return i.UpdateDocumentsInBatches(ctx, documents, batchSize, primaryKey)
}

// loadDirectory reads every file of the requested type from dir, one
// document slice per file. ErrNoDocumentsFound is returned when no file
// matched.
func loadDirectory(dir, documentType string) ([][]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var all [][]Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != "."+documentType {
			continue
		}
		documents, err := LoadDocumentsFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		all = append(all, documents)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", ErrNoDocumentsFound, documentType, dir)
	}
	return all, nil
}

// combineDocuments flattens per-file document slices into one slice.
func combineDocuments(perFile [][]Document) []Document {
	var combined []Document
	for _, documents := range perFile {
		combined = append(combined, documents...)
	}
	return combined
}

// AddDocumentsFromDirectory loads every file of the configured type from
// dir and adds the documents to the index. By default all files are
// combined into a single payload; with SeparateFiles each file becomes
// its own payload.
func (i *Index) AddDocumentsFromDirectory(ctx context.Context, dir string, opts *DirectoryOptions) ([]TaskInfo, error) {
	return i.directorySubmit(ctx, dir, opts, func(ctx context.Context, documents []Document) ([]TaskInfo, error) {
		info, err := i.AddDocuments(ctx, documents, opts.primaryKey())
		if err != nil {
			return nil, err
		}
		return []TaskInfo{*info}, nil
	})
}

// AddDocumentsFromDirectoryInBatches loads every file of the configured
// type from dir and adds the documents in batches.
func (i *Index) AddDocumentsFromDirectoryInBatches(ctx context.Context, dir string, opts *DirectoryOptions) ([]TaskInfo, error) {
	batchSize := 0
	if opts != nil {
		batchSize = opts.BatchSize
	}
	return i.directorySubmit(ctx, dir, opts, func(ctx context.Context, documents []Document) ([]TaskInfo, error) {
		return i.AddDocumentsInBatches(ctx, documents, batchSize, opts.primaryKey())
	})
}

// UpdateDocumentsFromDirectory loads every file of the configured type
// from dir and updates the documents in the index.
func (i *Index) UpdateDocumentsFromDirectory(ctx context.Context, dir string, opts *DirectoryOptions) ([]TaskInfo, error) {
	return i.directorySubmit(ctx, dir, opts, func(ctx context.Context, documents []Document) ([]TaskInfo, error) {
		info, err := i.UpdateDocuments(ctx, documents, opts.primaryKey())
		if err != nil {
			return nil, err
		}
		return []TaskInfo{*info}, nil
	})
}

// UpdateDocumentsFromDirectoryInBatches loads every file of the
// configured type from dir and updates the documents in batches.
func (i *Index) UpdateDocumentsFromDirectoryInBatches(ctx context.Context, dir string, opts *DirectoryOptions) ([]TaskInfo, error) {
	batchSize := 0
	if opts != nil {
		batchSize = opts.BatchSize
	}
	return i.directorySubmit(ctx, dir, opts, func(ctx context.Context, documents []Document) ([]TaskInfo, error) {
		return i.UpdateDocumentsInBatches(ctx, documents, batchSize, opts.primaryKey())
	})
}

// directorySubmit loads the directory and submits its documents either
// combined or per file. Per-file payloads are sent one at a time, first
// file first, so an index that does not exist yet is auto-created once
// instead of racing across requests.
func (i *Index) directorySubmit(
	ctx context.Context,
	dir string,
	opts *DirectoryOptions,
	submit func(ctx context.Context, documents []Document) ([]TaskInfo, error),
) ([]TaskInfo, error) {
	perFile, err := loadDirectory(dir, opts.documentType())
	if err != nil {
		return nil, err
	}

	if opts == nil || !opts.SeparateFiles {
		return submit(ctx, combineDocuments(perFile))
	}

	var results []TaskInfo
	for _, documents := range perFile {
		infos, err := submit(ctx, documents)
		if err != nil {
			return nil, err
		}
		results = append(results, infos...)
	}
	return results, nil
}

// AddDocumentsFromRawFile sends a csv or ndjson file to the server
// without decoding it first, which keeps memory usage flat for large
// files.
func (i *Index) AddDocumentsFromRawFile(ctx context.Context, path, primaryKey string) (*TaskInfo, error) {
	return i.sendRawFile(ctx, http.MethodPost, path, primaryKey)
}

// UpdateDocumentsFromRawFile sends a csv or ndjson file to the server as
// a document update without decoding it first.
func (i *Index) UpdateDocumentsFromRawFile(ctx context.Context, path, primaryKey string) (*TaskInfo, error) {
	return i.sendRawFile(ctx, http.MethodPut, path, primaryKey)
}

func (i *Index) sendRawFile(ctx context.Context, method, path, primaryKey string) (*TaskInfo, error) {
	var contentType string
	switch filepath.Ext(path) {
	case ".csv":
		contentType = contentTypeCSV
	case ".ndjson":
		contentType = contentTypeNDJSON
	default:
		return nil, ErrInvalidRawDocumentType
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var info TaskInfo
	target := i.documentsPathWithPrimaryKey(primaryKey)
	if err := i.client.sendRaw(ctx, method, target, data, contentType, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
