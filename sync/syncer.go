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


package sync

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/lumisearch/meili"
)

const (
	defaultPrimaryKey = "id"
	syncWaitTimeout   = 100 * time.Second
)

// Syncer mirrors a directory of document files into an index.
type Syncer struct {
	client       *meili.Client
	store        *Store
	logger       *slog.Logger
	batchSize    int
	documentType string
	primaryKey   string
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithBatchSize sets the number of documents uploaded per request.
func WithBatchSize(size int) Option {
	return func(s *Syncer) {
		s.batchSize = size
	}
}

// WithDocumentType selects which files to sync: json (default), ndjson
// or csv.
func WithDocumentType(documentType string) Option {
	return func(s *Syncer) {
		s.documentType = documentType
	}
}

// WithPrimaryKey sets the document field used as the primary key.
// Defaults to "id".
func WithPrimaryKey(field string) Option {
	return func(s *Syncer) {
		s.primaryKey = field
	}
}

// WithLogger sets the logger. A nil logger falls back to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger
	}
}

// NewSyncer creates a Syncer backed by the given client and state store.
func NewSyncer(client *meili.Client, store *Store, opts ...Option) (*Syncer, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	s := &Syncer{
		client:       client,
		store:        store,
		batchSize:    meili.DefaultBatchSize,
		documentType: meili.DocumentTypeJSON,
		primaryKey:   defaultPrimaryKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "syncer")
	}
	return s, nil
}

// Report summarizes one sync run.
type Report struct {
	Uploaded  int
	Deleted   int
	Unchanged int
}

// Run syncs the documents in dir into the index. Documents whose content
// is unchanged since the last run are skipped, and documents no longer
// present in the directory are deleted from the index. State is
// checkpointed only after the server reports the tasks succeeded, so an
// interrupted run is retried in full on the next one.
func (s *Syncer) Run(ctx context.Context, dir, indexUID string) (*Report, error) {
	documents, err := s.loadDirectory(dir)
	if err != nil {
		return nil, err
	}

	current := make(map[string]uint64, len(documents))
	byID := make(map[string]meili.Document, len(documents))
	for _, document := range documents {
		value, ok := document[s.primaryKey]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingPrimaryKey, s.primaryKey)
		}
		docID := fmt.Sprint(value)
		hash, err := hashDocument(document)
		if err != nil {
			return nil, err
		}
		current[docID] = hash
		byID[docID] = document
	}

	prior, err := s.store.List(indexUID)
	if err != nil {
		return nil, err
	}

	var changed []meili.Document
	var changedIDs []string
	unchanged := 0
	for docID, hash := range current {
		if state, ok := prior[docID]; ok && state.Hash == hash {
			unchanged++
			continue
		}
		changed = append(changed, byID[docID])
		changedIDs = append(changedIDs, docID)
	}

	var vanished []string
	for docID := range prior {
		if _, ok := current[docID]; !ok {
			vanished = append(vanished, docID)
		}
	}

	s.logger.Info("sync plan",
		"index", indexUID,
		"changed", len(changed),
		"vanished", len(vanished),
		"unchanged", unchanged)

	index := s.client.Index(indexUID)

	if len(changed) > 0 {
		infos, err := index.UpdateDocumentsInBatches(ctx, changed, s.batchSize, s.primaryKey)
		if err != nil {
			return nil, err
		}
		for _, info := range infos {
			if err := s.waitTask(ctx, info.TaskUID); err != nil {
				return nil, err
			}
		}
		now := time.Now().UnixMicro()
		for _, docID := range changedIDs {
			state := DocState{DocID: docID, Hash: current[docID], SyncedAt: now}
			if err := s.store.Put(indexUID, state); err != nil {
				return nil, err
			}
		}
	}

	if len(vanished) > 0 {
		info, err := index.DeleteDocuments(ctx, vanished)
		if err != nil {
			return nil, err
		}
		if err := s.waitTask(ctx, info.TaskUID); err != nil {
			return nil, err
		}
		for _, docID := range vanished {
			if err := s.store.Delete(indexUID, docID); err != nil {
				return nil, err
			}
		}
	}

	return &Report{
		Uploaded:  len(changed),
		Deleted:   len(vanished),
		Unchanged: unchanged,
	}, nil
}

func (s *Syncer) waitTask(ctx context.Context, taskUID int64) error {
	task, err := s.client.WaitForTask(ctx, taskUID, meili.WithWaitTimeout(syncWaitTimeout))
	if err != nil {
		return err
	}
	if task.Status != meili.TaskStatusSucceeded {
		if task.Error != nil {
			return fmt.Errorf("%w: %s", ErrTaskFailed, task.Error.Message)
		}
		return ErrTaskFailed
	}
	return nil
}

func (s *Syncer) loadDirectory(dir string) ([]meili.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var documents []meili.Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != "."+s.documentType {
			continue
		}
		loaded, err := meili.LoadDocumentsFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		documents = append(documents, loaded...)
	}
	return documents, nil
}

// hashDocument produces a deterministic content hash of a document.
// encoding/json sorts map keys, so identical content hashes identically.
func hashDocument(document meili.Document) (uint64, error) {
	data, err := json.Marshal(document)
	if err != nil {
		return 0, err
	}
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	return binary.LittleEndian.Uint64(h.Sum(nil)), nil
}
