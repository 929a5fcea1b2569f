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
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

const docStatePrefix = "sync:doc:"

// Store persists per-document sync state in a BadgerDB database.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens a state store at the specified path. Creates the
// directory if it doesn't exist.
func OpenStore(filePath string) (*Store, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(filePath, 0755); err != nil {
				return nil, err
			}
			info, err = os.Stat(filePath)
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", filePath)
	}
	return openStore(badger.DefaultOptions(filePath))
}

// OpenInMemoryStore opens a state store that lives only in memory.
// Intended for tests and one-off runs.
func OpenInMemoryStore() (*Store, error) {
	return openStore(badger.DefaultOptions("").WithInMemory(true))
}

func openStore(opts badger.Options) (*Store, error) {
	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// WithTx executes a function within a BadgerDB transaction. If isWrite
// is true, creates a read-write transaction. The transaction is
// discarded automatically if fn returns an error.
func (s *Store) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := s.db.NewTransaction(isWrite)
	defer tx.Discard()
	if err := fn(tx); err != nil {
		return err
	}
	if isWrite {
		return tx.Commit()
	}
	return nil
}

func docStateKey(indexUID, docID string) []byte {
	return []byte(docStatePrefix + indexUID + ":" + docID)
}

// Put records the sync state of one document.
func (s *Store) Put(indexUID string, state DocState) error {
	return s.WithTx(func(tx *badger.Txn) error {
		return tx.Set(docStateKey(indexUID, state.DocID), MarshalDocState(state))
	}, true)
}

// Delete removes the sync state of one document.
func (s *Store) Delete(indexUID, docID string) error {
	return s.WithTx(func(tx *badger.Txn) error {
		return tx.Delete(docStateKey(indexUID, docID))
	}, true)
}

// List returns the sync state of every document known for an index,
// keyed by document ID.
func (s *Store) List(indexUID string) (map[string]DocState, error) {
	states := make(map[string]DocState)

	err := s.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(docStatePrefix + indexUID + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				state, err := UnmarshalDocState(val)
				if err != nil {
					return err
				}
				states[state.DocID] = state
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return states, nil
}
