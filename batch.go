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
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// DefaultBatchSize is the number of documents sent per request by the
// batch helpers.
const DefaultBatchSize = 1000

// batchPoolSize returns the worker pool size for concurrent batch
// submission, matching the sizing used elsewhere in the module.
func batchPoolSize() int {
	size := runtime.NumCPU() / 2
	if size < 1 {
		size = 1
	}
	return size
}

// splitBatches splits documents into chunks of batchSize.
func splitBatches(documents []Document, batchSize int) [][]Document {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	batches := make([][]Document, 0, (len(documents)+batchSize-1)/batchSize)
	for start := 0; start < len(documents); start += batchSize {
		end := start + batchSize
		if end > len(documents) {
			end = len(documents)
		}
		batches = append(batches, documents[start:end])
	}
	return batches
}

// AddDocumentsInBatches adds documents in batches of batchSize to reduce
// the payload size of each request. Batches are submitted concurrently;
// the returned tasks are in batch order. A batchSize of 0 uses
// DefaultBatchSize.
func (i *Index) AddDocumentsInBatches(ctx context.Context, documents []Document, batchSize int, primaryKey string) ([]TaskInfo, error) {
	return i.submitInBatches(ctx, documents, batchSize, func(ctx context.Context, batch []Document) (*TaskInfo, error) {
		return i.AddDocuments(ctx, batch, primaryKey)
	})
}

// UpdateDocumentsInBatches updates documents in batches of batchSize.
// Batches are submitted concurrently; the returned tasks are in batch
// order. A batchSize of 0 uses DefaultBatchSize.
func (i *Index) UpdateDocumentsInBatches(ctx context.Context, documents []Document, batchSize int, primaryKey string) ([]TaskInfo, error) {
	return i.submitInBatches(ctx, documents, batchSize, func(ctx context.Context, batch []Document) (*TaskInfo, error) {
		return i.UpdateDocuments(ctx, batch, primaryKey)
	})
}

// submitInBatches fans batches out over a worker pool and collects the
// enqueued tasks in input order. The first submission error is returned.
func (i *Index) submitInBatches(
	ctx context.Context,
	documents []Document,
	batchSize int,
	submit func(ctx context.Context, batch []Document) (*TaskInfo, error),
) ([]TaskInfo, error) {
	batches := splitBatches(documents, batchSize)
	if len(batches) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(batchPoolSize())
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	results := make([]TaskInfo, len(batches))

	for n, batch := range batches {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			info, err := submit(ctx, batch)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			results[n] = *info
		}); err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
