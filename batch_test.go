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
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBatches(t *testing.T) {
	documents := func(n int) []Document {
		out := make([]Document, n)
		for i := range out {
			out[i] = Document{"id": strconv.Itoa(i)}
		}
		return out
	}

	tests := []struct {
		name      string
		count     int
		batchSize int
		wantSizes []int
	}{
		{
			name:      "even split",
			count:     6,
			batchSize: 2,
			wantSizes: []int{2, 2, 2},
		},
		{
			name:      "uneven split",
			count:     5,
			batchSize: 2,
			wantSizes: []int{2, 2, 1},
		},
		{
			name:      "single batch",
			count:     3,
			batchSize: 10,
			wantSizes: []int{3},
		},
		{
			name:      "zero batch size uses default",
			count:     3,
			batchSize: 0,
			wantSizes: []int{3},
		},
		{
			name:      "no documents",
			count:     0,
			batchSize: 2,
			wantSizes: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := splitBatches(documents(tt.count), tt.batchSize)
			require.Len(t, batches, len(tt.wantSizes))
			for i, want := range tt.wantSizes {
				assert.Len(t, batches[i], want)
			}
		})
	}
}

func TestIndex_AddDocumentsInBatches(t *testing.T) {
	var requests atomic.Int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var batch []Document
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		assert.LessOrEqual(t, len(batch), 2)

		writeJSON(t, w, TaskInfo{TaskUID: requests.Add(1)})
	}))

	documents := []Document{
		{"id": "1"}, {"id": "2"}, {"id": "3"}, {"id": "4"}, {"id": "5"},
	}
	infos, err := client.Index("movies").AddDocumentsInBatches(context.Background(), documents, 2, "")
	require.NoError(t, err)
	assert.Len(t, infos, 3)
	assert.Equal(t, int64(3), requests.Load())
}

func TestIndex_UpdateDocumentsInBatches(t *testing.T) {
	var requests atomic.Int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		writeJSON(t, w, TaskInfo{TaskUID: requests.Add(1)})
	}))

	documents := []Document{{"id": "1"}, {"id": "2"}, {"id": "3"}}
	infos, err := client.Index("movies").UpdateDocumentsInBatches(context.Background(), documents, 1, "")
	require.NoError(t, err)
	assert.Len(t, infos, 3)
}

func TestIndex_AddDocumentsInBatches_Empty(t *testing.T) {
	client, err := NewClient("http://localhost:7700")
	require.NoError(t, err)

	infos, err := client.Index("movies").AddDocumentsInBatches(context.Background(), nil, 2, "")
	require.NoError(t, err)
	assert.Nil(t, infos)
}

func TestIndex_AddDocumentsInBatches_Error(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(t, w, map[string]string{"code": "invalid_request"})
	}))

	documents := []Document{{"id": "1"}, {"id": "2"}}
	_, err := client.Index("movies").AddDocumentsInBatches(context.Background(), documents, 1, "")
	require.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}
