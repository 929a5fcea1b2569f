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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts a test server with the given handler and returns a
// client pointed at it.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, WithAPIKey("masterKey"))
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		client, err := NewClient("http://localhost:7700")
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := NewClient("")
		assert.Equal(t, ErrBaseURLRequired, err)
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		client, err := NewClient("http://localhost:7700/")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:7700", client.baseURL)
	})

	t.Run("with options", func(t *testing.T) {
		client, err := NewClient("http://localhost:7700",
			WithAPIKey("key"),
			WithTimeout(10*time.Second))
		require.NoError(t, err)
		assert.Equal(t, "key", client.apiKey)
		assert.Equal(t, 10*time.Second, client.http.Timeout)
	})
}

func TestClient_Health(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			writeJSON(t, w, Health{Status: "available"})
		}))

		health, err := client.Health(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "available", health.Status)
		assert.True(t, client.IsHealthy(context.Background()))
	})

	t.Run("unreachable server is unhealthy", func(t *testing.T) {
		client, err := NewClient("http://localhost:1")
		require.NoError(t, err)
		assert.False(t, client.IsHealthy(context.Background()))
	})
}

func TestClient_SendsAuthorization(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer masterKey", r.Header.Get("Authorization"))
		writeJSON(t, w, Health{Status: "available"})
	}))

	_, err := client.Health(context.Background())
	require.NoError(t, err)
}

func TestClient_Version(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		writeJSON(t, w, Version{PkgVersion: "0.28.0", CommitSha: "abc"})
	}))

	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.28.0", version.PkgVersion)
}

func TestClient_Stats(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats", r.URL.Path)
		writeJSON(t, w, ClientStats{
			DatabaseSize: 2048,
			Indexes: map[string]IndexStats{
				"movies": {NumberOfDocuments: 10},
			},
		})
	}))

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2048), stats.DatabaseSize)
	assert.Equal(t, int64(10), stats.Indexes["movies"].NumberOfDocuments)
}

func TestClient_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(t, w, map[string]string{
			"code":    "invalid_request",
			"message": "bad payload",
			"type":    "invalid_request",
		})
	}))

	_, err := client.Version(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid_request", apiErr.Code)
	assert.Equal(t, "bad payload", apiErr.Message)
}

func TestClient_CommunicationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(server.URL)
	require.NoError(t, err)
	server.Close()

	_, err = client.Version(context.Background())
	require.Error(t, err)

	var commErr *CommunicationError
	assert.ErrorAs(t, err, &commErr)
}

// indexServer fakes the index and task routes used by the index lifecycle
// helpers.
func indexServer(t *testing.T, uid string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	created := false

	info := func() IndexInfo {
		return IndexInfo{UID: uid, PrimaryKey: "id"}
	}

	mux.HandleFunc("/indexes", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			created = true
			writeJSON(t, w, TaskInfo{TaskUID: 1, Status: TaskStatusEnqueued})
		case http.MethodGet:
			if !created {
				writeJSON(t, w, []IndexInfo{})
				return
			}
			writeJSON(t, w, []IndexInfo{info()})
		}
	})
	mux.HandleFunc("/indexes/"+uid, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if !created {
				w.WriteHeader(http.StatusNotFound)
				writeJSON(t, w, map[string]string{"code": "index_not_found"})
				return
			}
			writeJSON(t, w, info())
		case http.MethodDelete:
			created = false
			writeJSON(t, w, TaskInfo{TaskUID: 2, Status: TaskStatusEnqueued})
		}
	})
	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, Task{UID: 1, Status: TaskStatusSucceeded})
	})
	return mux
}

func TestClient_CreateIndex(t *testing.T) {
	uid := uuid.NewString()
	client := newTestClient(t, indexServer(t, uid))

	index, err := client.CreateIndex(context.Background(), uid, "id")
	require.NoError(t, err)
	assert.Equal(t, uid, index.UID)
	assert.Equal(t, "id", index.PrimaryKey)
}

func TestClient_CreateIndex_TaskFailedWithoutError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/indexes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, TaskInfo{TaskUID: 1, Status: TaskStatusEnqueued})
	})
	mux.HandleFunc("/tasks/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, Task{UID: 1, Status: TaskStatusFailed})
	})
	client := newTestClient(t, mux)

	_, err := client.CreateIndex(context.Background(), "movies", "id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), TaskStatusFailed)
	assert.NotContains(t, err.Error(), "PANIC")
}

func TestClient_GetRawIndex(t *testing.T) {
	uid := uuid.NewString()
	client := newTestClient(t, indexServer(t, uid))

	t.Run("missing index returns nil", func(t *testing.T) {
		info, err := client.GetRawIndex(context.Background(), uid)
		require.NoError(t, err)
		assert.Nil(t, info)
	})

	t.Run("existing index", func(t *testing.T) {
		_, err := client.CreateIndex(context.Background(), uid, "id")
		require.NoError(t, err)

		info, err := client.GetRawIndex(context.Background(), uid)
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, uid, info.UID)
	})
}

func TestClient_GetOrCreateIndex(t *testing.T) {
	uid := uuid.NewString()
	client := newTestClient(t, indexServer(t, uid))

	index, err := client.GetOrCreateIndex(context.Background(), uid, "id")
	require.NoError(t, err)
	assert.Equal(t, uid, index.UID)

	// Second call finds the existing index.
	again, err := client.GetOrCreateIndex(context.Background(), uid, "id")
	require.NoError(t, err)
	assert.Equal(t, uid, again.UID)
}

func TestClient_GetIndexes(t *testing.T) {
	uid := uuid.NewString()
	client := newTestClient(t, indexServer(t, uid))

	t.Run("empty", func(t *testing.T) {
		indexes, err := client.GetIndexes(context.Background())
		require.NoError(t, err)
		assert.Empty(t, indexes)
	})

	t.Run("after create", func(t *testing.T) {
		_, err := client.CreateIndex(context.Background(), uid, "id")
		require.NoError(t, err)

		indexes, err := client.GetIndexes(context.Background())
		require.NoError(t, err)
		require.Len(t, indexes, 1)
		assert.Equal(t, uid, indexes[0].UID)
		assert.Equal(t, "id", indexes[0].PrimaryKey)
	})
}

func TestClient_DeleteIndexIfExists(t *testing.T) {
	uid := uuid.NewString()
	client := newTestClient(t, indexServer(t, uid))

	_, err := client.CreateIndex(context.Background(), uid, "id")
	require.NoError(t, err)

	deleted, err := client.DeleteIndexIfExists(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestClient_Keys(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/keys", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, keysResults{Results: []Key{
				{Key: "abc", Description: "Default Search API Key", Actions: []string{"search"}},
			}})
		case http.MethodPost:
			var payload KeyCreate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			writeJSON(t, w, Key{
				Key:         "new-key",
				Description: payload.Description,
				Actions:     payload.Actions,
				Indexes:     payload.Indexes,
			})
		}
	})
	mux.HandleFunc("/keys/abc", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, Key{Key: "abc"})
		case http.MethodPatch:
			writeJSON(t, w, Key{Key: "abc", Description: "updated"})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		keys, err := client.GetKeys(ctx)
		require.NoError(t, err)
		require.Len(t, keys, 1)
		assert.Equal(t, "abc", keys[0].Key)
	})

	t.Run("get", func(t *testing.T) {
		key, err := client.GetKey(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "abc", key.Key)
	})

	t.Run("create", func(t *testing.T) {
		key, err := client.CreateKey(ctx, KeyCreate{
			Description: "search only",
			Actions:     []string{"search"},
			Indexes:     []string{"movies"},
		})
		require.NoError(t, err)
		assert.Equal(t, "new-key", key.Key)
		assert.Equal(t, "search only", key.Description)
	})

	t.Run("update", func(t *testing.T) {
		key, err := client.UpdateKey(ctx, KeyUpdate{Key: "abc", Description: "updated"})
		require.NoError(t, err)
		assert.Equal(t, "updated", key.Description)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, client.DeleteKey(ctx, "abc"))
	})
}

func TestClient_Dumps(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dumps", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		writeJSON(t, w, DumpInfo{UID: "20260829-100000", Status: "in_progress"})
	})
	mux.HandleFunc("/dumps/20260829-100000/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, DumpInfo{UID: "20260829-100000", Status: "done"})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	info, err := client.CreateDump(ctx)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", info.Status)

	info, err = client.DumpStatus(ctx, info.UID)
	require.NoError(t, err)
	assert.Equal(t, "done", info.Status)
}

func TestClient_NotFoundIsAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetKey(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
