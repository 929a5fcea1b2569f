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
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GenerateTenantToken(t *testing.T) {
	searchKey := &Key{
		Key:     "secret-search-key",
		Actions: []string{"search"},
		Indexes: []string{"movies", "books"},
	}

	client, err := NewClient("http://localhost:7700")
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("signs with the given key", func(t *testing.T) {
		payload := map[string]any{
			"apiKeyPrefix": "secret-s",
			"searchRules":  map[string]any{"*": map[string]any{}},
		}
		token, err := client.GenerateTenantToken(ctx, payload, searchKey)
		require.NoError(t, err)

		parsed, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
			return []byte(searchKey.Key), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)

		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, "secret-s", claims["apiKeyPrefix"])
	})

	t.Run("index restriction within key", func(t *testing.T) {
		payload := map[string]any{"indexes": []string{"movies"}}
		_, err := client.GenerateTenantToken(ctx, payload, searchKey)
		assert.NoError(t, err)
	})

	t.Run("index restriction outside key", func(t *testing.T) {
		payload := map[string]any{"indexes": []string{"products"}}
		_, err := client.GenerateTenantToken(ctx, payload, searchKey)
		assert.Equal(t, ErrInvalidRestriction, err)
	})

	t.Run("index restriction as []any within key", func(t *testing.T) {
		payload := map[string]any{"indexes": []any{"movies", "books"}}
		_, err := client.GenerateTenantToken(ctx, payload, searchKey)
		assert.NoError(t, err)
	})

	t.Run("index restriction as []any outside key", func(t *testing.T) {
		payload := map[string]any{"indexes": []any{"products"}}
		_, err := client.GenerateTenantToken(ctx, payload, searchKey)
		assert.Equal(t, ErrInvalidRestriction, err)
	})

	t.Run("non string index restriction", func(t *testing.T) {
		payload := map[string]any{"indexes": []any{42}}
		_, err := client.GenerateTenantToken(ctx, payload, searchKey)
		assert.Equal(t, ErrInvalidRestriction, err)
	})

	t.Run("non search key is rejected", func(t *testing.T) {
		adminKey := &Key{Key: "admin", Actions: []string{"*"}}
		_, err := client.GenerateTenantToken(ctx, map[string]any{}, adminKey)
		assert.Equal(t, ErrInvalidKey, err)
	})

	t.Run("nil key uses the default search key", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/keys", r.URL.Path)
			writeJSON(t, w, keysResults{Results: []Key{
				{Key: "admin-key", Description: "Default Admin API Key", Actions: []string{"*"}},
				{Key: "default-key", Description: "Default Search API Key", Actions: []string{"search"}},
			}})
		}))

		token, err := client.GenerateTenantToken(ctx, map[string]any{}, nil)
		require.NoError(t, err)

		_, err = jwt.Parse(token, func(token *jwt.Token) (any, error) {
			return []byte("default-key"), nil
		})
		assert.NoError(t, err)
	})

	t.Run("no default search key", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, keysResults{Results: []Key{}})
		}))

		_, err := client.GenerateTenantToken(ctx, map[string]any{}, nil)
		assert.Equal(t, ErrKeyNotFound, err)
	})
}
