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
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// defaultSearchKeyDescription is the description Meilisearch gives the
// search key it creates on first launch.
const defaultSearchKeyDescription = "Default Search API Key"

// GenerateTenantToken signs a JWT to use for searching with per-tenant
// restrictions.
//
// The payload becomes the token claims. "searchRules" carries the
// restrictions to apply; use ["*"] to inherit the rules of the signing
// key. An "indexes" entry must be equal to or more restrictive than the
// indexes of the signing key. An "exp" entry, as a Unix timestamp, sets
// the token expiration.
//
// When key is nil the default search key of the instance is looked up and
// used for signing. An explicit key must have the search action only.
func (c *Client) GenerateTenantToken(ctx context.Context, payload map[string]any, key *Key) (string, error) {
	var signingKey *Key

	if key == nil {
		keys, err := c.GetKeys(ctx)
		if err != nil {
			return "", err
		}
		for i := range keys {
			if strings.Contains(keys[i].Description, defaultSearchKeyDescription) {
				signingKey = &keys[i]
				break
			}
		}
	} else {
		if len(key.Actions) != 1 || key.Actions[0] != "search" {
			return "", ErrInvalidKey
		}
		signingKey = key
	}

	if signingKey == nil {
		return "", ErrKeyNotFound
	}

	// The indexes restriction may arrive as []string or, after a JSON
	// round-trip, as []any.
	switch indexes := payload["indexes"].(type) {
	case []string:
		for _, index := range indexes {
			if !slices.Contains(signingKey.Indexes, index) {
				return "", ErrInvalidRestriction
			}
		}
	case []any:
		for _, value := range indexes {
			index, ok := value.(string)
			if !ok || !slices.Contains(signingKey.Indexes, index) {
				return "", ErrInvalidRestriction
			}
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(payload))
	return token.SignedString([]byte(signingKey.Key))
}
