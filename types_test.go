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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want time.Time
	}{
		{
			name: "rfc3339",
			data: `"2026-08-29T10:00:00Z"`,
			want: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "nanosecond precision",
			data: `"2026-08-29T10:00:00.123456789Z"`,
			want: time.Date(2026, 8, 29, 10, 0, 0, 123456789, time.UTC),
		},
		{
			name: "more than nine fractional digits",
			data: `"2026-08-29T10:00:00.1234567891011Z"`,
			want: time.Date(2026, 8, 29, 10, 0, 0, 123456789, time.UTC),
		},
		{
			name: "null",
			data: `null`,
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.data), &ts))
			assert.True(t, ts.Equal(tt.want), "got %v, want %v", ts.Time, tt.want)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(`"not a time"`), &ts))
	})
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	ts := Timestamp{Time: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)}
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-29T10:00:00Z"`, string(data))
}

func TestTimestamp_RoundTrip(t *testing.T) {
	type wrapper struct {
		At Timestamp `json:"at"`
	}

	in := wrapper{At: Timestamp{Time: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.At.Equal(in.At.Time))
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{
		StatusCode: 404,
		Code:       "index_not_found",
		Message:    "Index `movies` not found.",
	}
	assert.Contains(t, err.Error(), "index_not_found")
	assert.Contains(t, err.Error(), "Index `movies` not found.")
}

func TestCommunicationError_Unwrap(t *testing.T) {
	inner := assert.AnError
	err := &CommunicationError{Err: inner}
	assert.ErrorIs(t, err, inner)
}
