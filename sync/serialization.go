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
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// DocState is the persisted sync state of one document.
type DocState struct {
	DocID    string
	Hash     uint64
	SyncedAt int64 // unix micro
}

// DocStateMUS is the MUS serializer for DocState.
var DocStateMUS = docStateMUS{}

type docStateMUS struct{}

func (s docStateMUS) Marshal(v DocState, bs []byte) (n int) {
	n = ord.String.Marshal(v.DocID, bs)
	n += varint.Uint64.Marshal(v.Hash, bs[n:])
	n += varint.Int64.Marshal(v.SyncedAt, bs[n:])
	return
}

func (s docStateMUS) Unmarshal(bs []byte) (v DocState, n int, err error) {
	v.DocID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Hash, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SyncedAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s docStateMUS) Size(v DocState) (size int) {
	size = ord.String.Size(v.DocID)
	size += varint.Uint64.Size(v.Hash)
	return size + varint.Int64.Size(v.SyncedAt)
}

func (s docStateMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Uint64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}

// MarshalDocState serializes a DocState to bytes.
func MarshalDocState(state DocState) []byte {
	buf := make([]byte, DocStateMUS.Size(state))
	DocStateMUS.Marshal(state, buf)
	return buf
}

// UnmarshalDocState deserializes a DocState from bytes.
func UnmarshalDocState(data []byte) (DocState, error) {
	state, _, err := DocStateMUS.Unmarshal(data)
	return state, err
}
