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

import "errors"

var (
	// ErrClientRequired indicates the Syncer was created without a client.
	ErrClientRequired = errors.New("client is required")

	// ErrStoreRequired indicates the Syncer was created without a state store.
	ErrStoreRequired = errors.New("state store is required")

	// ErrMissingPrimaryKey indicates a document without the configured
	// primary key field.
	ErrMissingPrimaryKey = errors.New("document is missing the primary key field")

	// ErrTaskFailed indicates the server reported a failed indexing task.
	ErrTaskFailed = errors.New("indexing task failed")
)
