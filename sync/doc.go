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


// Package sync mirrors a local directory of document files into a
// Meilisearch index.
//
// A Syncer loads the documents from the directory, hashes each one, and
// compares the hashes against a local state store. Only documents whose
// content changed since the last run are uploaded, and documents that
// disappeared from the directory are deleted from the index. State is
// persisted in a BadgerDB store so repeated runs stay cheap.
package sync
