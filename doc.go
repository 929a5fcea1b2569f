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


// Package meili is a typed client for the Meilisearch HTTP API.
//
// A Client talks to a single Meilisearch instance and exposes the
// instance-level routes (indexes, keys, dumps, tasks, health). Index
// handles obtained from the Client expose the per-index routes:
// documents, search, and settings.
//
// Write operations in Meilisearch are asynchronous: they enqueue a task
// and return a TaskInfo. Use Client.WaitForTask to block until the task
// completes.
//
//	client, err := meili.NewClient("http://localhost:7700", meili.WithAPIKey("masterKey"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	index := client.Index("movies")
//	info, err := index.AddDocuments(ctx, movies, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err := client.WaitForTask(ctx, info.TaskUID); err != nil {
//		log.Fatal(err)
//	}
//	results, err := index.Search(ctx, "tron", nil)
package meili
