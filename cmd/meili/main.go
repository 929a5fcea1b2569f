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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/lumisearch/meili"
	"github.com/lumisearch/meili/sync"
	"github.com/urfave/cli/v2"
)

// serverConfig is the connection configuration, read from the
// environment and overridable per invocation with flags.
type serverConfig struct {
	URL     string        `env:"MEILI_URL" envDefault:"http://localhost:7700"`
	APIKey  string        `env:"MEILI_API_KEY"`
	Timeout time.Duration `env:"MEILI_TIMEOUT" envDefault:"30s"`
}

func main() {
	app := &cli.App{
		Name:  "meili",
		Usage: "Command line client for Meilisearch",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Meilisearch server URL (overrides MEILI_URL)",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Aliases: []string{"k"},
				Usage:   "Meilisearch API key (overrides MEILI_API_KEY)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "health",
				Usage:  "Check whether the server is available",
				Action: healthCommand,
			},
			{
				Name:   "version",
				Usage:  "Show the server version",
				Action: versionCommand,
			},
			{
				Name:   "stats",
				Usage:  "Show stats for all indexes",
				Action: statsCommand,
			},
			{
				Name:  "index",
				Usage: "Manage indexes",
				Subcommands: []*cli.Command{
					{
						Name:      "create",
						Usage:     "Create an index",
						ArgsUsage: "<uid>",
						Action:    indexCreateCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "primary-key",
								Usage: "Primary key field of the index",
							},
						},
					},
					{
						Name:      "delete",
						Usage:     "Delete an index",
						ArgsUsage: "<uid>",
						Action:    indexDeleteCommand,
					},
					{
						Name:   "list",
						Usage:  "List all indexes",
						Action: indexListCommand,
					},
				},
			},
			{
				Name:  "documents",
				Usage: "Manage documents",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add documents from a json, ndjson or csv file",
						ArgsUsage: "<index-uid> <file>",
						Action:    documentsAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "primary-key",
								Usage: "Primary key field of the documents",
							},
							&cli.IntFlag{
								Name:  "batch-size",
								Usage: "Number of documents to send per request",
								Value: meili.DefaultBatchSize,
							},
							&cli.BoolFlag{
								Name:  "wait",
								Usage: "Wait for the indexing tasks to finish",
							},
						},
					},
					{
						Name:      "count",
						Usage:     "Show the number of documents in an index",
						ArgsUsage: "<index-uid>",
						Action:    documentsCountCommand,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search an index",
				ArgsUsage: "<index-uid> <query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:  "limit",
						Usage: "Maximum number of hits to return",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "filter",
						Usage: "Filter expression",
					},
					&cli.StringSliceFlag{
						Name:  "sort",
						Usage: "Sort expressions, e.g. price:asc",
					},
				},
			},
			{
				Name:  "task",
				Usage: "Manage asynchronous tasks",
				Subcommands: []*cli.Command{
					{
						Name:      "wait",
						Usage:     "Wait for a task to finish",
						ArgsUsage: "<task-uid>",
						Action:    taskWaitCommand,
						Flags: []cli.Flag{
							&cli.DurationFlag{
								Name:  "timeout",
								Usage: "Maximum time to wait",
								Value: 5 * time.Second,
							},
						},
					},
				},
			},
			{
				Name:  "key",
				Usage: "Manage API keys",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all API keys",
						Action: keyListCommand,
					},
					{
						Name:   "create",
						Usage:  "Create an API key",
						Action: keyCreateCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "description",
								Usage: "Description of the key",
							},
							&cli.StringSliceFlag{
								Name:  "actions",
								Usage: "Actions the key allows, e.g. search",
								Value: cli.NewStringSlice("*"),
							},
							&cli.StringSliceFlag{
								Name:  "indexes",
								Usage: "Indexes the key grants access to",
								Value: cli.NewStringSlice("*"),
							},
						},
					},
					{
						Name:      "delete",
						Usage:     "Delete an API key",
						ArgsUsage: "<key>",
						Action:    keyDeleteCommand,
					},
				},
			},
			{
				Name:      "sync",
				Usage:     "Sync a directory of document files into an index",
				ArgsUsage: "<index-uid> <directory>",
				Action:    syncCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "state",
						Aliases:  []string{"s"},
						Usage:    "Path to the sync state directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Document file type (json, ndjson, csv)",
						Value: meili.DocumentTypeJSON,
					},
					&cli.StringFlag{
						Name:  "primary-key",
						Usage: "Primary key field of the documents",
						Value: "id",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to send per request",
						Value: meili.DefaultBatchSize,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newClient(c *cli.Context) (*meili.Client, error) {
	cfg := serverConfig{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if url := c.String("url"); url != "" {
		cfg.URL = url
	}
	if key := c.String("api-key"); key != "" {
		cfg.APIKey = key
	}

	opts := []meili.ClientOption{meili.WithTimeout(cfg.Timeout)}
	if cfg.APIKey != "" {
		opts = append(opts, meili.WithAPIKey(cfg.APIKey))
	}
	return meili.NewClient(cfg.URL, opts...)
}

// printJSON writes a value to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func healthCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	health, err := client.Health(context.Background())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	fmt.Println(health.Status)
	return nil
}

func versionCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	version, err := client.Version(context.Background())
	if err != nil {
		return err
	}
	return printJSON(version)
}

func statsCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	stats, err := client.Stats(context.Background())
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func indexCreateCommand(c *cli.Context) error {
	uid := c.Args().First()
	if uid == "" {
		return fmt.Errorf("index uid is required")
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	index, err := client.CreateIndex(context.Background(), uid, c.String("primary-key"))
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	fmt.Printf("created index %s\n", index.UID)
	return nil
}

func indexDeleteCommand(c *cli.Context) error {
	uid := c.Args().First()
	if uid == "" {
		return fmt.Errorf("index uid is required")
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	deleted, err := client.DeleteIndexIfExists(context.Background(), uid)
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	if !deleted {
		fmt.Printf("index %s does not exist\n", uid)
		return nil
	}
	fmt.Printf("deleted index %s\n", uid)
	return nil
}

func indexListCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	indexes, err := client.GetRawIndexes(context.Background())
	if err != nil {
		return err
	}
	return printJSON(indexes)
}

func documentsAddCommand(c *cli.Context) error {
	uid := c.Args().Get(0)
	file := c.Args().Get(1)
	if uid == "" || file == "" {
		return fmt.Errorf("index uid and file are required")
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	index := client.Index(uid)
	infos, err := index.AddDocumentsFromFileInBatches(ctx, file, c.Int("batch-size"), c.String("primary-key"))
	if err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}

	if !c.Bool("wait") {
		for _, info := range infos {
			fmt.Printf("enqueued task %d\n", info.TaskUID)
		}
		return nil
	}

	for _, info := range infos {
		task, err := client.WaitForTask(ctx, info.TaskUID, meili.WithWaitTimeout(100*time.Second))
		if err != nil {
			return err
		}
		if task.Status != meili.TaskStatusSucceeded {
			return fmt.Errorf("task %d %s: %v", task.UID, task.Status, task.Error)
		}
		fmt.Printf("task %d succeeded\n", task.UID)
	}
	return nil
}

func documentsCountCommand(c *cli.Context) error {
	uid := c.Args().First()
	if uid == "" {
		return fmt.Errorf("index uid is required")
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	stats, err := client.Index(uid).Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(stats.NumberOfDocuments)
	return nil
}

func searchCommand(c *cli.Context) error {
	uid := c.Args().Get(0)
	query := c.Args().Get(1)
	if uid == "" {
		return fmt.Errorf("index uid is required")
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	params := &meili.SearchParams{
		Limit: c.Int64("limit"),
		Sort:  c.StringSlice("sort"),
	}
	if filter := c.String("filter"); filter != "" {
		params.Filter = filter
	}

	results, err := client.Index(uid).Search(context.Background(), query, params)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return printJSON(results)
}

func taskWaitCommand(c *cli.Context) error {
	var taskUID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &taskUID); err != nil {
		return fmt.Errorf("task uid must be a number")
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	task, err := client.WaitForTask(context.Background(), taskUID,
		meili.WithWaitTimeout(c.Duration("timeout")))
	if err != nil {
		return err
	}
	return printJSON(task)
}

func keyListCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	keys, err := client.GetKeys(context.Background())
	if err != nil {
		return err
	}
	return printJSON(keys)
}

func keyCreateCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	key, err := client.CreateKey(context.Background(), meili.KeyCreate{
		Description: c.String("description"),
		Actions:     c.StringSlice("actions"),
		Indexes:     c.StringSlice("indexes"),
	})
	if err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}
	return printJSON(key)
}

func keyDeleteCommand(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key is required")
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	if err := client.DeleteKey(context.Background(), key); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	fmt.Println("deleted")
	return nil
}

func syncCommand(c *cli.Context) error {
	uid := c.Args().Get(0)
	dir := c.Args().Get(1)
	if uid == "" || dir == "" {
		return fmt.Errorf("index uid and directory are required")
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	store, err := sync.OpenStore(c.String("state"))
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer store.Close()

	syncer, err := sync.NewSyncer(client, store,
		sync.WithBatchSize(c.Int("batch-size")),
		sync.WithDocumentType(c.String("type")),
		sync.WithPrimaryKey(c.String("primary-key")))
	if err != nil {
		return err
	}

	report, err := syncer.Run(context.Background(), dir, uid)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Uploaded:  %d\n", report.Uploaded)
	fmt.Fprintf(os.Stderr, "Deleted:   %d\n", report.Deleted)
	fmt.Fprintf(os.Stderr, "Unchanged: %d\n", report.Unchanged)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
