// Package main provides the framefeed daemon, a NATS consumer for OCR'd
// frame batches.
//
// Upstream OCR workers publish frame batches as JSON on a NATS subject:
//
//	{"job_id": "...", "filename": "...", "frames": [{"frame_index": 0, "text": "..."}, ...]}
//
// framefeed subscribes in a queue group, extracts and merges the entities
// of each batch, and stores the results where the extraction API serves
// them from. Malformed batches are logged and dropped.
//
// Usage:
//
//	framefeed [options]
//
// Options:
//
//	-url URL       NATS server URL (default: nats://127.0.0.1:4222, env: NATS_URL)
//	-subject SUBJ  Subject to consume (default: travel.frames, env: FRAMEFEED_SUBJECT)
//	-queue NAME    Queue group name (default: framefeed)
//	-db PATH       SQLite mirror path (default: in-memory, env: EXTRACTION_DB)
//	-workers N     Frame extraction concurrency (default: 4)
//
// The daemon runs until SIGINT or SIGTERM, then drains the subscription so
// in-flight batches finish.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"

	"travel_parser/internal/feed"
	"travel_parser/internal/store"
)

func main() {
	url := flag.String("url", envOrDefault("NATS_URL", nats.DefaultURL), "NATS server URL")
	subject := flag.String("subject", envOrDefault("FRAMEFEED_SUBJECT", "travel.frames"), "Subject to consume")
	queue := flag.String("queue", "framefeed", "Queue group name")
	dbPath := flag.String("db", envOrDefault("EXTRACTION_DB", ""), "SQLite mirror path (empty: in-memory)")
	workers := flag.Int("workers", 4, "Frame extraction concurrency")

	flag.Parse()

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	consumer, err := feed.New(st, feed.Config{
		URL:     *url,
		Subject: *subject,
		Queue:   *queue,
		Name:    "framefeed",
		Workers: *workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to NATS: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Consumer error: %v\n", err)
		os.Exit(1)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
