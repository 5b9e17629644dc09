// Package feed consumes OCR'd frame batches from a NATS subject and runs
// them through the extraction pipeline, storing the merged results.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"travel_parser/internal/frames"
	"travel_parser/internal/store"
	"travel_parser/internal/travel"
)

// ErrEmptyBatch marks a decoded batch that carries no frames.
var ErrEmptyBatch = errors.New("batch has no frames")

// Consumer subscribes to a NATS subject carrying frame batches and stores
// the merged extraction result for each one.
type Consumer struct {
	conn    *nats.Conn
	store   *store.Store
	subject string
	queue   string
	workers int
}

// Config holds configuration for the frame feed consumer.
type Config struct {
	URL     string // NATS server URL.
	Subject string
	Queue   string // Queue group, so multiple consumers share the load.
	Name    string // Connection name reported to the server.
	Workers int    // Frame extraction concurrency.
}

// New connects to the NATS server and prepares a consumer.
func New(st *store.Store, cfg Config) (*Consumer, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name(cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	return &Consumer{
		conn:    conn,
		store:   st,
		subject: cfg.Subject,
		queue:   cfg.Queue,
		workers: cfg.Workers,
	}, nil
}

// Run subscribes and processes batches until the context is cancelled,
// then drains the connection so in-flight handlers finish.
func (c *Consumer) Run(ctx context.Context) error {
	if _, err := c.conn.QueueSubscribe(c.subject, c.queue, func(msg *nats.Msg) {
		if err := c.process(msg.Data); err != nil {
			log.Printf("dropping frame batch: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("subscribing to %s: %w", c.subject, err)
	}

	log.Printf("Frame feed consuming %q (queue %q)", c.subject, c.queue)
	<-ctx.Done()

	// Drain stops new deliveries and closes the connection once the
	// handlers already running have returned.
	closed := make(chan struct{})
	c.conn.SetClosedHandler(func(*nats.Conn) { close(closed) })
	if err := c.conn.Drain(); err != nil {
		return fmt.Errorf("draining NATS connection: %w", err)
	}
	<-closed
	return nil
}

// process decodes one frame batch, extracts and merges its entities, and
// stores the result. Malformed payloads are returned as errors so the
// subscription handler can log and drop them.
func (c *Consumer) process(data []byte) error {
	var batch travel.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return fmt.Errorf("decoding batch: %w", err)
	}
	if len(batch.Frames) == 0 {
		return ErrEmptyBatch
	}

	fileID := batch.JobID
	if fileID == "" {
		fileID = uuid.NewString()
	}

	results := frames.ProcessBatch(batch.Frames, c.workers)
	merged := frames.Merge(results)

	res := &travel.ExtractionResult{
		FileID:          fileID,
		Filename:        batch.Filename,
		Kind:            travel.KindDynamic,
		Timestamp:       time.Now().UTC(),
		FramesProcessed: len(results),
		FrameResults:    results,
		MergedEntities:  &merged,
	}
	c.store.Save(res)

	log.Printf("frame batch %s: %d frames, %d entities", fileID, len(results), len(merged.Fields()))
	return nil
}
