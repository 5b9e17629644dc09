package feed

import (
	"errors"
	"testing"

	"travel_parser/internal/store"
	"travel_parser/internal/travel"
)

func newTestConsumer(t *testing.T) *Consumer {
	t.Helper()
	st, err := store.NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return &Consumer{store: st, workers: 2}
}

func TestProcessStoresMergedResult(t *testing.T) {
	c := newTestConsumer(t)

	payload := `{
		"job_id": "job-42",
		"filename": "clip.mp4",
		"frames": [
			{"frame_index": 0, "text": "Passenger: Jo"},
			{"frame_index": 1, "text": "Passenger: John Smith"},
			{"frame_index": 2, "error": "ocr timeout"}
		]
	}`
	if err := c.process([]byte(payload)); err != nil {
		t.Fatalf("process returned error: %v", err)
	}

	res, ok := c.store.Get("job-42")
	if !ok {
		t.Fatal("expected batch stored under its job_id")
	}
	if res.Kind != travel.KindDynamic {
		t.Errorf("expected type %q, got %q", travel.KindDynamic, res.Kind)
	}
	if res.Filename != "clip.mp4" {
		t.Errorf("expected filename clip.mp4, got %q", res.Filename)
	}
	if res.FramesProcessed != 3 {
		t.Errorf("expected 3 frames processed, got %d", res.FramesProcessed)
	}
	if res.MergedEntities == nil || res.MergedEntities.Name != "John Smith" {
		t.Errorf("unexpected merged entities %+v", res.MergedEntities)
	}
}

func TestProcessGeneratesFileID(t *testing.T) {
	c := newTestConsumer(t)

	payload := `{"frames": [{"frame_index": 0, "text": "PNR: ABC123"}]}`
	if err := c.process([]byte(payload)); err != nil {
		t.Fatalf("process returned error: %v", err)
	}

	jobs := c.store.List(0)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 stored job, got %d", len(jobs))
	}
	if jobs[0].FileID == "" {
		t.Error("expected a generated file_id")
	}
}

func TestProcessRejectsMalformed(t *testing.T) {
	c := newTestConsumer(t)

	if err := c.process([]byte("not json at all")); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if err := c.process([]byte(`{}`)); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
	if err := c.process([]byte(`{"frames": []}`)); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}

	if got := c.store.GetStats().Jobs; got != 0 {
		t.Errorf("expected nothing stored, got %d jobs", got)
	}
}
