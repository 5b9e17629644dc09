// Package frames fans the entity extractor out across OCR'd video frames
// and consolidates the per-frame records into a single merged record.
package frames

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"travel_parser/internal/extractor"
	"travel_parser/internal/travel"
)

// defaultWorkers bounds extraction concurrency when the caller does not.
const defaultWorkers = 4

// ProcessBatch extracts entities from every frame concurrently and returns
// one result per frame, ordered by frame index ascending. Frames that carry
// an upstream error are passed through untouched; they never stop the batch.
func ProcessBatch(frames []travel.Frame, workers int) []travel.FrameResult {
	if workers <= 0 {
		workers = defaultWorkers
	}

	results := make([]travel.FrameResult, len(frames))

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, frame := range frames {
		eg.Go(func() error {
			results[i] = processFrame(frame)
			return nil
		})
	}
	// Workers only ever return nil; extraction is total.
	_ = eg.Wait()

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].FrameIndex < results[b].FrameIndex
	})
	return results
}

// processFrame handles a single frame. An upstream error means there is no
// text worth extracting; the frame contributes nothing to the merge.
func processFrame(frame travel.Frame) travel.FrameResult {
	if frame.Error != "" {
		return travel.FrameResult{
			FrameIndex: frame.FrameIndex,
			Error:      frame.Error,
		}
	}

	rec := extractor.Extract(frame.Text)
	return travel.FrameResult{
		FrameIndex: frame.FrameIndex,
		Text:       frame.Text,
		Entities:   &rec,
	}
}
