package travel

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FlexInt decodes from either a JSON number or a numeric string, since
// upstream frame producers disagree about frame_index typing.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*f = FlexInt(n)
		}
	}
	// Unparseable values decode as zero rather than failing the frame.
	return nil
}

// Frame is one sampled instant of a multi-frame source: the text the
// upstream OCR collaborator produced for it, or the error it failed
// with. This core never sees the pixels behind it.
type Frame struct {
	FrameIndex FlexInt `json:"frame_index"`
	Text       string  `json:"text,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// FrameResult is the per-frame extraction outcome. Error frames carry
// no entities and contribute nothing to a merge.
type FrameResult struct {
	FrameIndex FlexInt       `json:"frame_index"`
	Text       string        `json:"text,omitempty"`
	Entities   *EntityRecord `json:"entities,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// Batch is the wire shape for a multi-frame extraction job, consumed by
// the CLI, the HTTP API, and the frame feed.
type Batch struct {
	JobID    string  `json:"job_id,omitempty"`
	Filename string  `json:"filename,omitempty"`
	Frames   []Frame `json:"frames"`
}

// Result kinds for ExtractionResult.
const (
	KindStatic  = "static"
	KindDynamic = "dynamic"
)

// ExtractionResult is the stored and served envelope for one extraction
// job: a static single-text result or a dynamic multi-frame result.
type ExtractionResult struct {
	FileID          string        `json:"file_id"`
	Filename        string        `json:"filename,omitempty"`
	Kind            string        `json:"type"`
	Timestamp       time.Time     `json:"timestamp"`
	Entities        *EntityRecord `json:"entities,omitempty"`
	FramesProcessed int           `json:"frames_processed,omitempty"`
	FrameResults    []FrameResult `json:"frame_results,omitempty"`
	MergedEntities  *EntityRecord `json:"merged_entities,omitempty"`
}

// Record returns the entity record questions are answered against: the
// static entities when present, else the merged record, else empty.
func (r *ExtractionResult) Record() EntityRecord {
	if r.Entities != nil {
		return *r.Entities
	}
	if r.MergedEntities != nil {
		return *r.MergedEntities
	}
	return EntityRecord{}
}
