// Command-line entry point for the travel document extraction toolkit.
//
// Note about input formats
// ------------------------
// The extract command reads JSONL (one JSON object per line). In the real
// world, OCR output arrives in any of these shapes:
//  1. Frame batch: {"job_id":"...","frames":[{"frame_index":0,"text":"..."},...]}
//  2. Flat text:   {"filename":"ticket.png","text":"..."}
//  3. Collector logs: OCR text nested deeper, e.g. {"result":{"text":"..."}}.
//
// This CLI tries to autodetect all three. Use -all to keep lines even if
// no entities were extracted, and -trace to see which pattern won each
// entity category.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"travel_parser/internal/extractor"
	"travel_parser/internal/frames"
	"travel_parser/internal/qa"
	"travel_parser/internal/query"
	"travel_parser/internal/travel"
)

type Stats struct {
	Lines        int
	ParsedBatch  int
	ParsedFlat   int
	ParsedNested int
	Skipped      int
	Emitted      int
	Matched      int
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "travel_parser - commands:")
	fmt.Fprintln(w, "  extract  - extract entities from JSONL input and output JSON")
	fmt.Fprintln(w, "  query    - parse a natural-language flight query")
	fmt.Fprintln(w, "  ask      - answer a question against a saved extraction result")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  travel_parser extract -input frames.jsonl [-output out.json] [-pretty] [-all] [-stats] [-trace] [-workers N]")
	fmt.Fprintln(w, "  travel_parser query [-date YYYY-MM-DD] [-pretty] \"round trip delhi to mumbai on next monday\"")
	fmt.Fprintln(w, "  travel_parser ask -record result.json \"how many passengers\"")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - extract input must be JSONL (one JSON object per line).")
	fmt.Fprintln(w, "  - For collector logs, the tool will try to find the OCR text in nested paths.")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "extract":
		runExtract(os.Args[2:])
	case "query":
		runQuery(os.Args[2:])
	case "ask":
		runAsk(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	inPath := fs.String("input", "", "Input JSONL file (default: stdin)")
	outPath := fs.String("output", "", "Output JSON file (default: stdout)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	includeAll := fs.Bool("all", false, "Include lines even if no entities were extracted")
	showStats := fs.Bool("stats", false, "Print basic counters to stderr")
	showTrace := fs.Bool("trace", false, "Print per-category pattern traces to stderr")
	workers := fs.Int("workers", 0, "Frame extraction concurrency (default: 4)")
	_ = fs.Parse(args)

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	// JSON lines can be long; bump buffer (60MB).
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 60*1024*1024)

	out := make([]*travel.ExtractionResult, 0, 1024)
	st := &Stats{}

	for scanner.Scan() {
		st.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		j, kind := decodeToJob([]byte(line))
		if j == nil {
			st.Skipped++
			continue
		}
		switch kind {
		case "batch":
			st.ParsedBatch++
		case "flat":
			st.ParsedFlat++
		case "nested":
			st.ParsedNested++
		}

		res := runJob(j, *workers, *showTrace)
		rec := res.Record()
		matched := !rec.Empty()
		if matched {
			st.Matched++
		}
		if *includeAll || matched {
			out = append(out, res)
			st.Emitted++
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Input read error: %v\n", err)
		os.Exit(1)
	}

	var wout io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		wout = f
	}

	enc, err := marshalJSON(out, *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "JSON encode error: %v\n", err)
		os.Exit(1)
	}
	_, _ = wout.Write(enc)
	if wout == os.Stdout {
		_, _ = wout.Write([]byte("\n"))
	}

	if *showStats {
		fmt.Fprintf(os.Stderr,
			"stats: lines=%d parsed(batch=%d flat=%d nested=%d) skipped(no_text)=%d emitted=%d matched=%d\n",
			st.Lines, st.ParsedBatch, st.ParsedFlat, st.ParsedNested, st.Skipped, st.Emitted, st.Matched,
		)
	}
}

func runQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	date := fs.String("date", "", "Reference date YYYY-MM-DD (default: today UTC)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	_ = fs.Parse(args)

	current := time.Now().UTC()
	if *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -date (use YYYY-MM-DD): %v\n", err)
			os.Exit(1)
		}
		current = parsed
	}

	emit := func(q string) {
		enc, err := marshalJSON(query.Parse(q, current), *pretty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "JSON encode error: %v\n", err)
			os.Exit(1)
		}
		_, _ = os.Stdout.Write(enc)
		_, _ = os.Stdout.Write([]byte("\n"))
	}

	if q := strings.TrimSpace(strings.Join(fs.Args(), " ")); q != "" {
		emit(q)
		return
	}

	// No argv question: treat stdin as one query per line.
	parsed := 0
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		emit(line)
		parsed++
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Input read error: %v\n", err)
		os.Exit(1)
	}
	if parsed == 0 {
		fmt.Fprintln(os.Stderr, "No query provided")
		os.Exit(2)
	}
}

func runAsk(args []string) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	recordPath := fs.String("record", "", "Extraction result JSON file to question")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	_ = fs.Parse(args)

	if *recordPath == "" {
		fmt.Fprintln(os.Stderr, "Missing -record")
		os.Exit(2)
	}
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "No question provided")
		os.Exit(2)
	}

	rec, err := loadRecord(*recordPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load record: %v\n", err)
		os.Exit(1)
	}

	enc, err := marshalJSON(qa.Answer(rec, question), *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "JSON encode error: %v\n", err)
		os.Exit(1)
	}
	_, _ = os.Stdout.Write(enc)
	_, _ = os.Stdout.Write([]byte("\n"))
}

// job is one decoded input line: a frame batch or a single text blob.
type job struct {
	batch    *travel.Batch
	filename string
	text     string
}

// decodeToJob classifies one line of input.
func decodeToJob(b []byte) (*job, string) {
	// 1) Frame batch
	var batch travel.Batch
	if err := json.Unmarshal(b, &batch); err == nil && len(batch.Frames) > 0 {
		return &job{batch: &batch}, "batch"
	}

	// 2) Flat object carrying the text directly
	var flat struct {
		Filename string `json:"filename"`
		Text     string `json:"text"`
	}
	if err := json.Unmarshal(b, &flat); err == nil && strings.TrimSpace(flat.Text) != "" {
		return &job{filename: flat.Filename, text: flat.Text}, "flat"
	}

	// 3) Nested formats (OCR service envelopes, collector logs)
	var anyObj any
	if err := json.Unmarshal(b, &anyObj); err != nil {
		return nil, ""
	}
	root, ok := anyObj.(map[string]any)
	if !ok {
		return nil, ""
	}
	text := firstString(root,
		"ocr.text",
		"result.text",
		"data.text",
		"payload.text",
	)
	if strings.TrimSpace(text) == "" {
		return nil, ""
	}
	filename := firstString(root,
		"filename",
		"file.name",
		"result.filename",
	)
	return &job{filename: filename, text: text}, "nested"
}

// runJob extracts entities for one decoded line. Batches fan out across
// workers and merge; single texts extract directly.
func runJob(j *job, workers int, trace bool) *travel.ExtractionResult {
	res := &travel.ExtractionResult{
		FileID:    uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}

	if j.batch != nil {
		if j.batch.JobID != "" {
			res.FileID = j.batch.JobID
		}
		res.Filename = j.batch.Filename
		res.Kind = travel.KindDynamic
		results := frames.ProcessBatch(j.batch.Frames, workers)
		merged := frames.Merge(results)
		res.FramesProcessed = len(results)
		res.FrameResults = results
		res.MergedEntities = &merged
		return res
	}

	res.Filename = j.filename
	res.Kind = travel.KindStatic
	if trace {
		rec, traces := extractor.ExtractWithTrace(j.text)
		res.Entities = &rec
		for _, tr := range traces {
			fmt.Fprint(os.Stderr, tr.Format())
		}
	} else {
		rec := extractor.Extract(j.text)
		res.Entities = &rec
	}
	return res
}

// loadRecord reads an entity record for questioning. It accepts a stored
// extraction result, the result array the extract command writes, or a
// bare entity record.
func loadRecord(path string) (travel.EntityRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return travel.EntityRecord{}, err
	}

	var res travel.ExtractionResult
	if err := json.Unmarshal(b, &res); err == nil {
		if rec := res.Record(); !rec.Empty() {
			return rec, nil
		}
	}

	var list []travel.ExtractionResult
	if err := json.Unmarshal(b, &list); err == nil && len(list) > 0 {
		if rec := list[0].Record(); !rec.Empty() {
			return rec, nil
		}
	}

	var rec travel.EntityRecord
	if err := json.Unmarshal(b, &rec); err == nil && !rec.Empty() {
		return rec, nil
	}
	return travel.EntityRecord{}, fmt.Errorf("no entities found in %s", path)
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func firstString(root map[string]any, paths ...string) string {
	for _, p := range paths {
		if v, ok := deepGet(root, p); ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

// deepGet walks a map[string]any using a dotted path: "a.b.c".
func deepGet(root map[string]any, dotted string) (any, bool) {
	parts := strings.Split(dotted, ".")
	var cur any = root
	for _, part := range parts {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}
