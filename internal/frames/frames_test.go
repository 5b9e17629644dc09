package frames

import (
	"reflect"
	"testing"

	"travel_parser/internal/travel"
)

func frameResult(idx int, rec travel.EntityRecord) travel.FrameResult {
	return travel.FrameResult{
		FrameIndex: travel.FlexInt(idx),
		Entities:   &rec,
	}
}

func TestMergeIdempotent(t *testing.T) {
	rec := travel.EntityRecord{
		Name:      "John Smith",
		Date:      "2024-03-15",
		Amount:    "4,500.00",
		BookingID: "ABC123",
	}

	once := Merge([]travel.FrameResult{frameResult(0, rec)})
	twice := Merge([]travel.FrameResult{frameResult(0, rec), frameResult(1, rec)})

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Merge([R, R]) = %+v, want %+v", twice, once)
	}
}

func TestMergeLongerValueWins(t *testing.T) {
	short := travel.EntityRecord{Name: "Jo"}
	long := travel.EntityRecord{Name: "John Smith"}

	tests := []struct {
		name    string
		results []travel.FrameResult
	}{
		{"short first", []travel.FrameResult{frameResult(0, short), frameResult(1, long)}},
		{"long first", []travel.FrameResult{frameResult(0, long), frameResult(1, short)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := Merge(tt.results)
			if merged.Name != "John Smith" {
				t.Errorf("Name = %q, want %q", merged.Name, "John Smith")
			}
		})
	}
}

func TestMergeSkipsErrorFrames(t *testing.T) {
	rec := travel.EntityRecord{Name: "Jane Roe"}
	results := []travel.FrameResult{
		{FrameIndex: 0, Error: "frame decode failed"},
		frameResult(1, rec),
		{FrameIndex: 2},
	}

	merged := Merge(results)
	if merged.Name != "Jane Roe" {
		t.Errorf("Name = %q, want %q", merged.Name, "Jane Roe")
	}
}

func TestMergeEmpty(t *testing.T) {
	merged := Merge(nil)
	if !merged.Empty() {
		t.Errorf("Merge(nil) = %+v, want empty record", merged)
	}
}

func TestMergePassengersFirstWins(t *testing.T) {
	first := travel.EntityRecord{
		Passengers: &travel.PassengerCount{AdultMale: 2, Total: 2},
	}
	second := travel.EntityRecord{
		Passengers: &travel.PassengerCount{AdultFemale: 5, Total: 5},
	}

	merged := Merge([]travel.FrameResult{frameResult(0, first), frameResult(1, second)})
	if merged.Passengers == nil {
		t.Fatal("Passengers = nil, want counts")
	}
	if merged.Passengers.AdultMale != 2 || merged.Passengers.Total != 2 {
		t.Errorf("Passengers = %s, want {adult_male: 2, total: 2}", merged.Passengers)
	}
}

func TestMergeFieldsIndependently(t *testing.T) {
	results := []travel.FrameResult{
		frameResult(0, travel.EntityRecord{Name: "John Smith", Amount: "450"}),
		frameResult(1, travel.EntityRecord{Date: "2024-03-15", Amount: "4,500.00"}),
	}

	merged := Merge(results)
	if merged.Name != "John Smith" {
		t.Errorf("Name = %q, want %q", merged.Name, "John Smith")
	}
	if merged.Date != "2024-03-15" {
		t.Errorf("Date = %q, want %q", merged.Date, "2024-03-15")
	}
	if merged.Amount != "4,500.00" {
		t.Errorf("Amount = %q, want %q", merged.Amount, "4,500.00")
	}
}

func TestProcessBatchOrdersByFrameIndex(t *testing.T) {
	frames := []travel.Frame{
		{FrameIndex: 3, Text: "Passenger: Ann Lee"},
		{FrameIndex: 0, Text: "PNR: ABC123"},
		{FrameIndex: 2, Text: "Amount: 450"},
		{FrameIndex: 1, Error: "blurred frame"},
	}

	results := ProcessBatch(frames, 2)
	if len(results) != 4 {
		t.Fatalf("len(results) = %d, want 4", len(results))
	}
	for i, fr := range results {
		if int(fr.FrameIndex) != i {
			t.Errorf("results[%d].FrameIndex = %d, want %d", i, fr.FrameIndex, i)
		}
	}
}

func TestProcessBatchExtracts(t *testing.T) {
	frames := []travel.Frame{
		{FrameIndex: 0, Text: "Passenger: John Smith"},
		{FrameIndex: 1, Text: "PNR: ABC123"},
		{FrameIndex: 2, Text: "Delhi to Mumbai"},
	}

	results := ProcessBatch(frames, 8)

	if results[0].Entities == nil || results[0].Entities.Name != "John Smith" {
		t.Errorf("frame 0 entities = %+v, want Name John Smith", results[0].Entities)
	}
	if results[1].Entities == nil || results[1].Entities.BookingID != "ABC123" {
		t.Errorf("frame 1 entities = %+v, want BookingID ABC123", results[1].Entities)
	}
	if results[2].Entities == nil || results[2].Entities.Route != "Delhi-Mumbai" {
		t.Errorf("frame 2 entities = %+v, want Route Delhi-Mumbai", results[2].Entities)
	}
}

func TestProcessBatchErrorPassthrough(t *testing.T) {
	frames := []travel.Frame{
		{FrameIndex: 0, Text: "Passenger: John Smith", Error: "ocr timeout"},
	}

	results := ProcessBatch(frames, 0)
	if results[0].Error != "ocr timeout" {
		t.Errorf("Error = %q, want %q", results[0].Error, "ocr timeout")
	}
	if results[0].Entities != nil {
		t.Errorf("Entities = %+v, want nil for errored frame", results[0].Entities)
	}
}

func TestProcessBatchThenMerge(t *testing.T) {
	frames := []travel.Frame{
		{FrameIndex: 0, Text: "Passenger: Jo"},
		{FrameIndex: 1, Text: "Passenger: John Smith, PNR: ABC123"},
		{FrameIndex: 2, Text: "Amount: ₹ 4,500.00"},
		{FrameIndex: 3, Error: "frame decode failed"},
	}

	merged := Merge(ProcessBatch(frames, 4))

	if merged.Name != "John Smith" {
		t.Errorf("Name = %q, want %q", merged.Name, "John Smith")
	}
	if merged.BookingID != "ABC123" {
		t.Errorf("BookingID = %q, want %q", merged.BookingID, "ABC123")
	}
	if merged.Amount != "4,500.00" {
		t.Errorf("Amount = %q, want %q", merged.Amount, "4,500.00")
	}
}
