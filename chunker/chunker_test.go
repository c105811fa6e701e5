package chunker

import (
	"reflect"
	"strings"
	"testing"

	"github.com/margdarshak/disha/corpus"
)

func TestSplitAssignsContiguousIndexes(t *testing.T) {
	records := []corpus.Record{
		{
			ID:      1,
			Title:   "Software Engineer",
			Content: strings.Repeat("Software engineers design and build computer programs. ", 40),
		},
		{
			ID:      2,
			Title:   "Doctor",
			Content: strings.Repeat("Doctors diagnose and treat illness in patients of all ages. ", 40),
		},
	}

	chunks, err := New().Split(records)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	if len(chunks) < 4 {
		t.Fatalf("expected multiple chunks per record, got %d total", len(chunks))
	}

	next := map[int]int{}
	for _, ch := range chunks {
		if ch.Index != next[ch.SourceID] {
			t.Fatalf("record %d: expected chunk index %d, got %d", ch.SourceID, next[ch.SourceID], ch.Index)
		}
		next[ch.SourceID]++
	}

	if next[1] == 0 || next[2] == 0 {
		t.Fatalf("expected chunks for both records, got counts %v", next)
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	records := []corpus.Record{
		{
			ID:      7,
			Title:   "Pilot",
			Content: strings.Repeat("Pilots fly aircraft and are responsible for passenger safety. ", 30),
		},
	}

	first, err := New().Split(records)
	if err != nil {
		t.Fatalf("first split failed: %v", err)
	}

	second, err := New().Split(records)
	if err != nil {
		t.Fatalf("second split failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical chunks from identical input")
	}
}

func TestSplitRespectsChunkSize(t *testing.T) {
	records := []corpus.Record{
		{
			ID:      3,
			Title:   "Teacher",
			Content: strings.Repeat("Teachers educate students across many subjects and grade levels. ", 50),
		},
	}

	chunks, err := New().Split(records)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	for _, ch := range chunks {
		if len(ch.Text) == 0 {
			t.Fatal("found an empty chunk")
		}
		if len(ch.Text) > 512 {
			t.Fatalf("chunk exceeds target size: %d chars", len(ch.Text))
		}
	}
}

func TestSplitSkipsEmptyRecords(t *testing.T) {
	records := []corpus.Record{
		{ID: 1, Title: "", Content: ""},
		{ID: 2, Title: "   ", Content: "\n\n"},
		{ID: 3, Title: "Nurse", Content: "Nurses care for patients."},
	}

	chunks, err := New().Split(records)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	for _, ch := range chunks {
		if ch.SourceID != 3 {
			t.Fatalf("empty record %d produced a chunk", ch.SourceID)
		}
	}

	if len(chunks) == 0 {
		t.Fatal("expected chunks for the non-empty record")
	}
}

func TestSplitPrependsTitle(t *testing.T) {
	records := []corpus.Record{
		{ID: 9, Title: "Architect", Content: "Architects design buildings."},
	}

	chunks, err := New().Split(records)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}

	if !strings.HasPrefix(chunks[0].Text, "Architect") {
		t.Fatalf("expected first chunk to open with the title, got %q", chunks[0].Text)
	}

	if chunks[0].Title != "Architect" {
		t.Fatalf("expected title metadata, got %q", chunks[0].Title)
	}
}
