// internal/dataset/dataset_test.go
package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"Question,Answer",
		`"What is Go?","A programming language"`,
		"",
		`"Who made it?","Google"`,
	}, "\n")

	pairs, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %v", len(pairs), pairs)
	}
	if pairs[0].Question != "What is Go?" || pairs[0].Answer != "A programming language" {
		t.Fatalf("unexpected first pair: %+v", pairs[0])
	}
}

func TestReadCSVNoHeader(t *testing.T) {
	pairs, err := ReadCSV(strings.NewReader("q1,a1\nq2,a2\n"))
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if len(pairs) != 2 || pairs[0].Question != "q1" {
		t.Fatalf("unexpected pairs: %v", pairs)
	}
}

func TestReadCSVRejectsSingleColumn(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("only-one-column\n")); err == nil {
		t.Fatal("expected error for single-column row")
	}
}

func TestMerge(t *testing.T) {
	existing := []Pair{
		{Question: "What is Go?", Answer: "old"},
		{Question: "Who made it?", Answer: "Google"},
	}
	incoming := []Pair{
		{Question: "what is go?", Answer: "new"},
		{Question: "When?", Answer: "2009"},
	}

	merged := Merge(existing, incoming)
	if len(merged) != 3 {
		t.Fatalf("expected 3 pairs, got %d: %v", len(merged), merged)
	}
	if merged[0].Answer != "new" {
		t.Fatalf("incoming answer should win on collision, got %+v", merged[0])
	}
	if merged[1].Answer != "Google" {
		t.Fatalf("untouched pair changed: %+v", merged[1])
	}
	if merged[2].Question != "When?" {
		t.Fatalf("new question should append, got %+v", merged[2])
	}
}

func TestMergeIntoEmpty(t *testing.T) {
	incoming := []Pair{{Question: "q", Answer: "a"}}
	merged := Merge(nil, incoming)
	if len(merged) != 1 || merged[0] != incoming[0] {
		t.Fatalf("unexpected merge result: %v", merged)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dataset.json")
	store := NewStore(path)

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load of missing file should be empty, got error: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty dataset, got %v", loaded)
	}

	pairs := []Pair{{Question: "q", Answer: "a"}}
	if err := store.Save(pairs); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err = store.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != pairs[0] {
		t.Fatalf("round trip mismatch: %v", loaded)
	}
}

func TestStoreLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := os.WriteFile(path, []byte(`{"pairs":[{"question":1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewStore(path).Load(); err == nil {
		t.Fatal("expected schema validation error")
	} else if !strings.Contains(err.Error(), "malformed") {
		t.Fatalf("expected malformed error, got: %v", err)
	}
}
