// internal/dataset/dataset.go
// Package dataset stores the tabular Q&A pairs used as tuning prompts.
// Imports arrive as two-column CSV and land in a JSON store that can be
// merged with or replace the existing contents.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mjarrell/otune/internal/util"
)

// Pair is a single question/answer row.
type Pair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// storeSchema validates the on-disk dataset file before it is trusted.
const storeSchema = `{
	"type": "object",
	"required": ["pairs"],
	"properties": {
		"pairs": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["question", "answer"],
				"properties": {
					"question": {"type": "string"},
					"answer": {"type": "string"}
				}
			}
		}
	}
}`

// storeFile is the JSON document shape of the dataset store.
type storeFile struct {
	Pairs []Pair `json:"pairs"`
}

// Store reads and writes the dataset file at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the dataset from disk. A missing file is an empty dataset.
func (s *Store) Load() ([]Pair, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read dataset %q: %w", s.path, err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(storeSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("could not validate dataset %q: %w", s.path, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("dataset %q is malformed: %s", s.path, strings.Join(details, "; "))
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse dataset %q: %w", s.path, err)
	}
	return file.Pairs, nil
}

// Save writes the dataset to disk, creating the parent directory if needed.
func (s *Store) Save(pairs []Pair) error {
	if pairs == nil {
		pairs = []Pair{}
	}
	data, err := json.MarshalIndent(storeFile{Pairs: pairs}, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return util.WriteFile(s.path, data)
}

// ReadCSV parses two-column question/answer rows. A first row whose cells
// look like column headers is skipped, as are blank rows.
func ReadCSV(r io.Reader) ([]Pair, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var pairs []Pair
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not parse CSV: %w", err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d has %d column(s), expected 2", len(pairs)+1, len(record))
		}
		q := strings.TrimSpace(record[0])
		a := strings.TrimSpace(record[1])
		if first {
			first = false
			if isHeaderRow(q, a) {
				continue
			}
		}
		if q == "" && a == "" {
			continue
		}
		pairs = append(pairs, Pair{Question: q, Answer: a})
	}
	return pairs, nil
}

func isHeaderRow(q, a string) bool {
	return strings.EqualFold(q, "question") && strings.EqualFold(a, "answer")
}

// Merge combines incoming pairs into existing ones, deduplicating by
// question (case-insensitive, whitespace-trimmed). Incoming answers win on
// collision; existing order is preserved, new questions append in order.
func Merge(existing, incoming []Pair) []Pair {
	index := make(map[string]int, len(existing))
	merged := make([]Pair, len(existing))
	copy(merged, existing)
	for i, p := range merged {
		index[mergeKey(p.Question)] = i
	}

	for _, p := range incoming {
		key := mergeKey(p.Question)
		if i, ok := index[key]; ok {
			merged[i] = p
			continue
		}
		index[key] = len(merged)
		merged = append(merged, p)
	}
	return merged
}

func mergeKey(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}
