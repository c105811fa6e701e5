package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// Record is one career description as produced by the data-cleaning pipeline.
// Records are immutable once loaded; the service never writes the corpus file.
type Record struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Load reads a UTF-8 JSON array of records from path.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", path, err)
	}

	return records, nil
}
