package engine

import (
	"encoding/json"
	"os"

	"meteorsim/internal/impact"
)

// FileWriter appends results to a JSONL file, one result per line. The
// format is what ReplayLog reads back.
type FileWriter struct {
	file *os.File
	enc  *json.Encoder
}

// NewFileWriter creates a FileWriter targeting path.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// WriteResult logs a single result.
func (f *FileWriter) WriteResult(r impact.SimulationResult) error {
	return f.enc.Encode(r)
}

// WriteResults logs multiple results.
func (f *FileWriter) WriteResults(rows []impact.SimulationResult) error {
	for _, r := range rows {
		if err := f.WriteResult(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file.
func (f *FileWriter) Close() error {
	return f.file.Close()
}
