package engine

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"meteorsim/internal/impact"
)

func TestFileWriterWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	fw, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	rows := []impact.SimulationResult{
		{ID: "run-1", EnergyMegatons: 12},
		{ID: "run-2", EnergyMegatons: 195.2},
	}
	if err := fw.WriteResults(rows); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	var got []impact.SimulationResult
	for scanner.Scan() {
		var r impact.SimulationResult
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatalf("line not valid JSON: %v", err)
		}
		got = append(got, r)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got[0].ID != "run-1" || got[1].EnergyMegatons != 195.2 {
		t.Fatalf("unexpected rows: %+v", got)
	}
}
