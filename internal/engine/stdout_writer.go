// Writer implementation printing results to STDOUT
package engine

import (
	"encoding/json"
	"fmt"

	"meteorsim/internal/impact"
)

// StdoutWriter prints result rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// WriteResult outputs a single result.
func (w *StdoutWriter) WriteResult(r impact.SimulationResult) error {
	data, _ := json.Marshal(r)
	fmt.Println(string(data))
	return nil
}

// WriteResults outputs multiple results.
func (w *StdoutWriter) WriteResults(rows []impact.SimulationResult) error {
	for _, r := range rows {
		_ = w.WriteResult(r)
	}
	return nil
}
