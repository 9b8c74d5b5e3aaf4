package engine

import "meteorsim/internal/impact"

// MultiWriter fans results out to multiple writers.
type MultiWriter struct {
	writers []ResultWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...ResultWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// WriteResult sends a result to all writers.
func (mw *MultiWriter) WriteResult(r impact.SimulationResult) error {
	for _, w := range mw.writers {
		if err := w.WriteResult(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteResults sends multiple results to all writers, using batch mode where
// a writer supports it.
func (mw *MultiWriter) WriteResults(rows []impact.SimulationResult) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchResultWriter); ok {
			if err := bw.WriteResults(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteResult(r); err != nil {
				return err
			}
		}
	}
	return nil
}
