package engine

import "meteorsim/internal/impact"

// ResultWriter is an interface to support different output sinks for
// completed simulation results.
type ResultWriter interface {
	WriteResult(impact.SimulationResult) error
}

// Optional: writers can also support batch mode. MultiWriter and the replay
// path probe for it at runtime.
type batchResultWriter interface {
	WriteResults([]impact.SimulationResult) error
}
