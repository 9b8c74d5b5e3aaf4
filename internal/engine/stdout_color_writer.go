// ColorStdoutWriter prints human-friendly, colorized results to STDOUT.
package engine

import (
	"fmt"
	"io"
	"os"
	"time"

	"meteorsim/internal/impact"
	"meteorsim/internal/units"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorWhite   = "\x1b[37m"
	colorGray    = "\x1b[90m"
)

// Severity thresholds in megatons for the energy color.
const (
	severityModerateMt = 1.0
	severitySevereMt   = 100.0
)

// ColorStdoutWriter prints result rows using ANSI colors.
type ColorStdoutWriter struct {
	out io.Writer
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return &ColorStdoutWriter{out: os.Stdout}
}

func severityColor(megatons float64) string {
	switch {
	case megatons >= severitySevereMt:
		return colorRed
	case megatons >= severityModerateMt:
		return colorYellow
	default:
		return colorGreen
	}
}

// WriteResult outputs a single result in colorized format.
func (w *ColorStdoutWriter) WriteResult(r impact.SimulationResult) error {
	eColor := severityColor(r.EnergyMegatons)
	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, r.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%srun=%s%s ", colorWhite, r.ID, colorReset)
	fmt.Fprintf(w.out, "%sloc=(%.4f,%.4f)%s ", colorBlue, r.Location.Lat, r.Location.Lon, colorReset)
	fmt.Fprintf(w.out, "%senergy=%.2fMT%s ", eColor, r.EnergyMegatons, colorReset)
	fmt.Fprintf(w.out, "%scrater=%.2fkm%s ", colorMagenta, r.Crater.DiameterM/units.MetersPerKilometer, colorReset)
	fmt.Fprintf(w.out, "%sfireball=%.2fkm%s ", colorYellow, r.Fireball.RadiusKm, colorReset)
	fmt.Fprintf(w.out, "%sshock=%.0fdB%s ", colorCyan, r.Shockwave.Decibels, colorReset)
	fmt.Fprintf(w.out, "%swind=%.0fm/s%s ", colorCyan, r.WindBlast.PeakSpeedMps, colorReset)
	fmt.Fprintf(w.out, "%squake=M%.1f%s", colorGreen, r.Earthquake.Magnitude, colorReset)
	fmt.Fprintln(w.out)
	return nil
}

// WriteResults outputs multiple results.
func (w *ColorStdoutWriter) WriteResults(rows []impact.SimulationResult) error {
	for _, r := range rows {
		_ = w.WriteResult(r)
	}
	return nil
}
