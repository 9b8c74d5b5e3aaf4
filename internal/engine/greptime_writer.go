package engine

import (
	"context"
	"log"
	"strconv"
	"strings"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"meteorsim/internal/impact"
)

// GreptimeDBWriter writes results to GreptimeDB via the ingester client
type GreptimeDBWriter struct {
	client *greptime.Client
	db     string
	table  string
}

// impactResultsDDL documents the intended schema for the results table.
// The gRPC ingester client (greptimedb-ingester-go) cannot execute SQL, so
// this DDL is not run here; GreptimeDB auto-creates the table on first write
// from the column schema below. Apply this DDL out of band to get the TTL.
const impactResultsDDL = `
CREATE TABLE IF NOT EXISTS impact_results (
  run_id STRING TAG,
  lat DOUBLE,
  lon DOUBLE,
  mass_kg DOUBLE,
  energy_joules DOUBLE,
  energy_megatons DOUBLE,
  crater_diameter_m DOUBLE,
  fireball_radius_km DOUBLE,
  shockwave_db DOUBLE,
  wind_peak_mps DOUBLE,
  quake_magnitude DOUBLE,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='90d')
`

// NewGreptimeDBWriter creates a new GreptimeDB writer.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	host := endpoint
	cfg := (*greptime.Config)(nil)
	if h, p, ok := strings.Cut(endpoint, ":"); ok {
		if port, err := strconv.Atoi(p); err == nil {
			cfg = greptime.NewConfig(h).WithPort(port)
		}
	}
	if cfg == nil {
		cfg = greptime.NewConfig(host)
	}
	cfg = cfg.WithDatabase(database)

	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client: client,
		db:     database,
		table:  "impact_results",
	}, nil
}

// WriteResult inserts a single result row.
func (w *GreptimeDBWriter) WriteResult(r impact.SimulationResult) error {
	return w.WriteResults([]impact.SimulationResult{r})
}

// WriteResults inserts multiple result rows.
func (w *GreptimeDBWriter) WriteResults(rows []impact.SimulationResult) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.New(context.Background())

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("run_id", types.STRING); err != nil {
		return err
	}
	for _, col := range []string{
		"lat", "lon", "mass_kg", "energy_joules", "energy_megatons",
		"crater_diameter_m", "fireball_radius_km", "shockwave_db",
		"wind_peak_mps", "quake_magnitude",
	} {
		if err := tbl.AddFieldColumn(col, types.FLOAT64); err != nil {
			return err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(
			r.ID,
			r.Location.Lat,
			r.Location.Lon,
			r.MassKg,
			r.EnergyJoules,
			r.EnergyMegatons,
			r.Crater.DiameterM,
			r.Fireball.RadiusKm,
			r.Shockwave.Decibels,
			r.WindBlast.PeakSpeedMps,
			r.Earthquake.Magnitude,
			r.Timestamp,
		); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(ctx, tbl); err != nil {
		log.Printf("[GreptimeDBWriter] Write failed: %v", err)
		return err
	}

	log.Printf("[GreptimeDBWriter] wrote %d rows", len(rows))
	return nil
}
