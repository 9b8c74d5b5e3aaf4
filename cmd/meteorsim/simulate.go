package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"meteorsim/internal/engine"
	"meteorsim/internal/impact"
	"meteorsim/internal/logging"
	"meteorsim/internal/observability"
	"meteorsim/internal/preset"
	"meteorsim/internal/remote"
	"meteorsim/internal/units"
)

var (
	simPreset      string
	simDiameter    float64
	simVelocity    float64
	simAngle       float64
	simComposition string
	simLat         float64
	simLon         float64
	simConfigPath  string
	simSchemaPath  string
	simLogFile     string
	simPrintOnly   bool
	simPretty      bool
	simPresetsFile string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a single impact simulation",
	Long:  "simulate computes one impact scenario from explicit parameters or a named preset and emits the result.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New()
		cfg, err := loadConfig(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}

		params := impact.AsteroidParameters{
			DiameterM:    simDiameter,
			VelocityKmps: simVelocity,
			AngleDeg:     simAngle,
			Composition:  units.Composition(simComposition),
		}
		var location *impact.ImpactLocation
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
			location = &impact.ImpactLocation{Lat: simLat, Lon: simLon}
		}

		if simPreset != "" {
			catalog, err := loadPresets(simPresetsFile)
			if err != nil {
				return err
			}
			p, ok := catalog.ByName(simPreset)
			if !ok {
				return fmt.Errorf("unknown preset %q", simPreset)
			}
			params = p.Params
			if location == nil {
				location = p.Location
			}
		}

		writer, cleanup, err := newWriters(cfg, simPrintOnly, simPretty, simLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		var remoteClient engine.RemoteComputer
		if cfg.Remote.Endpoint != "" {
			remoteClient = remote.NewClient(cfg.Remote.Endpoint, cfg.RemoteTimeout(), logger)
		}

		eng := engine.New(cfg, remoteClient, writer, logger)
		eng.SetMetrics(observability.NewMetrics())

		result, outcome, err := eng.Run(context.Background(), params, location)
		if err != nil {
			return err
		}
		logger.Info("simulation complete", "id", result.ID, "outcome", outcome, "megatons", result.EnergyMegatons)
		return nil
	},
}

func loadPresets(path string) (*preset.Catalog, error) {
	if path == "" {
		return preset.Builtin(), nil
	}
	return preset.Load(path)
}

func init() {
	simulateCmd.Flags().StringVar(&simPreset, "preset", "", "Named preset scenario (see 'meteorsim presets')")
	simulateCmd.Flags().Float64Var(&simDiameter, "diameter", 100, "Asteroid diameter in meters")
	simulateCmd.Flags().Float64Var(&simVelocity, "velocity", 20, "Entry velocity in km/s")
	simulateCmd.Flags().Float64Var(&simAngle, "angle", 45, "Entry angle in degrees from horizontal")
	simulateCmd.Flags().StringVar(&simComposition, "composition", "stone", "Asteroid composition (iron, stone, ice, carbonaceous)")
	simulateCmd.Flags().Float64Var(&simLat, "lat", 0, "Impact latitude")
	simulateCmd.Flags().Float64Var(&simLon, "lon", 0, "Impact longitude")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/meteorsim.yaml", "Path to configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/meteorsim.cue", "Path to CUE schema file")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export results (JSONL)")
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print results to STDOUT instead of configured sinks")
	simulateCmd.Flags().BoolVar(&simPretty, "pretty", false, "Colorized human-friendly STDOUT output")
	simulateCmd.Flags().StringVar(&simPresetsFile, "presets-file", "", "Path to additional presets YAML")
}
