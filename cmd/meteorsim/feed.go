package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"meteorsim/internal/cache"
	"meteorsim/internal/engine"
	"meteorsim/internal/impact"
	"meteorsim/internal/logging"
	"meteorsim/internal/nasa"
	"meteorsim/internal/units"
)

var (
	feedStart       string
	feedEnd         string
	feedAPIKey      string
	feedComposition string
	feedAngle       float64
	feedSimulate    bool
	feedConfigPath  string
	feedSchemaPath  string
	feedPrintOnly   bool
	feedPretty      bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "List near-Earth objects from the NASA NEO feed",
	Long:  "feed fetches the NEO close-approach feed for a date range and optionally simulates impacts for the hazardous objects.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New()
		cfg, err := loadConfig(feedConfigPath, feedSchemaPath)
		if err != nil {
			return err
		}

		today := time.Now().Format("2006-01-02")
		if feedStart == "" {
			feedStart = today
		}
		if feedEnd == "" {
			feedEnd = feedStart
		}

		apiKey := feedAPIKey
		if apiKey == "" {
			apiKey = cfg.NASA.APIKey
		}
		var store *cache.Store
		if cfg.NASA.CachePath != "" {
			store, err = cache.Open(cfg.NASA.CachePath)
			if err != nil {
				logger.Warn("feed cache unavailable", "err", err)
			}
		}

		client := nasa.NewClient(cfg.NASA.BaseURL, apiKey, store, logger)
		entries, err := client.Feed(context.Background(), feedStart, feedEnd)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "ID\tName\tDiameter (m)\tVelocity (km/s)\tMiss (km)\tHazardous\tApproach\n")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.1f\t%.0f\t%t\t%s\n",
				e.ID, e.Name, e.DiameterM, e.VelocityKmps, e.MissDistanceKm, e.Hazardous, e.ApproachDate)
		}
		tw.Flush()

		if !feedSimulate {
			return nil
		}

		writer, cleanup, err := newWriters(cfg, feedPrintOnly, feedPretty, "")
		if err != nil {
			return err
		}
		defer cleanup()
		eng := engine.New(cfg, nil, writer, logger)

		composition := units.Composition(feedComposition)
		for _, e := range entries {
			if !e.Hazardous {
				continue
			}
			params := e.Parameters(composition, feedAngle)
			result, _, err := eng.Run(context.Background(), params, &impact.ImpactLocation{Name: e.Name})
			if err != nil {
				logger.Warn("simulation failed", "object", e.Name, "err", err)
				continue
			}
			logger.Info("hazardous object simulated", "object", e.Name, "megatons", result.EnergyMegatons)
		}
		return nil
	},
}

func init() {
	feedCmd.Flags().StringVar(&feedStart, "start", "", "Start date (YYYY-MM-DD, default today)")
	feedCmd.Flags().StringVar(&feedEnd, "end", "", "End date (YYYY-MM-DD, default start)")
	feedCmd.Flags().StringVar(&feedAPIKey, "api-key", "", "NASA API key (default from config or DEMO_KEY)")
	feedCmd.Flags().StringVar(&feedComposition, "composition", "stone", "Assumed composition for simulated objects")
	feedCmd.Flags().Float64Var(&feedAngle, "angle", 45, "Assumed entry angle for simulated objects")
	feedCmd.Flags().BoolVar(&feedSimulate, "simulate-hazardous", false, "Simulate an impact for each potentially hazardous object")
	feedCmd.Flags().StringVar(&feedConfigPath, "config", "config/meteorsim.yaml", "Path to configuration YAML")
	feedCmd.Flags().StringVar(&feedSchemaPath, "schema", "schemas/meteorsim.cue", "Path to CUE schema file")
	feedCmd.Flags().BoolVar(&feedPrintOnly, "print-only", false, "Print results to STDOUT instead of configured sinks")
	feedCmd.Flags().BoolVar(&feedPretty, "pretty", false, "Colorized human-friendly STDOUT output")
}
