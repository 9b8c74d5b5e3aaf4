package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"meteorsim/internal/engine"
)

var (
	replayInput      string
	replaySpeed      float64
	replayPrintOnly  bool
	replayPretty     bool
	replayTUI        bool
	replayConfigPath string
	replaySchemaPath string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded result log file",
	Long:  "replay feeds recorded results from a JSONL log back into the configured sinks or STDOUT, preserving their relative timing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		cfg, err := loadConfig(replayConfigPath, replaySchemaPath)
		if err != nil {
			return err
		}
		if replayTUI {
			tw := engine.NewTUIWriter()
			defer tw.Close()
			return engine.ReplayLogFile(replayInput, tw, replaySpeed)
		}
		writer, cleanup, err := newWriters(cfg, replayPrintOnly, replayPretty, "")
		if err != nil {
			return err
		}
		defer cleanup()
		return engine.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to result log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print results to STDOUT instead of configured sinks")
	replayCmd.Flags().BoolVar(&replayPretty, "pretty", false, "Colorized human-friendly STDOUT output")
	replayCmd.Flags().BoolVar(&replayTUI, "tui", false, "Render results in an interactive terminal UI")
	replayCmd.Flags().StringVar(&replayConfigPath, "config", "config/meteorsim.yaml", "Path to configuration YAML")
	replayCmd.Flags().StringVar(&replaySchemaPath, "schema", "schemas/meteorsim.cue", "Path to CUE schema file")
	replayCmd.MarkFlagRequired("input")
}
