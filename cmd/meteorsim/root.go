package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meteorsim",
	Short: "Asteroid impact simulation toolkit",
	Long:  "Meteorsim computes asteroid impact scenarios, serves an interactive admin UI, and replays recorded results.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(replayCmd)
}
