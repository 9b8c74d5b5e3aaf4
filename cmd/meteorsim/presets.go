package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var presetsFile string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available impact scenario presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadPresets(presetsFile)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Name\tDiameter (m)\tVelocity (km/s)\tAngle\tComposition\tDescription\n")
		for _, p := range catalog.All() {
			fmt.Fprintf(tw, "%s\t%.0f\t%.1f\t%.0f\t%s\t%s\n",
				p.Name, p.Params.DiameterM, p.Params.VelocityKmps, p.Params.AngleDeg, p.Params.Composition, p.Description)
		}
		return tw.Flush()
	},
}

func init() {
	presetsCmd.Flags().StringVar(&presetsFile, "presets-file", "", "Path to additional presets YAML")
}
