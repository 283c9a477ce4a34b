package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fieldbook/config"
	"fieldbook/pkg/boundary"
	"fieldbook/pkg/capture"
)

func areaCommand(getCfg func() config.AppConfig) *cobra.Command {
	var (
		file, sheet string
		threshold   float64
	)
	cmd := &cobra.Command{
		Use:   "area",
		Short: "Replay surveyed points through the capture rules and print area and centroid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if threshold <= 0 {
				threshold = getCfg().CloseThresholdM
			}
			pts, err := boundary.LoadFile(file, sheet)
			if err != nil {
				return err
			}
			res, err := capture.Replay(pts, capture.WithThreshold(threshold))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "points:   %d (read %d)\n", len(res.Ring)-1, len(pts))
			fmt.Fprintf(out, "area_ha:  %.4f\n", res.AreaHa)
			if res.Centroid != nil {
				fmt.Fprintf(out, "centroid: %.6f, %.6f\n", res.Centroid.Lat, res.Centroid.Lng)
			} else {
				fmt.Fprintln(out, "centroid: degenerate")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV or XLSX file with lat/lng columns")
	cmd.Flags().StringVar(&sheet, "sheet", "", "XLSX sheet name (default first sheet)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "closure distance in metres (default CLOSE_THRESHOLD_M)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
