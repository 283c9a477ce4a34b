package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fieldbook/app"
	"fieldbook/pkg/report"
)

func exportCommand(openApp func() (*app.App, func(), error)) *cobra.Command {
	var (
		fieldID uint
		out     string
	)
	cmd := &cobra.Command{
		Use:   "export-harvests",
		Short: "Write a field's yield history to an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, closeFn, err := openApp()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := cmd.Context()
			f, err := a.Fields.Get(ctx, fieldID)
			if err != nil {
				return err
			}
			yields, err := a.Harvests.Yields(ctx, fieldID)
			if err != nil {
				return err
			}
			orphans, err := a.Harvests.Orphans(ctx, fieldID)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("harvests-%d.xlsx", fieldID)
			}
			w, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := report.WriteHarvests(w, *f, yields, orphans); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d yields to %s\n", len(yields), out)
			return nil
		},
	}
	cmd.Flags().UintVar(&fieldID, "field", 0, "field id")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default harvests-<id>.xlsx)")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}
