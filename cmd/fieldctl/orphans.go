package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fieldbook/app"
)

func orphansCommand(openApp func() (*app.App, func(), error)) *cobra.Command {
	var fieldID uint
	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List yield records with no harvested status event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, closeFn, err := openApp()
			if err != nil {
				return err
			}
			defer closeFn()

			list, err := a.Harvests.Orphans(cmd.Context(), fieldID)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no orphan yields")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "YIELD\tFIELD\tCROP\tAMOUNT\tRECORDED")
			for _, y := range list {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%.2f\t%s\n", y.YieldID, y.FieldID, y.Crop, y.Amount, y.CreatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().UintVar(&fieldID, "field", 0, "limit to one field (default all)")
	return cmd
}
