package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fieldbook/app"
	"fieldbook/config"
	"fieldbook/entities"
	"fieldbook/pkg/boundary"
	"fieldbook/pkg/capture"
	fieldsvc "fieldbook/pkg/field/service"
)

func importCommand(getCfg func() config.AppConfig, openApp func() (*app.App, func(), error)) *cobra.Command {
	var file, sheet, name, soil, notes string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create a field from a surveyed boundary file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pts, err := boundary.LoadFile(file, sheet)
			if err != nil {
				return err
			}
			res, err := capture.Replay(pts, capture.WithThreshold(getCfg().CloseThresholdM))
			if err != nil {
				return err
			}
			a, closeFn, err := openApp()
			if err != nil {
				return err
			}
			defer closeFn()

			f, err := a.Fields.CreateFromRing(cmd.Context(), fieldsvc.Draft{
				Name:  name,
				Soil:  entities.SoilClass(soil),
				Notes: notes,
				Ring:  res.Ring,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created field %d %q: %s ha\n", f.FieldID, f.Name, f.AreaHa.StringFixed(4))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV or XLSX file with lat/lng columns")
	cmd.Flags().StringVar(&sheet, "sheet", "", "XLSX sheet name")
	cmd.Flags().StringVar(&name, "name", "", "field name")
	cmd.Flags().StringVar(&soil, "soil", string(entities.SoilUnknown), "soil class")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
