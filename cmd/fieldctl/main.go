// fieldctl is the operator CLI: boundary checks, imports and harvest reports.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"fieldbook/app"
	"fieldbook/config"
	"fieldbook/database"
	"fieldbook/pkg/logger"
)

func main() {
	if err := rootCommand(config.Load).Execute(); err != nil {
		os.Exit(1)
	}
}

// rootCommand builds the command tree. loadConfig is resolved lazily so
// commands that never touch the store do not need one.
func rootCommand(loadConfig func() config.AppConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "fieldctl",
		Short:         "Field boundary and harvest ledger tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	var cfg *config.AppConfig
	getCfg := func() config.AppConfig {
		if cfg == nil {
			c := loadConfig()
			logger.Setup(c.LogLevel, c.LogFormat)
			cfg = &c
		}
		return *cfg
	}
	openApp := func() (*app.App, func(), error) {
		c := getCfg()
		db, err := database.Open(c)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return app.New(c, db, nil), closeFn, nil
	}

	root.AddCommand(
		areaCommand(getCfg),
		importCommand(getCfg, openApp),
		orphansCommand(openApp),
		exportCommand(openApp),
	)
	return root
}
