package main

import (
	"fmt"

	"esdc-backend/internal/fetch"
	"esdc-backend/internal/loader"

	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload [table...]",
	Short: "Load payload files into the store",
	Long: `Reads <data-dir>/<table>.<filetype> for each named table, replaces
the table contents and brings the schema up to date. With no arguments all
known tables are reloaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		svc := &loader.Service{DB: db}

		tables := args
		if len(tables) == 0 {
			tables = fetch.Tables()
		}
		for _, table := range tables {
			count, err := svc.LoadFile(cmd.Context(), cfg.DataDir, table, filetype)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d rows\n", table, count)
		}
		return nil
	},
}
