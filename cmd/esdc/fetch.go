package main

import (
	"fmt"
	"os"
	"path/filepath"

	"esdc-backend/internal/fetch"

	"github.com/spf13/cobra"
)

var fetchYear int

var fetchCmd = &cobra.Command{
	Use:   "fetch [table...]",
	Short: "Download report payloads into the data directory",
	Long: `Downloads one or more tables from the upstream API and writes each
to <data-dir>/<table>.<filetype>. With no arguments all known tables are
fetched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := &fetch.Client{
			BaseURL:  cfg.EsdcBaseURL,
			Username: cfg.EsdcUser,
			Password: cfg.EsdcPass,
		}

		tables := args
		if len(tables) == 0 {
			tables = fetch.Tables()
		}
		for _, table := range tables {
			data, err := client.Fetch(cmd.Context(), table, filetype, fetchYear)
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.DataDir, table+"."+filetype)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("%s: %d bytes\n", path, len(data))
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().IntVar(&fetchYear, "year", 0, "Restrict the download to one report year (0 = all years)")
}
