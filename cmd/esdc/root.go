package main

import (
	"os"

	"esdc-backend/internal/config"
	"esdc-backend/internal/database"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	dataDir  string
	filetype string
)

var rootCmd = &cobra.Command{
	Use:   "esdc",
	Short: "Oil and gas resource reporting toolkit",
	Long: `esdc maintains a local store of Indonesian upstream resource and
reserve data: it downloads the yearly report payloads, loads them into the
store, runs the validation rule set and renders tiered reports.

Configuration comes from the environment (or a .env file): DATABASE_DSN,
DATA_DIR, ESDC_URL, ESDC_USER, ESDC_PASS.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for payload files (default: DATA_DIR env or \".\")")
	rootCmd.PersistentFlags().StringVar(&filetype, "filetype", "csv", "Payload file type: csv, json or zip")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves config and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// openStore opens the database and creates the base tables.
func openStore(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
