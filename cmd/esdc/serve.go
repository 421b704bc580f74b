package main

import (
	"esdc-backend/internal/app"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		log.Info().Str("port", cfg.Port).Msg("server starting")
		return a.Fiber.Listen(":" + cfg.Port)
	},
}
