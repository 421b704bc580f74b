package main

import (
	"fmt"

	"esdc-backend/internal/describe"
	"esdc-backend/internal/report"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <table>",
	Short: "Print the narrative paragraphs for a report",
	Long: `Renders the standard Indonesian status paragraphs for the national
or field grain, newest report year first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := report.ParseTableKind(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return err
		}

		svc := &describe.Service{Reports: &report.Service{DB: db}}
		paragraphs, err := svc.Describe(cmd.Context(), kind)
		if err != nil {
			return err
		}
		for _, p := range paragraphs {
			fmt.Println(p)
			fmt.Println()
		}
		return nil
	},
}
