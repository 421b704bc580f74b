package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"esdc-backend/internal/report"

	"github.com/spf13/cobra"
)

var (
	showLevel   int
	showWhere   string
	showSearch  string
	showYear    int
	showColumns string
	showOutput  string
)

var showCmd = &cobra.Command{
	Use:   "show <table>",
	Short: "Render a tiered report to stdout",
	Long: `Builds and runs one report against the store. Table is one of
project, field, working_area or national; --level selects how much detail
the projection carries (0 terse .. 3 full).`,
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

		f := report.Filter{Where: showWhere, Search: showSearch}
		if showYear > 0 {
			year := showYear
			f.Year = &year
		}
		var columns []string
		if showColumns != "" {
			for _, col := range strings.Split(showColumns, ",") {
				if col = strings.TrimSpace(col); col != "" {
					columns = append(columns, col)
				}
			}
		}

		svc := &report.Service{DB: db}
		res, err := svc.Run(cmd.Context(), kind, report.DetailLevel(showLevel), f, columns)
		if err != nil {
			return err
		}

		switch showOutput {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		case "csv":
			return writeCSV(res)
		default:
			return fmt.Errorf("unknown output format %q", showOutput)
		}
	},
}

func writeCSV(res *report.Result) error {
	w := csv.NewWriter(os.Stdout)
	w.Comma = ';'
	if err := w.Write(res.Columns); err != nil {
		return err
	}
	record := make([]string, len(res.Columns))
	for _, row := range res.Rows {
		for i, col := range res.Columns {
			v := row[col]
			if v == nil {
				record[i] = ""
			} else {
				record[i] = fmt.Sprint(v)
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func init() {
	showCmd.Flags().IntVar(&showLevel, "level", 0, "Detail level 0..3")
	showCmd.Flags().StringVar(&showWhere, "where", "", "Column for the substring filter")
	showCmd.Flags().StringVar(&showSearch, "search", "", "Case-insensitive substring to match")
	showCmd.Flags().IntVar(&showYear, "year", 0, "Restrict to one report year")
	showCmd.Flags().StringVar(&showColumns, "columns", "", "Comma-separated projection subset")
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "csv", "Output format: csv or json")
}
