package main

import (
	"fmt"

	"esdc-backend/internal/validate"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the validation rule set against project resources",
	Long: `Checks every project_resources row against the rule set, stores the
results (replacing the previous run) and prints a summary per rule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return err
		}

		engine := &validate.Engine{DB: db, Rules: validate.DefaultRules()}
		rep, err := engine.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("checked %d rows, %d violations\n", rep.RowCount, len(rep.Violations))
		perRule := map[string]int{}
		for _, v := range rep.Violations {
			perRule[v.RuleID]++
		}
		for _, rule := range engine.Rules {
			if n := perRule[rule.ID]; n > 0 {
				fmt.Printf("  %s [%s] %s: %d\n", rule.ID, rule.Severity, rule.Column, n)
			}
		}
		return nil
	},
}
