package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"esdc-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Engine runs the rule set over every stored project row. Violations are
// collected per row, never fail-fast; offending rows stay in the store and
// are only flagged in validation_results.
type Engine struct {
	DB    *gorm.DB
	Rules []Rule
}

// Report summarizes one validation run.
type Report struct {
	RunAt      time.Time                 `json:"run_at"`
	RowCount   int                       `json:"row_count"`
	Violations []models.ValidationResult `json:"violations"`
}

// Run checks every project_resources row against the rule set, replaces the
// stored results with this run's findings and returns them sorted by
// (report_year, wk_name, field_name, project_name, uncert_lvl).
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	rules := e.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	var rows []map[string]interface{}
	if err := e.DB.WithContext(ctx).Table("project_resources").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read project_resources: %w", err)
	}

	runAt := time.Now().UTC()
	var results []models.ValidationResult
	for _, row := range rows {
		for _, rule := range rules {
			msg := rule.Check(row)
			if msg == nil {
				continue
			}
			detail, _ := json.Marshal(map[string]interface{}{
				"message": *msg,
				"value":   strValue(row[rule.Column]),
			})
			results = append(results, models.ValidationResult{
				RunAt:       runAt,
				RuleID:      rule.ID,
				Severity:    rule.Severity,
				ColumnName:  rule.Column,
				ReportYear:  intValue(row["report_year"]),
				WkName:      strValue(row["wk_name"]),
				FieldName:   strValue(row["field_name"]),
				ProjectName: strValue(row["project_name"]),
				UncertLvl:   strValue(row["uncert_lvl"]),
				Details:     datatypes.JSON(detail),
			})
		}
	}

	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ValidationResult{}).Error; err != nil {
			return err
		}
		if len(results) == 0 {
			return nil
		}
		return tx.CreateInBatches(results, 500).Error
	})
	if err != nil {
		return nil, fmt.Errorf("store validation results: %w", err)
	}

	log.Info().Int("rows", len(rows)).Int("violations", len(results)).Msg("validation run complete")
	return &Report{RunAt: runAt, RowCount: len(rows), Violations: e.sorted(results)}, nil
}

// Latest returns the most recent run's stored results in report order.
func (e *Engine) Latest(ctx context.Context) ([]models.ValidationResult, error) {
	var results []models.ValidationResult
	err := e.DB.WithContext(ctx).
		Order("report_year, wk_name, field_name, project_name, uncert_lvl").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) sorted(results []models.ValidationResult) []models.ValidationResult {
	out := append([]models.ValidationResult(nil), results...)
	sortResults(out)
	return out
}
