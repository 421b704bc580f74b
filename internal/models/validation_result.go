package models

import (
	"time"

	"gorm.io/datatypes"
)

// ValidationResult is one rule violation for one stored row, written by the
// validation engine. Rows that violate rules stay in project_resources; this
// table only flags them.
type ValidationResult struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RunAt      time.Time `gorm:"column:run_at;not null;index" json:"run_at"`
	RuleID     string    `gorm:"column:rule_id;not null;index" json:"rule_id"`
	Severity   string    `gorm:"column:severity;not null" json:"severity"`
	ColumnName string    `gorm:"column:column_name" json:"column_name"`

	ReportYear  int    `gorm:"column:report_year" json:"report_year"`
	WkName      string `gorm:"column:wk_name" json:"wk_name"`
	FieldName   string `gorm:"column:field_name" json:"field_name"`
	ProjectName string `gorm:"column:project_name" json:"project_name"`
	UncertLvl   string `gorm:"column:uncert_lvl" json:"uncert_lvl"`

	Details datatypes.JSON `gorm:"column:details;type:json" json:"details"`
}

func (ValidationResult) TableName() string {
	return "validation_results"
}
