package models

import (
	"time"
)

// ProjectTimeseries is one yearly production/forecast point for a project
// (project-timeseries table). Loaded in replace mode only; the upstream API
// republishes the full series on every report.
type ProjectTimeseries struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ReportYear  int    `gorm:"column:report_year;not null;index" json:"report_year"`
	WkID        string `gorm:"column:wk_id;not null" json:"wk_id"`
	WkName      string `gorm:"column:wk_name" json:"wk_name"`
	FieldID     string `gorm:"column:field_id;not null" json:"field_id"`
	FieldName   string `gorm:"column:field_name" json:"field_name"`
	ProjectID   string `gorm:"column:project_id;not null;index" json:"project_id"`
	ProjectName string `gorm:"column:project_name" json:"project_name"`
	ProdYear    int    `gorm:"column:prod_year;not null" json:"prod_year"`

	PrdSlsOil float64 `gorm:"column:prd_sls_oil" json:"prd_sls_oil"`
	PrdSlsCon float64 `gorm:"column:prd_sls_con" json:"prd_sls_con"`
	PrdSlsGa  float64 `gorm:"column:prd_sls_ga" json:"prd_sls_ga"`
	PrdSlsGn  float64 `gorm:"column:prd_sls_gn" json:"prd_sls_gn"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ProjectTimeseries) TableName() string {
	return "project_timeseries"
}
