package models

import (
	"time"
)

// ProjectResource is one reported project entry for a reporting year and
// uncertainty level, as published by the ESDC API (project-resources table).
//
// Volumetric column naming follows the upstream vocabulary:
// oil/con/ga/gn are the commodities (oil, condensate, associated gas,
// non-associated gas); oc/an are the oil+condensate and associated+
// non-associated rollups; prj_ioip/prj_igip are project in-place volumes;
// cprd_sls_* are cumulative sales production.
//
// project_stage, is_discovered and record_uuid are intentionally absent:
// they are added and maintained by the migration engine after each load.
type ProjectResource struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ReportYear   int    `gorm:"column:report_year;not null;index;uniqueIndex:ux_project_resources_natural,priority:4" json:"report_year"`
	ReportStatus string `gorm:"column:report_status" json:"report_status"`
	WkID         string `gorm:"column:wk_id;not null;uniqueIndex:ux_project_resources_natural,priority:1" json:"wk_id"`
	WkName       string `gorm:"column:wk_name;index" json:"wk_name"`
	FieldID      string `gorm:"column:field_id;not null;uniqueIndex:ux_project_resources_natural,priority:2" json:"field_id"`
	FieldName    string `gorm:"column:field_name;index" json:"field_name"`
	FieldLat     float64 `gorm:"column:field_lat" json:"field_lat"`
	FieldLong    float64 `gorm:"column:field_long" json:"field_long"`
	OperatorName string  `gorm:"column:operator_name" json:"operator_name"`
	Basin86      string  `gorm:"column:basin86" json:"basin86"`
	ProjectID    string  `gorm:"column:project_id;not null;uniqueIndex:ux_project_resources_natural,priority:3" json:"project_id"`
	ProjectName  string  `gorm:"column:project_name;index" json:"project_name"`

	ProjectClass string `gorm:"column:project_class" json:"project_class"`
	ProjectLevel string `gorm:"column:project_level" json:"project_level"`
	UncertLvl    string `gorm:"column:uncert_lvl;not null;uniqueIndex:ux_project_resources_natural,priority:5" json:"uncert_lvl"`

	PrjIoip float64 `gorm:"column:prj_ioip" json:"prj_ioip"`
	PrjIgip float64 `gorm:"column:prj_igip" json:"prj_igip"`

	RecOil float64 `gorm:"column:rec_oil" json:"rec_oil"`
	RecCon float64 `gorm:"column:rec_con" json:"rec_con"`
	RecGa  float64 `gorm:"column:rec_ga" json:"rec_ga"`
	RecGn  float64 `gorm:"column:rec_gn" json:"rec_gn"`

	RecOcRisked float64 `gorm:"column:rec_oc_risked" json:"rec_oc_risked"`
	RecAnRisked float64 `gorm:"column:rec_an_risked" json:"rec_an_risked"`

	ResOil float64 `gorm:"column:res_oil" json:"res_oil"`
	ResCon float64 `gorm:"column:res_con" json:"res_con"`
	ResGa  float64 `gorm:"column:res_ga" json:"res_ga"`
	ResGn  float64 `gorm:"column:res_gn" json:"res_gn"`
	ResOc  float64 `gorm:"column:res_oc" json:"res_oc"`
	ResAn  float64 `gorm:"column:res_an" json:"res_an"`

	CprdSlsOc float64 `gorm:"column:cprd_sls_oc" json:"cprd_sls_oc"`
	CprdSlsAn float64 `gorm:"column:cprd_sls_an" json:"cprd_sls_an"`

	ProjectRemarks string `gorm:"column:project_remarks" json:"project_remarks"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ProjectResource) TableName() string {
	return "project_resources"
}
