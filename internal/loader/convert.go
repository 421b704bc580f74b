package loader

import (
	"fmt"
	"strconv"
	"strings"

	"esdc-backend/internal/models"
)

// resourceColumns is the accepted input vocabulary for project_resources:
// the fixed schema plus the migration-owned additions (accepted, ignored).
var resourceColumns = map[string]bool{
	"report_year": true, "report_status": true,
	"wk_id": true, "wk_name": true,
	"field_id": true, "field_name": true,
	"field_lat": true, "field_long": true,
	"operator_name": true, "basin86": true,
	"project_id": true, "project_name": true,
	"project_class": true, "project_level": true, "uncert_lvl": true,
	"prj_ioip": true, "prj_igip": true,
	"rec_oil": true, "rec_con": true, "rec_ga": true, "rec_gn": true,
	"rec_oc_risked": true, "rec_an_risked": true,
	"res_oil": true, "res_con": true, "res_ga": true, "res_gn": true,
	"res_oc": true, "res_an": true,
	"cprd_sls_oc": true, "cprd_sls_an": true,
	"project_remarks": true,
	// migration-owned
	"project_stage": true, "is_discovered": true, "record_uuid": true,
}

var timeseriesColumns = map[string]bool{
	"report_year": true,
	"wk_id":       true, "wk_name": true,
	"field_id": true, "field_name": true,
	"project_id": true, "project_name": true,
	"prod_year":   true,
	"prd_sls_oil": true, "prd_sls_con": true, "prd_sls_ga": true, "prd_sls_gn": true,
	"record_uuid": true,
}

func resourceFromRow(row map[string]interface{}) (models.ProjectResource, error) {
	var rec models.ProjectResource
	var err error

	if rec.ReportYear, err = intField(row, "report_year"); err != nil {
		return rec, err
	}
	rec.ReportStatus = strField(row, "report_status")
	rec.WkID = strField(row, "wk_id")
	rec.WkName = strField(row, "wk_name")
	rec.FieldID = strField(row, "field_id")
	rec.FieldName = strField(row, "field_name")
	rec.OperatorName = strField(row, "operator_name")
	rec.Basin86 = strField(row, "basin86")
	rec.ProjectID = strField(row, "project_id")
	rec.ProjectName = strField(row, "project_name")
	rec.ProjectClass = strField(row, "project_class")
	rec.ProjectLevel = strField(row, "project_level")
	rec.UncertLvl = strField(row, "uncert_lvl")
	rec.ProjectRemarks = strField(row, "project_remarks")

	floats := []struct {
		col string
		dst *float64
	}{
		{"field_lat", &rec.FieldLat}, {"field_long", &rec.FieldLong},
		{"prj_ioip", &rec.PrjIoip}, {"prj_igip", &rec.PrjIgip},
		{"rec_oil", &rec.RecOil}, {"rec_con", &rec.RecCon},
		{"rec_ga", &rec.RecGa}, {"rec_gn", &rec.RecGn},
		{"rec_oc_risked", &rec.RecOcRisked}, {"rec_an_risked", &rec.RecAnRisked},
		{"res_oil", &rec.ResOil}, {"res_con", &rec.ResCon},
		{"res_ga", &rec.ResGa}, {"res_gn", &rec.ResGn},
		{"res_oc", &rec.ResOc}, {"res_an", &rec.ResAn},
		{"cprd_sls_oc", &rec.CprdSlsOc}, {"cprd_sls_an", &rec.CprdSlsAn},
	}
	for _, f := range floats {
		if *f.dst, err = floatField(row, f.col); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func timeseriesFromRow(row map[string]interface{}) (models.ProjectTimeseries, error) {
	var rec models.ProjectTimeseries
	var err error

	if rec.ReportYear, err = intField(row, "report_year"); err != nil {
		return rec, err
	}
	if rec.ProdYear, err = intField(row, "prod_year"); err != nil {
		return rec, err
	}
	rec.WkID = strField(row, "wk_id")
	rec.WkName = strField(row, "wk_name")
	rec.FieldID = strField(row, "field_id")
	rec.FieldName = strField(row, "field_name")
	rec.ProjectID = strField(row, "project_id")
	rec.ProjectName = strField(row, "project_name")

	floats := []struct {
		col string
		dst *float64
	}{
		{"prd_sls_oil", &rec.PrdSlsOil}, {"prd_sls_con", &rec.PrdSlsCon},
		{"prd_sls_ga", &rec.PrdSlsGa}, {"prd_sls_gn", &rec.PrdSlsGn},
	}
	for _, f := range floats {
		if *f.dst, err = floatField(row, f.col); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func strField(row map[string]interface{}, col string) string {
	v, ok := row[col]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func intField(row map[string]interface{}, col string) (int, error) {
	v, ok := row[col]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("column %s: %q is not an integer", col, s)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("column %s: unsupported value %v", col, v)
	}
}

func floatField(row map[string]interface{}, col string) (float64, error) {
	v, ok := row[col]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %q is not a number", col, s)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("column %s: unsupported value %v", col, v)
	}
}
