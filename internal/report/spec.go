package report

import "fmt"

// TableKind is the logical report grain.
type TableKind string

const (
	KindProject     TableKind = "project"
	KindField       TableKind = "field"
	KindWorkingArea TableKind = "working_area"
	KindNational    TableKind = "national"
)

// ParseTableKind accepts both the short kind names and the upstream table
// names used by the CLI and the API.
func ParseTableKind(s string) (TableKind, error) {
	switch s {
	case "project", "project_resources":
		return KindProject, nil
	case "field", "field_resources":
		return KindField, nil
	case "working_area", "wa_resources":
		return KindWorkingArea, nil
	case "national", "nkri_resources":
		return KindNational, nil
	}
	return "", &QueryError{Msg: fmt.Sprintf("unknown table kind %q", s)}
}

// DetailLevel selects one of the four column/ordering presets per kind.
// 0 = resources only, 1 = +in-place, 2 = +cumulative production, 3 = all.
type DetailLevel int

const MaxDetailLevel DetailLevel = 3

// Column is one projected output column: an output name and the SQL
// expression that produces it. Dim columns define the grouping grain of
// aggregate kinds and are the only legal targets of a text filter.
type Column struct {
	Name string
	Expr string
	Dim  bool
}

func dim(name string) Column {
	return Column{Name: name, Expr: name, Dim: true}
}

func alias(name, expr string) Column {
	return Column{Name: name, Expr: expr}
}

// levelSpec is the fixed projection and ordering of one (kind, level) pair.
type levelSpec struct {
	cols  []Column
	order []string
	star  bool // SELECT * (project level 3)
}

type kindSpec struct {
	from   string
	agg    bool
	levels [4]levelSpec
}

// cumulative composes levels so that level N carries every column of level
// N-1, matching the "level N adds" wording of the report contract.
func cumulative(l0, l1add, l2add, l3add []Column, orders [4][]string) [4]levelSpec {
	var out [4]levelSpec
	cols := append([]Column(nil), l0...)
	out[0] = levelSpec{cols: append([]Column(nil), cols...), order: orders[0]}
	cols = append(cols, l1add...)
	out[1] = levelSpec{cols: append([]Column(nil), cols...), order: orders[1]}
	cols = append(cols, l2add...)
	out[2] = levelSpec{cols: append([]Column(nil), cols...), order: orders[2]}
	cols = append(cols, l3add...)
	out[3] = levelSpec{cols: append([]Column(nil), cols...), order: orders[3]}
	return out
}

// projectFullColumns is the full project_resources vocabulary at detail level
// 3 (SELECT *), including the migration-added columns. Used to validate
// filter and column-subset requests against the star projection.
var projectFullColumns = []string{
	"id", "report_year", "report_status",
	"wk_id", "wk_name", "field_id", "field_name",
	"field_lat", "field_long", "operator_name", "basin86",
	"project_id", "project_name",
	"project_class", "project_level", "uncert_lvl",
	"prj_ioip", "prj_igip",
	"rec_oil", "rec_con", "rec_ga", "rec_gn",
	"rec_oc_risked", "rec_an_risked",
	"res_oil", "res_con", "res_ga", "res_gn", "res_oc", "res_an",
	"cprd_sls_oc", "cprd_sls_an",
	"project_remarks",
	"created_at", "updated_at",
	"project_stage", "is_discovered", "record_uuid",
}

// reportSpecs is the whole report contract: table_kind × detail_level →
// projection, grain and sort order. These lists are fixed business logic;
// the builder only ever reads them.
var reportSpecs = map[TableKind]kindSpec{
	KindProject: {
		from: "project_resources",
		levels: func() [4]levelSpec {
			levels := cumulative(
				[]Column{
					dim("report_year"),
					dim("project_name"),
					dim("project_level"),
					dim("uncert_lvl"),
					alias("resources_oc", "rec_oc_risked"),
					alias("resources_an", "rec_an_risked"),
					alias("reserves_oc", "res_oc"),
					alias("reserves_an", "res_an"),
				},
				[]Column{
					dim("project_stage"),
					dim("project_class"),
					dim("wk_name"),
					dim("field_name"),
					alias("ioip", "prj_ioip"),
					alias("igip", "prj_igip"),
				},
				[]Column{
					dim("cprd_sls_oc"),
					dim("cprd_sls_an"),
				},
				nil,
				[4][]string{
					{"report_year", "project_level", "project_name", "uncert_lvl"},
					projectFullOrder,
					projectFullOrder,
					projectFullOrder,
				},
			)
			levels[3].star = true
			levels[3].cols = nil
			return levels
		}(),
	},
	KindField: {
		from: "project_resources",
		agg:  true,
		levels: cumulative(
			[]Column{
				dim("report_year"),
				dim("field_name"),
				dim("project_class"),
				dim("uncert_lvl"),
				alias("resources_oc", "SUM(rec_oc_risked)"),
				alias("resources_an", "SUM(rec_an_risked)"),
				alias("reserves_oc", "SUM(res_oc)"),
				alias("reserves_an", "SUM(res_an)"),
			},
			[]Column{
				dim("project_stage"),
				dim("project_level"),
				dim("wk_name"),
				dim("is_discovered"),
				alias("ioip", "SUM(prj_ioip)"),
				alias("igip", "SUM(prj_igip)"),
			},
			[]Column{
				alias("project_count", "COUNT(DISTINCT project_id)"),
				alias("cprd_sls_oc", "SUM(cprd_sls_oc)"),
				alias("cprd_sls_an", "SUM(cprd_sls_an)"),
			},
			[]Column{
				dim("field_id"),
				dim("operator_name"),
				dim("basin86"),
				dim("field_lat"),
				dim("field_long"),
				alias("rec_oil", "SUM(rec_oil)"),
				alias("rec_con", "SUM(rec_con)"),
				alias("rec_ga", "SUM(rec_ga)"),
				alias("rec_gn", "SUM(rec_gn)"),
				alias("res_oil", "SUM(res_oil)"),
				alias("res_con", "SUM(res_con)"),
				alias("res_ga", "SUM(res_ga)"),
				alias("res_gn", "SUM(res_gn)"),
			},
			[4][]string{
				{"report_year", "field_name", "project_class", "uncert_lvl"},
				fieldFullOrder,
				fieldFullOrder,
				fieldFullOrder,
			},
		),
	},
	KindWorkingArea: {
		from: "project_resources",
		agg:  true,
		levels: cumulative(
			[]Column{
				dim("report_year"),
				dim("wk_name"),
				dim("project_stage"),
				dim("project_class"),
				dim("uncert_lvl"),
				alias("resources_oc", "SUM(rec_oc_risked)"),
				alias("resources_an", "SUM(rec_an_risked)"),
				alias("reserves_oc", "SUM(res_oc)"),
				alias("reserves_an", "SUM(res_an)"),
			},
			[]Column{
				dim("project_level"),
				alias("ioip", "SUM(prj_ioip)"),
				alias("igip", "SUM(prj_igip)"),
			},
			[]Column{
				alias("project_count", "COUNT(DISTINCT project_id)"),
				alias("cprd_sls_oc", "SUM(cprd_sls_oc)"),
				alias("cprd_sls_an", "SUM(cprd_sls_an)"),
			},
			[]Column{
				dim("wk_id"),
				alias("rec_oil", "SUM(rec_oil)"),
				alias("rec_con", "SUM(rec_con)"),
				alias("rec_ga", "SUM(rec_ga)"),
				alias("rec_gn", "SUM(rec_gn)"),
				alias("res_oil", "SUM(res_oil)"),
				alias("res_con", "SUM(res_con)"),
				alias("res_ga", "SUM(res_ga)"),
				alias("res_gn", "SUM(res_gn)"),
			},
			[4][]string{
				{"report_year", "wk_name", "project_stage", "project_class", "uncert_lvl"},
				waFullOrder,
				waFullOrder,
				waFullOrder,
			},
		),
	},
	KindNational: {
		from: "project_resources",
		agg:  true,
		levels: cumulative(
			[]Column{
				dim("report_year"),
				dim("project_stage"),
				dim("project_class"),
				dim("uncert_lvl"),
				alias("resources_oc", "SUM(rec_oc_risked)"),
				alias("resources_an", "SUM(rec_an_risked)"),
				alias("reserves_oc", "SUM(res_oc)"),
				alias("reserves_an", "SUM(res_an)"),
			},
			[]Column{
				dim("wk_name"),
				alias("ioip", "SUM(prj_ioip)"),
				alias("igip", "SUM(prj_igip)"),
			},
			[]Column{
				alias("project_count", "COUNT(DISTINCT project_id)"),
				alias("cprd_sls_oc", "SUM(cprd_sls_oc)"),
				alias("cprd_sls_an", "SUM(cprd_sls_an)"),
			},
			[]Column{
				alias("rec_oil", "SUM(rec_oil)"),
				alias("rec_con", "SUM(rec_con)"),
				alias("rec_ga", "SUM(rec_ga)"),
				alias("rec_gn", "SUM(rec_gn)"),
				alias("res_oil", "SUM(res_oil)"),
				alias("res_con", "SUM(res_con)"),
				alias("res_ga", "SUM(res_ga)"),
				alias("res_gn", "SUM(res_gn)"),
			},
			[4][]string{
				nationalOrder,
				nationalOrder,
				nationalOrder,
				nationalOrder,
			},
		),
	},
}

// Full sort keys per kind (ascending); lower levels use the key restricted to
// their own columns, declared above.
var (
	projectFullOrder = []string{"report_year", "project_stage", "project_class", "project_level", "wk_name", "field_name", "project_name", "uncert_lvl"}
	fieldFullOrder   = []string{"report_year", "wk_name", "field_name", "project_stage", "project_class", "project_level", "uncert_lvl"}
	waFullOrder      = []string{"report_year", "wk_name", "project_stage", "project_class", "project_level", "uncert_lvl"}
	nationalOrder    = []string{"report_year", "project_stage", "project_class", "uncert_lvl"}
)
