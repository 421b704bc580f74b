package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableKind(t *testing.T) {
	cases := map[string]TableKind{
		"project":           KindProject,
		"project_resources": KindProject,
		"field":             KindField,
		"field_resources":   KindField,
		"working_area":      KindWorkingArea,
		"wa_resources":      KindWorkingArea,
		"national":          KindNational,
		"nkri_resources":    KindNational,
	}
	for in, want := range cases {
		got, err := ParseTableKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTableKind("wells")
	var qerr *QueryError
	require.ErrorAs(t, err, &qerr)
}

func TestBuild_ProjectTerse(t *testing.T) {
	q, err := Build(KindProject, 0, Filter{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"report_year", "project_name", "project_level", "uncert_lvl",
		"resources_oc", "resources_an", "reserves_oc", "reserves_an",
	}, q.Columns)
	assert.Contains(t, q.SQL, "rec_oc_risked AS resources_oc")
	assert.Contains(t, q.SQL, "res_an AS reserves_an")
	assert.Contains(t, q.SQL, "FROM project_resources")
	assert.Contains(t, q.SQL, "ORDER BY report_year, project_level, project_name, uncert_lvl")
	assert.NotContains(t, q.SQL, "GROUP BY")
	assert.Empty(t, q.Args)
}

func TestBuild_LevelsAreCumulative(t *testing.T) {
	q0, err := Build(KindProject, 0, Filter{}, nil)
	require.NoError(t, err)
	q1, err := Build(KindProject, 1, Filter{}, nil)
	require.NoError(t, err)
	q2, err := Build(KindProject, 2, Filter{}, nil)
	require.NoError(t, err)

	assert.Equal(t, q0.Columns, q1.Columns[:len(q0.Columns)])
	assert.Equal(t, q1.Columns, q2.Columns[:len(q1.Columns)])
	assert.Contains(t, q1.Columns, "ioip")
	assert.Contains(t, q2.Columns, "cprd_sls_oc")
}

func TestBuild_ProjectFullIsStar(t *testing.T) {
	q, err := Build(KindProject, 3, Filter{}, nil)
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "SELECT * FROM project_resources")
	assert.Empty(t, q.Columns)
}

func TestBuild_AggregateGroupsByDims(t *testing.T) {
	q, err := Build(KindNational, 0, Filter{}, nil)
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "SUM(rec_oc_risked) AS resources_oc")
	assert.Contains(t, q.SQL, "GROUP BY report_year, project_stage, project_class, uncert_lvl")
	assert.Contains(t, q.SQL, "ORDER BY report_year, project_stage, project_class, uncert_lvl")
}

func TestBuild_FieldFullIncludesCommodities(t *testing.T) {
	q, err := Build(KindField, 3, Filter{}, nil)
	require.NoError(t, err)
	assert.Contains(t, q.Columns, "project_count")
	assert.Contains(t, q.Columns, "rec_oil")
	assert.Contains(t, q.SQL, "COUNT(DISTINCT project_id) AS project_count")
	assert.Contains(t, q.SQL, "SUM(res_gn) AS res_gn")
}

func TestBuild_TextFilter(t *testing.T) {
	q, err := Build(KindProject, 0, Filter{Where: "project_name", Search: "Minas"}, nil)
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "WHERE LOWER(project_name) LIKE ?")
	assert.Equal(t, []interface{}{"%minas%"}, q.Args)
}

func TestBuild_EmptySearchMatchesEverything(t *testing.T) {
	q, err := Build(KindProject, 0, Filter{Where: "project_name"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"%%"}, q.Args)
}

func TestBuild_NoWhereNoPredicate(t *testing.T) {
	q, err := Build(KindProject, 0, Filter{Search: "ignored"}, nil)
	require.NoError(t, err)
	assert.NotContains(t, q.SQL, "WHERE")
}

func TestBuild_YearFilter(t *testing.T) {
	year := 2023
	q, err := Build(KindNational, 0, Filter{Year: &year}, nil)
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "WHERE report_year = ?")
	assert.Equal(t, []interface{}{2023}, q.Args)
}

func TestBuild_CombinedPredicates(t *testing.T) {
	year := 2022
	q, err := Build(KindWorkingArea, 1, Filter{Where: "wk_name", Search: "Rokan", Year: &year}, nil)
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "LOWER(wk_name) LIKE ? AND report_year = ?")
	assert.Equal(t, []interface{}{"%rokan%", 2022}, q.Args)
}

func TestBuild_ColumnSubset(t *testing.T) {
	q, err := Build(KindProject, 0, Filter{}, []string{"project_name", "reserves_oc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"project_name", "reserves_oc"}, q.Columns)
	assert.Contains(t, q.SQL, "SELECT project_name, res_oc AS reserves_oc FROM")
}

func TestBuild_StarSubset(t *testing.T) {
	q, err := Build(KindProject, 3, Filter{}, []string{"record_uuid", "project_stage"})
	require.NoError(t, err)
	assert.Equal(t, []string{"record_uuid", "project_stage"}, q.Columns)
	assert.Contains(t, q.SQL, "SELECT record_uuid, project_stage FROM")
}

func TestBuild_Errors(t *testing.T) {
	var qerr *QueryError

	_, err := Build("wells", 0, Filter{}, nil)
	require.ErrorAs(t, err, &qerr)

	_, err = Build(KindProject, 4, Filter{}, nil)
	require.ErrorAs(t, err, &qerr)

	_, err = Build(KindProject, -1, Filter{}, nil)
	require.ErrorAs(t, err, &qerr)

	// project_stage only appears from level 1 up.
	_, err = Build(KindProject, 0, Filter{Where: "project_stage", Search: "x"}, nil)
	require.ErrorAs(t, err, &qerr)

	// Aggregated measures cannot be filtered.
	_, err = Build(KindNational, 0, Filter{Where: "resources_oc", Search: "1"}, nil)
	require.ErrorAs(t, err, &qerr)

	// Unknown projection column.
	_, err = Build(KindField, 0, Filter{}, []string{"nope"})
	require.ErrorAs(t, err, &qerr)

	// Unknown column against the star projection.
	_, err = Build(KindProject, 3, Filter{}, []string{"nope"})
	require.ErrorAs(t, err, &qerr)
}
