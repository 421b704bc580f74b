package loader

import (
	"context"
	"testing"

	"esdc-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLoaderTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProjectResource{}, &models.ProjectTimeseries{}))
	return &Service{DB: db}
}

func resourceRow(projectID string, year int, resOc float64) map[string]interface{} {
	return map[string]interface{}{
		"report_year":   year,
		"wk_id":         "WK-1",
		"wk_name":       "Rokan",
		"field_id":      "F-1",
		"field_name":    "Minas",
		"project_id":    projectID,
		"project_name":  "Project " + projectID,
		"project_class": "1. Reserves",
		"project_level": "E1",
		"uncert_lvl":    "2. Middle Value",
		"res_oc":        resOc,
	}
}

func recordUUID(t *testing.T, db *gorm.DB, projectID string) string {
	t.Helper()
	var id string
	require.NoError(t, db.Raw(
		"SELECT record_uuid FROM project_resources WHERE project_id = ?", projectID,
	).Scan(&id).Error)
	return id
}

func TestLoad_ReplaceAppliesMigrations(t *testing.T) {
	svc := setupLoaderTest(t)
	n, err := svc.Load(context.Background(), "project_resources",
		[]map[string]interface{}{resourceRow("P-1", 2023, 5)}, ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var stage string
	require.NoError(t, svc.DB.Raw(
		"SELECT project_stage FROM project_resources WHERE project_id = 'P-1'",
	).Scan(&stage).Error)
	assert.Equal(t, "1. Exploitation", stage)
	assert.NotEmpty(t, recordUUID(t, svc.DB, "P-1"))
}

func TestLoad_ReplaceDropsOldRows(t *testing.T) {
	svc := setupLoaderTest(t)
	_, err := svc.Load(context.Background(), "project_resources",
		[]map[string]interface{}{resourceRow("P-1", 2023, 5), resourceRow("P-2", 2023, 6)}, ModeReplace)
	require.NoError(t, err)

	_, err = svc.Load(context.Background(), "project_resources",
		[]map[string]interface{}{resourceRow("P-3", 2023, 7)}, ModeReplace)
	require.NoError(t, err)

	var count int64
	require.NoError(t, svc.DB.Table("project_resources").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoad_UpsertKeepsRecordUUID(t *testing.T) {
	svc := setupLoaderTest(t)
	_, err := svc.Load(context.Background(), "project_resources",
		[]map[string]interface{}{resourceRow("P-1", 2023, 5)}, ModeUpsert)
	require.NoError(t, err)
	before := recordUUID(t, svc.DB, "P-1")
	require.NotEmpty(t, before)

	// Same natural key, new value: the row is updated in place.
	_, err = svc.Load(context.Background(), "project_resources",
		[]map[string]interface{}{resourceRow("P-1", 2023, 9)}, ModeUpsert)
	require.NoError(t, err)

	var count int64
	require.NoError(t, svc.DB.Table("project_resources").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var resOc float64
	require.NoError(t, svc.DB.Raw(
		"SELECT res_oc FROM project_resources WHERE project_id = 'P-1'",
	).Scan(&resOc).Error)
	assert.EqualValues(t, 9, resOc)
	assert.Equal(t, before, recordUUID(t, svc.DB, "P-1"))
}

func TestLoad_UpsertDistinctUncertaintyRows(t *testing.T) {
	svc := setupLoaderTest(t)
	low := resourceRow("P-1", 2023, 1)
	low["uncert_lvl"] = "1. Low Value"
	mid := resourceRow("P-1", 2023, 2)

	_, err := svc.Load(context.Background(), "project_resources",
		[]map[string]interface{}{low, mid}, ModeUpsert)
	require.NoError(t, err)

	var count int64
	require.NoError(t, svc.DB.Table("project_resources").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestLoad_SchemaMismatch(t *testing.T) {
	svc := setupLoaderTest(t)
	row := resourceRow("P-1", 2023, 5)
	row["surprise"] = "x"
	row["another"] = 1

	_, err := svc.Load(context.Background(), "project_resources",
		[]map[string]interface{}{row}, ModeReplace)
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "project_resources", mismatch.Table)
	assert.Equal(t, []string{"another", "surprise"}, mismatch.Unknown)

	// Nothing committed.
	var count int64
	require.NoError(t, svc.DB.Table("project_resources").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestLoad_UnknownTable(t *testing.T) {
	svc := setupLoaderTest(t)
	_, err := svc.Load(context.Background(), "users", nil, ModeReplace)
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestLoad_UnknownMode(t *testing.T) {
	svc := setupLoaderTest(t)
	_, err := svc.Load(context.Background(), "project_resources", nil, Mode("merge"))
	assert.Error(t, err)
}

func TestLoad_TimeseriesReplaceOnly(t *testing.T) {
	svc := setupLoaderTest(t)
	rows := []map[string]interface{}{{
		"report_year": 2023, "wk_id": "WK-1", "field_id": "F-1",
		"project_id": "P-1", "prod_year": 2020, "prd_sls_oil": 12.5,
	}}

	n, err := svc.Load(context.Background(), "project_timeseries", rows, ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.Load(context.Background(), "project_timeseries", rows, ModeUpsert)
	assert.Error(t, err)
}

func TestLoad_RowConversionError(t *testing.T) {
	svc := setupLoaderTest(t)
	row := resourceRow("P-1", 2023, 5)
	row["res_oc"] = "not-a-number"

	_, err := svc.Load(context.Background(), "project_resources",
		[]map[string]interface{}{row}, ModeReplace)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "res_oc")
}
