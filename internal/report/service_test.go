package report

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"esdc-backend/internal/migrate"
	"esdc-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupReportTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProjectResource{}))

	seed := []models.ProjectResource{
		{
			ReportYear: 2023, WkID: "WK-1", WkName: "Rokan", FieldID: "F-1", FieldName: "Minas",
			ProjectID: "P-1", ProjectName: "Minas Infill", ProjectClass: "1. Reserves", ProjectLevel: "E1",
			UncertLvl: "2. Middle Value",
			RecOcRisked: 10, RecAnRisked: 100, ResOc: 5, ResAn: 50, PrjIoip: 1000,
		},
		{
			ReportYear: 2023, WkID: "WK-1", WkName: "Rokan", FieldID: "F-1", FieldName: "Minas",
			ProjectID: "P-2", ProjectName: "Minas EOR", ProjectClass: "1. Reserves", ProjectLevel: "E1",
			UncertLvl: "2. Middle Value",
			RecOcRisked: 20, RecAnRisked: 200, ResOc: 7, ResAn: 70, PrjIoip: 2000,
		},
		{
			ReportYear: 2022, WkID: "WK-2", WkName: "Mahakam", FieldID: "F-2", FieldName: "Tunu",
			ProjectID: "P-3", ProjectName: "Tunu Shallow", ProjectClass: "2. Contingent", ProjectLevel: "X1",
			UncertLvl: "2. Middle Value",
			RecOcRisked: 3, RecAnRisked: 30, ResOc: 1, ResAn: 10, PrjIgip: 500,
		},
	}
	require.NoError(t, db.Create(&seed).Error)

	migrations, err := migrate.ForTable("project_resources")
	require.NoError(t, err)
	require.NoError(t, migrate.Apply(db, migrations))

	return &Service{DB: db}
}

func TestRun_ProjectTerse(t *testing.T) {
	svc := setupReportTest(t)
	res, err := svc.Run(context.Background(), KindProject, 0, Filter{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"report_year", "project_name", "project_level", "uncert_lvl",
		"resources_oc", "resources_an", "reserves_oc", "reserves_an",
	}, res.Columns)
	require.Len(t, res.Rows, 3)

	// Sorted by report_year first, then project_level, then project_name.
	assert.Equal(t, "Tunu Shallow", res.Rows[0]["project_name"])
	assert.Equal(t, "Minas EOR", res.Rows[1]["project_name"])
	assert.Equal(t, "Minas Infill", res.Rows[2]["project_name"])
}

func TestRun_NationalAggregates(t *testing.T) {
	svc := setupReportTest(t)
	year := 2023
	res, err := svc.Run(context.Background(), KindNational, 2, Filter{Year: &year}, nil)
	require.NoError(t, err)

	require.Len(t, res.Rows, 1)
	row := res.Rows[0]
	assert.EqualValues(t, 30, row["resources_oc"])
	assert.EqualValues(t, 12, row["reserves_oc"])
	assert.EqualValues(t, 3000, row["ioip"])
	assert.EqualValues(t, 2, row["project_count"])
}

func TestRun_FieldGroupsPerField(t *testing.T) {
	svc := setupReportTest(t)
	res, err := svc.Run(context.Background(), KindField, 0, Filter{}, nil)
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	// 2022 before 2023.
	assert.Equal(t, "Tunu", res.Rows[0]["field_name"])
	assert.Equal(t, "Minas", res.Rows[1]["field_name"])
	assert.EqualValues(t, 30, res.Rows[1]["resources_oc"])
}

func TestRun_TextFilter(t *testing.T) {
	svc := setupReportTest(t)
	res, err := svc.Run(context.Background(), KindProject, 0, Filter{Where: "project_name", Search: "eor"}, nil)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Minas EOR", res.Rows[0]["project_name"])
}

func TestRun_EmptySearchMatchesAll(t *testing.T) {
	svc := setupReportTest(t)
	res, err := svc.Run(context.Background(), KindProject, 0, Filter{Where: "project_name"}, nil)
	require.NoError(t, err)
	assert.Len(t, res.Rows, 3)
}

func TestRun_StarCarriesDerivedColumns(t *testing.T) {
	svc := setupReportTest(t)
	res, err := svc.Run(context.Background(), KindProject, 3, Filter{Where: "project_id", Search: "p-1"}, nil)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "1. Exploitation", res.Rows[0]["project_stage"])
	assert.NotEmpty(t, res.Rows[0]["record_uuid"])
}

func testApp(svc *Service) *fiber.App {
	app := fiber.New()
	h := &Handlers{Service: svc}
	app.Get("/api/v1/reports/:table", h.Get)
	return app
}

func TestHandlerGet_OK(t *testing.T) {
	app := testApp(setupReportTest(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/reports/national?level=1&year=2023", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "success", out["status"])
	data := out["data"].(map[string]interface{})
	assert.Len(t, data["rows"], 1)
	meta := out["metadata"].(map[string]interface{})
	assert.Equal(t, "national", meta["table"])
}

func TestHandlerGet_BadRequests(t *testing.T) {
	app := testApp(setupReportTest(t))

	for _, path := range []string{
		"/api/v1/reports/wells",
		"/api/v1/reports/project?level=9",
		"/api/v1/reports/project?level=abc",
		"/api/v1/reports/project?year=abc",
		"/api/v1/reports/project?where=resources_oc&search=1&level=0",
		"/api/v1/reports/project?columns=nope",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err, path)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestHandlerGet_ColumnSubset(t *testing.T) {
	app := testApp(setupReportTest(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/reports/project?columns=project_name,reserves_oc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	data := out["data"].(map[string]interface{})
	cols := data["columns"].([]interface{})
	assert.Equal(t, []interface{}{"project_name", "reserves_oc"}, cols)
}
