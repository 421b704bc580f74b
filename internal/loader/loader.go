package loader

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"esdc-backend/internal/cache"
	"esdc-backend/internal/migrate"
	"esdc-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mode selects full refresh or merge-by-natural-key.
type Mode string

const (
	// ModeReplace drops and recreates the table before inserting; surrogate
	// identifiers are regenerated by the post-load migration pass.
	ModeReplace Mode = "replace"
	// ModeUpsert overwrites value columns on natural-key conflict and keeps
	// record_uuid untouched.
	ModeUpsert Mode = "upsert"
)

// ErrUnknownTable rejects loads into tables the schema store does not manage.
var ErrUnknownTable = errors.New("unknown table")

// SchemaMismatchError reports incoming columns that are neither part of the
// fixed schema nor one of the known migration-added columns. Fatal to the
// load; nothing is committed.
type SchemaMismatchError struct {
	Table   string
	Unknown []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("table %s: unknown columns %s", e.Table, strings.Join(e.Unknown, ", "))
}

// Service ingests parsed rows into the schema store and brings the schema up
// to date afterwards. One load runs at a time; the whole load (insert +
// migrations) commits as a single transaction so readers never observe a
// half-migrated state.
type Service struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

// naturalKey is the upsert conflict target. The reported data carries three
// uncertainty rows per project and year, so uncert_lvl is part of the stored
// grain.
var naturalKey = []clause.Column{
	{Name: "wk_id"},
	{Name: "field_id"},
	{Name: "project_id"},
	{Name: "report_year"},
	{Name: "uncert_lvl"},
}

// resourceUpdateColumns are overwritten on conflict. Everything else
// (id, record_uuid, created_at and the natural key itself) is preserved.
var resourceUpdateColumns = []string{
	"report_status", "wk_name", "field_name",
	"field_lat", "field_long", "operator_name", "basin86",
	"project_name", "project_class", "project_level",
	"prj_ioip", "prj_igip",
	"rec_oil", "rec_con", "rec_ga", "rec_gn",
	"rec_oc_risked", "rec_an_risked",
	"res_oil", "res_con", "res_ga", "res_gn", "res_oc", "res_an",
	"cprd_sls_oc", "cprd_sls_an",
	"project_remarks", "updated_at",
}

// Load ingests rows into table and applies the table's migration sequence.
// Returns the number of rows written.
func (s *Service) Load(ctx context.Context, table string, rows []map[string]interface{}, mode Mode) (int, error) {
	if mode != ModeReplace && mode != ModeUpsert {
		return 0, fmt.Errorf("unknown load mode %q", mode)
	}

	var n int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		switch table {
		case "project_resources":
			n, err = s.loadProjectResources(tx, rows, mode)
		case "project_timeseries":
			n, err = s.loadProjectTimeseries(tx, rows, mode)
		default:
			err = fmt.Errorf("%w %q", ErrUnknownTable, table)
		}
		if err != nil {
			return err
		}

		migrations, err := migrate.ForTable(table)
		if err != nil {
			return err
		}
		return migrate.Apply(tx, migrations)
	})
	if err != nil {
		return 0, err
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("report cache invalidation failed")
		}
	}
	log.Info().Str("table", table).Str("mode", string(mode)).Int("rows", n).Msg("load committed")
	return n, nil
}

func (s *Service) loadProjectResources(tx *gorm.DB, rows []map[string]interface{}, mode Mode) (int, error) {
	if err := checkColumns("project_resources", rows, resourceColumns); err != nil {
		return 0, err
	}
	records := make([]models.ProjectResource, 0, len(rows))
	for i, row := range rows {
		rec, err := resourceFromRow(row)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}

	if mode == ModeReplace {
		if err := recreate(tx, &models.ProjectResource{}); err != nil {
			return 0, err
		}
		if err := tx.CreateInBatches(records, 500).Error; err != nil {
			return 0, fmt.Errorf("insert project_resources: %w", err)
		}
		return len(records), nil
	}

	if !tx.Migrator().HasTable(&models.ProjectResource{}) {
		if err := tx.AutoMigrate(&models.ProjectResource{}); err != nil {
			return 0, fmt.Errorf("create table: %w", err)
		}
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   naturalKey,
		DoUpdates: clause.AssignmentColumns(resourceUpdateColumns),
	}).CreateInBatches(records, 500).Error; err != nil {
		return 0, fmt.Errorf("upsert project_resources: %w", err)
	}
	return len(records), nil
}

func (s *Service) loadProjectTimeseries(tx *gorm.DB, rows []map[string]interface{}, mode Mode) (int, error) {
	if mode != ModeReplace {
		return 0, fmt.Errorf("table project_timeseries only supports replace loads")
	}
	if err := checkColumns("project_timeseries", rows, timeseriesColumns); err != nil {
		return 0, err
	}
	records := make([]models.ProjectTimeseries, 0, len(rows))
	for i, row := range rows {
		rec, err := timeseriesFromRow(row)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	if err := recreate(tx, &models.ProjectTimeseries{}); err != nil {
		return 0, err
	}
	if err := tx.CreateInBatches(records, 500).Error; err != nil {
		return 0, fmt.Errorf("insert project_timeseries: %w", err)
	}
	return len(records), nil
}

func recreate(tx *gorm.DB, model interface{}) error {
	if tx.Migrator().HasTable(model) {
		if err := tx.Migrator().DropTable(model); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	if err := tx.AutoMigrate(model); err != nil {
		return fmt.Errorf("recreate table: %w", err)
	}
	return nil
}

// checkColumns rejects loads whose rows reference columns outside the fixed
// schema. Migration-owned columns (project_stage, is_discovered,
// record_uuid) are tolerated on input and ignored: the migration pass owns
// their values.
func checkColumns(table string, rows []map[string]interface{}, allowed map[string]bool) error {
	unknown := map[string]bool{}
	for _, row := range rows {
		for col := range row {
			if !allowed[col] {
				unknown[col] = true
			}
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	names := make([]string, 0, len(unknown))
	for c := range unknown {
		names = append(names, c)
	}
	sort.Strings(names)
	return &SchemaMismatchError{Table: table, Unknown: names}
}
