package database

import (
	"strings"

	"esdc-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a GORM DB from a DSN. A postgres:// URL opens Postgres
// (PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// when running behind a connection pooler); anything else is treated as a
// SQLite path, which is the default local store.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// AutoMigrate creates the base tables. Supplementary columns (project_stage,
// is_discovered, record_uuid) are owned by the migration engine, not by the
// model structs, so they are never created here.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ProjectResource{},
		&models.ProjectTimeseries{},
		&models.ValidationResult{},
	)
}
