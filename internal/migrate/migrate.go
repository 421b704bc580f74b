package migrate

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migration is one schema/data transformation. Migrations carry no version
// ledger: Applied inspects the store itself (column existence, value
// presence), so reapplying a sequence against an already-migrated store is
// always safe.
type Migration struct {
	Name string
	// Applied reports whether the structural part of the migration is already
	// in place. Data transformations may still rerun (see DeriveFromPrefix).
	Applied func(db *gorm.DB) (bool, error)
	Apply   func(db *gorm.DB) error
}

// MigrationError reports which migration in a sequence failed. The store is
// left in the pre-failure state of that step; rerunning the whole sequence is
// the intended recovery.
type MigrationError struct {
	Name string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %s failed: %v", e.Name, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// identRe guards identifiers that end up in DDL. Table and column names come
// from the declared migration lists, never from callers, but DDL cannot be
// parameterized so they are still checked.
var identRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func checkIdent(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// Apply runs migrations in declared order, each inside its own transaction.
// The first failure aborts the pass and is returned as a *MigrationError;
// already-applied steps are skipped via their guard.
func Apply(db *gorm.DB, migrations []Migration) error {
	for _, m := range migrations {
		done, err := m.Applied(db)
		if err != nil {
			return &MigrationError{Name: m.Name, Err: err}
		}
		if done {
			log.Debug().Str("migration", m.Name).Msg("already applied, skipping")
			continue
		}
		if err := db.Transaction(func(tx *gorm.DB) error {
			return m.Apply(tx)
		}); err != nil {
			return &MigrationError{Name: m.Name, Err: err}
		}
		log.Debug().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// hasColumn checks column existence without dialect-specific catalogs: a
// zero-row select exposes the result set's column names on both SQLite and
// Postgres.
func hasColumn(db *gorm.DB, table, column string) (bool, error) {
	rows, err := db.Raw("SELECT * FROM " + table + " LIMIT 0").Rows()
	if err != nil {
		return false, fmt.Errorf("inspect table %s: %w", table, err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return false, err
	}
	for _, c := range cols {
		if c == column {
			return true, nil
		}
	}
	return false, nil
}

// AddIdempotentColumn adds a nullable column; no-op when the column already
// exists.
func AddIdempotentColumn(table, column, sqlType string) Migration {
	return Migration{
		Name: fmt.Sprintf("add_column_%s_%s", table, column),
		Applied: func(db *gorm.DB) (bool, error) {
			if err := checkIdent(table); err != nil {
				return false, err
			}
			if err := checkIdent(column); err != nil {
				return false, err
			}
			return hasColumn(db, table, column)
		},
		Apply: func(db *gorm.DB) error {
			return db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, sqlType)).Error
		},
	}
}

// PrefixValue maps a leading character of the source column to the derived
// value. Order matters: the first match wins.
type PrefixValue struct {
	Prefix string
	Value  interface{}
}

// DeriveFromPrefix recomputes target for every row from the first character
// of source. It always reruns (same inputs produce the same outputs), so a
// later ingest that changes source values is corrected on the next pass.
// Unmatched prefixes leave the target NULL.
func DeriveFromPrefix(table, target, source string, mapping []PrefixValue) Migration {
	return Migration{
		Name: fmt.Sprintf("derive_%s_%s", table, target),
		Applied: func(db *gorm.DB) (bool, error) {
			for _, n := range []string{table, target, source} {
				if err := checkIdent(n); err != nil {
					return false, err
				}
			}
			// Never "applied": derivations are overwritten on every pass.
			return false, nil
		},
		Apply: func(db *gorm.DB) error {
			sql := fmt.Sprintf("UPDATE %s SET %s = CASE", table, target)
			args := make([]interface{}, 0, len(mapping)*2)
			for _, pv := range mapping {
				sql += fmt.Sprintf(" WHEN substr(%s, 1, 1) = ? THEN ?", source)
				args = append(args, pv.Prefix, pv.Value)
			}
			sql += " ELSE NULL END"
			return db.Exec(sql, args...).Error
		},
	}
}

// GenerateSurrogateID assigns a fresh UUIDv4 to every row where column is
// NULL or empty. Rows that already hold a value are never touched, which is
// what keeps record identifiers stable across reloads.
func GenerateSurrogateID(table, column string) Migration {
	return Migration{
		Name: fmt.Sprintf("generate_%s_%s", table, column),
		Applied: func(db *gorm.DB) (bool, error) {
			if err := checkIdent(table); err != nil {
				return false, err
			}
			if err := checkIdent(column); err != nil {
				return false, err
			}
			return false, nil
		},
		Apply: func(db *gorm.DB) error {
			var ids []int64
			sel := fmt.Sprintf("SELECT id FROM %s WHERE %s IS NULL OR %s = ''", table, column, column)
			if err := db.Raw(sel).Scan(&ids).Error; err != nil {
				return err
			}
			upd := fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", table, column)
			for _, id := range ids {
				if err := db.Exec(upd, uuid.NewString(), id).Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
