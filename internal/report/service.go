package report

import (
	"context"
	"fmt"

	"esdc-backend/internal/cache"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service executes built report queries against the schema store. Cache is
// optional; when nil every request hits the store directly.
type Service struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

// Result is an ordered tabular report: Columns carries the projection order,
// Rows the values keyed by column name.
type Result struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

// Run builds and executes one report query.
func (s *Service) Run(ctx context.Context, kind TableKind, level DetailLevel, f Filter, columns []string) (*Result, error) {
	q, err := Build(kind, level, f, columns)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if s.Cache != nil {
		cacheKey, err = s.Cache.Key(ctx, q.SQL, q.Args)
		if err == nil {
			var cached Result
			if ok, _ := s.Cache.Get(ctx, cacheKey, &cached); ok {
				log.Debug().Str("kind", string(kind)).Int("level", int(level)).Msg("report served from cache")
				return &cached, nil
			}
		}
	}

	res, err := s.execute(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil && cacheKey != "" {
		_ = s.Cache.Set(ctx, cacheKey, res)
	}
	return res, nil
}

func (s *Service) execute(ctx context.Context, q *Query) (*Result, error) {
	rows, err := s.DB.WithContext(ctx).Raw(q.SQL, q.Args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("report query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: cols, Rows: []map[string]interface{}{}}
	values := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = values[i]
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res, rows.Err()
}
