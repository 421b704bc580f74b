package report

import (
	"fmt"
	"strings"
)

// QueryError rejects an invalid table kind, detail level or filter before
// anything touches storage.
type QueryError struct {
	Msg string
}

func (e *QueryError) Error() string {
	return e.Msg
}

// Filter carries the optional report predicates. Where names the column a
// case-insensitive substring match applies to; no Where means no text
// predicate at all. An empty Search with Where set matches everything: the
// bound pattern is "%%".
type Filter struct {
	Where  string
	Search string
	Year   *int
}

// Query is a built report query: SQL with bound parameters and the ordered
// output column names (empty Columns for a star projection).
type Query struct {
	SQL     string
	Args    []interface{}
	Columns []string
}

// Build produces the query for one (kind, level, filter) request. columns
// optionally restricts the projection to a subset of the level's vocabulary;
// the declared column order is kept. All filter values are bound parameters.
func Build(kind TableKind, level DetailLevel, f Filter, columns []string) (*Query, error) {
	spec, ok := reportSpecs[kind]
	if !ok {
		return nil, &QueryError{Msg: fmt.Sprintf("unknown table kind %q", kind)}
	}
	if level < 0 || level > MaxDetailLevel {
		return nil, &QueryError{Msg: fmt.Sprintf("detail level %d out of range 0..%d", level, MaxDetailLevel)}
	}
	lv := spec.levels[level]

	selectList, outNames, err := buildSelect(kind, lv, columns)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	var args []interface{}
	sb.WriteString("SELECT ")
	sb.WriteString(selectList)
	sb.WriteString(" FROM ")
	sb.WriteString(spec.from)

	var preds []string
	if f.Where != "" {
		target, err := filterTarget(kind, lv, f.Where)
		if err != nil {
			return nil, err
		}
		preds = append(preds, fmt.Sprintf("LOWER(%s) LIKE ?", target))
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Year != nil {
		preds = append(preds, "report_year = ?")
		args = append(args, *f.Year)
	}
	if len(preds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(preds, " AND "))
	}

	if spec.agg {
		var dims []string
		for _, c := range lv.cols {
			if c.Dim {
				dims = append(dims, c.Expr)
			}
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(dims, ", "))
	}

	if len(lv.order) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(lv.order, ", "))
	}

	return &Query{SQL: sb.String(), Args: args, Columns: outNames}, nil
}

func buildSelect(kind TableKind, lv levelSpec, columns []string) (string, []string, error) {
	if lv.star {
		if len(columns) == 0 {
			return "*", nil, nil
		}
		// Explicit subset of the full vocabulary replaces the star.
		for _, c := range columns {
			if !containsString(projectFullColumns, c) {
				return "", nil, &QueryError{Msg: fmt.Sprintf("unknown column %q for %s reports", c, kind)}
			}
		}
		return strings.Join(columns, ", "), append([]string(nil), columns...), nil
	}

	wanted := lv.cols
	if len(columns) > 0 {
		byName := make(map[string]Column, len(lv.cols))
		for _, c := range lv.cols {
			byName[c.Name] = c
		}
		subset := make([]Column, 0, len(columns))
		for _, name := range columns {
			c, ok := byName[name]
			if !ok {
				return "", nil, &QueryError{Msg: fmt.Sprintf("unknown column %q for %s reports at this detail level", name, kind)}
			}
			subset = append(subset, c)
		}
		wanted = subset
	}

	parts := make([]string, 0, len(wanted))
	names := make([]string, 0, len(wanted))
	for _, c := range wanted {
		if c.Expr == c.Name {
			parts = append(parts, c.Name)
		} else {
			parts = append(parts, c.Expr+" AS "+c.Name)
		}
		names = append(names, c.Name)
	}
	return strings.Join(parts, ", "), names, nil
}

// filterTarget resolves the Where column against the level's dimension
// vocabulary. Aggregated measures are not filterable; text matching only
// makes sense on identity columns.
func filterTarget(kind TableKind, lv levelSpec, where string) (string, error) {
	if lv.star {
		if containsString(projectFullColumns, where) {
			return where, nil
		}
		return "", &QueryError{Msg: fmt.Sprintf("unknown filter column %q for %s reports", where, kind)}
	}
	for _, c := range lv.cols {
		if c.Name == where {
			if !c.Dim {
				return "", &QueryError{Msg: fmt.Sprintf("column %q is aggregated and cannot be filtered", where)}
			}
			return c.Expr, nil
		}
	}
	return "", &QueryError{Msg: fmt.Sprintf("unknown filter column %q for %s reports at this detail level", where, kind)}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
