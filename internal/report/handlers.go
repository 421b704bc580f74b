package report

import (
	"errors"
	"strconv"
	"strings"

	"esdc-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles report handlers.
type Handlers struct {
	Service *Service
}

// Get GET /api/v1/reports/:table
//
// Query params: level (0..3, default 0), where + search (substring filter),
// year (report year), columns (comma-separated projection subset).
func (h *Handlers) Get(c *fiber.Ctx) error {
	kind, err := ParseTableKind(c.Params("table"))
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}

	level := 0
	if raw := c.Query("level"); raw != "" {
		level, err = strconv.Atoi(raw)
		if err != nil {
			return response.Error(c, "level must be an integer", fiber.StatusBadRequest, nil)
		}
	}

	f := Filter{
		Where:  c.Query("where"),
		Search: c.Query("search"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return response.Error(c, "year must be an integer", fiber.StatusBadRequest, nil)
		}
		f.Year = &year
	}

	var columns []string
	if raw := c.Query("columns"); raw != "" {
		for _, col := range strings.Split(raw, ",") {
			if col = strings.TrimSpace(col); col != "" {
				columns = append(columns, col)
			}
		}
	}

	result, err := h.Service.Run(c.Context(), kind, DetailLevel(level), f, columns)
	if err != nil {
		var queryErr *QueryError
		if errors.As(err, &queryErr) {
			return response.Error(c, queryErr.Msg, fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	return response.Success(c, "Report fetched successfully", result, map[string]interface{}{
		"table":     string(kind),
		"level":     level,
		"row_count": len(result.Rows),
	})
}
