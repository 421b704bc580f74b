package describe

import (
	"errors"

	"esdc-backend/internal/pkg/response"
	"esdc-backend/internal/report"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles narrative handlers.
type Handlers struct {
	Service *Service
}

// Get GET /api/v1/describe/:table
func (h *Handlers) Get(c *fiber.Ctx) error {
	kind, err := report.ParseTableKind(c.Params("table"))
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	paragraphs, err := h.Service.Describe(c.Context(), kind)
	if err != nil {
		var queryErr *report.QueryError
		if errors.As(err, &queryErr) {
			return response.Error(c, queryErr.Msg, fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Narrative generated successfully", paragraphs, map[string]interface{}{
		"table":           string(kind),
		"paragraph_count": len(paragraphs),
	})
}
