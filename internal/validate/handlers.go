package validate

import (
	"esdc-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers bundles validation handlers.
type Handlers struct {
	Engine *Engine
}

// Run POST /api/v1/validation/run
//
// Runs the full rule set against project_resources and persists the results,
// replacing the previous run.
func (h *Handlers) Run(c *fiber.Ctx) error {
	report, err := h.Engine.Run(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("validation run failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Validation completed", report.Violations, map[string]interface{}{
		"run_at":          report.RunAt,
		"row_count":       report.RowCount,
		"violation_count": len(report.Violations),
	})
}

// Latest GET /api/v1/validation/results
func (h *Handlers) Latest(c *fiber.Ctx) error {
	results, err := h.Engine.Latest(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetching validation results failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Validation results fetched successfully", results, map[string]interface{}{
		"violation_count": len(results),
	})
}
