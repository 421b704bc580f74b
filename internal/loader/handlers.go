package loader

import (
	"errors"
	"os"
	"path/filepath"

	"esdc-backend/internal/fetch"
	"esdc-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers bundles ingest handlers.
type Handlers struct {
	Service *Service
	Fetcher *fetch.Client
	DataDir string
}

type reloadRequest struct {
	Table    string `json:"table"`
	Filetype string `json:"filetype"`
}

// Reload POST /api/v1/ingest/reload
//
// Reads <data_dir>/<table>.<filetype> and replaces the table contents.
func (h *Handlers) Reload(c *fiber.Ctx) error {
	var req reloadRequest
	if err := c.BodyParser(&req); err != nil || req.Table == "" {
		return response.Error(c, "table is required", fiber.StatusBadRequest, nil)
	}
	if req.Filetype == "" {
		req.Filetype = "csv"
	}

	count, err := h.Service.LoadFile(c.Context(), h.DataDir, req.Table, req.Filetype)
	if err != nil {
		return h.ingestError(c, err)
	}

	return response.Success(c, "Table reloaded successfully", map[string]interface{}{
		"table":     req.Table,
		"row_count": count,
	}, nil)
}

type fetchRequest struct {
	Table      string `json:"table"`
	Filetype   string `json:"filetype"`
	ReportYear int    `json:"report_year"`
	Reload     bool   `json:"reload"`
}

// Fetch POST /api/v1/ingest/fetch
//
// Downloads one table from the upstream API into the data directory,
// optionally reloading it in the same request.
func (h *Handlers) Fetch(c *fiber.Ctx) error {
	var req fetchRequest
	if err := c.BodyParser(&req); err != nil || req.Table == "" {
		return response.Error(c, "table is required", fiber.StatusBadRequest, nil)
	}
	if req.Filetype == "" {
		req.Filetype = "csv"
	}

	data, err := h.Fetcher.Fetch(c.Context(), req.Table, req.Filetype, req.ReportYear)
	if err != nil {
		return h.ingestError(c, err)
	}

	path := filepath.Join(h.DataDir, req.Table+"."+req.Filetype)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to write fetched payload")
		return response.Error(c, "failed to store fetched payload", fiber.StatusInternalServerError, nil)
	}

	result := map[string]interface{}{
		"table": req.Table,
		"path":  path,
		"bytes": len(data),
	}
	if req.Reload {
		count, err := h.Service.LoadFile(c.Context(), h.DataDir, req.Table, req.Filetype)
		if err != nil {
			return h.ingestError(c, err)
		}
		result["row_count"] = count
	}

	return response.Success(c, "Table fetched successfully", result, nil)
}

func (h *Handlers) ingestError(c *fiber.Ctx, err error) error {
	var schemaErr *SchemaMismatchError
	var fetchErr *fetch.FetchError
	switch {
	case errors.As(err, &schemaErr):
		return response.Error(c, "payload columns do not match the table schema", fiber.StatusBadRequest, map[string]interface{}{
			"table":           schemaErr.Table,
			"unknown_columns": schemaErr.Unknown,
		})
	case errors.As(err, &fetchErr):
		return response.Error(c, fetchErr.Error(), fiber.StatusBadGateway, nil)
	case errors.Is(err, os.ErrNotExist):
		return response.Error(c, "payload file not found", fiber.StatusNotFound, nil)
	case errors.Is(err, ErrUnknownTable):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		log.Error().Err(err).Msg("ingest failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
