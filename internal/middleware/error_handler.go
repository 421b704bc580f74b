package middleware

import (
	"errors"

	"esdc-backend/internal/fetch"
	"esdc-backend/internal/loader"
	"esdc-backend/internal/migrate"
	"esdc-backend/internal/pkg/response"
	"esdc-backend/internal/report"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler. Returns the standard error format.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	details := map[string]interface{}{}

	var queryErr *report.QueryError
	var schemaErr *loader.SchemaMismatchError
	var migrationErr *migrate.MigrationError
	var fetchErr *fetch.FetchError

	switch {
	case errors.As(err, &queryErr):
		code = fiber.StatusBadRequest
		message = queryErr.Msg
	case errors.As(err, &schemaErr):
		code = fiber.StatusBadRequest
		message = "payload columns do not match the table schema"
		details["table"] = schemaErr.Table
		details["unknown_columns"] = schemaErr.Unknown
	case errors.As(err, &migrationErr):
		message = migrationErr.Error()
	case errors.As(err, &fetchErr):
		code = fiber.StatusBadGateway
		message = fetchErr.Error()
	default:
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}
	}

	return response.Error(c, message, code, details)
}
