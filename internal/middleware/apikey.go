package middleware

import (
	"esdc-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const apiKeyHeader = "X-Api-Key"

// RequireAPIKey checks the X-Api-Key header against a bcrypt hash.
// An empty hash disables the check (local development).
func RequireAPIKey(hash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hash == "" {
			return c.Next()
		}
		key := c.Get(apiKeyHeader)
		if key == "" {
			return response.Unauthorized(c, "missing API key")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			return response.Unauthorized(c, "invalid API key")
		}
		return c.Next()
	}
}
