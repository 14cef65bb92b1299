// Package auth protects the API with a static key check.
package auth

import "github.com/gofiber/fiber/v2"

// Header is the request header carrying the API key.
const Header = "X-API-Key"

// Config holds the settings for the auth middleware.
type Config struct {
	// ApiKey is the secret clients must present. Empty disables the check.
	ApiKey string
}

// New creates the auth middleware. When no key is configured the
// middleware is a no-op so local setups keep working without secrets.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}

		if c.Get(Header) != cfg.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}

		return c.Next()
	}
}
