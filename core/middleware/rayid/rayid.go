// Package rayid tags every request with a unique ray id for tracing.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the request/response header carrying the ray id.
const Header = "X-Ray-ID"

// LocalsKey is the fiber locals key the ray id is stored under.
const LocalsKey = "ray_id"

// New creates the ray id middleware. An id supplied by the caller is
// kept so traces can be stitched across services; otherwise a fresh
// UUID is generated. The id is stored in locals and echoed back in the
// response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(LocalsKey, id)
		c.Set(Header, id)

		return c.Next()
	}
}
