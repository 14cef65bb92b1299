package items

import (
	"errors"
	"strconv"

	"world-manager/core/logger"
	"world-manager/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for items.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/items/:id", h.HandleGetItem)
	app.Post("/rooms/:id/items", h.HandleSpawnItem)
}

// HandleGetItem returns one stored item.
func (h *Handler) HandleGetItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	item, err := h.service.Item(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "item not found",
			})
		}
		l.Error("Item fetch failed", zap.String("item", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(item)
}

// HandleSpawnItem mints an item from a prototype and attaches it to the
// room in the path.
func (h *Handler) HandleSpawnItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	roomID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid room id",
		})
	}

	var body struct {
		PrototypeID string `json:"PrototypeID"`
	}
	if err := c.BodyParser(&body); err != nil || body.PrototypeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "request body must carry a PrototypeID",
		})
	}

	result, err := h.service.SpawnIntoRoom(c.Context(), body.PrototypeID, roomID)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			status = fiber.StatusNotFound
		}
		l.Error("Spawn failed",
			zap.String("prototype", body.PrototypeID),
			zap.Int64("room", roomID),
			zap.String("state", string(result.State)),
			zap.Error(err),
		)
		return c.Status(status).JSON(fiber.Map{
			"state": result.State,
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"state": result.State,
		"item":  result.Item,
	})
}
