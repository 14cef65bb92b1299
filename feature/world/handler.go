package world

import (
	"errors"
	"strconv"

	"world-manager/core/logger"
	"world-manager/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the world feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the world routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/world")
	group.Get("/rooms", h.HandleListRooms)
	group.Get("/rooms/:id", h.HandleGetRoom)
	group.Get("/archetypes", h.HandleListArchetypes)
	group.Get("/prototypes", h.HandleListPrototypes)
	group.Get("/verify", h.HandleVerify)
}

// HandleListRooms returns every room with its exits joined in.
func (h *Handler) HandleListRooms(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	rooms, err := h.service.Rooms(c.Context())
	if err != nil {
		l.Error("Room listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(rooms)
}

// HandleGetRoom returns one room with its exits joined in.
func (h *Handler) HandleGetRoom(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid room id",
		})
	}

	room, err := h.service.Room(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "room not found",
			})
		}
		l.Error("Room fetch failed", zap.Int64("room", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(room)
}

// HandleListArchetypes returns the stored archetypes keyed by name.
func (h *Handler) HandleListArchetypes(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	archetypes, err := h.service.Archetypes(c.Context())
	if err != nil {
		l.Error("Archetype listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(archetypes)
}

// HandleListPrototypes returns the stored item prototypes.
func (h *Handler) HandleListPrototypes(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	prototypes, err := h.service.Prototypes(c.Context())
	if err != nil {
		l.Error("Prototype listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(prototypes)
}

// HandleVerify runs the world connectivity check.
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Verify(c.Context())
	if err != nil {
		l.Error("World verification failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"clean":  report.Clean(),
		"report": report,
	})
}
