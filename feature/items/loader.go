package items

import (
	"world-manager/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the item service into the application.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the item feature.
func NewFeature(st *store.Store, tables store.Tables, logger *zap.Logger) *Feature {
	service := NewService(st, tables, logger)
	return &Feature{
		service: service,
		handler: NewHandler(service),
	}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "items"
}

// IsEnabled reports whether the feature should load.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
