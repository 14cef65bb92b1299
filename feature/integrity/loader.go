package integrity

import (
	"world-manager/core/source"
	"world-manager/core/store"
	"world-manager/feature/world"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the integrity service into the application.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the integrity feature.
func NewFeature(w *world.Service, st *store.Store, tables store.Tables, src source.Loader, cfg world.Config, logger *zap.Logger) *Feature {
	service := NewService(w, st, tables, src, cfg, logger)
	return &Feature{
		service: service,
		handler: NewHandler(service),
	}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "integrity"
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
