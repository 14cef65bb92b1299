package integrity

import (
	"context"
	"fmt"
	"time"

	"world-manager/core/reconcile"
	"world-manager/core/source"
	"world-manager/core/store"
	"world-manager/feature/integrity/checks"
	"world-manager/feature/world"
	worldReconcile "world-manager/feature/world/reconcile"

	"go.uber.org/zap"
)

// contentsCacheTTL keeps repeated content checks from rescanning the
// documents and tables on every dashboard refresh.
const contentsCacheTTL = time.Minute

// Service runs world integrity checks.
type Service struct {
	world  *world.Service
	store  *store.Store
	tables store.Tables
	source source.Loader
	cfg    world.Config
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(w *world.Service, st *store.Store, tables store.Tables, src source.Loader, cfg world.Config, logger *zap.Logger) *Service {
	return &Service{
		world:  w,
		store:  st,
		tables: tables,
		source: src,
		cfg:    cfg,
		logger: logger,
	}
}

// CheckDocuments verifies that every configured world document is
// readable and carries records.
func (s *Service) CheckDocuments(ctx context.Context) []checks.DocumentReport {
	return checks.CheckDocuments(ctx, s.source, s.documents())
}

// CheckTables verifies that every world table exists with the expected
// key schema.
func (s *Service) CheckTables(ctx context.Context) []checks.TableReport {
	return checks.CheckTables(ctx, s.store, checks.WorldTables(s.tables))
}

// CheckContents reconciles one record kind between the authored
// documents and the store without writing anything.
func (s *Service) CheckContents(ctx context.Context, kind string) (*reconcile.Plan, error) {
	spec := worldReconcile.SpecFor(kind, s.world, s.store, s.tables, contentsCacheTTL)
	if spec == nil {
		return nil, fmt.Errorf("unknown record kind: %s", kind)
	}
	return reconcile.ReconcileWithPlan(ctx, spec, reconcile.Options{})
}

// Kinds lists the record kinds CheckContents accepts.
func (s *Service) Kinds() []string {
	return world.Kinds()
}

// documents returns the authored documents the configuration names. The
// standalone exits document is optional; worlds that embed every exit in
// its room never author one.
func (s *Service) documents() []checks.Document {
	docs := []checks.Document{
		{Name: s.cfg.RoomsDoc, Aliases: []string{"rooms"}},
	}
	if s.cfg.ExitsDoc != "" {
		docs = append(docs, checks.Document{Name: s.cfg.ExitsDoc, Aliases: []string{"exits"}, Optional: true})
	}
	docs = append(docs,
		checks.Document{Name: s.cfg.ArchetypesDoc, Aliases: []string{"archetypes"}},
		checks.Document{Name: s.cfg.PrototypesDoc, Aliases: []string{"itemPrototypes", "prototypes"}},
	)
	return docs
}
