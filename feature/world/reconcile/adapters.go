package reconcile

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"world-manager/core/reconcile"
	"world-manager/core/store"
	"world-manager/feature/world"
	"world-manager/feature/world/models"
)

// RoomAdapter reconciles authored room records against the rooms table.
type RoomAdapter struct {
	world  *world.Service
	store  *store.Store
	tables store.Tables
}

// NewRoomAdapter creates a room adapter.
func NewRoomAdapter(w *world.Service, st *store.Store, tables store.Tables) *RoomAdapter {
	return &RoomAdapter{world: w, store: st, tables: tables}
}

// Kind returns the unique name of this adapter.
func (a *RoomAdapter) Kind() string {
	return world.KindRooms
}

// LoadDesired normalizes the authored documents into rooms indexed by ID.
func (a *RoomAdapter) LoadDesired(ctx context.Context) (map[string]reconcile.Record, error) {
	rooms, _, err := a.world.DesiredRooms(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Record, len(rooms))
	for _, room := range rooms {
		index[strconv.FormatInt(room.RoomID, 10)] = room
	}
	return index, nil
}

// LoadActual scans the rooms table into rooms indexed by ID.
func (a *RoomAdapter) LoadActual(ctx context.Context) (map[string]reconcile.Record, error) {
	var rooms []models.Room
	if err := a.store.Scan(ctx, a.tables.Rooms, &rooms); err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Record, len(rooms))
	for _, room := range rooms {
		index[strconv.FormatInt(room.RoomID, 10)] = room
	}
	return index, nil
}

// Compare reports field drift between an authored room and its stored row.
func (a *RoomAdapter) Compare(desired, actual reconcile.Record) []string {
	return compareRooms(desired.(models.Room), actual.(models.Room))
}

// Put replaces the stored room with the authored one.
func (a *RoomAdapter) Put(ctx context.Context, key string, rec reconcile.Record) error {
	return a.store.Put(ctx, a.tables.Rooms, rec)
}

// Delete removes a room row.
func (a *RoomAdapter) Delete(ctx context.Context, key string) error {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid room key %q: %w", key, err)
	}
	return a.store.Delete(ctx, a.tables.Rooms, store.NumKey("RoomID", id))
}

// PutBatch writes all rooms in batched store calls.
func (a *RoomAdapter) PutBatch(ctx context.Context, recs []reconcile.Record) error {
	return a.store.BatchPut(ctx, a.tables.Rooms, asItems(recs))
}

// ExitAdapter reconciles authored exit records against the exits table.
type ExitAdapter struct {
	world  *world.Service
	store  *store.Store
	tables store.Tables
}

// NewExitAdapter creates an exit adapter.
func NewExitAdapter(w *world.Service, st *store.Store, tables store.Tables) *ExitAdapter {
	return &ExitAdapter{world: w, store: st, tables: tables}
}

// Kind returns the unique name of this adapter.
func (a *ExitAdapter) Kind() string {
	return world.KindExits
}

// LoadDesired normalizes the authored documents into exits indexed by
// exit ID. Exits embedded in rooms and exits from a standalone document
// land in the same index; on a shared ID the standalone document wins.
func (a *ExitAdapter) LoadDesired(ctx context.Context) (map[string]reconcile.Record, error) {
	_, exits, err := a.world.DesiredRooms(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Record, len(exits))
	for _, exit := range exits {
		index[exit.ExitID] = exit
	}
	return index, nil
}

// LoadActual scans the exits table into exits indexed by exit ID.
func (a *ExitAdapter) LoadActual(ctx context.Context) (map[string]reconcile.Record, error) {
	var exits []models.Exit
	if err := a.store.Scan(ctx, a.tables.Exits, &exits); err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Record, len(exits))
	for _, exit := range exits {
		index[exit.ExitID] = exit
	}
	return index, nil
}

// Compare reports field drift between an authored exit and its stored row.
func (a *ExitAdapter) Compare(desired, actual reconcile.Record) []string {
	return compareExits(desired.(models.Exit), actual.(models.Exit))
}

// Put replaces the stored exit with the authored one.
func (a *ExitAdapter) Put(ctx context.Context, key string, rec reconcile.Record) error {
	return a.store.Put(ctx, a.tables.Exits, rec)
}

// Delete removes an exit row.
func (a *ExitAdapter) Delete(ctx context.Context, key string) error {
	return a.store.Delete(ctx, a.tables.Exits, store.StrKey("ExitID", key))
}

// PutBatch writes all exits in batched store calls.
func (a *ExitAdapter) PutBatch(ctx context.Context, recs []reconcile.Record) error {
	return a.store.BatchPut(ctx, a.tables.Exits, asItems(recs))
}

// ArchetypeAdapter reconciles authored archetypes against the archetypes
// table.
type ArchetypeAdapter struct {
	world  *world.Service
	store  *store.Store
	tables store.Tables
}

// NewArchetypeAdapter creates an archetype adapter.
func NewArchetypeAdapter(w *world.Service, st *store.Store, tables store.Tables) *ArchetypeAdapter {
	return &ArchetypeAdapter{world: w, store: st, tables: tables}
}

// Kind returns the unique name of this adapter.
func (a *ArchetypeAdapter) Kind() string {
	return world.KindArchetypes
}

// LoadDesired normalizes the authored document into archetypes indexed by
// name.
func (a *ArchetypeAdapter) LoadDesired(ctx context.Context) (map[string]reconcile.Record, error) {
	archetypes, err := a.world.DesiredArchetypes(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Record, len(archetypes))
	for _, archetype := range archetypes {
		index[archetype.ArchetypeName] = archetype
	}
	return index, nil
}

// LoadActual scans the archetypes table into archetypes indexed by name.
func (a *ArchetypeAdapter) LoadActual(ctx context.Context) (map[string]reconcile.Record, error) {
	var archetypes []models.Archetype
	if err := a.store.Scan(ctx, a.tables.Archetypes, &archetypes); err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Record, len(archetypes))
	for _, archetype := range archetypes {
		index[archetype.ArchetypeName] = archetype
	}
	return index, nil
}

// Compare reports field drift between an authored archetype and its
// stored row.
func (a *ArchetypeAdapter) Compare(desired, actual reconcile.Record) []string {
	return compareArchetypes(desired.(models.Archetype), actual.(models.Archetype))
}

// Put replaces the stored archetype with the authored one.
func (a *ArchetypeAdapter) Put(ctx context.Context, key string, rec reconcile.Record) error {
	return a.store.Put(ctx, a.tables.Archetypes, rec)
}

// Delete removes an archetype row.
func (a *ArchetypeAdapter) Delete(ctx context.Context, key string) error {
	return a.store.Delete(ctx, a.tables.Archetypes, store.StrKey("ArchetypeName", key))
}

// PutBatch writes all archetypes in batched store calls.
func (a *ArchetypeAdapter) PutBatch(ctx context.Context, recs []reconcile.Record) error {
	return a.store.BatchPut(ctx, a.tables.Archetypes, asItems(recs))
}

// PrototypeAdapter reconciles authored item prototypes against the
// prototypes table.
type PrototypeAdapter struct {
	world  *world.Service
	store  *store.Store
	tables store.Tables
}

// NewPrototypeAdapter creates a prototype adapter.
func NewPrototypeAdapter(w *world.Service, st *store.Store, tables store.Tables) *PrototypeAdapter {
	return &PrototypeAdapter{world: w, store: st, tables: tables}
}

// Kind returns the unique name of this adapter.
func (a *PrototypeAdapter) Kind() string {
	return world.KindPrototypes
}

// LoadDesired normalizes the authored document into prototypes indexed by
// prototype ID.
func (a *PrototypeAdapter) LoadDesired(ctx context.Context) (map[string]reconcile.Record, error) {
	prototypes, err := a.world.DesiredPrototypes(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Record, len(prototypes))
	for _, prototype := range prototypes {
		index[prototype.PrototypeID] = prototype
	}
	return index, nil
}

// LoadActual scans the prototypes table into prototypes indexed by
// prototype ID.
func (a *PrototypeAdapter) LoadActual(ctx context.Context) (map[string]reconcile.Record, error) {
	var prototypes []models.Prototype
	if err := a.store.Scan(ctx, a.tables.Prototypes, &prototypes); err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Record, len(prototypes))
	for _, prototype := range prototypes {
		index[prototype.PrototypeID] = prototype
	}
	return index, nil
}

// Compare reports field drift between an authored prototype and its
// stored row.
func (a *PrototypeAdapter) Compare(desired, actual reconcile.Record) []string {
	return comparePrototypes(desired.(models.Prototype), actual.(models.Prototype))
}

// Put replaces the stored prototype with the authored one.
func (a *PrototypeAdapter) Put(ctx context.Context, key string, rec reconcile.Record) error {
	return a.store.Put(ctx, a.tables.Prototypes, rec)
}

// Delete removes a prototype row.
func (a *PrototypeAdapter) Delete(ctx context.Context, key string) error {
	return a.store.Delete(ctx, a.tables.Prototypes, store.StrKey("PrototypeID", key))
}

// PutBatch writes all prototypes in batched store calls.
func (a *PrototypeAdapter) PutBatch(ctx context.Context, recs []reconcile.Record) error {
	return a.store.BatchPut(ctx, a.tables.Prototypes, asItems(recs))
}

// Specs returns one reconcile spec per record kind, in load order.
func Specs(w *world.Service, st *store.Store, tables store.Tables, ttl time.Duration) []*reconcile.Spec {
	specs := make([]*reconcile.Spec, 0, len(world.Kinds()))
	for _, kind := range world.Kinds() {
		specs = append(specs, SpecFor(kind, w, st, tables, ttl))
	}
	return specs
}

// SpecFor returns the reconcile spec for one record kind, or nil when the
// kind is unknown.
func SpecFor(kind string, w *world.Service, st *store.Store, tables store.Tables, ttl time.Duration) *reconcile.Spec {
	switch kind {
	case world.KindRooms:
		return &reconcile.Spec{Adapter: NewRoomAdapter(w, st, tables), CacheTTL: ttl}
	case world.KindExits:
		return &reconcile.Spec{Adapter: NewExitAdapter(w, st, tables), CacheTTL: ttl}
	case world.KindArchetypes:
		return &reconcile.Spec{Adapter: NewArchetypeAdapter(w, st, tables), CacheTTL: ttl}
	case world.KindPrototypes:
		return &reconcile.Spec{Adapter: NewPrototypeAdapter(w, st, tables), CacheTTL: ttl}
	default:
		return nil
	}
}

// asItems widens records for the store's batch writer.
func asItems(recs []reconcile.Record) []any {
	items := make([]any, len(recs))
	for i, rec := range recs {
		items[i] = rec
	}
	return items
}
