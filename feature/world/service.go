package world

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"world-manager/core/source"
	"world-manager/core/store"
	"world-manager/feature/world/formats"
	"world-manager/feature/world/models"

	"go.uber.org/zap"
)

// Entity kinds reported by a bulk load.
const (
	KindRooms      = "rooms"
	KindExits      = "exits"
	KindArchetypes = "archetypes"
	KindPrototypes = "prototypes"
)

// Kinds lists every entity kind in load order.
func Kinds() []string {
	return []string{KindRooms, KindExits, KindArchetypes, KindPrototypes}
}

// KindReport is the outcome of loading one entity kind.
type KindReport struct {
	Kind      string `json:"kind"`
	Attempted int    `json:"attempted"`
	Loaded    int    `json:"loaded"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// LoadReport sums up one bulk load. Kinds fail independently, so a report
// can mix loaded and failed kinds.
type LoadReport struct {
	Kinds []KindReport `json:"kinds"`
}

// Failed reports whether any kind failed to load.
func (r *LoadReport) Failed() bool {
	for _, k := range r.Kinds {
		if k.Error != "" {
			return true
		}
	}
	return false
}

// Kind returns the report for one entity kind.
func (r *LoadReport) Kind(name string) (KindReport, bool) {
	for _, k := range r.Kinds {
		if k.Kind == name {
			return k, true
		}
	}
	return KindReport{}, false
}

// Service loads authored world documents into the store and reassembles
// the denormalized views on the way back out.
type Service struct {
	store  *store.Store
	tables store.Tables
	source source.Loader
	cfg    Config
	logger *zap.Logger
}

// NewService creates a new world service.
func NewService(st *store.Store, tables store.Tables, src source.Loader, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		tables: tables,
		source: src,
		cfg:    cfg,
		logger: logger,
	}
}

// LoadWorld ingests the configured world documents into the store. Entity
// kinds load independently: a kind that fails is recorded in the report
// while the remaining kinds keep loading. Loads are full replaces, so
// repeating one with the same documents is idempotent.
//
// With no arguments every kind loads; otherwise only the named kinds do.
// Rooms and exits come from the same pipeline and load together when
// either is named.
func (s *Service) LoadWorld(ctx context.Context, kinds ...string) *LoadReport {
	want := func(kind string) bool {
		return len(kinds) == 0 || slices.Contains(kinds, kind)
	}

	report := &LoadReport{}
	if want(KindRooms) || want(KindExits) {
		s.loadRooms(ctx, report)
	}
	if want(KindArchetypes) {
		s.loadArchetypes(ctx, report)
	}
	if want(KindPrototypes) {
		s.loadPrototypes(ctx, report)
	}

	s.logger.Info("World load complete",
		zap.Bool("failed", report.Failed()),
		zap.String("policy", s.cfg.Validation),
	)
	return report
}

// loadRooms ingests the rooms document and the exits split off from it.
// Exits embedded in room records and exits authored in a standalone
// document both end up in the exits table; standalone exits without an
// owning RoomID get it back-filled from the rooms' reference lists.
func (s *Service) loadRooms(ctx context.Context, report *LoadReport) {
	roomsRep := KindReport{Kind: KindRooms}
	exitsRep := KindReport{Kind: KindExits}

	rooms, exits, skipped, err := s.normalizeRoomsDoc(ctx)
	roomsRep.Skipped = skipped
	if err != nil {
		roomsRep.Error = err.Error()
		s.logger.Error("Failed to read rooms document", zap.String("doc", s.cfg.RoomsDoc), zap.Error(err))
	}

	// Standalone exits document. Absence is normal for worlds that embed
	// their exits in the room records.
	if s.cfg.ExitsDoc != "" {
		standalone, skipped, err := s.normalizeExitsDoc(ctx)
		exitsRep.Skipped += skipped
		if err != nil {
			s.logger.Info("No standalone exits document", zap.String("doc", s.cfg.ExitsDoc), zap.Error(err))
		} else {
			exits = append(exits, standalone...)
		}
	}

	backfillExitOwners(rooms, exits)

	exitKeys := make([]string, len(exits))
	exitRecords := make([]any, len(exits))
	for i, exit := range exits {
		exitKeys[i] = exit.ExitID
		exitRecords[i] = exit
	}
	s.storeKind(ctx, &exitsRep, s.tables.Exits, exitKeys, exitRecords)

	if roomsRep.Error == "" {
		roomKeys := make([]string, len(rooms))
		roomRecords := make([]any, len(rooms))
		for i, room := range rooms {
			roomKeys[i] = strconv.FormatInt(room.RoomID, 10)
			roomRecords[i] = room
		}
		s.storeKind(ctx, &roomsRep, s.tables.Rooms, roomKeys, roomRecords)
	}

	report.Kinds = append(report.Kinds, roomsRep, exitsRep)
}

func (s *Service) loadArchetypes(ctx context.Context, report *LoadReport) {
	rep := KindReport{Kind: KindArchetypes}
	defer func() { report.Kinds = append(report.Kinds, rep) }()

	archetypes, skipped, err := s.normalizeArchetypesDoc(ctx)
	rep.Skipped = skipped
	if err != nil {
		rep.Error = err.Error()
		s.logger.Error("Failed to read archetypes document", zap.String("doc", s.cfg.ArchetypesDoc), zap.Error(err))
		return
	}

	keys := make([]string, len(archetypes))
	records := make([]any, len(archetypes))
	for i, arch := range archetypes {
		keys[i] = arch.ArchetypeName
		records[i] = arch
	}
	s.storeKind(ctx, &rep, s.tables.Archetypes, keys, records)
}

func (s *Service) loadPrototypes(ctx context.Context, report *LoadReport) {
	rep := KindReport{Kind: KindPrototypes}
	defer func() { report.Kinds = append(report.Kinds, rep) }()

	prototypes, skipped, err := s.normalizePrototypesDoc(ctx)
	rep.Skipped = skipped
	if err != nil {
		rep.Error = err.Error()
		s.logger.Error("Failed to read prototypes document", zap.String("doc", s.cfg.PrototypesDoc), zap.Error(err))
		return
	}

	keys := make([]string, len(prototypes))
	records := make([]any, len(prototypes))
	for i, proto := range prototypes {
		keys[i] = proto.PrototypeID
		records[i] = proto
	}
	s.storeKind(ctx, &rep, s.tables.Prototypes, keys, records)
}

// DesiredRooms returns the rooms and exits the authored documents
// currently describe, normalized exactly as a load would write them.
// Nothing is read from or written to the store.
func (s *Service) DesiredRooms(ctx context.Context) ([]models.Room, []models.Exit, error) {
	rooms, exits, _, err := s.normalizeRoomsDoc(ctx)
	if err != nil {
		return nil, nil, err
	}
	if s.cfg.ExitsDoc != "" {
		if standalone, _, err := s.normalizeExitsDoc(ctx); err == nil {
			exits = append(exits, standalone...)
		}
	}
	backfillExitOwners(rooms, exits)
	return rooms, exits, nil
}

// DesiredArchetypes returns the archetypes the authored document
// currently describes.
func (s *Service) DesiredArchetypes(ctx context.Context) ([]models.Archetype, error) {
	archetypes, _, err := s.normalizeArchetypesDoc(ctx)
	return archetypes, err
}

// DesiredPrototypes returns the item prototypes the authored document
// currently describes.
func (s *Service) DesiredPrototypes(ctx context.Context) ([]models.Prototype, error) {
	prototypes, _, err := s.normalizePrototypesDoc(ctx)
	return prototypes, err
}

// normalizeRoomsDoc reads the rooms document and splits the embedded
// exits out of each room record.
func (s *Service) normalizeRoomsDoc(ctx context.Context) (rooms []models.Room, exits []models.Exit, skipped int, err error) {
	doc, err := s.readDocument(ctx, s.cfg.RoomsDoc)
	if err != nil {
		return nil, nil, 0, err
	}

	policy := s.cfg.Policy()
	for _, entry := range formats.Collection(doc, "rooms") {
		room, embedded, err := models.NormalizeRoom(entry, policy)
		if err != nil {
			skipped++
			s.logger.Warn("Skipping unusable room record", zap.String("key", entry.Key), zap.Error(err))
			continue
		}
		rooms = append(rooms, room)
		exits = append(exits, embedded...)
	}
	return rooms, exits, skipped, nil
}

// normalizeExitsDoc reads the standalone exits document. Exits authored
// there carry no owning room; normalization leaves RoomID 0 for backfill.
func (s *Service) normalizeExitsDoc(ctx context.Context) (exits []models.Exit, skipped int, err error) {
	doc, err := s.readDocument(ctx, s.cfg.ExitsDoc)
	if err != nil {
		return nil, 0, err
	}

	policy := s.cfg.Policy()
	for _, entry := range formats.Collection(doc, "exits") {
		exit, err := models.NormalizeExit(entry, 0, policy)
		if err != nil {
			skipped++
			s.logger.Warn("Skipping unusable exit record", zap.String("key", entry.Key), zap.Error(err))
			continue
		}
		exits = append(exits, exit)
	}
	return exits, skipped, nil
}

func (s *Service) normalizeArchetypesDoc(ctx context.Context) (archetypes []models.Archetype, skipped int, err error) {
	doc, err := s.readDocument(ctx, s.cfg.ArchetypesDoc)
	if err != nil {
		return nil, 0, err
	}

	policy := s.cfg.Policy()
	for _, entry := range formats.Collection(doc, "archetypes") {
		arch, err := models.NormalizeArchetype(entry, policy)
		if err != nil {
			skipped++
			s.logger.Warn("Skipping unusable archetype record", zap.String("key", entry.Key), zap.Error(err))
			continue
		}
		archetypes = append(archetypes, arch)
	}
	return archetypes, skipped, nil
}

func (s *Service) normalizePrototypesDoc(ctx context.Context) (prototypes []models.Prototype, skipped int, err error) {
	doc, err := s.readDocument(ctx, s.cfg.PrototypesDoc)
	if err != nil {
		return nil, 0, err
	}

	policy := s.cfg.Policy()
	for _, entry := range formats.Collection(doc, "itemPrototypes", "prototypes") {
		proto, err := models.NormalizePrototype(entry, policy)
		if err != nil {
			skipped++
			s.logger.Warn("Skipping unusable prototype record", zap.String("key", entry.Key), zap.Error(err))
			continue
		}
		prototypes = append(prototypes, proto)
	}
	return prototypes, skipped, nil
}

// storeKind bulk-writes one kind's records and fills in its report.
func (s *Service) storeKind(ctx context.Context, rep *KindReport, table string, keys []string, records []any) {
	before := len(records)
	records = dedupe(rep.Kind, keys, records, s.logger)
	rep.Skipped += before - len(records)
	rep.Attempted = len(records)

	if err := s.store.BatchPut(ctx, table, records); err != nil {
		rep.Error = err.Error()
		s.logger.Error("Failed to store records",
			zap.String("kind", rep.Kind),
			zap.Int("attempted", rep.Attempted),
			zap.Error(err),
		)
		return
	}

	rep.Loaded = len(records)
	s.logger.Info("Stored records",
		zap.String("kind", rep.Kind),
		zap.Int("count", rep.Loaded),
		zap.Int("skipped", rep.Skipped),
	)
}

// readDocument fetches one document from the source and decodes it.
func (s *Service) readDocument(ctx context.Context, name string) (map[string]any, error) {
	data, err := s.source.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}
	doc, err := formats.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", name, err)
	}
	return doc, nil
}

// backfillExitOwners fills the owning RoomID on exits authored without
// one, using the rooms' exit-reference lists. Exits no room claims keep
// RoomID 0 and show up in verification as orphans.
func backfillExitOwners(rooms []models.Room, exits []models.Exit) {
	owners := make(map[string]int64)
	for _, room := range rooms {
		for _, id := range room.ExitIDs {
			owners[id] = room.RoomID
		}
	}
	for i := range exits {
		if exits[i].RoomID == 0 {
			if owner, ok := owners[exits[i].ExitID]; ok {
				exits[i].RoomID = owner
			}
		}
	}
}

// dedupe drops records whose key repeats within the batch, keeping the
// last occurrence so the final state matches sequential puts. The batch
// write API rejects duplicate keys outright; authored duplicates should
// cost a warning, not the whole kind.
func dedupe(kind string, keys []string, records []any, logger *zap.Logger) []any {
	last := make(map[string]int, len(keys))
	for i, k := range keys {
		last[k] = i
	}
	if len(last) == len(records) {
		return records
	}

	out := make([]any, 0, len(last))
	for i, rec := range records {
		if last[keys[i]] != i {
			logger.Warn("Dropping duplicate record", zap.String("kind", kind), zap.String("key", keys[i]))
			continue
		}
		out = append(out, rec)
	}
	return out
}
