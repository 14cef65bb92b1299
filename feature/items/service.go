package items

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"world-manager/core/num"
	"world-manager/core/store"
	"world-manager/core/utils"
	"world-manager/feature/world/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service mints items from prototypes and attaches them to rooms.
type Service struct {
	store  *store.Store
	tables store.Tables
	logger *zap.Logger
}

// NewService creates a new items service.
func NewService(st *store.Store, tables store.Tables, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		tables: tables,
		logger: logger,
	}
}

// CreateFromPrototype mints a new item from a prototype. Every template
// field is copied; the instance fields are forced: a fresh ItemID,
// Quantity 1 and IsWorn false. Contents start as a copy of the
// prototype's declared default contents. Deterministic except for the
// generated id.
func CreateFromPrototype(proto models.Prototype) models.Item {
	name := proto.Name
	if name == "" {
		name = "Unnamed Item"
	}

	return models.Item{
		ItemID:      uuid.NewString(),
		PrototypeID: proto.PrototypeID,
		Name:        name,
		Description: proto.Description,
		Mass:        proto.Mass,
		Value:       proto.Value,
		Stackable:   proto.Stackable,
		MaxStack:    proto.MaxStack,
		Quantity:    num.One(),
		Wearable:    proto.Wearable,
		WornOn:      slices.Clone(proto.WornOn),
		Verbs:       maps.Clone(proto.Verbs),
		Overrides:   maps.Clone(proto.Overrides),
		TraitMods:   maps.Clone(proto.TraitMods),
		Container:   proto.Container,
		Contents:    slices.Clone(proto.Contents),
		IsWorn:      false,
		CanPickUp:   proto.CanPickUp,
		Metadata:    maps.Clone(proto.Metadata),
	}
}

// Attach links a minted item into a room. It is a two-step write against
// a store with no cross-table transactions: the item row goes in first,
// then the room's item-reference list is rewritten. If the room step
// cannot complete, the item write is compensated with a delete. Attach
// succeeds only when the item row exists and the room's list carries its
// id at return time.
func (s *Service) Attach(ctx context.Context, item models.Item, roomID int64) (AttachResult, error) {
	result := AttachResult{State: StateCreated, Item: item}

	if err := s.store.Put(ctx, s.tables.Items, item); err != nil {
		result.State = StateFailed
		result.Err = fmt.Errorf("failed to store item %s: %w", item.ItemID, err)
		s.logger.Error("Item write failed, nothing to roll back",
			zap.String("item", item.ItemID),
			zap.Error(err),
		)
		return result, result.Err
	}

	// Fresh read; the room's list may have moved since any earlier scan.
	var current struct {
		ItemIDs any `dynamodbav:"ItemID"`
	}
	if err := s.store.Get(ctx, s.tables.Rooms, store.NumKey("RoomID", roomID), &current); err != nil {
		return s.rollback(ctx, result, fmt.Errorf("failed to read room %d: %w", roomID, err))
	}

	// Older tools wrote scalar ItemID attributes; coerce before appending.
	ids := utils.ToStringSlice(current.ItemIDs)
	ids = append(ids, item.ItemID)

	// The list is written back unconditionally, so concurrent attaches to
	// the same room race and the last writer wins. Known and accepted.
	sets := map[string]any{"ItemID": ids}
	if err := s.store.Update(ctx, s.tables.Rooms, store.NumKey("RoomID", roomID), sets, store.Upsert); err != nil {
		return s.rollback(ctx, result, fmt.Errorf("failed to update room %d: %w", roomID, err))
	}

	result.State = StateAttached
	s.logger.Info("Attached item to room",
		zap.String("item", item.ItemID),
		zap.String("prototype", item.PrototypeID),
		zap.Int64("room", roomID),
	)
	return result, nil
}

// rollback compensates a stored item whose room step failed. A failed
// delete leaves an orphaned item row behind; that end state is reported
// with both errors and not retried.
func (s *Service) rollback(ctx context.Context, result AttachResult, reason error) (AttachResult, error) {
	result.State = StateRollingBack
	result.Err = reason
	s.logger.Warn("Rolling back item write",
		zap.String("item", result.Item.ItemID),
		zap.Error(reason),
	)

	if err := s.store.Delete(ctx, s.tables.Items, store.StrKey("ItemID", result.Item.ItemID)); err != nil {
		result.State = StateOrphanedItem
		result.RollbackErr = err
		s.logger.Error("Rollback failed, item row left orphaned",
			zap.String("item", result.Item.ItemID),
			zap.Error(err),
		)
		return result, fmt.Errorf("%w (rollback also failed: %v)", reason, err)
	}

	result.State = StateFailed
	s.logger.Info("Rolled back item write", zap.String("item", result.Item.ItemID))
	return result, reason
}

// SpawnIntoRoom mints an item from a stored prototype and attaches it to
// a room. Nothing is written when the prototype does not exist.
func (s *Service) SpawnIntoRoom(ctx context.Context, prototypeID string, roomID int64) (AttachResult, error) {
	var proto models.Prototype
	if err := s.store.Get(ctx, s.tables.Prototypes, store.StrKey("PrototypeID", prototypeID), &proto); err != nil {
		return AttachResult{}, fmt.Errorf("failed to load prototype %s: %w", prototypeID, err)
	}

	item := CreateFromPrototype(proto)
	return s.Attach(ctx, item, roomID)
}

// Item returns one stored item.
func (s *Service) Item(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	if err := s.store.Get(ctx, s.tables.Items, store.StrKey("ItemID", id), &item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}
