package world

import (
	"context"
	"errors"
	"sort"

	"world-manager/core/store"
	"world-manager/feature/world/models"

	"go.uber.org/zap"
)

// RoomView is a room with its exits joined back in, the denormalized
// shape the documents were authored in.
type RoomView struct {
	models.Room
	Exits []models.Exit `json:"Exits"`
}

// WorldView bundles the denormalized world for display.
type WorldView struct {
	Rooms      []RoomView                  `json:"rooms"`
	Archetypes map[string]models.Archetype `json:"archetypes"`
	Prototypes []models.Prototype          `json:"prototypes"`
}

// Rooms returns every room with its exits attached, ordered by RoomID.
// The two table scans are independent store calls, so the join reflects
// a recent but not necessarily atomic snapshot.
func (s *Service) Rooms(ctx context.Context) ([]RoomView, error) {
	rooms, err := s.scanRooms(ctx)
	if err != nil {
		return nil, err
	}
	exits, err := s.scanExits(ctx)
	if err != nil {
		return nil, err
	}
	return joinRooms(rooms, exits), nil
}

// Room returns one room with its exits resolved through the room's
// reference list. Missing referenced exits are logged and left out.
func (s *Service) Room(ctx context.Context, id int64) (RoomView, error) {
	var room models.Room
	if err := s.store.Get(ctx, s.tables.Rooms, store.NumKey("RoomID", id), &room); err != nil {
		return RoomView{}, err
	}

	view := RoomView{Room: room}
	for _, exitID := range room.ExitIDs {
		var exit models.Exit
		if err := s.store.Get(ctx, s.tables.Exits, store.StrKey("ExitID", exitID), &exit); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				s.logger.Warn("Room references a missing exit",
					zap.Int64("room", id),
					zap.String("exit", exitID),
				)
				continue
			}
			return RoomView{}, err
		}
		view.Exits = append(view.Exits, exit)
	}

	sortExits(view.Exits)
	return view, nil
}

// Archetypes returns the stored archetypes re-keyed by name.
func (s *Service) Archetypes(ctx context.Context) (map[string]models.Archetype, error) {
	var archetypes []models.Archetype
	if err := s.store.Scan(ctx, s.tables.Archetypes, &archetypes); err != nil {
		return nil, err
	}

	byName := make(map[string]models.Archetype, len(archetypes))
	for _, arch := range archetypes {
		byName[arch.ArchetypeName] = arch
	}
	return byName, nil
}

// Prototypes returns the stored item prototypes ordered by id.
func (s *Service) Prototypes(ctx context.Context) ([]models.Prototype, error) {
	var prototypes []models.Prototype
	if err := s.store.Scan(ctx, s.tables.Prototypes, &prototypes); err != nil {
		return nil, err
	}

	sort.Slice(prototypes, func(i, j int) bool {
		return prototypes[i].PrototypeID < prototypes[j].PrototypeID
	})
	return prototypes, nil
}

// World assembles the full denormalized view.
func (s *Service) World(ctx context.Context) (*WorldView, error) {
	rooms, err := s.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	archetypes, err := s.Archetypes(ctx)
	if err != nil {
		return nil, err
	}
	prototypes, err := s.Prototypes(ctx)
	if err != nil {
		return nil, err
	}

	return &WorldView{
		Rooms:      rooms,
		Archetypes: archetypes,
		Prototypes: prototypes,
	}, nil
}

func (s *Service) scanRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.store.Scan(ctx, s.tables.Rooms, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *Service) scanExits(ctx context.Context) ([]models.Exit, error) {
	var exits []models.Exit
	if err := s.store.Scan(ctx, s.tables.Exits, &exits); err != nil {
		return nil, err
	}
	return exits, nil
}

// joinRooms attaches exits to their rooms, first by the exit's own owner
// field, then through the rooms' reference lists for exits stored without
// an owner.
func joinRooms(rooms []models.Room, exits []models.Exit) []RoomView {
	byOwner := make(map[int64][]models.Exit, len(rooms))
	byID := make(map[string]models.Exit, len(exits))
	for _, exit := range exits {
		byOwner[exit.RoomID] = append(byOwner[exit.RoomID], exit)
		byID[exit.ExitID] = exit
	}

	views := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		view := RoomView{Room: room}
		seen := make(map[string]bool)

		for _, exit := range byOwner[room.RoomID] {
			view.Exits = append(view.Exits, exit)
			seen[exit.ExitID] = true
		}
		for _, id := range room.ExitIDs {
			if seen[id] {
				continue
			}
			if exit, ok := byID[id]; ok {
				view.Exits = append(view.Exits, exit)
				seen[id] = true
			}
		}

		sortExits(view.Exits)
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool { return views[i].RoomID < views[j].RoomID })
	return views
}

func sortExits(exits []models.Exit) {
	sort.Slice(exits, func(i, j int) bool { return exits[i].ExitID < exits[j].ExitID })
}
