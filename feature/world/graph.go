package world

import (
	"context"
	"errors"
	"sort"

	"world-manager/feature/world/models"

	"github.com/dominikbraun/graph"
	"go.uber.org/zap"
)

// VerifyReport lists the referential problems found in the stored world.
// The checks are best effort over independent table scans; nothing here
// locks the tables.
type VerifyReport struct {
	Rooms       int      `json:"rooms"`
	Exits       int      `json:"exits"`
	EntryRoom   int64    `json:"entry_room,omitempty"`
	Dangling    []string `json:"dangling_exits,omitempty"`
	Orphans     []string `json:"orphan_exits,omitempty"`
	Unreachable []int64  `json:"unreachable_rooms,omitempty"`
}

// Clean reports whether verification found no problems.
func (r VerifyReport) Clean() bool {
	return len(r.Dangling) == 0 && len(r.Orphans) == 0 && len(r.Unreachable) == 0
}

// Verify checks the stored world's connectivity: every exit should be
// owned by a room and lead to a room, and every room should be reachable
// from the entry room (the lowest RoomID).
func (s *Service) Verify(ctx context.Context) (VerifyReport, error) {
	rooms, err := s.scanRooms(ctx)
	if err != nil {
		return VerifyReport{}, err
	}
	exits, err := s.scanExits(ctx)
	if err != nil {
		return VerifyReport{}, err
	}
	return verifyWorld(rooms, exits, s.logger), nil
}

func verifyWorld(rooms []models.Room, exits []models.Exit, logger *zap.Logger) VerifyReport {
	report := VerifyReport{Rooms: len(rooms), Exits: len(exits)}

	known := make(map[int64]bool, len(rooms))
	g := graph.New(graph.IntHash, graph.Directed())
	for _, room := range rooms {
		known[room.RoomID] = true
		_ = g.AddVertex(int(room.RoomID))
	}

	sortExits(exits)
	for _, exit := range exits {
		owned := known[exit.RoomID]
		if !owned {
			report.Orphans = append(report.Orphans, exit.ExitID)
		}
		if !known[exit.TargetRoom] {
			report.Dangling = append(report.Dangling, exit.ExitID)
			continue
		}
		if !owned {
			continue
		}

		// Two rooms can be connected by more than one exit; the extra
		// edge adds nothing to reachability.
		err := g.AddEdge(int(exit.RoomID), int(exit.TargetRoom), graph.EdgeData(exit.Direction))
		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			logger.Warn("Skipping exit in connectivity graph",
				zap.String("exit", exit.ExitID),
				zap.Error(err),
			)
		}
	}

	if len(rooms) == 0 {
		return report
	}

	entry := rooms[0].RoomID
	for _, room := range rooms[1:] {
		if room.RoomID < entry {
			entry = room.RoomID
		}
	}
	report.EntryRoom = entry

	visited := make(map[int64]bool, len(rooms))
	_ = graph.DFS(g, int(entry), func(id int) bool {
		visited[int64(id)] = true
		return false
	})

	for _, room := range rooms {
		if !visited[room.RoomID] {
			report.Unreachable = append(report.Unreachable, room.RoomID)
		}
	}
	sort.Slice(report.Unreachable, func(i, j int) bool {
		return report.Unreachable[i] < report.Unreachable[j]
	})

	return report
}
