package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"world-manager/core/num"
	"world-manager/core/reconcile"
	"world-manager/core/source"
	"world-manager/core/store"
	"world-manager/core/store/storetest"
	"world-manager/feature/world"
	"world-manager/feature/world/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const keepRooms = `{
	"rooms": {
		"1": {"area": "keep", "title": "Hallway", "description": "A long hallway.", "exits": []},
		"2": {"area": "keep", "title": "Vault", "description": "A dusty vault.", "exits": [
			{"exit_name": "East", "visible": true, "target_room_id": 1}
		]}
	}
}`

const keepArchetypes = `{
	"archetypes": {
		"Warrior": {
			"Description": "Strong and direct.",
			"Attributes": {"Strength": 12.5, "Agility": 4},
			"Abilities": {"Bash": 3}
		}
	}
}`

const keepPrototypes = `{
	"itemPrototypes": [
		{"PrototypeID": "torch-01", "Name": "Torch", "Description": "A burning torch.",
		 "Mass": 0.5, "Value": 2, "Stackable": true, "MaxStack": 5}
	]
}`

func keepDocs() map[string]string {
	return map[string]string{
		"rooms.json":      keepRooms,
		"archetypes.json": keepArchetypes,
		"prototypes.json": keepPrototypes,
	}
}

func newTestWorld(t *testing.T, docs map[string]string) (*world.Service, *store.Store, store.Tables, *storetest.Fake) {
	t.Helper()

	dir := t.TempDir()
	for name, body := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	fake := storetest.New()
	fake.CreateTable("rooms", "RoomID")
	fake.CreateTable("exits", "ExitID")
	fake.CreateTable("archetypes", "ArchetypeName")
	fake.CreateTable("prototypes", "PrototypeID")
	fake.CreateTable("items", "ItemID")

	tables := store.Tables{
		Rooms:      "rooms",
		Exits:      "exits",
		Archetypes: "archetypes",
		Prototypes: "prototypes",
		Items:      "items",
	}
	cfg := world.Config{
		Validation:    world.PolicyLenient,
		RoomsDoc:      "rooms.json",
		ExitsDoc:      "exits.json",
		ArchetypesDoc: "archetypes.json",
		PrototypesDoc: "prototypes.json",
	}

	st := store.New(fake, zap.NewNop())
	svc := world.NewService(st, tables, source.NewFileSource(dir), cfg, zap.NewNop())
	return svc, st, tables, fake
}

func mustDecimal(t *testing.T, s string) num.Decimal {
	t.Helper()
	d, err := num.FromString(s)
	require.NoError(t, err)
	return d
}

func TestRoomAdapter_PlanAndApply(t *testing.T) {
	svc, st, tables, fake := newTestWorld(t, keepDocs())
	ctx := context.Background()

	// Room 1 drifted, room 2 absent, room 99 unknown to the documents.
	require.NoError(t, st.Put(ctx, tables.Rooms, models.Room{
		RoomID: 1, Area: "keep", Title: "Corridor", Description: "A long hallway.",
	}))
	require.NoError(t, st.Put(ctx, tables.Rooms, models.Room{
		RoomID: 99, Area: "keep", Title: "Oubliette", Description: "Nobody remembers digging this.",
	}))

	spec := SpecFor(world.KindRooms, svc, st, tables, 0)
	require.NotNil(t, spec)

	plan, err := reconcile.ReconcileWithPlan(ctx, spec, reconcile.Options{DoSync: true, DoPurge: true})
	require.NoError(t, err)

	assert.Equal(t, "rooms", plan.Kind)
	assert.Equal(t, 3, plan.Summary.Total)
	assert.Equal(t, 1, plan.Summary.MissingStore)
	assert.Equal(t, 1, plan.Summary.MissingDocument)
	assert.Equal(t, 1, plan.Summary.Mismatched)
	assert.Equal(t, 2, plan.Summary.PutActions)
	assert.Equal(t, 1, plan.Summary.DeleteActions)

	resultMap := make(map[string]reconcile.Result)
	for _, r := range plan.Results {
		resultMap[r.Key] = r
	}
	require.Len(t, resultMap["1"].Mismatch, 1)
	assert.Equal(t, "Title: doc='Hallway' store='Corridor'", resultMap["1"].Mismatch[0])

	executed, err := reconcile.ApplyPlan(ctx, spec, plan, reconcile.Options{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 3, executed)

	assert.Equal(t, 2, fake.Len("rooms"))
	assert.False(t, fake.Has("rooms", "99"))

	var repaired models.Room
	require.NoError(t, st.Get(ctx, tables.Rooms, store.NumKey("RoomID", 1), &repaired))
	assert.Equal(t, "Hallway", repaired.Title)

	var restored models.Room
	require.NoError(t, st.Get(ctx, tables.Rooms, store.NumKey("RoomID", 2), &restored))
	assert.Equal(t, "Vault", restored.Title)
	assert.Equal(t, []string{"2#East"}, restored.ExitIDs)
}

func TestRoomAdapter_RuntimeItemsAreNotDrift(t *testing.T) {
	svc, st, tables, _ := newTestWorld(t, keepDocs())
	ctx := context.Background()

	// The stored hallway matches its document except for two items a
	// player dropped. The documents author no item list for it.
	require.NoError(t, st.Put(ctx, tables.Rooms, models.Room{
		RoomID: 1, Area: "keep", Title: "Hallway", Description: "A long hallway.",
		ItemIDs: []string{"item-a", "item-b"},
	}))

	spec := SpecFor(world.KindRooms, svc, st, tables, 0)
	result, err := reconcile.ReconcileOne(ctx, spec, "1")
	require.NoError(t, err)

	assert.True(t, result.InDocument)
	assert.True(t, result.InStore)
	assert.Empty(t, result.Mismatch)
	assert.True(t, result.Complete())
}

func TestExitAdapter_PlanAndApply(t *testing.T) {
	svc, st, tables, fake := newTestWorld(t, keepDocs())
	ctx := context.Background()

	// The stored exit points the right way but went invisible; a second
	// exit has no document behind it.
	require.NoError(t, st.Put(ctx, tables.Exits, models.Exit{
		ExitID: "2#East", RoomID: 2, Direction: "East", TargetRoom: 1, Visible: false,
	}))
	require.NoError(t, st.Put(ctx, tables.Exits, models.Exit{
		ExitID: "9#North", RoomID: 9, Direction: "North", TargetRoom: 1, Visible: true,
	}))

	spec := SpecFor(world.KindExits, svc, st, tables, 0)
	plan, err := reconcile.ReconcileWithPlan(ctx, spec, reconcile.Options{DoSync: true, DoPurge: true})
	require.NoError(t, err)

	assert.Equal(t, 1, plan.Summary.Mismatched)
	assert.Equal(t, 1, plan.Summary.MissingDocument)
	assert.Equal(t, 1, plan.Summary.PutActions)
	assert.Equal(t, 1, plan.Summary.DeleteActions)

	resultMap := make(map[string]reconcile.Result)
	for _, r := range plan.Results {
		resultMap[r.Key] = r
	}
	require.Len(t, resultMap["2#East"].Mismatch, 1)
	assert.Equal(t, "Visible: doc=true store=false", resultMap["2#East"].Mismatch[0])

	executed, err := reconcile.ApplyPlan(ctx, spec, plan, reconcile.Options{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, executed)

	assert.False(t, fake.Has("exits", "9#North"))

	var repaired models.Exit
	require.NoError(t, st.Get(ctx, tables.Exits, store.StrKey("ExitID", "2#East"), &repaired))
	assert.True(t, repaired.Visible)
}

func TestArchetypeAdapter_DecimalEquivalence(t *testing.T) {
	svc, st, tables, _ := newTestWorld(t, keepDocs())
	ctx := context.Background()

	// Trailing zeros are not drift: 12.50 and 12.5 are the same number.
	require.NoError(t, st.Put(ctx, tables.Archetypes, models.Archetype{
		ArchetypeName: "Warrior",
		Description:   "Strong and direct.",
		Attributes: map[string]num.Decimal{
			"Strength": mustDecimal(t, "12.50"),
			"Agility":  num.FromInt(4),
		},
		Abilities: map[string]num.Decimal{"Bash": num.FromInt(3)},
	}))

	spec := SpecFor(world.KindArchetypes, svc, st, tables, 0)
	result, err := reconcile.ReconcileOne(ctx, spec, "Warrior")
	require.NoError(t, err)
	assert.True(t, result.Complete())
}

func TestArchetypeAdapter_AttributeDrift(t *testing.T) {
	svc, st, tables, _ := newTestWorld(t, keepDocs())
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, tables.Archetypes, models.Archetype{
		ArchetypeName: "Warrior",
		Description:   "Strong and direct.",
		Attributes: map[string]num.Decimal{
			"Strength": num.FromInt(9),
			"Agility":  num.FromInt(4),
		},
		Abilities: map[string]num.Decimal{"Bash": num.FromInt(3)},
	}))

	spec := SpecFor(world.KindArchetypes, svc, st, tables, 0)
	result, err := reconcile.ReconcileOne(ctx, spec, "Warrior")
	require.NoError(t, err)

	require.Len(t, result.Mismatch, 1)
	assert.Contains(t, result.Mismatch[0], "Attributes:")
	assert.Contains(t, result.Mismatch[0], "Strength:12.5")
}

func TestPrototypeAdapter_MassDrift(t *testing.T) {
	svc, st, tables, _ := newTestWorld(t, keepDocs())
	ctx := context.Background()

	drifted := models.Prototype{
		PrototypeID: "torch-01",
		Name:        "Torch",
		Description: "A burning torch.",
		Mass:        mustDecimal(t, "0.75"),
		Value:       num.FromInt(2),
		Stackable:   true,
		MaxStack:    num.FromInt(5),
		CanPickUp:   true, // normalization's default for unauthored prototypes
	}
	require.NoError(t, st.Put(ctx, tables.Prototypes, drifted))

	spec := SpecFor(world.KindPrototypes, svc, st, tables, 0)
	result, err := reconcile.ReconcileOne(ctx, spec, "torch-01")
	require.NoError(t, err)

	require.Len(t, result.Mismatch, 1)
	assert.Equal(t, "Mass: doc=0.5 store=0.75", result.Mismatch[0])
}

func TestSpecs_CoverEveryKind(t *testing.T) {
	svc, st, tables, _ := newTestWorld(t, keepDocs())

	specs := Specs(svc, st, tables, 0)
	require.Len(t, specs, 4)

	kinds := make([]string, 0, len(specs))
	for _, spec := range specs {
		kinds = append(kinds, spec.Adapter.Kind())
	}
	assert.Equal(t, world.Kinds(), kinds)

	assert.Nil(t, SpecFor("wardrobes", svc, st, tables, 0))
}
