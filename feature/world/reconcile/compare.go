package reconcile

import (
	"fmt"
	"maps"
	"slices"

	"world-manager/core/num"
	"world-manager/feature/world/models"
)

// compareRooms reports drift between an authored room and its stored row.
// Item lists are compared only when the document authors one; items
// attached at runtime are not drift.
func compareRooms(doc, row models.Room) []string {
	var mismatches []string

	if doc.Area != row.Area {
		mismatches = append(mismatches, fmt.Sprintf("Area: doc='%s' store='%s'", doc.Area, row.Area))
	}
	if doc.Title != row.Title {
		mismatches = append(mismatches, fmt.Sprintf("Title: doc='%s' store='%s'", doc.Title, row.Title))
	}
	if doc.Description != row.Description {
		mismatches = append(mismatches, fmt.Sprintf("Description: doc='%s' store='%s'", doc.Description, row.Description))
	}
	if !slices.Equal(doc.ExitIDs, row.ExitIDs) {
		mismatches = append(mismatches, fmt.Sprintf("ExitID: doc=%v store=%v", doc.ExitIDs, row.ExitIDs))
	}
	if len(doc.ItemIDs) > 0 && !slices.Equal(doc.ItemIDs, row.ItemIDs) {
		mismatches = append(mismatches, fmt.Sprintf("ItemID: doc=%v store=%v", doc.ItemIDs, row.ItemIDs))
	}

	return mismatches
}

// compareExits reports drift between an authored exit and its stored row.
func compareExits(doc, row models.Exit) []string {
	var mismatches []string

	if doc.RoomID != row.RoomID {
		mismatches = append(mismatches, fmt.Sprintf("RoomID: doc=%d store=%d", doc.RoomID, row.RoomID))
	}
	if doc.Direction != row.Direction {
		mismatches = append(mismatches, fmt.Sprintf("Direction: doc='%s' store='%s'", doc.Direction, row.Direction))
	}
	if doc.TargetRoom != row.TargetRoom {
		mismatches = append(mismatches, fmt.Sprintf("TargetRoom: doc=%d store=%d", doc.TargetRoom, row.TargetRoom))
	}
	if doc.Visible != row.Visible {
		mismatches = append(mismatches, fmt.Sprintf("Visible: doc=%v store=%v", doc.Visible, row.Visible))
	}

	return mismatches
}

// compareArchetypes reports drift between an authored archetype and its
// stored row. Numeric maps compare by value, so 12 and 12.0 agree.
func compareArchetypes(doc, row models.Archetype) []string {
	var mismatches []string

	if doc.Description != row.Description {
		mismatches = append(mismatches, fmt.Sprintf("Description: doc='%s' store='%s'", doc.Description, row.Description))
	}
	if !maps.EqualFunc(doc.Attributes, row.Attributes, num.Decimal.Equal) {
		mismatches = append(mismatches, fmt.Sprintf("Attributes: doc=%v store=%v", doc.Attributes, row.Attributes))
	}
	if !maps.EqualFunc(doc.Abilities, row.Abilities, num.Decimal.Equal) {
		mismatches = append(mismatches, fmt.Sprintf("Abilities: doc=%v store=%v", doc.Abilities, row.Abilities))
	}

	return mismatches
}

// comparePrototypes reports drift between an authored prototype and its
// stored row.
func comparePrototypes(doc, row models.Prototype) []string {
	var mismatches []string

	if doc.Name != row.Name {
		mismatches = append(mismatches, fmt.Sprintf("Name: doc='%s' store='%s'", doc.Name, row.Name))
	}
	if doc.Description != row.Description {
		mismatches = append(mismatches, fmt.Sprintf("Description: doc='%s' store='%s'", doc.Description, row.Description))
	}
	if !doc.Mass.Equal(row.Mass) {
		mismatches = append(mismatches, fmt.Sprintf("Mass: doc=%v store=%v", doc.Mass, row.Mass))
	}
	if !doc.Value.Equal(row.Value) {
		mismatches = append(mismatches, fmt.Sprintf("Value: doc=%v store=%v", doc.Value, row.Value))
	}
	if doc.Stackable != row.Stackable {
		mismatches = append(mismatches, fmt.Sprintf("Stackable: doc=%v store=%v", doc.Stackable, row.Stackable))
	}
	if !doc.MaxStack.Equal(row.MaxStack) {
		mismatches = append(mismatches, fmt.Sprintf("MaxStack: doc=%v store=%v", doc.MaxStack, row.MaxStack))
	}
	if doc.Wearable != row.Wearable {
		mismatches = append(mismatches, fmt.Sprintf("Wearable: doc=%v store=%v", doc.Wearable, row.Wearable))
	}
	if !slices.Equal(doc.WornOn, row.WornOn) {
		mismatches = append(mismatches, fmt.Sprintf("WornOn: doc=%v store=%v", doc.WornOn, row.WornOn))
	}
	if !maps.Equal(doc.Verbs, row.Verbs) {
		mismatches = append(mismatches, fmt.Sprintf("Verbs: doc=%v store=%v", doc.Verbs, row.Verbs))
	}
	if !maps.Equal(doc.Overrides, row.Overrides) {
		mismatches = append(mismatches, fmt.Sprintf("Overrides: doc=%v store=%v", doc.Overrides, row.Overrides))
	}
	if !maps.EqualFunc(doc.TraitMods, row.TraitMods, num.Decimal.Equal) {
		mismatches = append(mismatches, fmt.Sprintf("TraitMods: doc=%v store=%v", doc.TraitMods, row.TraitMods))
	}
	if doc.Container != row.Container {
		mismatches = append(mismatches, fmt.Sprintf("Container: doc=%v store=%v", doc.Container, row.Container))
	}
	if !slices.Equal(doc.Contents, row.Contents) {
		mismatches = append(mismatches, fmt.Sprintf("Contents: doc=%v store=%v", doc.Contents, row.Contents))
	}
	if doc.CanPickUp != row.CanPickUp {
		mismatches = append(mismatches, fmt.Sprintf("CanPickUp: doc=%v store=%v", doc.CanPickUp, row.CanPickUp))
	}
	if !maps.Equal(doc.Metadata, row.Metadata) {
		mismatches = append(mismatches, fmt.Sprintf("Metadata: doc=%v store=%v", doc.Metadata, row.Metadata))
	}

	return mismatches
}
