package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"world-manager/core/num"
	"world-manager/core/utils"
	"world-manager/feature/world/formats"
)

// Policy controls how records with missing fields are treated. Lenient
// fills the defaults the original authoring tools assumed; Strict rejects
// the record instead.
type Policy struct {
	Strict bool
}

type required struct {
	name    string
	aliases []string
}

func (p Policy) check(kind string, f formats.Fields, reqs []required) error {
	if !p.Strict {
		return nil
	}
	for _, r := range reqs {
		if !f.Has(r.aliases...) {
			return fmt.Errorf("%s record is missing required field %s", kind, r.name)
		}
	}
	return nil
}

// parseID parses an integer identity without the tolerant zero fallback of
// the utils converters: a value that does not parse is a missing identity,
// not id 0.
func parseID(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
		return 0, false
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// lookupID resolves an integer identity from the record fields or, for
// keyed collections, from the record's map key.
func lookupID(f formats.Fields, key string, aliases ...string) (int64, bool) {
	if raw, ok := f.Lookup(aliases...); ok {
		return parseID(raw)
	}
	if key != "" {
		return parseID(key)
	}
	return 0, false
}

func stringField(f formats.Fields, aliases ...string) string {
	raw, ok := f.Lookup(aliases...)
	if !ok {
		return ""
	}
	return utils.ToString(raw)
}

func boolField(f formats.Fields, def bool, aliases ...string) bool {
	raw, ok := f.Lookup(aliases...)
	if !ok {
		return def
	}
	return utils.ToBool(raw)
}

func stringSliceField(f formats.Fields, aliases ...string) []string {
	raw, _ := f.Lookup(aliases...)
	s := utils.ToStringSlice(raw)
	if s == nil {
		s = []string{}
	}
	return s
}

func stringMapField(f formats.Fields, aliases ...string) map[string]string {
	raw, _ := f.Lookup(aliases...)
	m := utils.ToStringMap(raw)
	if m == nil {
		m = map[string]string{}
	}
	return m
}

func decimalField(f formats.Fields, def num.Decimal, aliases ...string) (num.Decimal, error) {
	raw, ok := f.Lookup(aliases...)
	if !ok {
		return def, nil
	}
	return num.FromAny(raw)
}

func decimalMap(v any) (map[string]num.Decimal, error) {
	if v == nil {
		return map[string]num.Decimal{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a map of numbers, got %T", v)
	}
	out := make(map[string]num.Decimal, len(m))
	for k, raw := range m {
		d, err := num.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", k, err)
		}
		out[k] = d
	}
	return out, nil
}

// NormalizeRoom builds a Room and its embedded exits from one document
// record. Exits may be nested under the room (keyed by direction or as an
// array, depending on the authoring era) or referenced by id through the
// room's exit list; both forms are accepted. Room ids are positive
// integers.
func NormalizeRoom(entry formats.Entry, policy Policy) (Room, []Exit, error) {
	f := entry.Fields

	id, ok := lookupID(f, entry.Key, "RoomID", "id")
	if !ok {
		return Room{}, nil, fmt.Errorf("room: %w", ErrMissingIdentity)
	}

	if err := policy.check("room", f, []required{
		{"Area", []string{"Area"}},
		{"Title", []string{"Title"}},
		{"Description", []string{"Description", "narrative"}},
	}); err != nil {
		return Room{}, nil, err
	}

	room := Room{
		RoomID:      id,
		Area:        stringField(f, "Area"),
		Title:       stringField(f, "Title"),
		Description: stringField(f, "Description", "narrative"),
	}

	if raw, ok := f.Lookup("ExitID", "ExitIDs"); ok {
		room.ExitIDs = utils.ToStringSlice(raw)
	}
	if raw, ok := f.Lookup("ItemID", "ItemIDs"); ok {
		room.ItemIDs = utils.ToStringSlice(raw)
	}

	var exits []Exit
	if raw, ok := f.Lookup("Exits"); ok {
		for _, e := range formats.Collection(map[string]any{"exits": raw}, "exits") {
			exit, err := NormalizeExit(e, room.RoomID, policy)
			if err != nil {
				return Room{}, nil, fmt.Errorf("room %d: %w", room.RoomID, err)
			}
			exits = append(exits, exit)
		}
	}

	// Keep the reference list in step with the exits split off above.
	for _, exit := range exits {
		if !slices.Contains(room.ExitIDs, exit.ExitID) {
			room.ExitIDs = append(room.ExitIDs, exit.ExitID)
		}
	}

	return room, exits, nil
}

// NormalizeExit builds an Exit from one document record. roomID is the
// owning room for exits embedded in a room document; pass 0 for standalone
// exit records, which either carry their own RoomID or are back-filled by
// the loader from the rooms' reference lists.
func NormalizeExit(entry formats.Entry, roomID int64, policy Policy) (Exit, error) {
	f := entry.Fields

	if raw, ok := f.Lookup("RoomID"); ok {
		if parsed, ok := parseID(raw); ok {
			roomID = parsed
		}
	}

	// Map-keyed exit collections use the direction as the key.
	direction := stringField(f, "Direction", "exit_name")
	if direction == "" {
		direction = entry.Key
	}
	if policy.Strict && direction == "" {
		return Exit{}, fmt.Errorf("exit record is missing required field Direction")
	}

	target, hasTarget := f.Lookup("TargetRoom", "TargetRoomID")
	if policy.Strict && !hasTarget {
		return Exit{}, fmt.Errorf("exit record is missing required field TargetRoom")
	}
	var targetRoom int64
	if hasTarget {
		parsed, ok := parseID(target)
		if !ok {
			return Exit{}, fmt.Errorf("exit record has unusable TargetRoom %v", target)
		}
		targetRoom = parsed
	}

	exit := Exit{
		ExitID:     stringField(f, "ExitID", "id"),
		RoomID:     roomID,
		Direction:  direction,
		TargetRoom: targetRoom,
		Visible:    boolField(f, true, "Visible"),
	}

	if exit.ExitID == "" {
		if roomID == 0 || direction == "" {
			return Exit{}, fmt.Errorf("exit: %w", ErrMissingIdentity)
		}
		exit.ExitID = DeriveExitID(roomID, direction)
	}

	return exit, nil
}

// DeriveExitID builds the identity used for exits that are embedded in a
// room document and have no explicit id of their own. Directions keep
// their authored casing, so the id round-trips with the document.
func DeriveExitID(roomID int64, direction string) string {
	return fmt.Sprintf("%d#%s", roomID, direction)
}

// NormalizeArchetype builds an Archetype from one document record.
func NormalizeArchetype(entry formats.Entry, policy Policy) (Archetype, error) {
	f := entry.Fields

	name := stringField(f, "ArchetypeName", "name")
	if name == "" {
		name = entry.Key
	}
	if name == "" {
		return Archetype{}, fmt.Errorf("archetype: %w", ErrMissingIdentity)
	}

	if err := policy.check("archetype", f, []required{
		{"Description", []string{"Description"}},
		{"Attributes", []string{"Attributes"}},
		{"Abilities", []string{"Abilities"}},
	}); err != nil {
		return Archetype{}, err
	}

	arch := Archetype{
		ArchetypeName: name,
		Description:   stringField(f, "Description"),
	}

	rawAttrs, _ := f.Lookup("Attributes")
	attrs, err := decimalMap(rawAttrs)
	if err != nil {
		return Archetype{}, fmt.Errorf("archetype %s: attributes: %w", name, err)
	}
	arch.Attributes = attrs

	rawAbilities, _ := f.Lookup("Abilities")
	abilities, err := decimalMap(rawAbilities)
	if err != nil {
		return Archetype{}, fmt.Errorf("archetype %s: abilities: %w", name, err)
	}
	arch.Abilities = abilities

	return arch, nil
}

// NormalizePrototype builds a Prototype from one document record. Lenient
// policy fills the defaults item creation has always assumed: zero mass
// and value, max stack 1, and pickup allowed.
func NormalizePrototype(entry formats.Entry, policy Policy) (Prototype, error) {
	f := entry.Fields

	id := stringField(f, "PrototypeID", "id")
	if id == "" {
		id = entry.Key
	}
	if id == "" {
		return Prototype{}, fmt.Errorf("prototype: %w", ErrMissingIdentity)
	}

	if err := policy.check("prototype", f, []required{
		{"Name", []string{"Name"}},
		{"Description", []string{"Description"}},
		{"Mass", []string{"Mass"}},
		{"Value", []string{"Value"}},
	}); err != nil {
		return Prototype{}, err
	}

	proto := Prototype{
		PrototypeID: id,
		Name:        stringField(f, "Name"),
		Description: stringField(f, "Description"),
		Stackable:   boolField(f, false, "Stackable"),
		Wearable:    boolField(f, false, "Wearable"),
		Container:   boolField(f, false, "Container"),
		CanPickUp:   boolField(f, true, "CanPickUp"),
		WornOn:      stringSliceField(f, "WornOn"),
		Contents:    stringSliceField(f, "Contents"),
		Verbs:       stringMapField(f, "Verbs"),
		Overrides:   stringMapField(f, "Overrides"),
		Metadata:    stringMapField(f, "Metadata"),
	}

	var err error
	if proto.Mass, err = decimalField(f, num.Zero(), "Mass"); err != nil {
		return Prototype{}, fmt.Errorf("prototype %s: mass: %w", id, err)
	}
	if proto.Value, err = decimalField(f, num.Zero(), "Value"); err != nil {
		return Prototype{}, fmt.Errorf("prototype %s: value: %w", id, err)
	}
	if proto.MaxStack, err = decimalField(f, num.One(), "MaxStack"); err != nil {
		return Prototype{}, fmt.Errorf("prototype %s: max stack: %w", id, err)
	}

	rawMods, _ := f.Lookup("TraitMods")
	mods, err := decimalMap(rawMods)
	if err != nil {
		return Prototype{}, fmt.Errorf("prototype %s: trait mods: %w", id, err)
	}
	proto.TraitMods = mods

	if policy.Strict {
		for _, slot := range proto.WornOn {
			if !WearLocationSet[slot] {
				return Prototype{}, fmt.Errorf("prototype %s: unknown wear location %s", id, slot)
			}
		}
	}

	return proto, nil
}
