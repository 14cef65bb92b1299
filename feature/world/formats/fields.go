package formats

import (
	"sort"
	"strconv"
	"strings"
)

// canon reduces a field name to its comparable form: lowercase with
// underscores removed, so RoomID, room_id and roomId all match.
func canon(k string) string {
	return strings.ReplaceAll(strings.ToLower(k), "_", "")
}

// Fields is one record's raw attributes with dialect-insensitive lookup.
type Fields map[string]any

// Lookup returns the first value whose canonical name matches one of the
// given aliases.
func (f Fields) Lookup(aliases ...string) (any, bool) {
	for _, alias := range aliases {
		want := canon(alias)
		for k, v := range f {
			if canon(k) == want {
				return v, true
			}
		}
	}
	return nil, false
}

// Has reports whether any of the aliases is present.
func (f Fields) Has(aliases ...string) bool {
	_, ok := f.Lookup(aliases...)
	return ok
}

// Entry is one record from a document collection. Key holds the map key for
// keyed collections (room ids, archetype names); it is empty for array
// collections.
type Entry struct {
	Key    string
	Fields Fields
}

// Collection extracts the named collection from a decoded document. Keyed
// maps and record arrays are both accepted; a missing collection yields nil.
func Collection(doc map[string]any, aliases ...string) []Entry {
	raw, ok := Fields(doc).Lookup(aliases...)
	if !ok {
		return nil
	}

	switch col := raw.(type) {
	case map[string]any:
		keys := make([]string, 0, len(col))
		for k := range col {
			keys = append(keys, k)
		}
		sortKeys(keys)

		entries := make([]Entry, 0, len(keys))
		for _, k := range keys {
			fields, ok := col[k].(map[string]any)
			if !ok {
				continue
			}
			entries = append(entries, Entry{Key: k, Fields: fields})
		}
		return entries
	case []any:
		entries := make([]Entry, 0, len(col))
		for _, rec := range col {
			fields, ok := rec.(map[string]any)
			if !ok {
				continue
			}
			entries = append(entries, Entry{Fields: fields})
		}
		return entries
	default:
		return nil
	}
}

// sortKeys orders numeric keys numerically and everything else lexically,
// so keyed room collections come out in id order.
func sortKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.ParseInt(keys[i], 10, 64)
		b, berr := strconv.ParseInt(keys[j], 10, 64)
		if aerr == nil && berr == nil {
			return a < b
		}
		if aerr == nil || berr == nil {
			return aerr == nil
		}
		return keys[i] < keys[j]
	})
}
