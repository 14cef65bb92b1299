package checks

import (
	"context"
	"errors"
	"fmt"

	"world-manager/core/store"
)

// TableSpec is the key schema a world table must expose.
type TableSpec struct {
	Name         string
	KeyAttribute string
	KeyType      string
}

// TableReport is the outcome of checking one table.
type TableReport struct {
	Table        string   `json:"table"`
	Status       string   `json:"status"`
	KeyAttribute string   `json:"key_attribute,omitempty"`
	KeyType      string   `json:"key_type,omitempty"`
	ItemCount    int64    `json:"item_count"`
	Problems     []string `json:"problems,omitempty"`
}

// Healthy reports whether the table exists with the expected key schema.
func (r TableReport) Healthy() bool {
	return r.Status == "ok"
}

// WorldTables returns the key schema contract for the configured tables.
// Rooms key by number; every other kind keys by string.
func WorldTables(tables store.Tables) []TableSpec {
	return []TableSpec{
		{Name: tables.Rooms, KeyAttribute: "RoomID", KeyType: "N"},
		{Name: tables.Exits, KeyAttribute: "ExitID", KeyType: "S"},
		{Name: tables.Archetypes, KeyAttribute: "ArchetypeName", KeyType: "S"},
		{Name: tables.Prototypes, KeyAttribute: "PrototypeID", KeyType: "S"},
		{Name: tables.Items, KeyAttribute: "ItemID", KeyType: "S"},
	}
}

// CheckTables verifies that each table exists and exposes the expected
// key schema.
func CheckTables(ctx context.Context, st *store.Store, specs []TableSpec) []TableReport {
	reports := make([]TableReport, 0, len(specs))
	for _, spec := range specs {
		reports = append(reports, checkTable(ctx, st, spec))
	}
	return reports
}

func checkTable(ctx context.Context, st *store.Store, spec TableSpec) TableReport {
	report := TableReport{Table: spec.Name, Status: "ok"}

	info, err := st.DescribeTable(ctx, spec.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			report.Status = "missing"
		} else {
			report.Status = "error"
		}
		report.Problems = append(report.Problems, err.Error())
		return report
	}

	report.KeyAttribute = info.KeyAttribute
	report.KeyType = info.KeyType
	report.ItemCount = info.ItemCount

	if info.KeyAttribute != spec.KeyAttribute {
		report.Problems = append(report.Problems,
			fmt.Sprintf("key attribute is %s, want %s", info.KeyAttribute, spec.KeyAttribute))
	}
	if info.KeyType != spec.KeyType {
		report.Problems = append(report.Problems,
			fmt.Sprintf("key type is %s, want %s", info.KeyType, spec.KeyType))
	}
	if len(report.Problems) > 0 {
		report.Status = "mismatch"
	}
	return report
}
