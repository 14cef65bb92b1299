package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"world-manager/core/config"
	"world-manager/core/logger"
	"world-manager/core/store"
	"world-manager/feature/world/models"

	"github.com/spf13/cobra"
)

var viewTable string

// viewCmd shows the stored world the way it was authored.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the stored world",
	Long: `Prints the world tables and the denormalized room view.

Without flags it summarizes every table and walks the rooms with their exits
joined back in. With --table it dumps one table's rows as JSON lines.`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewTable, "table", "", "Dump one table (rooms, exits, archetypes, prototypes, items)")

	RootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, st, _, err := buildWorldService(cfg, l)
	if err != nil {
		return err
	}
	tables := cfg.Store.Tables()

	if viewTable != "" {
		return viewOneTable(ctx, st, tables, viewTable)
	}

	// Table overview
	fmt.Println("\n--- World Tables ---")
	for _, name := range tables.All() {
		info, err := st.DescribeTable(ctx, name)
		if err != nil {
			fmt.Printf("%-12s (unavailable: %v)\n", name, err)
			continue
		}
		fmt.Printf("%-12s key=%s (%s)  items=%d\n", info.Name, info.KeyAttribute, info.KeyType, info.ItemCount)
	}

	// Denormalized room walk
	rooms, err := svc.Rooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to read rooms: %w", err)
	}
	fmt.Println("\n--- Rooms ---")
	for _, room := range rooms {
		fmt.Printf("[%d] %s (%s)\n", room.RoomID, room.Title, room.Area)
		fmt.Printf("    %s\n", room.Description)
		for _, exit := range room.Exits {
			marker := ""
			if !exit.Visible {
				marker = " (hidden)"
			}
			fmt.Printf("    %s -> room %d%s\n", exit.Direction, exit.TargetRoom, marker)
		}
		if len(room.ItemIDs) > 0 {
			fmt.Printf("    items: %s\n", strings.Join(room.ItemIDs, ", "))
		}
	}

	archetypes, err := svc.Archetypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to read archetypes: %w", err)
	}
	prototypes, err := svc.Prototypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to read prototypes: %w", err)
	}
	fmt.Printf("\nArchetypes: %d   Prototypes: %d\n", len(archetypes), len(prototypes))

	return nil
}

// viewOneTable dumps a single table: key schema first, then one JSON line
// per row so the output stays greppable.
func viewOneTable(ctx context.Context, st *store.Store, tables store.Tables, name string) error {
	info, err := st.DescribeTable(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to describe table %s: %w", name, err)
	}

	fmt.Printf("\n--- Table %s ---\n", info.Name)
	fmt.Printf("Key:    %s (%s)\n", info.KeyAttribute, info.KeyType)
	fmt.Printf("Items:  %d\n", info.ItemCount)
	fmt.Println("--------------------")

	rows, err := scanTable(ctx, st, tables, name)
	if err != nil {
		return err
	}
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to render row: %w", err)
		}
		fmt.Println(string(data))
	}
	return nil
}

// scanTable reads a whole table into its record type.
func scanTable(ctx context.Context, st *store.Store, tables store.Tables, name string) ([]any, error) {
	switch name {
	case tables.Rooms:
		var rows []models.Room
		if err := st.Scan(ctx, name, &rows); err != nil {
			return nil, err
		}
		return widen(rows), nil
	case tables.Exits:
		var rows []models.Exit
		if err := st.Scan(ctx, name, &rows); err != nil {
			return nil, err
		}
		return widen(rows), nil
	case tables.Archetypes:
		var rows []models.Archetype
		if err := st.Scan(ctx, name, &rows); err != nil {
			return nil, err
		}
		return widen(rows), nil
	case tables.Prototypes:
		var rows []models.Prototype
		if err := st.Scan(ctx, name, &rows); err != nil {
			return nil, err
		}
		return widen(rows), nil
	case tables.Items:
		var rows []models.Item
		if err := st.Scan(ctx, name, &rows); err != nil {
			return nil, err
		}
		return widen(rows), nil
	default:
		return nil, fmt.Errorf("unknown table %q (expected one of %v)", name, tables.All())
	}
}

func widen[T any](rows []T) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}
