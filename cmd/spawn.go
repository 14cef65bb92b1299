package cmd

import (
	"context"
	"fmt"

	"world-manager/core/config"
	"world-manager/core/logger"
	"world-manager/core/store"
	"world-manager/feature/items"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	spawnPrototype string
	spawnRoom      int64
)

// spawnCmd mints an item from a prototype and attaches it to a room.
var spawnCmd = &cobra.Command{
	Use:   "spawn",
	Short: "Spawn an item into a room",
	Long: `Instantiates an item from a stored prototype and attaches it to a room.

The item row is written first and the room's item list second; when the room
update fails the item row is rolled back, so a failed spawn leaves no trace
short of a logged orphan.

Examples:
  spawn --prototype torch-01 --room 1`,
	RunE: runSpawn,
}

func init() {
	spawnCmd.Flags().StringVar(&spawnPrototype, "prototype", "", "Prototype to instantiate")
	spawnCmd.Flags().Int64Var(&spawnRoom, "room", 0, "Room to attach the item to")
	_ = spawnCmd.MarkFlagRequired("prototype")
	_ = spawnCmd.MarkFlagRequired("room")

	RootCmd.AddCommand(spawnCmd)
}

func runSpawn(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := store.NewClient(cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to create store client: %w", err)
	}
	st := store.New(client, l)

	svc := items.NewService(st, cfg.Store.Tables(), l)

	l.Info("Spawning item",
		zap.String("prototype", spawnPrototype),
		zap.Int64("room", spawnRoom),
	)
	result, err := svc.SpawnIntoRoom(ctx, spawnPrototype, spawnRoom)

	fmt.Println("\n--- Spawn Result ---")
	fmt.Printf("Prototype:  %s\n", spawnPrototype)
	fmt.Printf("Room:       %d\n", spawnRoom)
	if result.Item.ItemID != "" {
		fmt.Printf("Item:       %s (%s)\n", result.Item.ItemID, result.Item.Name)
	}
	if result.State != "" {
		fmt.Printf("State:      %s\n", result.State)
	}

	if err != nil {
		if result.RollbackErr != nil {
			fmt.Printf("Rollback:   failed (%v)\n", result.RollbackErr)
		}
		return fmt.Errorf("spawn failed: %w", err)
	}
	return nil
}
