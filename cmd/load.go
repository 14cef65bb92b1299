package cmd

import (
	"context"
	"fmt"

	"world-manager/core/config"
	"world-manager/core/logger"
	"world-manager/core/source"
	"world-manager/core/storage"
	"world-manager/core/store"
	"world-manager/feature/world"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	loadRooms      bool
	loadArchetypes bool
	loadPrototypes bool
)

// loadCmd bulk-loads the authored world documents into the store.
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load world documents into the store",
	Long: `Normalizes the authored world documents and writes them to the tables.

Loads are full replaces: repeating a load with the same documents leaves the
store unchanged. Kinds fail independently; a broken archetypes document does
not stop rooms from loading.

Examples:
  # Load everything
  load

  # Load only rooms (and the exits split off from them)
  load --rooms

  # Load archetypes and item prototypes
  load --archetypes --prototypes`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadRooms, "rooms", false, "Load rooms and their exits")
	loadCmd.Flags().BoolVar(&loadArchetypes, "archetypes", false, "Load archetypes")
	loadCmd.Flags().BoolVar(&loadPrototypes, "prototypes", false, "Load item prototypes")

	RootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, _, _, err := buildWorldService(cfg, l)
	if err != nil {
		return err
	}

	var kinds []string
	if loadRooms {
		kinds = append(kinds, world.KindRooms)
	}
	if loadArchetypes {
		kinds = append(kinds, world.KindArchetypes)
	}
	if loadPrototypes {
		kinds = append(kinds, world.KindPrototypes)
	}

	l.Info("Loading world documents", zap.Strings("kinds", kinds), zap.String("policy", cfg.World.Validation))
	report := svc.LoadWorld(ctx, kinds...)

	for _, k := range report.Kinds {
		if k.Error != "" {
			l.Error("Kind failed to load",
				zap.String("kind", k.Kind),
				zap.String("error", k.Error),
			)
			continue
		}
		l.Info("Kind loaded",
			zap.String("kind", k.Kind),
			zap.Int("attempted", k.Attempted),
			zap.Int("loaded", k.Loaded),
			zap.Int("skipped", k.Skipped),
		)
	}

	if report.Failed() {
		return fmt.Errorf("one or more kinds failed to load")
	}
	return nil
}

// buildWorldService wires a world service for one-shot commands.
func buildWorldService(cfg *config.Config, l *zap.Logger) (*world.Service, *store.Store, source.Loader, error) {
	client, err := store.NewClient(cfg.Store)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create store client: %w", err)
	}
	st := store.New(client, l)

	var storageClient storage.Client
	if cfg.Source.Mode == source.ModeBucket {
		storageClient, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}
	src, err := source.New(cfg.Source, storageClient, cfg.Storage.Bucket)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create document source: %w", err)
	}

	return world.NewService(st, cfg.Store.Tables(), src, cfg.World, l), st, src, nil
}
