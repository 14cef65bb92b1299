package cmd

import (
	"context"
	"fmt"

	"world-manager/core/config"
	"world-manager/core/logger"
	"world-manager/core/source"
	"world-manager/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pushPrune bool

// pushCmd uploads the local world documents to the bucket.
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Publish local world documents to the bucket",
	Long: `Uploads every JSON document from the local source directory to the
configured bucket so servers running in bucket mode pick them up.

With --prune, remote documents that no longer exist locally are removed.`,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().BoolVar(&pushPrune, "prune", false, "Remove remote documents missing locally")

	RootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	l.Info("Publishing world documents",
		zap.String("dir", cfg.Source.Dir),
		zap.String("bucket", cfg.Storage.Bucket),
		zap.String("prefix", cfg.Source.Prefix),
		zap.Bool("prune", pushPrune),
	)

	report, err := source.Publish(ctx, client, cfg.Storage.Bucket, cfg.Source, pushPrune, l)
	if err != nil {
		return fmt.Errorf("failed to publish documents: %w", err)
	}

	fmt.Println("\n--- Publish Report ---")
	fmt.Printf("Uploaded: %d\n", len(report.Uploaded))
	for _, name := range report.Uploaded {
		fmt.Printf("- %s\n", name)
	}
	if len(report.Removed) > 0 {
		fmt.Printf("Removed:  %d\n", len(report.Removed))
		for _, name := range report.Removed {
			fmt.Printf("- %s\n", name)
		}
	}
	return nil
}
