package cmd

import (
	"context"
	"fmt"

	"world-manager/core/config"
	"world-manager/core/logger"

	"github.com/spf13/cobra"
)

// verifyCmd checks the stored world's connectivity.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify world connectivity",
	Long: `Builds the room graph from the stored world and reports exits that lead
nowhere, exits no room owns, and rooms unreachable from the entry room.`,
	RunE: runVerify,
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	report, err := svc.Verify(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify world: %w", err)
	}

	fmt.Println("\n--- World Verification ---")
	fmt.Printf("Rooms:      %d\n", report.Rooms)
	fmt.Printf("Exits:      %d\n", report.Exits)
	if report.Rooms > 0 {
		fmt.Printf("Entry room: %d\n", report.EntryRoom)
	}

	if report.Clean() {
		fmt.Println("\nNo problems found.")
		return nil
	}

	if len(report.Dangling) > 0 {
		fmt.Println("\nExits leading to missing rooms:")
		for _, id := range report.Dangling {
			fmt.Printf("- %s\n", id)
		}
	}
	if len(report.Orphans) > 0 {
		fmt.Println("\nExits no room owns:")
		for _, id := range report.Orphans {
			fmt.Printf("- %s\n", id)
		}
	}
	if len(report.Unreachable) > 0 {
		fmt.Println("\nRooms unreachable from the entry room:")
		for _, id := range report.Unreachable {
			fmt.Printf("- %d\n", id)
		}
	}

	problems := len(report.Dangling) + len(report.Orphans) + len(report.Unreachable)
	return fmt.Errorf("world verification found %d problems", problems)
}
