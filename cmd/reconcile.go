package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"world-manager/core/config"
	"world-manager/core/logger"
	"world-manager/core/reconcile"
	"world-manager/feature/world"
	worldReconcile "world-manager/feature/world/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	purgeOrphans bool
	syncDrift    bool
	dryRun       bool
	yesConfirm   bool
)

// reconcileCmd compares one record kind between the documents and the store.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [kind]",
	Short: "Reconcile stored records against the world documents",
	Long: `Reconcile one record kind between the authored documents and the store.

Reports records missing from the store, rows no document describes, and field
drift. Optionally sync (rewrite drifted or missing rows from the documents)
or purge (delete rows no document describes).

Examples:
  # Report only
  reconcile rooms

  # Purge orphan rows (with interactive confirmation)
  reconcile rooms --purge

  # Sync drifted rows with auto-confirm (non-interactive)
  reconcile prototypes --sync --yes

  # Both purge and sync
  reconcile exits --purge --sync --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&purgeOrphans, "purge", false, "Enable purge (delete rows no document describes)")
	reconcileCmd.Flags().BoolVar(&syncDrift, "sync", false, "Enable sync (rewrite rows from the documents)")
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	kind := args[0]

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

	// Build spec. No caching: a one-shot command wants fresh reads.
	spec := worldReconcile.SpecFor(kind, svc, st, cfg.Store.Tables(), 0)
	if spec == nil {
		return fmt.Errorf("unknown record kind %q (expected one of %v)", kind, world.Kinds())
	}

	opts := reconcile.Options{
		DoPurge:   purgeOrphans,
		DoSync:    syncDrift,
		DryRun:    dryRun,
		Confirmed: false, // Will be set after confirmation prompt
	}

	// Step 1: Plan (always runs)
	l.Info("Planning reconciliation", zap.String("kind", kind))
	plan, err := reconcile.ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	// Step 2: Print report
	printReconcileReport(l, plan)

	// Step 3: Check if actions are requested
	if !purgeOrphans && !syncDrift {
		l.Info("No actions requested. Use --sync to repair drift or --purge to delete orphan rows.")
		return nil
	}

	// Step 4: Apply (if confirmed)
	if dryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if len(plan.Actions) == 0 {
		l.Info("No actions required based on current flags.")
		return nil
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	l.Info("Applying actions...")
	executed, err := reconcile.ApplyPlan(ctx, spec, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.String("kind", plan.Kind),
		zap.Int("total", s.Total),
		zap.Int("missing_in_store", s.MissingStore),
		zap.Int("missing_in_documents", s.MissingDocument),
		zap.Int("mismatched", s.Mismatched),
	)

	if len(plan.Actions) > 0 {
		l.Info("Planned actions",
			zap.Int("put_actions", s.PutActions),
			zap.Int("delete_actions", s.DeleteActions),
			zap.Int("total_actions", len(plan.Actions)),
		)

		// Show sample of actions (max 5 for logger)
		maxShow := 5
		if len(plan.Actions) < maxShow {
			maxShow = len(plan.Actions)
		}
		for i := 0; i < maxShow; i++ {
			action := plan.Actions[i]
			l.Info("Sample action",
				zap.String("type", string(action.Type)),
				zap.String("key", action.Key),
				zap.String("reason", action.Reason),
			)
		}
		if len(plan.Actions) > maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
		}
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
