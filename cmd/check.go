package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"world-manager/core/config"
	"world-manager/core/logger"
	"world-manager/core/reconcile"
	"world-manager/feature/integrity"

	"github.com/spf13/cobra"
)

var checkJSON bool

// checkCmd runs every world integrity check from the CLI.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run world integrity checks",
	Long: `Checks that the authored documents are readable, that the tables exist
with the expected key schemas, and that the stored records still match the
documents. Exits non-zero when any check fails.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output the full report as JSON")

	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, st, src, err := buildWorldService(cfg, l)
	if err != nil {
		return err
	}
	integritySvc := integrity.NewService(svc, st, cfg.Store.Tables(), src, cfg.World, l)

	docReports := integritySvc.CheckDocuments(ctx)
	tableReports := integritySvc.CheckTables(ctx)

	type contentReport struct {
		Kind    string            `json:"kind"`
		Summary reconcile.Summary `json:"summary"`
		Error   string            `json:"error,omitempty"`
	}
	var contentReports []contentReport
	for _, kind := range integritySvc.Kinds() {
		plan, err := integritySvc.CheckContents(ctx, kind)
		if err != nil {
			contentReports = append(contentReports, contentReport{Kind: kind, Error: err.Error()})
			continue
		}
		contentReports = append(contentReports, contentReport{Kind: kind, Summary: plan.Summary})
	}

	healthy := true
	for _, r := range docReports {
		if !r.Healthy() {
			healthy = false
		}
	}
	for _, r := range tableReports {
		if !r.Healthy() {
			healthy = false
		}
	}
	for _, r := range contentReports {
		if r.Error != "" || r.Summary.MissingStore+r.Summary.MissingDocument+r.Summary.Mismatched > 0 {
			healthy = false
		}
	}

	if checkJSON {
		out, err := json.MarshalIndent(map[string]any{
			"healthy":   healthy,
			"documents": docReports,
			"tables":    tableReports,
			"contents":  contentReports,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Println(string(out))
	} else {
		fmt.Println("\n--- Documents ---")
		for _, r := range docReports {
			fmt.Printf("%-20s %s", r.Name, r.Status)
			if r.Entries > 0 {
				fmt.Printf("  (%d entries)", r.Entries)
			}
			if r.Error != "" {
				fmt.Printf("  %s", r.Error)
			}
			fmt.Println()
		}

		fmt.Println("\n--- Tables ---")
		for _, r := range tableReports {
			fmt.Printf("%-20s %s", r.Table, r.Status)
			if r.Status == "ok" {
				fmt.Printf("  key=%s (%s)  items=%d", r.KeyAttribute, r.KeyType, r.ItemCount)
			}
			for _, p := range r.Problems {
				fmt.Printf("  %s", p)
			}
			fmt.Println()
		}

		fmt.Println("\n--- Contents ---")
		for _, r := range contentReports {
			if r.Error != "" {
				fmt.Printf("%-20s error  %s\n", r.Kind, r.Error)
				continue
			}
			s := r.Summary
			if s.MissingStore+s.MissingDocument+s.Mismatched == 0 {
				fmt.Printf("%-20s ok     (%d records)\n", r.Kind, s.Total)
				continue
			}
			fmt.Printf("%-20s drift  (%d missing in store, %d orphan rows, %d mismatched)\n",
				r.Kind, s.MissingStore, s.MissingDocument, s.Mismatched)
		}
	}

	if !healthy {
		return fmt.Errorf("integrity problems found")
	}
	return nil
}
