package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlindner/spreewire/internal/config"
	"github.com/mlindner/spreewire/internal/render"
	"github.com/mlindner/spreewire/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the most recent stored digest",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		report, err := db.LatestReport()
		if errors.Is(err, store.ErrNoReport) {
			fmt.Println("No digest stored yet. Run `spreewire` first.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("loading report: %w", err)
		}

		fmt.Print(render.Report(report))
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired seen entries and old reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		seen, err := db.PruneExpired()
		if err != nil {
			return fmt.Errorf("pruning seen entries: %w", err)
		}
		reports, err := db.PruneReports(cfg.RetentionDuration())
		if err != nil {
			return fmt.Errorf("pruning reports: %w", err)
		}

		if seen == 0 && reports == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d seen entr%s and %d report(s).\n", seen, plural(seen, "y", "ies"), reports)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.StorePath()
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		seen, reports, size, err := db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Store: %s\n", dbPath)
		fmt.Printf("Seen articles: %d\n", seen)
		fmt.Printf("Reports: %d\n", reports)
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
