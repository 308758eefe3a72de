package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/mlindner/spreewire/internal/config"
	"github.com/mlindner/spreewire/internal/render"
	"github.com/mlindner/spreewire/internal/store"
)

var flagSchedule string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the digest on a schedule",
	Long:  "Generate a digest on the configured cron schedule until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		schedule := cfg.Schedule
		if flagSchedule != "" {
			schedule = flagSchedule
		}
		if schedule == "" {
			schedule = "0 7 * * *"
		}

		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		c := cron.New()
		_, err = c.AddFunc(schedule, func() {
			report, err := generate(context.Background(), cfg, db)
			if err != nil {
				fmt.Printf("  [warn] digest run failed: %v\n", err)
				return
			}
			fmt.Print(render.Report(report))
		})
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", schedule, err)
		}

		fmt.Printf("Watching on schedule %q. Ctrl-C to stop.\n", schedule)
		c.Start()
		defer c.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&flagSchedule, "schedule", "", "override cron schedule (e.g., \"0 7 * * *\")")
}
