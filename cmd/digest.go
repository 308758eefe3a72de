package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlindner/spreewire/internal/ai"
	"github.com/mlindner/spreewire/internal/config"
	"github.com/mlindner/spreewire/internal/feed"
	"github.com/mlindner/spreewire/internal/news"
	"github.com/mlindner/spreewire/internal/pipeline"
	"github.com/mlindner/spreewire/internal/render"
	"github.com/mlindner/spreewire/internal/store"
	"github.com/mlindner/spreewire/internal/summary"
)

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(config.StorePath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	report, err := generate(cmd.Context(), cfg, db)
	if err != nil {
		return err
	}

	fmt.Print(render.Report(report))
	return nil
}

// generate runs one full digest pass: fetch, pipeline, persist.
func generate(ctx context.Context, cfg *config.Config, db *store.Store) (news.Report, error) {
	window := cfg.Window()
	if flagWindow != "" {
		d, err := parseWindow(flagWindow)
		if err != nil {
			return news.Report{}, fmt.Errorf("invalid --window value: %w", err)
		}
		window = d
	}

	fetchCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	result := feed.FetchAll(fetchCtx, cfg.EnabledSources())
	cancel()
	for _, e := range result.Errors {
		fmt.Printf("  [warn] %v\n", e)
	}

	var gen ai.Generator
	if cfg.AIEnabled() && !flagNoAI {
		gen = ai.New(cfg.AI.Primary, cfg.AI.Secondary, cfg.AIToken(), ai.Options{
			MaxNewTokens: cfg.AI.MaxNewTokens,
			Temperature:  cfg.AI.Temperature,
		})
	}

	p := pipeline.New(pipeline.Deps{
		Seen:       db,
		Summarizer: summary.New(gen),
		Window:     window,
	})
	report := p.Run(ctx, result.Articles)
	for _, w := range p.Warnings {
		fmt.Printf("  [warn] %s\n", w)
	}

	if err := db.SaveReport(report); err != nil {
		return news.Report{}, fmt.Errorf("saving report: %w", err)
	}
	return report, nil
}

func parseWindow(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
