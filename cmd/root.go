package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagWindow string
	flagNoAI   bool
)

var rootCmd = &cobra.Command{
	Use:   "spreewire",
	Short: "Berlin tech news digest",
	Long:  "spreewire pulls recent tech news from configured feeds, scores and categorizes it, and produces a summarized daily digest.",
	RunE:  runDigest,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagWindow, "window", "", "override recency window (e.g., 24h, 2d)")
	rootCmd.Flags().BoolVar(&flagNoAI, "no-ai", false, "skip the generation service, use fallback summaries")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("spreewire %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
