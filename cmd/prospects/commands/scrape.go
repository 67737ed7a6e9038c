package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/use-agent/prospects/config"
	"github.com/use-agent/prospects/engine"
	"github.com/use-agent/prospects/output"
	"github.com/use-agent/prospects/roster"
	"github.com/use-agent/prospects/scraper"
)

var scrapeFlags struct {
	roster        string
	format        string
	output        string
	workers       int
	delayMin      time.Duration
	delayMax      time.Duration
	failurePolicy string
	strip         bool
	progress      bool
	missingFatal  bool
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --roster <rows.json5|rows.csv> [--format json|jsonl|table] [--output <path>]",
	Short: "Fetches every roster player's profile page and writes the enriched table.",
	Args:  cobra.NoArgs,
	RunE:  runScrape,
}

func init() {
	f := scrapeCmd.Flags()
	f.StringVar(&scrapeFlags.roster, "roster", "", "roster file (.json, .json5 or .csv)")
	f.StringVar(&scrapeFlags.format, "format", string(output.FormatTable), "output format: json, jsonl or table")
	f.StringVarP(&scrapeFlags.output, "output", "o", "", "write output to this file instead of stdout")
	f.IntVar(&scrapeFlags.workers, "workers", 1, "players fetched at once")
	f.DurationVar(&scrapeFlags.delayMin, "delay-min", 5*time.Second, "minimum delay before each fetch")
	f.DurationVar(&scrapeFlags.delayMax, "delay-max", 10*time.Second, "maximum delay before each fetch")
	f.StringVar(&scrapeFlags.failurePolicy, "failure-policy", string(config.FailureAbort), "abort or skip on a failed player")
	f.BoolVar(&scrapeFlags.strip, "strip-redundancy", true, "drop name_, position_ and player_url_ columns")
	f.BoolVar(&scrapeFlags.progress, "progress", true, "show a progress bar on stderr")
	f.BoolVar(&scrapeFlags.missingFatal, "missing-table-fatal", false, "fail a player whose page has no statistics table")
	_ = scrapeCmd.MarkFlagRequired("roster")

	rootCmd.AddCommand(scrapeCmd)
}

// applyScrapeFlags overrides cfg with every flag set on the command line.
func applyScrapeFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("workers") {
		cfg.Pipeline.Workers = scrapeFlags.workers
	}
	if changed("delay-min") {
		cfg.Throttle.DelayMin = scrapeFlags.delayMin
	}
	if changed("delay-max") {
		cfg.Throttle.DelayMax = scrapeFlags.delayMax
	}
	if changed("failure-policy") {
		cfg.Pipeline.FailurePolicy = config.FailurePolicy(scrapeFlags.failurePolicy)
	}
	if changed("strip-redundancy") {
		cfg.Pipeline.StripRedundancy = scrapeFlags.strip
	}
	if changed("progress") {
		cfg.Pipeline.Progress = scrapeFlags.progress
	}
	if changed("missing-table-fatal") {
		cfg.Pipeline.MissingStatsTableFatal = scrapeFlags.missingFatal
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	applyScrapeFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := output.ParseFormat(scrapeFlags.format)
	if err != nil {
		return err
	}

	rows, err := roster.Load(scrapeFlags.roster)
	if err != nil {
		return err
	}
	slog.Info("roster loaded", "path", scrapeFlags.roster, "players", len(rows))

	var out io.Writer = cmd.OutOrStdout()
	if scrapeFlags.output != "" {
		file, err := os.Create(scrapeFlags.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	source := engine.NewSource(engine.NewHTTPEngine(cfg.Fetch), cfg.Fetch.Timeout)
	driver := scraper.NewDriver(source, scraper.NewRandomDelay(cfg.Throttle), cfg.Pipeline)

	var opts scraper.RunOptions
	if cfg.Pipeline.Progress && len(rows) > 0 {
		bar := output.NewProgress(cmd.ErrOrStderr(), len(rows))
		defer bar.Stop()
		opts.Progress = bar.Update
	}

	start := time.Now()
	res, err := driver.Run(cmd.Context(), rows, opts)
	if err != nil {
		return err
	}
	slog.Info("scrape complete",
		"players", len(res.Records),
		"failed", len(res.Failures),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return output.Write(out, res.Table(cfg.Pipeline.StripRedundancy), format)
}
