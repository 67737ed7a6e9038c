// Package scraper drives the per-player pipeline: throttle, fetch, extract
// and assemble, in roster order.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sourcegraph/conc/stream"
	"github.com/use-agent/prospects/assemble"
	"github.com/use-agent/prospects/config"
	"github.com/use-agent/prospects/models"
)

// PageSource retrieves a player's profile page.
type PageSource interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// ProgressFunc is called once per roster row after its page was fetched and
// parsed, in roster order. done counts rows finished so far.
type ProgressFunc func(done, total int, row models.RosterRow)

// RecordCache stores assembled records by roster row.
type RecordCache interface {
	Get(row models.RosterRow, maxAge time.Duration) (models.PlayerRecord, bool)
	Set(row models.RosterRow, rec models.PlayerRecord)
}

// RunOptions are per-run settings layered over the driver's pipeline config.
type RunOptions struct {
	// FailurePolicy overrides the configured policy when set.
	FailurePolicy config.FailurePolicy

	Progress ProgressFunc

	// Cache, when set, receives every assembled record. Rows cached less
	// than MaxAge ago are served from it without a fetch.
	Cache  RecordCache
	MaxAge time.Duration
}

// Failure is a roster row dropped under the skip policy.
type Failure struct {
	Index int
	Row   models.RosterRow
	Err   error
}

// Result is the outcome of a run.
type Result struct {
	// Records holds one record per successful row, in roster order.
	Records  []models.PlayerRecord
	Failures []Failure
}

// Table returns the records as the final ordered table.
func (r *Result) Table(stripRedundancy bool) assemble.Table {
	return assemble.NewTable(r.Records, stripRedundancy)
}

// Driver runs the pipeline over roster rows. It holds no per-run state and is
// safe for concurrent use.
type Driver struct {
	source   PageSource
	throttle Throttle
	cfg      config.PipelineConfig
}

// NewDriver creates a Driver fetching through source and waiting on throttle
// before every fetch.
func NewDriver(source PageSource, throttle Throttle, cfg config.PipelineConfig) *Driver {
	if cfg.FailurePolicy == "" {
		cfg.FailurePolicy = config.FailureAbort
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Driver{source: source, throttle: throttle, cfg: cfg}
}

// Run processes rows and returns their records in input order.
//
// Under the abort policy the first failed row ends the run with an error
// carrying its player URL. Under skip the row is logged and listed in
// Result.Failures. A cancelled ctx ends the run with a CANCELED error and
// no records.
func (d *Driver) Run(ctx context.Context, rows []models.RosterRow, opts RunOptions) (*Result, error) {
	policy := opts.FailurePolicy
	if policy == "" {
		policy = d.cfg.FailurePolicy
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	c := &collector{
		parent:   ctx,
		cancel:   cancel,
		policy:   policy,
		progress: opts.Progress,
		total:    len(rows),
		res:      &Result{Records: make([]models.PlayerRecord, 0, len(rows))},
	}

	if d.cfg.Workers == 1 {
		for i, row := range rows {
			if runCtx.Err() != nil {
				break
			}
			rec, err := d.process(runCtx, row, opts)
			c.collect(i, row, rec, err)
		}
	} else {
		s := stream.New().WithMaxGoroutines(d.cfg.Workers)
		for i, row := range rows {
			if runCtx.Err() != nil {
				break
			}
			s.Go(func() stream.Callback {
				rec, err := d.process(runCtx, row, opts)
				return func() { c.collect(i, row, rec, err) }
			})
		}
		s.Wait()
	}

	if err := ctx.Err(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeCanceled,
			fmt.Sprintf("run canceled after %d of %d players", c.done, c.total),
			err,
		)
	}
	if c.abortErr != nil {
		slog.Error("run aborted", "done", c.done, "total", c.total, "error", c.abortErr)
		return nil, c.abortErr
	}

	slog.Info("run finished",
		"records", len(c.res.Records),
		"failures", len(c.res.Failures),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return c.res, nil
}

// collector applies the failure policy to row outcomes. Calls arrive one at
// a time in roster order.
type collector struct {
	parent   context.Context
	cancel   context.CancelFunc
	policy   config.FailurePolicy
	progress ProgressFunc

	total    int
	done     int
	res      *Result
	abortErr error
}

func (c *collector) collect(i int, row models.RosterRow, rec models.PlayerRecord, err error) {
	if c.abortErr != nil || c.parent.Err() != nil {
		return
	}
	c.done++
	if c.progress != nil {
		c.progress(c.done, c.total, row)
	}
	if err == nil {
		c.res.Records = append(c.res.Records, rec)
		return
	}
	if c.policy == config.FailureSkip {
		slog.Warn("skipping player", "index", i, "url", row.PlayerURL, "error", err)
		c.res.Failures = append(c.res.Failures, Failure{Index: i, Row: row, Err: err})
		return
	}
	c.abortErr = err
	c.cancel()
}

// process runs one row: cache lookup, throttle, fetch, extract and assemble.
func (d *Driver) process(ctx context.Context, row models.RosterRow, opts RunOptions) (models.PlayerRecord, error) {
	if opts.Cache != nil && opts.MaxAge > 0 {
		if rec, ok := opts.Cache.Get(row, opts.MaxAge); ok {
			slog.Debug("record cache hit", "url", row.PlayerURL)
			return rec, nil
		}
	}

	if err := d.throttle.Wait(ctx); err != nil {
		return models.PlayerRecord{}, models.WithURL(err, row.PlayerURL)
	}

	doc, err := d.source.Document(ctx, row.PlayerURL)
	if err != nil {
		if models.ErrorCode(err) == "" {
			err = models.NewFetchError(row.PlayerURL, err)
		}
		return models.PlayerRecord{}, models.WithURL(err, row.PlayerURL)
	}

	rec, err := assemble.FromDocument(doc, row, assemble.Options{
		MissingTableFatal: d.cfg.MissingStatsTableFatal,
	})
	if err != nil {
		return models.PlayerRecord{}, err
	}

	if opts.Cache != nil {
		opts.Cache.Set(row, rec)
	}
	slog.Debug("player assembled", "url", row.PlayerURL, "seasons", len(rec.PlayerStatistics))
	return rec, nil
}
