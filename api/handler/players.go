package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/prospects/assemble"
	"github.com/use-agent/prospects/cache"
	"github.com/use-agent/prospects/config"
	"github.com/use-agent/prospects/models"
	"github.com/use-agent/prospects/scraper"
)

// Runner runs the scrape pipeline over roster rows. *scraper.Driver
// implements it.
type Runner interface {
	Run(ctx context.Context, rows []models.RosterRow, opts scraper.RunOptions) (*scraper.Result, error)
}

// Players returns a handler for POST /api/v1/players.
//
// The run is synchronous and shares the server's throttle, so a request for
// many rows takes many throttle delays to answer.
func Players(run Runner, cc *cache.Cache, pcfg config.PipelineConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.PlayersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err, start)
			return
		}

		opts := scraper.RunOptions{
			FailurePolicy: config.FailurePolicy(req.FailurePolicy),
			MaxAge:        time.Duration(req.MaxAge) * time.Millisecond,
		}
		if cc != nil {
			opts.Cache = cc
		}

		res, err := run.Run(c.Request.Context(), req.Rows, opts)
		if err != nil {
			respondError(c, err, start)
			return
		}

		table := res.Table(models.Strip(req.StripRedundancy, pcfg.StripRedundancy))
		c.JSON(http.StatusOK, models.PlayersResponse{
			Success:  true,
			Columns:  table.Columns,
			Records:  marshalers(table.Objects()),
			Failures: failureDetails(res.Failures),
			Timing:   timing(start),
		})
	}
}

// Profile returns a handler for POST /api/v1/profile, which scrapes a single
// player and always aborts on failure.
func Profile(run Runner, cc *cache.Cache, pcfg config.PipelineConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err, start)
			return
		}
		strip := models.Strip(req.StripRedundancy, pcfg.StripRedundancy)
		maxAge := time.Duration(req.MaxAge) * time.Millisecond

		if cc != nil && maxAge > 0 {
			if rec, hit := cc.Get(req.RosterRow, maxAge); hit {
				respondProfile(c, assemble.NewTable([]models.PlayerRecord{rec}, strip), "hit", start)
				return
			}
		}

		opts := scraper.RunOptions{FailurePolicy: config.FailureAbort}
		if cc != nil {
			opts.Cache = cc
		}
		res, err := run.Run(c.Request.Context(), []models.RosterRow{req.RosterRow}, opts)
		if err != nil {
			respondError(c, err, start)
			return
		}

		status := ""
		if cc != nil && maxAge > 0 {
			status = "miss"
		}
		respondProfile(c, res.Table(strip), status, start)
	}
}

func respondProfile(c *gin.Context, table assemble.Table, cacheStatus string, start time.Time) {
	c.JSON(http.StatusOK, models.ProfileResponse{
		Success:     true,
		Columns:     table.Columns,
		Record:      table.Objects()[0],
		Timing:      timing(start),
		CacheStatus: cacheStatus,
	})
}

func marshalers(objs []assemble.Object) []json.Marshaler {
	out := make([]json.Marshaler, len(objs))
	for i, o := range objs {
		out[i] = o
	}
	return out
}

func failureDetails(failures []scraper.Failure) []models.ErrorDetail {
	var out []models.ErrorDetail
	for _, f := range failures {
		d := models.AsScrapeError(f.Err).ToDetail()
		if d.PlayerURL == "" {
			d.PlayerURL = f.Row.PlayerURL
		}
		out = append(out, *d)
	}
	return out
}
