package engine

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/prospects/models"
)

// Source turns engine fetches into parsed documents.
type Source struct {
	engine  Engine
	timeout time.Duration
}

// NewSource wraps e. timeout bounds each page fetch; zero leaves it to the
// engine.
func NewSource(e Engine, timeout time.Duration) *Source {
	return &Source{engine: e, timeout: timeout}
}

// Document fetches pageURL and parses it. Any failure is a FETCH_FAILED error
// naming pageURL. The site root is sent as Referer, as if the player was
// reached from the site itself.
func (s *Source) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	start := time.Now()
	req := &FetchRequest{URL: pageURL, Timeout: s.timeout}
	if ref := origin(pageURL); ref != "" {
		req.Headers = map[string]string{"Referer": ref}
	}
	res, err := s.engine.Fetch(ctx, req)
	if err != nil {
		return nil, models.NewFetchError(pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.HTML))
	if err != nil {
		return nil, models.NewFetchError(pageURL, err)
	}

	slog.Debug("page fetched",
		"url", pageURL,
		"final_url", res.FinalURL,
		"status", res.StatusCode,
		"title", res.Title,
		"engine", res.EngineName,
		"bytes", len(res.HTML),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return doc, nil
}

// origin returns the scheme and host of u with a trailing slash, or "" when u
// is not absolute.
func origin(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host + "/"
}
