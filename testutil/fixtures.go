// Package testutil holds fixture pages and fakes shared by package tests.
package testutil

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/prospects/models"
)

// ProfileHTML is a complete profile page: ten biography cells and a three-row
// statistics table with a continuation row and two captaincy annotations.
//
//go:embed testdata/profile.html
var ProfileHTML string

// ProfileURL is the player URL the fixture page is served under.
const ProfileURL = "https://www.example.com/player/101/riley-sample"

var tableBlock = regexp.MustCompile(`(?s)<table.*</table>`)

// ProfileWithoutTable returns the fixture page with its statistics table removed.
func ProfileWithoutTable() string {
	return tableBlock.ReplaceAllString(ProfileHTML, "")
}

// ProfileWithTableRows returns the fixture page with the statistics table body
// replaced by rows.
func ProfileWithTableRows(rows ...string) string {
	table := `<table class="table table-striped table-condensed table-sortable player-stats highlight-stats"><tbody>` +
		strings.Join(rows, "") + `</tbody></table>`
	return tableBlock.ReplaceAllString(ProfileHTML, table)
}

// StatsRow renders one statistics table row from cell texts.
func StatsRow(cells ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cells {
		b.WriteString("<td>" + c + "</td>")
	}
	b.WriteString("</tr>")
	return b.String()
}

// Document parses htmlStr or fails the test.
func Document(t testing.TB, htmlStr string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

// Row returns a roster row for the fixture player at url.
func Row(name, url string) models.RosterRow {
	return models.RosterRow{
		Name:      name,
		PlayerURL: url,
		Team:      "Lakeside Lynx",
		TeamURL:   "https://www.example.com/team/2/lakeside-lynx",
		League:    "OHL",
		Position:  "C",
		Season:    Ptr("2017-2018"),
	}
}

// ProfileRow is the roster row matching ProfileHTML.
func ProfileRow() models.RosterRow {
	return Row("Riley Sample", ProfileURL)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// ErrNotFound is returned by StaticSource for unknown URLs.
var ErrNotFound = errors.New("testutil: page not found")

// StaticSource serves fixed pages by URL and records the order of requests.
// It is safe for concurrent use.
type StaticSource struct {
	Pages map[string]string

	mu       sync.Mutex
	requests []string
}

// Document returns the page registered for url.
func (s *StaticSource) Document(ctx context.Context, url string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.requests = append(s.requests, url)
	s.mu.Unlock()

	page, ok := s.Pages[url]
	if !ok {
		return nil, models.NewFetchError(url, fmt.Errorf("%w: %s", ErrNotFound, url))
	}
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

// Requests returns the URLs requested so far.
func (s *StaticSource) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// CountingThrottle never sleeps; it only counts calls.
type CountingThrottle struct {
	mu    sync.Mutex
	calls int
}

// Wait records one call and honours cancellation.
func (c *CountingThrottle) Wait(ctx context.Context) error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return ctx.Err()
}

// Calls returns how many times Wait ran.
func (c *CountingThrottle) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
