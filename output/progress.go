package output

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/use-agent/prospects/models"
)

// Progress shows a single progress bar for a scrape run.
type Progress struct {
	pw      progress.Writer
	tracker *progress.Tracker
}

// NewProgress starts rendering a bar for total players to w.
func NewProgress(w io.Writer, total int) *Progress {
	pw := progress.NewWriter()
	pw.SetOutputWriter(w)
	pw.SetAutoStop(false)
	pw.SetTrackerLength(30)
	pw.SetUpdateFrequency(250 * time.Millisecond)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Visibility.ETA = true
	pw.Style().Visibility.Percentage = true

	tracker := &progress.Tracker{
		Message: "scraping players",
		Total:   int64(total),
		Units:   progress.UnitsDefault,
	}
	pw.AppendTracker(tracker)
	go pw.Render()
	for !pw.IsRenderInProgress() {
		time.Sleep(time.Millisecond)
	}

	return &Progress{pw: pw, tracker: tracker}
}

// Update records that done of total players are finished, row being the
// latest. Its signature matches scraper.ProgressFunc.
func (p *Progress) Update(done, total int, row models.RosterRow) {
	p.tracker.UpdateTotal(int64(total))
	p.tracker.SetValue(int64(done))
	p.tracker.UpdateMessage(row.Name)
}

// Stop finishes the bar and waits for the final render.
func (p *Progress) Stop() {
	if !p.tracker.IsDone() {
		p.tracker.MarkAsDone()
	}
	p.pw.Stop()
	for p.pw.IsRenderInProgress() {
		time.Sleep(10 * time.Millisecond)
	}
}
