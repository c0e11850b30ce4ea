// Package downloads implements the extractor boundary over the yt-dlp
// binary, plus the per-download progress throttle.
package downloads

import (
	"strconv"
	"strings"

	"audiodownloader/internal/models"
	"audiodownloader/internal/utils/logging"
)

// Throttle is the stateful filter suppressing progress prints below
// the configured percentage delta. Exactly one live instance per
// in-flight download; the orchestrator builds a fresh one per URL.
type Throttle struct {
	url          string
	interval     float64
	lastProgress float64
	quiet        bool
	log          *logging.Logger
}

// NewThrottle returns the progress sink for one download of url. quiet
// drops the percentage prints entirely; completion and error notices
// still pass through.
func NewThrottle(url string, interval float64, quiet bool, log *logging.Logger) *Throttle {
	return &Throttle{
		url:      url,
		interval: interval,
		quiet:    quiet,
		log:      log,
	}
}

// Handle consumes one progress event from the extractor. Progress
// percentages print only on threshold crossings; finished and error
// notices always pass through.
func (t *Throttle) Handle(ev models.ProgressEvent) {
	switch ev.State {
	case models.ProgressDownloading:
		if t.quiet {
			return
		}
		pct, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(ev.Percent), "%"), 64)
		if err != nil {
			return // malformed percentages are skipped, not fatal
		}
		if pct-t.lastProgress >= t.interval {
			t.log.P("Progress: %.1f%%", pct)
			t.lastProgress = pct
		}
	case models.ProgressFinished:
		t.log.I("Download completed for: %s", t.url)
	case models.ProgressError:
		t.log.E("Download error for: %s", t.url)
	}
}
