// Package process drives URLs through the download state machine:
// Pending -> Probing -> (Skipped | Downloading) -> (Succeeded |
// Failed). Each terminal state maps to exactly one outcome.
package process

import (
	"context"

	"audiodownloader/internal/contracts"
	"audiodownloader/internal/domain/consts"
	"audiodownloader/internal/downloads"
	"audiodownloader/internal/file"
	"audiodownloader/internal/models"
	"audiodownloader/internal/utils/logging"

	"github.com/google/uuid"
)

// Orchestrator processes URLs one at a time, strictly sequentially.
// It owns the run statistics; no other component writes them.
type Orchestrator struct {
	set       *models.Settings
	log       *logging.Logger
	extractor contracts.Extractor
	history   contracts.HistoryStore
	runID     string
	stats     models.RunStats
}

// New returns an orchestrator for one run. history may be nil when the
// history database could not open; outcomes then go unrecorded there.
func New(set *models.Settings, log *logging.Logger, extractor contracts.Extractor, history contracts.HistoryStore) *Orchestrator {
	return &Orchestrator{
		set:       set,
		log:       log,
		extractor: extractor,
		history:   history,
		runID:     uuid.NewString(),
	}
}

// RunID identifies this run's rows in the history database.
func (o *Orchestrator) RunID() string {
	return o.runID
}

// Run processes every eligible entry of the loaded links file. Each
// entry is annotated and the file flushed before the next one starts,
// so an interrupted run never reprocesses finished URLs. Per-URL
// failures never abort the loop.
func (o *Orchestrator) Run(ctx context.Context, links *file.LinkManager) models.RunStats {
	for _, e := range links.Entries() {
		if !file.Eligible(e) {
			continue
		}

		o.stats.Processed++
		o.log.I("Processing %d: %s", o.stats.Processed, e.URL)

		url := e.URL
		outcome := o.ProcessURL(ctx, url)
		o.stats.Count(outcome.Status)

		if err := links.Annotate(e, outcome); err != nil {
			// Degraded mode: in-memory state advances, durability
			// for this line may be lost.
			o.log.E("Failed to update links file: %v", err)
		}
		o.record(ctx, url, outcome)

		if ctx.Err() != nil {
			o.log.W("Run cancelled, %d entries left unprocessed", remaining(links, e.Index))
			break
		}
	}
	return o.stats
}

// RunSingle processes one terminal-supplied URL. The links file is
// never touched in this mode.
func (o *Orchestrator) RunSingle(ctx context.Context, url string) models.RunStats {
	o.stats.Processed++
	o.log.I("Processing single URL: %s", url)

	outcome := o.ProcessURL(ctx, url)
	o.stats.Count(outcome.Status)
	o.record(ctx, url, outcome)

	return o.stats
}

// ProcessURL runs one URL through the state machine and returns its
// terminal outcome. Every failure is folded into the outcome; nothing
// propagates.
func (o *Orchestrator) ProcessURL(ctx context.Context, url string) *models.Outcome {
	meta, err := o.extractor.Probe(ctx, url)
	if err != nil {
		// Probes are best-effort; the download may still work.
		o.log.D(1, "Probe failed for %q, continuing without metadata: %v", url, err)
		meta = nil
	}

	if meta != nil {
		if path, ok := file.FindExisting(url, meta.Title, o.set, o.log); ok {
			o.log.I("File already exists, skipping: %s", path)
			return &models.Outcome{
				Status:       models.StatusSkipped,
				Title:        meta.Title,
				ExistingFile: path,
				UploadDate:   meta.UploadDate,
			}
		}
	}

	throttle := downloads.NewThrottle(url, o.set.Behavior.ProgressUpdateInterval, o.set.Behavior.QuietDownload, o.log)
	o.log.I("Starting download: %s", url)

	got, err := o.extractor.Fetch(ctx, url, throttle.Handle)
	if err != nil {
		fe := downloads.ClassifyFetchError(err)
		o.logFetchFailure(url, fe)
		return &models.Outcome{
			Status:  models.StatusFailed,
			ErrKind: fe.Kind,
		}
	}
	if got == nil {
		o.log.E("No info extracted for: %s", url)
		return &models.Outcome{
			Status:  models.StatusFailed,
			ErrKind: models.FetchGeneric,
			Detail:  "NO INFO EXTRACTED",
		}
	}

	outcome := &models.Outcome{
		Status:   models.StatusSucceeded,
		Title:    got.Title,
		Duration: got.Duration,
		Filesize: got.Filesize,
		Filepath: got.Filepath,
	}
	if outcome.Title == "" {
		outcome.Title = consts.UnknownTitle
	}

	// The fetch reports what it knows; fill the gaps from the probe.
	if meta != nil {
		if outcome.Duration == 0 {
			outcome.Duration = meta.Duration
		}
		if outcome.Filesize == 0 {
			outcome.Filesize = meta.Filesize
		}
		outcome.UploadDate = meta.UploadDate
	}

	o.log.S("Successfully downloaded: '%s'", outcome.Title)
	if outcome.Duration > 0 {
		o.log.I("Duration: %.2f seconds", outcome.Duration)
	}
	if outcome.Filesize > 0 {
		o.log.I("File size: %.2f MB", float64(outcome.Filesize)/(1024*1024))
	}

	return outcome
}

// LogSummary prints the end-of-run count block.
func (o *Orchestrator) LogSummary() {
	o.log.I("=== Download Summary ===")
	o.log.I("Total processed: %d", o.stats.Processed)
	o.log.I("Successful: %d", o.stats.Succeeded)
	o.log.I("Skipped (existing): %d", o.stats.Skipped)
	o.log.I("Errors: %d", o.stats.Failed)
}

// logFetchFailure logs one classified fetch failure with its URL.
func (o *Orchestrator) logFetchFailure(url string, fe *models.FetchError) {
	switch fe.Kind {
	case models.FetchNotFound:
		o.log.E("Content not found (404): %s", url)
	case models.FetchForbidden:
		o.log.E("Access forbidden (403): %s", url)
	case models.FetchUnsupported:
		o.log.E("Unsupported URL format: %s", url)
	case models.FetchExtractor:
		o.log.E("Extractor error for %s: %v", url, fe.Err)
	default:
		o.log.E("Download error for %s: %v", url, fe.Err)
	}
}

// record writes one history row for a processed URL. History failures
// are logged and swallowed; the run's durability source of truth is
// the links file.
func (o *Orchestrator) record(ctx context.Context, url string, out *models.Outcome) {
	if o.history == nil {
		return
	}

	rec := &models.DownloadRecord{
		RunID:        o.runID,
		URL:          url,
		Title:        out.Title,
		Status:       out.Status,
		Detail:       out.Detail,
		FilePath:     out.Filepath,
		DurationSecs: out.Duration,
		FileSize:     out.Filesize,
		UploadDate:   out.UploadDate,
	}
	if out.Status == models.StatusSkipped {
		rec.FilePath = out.ExistingFile
	}
	if out.Status == models.StatusFailed && rec.Detail == "" {
		rec.Detail = string(out.ErrKind)
	}

	if err := o.history.RecordDownload(ctx, rec); err != nil {
		o.log.W("History row not recorded for %q: %v", url, err)
	}
}

// remaining counts eligible entries after index.
func remaining(links *file.LinkManager, index int) int {
	n := 0
	for _, e := range links.Entries() {
		if e.Index > index && file.Eligible(e) {
			n++
		}
	}
	return n
}
