// Package app wires one program run together: logging, history
// database, extractor boundary, and the orchestrator.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"audiodownloader/internal/contracts"
	"audiodownloader/internal/database"
	"audiodownloader/internal/database/repo"
	"audiodownloader/internal/domain/consts"
	"audiodownloader/internal/domain/errconsts"
	"audiodownloader/internal/downloads"
	"audiodownloader/internal/file"
	"audiodownloader/internal/models"
	"audiodownloader/internal/process"
	"audiodownloader/internal/scraper"
	"audiodownloader/internal/utils/logging"
	"audiodownloader/internal/validation"
)

// Run executes the batch loop, or single-URL mode when set.SingleURL
// is present.
func Run(ctx context.Context, set *models.Settings, warnings []string) error {
	log, err := logging.New(set)
	if err != nil {
		return err
	}
	defer log.Close()
	logWarnings(log, warnings)

	log.I("=== Audio Downloader v%s Started ===", consts.AppVersion)
	log.I("Config file: %s", set.Paths.ConfigFile)
	log.I("Links file: %s", set.Paths.LinksFile)
	log.I("Output directory: %s", set.Paths.OutputDir)
	log.I("Skip existing files: %t", set.Behavior.SkipExisting)
	log.I("Audio format: %s %skbps %sHz", set.Audio.Codec, set.Audio.Quality, set.Audio.SampleRate)

	if _, err := validation.ValidateDirectory(set.Paths.OutputDir, true); err != nil {
		log.E("Cannot proceed without valid output directory")
		return fmt.Errorf(errconsts.OutputDirFail, set.Paths.OutputDir, err)
	}

	// Links file mode loads first; a missing file is fatal before any
	// download starts.
	var links *file.LinkManager
	cookieTarget := set.SingleURL
	if set.SingleURL == "" {
		links = file.NewLinkManager(set.Paths.LinksFile, log)
		if err := links.Load(); err != nil {
			log.E("Links file not found: %s", set.Paths.LinksFile)
			return err
		}
		log.I("Found %d lines in %s", len(links.Entries()), set.Paths.LinksFile)

		for _, e := range links.Entries() {
			if file.Eligible(e) {
				cookieTarget = e.URL
				break
			}
		}
	}

	db, history := openHistory(set, log)
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.E("failed to close history database: %v", err)
			}
		}()
	}

	cookieFile := prepareCookies(ctx, set, log, cookieTarget)
	extractor := downloads.NewYtDlp(set, log, cookieFile)
	orch := process.New(set, log, extractor, history)
	log.D(1, "Run ID: %s", orch.RunID())

	if set.SingleURL != "" {
		orch.RunSingle(ctx, set.SingleURL)
	} else {
		orch.Run(ctx, links)
	}

	orch.LogSummary()
	log.I("=== Audio Downloader v%s Finished ===", consts.AppVersion)
	return nil
}

// Scrape collects http(s) links from a web page and appends the ones
// not already known (links file or history) to the links file.
func Scrape(ctx context.Context, set *models.Settings, warnings []string, pageURL, match string) error {
	log, err := logging.New(set)
	if err != nil {
		return err
	}
	defer log.Close()
	logWarnings(log, warnings)

	if err := validation.ValidateURL(pageURL); err != nil {
		return err
	}

	candidates, err := scraper.New(log).CollectLinks(ctx, pageURL, match)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		log.I("No links found at %s", pageURL)
		return nil
	}

	var known []string
	db, history := openHistory(set, log)
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.E("failed to close history database: %v", err)
			}
		}()
		if urls, err := history.DownloadedURLs(ctx); err != nil {
			log.W("Could not load downloaded URLs from history: %v", err)
		} else {
			known = urls
		}
	}

	fresh := scraper.FilterKnown(candidates, known)
	n, err := file.AppendURLs(set.Paths.LinksFile, fresh, log)
	if err != nil {
		return err
	}

	log.S("Added %d new links to %s (%d collected, %d already known)",
		n, set.Paths.LinksFile, len(candidates), len(candidates)-n)
	return nil
}

// History lists recent download rows on the console.
func History(ctx context.Context, set *models.Settings, warnings []string, limit int, failedOnly bool) error {
	log, err := logging.New(set)
	if err != nil {
		return err
	}
	defer log.Close()
	logWarnings(log, warnings)

	db, history := openHistory(set, log)
	if db == nil {
		return fmt.Errorf("no history available at %q", set.Paths.HistoryDB)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.E("failed to close history database: %v", err)
		}
	}()

	records, err := history.RecentDownloads(ctx, limit, failedOnly)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		log.I("No download history recorded yet")
		return nil
	}

	for _, rec := range records {
		detail := rec.Title
		if rec.Status == models.StatusFailed {
			detail = rec.Detail
		}
		log.P("%s  %-9s  %s  %s",
			rec.CreatedAt.Format("2006-01-02 15:04"), rec.Status, rec.URL, detail)
	}
	return nil
}

// openHistory opens the history database. Open failures degrade to a
// run without history rather than aborting.
func openHistory(set *models.Settings, log *logging.Logger) (*database.Database, contracts.HistoryStore) {
	db, err := database.InitDB(set.Paths.HistoryDB)
	if err != nil {
		log.W("History disabled: %v", err)
		return nil, nil
	}
	return db, repo.GetHistoryStore(db.DB, log)
}

// prepareCookies exports browser cookies for the target URL's domain
// when the cookie source asks for them. Failures degrade to cookieless
// downloads.
func prepareCookies(ctx context.Context, set *models.Settings, log *logging.Logger, target string) string {
	if set.Behavior.CookieSource != consts.CookieSourceBrowser || target == "" {
		return ""
	}

	path := filepath.Join(os.TempDir(), consts.AppName+"-cookies.txt")
	cookieFile, err := scraper.NewCookieManager(log).ExportCookieFile(ctx, target, path)
	if err != nil {
		log.W("Browser cookie export failed, downloading without cookies: %v", err)
		return ""
	}
	return cookieFile
}

// logWarnings replays configuration warnings gathered before the
// logger existed.
func logWarnings(log *logging.Logger, warnings []string) {
	for _, w := range warnings {
		log.W("%s", w)
	}
}
