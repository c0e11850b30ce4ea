// Package keys holds flag and configuration key names used across the program.
package keys

// Terminal keys
const (
	ConfigFile   string = "config"
	LinksFile    string = "links"
	OutputDir    string = "output"
	SkipExisting string = "skip-existing"
	SingleURL    string = "url"
	CookieSource string = "cookie-source"
	DebugLevel   string = "debug"
)

// Scrape command keys
const (
	ScrapeMatch string = "match"
)

// History command keys
const (
	HistoryLimit  string = "limit"
	HistoryFailed string = "failed"
)

// Config file keys
const (
	CfgAudioCodec      string = "audio.codec"
	CfgAudioQuality    string = "audio.quality"
	CfgAudioSampleRate string = "audio.sample_rate"

	CfgPathsLinksFile string = "paths.links_file"
	CfgPathsOutputDir string = "paths.output_dir"
	CfgPathsLogFile   string = "paths.log_file"
	CfgPathsHistoryDB string = "paths.history_db"

	CfgBehaviorSkipExisting     string = "behavior.skip_existing"
	CfgBehaviorProgressInterval string = "behavior.progress_update_interval"
	CfgBehaviorQuietDownload    string = "behavior.quiet_download"
	CfgBehaviorCookieSource     string = "behavior.cookie_source"

	CfgLoggingLevel        string = "logging.level"
	CfgLoggingConsoleLevel string = "logging.console_level"
	CfgLoggingDateFormat   string = "logging.date_format"
	CfgLoggingVerbosity    string = "logging.verbosity"
)
