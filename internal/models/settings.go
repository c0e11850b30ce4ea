package models

// AudioSettings holds the output format parameters handed to the extractor.
type AudioSettings struct {
	Codec      string `json:"codec"`
	Quality    string `json:"quality"`
	SampleRate string `json:"sample_rate"`
}

// PathSettings holds the file and directory locations for a run.
type PathSettings struct {
	LinksFile  string `json:"links_file"`
	OutputDir  string `json:"output_dir"`
	LogFile    string `json:"log_file"`
	HistoryDB  string `json:"history_db"`
	ConfigFile string `json:"-"`
}

// BehaviorSettings holds toggles affecting how downloads run.
type BehaviorSettings struct {
	SkipExisting           bool    `json:"skip_existing"`
	ProgressUpdateInterval float64 `json:"progress_update_interval"`
	QuietDownload          bool    `json:"quiet_download"`
	CookieSource           string  `json:"cookie_source"`
}

// LoggingSettings holds the sink levels and file timestamp layout.
type LoggingSettings struct {
	Level        string `json:"level"`
	ConsoleLevel string `json:"console_level"`
	DateFormat   string `json:"date_format"`
	Verbosity    int    `json:"verbosity"`
}

// Settings is the resolved program configuration. Built once per run
// from defaults, the config file, and terminal flags; immutable
// afterwards.
type Settings struct {
	Audio    AudioSettings    `json:"audio"`
	Paths    PathSettings     `json:"paths"`
	Behavior BehaviorSettings `json:"behavior"`
	Logging  LoggingSettings  `json:"logging"`

	// SingleURL is set when the run processes one terminal-supplied
	// URL instead of the links file.
	SingleURL string `json:"-"`
}
