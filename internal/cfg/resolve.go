package cfg

import (
	"fmt"
	"os"

	"audiodownloader/internal/domain/consts"
	"audiodownloader/internal/domain/keys"
	"audiodownloader/internal/models"
	"audiodownloader/internal/validation"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Resolve merges defaults, the config file, and terminal flags into
// the immutable Settings for this run. Config trouble never fails the
// run; it surfaces as warnings to log once the logger exists.
//
// Fallback granularity is per-field: every key carries a default, so a
// config file supplying a subset of fields overrides only those.
func Resolve(fs *pflag.FlagSet) (*models.Settings, []string, error) {
	v := viper.New()
	setDefaults(v)

	configFile, err := fs.GetString(keys.ConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read --%s flag: %w", keys.ConfigFile, err)
	}

	var warnings []string
	warnings = append(warnings, loadConfigFile(v, configFile)...)

	set, valWarnings, err := buildSettings(v, fs, configFile)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, valWarnings...)

	return set, warnings, nil
}

// setDefaults registers the per-field fallback values.
func setDefaults(v *viper.Viper) {
	v.SetDefault(keys.CfgAudioCodec, consts.ACodecMP3)
	v.SetDefault(keys.CfgAudioQuality, "320")
	v.SetDefault(keys.CfgAudioSampleRate, "48000")

	v.SetDefault(keys.CfgPathsLinksFile, "links.txt")
	v.SetDefault(keys.CfgPathsOutputDir, "./audiodownloads")
	v.SetDefault(keys.CfgPathsLogFile, "audiodownloader.log")
	v.SetDefault(keys.CfgPathsHistoryDB, "audiodownloader.db")

	v.SetDefault(keys.CfgBehaviorSkipExisting, true)
	v.SetDefault(keys.CfgBehaviorProgressInterval, 1.0)
	v.SetDefault(keys.CfgBehaviorQuietDownload, false)
	v.SetDefault(keys.CfgBehaviorCookieSource, consts.CookieSourceNone)

	v.SetDefault(keys.CfgLoggingLevel, consts.LogLevelInfo)
	v.SetDefault(keys.CfgLoggingConsoleLevel, consts.LogLevelInfo)
	v.SetDefault(keys.CfgLoggingDateFormat, "2006-01-02 15:04:05")
	v.SetDefault(keys.CfgLoggingVerbosity, 0)
}

// loadConfigFile reads the JSON config file into v. Missing files,
// parse failures and I/O errors all fall back to defaults; the
// returned warnings describe what happened.
func loadConfigFile(v *viper.Viper, path string) []string {
	if _, err := os.Stat(path); err != nil {
		return []string{fmt.Sprintf("Config file %s not found, using defaults", path)}
	}

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return []string{fmt.Sprintf("Error loading config file %s: %v", path, err),
			"Using default configuration"}
	}
	return nil
}

// buildSettings assembles the Settings value, applying terminal
// overrides after the file load and clamping invalid values.
func buildSettings(v *viper.Viper, fs *pflag.FlagSet, configFile string) (*models.Settings, []string, error) {
	var warnings []string

	set := &models.Settings{}
	set.Paths.ConfigFile = configFile

	codec, ok := validation.ValidateAudioCodec(v.GetString(keys.CfgAudioCodec))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("Unsupported audio codec %q, using %q",
			v.GetString(keys.CfgAudioCodec), codec))
	}
	set.Audio.Codec = codec

	quality, ok := validation.ValidateAudioQuality(v.GetString(keys.CfgAudioQuality))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("Invalid audio quality %q, using %q",
			v.GetString(keys.CfgAudioQuality), quality))
	}
	set.Audio.Quality = quality

	rate, ok := validation.ValidateSampleRate(v.GetString(keys.CfgAudioSampleRate))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("Invalid sample rate %q, using %q",
			v.GetString(keys.CfgAudioSampleRate), rate))
	}
	set.Audio.SampleRate = rate

	set.Paths.LinksFile = v.GetString(keys.CfgPathsLinksFile)
	set.Paths.OutputDir = v.GetString(keys.CfgPathsOutputDir)
	set.Paths.LogFile = v.GetString(keys.CfgPathsLogFile)
	set.Paths.HistoryDB = v.GetString(keys.CfgPathsHistoryDB)

	set.Behavior.SkipExisting = v.GetBool(keys.CfgBehaviorSkipExisting)
	set.Behavior.ProgressUpdateInterval = validation.ValidateProgressInterval(v.GetFloat64(keys.CfgBehaviorProgressInterval))
	set.Behavior.QuietDownload = v.GetBool(keys.CfgBehaviorQuietDownload)

	cookieSource, ok := validation.ValidateCookieSource(v.GetString(keys.CfgBehaviorCookieSource))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("Unknown cookie source %q, cookies disabled",
			v.GetString(keys.CfgBehaviorCookieSource)))
	}
	set.Behavior.CookieSource = cookieSource

	level, ok := validation.ValidateLogLevel(v.GetString(keys.CfgLoggingLevel))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("Unknown log level %q, using %s",
			v.GetString(keys.CfgLoggingLevel), level))
	}
	set.Logging.Level = level

	consoleLevel, ok := validation.ValidateLogLevel(v.GetString(keys.CfgLoggingConsoleLevel))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("Unknown console log level %q, using %s",
			v.GetString(keys.CfgLoggingConsoleLevel), consoleLevel))
	}
	set.Logging.ConsoleLevel = consoleLevel

	set.Logging.DateFormat = v.GetString(keys.CfgLoggingDateFormat)
	set.Logging.Verbosity = validation.ValidateDebugLevel(v.GetInt(keys.CfgLoggingVerbosity))

	// Terminal overrides win over the file.
	if err := applyFlagOverrides(set, fs, &warnings); err != nil {
		return nil, nil, err
	}

	return set, warnings, nil
}

// applyFlagOverrides folds explicitly set terminal flags into set.
// The skip-existing flag only forces the behavior on, never off.
func applyFlagOverrides(set *models.Settings, fs *pflag.FlagSet, warnings *[]string) error {
	if fs.Changed(keys.LinksFile) {
		links, err := fs.GetString(keys.LinksFile)
		if err != nil {
			return err
		}
		set.Paths.LinksFile = links
	}

	if fs.Changed(keys.OutputDir) {
		out, err := fs.GetString(keys.OutputDir)
		if err != nil {
			return err
		}
		set.Paths.OutputDir = out
	}

	if fs.Changed(keys.SkipExisting) {
		skip, err := fs.GetBool(keys.SkipExisting)
		if err != nil {
			return err
		}
		if skip {
			set.Behavior.SkipExisting = true
		}
	}

	if fs.Changed(keys.CookieSource) {
		raw, err := fs.GetString(keys.CookieSource)
		if err != nil {
			return err
		}
		source, ok := validation.ValidateCookieSource(raw)
		if !ok {
			*warnings = append(*warnings, fmt.Sprintf("Unknown cookie source %q, cookies disabled", raw))
		}
		set.Behavior.CookieSource = source
	}

	if fs.Changed(keys.DebugLevel) {
		level, err := fs.GetInt(keys.DebugLevel)
		if err != nil {
			return err
		}
		set.Logging.Verbosity = validation.ValidateDebugLevel(level)
	}

	if fs.Changed(keys.SingleURL) {
		url, err := fs.GetString(keys.SingleURL)
		if err != nil {
			return err
		}
		if err := validation.ValidateURL(url); err != nil {
			return err
		}
		set.SingleURL = url
	}

	return nil
}
