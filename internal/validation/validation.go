// Package validation handles validation of user flag and config input.
package validation

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"audiodownloader/internal/domain/consts"
	"audiodownloader/internal/domain/regex"
)

// ValidateDirectory validates that the directory exists, else creates it if desired.
func ValidateDirectory(dir string, createIfNotFound bool) (os.FileInfo, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("path %q exists but is not a directory", dir)
		}
		return info, nil
	case os.IsNotExist(err):
		if !createIfNotFound {
			return nil, fmt.Errorf("directory %q does not exist", dir)
		}
		if err := os.MkdirAll(dir, consts.PermsDir); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
		return os.Stat(dir)
	default:
		return nil, fmt.Errorf("failed to stat directory %q: %w", dir, err)
	}
}

// ValidateFile validates that the file exists, else creates it if desired.
func ValidateFile(f string, createIfNotFound bool) (os.FileInfo, error) {
	info, err := os.Stat(f)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, fmt.Errorf("path %q is a directory, should be a file", f)
		}
		return info, nil
	case os.IsNotExist(err):
		if !createIfNotFound {
			return nil, fmt.Errorf("file %q does not exist", f)
		}
		file, err := os.OpenFile(f, os.O_CREATE|os.O_WRONLY, consts.PermsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create file %q: %w", f, err)
		}
		if err := file.Close(); err != nil {
			return nil, fmt.Errorf("failed to close new file %q: %w", f, err)
		}
		return os.Stat(f)
	default:
		return nil, fmt.Errorf("failed to stat file %q: %w", f, err)
	}
}

// ValidateAudioCodec returns the canonical codec name, or the default
// with ok false when the input is not a supported output codec.
func ValidateAudioCodec(codec string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(codec))
	c = strings.TrimPrefix(c, ".")
	if consts.ValidAudioCodecs[c] {
		return c, true
	}
	return consts.ACodecMP3, false
}

// ValidateAudioQuality checks the bitrate value handed to the
// extractor. Digits only, e.g. "320".
func ValidateAudioQuality(quality string) (string, bool) {
	q := strings.TrimSpace(quality)
	q = strings.TrimSuffix(strings.ToLower(q), "k")
	if regex.NumericOnlyCompile().MatchString(q) {
		return q, true
	}
	return "320", false
}

// ValidateSampleRate checks the ffmpeg sample rate value. Digits only,
// e.g. "48000".
func ValidateSampleRate(rate string) (string, bool) {
	r := strings.TrimSpace(rate)
	if regex.NumericOnlyCompile().MatchString(r) {
		return r, true
	}
	return "48000", false
}

// ValidateLogLevel returns the canonical level name, or INFO with ok
// false for unrecognized input.
func ValidateLogLevel(level string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case consts.LogLevelDebug:
		return consts.LogLevelDebug, true
	case consts.LogLevelInfo:
		return consts.LogLevelInfo, true
	case consts.LogLevelWarning, "WARN":
		return consts.LogLevelWarning, true
	case consts.LogLevelError:
		return consts.LogLevelError, true
	default:
		return consts.LogLevelInfo, false
	}
}

// ValidateProgressInterval clamps nonpositive intervals to the default
// of one percentage point.
func ValidateProgressInterval(interval float64) float64 {
	if interval <= 0 {
		return 1.0
	}
	return interval
}

// ValidateDebugLevel clamps the terminal debug verbosity.
func ValidateDebugLevel(level int) int {
	return min(max(level, 0), 3)
}

// ValidateCookieSource checks the cookie source value.
func ValidateCookieSource(source string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(source))
	switch s {
	case consts.CookieSourceNone, consts.CookieSourceBrowser:
		return s, true
	}
	return consts.CookieSourceNone, false
}

// ValidateURL checks that the string parses as an http or https URL.
func ValidateURL(u string) error {
	parsed, err := url.Parse(u)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", u, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", u)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL %q has no host", u)
	}
	return nil
}
