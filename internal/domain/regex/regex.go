// Package regex compiles and caches various regex expressions.
package regex

import (
	"regexp"
)

var (
	AnsiEscape      *regexp.Regexp
	DownloadPercent *regexp.Regexp
	NumericOnly     *regexp.Regexp
)

// AnsiEscapeCompile compiles regex for ANSI escape codes
func AnsiEscapeCompile() *regexp.Regexp {
	if AnsiEscape == nil {
		AnsiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	}
	return AnsiEscape
}

// DownloadPercentCompile compiles regex for yt-dlp progress percentages
func DownloadPercentCompile() *regexp.Regexp {
	if DownloadPercent == nil {
		DownloadPercent = regexp.MustCompile(`\[download\]\s+([\d.]+)%`)
	}
	return DownloadPercent
}

// NumericOnlyCompile compiles regex for digit-only strings
func NumericOnlyCompile() *regexp.Regexp {
	if NumericOnly == nil {
		NumericOnly = regexp.MustCompile(`^[0-9]+$`)
	}
	return NumericOnly
}
