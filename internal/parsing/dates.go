// Package parsing converts raw extractor output values into display
// and storage forms.
package parsing

import (
	"strings"

	"audiodownloader/internal/domain/regex"

	"github.com/araddon/dateparse"
)

// HyphenateYyyyMmDd simply hyphenates yyyymmdd date values for display.
func HyphenateYyyyMmDd(d string) string {
	d = strings.ReplaceAll(d, " ", "")
	d = strings.ReplaceAll(d, "-", "")
	if len(d) < 8 {
		return d
	}

	return d[0:4] + "-" + d[4:6] + "-" + d[6:8]
}

// NormalizeUploadDate converts the extractor's upload_date value into
// yyyy-mm-dd. The extractor usually reports bare yyyymmdd; anything
// else goes through a lenient parse. Unparseable input comes back
// unchanged, upload dates are informational only.
func NormalizeUploadDate(d string) string {
	d = strings.TrimSpace(d)
	if d == "" {
		return ""
	}

	if compact := strings.ReplaceAll(d, "-", ""); len(compact) == 8 && regex.NumericOnlyCompile().MatchString(compact) {
		return HyphenateYyyyMmDd(compact)
	}

	t, err := dateparse.ParseAny(d)
	if err != nil {
		return d
	}
	return t.Format("2006-01-02")
}
