package parsing

import "strings"

// PotentialTitle derives a guessed title from a URL: the segment after
// the last '/' once any trailing slash is trimmed. Used by the
// existing-file scan when the extractor reported no title.
func PotentialTitle(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if trimmed == "" {
		return "unknown"
	}

	segment := trimmed[strings.LastIndex(trimmed, "/")+1:]
	if segment == "" {
		return "unknown"
	}
	return segment
}
