package models

// LinkEntry is one line of the links file. Entries keep their position
// across rewrites; only the text of a processed entry changes.
type LinkEntry struct {
	Raw   string
	URL   string
	Index int
}
