// Package file owns the links file and the existing-output scan.
package file

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audiodownloader/internal/domain/consts"
	"audiodownloader/internal/domain/errconsts"
	"audiodownloader/internal/models"
	"audiodownloader/internal/utils/logging"
)

// LinkManager owns the ordered line sequence of one links file. Lines
// keep their position forever; processing only replaces the text of
// the processed line.
type LinkManager struct {
	path    string
	entries []*models.LinkEntry
	log     *logging.Logger
}

// NewLinkManager returns a manager for the links file at path.
func NewLinkManager(path string, log *logging.Logger) *LinkManager {
	return &LinkManager{
		path: path,
		log:  log,
	}
}

// Load reads every line of the links file in order. Comments and blank
// lines are kept so rewrites preserve the file's structure.
func (lm *LinkManager) Load() error {
	f, err := os.Open(lm.path)
	if err != nil {
		return fmt.Errorf(errconsts.LinksFileReadFail, lm.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			lm.log.E("failed to close file %q: %v", lm.path, err)
		}
	}()

	lm.entries = lm.entries[:0]
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()
		lm.entries = append(lm.entries, &models.LinkEntry{
			Raw:   raw,
			URL:   eligibleURL(raw),
			Index: len(lm.entries),
		})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf(errconsts.LinksFileReadFail, lm.path, err)
	}

	return nil
}

// Entries returns the ordered line sequence.
func (lm *LinkManager) Entries() []*models.LinkEntry {
	return lm.entries
}

// Path returns the links file location.
func (lm *LinkManager) Path() string {
	return lm.path
}

// Annotate replaces the processed entry's text with the comment-marked
// outcome line and immediately flushes the whole sequence to disk, so
// an interrupted run never reprocesses finished URLs.
func (lm *LinkManager) Annotate(e *models.LinkEntry, o *models.Outcome) error {
	e.Raw = fmt.Sprintf("%s %s %s %s", consts.CommentPrefix, e.URL, consts.CommentPrefix, o.Summary())
	e.URL = ""
	return lm.Flush()
}

// Flush writes the current line sequence back to the links file. The
// write goes to a temp file in the same directory and renames over the
// original, so a crash mid-write cannot truncate the file.
func (lm *LinkManager) Flush() error {
	// Temp files are created 0600; carry the real file's mode over so
	// the rename does not tighten user permissions.
	mode := os.FileMode(consts.PermsFile)
	if info, err := os.Stat(lm.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(lm.path), filepath.Base(lm.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf(errconsts.LinksFileWriteFail, lm.path, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf(errconsts.LinksFileWriteFail, lm.path, err)
	}

	w := bufio.NewWriter(tmp)
	for _, e := range lm.entries {
		if _, err := w.WriteString(e.Raw + "\n"); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
			return fmt.Errorf(errconsts.LinksFileWriteFail, lm.path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf(errconsts.LinksFileWriteFail, lm.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf(errconsts.LinksFileWriteFail, lm.path, err)
	}

	if err := os.Rename(tmpName, lm.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf(errconsts.LinksFileWriteFail, lm.path, err)
	}
	return nil
}

// Eligible reports whether the entry should be processed this run:
// non-empty after trimming, not already annotated, and URL-scheme
// prefixed.
func Eligible(e *models.LinkEntry) bool {
	return e.URL != ""
}

// eligibleURL returns the trimmed URL for a processable line, or ""
// for blank, commented and non-URL lines.
func eligibleURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return ""
	case strings.HasPrefix(trimmed, consts.CommentPrefix):
		return ""
	case strings.HasPrefix(trimmed, consts.SchemeHTTP), strings.HasPrefix(trimmed, consts.SchemeHTTPS):
		return trimmed
	default:
		return ""
	}
}

// AppendURLs appends the URLs not already present in the links file,
// creating the file if needed. A URL counts as present when it appears
// raw or inside an annotated line. Returns how many were written.
func AppendURLs(path string, urls []string, log *logging.Logger) (int, error) {
	if len(urls) == 0 {
		return 0, nil
	}

	existing := make(map[string]struct{})
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			existing[line] = struct{}{}
			// Annotated lines look like '# <url> # <summary>'.
			if strings.HasPrefix(line, consts.CommentPrefix) {
				fields := strings.Fields(line)
				if len(fields) >= 2 {
					existing[fields[1]] = struct{}{}
				}
			}
		}
		if err := scanner.Err(); err != nil {
			_ = f.Close()
			return 0, fmt.Errorf(errconsts.LinksFileReadFail, path, err)
		}
		if err := f.Close(); err != nil {
			log.E("failed to close file %q: %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		return 0, fmt.Errorf(errconsts.LinksFileReadFail, path, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, consts.PermsFile)
	if err != nil {
		return 0, fmt.Errorf(errconsts.LinksFileWriteFail, path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.E("failed to close file %q: %v", path, err)
		}
	}()

	w := bufio.NewWriter(f)
	written := 0
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := existing[u]; ok {
			continue
		}
		if _, err := w.WriteString(u + "\n"); err != nil {
			return written, fmt.Errorf(errconsts.LinksFileWriteFail, path, err)
		}
		existing[u] = struct{}{}
		written++
	}
	if err := w.Flush(); err != nil {
		return written, fmt.Errorf(errconsts.LinksFileWriteFail, path, err)
	}

	return written, nil
}
