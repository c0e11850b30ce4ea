package file

import (
	"io/fs"
	"path/filepath"
	"strings"

	"audiodownloader/internal/models"
	"audiodownloader/internal/parsing"
	"audiodownloader/internal/utils/logging"
)

// FindExisting reports whether an output for the URL already exists on
// disk. The probed title (when present) is matched first; otherwise a
// potential title derived from the URL's last path segment is tried.
// Matching is a case-insensitive filename substring check against
// files carrying the configured codec extension, walked in filesystem
// enumeration order. Substring collisions are an accepted tradeoff of
// the heuristic.
func FindExisting(url, title string, set *models.Settings, log *logging.Logger) (string, bool) {
	if !set.Behavior.SkipExisting {
		return "", false
	}

	ext := "." + strings.ToLower(set.Audio.Codec)

	if title != "" {
		if match := scanForTitle(set.Paths.OutputDir, title, ext, log); match != "" {
			return match, true
		}
	}

	potential := parsing.PotentialTitle(url)
	log.D(2, "No match for probed title, scanning with potential title %q", potential)
	if match := scanForTitle(set.Paths.OutputDir, potential, ext, log); match != "" {
		return match, true
	}

	return "", false
}

// scanForTitle walks the output directory tree and returns the first
// file whose name carries ext and contains title case-insensitively.
func scanForTitle(dir, title, ext string, log *logging.Logger) string {
	needle := strings.ToLower(title)

	var match string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if strings.HasSuffix(name, ext) && strings.Contains(name, needle) {
			match = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		log.D(1, "Existing-file scan of %q stopped early: %v", dir, err)
	}

	return match
}
