package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"audiodownloader/internal/file"
	"audiodownloader/internal/models"
	"audiodownloader/internal/utils/logging"
)

func detectorSettings(outputDir string, skipExisting bool) *models.Settings {
	set := &models.Settings{}
	set.Audio.Codec = "mp3"
	set.Paths.OutputDir = outputDir
	set.Behavior.SkipExisting = skipExisting
	return set
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestFindExistingByProbedTitle(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "My Song.mp3"))

	path, ok := file.FindExisting("https://example.com/watch?v=abc", "My Song", detectorSettings(dir, true), logging.Discard())
	if !ok {
		t.Fatal("expected a match for probed title")
	}
	if filepath.Base(path) != "My Song.mp3" {
		t.Errorf("matched wrong file: %q", path)
	}
}

func TestFindExistingCaseInsensitiveSubstring(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "artist - MY SONG (remaster).mp3"))

	if _, ok := file.FindExisting("https://example.com/x", "my song", detectorSettings(dir, true), logging.Discard()); !ok {
		t.Error("expected case-insensitive substring match")
	}
}

func TestFindExistingScansSubdirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "older", "My Song.mp3"))

	if _, ok := file.FindExisting("https://example.com/x", "My Song", detectorSettings(dir, true), logging.Discard()); !ok {
		t.Error("expected match inside subdirectory")
	}
}

func TestFindExistingIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "My Song.flac"))

	if _, ok := file.FindExisting("https://example.com/x", "My Song", detectorSettings(dir, true), logging.Discard()); ok {
		t.Error("match should require the configured codec extension")
	}
}

func TestFindExistingURLFallback(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "band-live-at-home.mp3"))

	// No probed title: the last URL segment drives the scan.
	if _, ok := file.FindExisting("https://example.com/tracks/band-live-at-home/", "", detectorSettings(dir, true), logging.Discard()); !ok {
		t.Error("expected match via URL-derived potential title")
	}
}

func TestFindExistingDisabled(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "My Song.mp3"))

	if _, ok := file.FindExisting("https://example.com/x", "My Song", detectorSettings(dir, false), logging.Discard()); ok {
		t.Error("skip_existing disabled must never report a match")
	}
}
