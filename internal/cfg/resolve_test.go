package cfg

import (
	"os"
	"path/filepath"
	"testing"

	"audiodownloader/internal/models"
)

func resolveWithArgs(t *testing.T, args ...string) (*models.Settings, []string) {
	t.Helper()
	cmd := NewRootCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}
	set, warnings, err := Resolve(cmd.PersistentFlags())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	return set, warnings
}

func assertDefaults(t *testing.T, set *models.Settings) {
	t.Helper()
	if set.Audio.Codec != "mp3" || set.Audio.Quality != "320" || set.Audio.SampleRate != "48000" {
		t.Errorf("audio defaults wrong: %+v", set.Audio)
	}
	if set.Paths.LinksFile != "links.txt" || set.Paths.OutputDir != "./audiodownloads" ||
		set.Paths.LogFile != "audiodownloader.log" {
		t.Errorf("path defaults wrong: %+v", set.Paths)
	}
	if !set.Behavior.SkipExisting || set.Behavior.ProgressUpdateInterval != 1.0 || set.Behavior.QuietDownload {
		t.Errorf("behavior defaults wrong: %+v", set.Behavior)
	}
	if set.Logging.Level != "INFO" || set.Logging.ConsoleLevel != "INFO" {
		t.Errorf("logging defaults wrong: %+v", set.Logging)
	}
}

func TestResolveMissingConfigFallsBackToDefaults(t *testing.T) {
	set, warnings := resolveWithArgs(t, "-c", filepath.Join(t.TempDir(), "absent.json"))

	assertDefaults(t, set)
	if len(warnings) == 0 {
		t.Error("expected a fallback warning for the missing config file")
	}
}

func TestResolveMalformedConfigFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	set, warnings := resolveWithArgs(t, "-c", path)

	assertDefaults(t, set)
	if len(warnings) == 0 {
		t.Error("expected a fallback warning for the malformed config file")
	}
}

func TestResolvePartialConfigOverridesPerField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := `{"audio": {"codec": "opus"}, "behavior": {"skip_existing": false}}`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	set, _ := resolveWithArgs(t, "-c", path)

	if set.Audio.Codec != "opus" {
		t.Errorf("codec = %q, want opus from file", set.Audio.Codec)
	}
	if set.Audio.Quality != "320" {
		t.Errorf("quality = %q, unset fields must keep defaults", set.Audio.Quality)
	}
	if set.Behavior.SkipExisting {
		t.Error("skip_existing = true, file value must win over default")
	}
}

func TestResolveFlagOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := `{"paths": {"links_file": "from-file.txt"}, "behavior": {"skip_existing": false}}`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	set, _ := resolveWithArgs(t, "-c", path, "-l", "from-flag.txt", "-o", "/tmp/out", "-s")

	if set.Paths.LinksFile != "from-flag.txt" {
		t.Errorf("links file = %q, flag must override file", set.Paths.LinksFile)
	}
	if set.Paths.OutputDir != "/tmp/out" {
		t.Errorf("output dir = %q, flag must override default", set.Paths.OutputDir)
	}
	if !set.Behavior.SkipExisting {
		t.Error("-s must force skip_existing on over the file's false")
	}
}

func TestResolveClampsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := `{"audio": {"codec": "midi", "quality": "high"},
		"behavior": {"progress_update_interval": -3},
		"logging": {"level": "NOISY"}}`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	set, warnings := resolveWithArgs(t, "-c", path)

	if set.Audio.Codec != "mp3" {
		t.Errorf("invalid codec must clamp to mp3, got %q", set.Audio.Codec)
	}
	if set.Audio.Quality != "320" {
		t.Errorf("invalid quality must clamp to 320, got %q", set.Audio.Quality)
	}
	if set.Behavior.ProgressUpdateInterval != 1.0 {
		t.Errorf("nonpositive interval must clamp to 1.0, got %v", set.Behavior.ProgressUpdateInterval)
	}
	if set.Logging.Level != "INFO" {
		t.Errorf("unknown log level must clamp to INFO, got %q", set.Logging.Level)
	}
	if len(warnings) < 3 {
		t.Errorf("expected warnings for each clamped value, got %v", warnings)
	}
}

func TestResolveSingleURLMode(t *testing.T) {
	set, _ := resolveWithArgs(t,
		"-c", filepath.Join(t.TempDir(), "absent.json"),
		"-u", "https://example.com/track")

	if set.SingleURL != "https://example.com/track" {
		t.Errorf("single URL = %q", set.SingleURL)
	}
}

func TestResolveRejectsBadSingleURL(t *testing.T) {
	cmd := NewRootCmd()
	if err := cmd.ParseFlags([]string{
		"-c", filepath.Join(t.TempDir(), "absent.json"),
		"-u", "ftp://example.com/track",
	}); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}

	if _, _, err := Resolve(cmd.PersistentFlags()); err == nil {
		t.Error("expected an error for a non-http single URL")
	}
}
