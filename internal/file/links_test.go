package file_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audiodownloader/internal/file"
	"audiodownloader/internal/models"
	"audiodownloader/internal/utils/logging"
)

func writeLinksFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "links.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write links file: %v", err)
	}
	return path
}

func TestEligibility(t *testing.T) {
	path := writeLinksFile(t,
		"https://example.com/a",
		"# a comment",
		"",
		"   http://example.com/b  ",
		"ftp://example.com/c",
		"not a url",
		"# https://example.com/d # Done Title",
	)

	lm := file.NewLinkManager(path, logging.Discard())
	if err := lm.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	entries := lm.Entries()
	if len(entries) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(entries))
	}

	var eligible []string
	for _, e := range entries {
		if file.Eligible(e) {
			eligible = append(eligible, e.URL)
		}
	}

	want := []string{"https://example.com/a", "http://example.com/b"}
	if len(eligible) != len(want) {
		t.Fatalf("expected %d eligible entries, got %d: %v", len(want), len(eligible), eligible)
	}
	for i := range want {
		if eligible[i] != want[i] {
			t.Errorf("eligible[%d] = %q, want %q", i, eligible[i], want[i])
		}
	}
}

func TestAnnotatePersistsImmediately(t *testing.T) {
	path := writeLinksFile(t,
		"https://example.com/song",
		"# keep me",
		"https://example.com/other",
	)

	lm := file.NewLinkManager(path, logging.Discard())
	if err := lm.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	entry := lm.Entries()[0]
	outcome := &models.Outcome{Status: models.StatusSucceeded, Title: "My Song"}
	if err := lm.Annotate(entry, outcome); err != nil {
		t.Fatalf("annotate failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	if lines[0] != "# https://example.com/song # My Song" {
		t.Errorf("annotated line mismatch, got %q", lines[0])
	}
	if lines[1] != "# keep me" {
		t.Errorf("comment line was modified, got %q", lines[1])
	}
	if lines[2] != "https://example.com/other" {
		t.Errorf("untouched entry was modified, got %q", lines[2])
	}
	if file.Eligible(entry) {
		t.Error("annotated entry should no longer be eligible")
	}
}

func TestAnnotatedFileIsIdempotent(t *testing.T) {
	path := writeLinksFile(t, "https://example.com/a", "https://example.com/b")

	lm := file.NewLinkManager(path, logging.Discard())
	if err := lm.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	for _, e := range lm.Entries() {
		if !file.Eligible(e) {
			continue
		}
		if err := lm.Annotate(e, &models.Outcome{Status: models.StatusSucceeded, Title: "T"}); err != nil {
			t.Fatalf("annotate failed: %v", err)
		}
	}

	// A second load of the fully annotated file finds nothing to do.
	second := file.NewLinkManager(path, logging.Discard())
	if err := second.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	for _, e := range second.Entries() {
		if file.Eligible(e) {
			t.Errorf("entry %q still eligible after annotation", e.Raw)
		}
	}
}

func TestFlushLeavesNoTempFile(t *testing.T) {
	path := writeLinksFile(t, "https://example.com/a")

	lm := file.NewLinkManager(path, logging.Discard())
	if err := lm.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := lm.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	for _, e := range entries {
		if e.Name() != filepath.Base(path) {
			t.Errorf("unexpected leftover file %q", e.Name())
		}
	}
}

func TestFlushKeepsFileMode(t *testing.T) {
	path := writeLinksFile(t, "https://example.com/a")
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}

	lm := file.NewLinkManager(path, logging.Discard())
	if err := lm.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := lm.Annotate(lm.Entries()[0], &models.Outcome{Status: models.StatusSucceeded, Title: "T"}); err != nil {
		t.Fatalf("annotate failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o644 {
		t.Errorf("links file mode = %o after flush, want 644", got)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	lm := file.NewLinkManager(filepath.Join(t.TempDir(), "absent.txt"), logging.Discard())
	if err := lm.Load(); err == nil {
		t.Fatal("expected error for missing links file")
	}
}

func TestAppendURLsSkipsKnown(t *testing.T) {
	path := writeLinksFile(t,
		"https://example.com/a",
		"# https://example.com/b # Done",
	)

	n, err := file.AppendURLs(path, []string{
		"https://example.com/a", // present raw
		"https://example.com/b", // present annotated
		"https://example.com/c", // new
	}, logging.Discard())
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 appended URL, got %d", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if strings.Count(string(data), "https://example.com/c") != 1 {
		t.Errorf("new URL missing or duplicated:\n%s", data)
	}
	if strings.Count(string(data), "https://example.com/a") != 1 {
		t.Errorf("known URL duplicated:\n%s", data)
	}
}

func TestAppendURLsCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new-links.txt")

	n, err := file.AppendURLs(path, []string{"https://example.com/x"}, logging.Discard())
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 appended URL, got %d", n)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("links file was not created: %v", err)
	}
}
