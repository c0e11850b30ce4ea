package parsing_test

import (
	"testing"

	"audiodownloader/internal/parsing"
)

func TestNormalizeUploadDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"extractor compact form", "20240131", "2024-01-31"},
		{"already hyphenated", "2024-01-31", "2024-01-31"},
		{"word date", "Jan 31, 2024", "2024-01-31"},
		{"empty", "", ""},
		{"garbage passes through", "someday", "someday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsing.NormalizeUploadDate(tt.input); got != tt.want {
				t.Errorf("NormalizeUploadDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPotentialTitle(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain path", "https://example.com/tracks/my-song", "my-song"},
		{"trailing slash trimmed", "https://example.com/tracks/my-song/", "my-song"},
		{"bare host", "https://example.com", "example.com"},
		{"empty input", "", "unknown"},
		{"only slashes", "///", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsing.PotentialTitle(tt.url); got != tt.want {
				t.Errorf("PotentialTitle(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
