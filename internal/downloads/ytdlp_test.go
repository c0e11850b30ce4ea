package downloads

import (
	"context"
	"strings"
	"testing"

	"audiodownloader/internal/models"
	"audiodownloader/internal/utils/logging"
)

func adapterSettings(quiet bool) *models.Settings {
	set := &models.Settings{}
	set.Audio.Codec = "mp3"
	set.Audio.Quality = "320"
	set.Audio.SampleRate = "48000"
	set.Paths.OutputDir = "/tmp/out"
	set.Behavior.QuietDownload = quiet
	return set
}

func TestFetchCommandKeepsOutputParseableInQuietMode(t *testing.T) {
	loud := NewYtDlp(adapterSettings(false), logging.Discard(), "")
	quiet := NewYtDlp(adapterSettings(true), logging.Discard(), "")

	loudArgs := loud.buildFetchCommand(context.Background(), "https://example.com/a").Args
	quietArgs := quiet.buildFetchCommand(context.Background(), "https://example.com/a").Args

	// The Destination line is the only source of the output path, so
	// quiet mode must never silence the binary itself.
	for _, a := range quietArgs {
		if a == "--quiet" {
			t.Fatal("quiet mode must not pass --quiet to the binary")
		}
	}
	if len(loudArgs) != len(quietArgs) {
		t.Errorf("quiet mode changed the invocation:\nloud:  %v\nquiet: %v", loudArgs, quietArgs)
	}
}

func TestScanFetchOutputCapturesDestination(t *testing.T) {
	y := NewYtDlp(adapterSettings(true), logging.Discard(), "")

	output := strings.Join([]string{
		"[download] Destination: /tmp/out/My Song.webm",
		"[download]  42.0% of 3.00MiB at 1.00MiB/s ETA 00:02",
		"[download] 100.0% of 3.00MiB in 00:03",
		"[ExtractAudio] Destination: /tmp/out/My Song.mp3",
	}, "\n")

	var pcts []string
	out := make(chan fetchScan, 1)
	y.scanFetchOutput(strings.NewReader(output), func(ev models.ProgressEvent) {
		if ev.State == models.ProgressDownloading {
			pcts = append(pcts, ev.Percent)
		}
	}, out)
	scan := <-out

	// The last destination wins: conversion rewrites the path.
	if scan.dest != "/tmp/out/My Song.mp3" {
		t.Errorf("dest = %q, want the post-conversion path", scan.dest)
	}
	if len(pcts) != 2 || pcts[0] != "42.0" || pcts[1] != "100.0" {
		t.Errorf("progress percents = %v", pcts)
	}
}

func TestScanFetchOutputCapturesAlreadyDownloaded(t *testing.T) {
	y := NewYtDlp(adapterSettings(false), logging.Discard(), "")

	output := "[download] /tmp/out/My Song.mp3 has already been downloaded\n"

	out := make(chan fetchScan, 1)
	y.scanFetchOutput(strings.NewReader(output), nil, out)
	scan := <-out

	if scan.dest != "/tmp/out/My Song.mp3" {
		t.Errorf("dest = %q, want the already-downloaded path", scan.dest)
	}
}

func TestScanFetchOutputRetainsErrorLine(t *testing.T) {
	y := NewYtDlp(adapterSettings(false), logging.Discard(), "")

	output := "ERROR: [generic] page: HTTP Error 404: Not Found\n"

	out := make(chan fetchScan, 1)
	y.scanFetchOutput(strings.NewReader(output), nil, out)
	scan := <-out

	if !strings.Contains(scan.errLine, "HTTP Error 404") {
		t.Errorf("errLine = %q, want the extractor error retained", scan.errLine)
	}
}
