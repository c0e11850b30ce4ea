package downloads_test

import (
	"bytes"
	"strings"
	"testing"

	"audiodownloader/internal/downloads"
	"audiodownloader/internal/models"
	"audiodownloader/internal/utils/logging"
)

func pctEvent(p string) models.ProgressEvent {
	return models.ProgressEvent{State: models.ProgressDownloading, Percent: p}
}

func TestThrottleEmitsOnThresholdCrossings(t *testing.T) {
	var buf bytes.Buffer
	throttle := downloads.NewThrottle("https://example.com/x", 5.0, false, logging.ToWriter(&buf))

	for _, p := range []string{"1", "2", "6", "6", "11", "99", "100"} {
		throttle.Handle(pctEvent(p))
	}
	throttle.Handle(models.ProgressEvent{State: models.ProgressFinished})

	out := buf.String()
	if got := strings.Count(out, "Progress:"); got != 3 {
		t.Errorf("expected 3 progress prints, got %d:\n%s", got, out)
	}
	for _, want := range []string{"Progress: 6.0%", "Progress: 11.0%", "Progress: 99.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"Progress: 1.0%", "Progress: 2.0%", "Progress: 100.0%"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("unexpected %q in output:\n%s", unwanted, out)
		}
	}
	if !strings.Contains(out, "Download completed for: https://example.com/x") {
		t.Errorf("missing completion notice:\n%s", out)
	}
}

func TestThrottleIgnoresMalformedPercentages(t *testing.T) {
	var buf bytes.Buffer
	throttle := downloads.NewThrottle("https://example.com/x", 1.0, false, logging.ToWriter(&buf))

	throttle.Handle(pctEvent("not-a-number"))
	throttle.Handle(pctEvent(""))
	throttle.Handle(pctEvent("42.0%"))

	out := buf.String()
	if got := strings.Count(out, "Progress:"); got != 1 {
		t.Errorf("expected 1 progress print, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "Progress: 42.0%") {
		t.Errorf("trailing %% should still parse, got:\n%s", out)
	}
}

func TestThrottleQuietDropsProgressNotNotices(t *testing.T) {
	var buf bytes.Buffer
	throttle := downloads.NewThrottle("https://example.com/x", 1.0, true, logging.ToWriter(&buf))

	for _, p := range []string{"10", "50", "90"} {
		throttle.Handle(pctEvent(p))
	}
	throttle.Handle(models.ProgressEvent{State: models.ProgressFinished})

	out := buf.String()
	if strings.Contains(out, "Progress:") {
		t.Errorf("quiet mode must suppress progress prints:\n%s", out)
	}
	if !strings.Contains(out, "Download completed for: https://example.com/x") {
		t.Errorf("quiet mode must keep the completion notice:\n%s", out)
	}
}

func TestThrottleErrorNoticeBypassesThreshold(t *testing.T) {
	var buf bytes.Buffer
	throttle := downloads.NewThrottle("https://example.com/x", 50.0, false, logging.ToWriter(&buf))

	throttle.Handle(pctEvent("1"))
	throttle.Handle(models.ProgressEvent{State: models.ProgressError})

	out := buf.String()
	if strings.Contains(out, "Progress:") {
		t.Errorf("1%% should not cross a 50-point threshold:\n%s", out)
	}
	if !strings.Contains(out, "Download error for: https://example.com/x") {
		t.Errorf("missing error notice:\n%s", out)
	}
}
