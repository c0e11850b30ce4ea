package downloads

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"audiodownloader/internal/domain/command"
	"audiodownloader/internal/domain/errconsts"
	"audiodownloader/internal/domain/regex"
	"audiodownloader/internal/models"
	"audiodownloader/internal/parsing"
	"audiodownloader/internal/utils/logging"
)

// YtDlp shells out to the yt-dlp binary. It is the production
// implementation of contracts.Extractor; everything about site
// protocols and transcoding stays inside the binary.
type YtDlp struct {
	set        *models.Settings
	log        *logging.Logger
	cookieFile string
}

// NewYtDlp returns the extractor boundary for this run. cookieFile may
// be empty; when set it is passed through to every invocation.
func NewYtDlp(set *models.Settings, log *logging.Logger, cookieFile string) *YtDlp {
	return &YtDlp{
		set:        set,
		log:        log,
		cookieFile: cookieFile,
	}
}

// probeInfo is the slice of the extractor's JSON document we care
// about. filesize_approx stands in when the exact size is unknown.
type probeInfo struct {
	Title          string  `json:"title"`
	Duration       float64 `json:"duration"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
	UploadDate     string  `json:"upload_date"`
}

// Probe fetches metadata for url without downloading.
func (y *YtDlp) Probe(ctx context.Context, url string) (*models.TrackMetadata, error) {
	args := make([]string, 0, 8)
	args = append(args, command.OutputJSON, command.NoPlaylist)
	if y.cookieFile != "" {
		args = append(args, command.CookiePath, y.cookieFile)
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, command.YTDLP, args...)
	y.log.D(2, "Built probe command for URL %q:\n%v", url, cmd.String())

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf(errconsts.YTDLPProbeFailure, err)
	}

	var info probeInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("failed to parse probe output for %q: %w", url, err)
	}

	size := info.Filesize
	if size == 0 {
		size = info.FilesizeApprox
	}

	return &models.TrackMetadata{
		Title:      info.Title,
		Duration:   info.Duration,
		Filesize:   size,
		UploadDate: parsing.NormalizeUploadDate(info.UploadDate),
	}, nil
}

// fetchScan carries what the output scanner gathered from one fetch.
type fetchScan struct {
	dest    string
	errLine string
}

// Fetch downloads url, converts it to the configured audio format, and
// streams progress events into onProgress. A nil metadata result with
// a nil error means the extractor finished without reporting output.
func (y *YtDlp) Fetch(ctx context.Context, url string, onProgress models.ProgressFunc) (*models.TrackMetadata, error) {
	cmd := y.buildFetchCommand(ctx, url)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe error: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe error: %w", err)
	}

	scanChan := make(chan fetchScan, 1)
	go y.scanFetchOutput(io.MultiReader(stdout, stderr), onProgress, scanChan)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf(errconsts.YTDLPFailure, err)
	}

	waitErr := cmd.Wait()
	scan := <-scanChan

	if waitErr != nil {
		if onProgress != nil {
			onProgress(models.ProgressEvent{State: models.ProgressError})
		}
		if scan.errLine != "" {
			return nil, &models.FetchError{
				Kind: classifyMessage(scan.errLine),
				Err:  fmt.Errorf("%s: %w", scan.errLine, waitErr),
			}
		}
		return nil, ClassifyFetchError(fmt.Errorf(errconsts.YTDLPFailure, waitErr))
	}

	if onProgress != nil {
		onProgress(models.ProgressEvent{State: models.ProgressFinished})
	}

	if scan.dest == "" {
		return nil, nil
	}

	if err := waitForFile(scan.dest, 5*time.Second); err != nil {
		return nil, err
	}
	if err := verifyDownload(scan.dest); err != nil {
		return nil, err
	}

	title := strings.TrimSuffix(filepath.Base(scan.dest), filepath.Ext(scan.dest))
	return &models.TrackMetadata{
		Title:    title,
		Filepath: scan.dest,
	}, nil
}

// buildFetchCommand builds the yt-dlp invocation for one URL.
func (y *YtDlp) buildFetchCommand(ctx context.Context, url string) *exec.Cmd {
	args := make([]string, 0, 20)

	// Quiet mode only silences the local progress echo. The binary's
	// full output is always scanned: the Destination line is the only
	// source of the final file path.
	args = append(args,
		command.Format, command.BestAudio,
		command.ExtractAudio,
		command.AudioFormat, y.set.Audio.Codec,
		command.AudioQuality, y.set.Audio.Quality,
		command.PostprocessorArgs, command.FFmpegSampleRate+y.set.Audio.SampleRate,
		command.NoPlaylist,
		command.Newline,
		command.Output, filepath.Join(y.set.Paths.OutputDir, command.FilenameSyntax))

	if y.cookieFile != "" {
		args = append(args, command.CookiePath, y.cookieFile)
	}

	args = append(args, url)

	cmd := exec.CommandContext(ctx, command.YTDLP, args...)
	y.log.D(1, "Built fetch command for URL %q:\n%v", url, cmd.String())

	return cmd
}

// scanFetchOutput scans the merged yt-dlp output for progress lines,
// the destination path, and error lines.
func (y *YtDlp) scanFetchOutput(r io.Reader, onProgress models.ProgressFunc, out chan<- fetchScan) {
	var scan fetchScan
	pctRe := regex.DownloadPercentCompile()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := pctRe.FindStringSubmatch(line); m != nil {
			if onProgress != nil {
				onProgress(models.ProgressEvent{
					State:   models.ProgressDownloading,
					Percent: m[1],
				})
			}
			continue
		}

		if idx := strings.Index(line, command.DestinationMarker); idx != -1 {
			// The last destination wins: conversion rewrites the path.
			scan.dest = strings.TrimSpace(line[idx+len(command.DestinationMarker):])
			continue
		}

		if strings.Contains(line, command.AlreadyDownloadedTag) {
			if path := alreadyDownloadedPath(line); path != "" {
				scan.dest = path
			}
			continue
		}

		if strings.HasPrefix(line, command.ErrorPrefix) {
			scan.errLine = line
			y.log.D(1, "Extractor error line: %s", line)
		}
	}

	if err := scanner.Err(); err != nil {
		y.log.E("Scanner error reading extractor output: %v", err)
	}

	out <- scan
}

// alreadyDownloadedPath pulls the path out of a
// '[download] <path> has already been downloaded' line.
func alreadyDownloadedPath(line string) string {
	s := strings.TrimSpace(strings.TrimPrefix(line, command.DownloadPrefix))
	if idx := strings.Index(s, " "+command.AlreadyDownloadedTag); idx != -1 {
		return strings.TrimSpace(s[:idx])
	}
	return ""
}
