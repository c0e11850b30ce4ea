package downloads

import (
	"errors"
	"fmt"
	"os"
	"time"

	"audiodownloader/internal/domain/errconsts"
)

// waitForFile polls until the extractor's output file appears. The
// postprocessor renames its work into place, so a short settle window
// suffices.
func waitForFile(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf(errconsts.DownloadVerifyFail, path, errors.New("file did not appear before deadline"))
}

// verifyDownload checks the finished file is a regular file with
// content.
func verifyDownload(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf(errconsts.DownloadVerifyFail, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf(errconsts.DownloadVerifyFail, path, errors.New("path is a directory"))
	}
	if info.Size() == 0 {
		return fmt.Errorf(errconsts.DownloadVerifyFail, path, errors.New("file is empty"))
	}
	return nil
}
