package printer

import (
	"fmt"
	"os"
	"time"
)

// DefaultDownloadName returns the timestamped filename used when a
// caller downloads the raw command stream without naming the file.
func DefaultDownloadName() string {
	return fmt.Sprintf("receipt-%d.prn", time.Now().Unix())
}

// Download writes the command stream to a file. An empty path falls
// back to the default timestamped name in the working directory.
func Download(path string, data []byte) (string, error) {
	if path == "" {
		path = DefaultDownloadName()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write command file: %w", err)
	}

	return path, nil
}
