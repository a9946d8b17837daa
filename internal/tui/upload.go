package tui

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
)

// Image load errors
var (
	ErrImageTooLarge  = errors.New("image exceeds the 5MB limit")
	ErrNotAnImage     = errors.New("file is not an image")
	ErrUploadInFlight = errors.New("another image is still loading")
)

const maxImageBytes = int64(5 * 1024 * 1024)

var uploadInFlight atomic.Bool

// LoadImageDataURL reads an image file and returns it as a data: URL
// suitable for a logo component. Only one load runs at a time;
// concurrent calls fail fast instead of queueing.
func LoadImageDataURL(path string) (string, error) {
	if !uploadInFlight.CompareAndSwap(false, true) {
		return "", ErrUploadInFlight
	}
	defer uploadInFlight.Store(false)

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if info.Size() > maxImageBytes {
		return "", ErrImageTooLarge
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	contentType := http.DetectContentType(raw)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotAnImage, contentType)
	}

	encoded := base64.StdEncoding.EncodeToString(raw)
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), nil
}
