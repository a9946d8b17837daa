package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Minimal valid PNG signature plus padding, enough for content type
// sniffing.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

func TestLoadImageDataURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, pngBytes, 0644); err != nil {
		t.Fatal(err)
	}

	url, err := LoadImageDataURL(path)
	if err != nil {
		t.Fatalf("LoadImageDataURL failed: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("unexpected data URL prefix: %q", url[:40])
	}
}

func TestLoadImageDataURL_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text, definitely not pixels"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadImageDataURL(path)
	if !errors.Is(err, ErrNotAnImage) {
		t.Errorf("expected ErrNotAnImage, got %v", err)
	}
}

func TestLoadImageDataURL_MissingFile(t *testing.T) {
	_, err := LoadImageDataURL(filepath.Join(t.TempDir(), "absent.png"))
	if err == nil {
		t.Error("expected an error for a missing file")
	}
}
