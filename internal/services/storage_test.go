package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStorageService_WithTempClipRemovesFile(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)
	clip := &AudioClip{Data: []byte("OggS data"), Format: FormatOGG}

	var seen string
	err := storage.WithTempClip(clip, func(path string) error {
		seen = path
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if string(data) != "OggS data" {
			t.Errorf("temp file content = %q", data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTempClip failed: %v", err)
	}

	if !strings.HasSuffix(seen, ".ogg") || filepath.Dir(seen) != dir {
		t.Errorf("unexpected temp path %q", seen)
	}
	if _, err := os.Stat(seen); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after success: %v", err)
	}
}

func TestStorageService_WithTempClipRemovesFileOnError(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)
	boom := errors.New("boom")

	err := storage.WithTempClip(&AudioClip{Data: []byte{1}, Format: FormatWAV}, func(string) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty upload dir, found %d entries", len(entries))
	}
}

func TestStorageService_SaveEmptyClip(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	if _, _, err := storage.SaveClip(&AudioClip{Format: FormatWAV}); !errors.Is(err, ErrEmptyAudio) {
		t.Errorf("expected ErrEmptyAudio, got %v", err)
	}
}

func TestStorageService_EnsureUploadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if err := NewStorageService(dir).EnsureUploadDir(); err != nil {
		t.Fatalf("EnsureUploadDir failed: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("upload dir not created: %v", err)
	}
}
