package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type StorageService interface {
	SaveClip(clip *AudioClip) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
	WithTempClip(clip *AudioClip, fn func(path string) error) error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveClip writes the clip under a unique name and returns the name and full path.
func (s *storageService) SaveClip(clip *AudioClip) (string, string, error) {
	if clip == nil || len(clip.Data) == 0 {
		return "", "", ErrEmptyAudio
	}

	uniqueFilename := fmt.Sprintf("record_%s%s", uuid.New().String(), clip.Format.Extension())
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	if err := os.WriteFile(filePath, clip.Data, 0600); err != nil {
		return "", "", fmt.Errorf("failed to save audio file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// WithTempClip saves the clip, hands its path to fn and removes the file
// afterwards regardless of fn's outcome.
func (s *storageService) WithTempClip(clip *AudioClip, fn func(path string) error) error {
	filename, filePath, err := s.SaveClip(clip)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.DeleteFile(filename); err != nil {
			logrus.Warnf("⚠️  Failed to remove temp audio %s: %v", filePath, err)
		}
	}()

	return fn(filePath)
}
