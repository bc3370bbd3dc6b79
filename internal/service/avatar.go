package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/rihla-travel/portal/internal/repository"
	"github.com/rihla-travel/portal/internal/storage"
	"github.com/rihla-travel/portal/internal/validation"
)

// AvatarFolder holds profile pictures, one prefix per user.
const AvatarFolder = "avatars"

type AvatarService struct {
	profileRepo repository.ProfileRepository
	storage     storage.Storage
	now         func() time.Time
}

func NewAvatarService(profileRepo repository.ProfileRepository, storage storage.Storage) *AvatarService {
	return &AvatarService{
		profileRepo: profileRepo,
		storage:     storage,
		now:         time.Now,
	}
}

// Upload validates and stores a new profile picture, points the profile at it
// and removes the previous one.
func (s *AvatarService) Upload(ctx context.Context, userID string, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateFile(header, validation.AvatarConstraints)
	if err != nil {
		return "", err
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return "", fmt.Errorf("failed to get profile: %w", err)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("%s/%s/%d%s", AvatarFolder, userID, s.now().UnixMilli(), ext)

	err = s.storage.Save(ctx, key, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}

	url := s.storage.URL(key)
	err = s.profileRepo.UpdateAvatar(userID, url)
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			slog.Error("failed to delete avatar during cleanup", "error", delErr, "key", key)
		}
		return "", fmt.Errorf("failed to update profile: %w", err)
	}

	if old := s.keyFor(profile.AvatarURL); old != "" {
		if err := s.storage.Delete(ctx, old); err != nil {
			slog.Warn("failed to delete previous avatar", "error", err, "key", old)
		}
	}

	return url, nil
}

// keyFor maps a URL produced by this storage back to its key.
func (s *AvatarService) keyFor(url string) string {
	base := s.storage.URL("")
	if url == "" || !strings.HasPrefix(url, base) {
		return ""
	}
	return strings.TrimPrefix(url, base)
}
