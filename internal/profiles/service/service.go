package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"printshop_backend/internal/adapters/storage"
	"printshop_backend/internal/profiles/repository"
	"printshop_backend/platform/apperr"
	"printshop_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo         *repository.Repository
	storage      storage.StorageService
	avatarBucket string
	log          *logger.Logger
}

func New(repo *repository.Repository, storageSvc storage.StorageService, avatarBucket string, log *logger.Logger) *Service {
	return &Service{
		repo:         repo,
		storage:      storageSvc,
		avatarBucket: avatarBucket,
		log:          log,
	}
}

func (s *Service) GetOwn(ctx context.Context, userID uuid.UUID) (repository.Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Profile{}, apperr.NotFound("profile not found")
	}
	return profile, err
}

func (s *Service) UpdateOwn(ctx context.Context, userID uuid.UUID, params repository.UpdateParams) (repository.Profile, error) {
	profile, err := s.repo.Update(ctx, userID, params)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Profile{}, apperr.NotFound("profile not found")
	}
	return profile, err
}

// UploadAvatar stores the avatar at a fixed per-user key, overwriting
// the previous one, and saves the public URL with a cache-busting
// version query so stale clients pick up the new image.
func (s *Service) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, reader io.Reader, size int64) (repository.Profile, error) {
	if s.storage == nil {
		return repository.Profile{}, apperr.Internal("storage is not configured")
	}

	if err := s.storage.ValidateContentType(contentType); err != nil {
		return repository.Profile{}, apperr.Validation(err.Error())
	}
	if err := s.storage.ValidateFileSize(size); err != nil {
		return repository.Profile{}, apperr.Validation(err.Error())
	}

	ext := storage.ExtensionForContentType(contentType)
	fileKey := fmt.Sprintf("%s/avatar%s", userID.String(), ext)

	if err := s.storage.UploadFile(ctx, s.avatarBucket, fileKey, contentType, reader, size); err != nil {
		s.log.Error("avatar upload failed", "user_id", userID.String(), "error", err)
		return repository.Profile{}, apperr.Internal("avatar upload failed")
	}

	s.removeStaleAvatars(ctx, userID, ext)

	avatarURL := fmt.Sprintf("%s?v=%d", s.storage.PublicURL(s.avatarBucket, fileKey), time.Now().Unix())

	profile, err := s.repo.UpdateAvatarURL(ctx, userID, avatarURL)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Profile{}, apperr.NotFound("profile not found")
	}
	return profile, err
}

// removeStaleAvatars deletes avatar objects stored under other file
// extensions, so switching image formats leaves no orphaned objects.
func (s *Service) removeStaleAvatars(ctx context.Context, userID uuid.UUID, keepExt string) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)

	for contentType := range storage.AllowedContentTypes {
		ext := storage.ExtensionForContentType(contentType)
		if ext == keepExt {
			continue
		}
		g.Go(func() error {
			key := fmt.Sprintf("%s/avatar%s", userID.String(), ext)
			if err := s.storage.DeleteObject(gctx, s.avatarBucket, key); err != nil {
				s.log.Warn("stale avatar cleanup failed", "user_id", userID.String(), "key", key, "error", err)
			}
			return nil
		})
	}

	_ = g.Wait()
}
