package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/datacleaner-ai/datacleaner/internal/common"
	"github.com/datacleaner-ai/datacleaner/internal/server/models"
	"github.com/datacleaner-ai/datacleaner/internal/server/repositories/images"
	"github.com/datacleaner-ai/datacleaner/internal/server/repositories/users"
	"github.com/datacleaner-ai/datacleaner/internal/server/storage"
)

// FreeUserUploadLimit caps lifetime uploads for the free_user role. Other
// roles are unmetered.
const FreeUserUploadLimit = 3

func validMode(mode string) bool {
	switch mode {
	case "blur", "pixelate", "none":
		return true
	}
	return false
}

type ImageService struct {
	repo      images.Repository
	users     users.Repository
	store     storage.ObjectStore
	processor Processor
}

func NewImageService(repo images.Repository, users users.Repository, store storage.ObjectStore, processor Processor) *ImageService {
	return &ImageService{repo: repo, users: users, store: store, processor: processor}
}

// Upload processes one image for the given user and records the artifact.
// The quota check runs before any bytes are read, so a refused upload does
// not touch the object store.
func (s *ImageService) Upload(ctx context.Context, user *models.User, originalName, contentType, mode string, body io.Reader) (*models.Image, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, common.ErrorNotImage
	}
	if !validMode(mode) {
		return nil, common.ErrorValidation
	}
	if user.Role == models.RoleFreeUser && user.UploadCount >= FreeUserUploadLimit {
		return nil, common.ErrorQuotaExceeded
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	processed := false
	var detections []models.Detection
	if mode != "none" {
		data, detections, err = s.processor.Process(ctx, data, mode)
		if err != nil {
			return nil, fmt.Errorf("failed to process image: %w", err)
		}
		processed = true
	}

	key := storage.RandomStorageKey()
	if err := s.store.Put(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	image := &models.Image{
		UserID:          user.ID,
		Filename:        uuid.NewString() + filepath.Ext(originalName),
		OriginalName:    originalName,
		StorageKey:      key,
		ContentType:     contentType,
		Processed:       processed,
		DetectedCount:   len(detections),
		DetectedObjects: detections,
	}

	image, err = s.repo.Create(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("error creating image record: %w", err)
	}

	if err := s.users.IncrementUploadCount(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to update upload count: %w", err)
	}
	user.UploadCount++

	return image, nil
}

// List returns the viewer's artifacts; admins see every user's artifacts.
func (s *ImageService) List(ctx context.Context, user *models.User) ([]*models.Image, error) {
	if user.Role == models.RoleAdmin {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUser(ctx, user.ID)
}

// GetFile streams a stored image back by its public filename.
func (s *ImageService) GetFile(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	image, err := s.repo.GetByFilename(ctx, filename)
	if err != nil {
		return nil, "", err
	}
	return s.store.Get(ctx, image.StorageKey)
}
