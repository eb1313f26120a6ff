// Package images implements persistence for uploaded image records.
package images

import (
	"context"

	"github.com/datacleaner-ai/datacleaner/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, image *models.Image) (*models.Image, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Image, error)
	ListAll(ctx context.Context) ([]*models.Image, error)
	GetByFilename(ctx context.Context, filename string) (*models.Image, error)
}
