// Package users implements persistence for user accounts.
package users

import (
	"context"

	"github.com/datacleaner-ai/datacleaner/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	IncrementUploadCount(ctx context.Context, id int64) error
}
