// Package services implements the server-side application logic.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datacleaner-ai/datacleaner/internal/common"
	"github.com/datacleaner-ai/datacleaner/internal/server/auth"
	"github.com/datacleaner-ai/datacleaner/internal/server/config"
	"github.com/datacleaner-ai/datacleaner/internal/server/models"
	"github.com/datacleaner-ai/datacleaner/internal/server/repositories/users"
)

type UserService struct {
	repo                        users.Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates an account and signs the first access token. Email and
// username uniqueness are checked up front so each conflict gets its own
// detail text.
func (s *UserService) Register(ctx context.Context, name, email, username, password string) (*models.User, string, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, "", common.ErrorEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", common.ErrorInternal
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, "", common.ErrorUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", common.ErrorInternal
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		Username:       username,
		HashedPassword: hash,
		Role:           models.RoleFreeUser,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login authenticates by email. A missing account and a wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.HashedPassword, password) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

func (s *UserService) generateAccessToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.List(ctx)
}

// UpdateRole changes another user's role and returns the updated record.
func (s *UserService) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, common.ErrorValidation
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}
