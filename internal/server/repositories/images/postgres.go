package images

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/datacleaner-ai/datacleaner/internal/common"
	"github.com/datacleaner-ai/datacleaner/internal/dbx"
	"github.com/datacleaner-ai/datacleaner/internal/server/models"
)

// PostgresRepository implements image storage over a dbx.DBTX (*sql.DB or *sql.Tx).
// Detected objects are stored as a jsonb column.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const imageColumns = `id, user_id, filename, original_name, storage_key, content_type,
	processed, detected_count, detected_objects, created_at`

func (r *PostgresRepository) Create(ctx context.Context, image *models.Image) (*models.Image, error) {
	detected, err := json.Marshal(image.DetectedObjects)
	if err != nil {
		return nil, fmt.Errorf("failed to encode detections: %w", err)
	}

	query :=
		`INSERT INTO images (user_id, filename, original_name, storage_key, content_type,
			processed, detected_count, detected_objects)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		image.UserID, image.Filename, image.OriginalName, image.StorageKey, image.ContentType,
		image.Processed, image.DetectedCount, detected).
		Scan(&image.ID, &image.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return image, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select images: %w", err)
	}
	return collect(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select images: %w", err)
	}
	return collect(rows)
}

func (r *PostgresRepository) GetByFilename(ctx context.Context, filename string) (*models.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE filename = $1`

	var (
		img      models.Image
		detected []byte
	)
	err := r.db.QueryRowContext(ctx, query, filename).Scan(
		&img.ID, &img.UserID, &img.Filename, &img.OriginalName, &img.StorageKey,
		&img.ContentType, &img.Processed, &img.DetectedCount, &detected, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	if err := json.Unmarshal(detected, &img.DetectedObjects); err != nil {
		return nil, fmt.Errorf("failed to decode detections: %w", err)
	}
	return &img, nil
}

func collect(rows *sql.Rows) ([]*models.Image, error) {
	defer rows.Close()

	var result []*models.Image
	for rows.Next() {
		var (
			img      models.Image
			detected []byte
		)
		if err := rows.Scan(&img.ID, &img.UserID, &img.Filename, &img.OriginalName,
			&img.StorageKey, &img.ContentType, &img.Processed, &img.DetectedCount,
			&detected, &img.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(detected, &img.DetectedObjects); err != nil {
			return nil, fmt.Errorf("failed to decode detections: %w", err)
		}
		result = append(result, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
