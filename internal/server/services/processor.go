package services

import (
	"context"

	"github.com/datacleaner-ai/datacleaner/internal/server/models"
)

// Processor anonymizes sensitive regions in an uploaded image. The detection
// backend is pluggable; the service only cares about the resulting bytes and
// the list of detected objects.
type Processor interface {
	Process(ctx context.Context, data []byte, mode string) ([]byte, []models.Detection, error)
}

// PassthroughProcessor stores images unchanged and reports no detections.
// It stands in for a real detection backend in development and tests.
type PassthroughProcessor struct{}

func (PassthroughProcessor) Process(ctx context.Context, data []byte, mode string) ([]byte, []models.Detection, error) {
	return data, nil, nil
}
