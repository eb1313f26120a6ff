package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/datacleaner-ai/datacleaner/internal/client/models"
	"github.com/datacleaner-ai/datacleaner/internal/client/services"
)

var allRoles = []models.Role{models.RoleFreeUser, models.RoleProUser, models.RoleAdmin}

// SelectFile prompts for a local file path and tracks it as the current
// submission attempt. Selecting clears any previous result.
func (a *App) SelectFile(ctx context.Context) error {
	if !a.guard("upload", allRoles...) {
		return nil
	}

	path, err := getSimpleText(a.reader, "Enter path of the image file", os.Stdout)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("Cannot read %s: %v", path, err)
		return err
	}

	if err := a.submission.Select(path); err != nil {
		log.Println(userMessage(err))
		return err
	}

	if remaining, limited := a.submission.Remaining(); limited {
		log.Printf("Selected %s (uploads remaining: %d/%d)", path, remaining, services.FreeUserLimit)
	} else {
		log.Printf("Selected %s", path)
	}
	return nil
}

// SetMode switches the processing mode passed through with the upload.
func (a *App) SetMode(ctx context.Context, arg string) error {
	mode := models.ProcessMode(strings.ToLower(arg))
	if !mode.Valid() {
		log.Printf("Unknown mode %q (expected blur, pixelate or none)", arg)
		return nil
	}
	a.mode = mode
	log.Printf("Processing mode set to %s", mode)
	return nil
}

// Upload submits the selected file. The quota gate runs locally: a
// free_user out of uploads is refused without a network call.
func (a *App) Upload(ctx context.Context) error {
	if !a.guard("upload", allRoles...) {
		return nil
	}

	artifact, err := a.submission.Submit(ctx, a.mode)
	if err != nil {
		log.Println(userMessage(err))
		return err
	}

	log.Printf("Processed %s: %s", artifact.OriginalName, detectionSummary(artifact))
	if remaining, limited := a.submission.Remaining(); limited {
		log.Printf("Uploads remaining: %d/%d", remaining, services.FreeUserLimit)
	}
	return nil
}

func detectionSummary(a *models.Artifact) string {
	if a.DetectedCount == 0 {
		return "no objects found for anonymization"
	}
	parts := make([]string, 0, len(a.DetectedObjects))
	for _, d := range a.DetectedObjects {
		parts = append(parts, fmt.Sprintf("%s (%.1f%%)", d.Class, d.Confidence*100))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d objects anonymized", a.DetectedCount)
	}
	return fmt.Sprintf("%d objects anonymized: %s", a.DetectedCount, strings.Join(parts, ", "))
}
