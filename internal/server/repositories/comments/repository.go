// Package comments persists the append-only comment rows.
package comments

import (
	"context"

	"github.com/windhans/reels/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	// ListByReel returns a reel's comments newest first, each with its
	// author summary. Unknown reel ids yield an empty list.
	ListByReel(ctx context.Context, reelID string) ([]*models.Comment, error)
}
