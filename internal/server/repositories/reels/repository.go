// Package reels persists posted videos and serves the enriched listings.
package reels

import (
	"context"

	"github.com/windhans/reels/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, reel *models.Reel) (*models.Reel, error)
	GetByID(ctx context.Context, id string) (*models.Reel, error)
	// Delete removes the reel row; dependent likes and comments go with it
	// via the FK cascade. Returns common.ErrorNotFound when no row matches.
	Delete(ctx context.Context, id string) error
	// ListFeed returns up to limit reels, newest first, enriched with owner
	// summary, counts, and the viewer-liked flag. An empty viewerID yields
	// ViewerLiked=false everywhere.
	ListFeed(ctx context.Context, viewerID string, limit int) ([]*models.FeedReel, error)
	// ListByOwner returns one owner's reels, newest first, enriched the
	// same way with the owner as the viewer.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.FeedReel, error)
}
