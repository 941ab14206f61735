// Package likes persists the (user, reel) like rows. The unique index on
// the pair, not application locking, keeps toggles consistent.
package likes

import (
	"context"

	"github.com/windhans/reels/internal/server/models"
)

type Repository interface {
	// Create inserts a like row. A unique-index violation surfaces as
	// common.ErrorAlreadyExists so callers can converge racing toggles.
	Create(ctx context.Context, like *models.Like) (*models.Like, error)
	// Delete removes the like for (userID, reelID), reporting whether a
	// row was actually removed.
	Delete(ctx context.Context, userID, reelID string) (bool, error)
	Exists(ctx context.Context, userID, reelID string) (bool, error)
}
