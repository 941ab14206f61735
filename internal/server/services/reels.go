package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/windhans/reels/internal/common"
	"github.com/windhans/reels/internal/logging"
	"github.com/windhans/reels/internal/server/media"
	"github.com/windhans/reels/internal/server/models"
	"github.com/windhans/reels/internal/server/repositories/repomanager"
)

// FeedLimit caps how many reels a single listing returns.
const FeedLimit = 50

type ReelService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	media  media.Store
	logger logging.Logger
}

func NewReelService(db *sql.DB, repos repomanager.RepositoryManager, store media.Store, logger logging.Logger) *ReelService {
	return &ReelService{
		db:     db,
		repos:  repos,
		media:  store,
		logger: logger.With("module", "reel_service"),
	}
}

// Upload pushes the video to the media host, then records the reel. The
// order matters: a host failure leaves nothing persisted, so no cleanup
// path is needed.
func (s *ReelService) Upload(ctx context.Context, actor *models.User, video io.Reader, size int64, contentType, caption string) (*models.Reel, error) {

	if actor == nil {
		return nil, common.ErrorUnauthorized
	}
	if video == nil || size <= 0 {
		return nil, fmt.Errorf("%w: video file is required", common.ErrorValidation)
	}

	url, err := s.media.Put(ctx, media.StorageKey(), video, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("media host upload: %w", err)
	}

	reel := &models.Reel{
		UserID:   actor.ID,
		VideoURL: url,
		Caption:  strings.TrimSpace(caption),
	}

	reel, err = s.repos.Reels(s.db).Create(ctx, reel)
	if err != nil {
		return nil, fmt.Errorf("error creating reel: %w", err)
	}

	return reel, nil
}

// Feed lists up to limit reels, newest first. viewerID may be empty for
// anonymous viewers; limit values outside (0, FeedLimit] collapse to
// FeedLimit.
func (s *ReelService) Feed(ctx context.Context, viewerID string, limit int) ([]*models.FeedReel, error) {
	if limit <= 0 || limit > FeedLimit {
		limit = FeedLimit
	}
	return s.repos.Reels(s.db).ListFeed(ctx, viewerID, limit)
}

// ListByOwner returns one user's reels for the profile page, newest first.
func (s *ReelService) ListByOwner(ctx context.Context, ownerID string) ([]*models.FeedReel, error) {
	return s.repos.Reels(s.db).ListByOwner(ctx, ownerID)
}

// DeleteResult reports the outcome of a reel deletion. MediaRemoved is
// false when the external object delete failed; the database removal is
// authoritative and proceeded regardless.
type DeleteResult struct {
	MediaRemoved bool
}

// Delete removes a reel. Only the owner may delete; likes and comments go
// with the row via the storage-level cascade. The media-host delete is
// best effort: its failure is logged and swallowed.
func (s *ReelService) Delete(ctx context.Context, actor *models.User, reelID string) (DeleteResult, error) {

	if actor == nil {
		return DeleteResult{}, common.ErrorUnauthorized
	}

	reelRepo := s.repos.Reels(s.db)

	reel, err := reelRepo.GetByID(ctx, reelID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return DeleteResult{}, common.ErrorNotFound
		}
		return DeleteResult{}, fmt.Errorf("error loading reel: %w", err)
	}

	if reel.UserID != actor.ID {
		return DeleteResult{}, common.ErrorForbidden
	}

	result := DeleteResult{MediaRemoved: true}
	if err := s.media.Remove(ctx, reel.VideoURL); err != nil {
		s.logger.Warn(ctx, "media host delete failed", "reel_id", reel.ID, "error", err.Error())
		result.MediaRemoved = false
	}

	if err := reelRepo.Delete(ctx, reelID); err != nil {
		return result, fmt.Errorf("error deleting reel: %w", err)
	}

	return result, nil
}
