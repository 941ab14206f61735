package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/windhans/reels/internal/common"
	"github.com/windhans/reels/internal/server/models"
	"github.com/windhans/reels/internal/server/repositories/repomanager"
)

type InteractionService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewInteractionService(db *sql.DB, repos repomanager.RepositoryManager) *InteractionService {
	return &InteractionService{db: db, repos: repos}
}

// ToggleLike flips the like state for (actor, reel) and reports the new
// state. The unique index on (user_id, reel_id) is the consistency
// authority: a racing insert that hits it converges to liked=true instead
// of failing.
func (s *InteractionService) ToggleLike(ctx context.Context, actor *models.User, reelID string) (bool, error) {

	if actor == nil {
		return false, common.ErrorUnauthorized
	}

	likeRepo := s.repos.Likes(s.db)

	removed, err := likeRepo.Delete(ctx, actor.ID, reelID)
	if err != nil {
		return false, fmt.Errorf("error toggling like: %w", err)
	}
	if removed {
		return false, nil
	}

	_, err = likeRepo.Create(ctx, &models.Like{UserID: actor.ID, ReelID: reelID})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// lost a race with a concurrent like; the row is there
			return true, nil
		}
		return false, fmt.Errorf("error toggling like: %w", err)
	}

	return true, nil
}

// AddComment appends a comment. Text is trimmed; nothing left after
// trimming is a validation failure. There is no length cap.
func (s *InteractionService) AddComment(ctx context.Context, actor *models.User, reelID, text string) (*models.Comment, error) {

	if actor == nil {
		return nil, common.ErrorUnauthorized
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", common.ErrorValidation)
	}

	comment := &models.Comment{
		UserID: actor.ID,
		ReelID: reelID,
		Text:   text,
		Author: actor.Summary(),
	}

	comment, err := s.repos.Comments(s.db).Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	return comment, nil
}

// ListComments needs no identity.
func (s *InteractionService) ListComments(ctx context.Context, reelID string) ([]*models.Comment, error) {
	return s.repos.Comments(s.db).ListByReel(ctx, reelID)
}
