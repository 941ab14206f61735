package reels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/windhans/reels/internal/common"
	"github.com/windhans/reels/internal/dbx"
	"github.com/windhans/reels/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, reel *models.Reel) (*models.Reel, error) {

	reel.ID = uuid.NewString()

	query :=
		`INSERT INTO reels (id, user_id, video_url, caption)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		reel.ID, reel.UserID, reel.VideoURL, reel.Caption).Scan(&reel.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reel, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Reel, error) {
	query :=
		`SELECT id, user_id, video_url, caption, created_at FROM reels
		 WHERE id = $1
		 `

	reel := &models.Reel{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&reel.ID, &reel.UserID, &reel.VideoURL, &reel.Caption, &reel.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reel, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

const listColumns = `
	r.id, r.user_id, r.video_url, r.caption, r.created_at,
	u.name, u.email,
	(SELECT COUNT(*) FROM likes l WHERE l.reel_id = r.id) AS like_count,
	(SELECT COUNT(*) FROM comments c WHERE c.reel_id = r.id) AS comment_count,
	EXISTS (SELECT 1 FROM likes l WHERE l.reel_id = r.id AND l.user_id = $1) AS viewer_liked`

func (r *PostgresRepository) ListFeed(ctx context.Context, viewerID string, limit int) ([]*models.FeedReel, error) {
	query := `SELECT` + listColumns + `
		 FROM reels r
		 JOIN users u ON u.id = r.user_id
		 ORDER BY r.created_at DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanFeed(rows)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.FeedReel, error) {
	query := `SELECT` + listColumns + `
		 FROM reels r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.user_id = $1
		 ORDER BY r.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanFeed(rows)
}

func scanFeed(rows *sql.Rows) ([]*models.FeedReel, error) {
	items := []*models.FeedReel{}
	for rows.Next() {
		item := &models.FeedReel{}
		err := rows.Scan(
			&item.ID, &item.UserID, &item.VideoURL, &item.Caption, &item.CreatedAt,
			&item.Owner.Name, &item.Owner.Email,
			&item.LikeCount, &item.CommentCount, &item.ViewerLiked,
		)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.Owner.ID = item.UserID
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}
