package likes

import (
	"context"
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

func (r *PostgresRepository) Create(ctx context.Context, like *models.Like) (*models.Like, error) {

	like.ID = uuid.NewString()

	query :=
		`INSERT INTO likes (id, user_id, reel_id)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		like.ID, like.UserID, like.ReelID).Scan(&like.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return like, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, reelID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND reel_id = $2`, userID, reelID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, reelID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND reel_id = $2)`,
		userID, reelID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
