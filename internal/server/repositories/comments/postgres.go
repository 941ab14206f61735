package comments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/windhans/reels/internal/dbx"
	"github.com/windhans/reels/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {

	comment.ID = uuid.NewString()

	query :=
		`INSERT INTO comments (id, user_id, reel_id, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.ID, comment.UserID, comment.ReelID, comment.Text).Scan(&comment.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) ListByReel(ctx context.Context, reelID string) ([]*models.Comment, error) {
	query :=
		`SELECT c.id, c.user_id, c.reel_id, c.body, c.created_at, u.name, u.email
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.reel_id = $1
		 ORDER BY c.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, reelID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		c := &models.Comment{}
		err := rows.Scan(&c.ID, &c.UserID, &c.ReelID, &c.Text, &c.CreatedAt,
			&c.Author.Name, &c.Author.Email)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		c.Author.ID = c.UserID
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comments, nil
}
