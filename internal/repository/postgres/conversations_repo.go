package postgres

import (
	"context"

	"github.com/chatledger/backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type conversationsRepo struct{ pool *pgxpool.Pool }

func (r *conversationsRepo) ListByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, created_at, updated_at
		   FROM conversations
		  WHERE user_id = $1
		  ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *conversationsRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversations WHERE user_id = $1`, userID,
	).Scan(&n)
	return n, err
}
