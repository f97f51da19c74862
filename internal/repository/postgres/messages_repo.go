package postgres

import (
	"context"

	"github.com/chatledger/backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type messagesRepo struct{ pool *pgxpool.Pool }

func (r *messagesRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, conversation_id, user_id, sender, text, token_count, created_at
		   FROM messages
		  WHERE conversation_id = $1
		  ORDER BY created_at ASC`,
		conversationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Sender, &m.Text, &m.TokenCount, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *messagesRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE user_id = $1`, userID,
	).Scan(&n)
	return n, err
}
