package postgres

import (
	"context"

	repo "github.com/chatledger/backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type statsRepo struct{ pool *pgxpool.Pool }

// AggregateUserStats runs one grouped query instead of a per-user counting
// loop. Correlated subqueries keep the two counts independent (a join over
// both tables would multiply rows).
func (r *statsRepo) AggregateUserStats(ctx context.Context) ([]repo.UserStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.name, u.email,
		        (SELECT COUNT(*) FROM conversations c WHERE c.user_id = u.id) AS conversation_count,
		        (SELECT COUNT(*) FROM messages m WHERE m.user_id = u.id)      AS message_count
		   FROM users u
		  ORDER BY conversation_count DESC, message_count DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repo.UserStat
	for rows.Next() {
		var s repo.UserStat
		if err := rows.Scan(&s.User, &s.Email, &s.ConversationCount, &s.MessageCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
