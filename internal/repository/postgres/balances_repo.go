package postgres

import (
	"context"
	"errors"

	"github.com/chatledger/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the atomic
// increment can run standalone or inside a transaction-log commit.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type balancesRepo struct{ pool *pgxpool.Pool }

func (r *balancesRepo) Get(ctx context.Context, userID string) (models.Balance, error) {
	var b models.Balance
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, token_credits, last_updated_at
		   FROM balances
		  WHERE user_id = $1`,
		userID,
	).Scan(&b.UserID, &b.TokenCredits, &b.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// No row yet means a zero balance, not an error.
		return models.Balance{UserID: userID}, nil
	}
	return b, err
}

func (r *balancesRepo) ApplyDelta(ctx context.Context, userID string, delta int64) (models.Balance, error) {
	return applyDelta(ctx, r.pool, userID, delta)
}

// applyDelta is the single atomic increment-and-return the whole ledger
// rests on. The upsert creates the row on first use; the RETURNING value
// already includes this call's own delta, so concurrent callers each
// observe their own effect.
func applyDelta(ctx context.Context, q querier, userID string, delta int64) (models.Balance, error) {
	var b models.Balance
	err := q.QueryRow(ctx,
		`INSERT INTO balances (user_id, token_credits, last_updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE
		    SET token_credits  = balances.token_credits + EXCLUDED.token_credits,
		        last_updated_at = now()
		 RETURNING user_id, token_credits, last_updated_at`,
		userID, delta,
	).Scan(&b.UserID, &b.TokenCredits, &b.LastUpdatedAt)
	return b, err
}
