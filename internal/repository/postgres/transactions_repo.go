package postgres

import (
	"context"
	"errors"

	"github.com/chatledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

// Apply commits the entry and its balance effect as one unit. Ordering is
// log-then-apply: the entry row is inserted first, the increment runs
// second, and a failure in either rolls back both, so no transaction row
// can exist without its delta applied.
func (r *transactionsRepo) Apply(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadWrite})
	if err != nil {
		return models.Transaction{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if txn.IdempotencyKey != nil {
		prev, err := getByIdempotencyKey(ctx, tx, *txn.IdempotencyKey)
		if err == nil {
			// Replay of an already-committed credit: return the stored
			// entry, including its original balance snapshot.
			return prev, tx.Commit(ctx)
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return models.Transaction{}, err
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO transactions (id, user_id, token_type, context, raw_amount, idempotency_key)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		txn.ID, txn.UserID, txn.TokenType, txn.Context, txn.RawAmount, txn.IdempotencyKey,
	).Scan(&txn.CreatedAt)
	if err != nil {
		// A concurrent retry with the same key can slip past the lookup
		// above; the unique index settles the race.
		var pgErr *pgconn.PgError
		if txn.IdempotencyKey != nil && errors.As(err, &pgErr) && pgErr.Code == "23505" {
			_ = tx.Rollback(ctx)
			return getByIdempotencyKey(ctx, r.pool, *txn.IdempotencyKey)
		}
		return models.Transaction{}, err
	}

	b, err := applyDelta(ctx, tx, txn.UserID, txn.RawAmount)
	if err != nil {
		return models.Transaction{}, err
	}
	txn.Balance = b.TokenCredits

	if _, err := tx.Exec(ctx,
		`UPDATE transactions SET balance = $2 WHERE id = $1`,
		txn.ID, txn.Balance,
	); err != nil {
		return models.Transaction{}, err
	}

	return txn, tx.Commit(ctx)
}

func (r *transactionsRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, token_type, context, raw_amount, balance, idempotency_key, created_at
		   FROM transactions
		  WHERE user_id = $1
		  ORDER BY created_at DESC
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.TokenType, &t.Context, &t.RawAmount, &t.Balance, &t.IdempotencyKey, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func getByIdempotencyKey(ctx context.Context, q querier, key string) (models.Transaction, error) {
	var t models.Transaction
	err := q.QueryRow(ctx,
		`SELECT id, user_id, token_type, context, raw_amount, balance, idempotency_key, created_at
		   FROM transactions
		  WHERE idempotency_key = $1`,
		key,
	).Scan(&t.ID, &t.UserID, &t.TokenType, &t.Context, &t.RawAmount, &t.Balance, &t.IdempotencyKey, &t.CreatedAt)
	return t, err
}
