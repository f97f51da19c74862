package repository

import (
	"context"
	"errors"

	"github.com/chatledger/backend/internal/models"
)

// ErrNotFound is returned by lookups when no row matches. Implementations
// map their driver's no-rows error onto it so callers stay
// driver-agnostic.
var ErrNotFound = errors.New("record not found")

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	// ExistsByEmailOrUsername backs the duplicate check on user creation.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

// Balances is the ledger store: at most one row per user, the single
// source of truth for current spendable credits.
type Balances interface {
	// Get returns the user's balance, or a zero balance when no row
	// exists. It fails only on storage errors.
	Get(ctx context.Context, userID string) (models.Balance, error)
	// ApplyDelta adds delta to the user's balance and returns the result.
	// The update is a single atomic increment-and-return: concurrent
	// deltas for the same user never lose updates. The row is created on
	// first use.
	ApplyDelta(ctx context.Context, userID string, delta int64) (models.Balance, error)
}

// Transactions is the append-only transaction log. Entries are never
// updated or deleted.
type Transactions interface {
	// Apply appends the entry and applies its RawAmount to the user's
	// balance within one database transaction (log-then-apply), stamping
	// the resulting balance onto the returned entry. If the entry carries
	// an idempotency key that was already recorded, the stored entry is
	// returned unchanged and no delta is applied.
	Apply(ctx context.Context, txn models.Transaction) (models.Transaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error)
}

type Conversations interface {
	ListByUser(ctx context.Context, userID string) ([]models.Conversation, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type Messages interface {
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// UserStat is one row of the aggregate usage report.
type UserStat struct {
	User              string `json:"user"`
	Email             string `json:"email"`
	ConversationCount int64  `json:"conversationCount"`
	MessageCount      int64  `json:"messageCount"`
}

type Stats interface {
	// AggregateUserStats counts conversations and messages for every
	// user, ordered by conversation count descending, then message count
	// descending.
	AggregateUserStats(ctx context.Context) ([]UserStat, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
