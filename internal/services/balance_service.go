package services

import (
	"context"
	"log/slog"

	"github.com/chatledger/backend/internal/metrics"
	"github.com/chatledger/backend/internal/models"
	repo "github.com/chatledger/backend/internal/repository"
	"github.com/chatledger/backend/internal/worker"
)

// DefaultCreditAmount is substituted when a credit request omits the
// amount. Administrative grants rely on this convenience.
const DefaultCreditAmount int64 = 1000

// BalanceService is the only entry point that changes a balance. It
// composes the transaction log and ledger store: the log's Apply commits
// the entry and its delta as one unit (log-then-apply), so a failed
// increment never leaves an orphaned entry behind.
type BalanceService struct {
	trx repo.Transactions
	bal repo.Balances
	log repo.AuditLogs
	wp  *worker.Pool
}

func NewBalanceService(t repo.Transactions, b repo.Balances, l repo.AuditLogs, wp *worker.Pool) *BalanceService {
	return &BalanceService{trx: t, bal: b, log: l, wp: wp}
}

type CreditParams struct {
	UserID string
	// Amount is the signed delta to apply; nil selects
	// DefaultCreditAmount. Debits are credits with negative amounts.
	Amount  *int64
	Context models.TxContext
	// IdempotencyKey, when set, makes retries of the same credit apply
	// its delta exactly once.
	IdempotencyKey string
}

// Credit appends a transaction and applies its delta, returning the
// recorded entry with the balance after this specific delta. The caller
// is trusted to have resolved UserID to an existing user.
func (s *BalanceService) Credit(ctx context.Context, p CreditParams) (models.Transaction, error) {
	amount := DefaultCreditAmount
	if p.Amount != nil {
		amount = *p.Amount
	}
	if p.Context == "" {
		p.Context = models.CtxAdmin
	}

	txn := models.Transaction{
		UserID:    p.UserID,
		TokenType: models.TokenTypeCredits,
		Context:   p.Context,
		RawAmount: amount,
	}
	if p.IdempotencyKey != "" {
		key := p.IdempotencyKey
		txn.IdempotencyKey = &key
	}

	txn, err := s.trx.Apply(ctx, txn)
	if err != nil {
		metrics.CreditFailures.Inc()
		return models.Transaction{}, err
	}

	metrics.CreditsApplied.WithLabelValues(string(txn.Context)).Inc()
	s.audit(txn)
	return txn, nil
}

// GetBalance returns the user's current spendable credits, zero when the
// user has no balance record yet.
func (s *BalanceService) GetBalance(ctx context.Context, userID string) (int64, error) {
	b, err := s.bal.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return b.TokenCredits, nil
}

func (s *BalanceService) audit(txn models.Transaction) {
	if s.log == nil || s.wp == nil {
		return
	}
	id := txn.ID
	entry := models.AuditLog{
		EntityType: "transaction",
		EntityID:   &id,
		Action:     "credit",
		Details: map[string]any{
			"user":       txn.UserID,
			"context":    string(txn.Context),
			"raw_amount": txn.RawAmount,
			"balance":    txn.Balance,
		},
	}
	s.wp.Submit(func() {
		if err := s.log.Create(context.Background(), entry); err != nil {
			slog.Warn("audit write failed", "txn", id, "err", err)
		}
	})
}
