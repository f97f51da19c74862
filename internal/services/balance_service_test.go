package services

import (
	"context"
	"sync"
	"testing"

	"github.com/chatledger/backend/internal/models"
)

func newBalanceService() (*BalanceService, *fakeBalances, *fakeTransactions) {
	bal := newFakeBalances()
	trx := newFakeTransactions(bal)
	return NewBalanceService(trx, bal, nil, nil), bal, trx
}

func int64p(n int64) *int64 { return &n }

func TestCredit_DefaultAmount(t *testing.T) {
	svc, _, _ := newBalanceService()

	txn, err := svc.Credit(context.Background(), CreditParams{UserID: "u1", Context: models.CtxAdmin})
	if err != nil {
		t.Fatalf("Credit() error = %v", err)
	}
	if txn.RawAmount != DefaultCreditAmount {
		t.Errorf("RawAmount = %d, want %d", txn.RawAmount, DefaultCreditAmount)
	}
	if txn.Balance != DefaultCreditAmount {
		t.Errorf("Balance = %d, want %d", txn.Balance, DefaultCreditAmount)
	}
	if txn.TokenType != models.TokenTypeCredits {
		t.Errorf("TokenType = %q, want %q", txn.TokenType, models.TokenTypeCredits)
	}
}

func TestCredit_LazyBalanceCreation(t *testing.T) {
	svc, _, _ := newBalanceService()
	ctx := context.Background()

	// No balance record exists for the user yet.
	got, err := svc.GetBalance(ctx, "u1")
	if err != nil {
		t.Fatalf("GetBalance() error = %v", err)
	}
	if got != 0 {
		t.Fatalf("GetBalance() = %d before any credit, want 0", got)
	}

	txn, err := svc.Credit(ctx, CreditParams{UserID: "u1", Amount: int64p(500), Context: models.CtxAdmin})
	if err != nil {
		t.Fatalf("Credit() error = %v", err)
	}
	if txn.Balance != 500 {
		t.Errorf("Credit() balance = %d, want 500", txn.Balance)
	}

	got, err = svc.GetBalance(ctx, "u1")
	if err != nil {
		t.Fatalf("GetBalance() error = %v", err)
	}
	if got != 500 {
		t.Errorf("GetBalance() = %d, want 500", got)
	}
}

func TestCredit_NegativeAmountDebits(t *testing.T) {
	svc, _, _ := newBalanceService()
	ctx := context.Background()

	if _, err := svc.Credit(ctx, CreditParams{UserID: "u1", Amount: int64p(300), Context: models.CtxAdmin}); err != nil {
		t.Fatalf("Credit() error = %v", err)
	}
	txn, err := svc.Credit(ctx, CreditParams{UserID: "u1", Amount: int64p(-500), Context: models.CtxUsage})
	if err != nil {
		t.Fatalf("Credit() error = %v", err)
	}
	// Overspend is allowed: balances may go negative.
	if txn.Balance != -200 {
		t.Errorf("Balance = %d, want -200", txn.Balance)
	}
}

func TestCredit_NoLostUpdates(t *testing.T) {
	svc, _, _ := newBalanceService()
	ctx := context.Background()

	const callers = 50
	deltas := make([]int64, callers)
	var want int64
	for i := range deltas {
		deltas[i] = int64(i + 1)
		want += deltas[i]
	}

	var wg sync.WaitGroup
	for _, d := range deltas {
		wg.Add(1)
		go func(d int64) {
			defer wg.Done()
			if _, err := svc.Credit(ctx, CreditParams{UserID: "u1", Amount: &d, Context: models.CtxUsage}); err != nil {
				t.Errorf("Credit() error = %v", err)
			}
		}(d)
	}
	wg.Wait()

	got, err := svc.GetBalance(ctx, "u1")
	if err != nil {
		t.Fatalf("GetBalance() error = %v", err)
	}
	if got != want {
		t.Errorf("final balance = %d, want %d", got, want)
	}
}

func TestCredit_IdempotencyKeyReplay(t *testing.T) {
	svc, _, trx := newBalanceService()
	ctx := context.Background()

	first, err := svc.Credit(ctx, CreditParams{UserID: "u1", Amount: int64p(250), Context: models.CtxAdmin, IdempotencyKey: "grant-42"})
	if err != nil {
		t.Fatalf("Credit() error = %v", err)
	}
	replay, err := svc.Credit(ctx, CreditParams{UserID: "u1", Amount: int64p(250), Context: models.CtxAdmin, IdempotencyKey: "grant-42"})
	if err != nil {
		t.Fatalf("Credit() replay error = %v", err)
	}

	if replay.ID != first.ID {
		t.Errorf("replay returned transaction %s, want original %s", replay.ID, first.ID)
	}
	if replay.Balance != first.Balance {
		t.Errorf("replay balance = %d, want original snapshot %d", replay.Balance, first.Balance)
	}
	if n := trx.count(); n != 1 {
		t.Errorf("transaction log has %d entries, want 1", n)
	}

	got, _ := svc.GetBalance(ctx, "u1")
	if got != 250 {
		t.Errorf("balance after replay = %d, want 250 (delta applied once)", got)
	}
}

func TestGetBalance_ReadIsIdempotent(t *testing.T) {
	svc, _, _ := newBalanceService()
	ctx := context.Background()

	if _, err := svc.Credit(ctx, CreditParams{UserID: "u1", Amount: int64p(77), Context: models.CtxAdmin}); err != nil {
		t.Fatalf("Credit() error = %v", err)
	}
	a, err := svc.GetBalance(ctx, "u1")
	if err != nil {
		t.Fatalf("GetBalance() error = %v", err)
	}
	b, err := svc.GetBalance(ctx, "u1")
	if err != nil {
		t.Fatalf("GetBalance() error = %v", err)
	}
	if a != b {
		t.Errorf("consecutive reads differ: %d then %d", a, b)
	}
}

func TestCredit_TransactionsAreAppendOnly(t *testing.T) {
	svc, _, trx := newBalanceService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Credit(ctx, CreditParams{UserID: "u1", Amount: int64p(10), Context: models.CtxUsage}); err != nil {
			t.Fatalf("Credit() error = %v", err)
		}
	}
	if n := trx.count(); n != 3 {
		t.Errorf("transaction log has %d entries, want 3", n)
	}

	list, err := trx.ListByUser(ctx, "u1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	// Newest first; balance snapshots must be monotonically increasing
	// going back in time.
	if len(list) != 3 {
		t.Fatalf("ListByUser() returned %d entries, want 3", len(list))
	}
	if list[0].Balance != 30 || list[2].Balance != 10 {
		t.Errorf("balance snapshots = [%d %d %d], want [30 20 10]", list[0].Balance, list[1].Balance, list[2].Balance)
	}
}
