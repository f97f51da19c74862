package services

import (
	"context"
	"sync"
	"time"

	"github.com/chatledger/backend/internal/models"
	repo "github.com/chatledger/backend/internal/repository"
	"github.com/google/uuid"
)

// In-memory repository fakes. The transaction fake mirrors the real
// log-then-apply contract: appending an entry and bumping the balance
// happen under one lock.

type fakeBalances struct {
	mu       sync.Mutex
	balances map[string]int64
}

func newFakeBalances() *fakeBalances {
	return &fakeBalances{balances: map[string]int64{}}
}

func (f *fakeBalances) Get(_ context.Context, userID string) (models.Balance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.Balance{UserID: userID, TokenCredits: f.balances[userID]}, nil
}

func (f *fakeBalances) ApplyDelta(_ context.Context, userID string, delta int64) (models.Balance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applyLocked(userID, delta), nil
}

func (f *fakeBalances) applyLocked(userID string, delta int64) models.Balance {
	f.balances[userID] += delta
	return models.Balance{UserID: userID, TokenCredits: f.balances[userID], LastUpdatedAt: time.Now()}
}

type fakeTransactions struct {
	mu      sync.Mutex
	bal     *fakeBalances
	entries []models.Transaction
	byKey   map[string]models.Transaction
}

func newFakeTransactions(bal *fakeBalances) *fakeTransactions {
	return &fakeTransactions{bal: bal, byKey: map[string]models.Transaction{}}
}

func (f *fakeTransactions) Apply(_ context.Context, txn models.Transaction) (models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if txn.IdempotencyKey != nil {
		if prev, ok := f.byKey[*txn.IdempotencyKey]; ok {
			return prev, nil
		}
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	txn.CreatedAt = time.Now()

	f.bal.mu.Lock()
	b := f.bal.applyLocked(txn.UserID, txn.RawAmount)
	f.bal.mu.Unlock()
	txn.Balance = b.TokenCredits

	f.entries = append(f.entries, txn)
	if txn.IdempotencyKey != nil {
		f.byKey[*txn.IdempotencyKey] = txn
	}
	return txn, nil
}

func (f *fakeTransactions) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTransactions) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]models.User // by id
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{users: map[string]models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeConversations struct {
	convos []models.Conversation
}

func (f *fakeConversations) ListByUser(_ context.Context, userID string) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.convos {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConversations) CountByUser(_ context.Context, userID string) (int64, error) {
	out, _ := f.ListByUser(context.Background(), userID)
	return int64(len(out)), nil
}

type fakeMessages struct {
	msgs []models.Message
}

func (f *fakeMessages) ListByConversation(_ context.Context, conversationID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.msgs {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessages) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, m := range f.msgs {
		if m.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeStats struct {
	stats []repo.UserStat
}

func (f *fakeStats) AggregateUserStats(_ context.Context) ([]repo.UserStat, error) {
	out := make([]repo.UserStat, len(f.stats))
	copy(out, f.stats)
	return out, nil
}
