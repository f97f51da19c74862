package services

import (
	"context"
	"errors"
	"sort"

	"github.com/chatledger/backend/internal/auth"
	"github.com/chatledger/backend/internal/models"
	repo "github.com/chatledger/backend/internal/repository"
)

// QueryService is the read-only side of the ledger: balance lookups,
// conversation exports, and the aggregate usage report. It never writes.
type QueryService struct {
	users        repo.Users
	bal          repo.Balances
	convos       repo.Conversations
	msgs         repo.Messages
	stats        repo.Stats
	checkBalance bool
}

func NewQueryService(u repo.Users, b repo.Balances, c repo.Conversations, m repo.Messages, st repo.Stats, checkBalance bool) *QueryService {
	return &QueryService{users: u, bal: b, convos: c, msgs: m, stats: st, checkBalance: checkBalance}
}

type BalanceView struct {
	Email        string `json:"email"`
	TokenCredits int64  `json:"tokenCredits"`
}

type ConversationView struct {
	models.Conversation
	Messages []models.MessageView `json:"messages"`
}

type ConversationsView struct {
	Email         string             `json:"email"`
	Conversations []ConversationView `json:"conversations"`
}

// CheckBalance resolves the identity by email+password and returns the
// current balance. Requires the balance-check feature to be enabled.
func (s *QueryService) CheckBalance(ctx context.Context, email, password string) (BalanceView, error) {
	if !s.checkBalance {
		return BalanceView{}, ErrFeatureDisabled
	}
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return BalanceView{}, err
	}
	b, err := s.bal.Get(ctx, user.ID)
	if err != nil {
		return BalanceView{}, err
	}
	return BalanceView{Email: user.Email, TokenCredits: b.TokenCredits}, nil
}

// UserConversations returns every conversation of the authenticated user
// with its messages reduced to the public-safe projection.
func (s *QueryService) UserConversations(ctx context.Context, email, password string) (ConversationsView, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return ConversationsView{}, err
	}

	convos, err := s.convos.ListByUser(ctx, user.ID)
	if err != nil {
		return ConversationsView{}, err
	}

	out := ConversationsView{Email: user.Email, Conversations: make([]ConversationView, 0, len(convos))}
	for _, c := range convos {
		msgs, err := s.msgs.ListByConversation(ctx, c.ID)
		if err != nil {
			return ConversationsView{}, err
		}
		views := make([]models.MessageView, 0, len(msgs))
		for _, m := range msgs {
			views = append(views, m.View())
		}
		out.Conversations = append(out.Conversations, ConversationView{Conversation: c, Messages: views})
	}
	return out, nil
}

// AggregateUserStats reports conversation and message counts for every
// user, ordered by conversation count descending with message count as
// the tie-break. The ordering is part of this method's contract, not the
// backing store's.
func (s *QueryService) AggregateUserStats(ctx context.Context) ([]repo.UserStat, error) {
	stats, err := s.stats.AggregateUserStats(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].ConversationCount != stats[j].ConversationCount {
			return stats[i].ConversationCount > stats[j].ConversationCount
		}
		return stats[i].MessageCount > stats[j].MessageCount
	})
	return stats, nil
}

type UsageView struct {
	Email         string `json:"email"`
	Conversations int64  `json:"conversations"`
	Messages      int64  `json:"messages"`
}

// UserUsage returns the per-user counts the operator CLI prints.
func (s *QueryService) UserUsage(ctx context.Context, email string) (UsageView, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UsageView{}, ErrNotFound
		}
		return UsageView{}, err
	}
	convos, err := s.convos.CountByUser(ctx, user.ID)
	if err != nil {
		return UsageView{}, err
	}
	msgs, err := s.msgs.CountByUser(ctx, user.ID)
	if err != nil {
		return UsageView{}, err
	}
	return UsageView{Email: user.Email, Conversations: convos, Messages: msgs}, nil
}

func (s *QueryService) authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return models.User{}, ErrUnauthorized
	}
	return user, nil
}
