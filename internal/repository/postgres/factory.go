package postgres

import (
	repo "github.com/chatledger/backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users         repo.Users
	Balances      repo.Balances
	Transactions  repo.Transactions
	Conversations repo.Conversations
	Messages      repo.Messages
	Stats         repo.Stats
	AuditLogs     repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:         &usersRepo{pool},
		Balances:      &balancesRepo{pool},
		Transactions:  &transactionsRepo{pool},
		Conversations: &conversationsRepo{pool},
		Messages:      &messagesRepo{pool},
		Stats:         &statsRepo{pool},
		AuditLogs:     &auditLogsRepo{pool},
	}
}
