package models

import "time"

// TxContext tags the origin of a transaction. It is audit metadata and
// plays no part in balance arithmetic.
type TxContext string

const (
	CtxAdmin  TxContext = "admin"
	CtxUsage  TxContext = "usage"
	CtxRefund TxContext = "refund"
)

// TokenTypeCredits is the only token category currently issued.
const TokenTypeCredits = "credits"

// Transaction is one immutable entry in the append-only transaction log.
// RawAmount is signed: credits and debits are the same operation with
// opposite sign. Balance is the snapshot after this entry's delta was
// applied, stamped when the entry is committed.
type Transaction struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	TokenType      string    `json:"token_type"`
	Context        TxContext `json:"context"`
	RawAmount      int64     `json:"raw_amount"`
	Balance        int64     `json:"balance"`
	IdempotencyKey *string   `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
