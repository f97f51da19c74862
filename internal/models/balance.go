package models

import "time"

// Balance is the cached spendable-credit counter for one user. It is a
// materialized view over that user's transactions: the row is created
// lazily on the first credit, mutated only through the ledger store's
// atomic increment, and never deleted. A missing row reads as zero.
type Balance struct {
	UserID        string    `json:"user_id"`
	TokenCredits  int64     `json:"token_credits"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}
