package domain

import "time"

// Account represents one holder's wallet balance. Accounts are mutated only by
// the transfer engine, always while row-locked inside the enclosing database
// transaction, and are never deleted.
type Account struct {
	AccountID int64
	Name      string
	Balance   Money
	CreatedAt time.Time
	UpdatedAt time.Time
}
