package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the persistence shape of a wallet account.
// Balance is NUMERIC(18,4) in the database.
type Account struct {
	AccountID int64           `db:"account_id"`
	Name      string          `db:"name"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}
