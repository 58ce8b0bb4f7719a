package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is the persistence shape of one committed transfer.
// Amount and CommissionFee are NUMERIC(18,4) in the database; Meta is JSONB.
type Transfer struct {
	TransferID    int64             `db:"transfer_id"`
	SenderID      int64             `db:"sender_id"`
	ReceiverID    int64             `db:"receiver_id"`
	Amount        decimal.Decimal   `db:"amount"`
	CommissionFee decimal.Decimal   `db:"commission_fee"`
	Status        string            `db:"status"`
	Reference     string            `db:"reference"`
	Meta          map[string]string `db:"meta"`
	CreatedAt     time.Time         `db:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at"`
}
