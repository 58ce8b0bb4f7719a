package domain

import "time"

// TransferStatus is the closed set of states a transfer record can carry.
type TransferStatus string

const (
	// TransferStatusCompleted is the only status the engine ever persists: a
	// failed attempt produces no record at all (full rollback), so there is no
	// pending or failed state.
	TransferStatusCompleted TransferStatus = "completed"
)

// TransferRecord is an immutable, append-only ledger entry documenting one
// completed transfer. It is created exactly once, inside the same database
// transaction as the balance mutations, and never updated or deleted.
type TransferRecord struct {
	TransferID    int64
	SenderID      int64
	ReceiverID    int64
	Amount        Money // net amount credited to the receiver
	CommissionFee Money // 1.5% of Amount, charged to the sender on top
	Status        TransferStatus
	Reference     string // globally unique opaque reference (UUID)
	Meta          map[string]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
