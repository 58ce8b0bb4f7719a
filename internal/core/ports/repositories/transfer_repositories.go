package repositories

import (
	"context"
	"time"

	"github.com/velopay/wallet_app/internal/core/domain"
)

// TransferRepository defines persistence for immutable transfer records.
// There is no update or delete: records are write-once.
type TransferRepository interface {
	// SaveTransfer executes one transfer as a single database transaction:
	// lock both accounts (deadlock-safe order), verify the sender can cover
	// totalDebit, apply both balance mutations and append the transfer record.
	// On success the transfer's assigned id and timestamps are filled in.
	// Fails with apperrors.ErrInsufficientFunds (full rollback, no record)
	// when the locked sender balance is below totalDebit.
	SaveTransfer(ctx context.Context, transfer *domain.TransferRecord, totalDebit domain.Money) error

	// ListTransfersForAccount returns transfers where the account is sender or
	// receiver, newest first, plus the total count for pagination.
	ListTransfersForAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransferRecord, int64, error)

	// CountTransfersForAccountBetween counts transfers touching the account
	// within [from, to).
	CountTransfersForAccountBetween(ctx context.Context, accountID int64, from, to time.Time) (int64, error)
}
