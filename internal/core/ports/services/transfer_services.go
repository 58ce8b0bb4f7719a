package services

import (
	"context"

	"github.com/velopay/wallet_app/internal/core/domain"
)

// TransferSvcFacade is the wallet transfer engine surface.
type TransferSvcFacade interface {
	// Transfer moves rawAmount from sender to receiver, charging the sender a
	// 1.5% commission on top, as one atomic database transaction. After the
	// transaction has durably committed it emits exactly one
	// transfer.completed notification and returns the committed record.
	Transfer(ctx context.Context, senderID, receiverID int64, rawAmount string) (*domain.TransferRecord, error)

	// ListTransfers returns the account's transfer history, newest first,
	// plus the total count.
	ListTransfers(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransferRecord, int64, error)
}
