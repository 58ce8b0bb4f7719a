package services

import (
	"context"

	"github.com/velopay/wallet_app/internal/dto"
)

// TransferNotifier delivers the transfer.completed event to downstream
// consumers. The engine calls it at most once per committed transfer and never
// for a rolled-back one; delivery retries are the transport's concern.
type TransferNotifier interface {
	TransferCompleted(ctx context.Context, event dto.TransferCompletedEvent) error
}
