package notifications

import (
	"context"
	"log/slog"

	portssvc "github.com/velopay/wallet_app/internal/core/ports/services"
	"github.com/velopay/wallet_app/internal/dto"
)

// LoggerNotifier writes transfer.completed events to the structured logger.
// Used when no Redis transport is configured, and in tests.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

var _ portssvc.TransferNotifier = (*LoggerNotifier)(nil)

// TransferCompleted logs the event.
func (n *LoggerNotifier) TransferCompleted(_ context.Context, event dto.TransferCompletedEvent) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("transfer.completed",
		slog.Int64("transfer_id", event.TransferID),
		slog.Int64("sender_id", event.SenderID),
		slog.Int64("receiver_id", event.ReceiverID),
		slog.String("amount", event.Amount),
		slog.String("commission_fee", event.CommissionFee),
		slog.String("reference", event.Reference),
	)
	return nil
}
