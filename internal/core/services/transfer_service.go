package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/velopay/wallet_app/internal/apperrors"
	"github.com/velopay/wallet_app/internal/core/domain"
	portsrepo "github.com/velopay/wallet_app/internal/core/ports/repositories"
	portssvc "github.com/velopay/wallet_app/internal/core/ports/services"
	"github.com/velopay/wallet_app/internal/dto"
)

// commissionRate is the fixed fee charged to the sender on top of the
// transferred amount: 1.5% of the amount, truncated to scale 4.
const commissionRate = "0.015"

// transferService is the wallet transfer engine.
type transferService struct {
	BaseService
	transferRepo portsrepo.TransferRepository
	notifier     portssvc.TransferNotifier
}

// NewTransferService creates the transfer engine.
func NewTransferService(transferRepo portsrepo.TransferRepository, notifier portssvc.TransferNotifier) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo: transferRepo,
		notifier:     notifier,
	}
}

// Ensure transferService implements the facade.
var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer debits the sender by amount plus commission, credits the receiver
// by amount and appends one completed transfer record, all in one database
// transaction. The transfer.completed notification is emitted only after that
// transaction has durably committed, at most once; a rolled-back transfer
// emits nothing and returns the failure instead.
func (s *transferService) Transfer(ctx context.Context, senderID, receiverID int64, rawAmount string) (*domain.TransferRecord, error) {
	// The HTTP edge already validates the amount, but the engine must not
	// trust it: parse and range-check again.
	amount, err := domain.NewMoneyFromString(rawAmount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %q", apperrors.ErrInvalidAmount, rawAmount)
	}

	commission, err := amount.Multiply(commissionRate)
	if err != nil {
		// commissionRate is a compile-time constant; failing to parse it is a
		// programmer error, not an input error.
		return nil, apperrors.NewAppError(500, "failed to compute commission", err)
	}
	totalDebit := amount.Add(commission)

	transfer := &domain.TransferRecord{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Amount:        amount,
		CommissionFee: commission,
		Status:        domain.TransferStatusCompleted,
		Reference:     uuid.NewString(),
		Meta: map[string]string{
			"processed_at": time.Now().UTC().Format(time.RFC3339),
		},
	}

	if err := s.transferRepo.SaveTransfer(ctx, transfer, totalDebit); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogWarn(ctx, "Transfer rejected: insufficient funds",
				slog.Int64("sender_id", senderID),
				slog.Int64("receiver_id", receiverID),
				slog.String("amount", amount.String()))
		} else {
			s.LogError(ctx, err, "Transfer failed",
				slog.Int64("sender_id", senderID),
				slog.Int64("receiver_id", receiverID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.Int64("transfer_id", transfer.TransferID),
		slog.String("reference", transfer.Reference),
		slog.String("amount", amount.String()),
		slog.String("commission_fee", commission.String()))

	// The unit has committed; from here on the transfer stands regardless of
	// what the notification transport does.
	if err := s.notifier.TransferCompleted(ctx, dto.ToTransferCompletedEvent(transfer)); err != nil {
		s.LogError(ctx, err, "Transfer committed but notification delivery failed",
			slog.Int64("transfer_id", transfer.TransferID),
			slog.String("reference", transfer.Reference))
	}

	return transfer, nil
}

// ListTransfers returns the account's transfer history, newest first.
func (s *transferService) ListTransfers(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransferRecord, int64, error) {
	transfers, total, err := s.transferRepo.ListTransfersForAccount(ctx, accountID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers", slog.Int64("account_id", accountID))
		return nil, 0, err
	}
	return transfers, total, nil
}
