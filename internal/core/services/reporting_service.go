package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/velopay/wallet_app/internal/core/ports/repositories"
	portssvc "github.com/velopay/wallet_app/internal/core/ports/services"
	"github.com/velopay/wallet_app/internal/dto"
)

// reportingService implements dashboard aggregates over the transfer ledger.
type reportingService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	transferRepo portsrepo.TransferRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(accountRepo portsrepo.AccountRepository, transferRepo portsrepo.TransferRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// DashboardStats returns the account's balance and how many transfers touched
// it during the UTC day containing now.
func (s *reportingService) DashboardStats(ctx context.Context, accountID int64, now time.Time) (*dto.DashboardStats, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	dayStart := now.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	count, err := s.transferRepo.CountTransfersForAccountBetween(ctx, accountID, dayStart, dayEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to count today's transfers", slog.Int64("account_id", accountID))
		return nil, err
	}

	return &dto.DashboardStats{
		Balance:                 account.Balance.String(),
		TransfersProcessedToday: count,
	}, nil
}
