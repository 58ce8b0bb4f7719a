package services

import (
	"context"
	"time"

	"github.com/velopay/wallet_app/internal/dto"
)

// ReportingSvcFacade exposes read-only aggregates for the dashboard.
type ReportingSvcFacade interface {
	// DashboardStats returns the account's balance and the count of transfers
	// touching it during the UTC day containing now.
	DashboardStats(ctx context.Context, accountID int64, now time.Time) (*dto.DashboardStats, error)
}
