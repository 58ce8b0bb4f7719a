package services

import (
	"context"

	"github.com/velopay/wallet_app/internal/core/domain"
	"github.com/velopay/wallet_app/internal/dto"
)

// AccountSvcFacade is the account management surface consumed by the HTTP layer.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
}
