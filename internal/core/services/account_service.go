package services

import (
	"context"
	"log/slog"

	"github.com/velopay/wallet_app/internal/core/domain"
	portsrepo "github.com/velopay/wallet_app/internal/core/ports/repositories"
	portssvc "github.com/velopay/wallet_app/internal/core/ports/services"
	"github.com/velopay/wallet_app/internal/dto"
)

// accountService implements account management.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new account, optionally with an opening balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	balance := domain.ZeroMoney()
	if req.OpeningBalance != "" {
		parsed, err := domain.NewMoneyFromString(req.OpeningBalance)
		if err != nil {
			return nil, err
		}
		balance = parsed
	}

	account := &domain.Account{
		Name:    req.Name,
		Balance: balance,
	}
	if err := s.accountRepo.CreateAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to create account", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", account.AccountID))
	return account, nil
}

// GetAccountByID retrieves an account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}
