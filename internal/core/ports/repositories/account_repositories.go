package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/velopay/wallet_app/internal/core/domain"
)

// AccountRepository defines plain account persistence consumed by the HTTP layer.
type AccountRepository interface {
	// CreateAccount persists a new account and fills in its assigned id and timestamps.
	CreateAccount(ctx context.Context, account *domain.Account) error
	// FindAccountByID retrieves an account by id. Returns apperrors.ErrAccountNotFound if absent.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
}

// AccountLocker defines the exclusive-lock operations used by the transfer
// engine. Both methods must be called within the provided transaction.
type AccountLocker interface {
	// LockPairForTransfer acquires FOR UPDATE locks on the two accounts in
	// ascending id order regardless of which is sender or receiver, so two
	// concurrent transfers in opposite directions can never deadlock.
	// Fails with apperrors.ErrSelfTransfer when idA == idB and with
	// apperrors.ErrAccountNotFound when either id does not resolve to a row.
	// The returned accounts are in (idA, idB) request order with balances as
	// of lock acquisition.
	LockPairForTransfer(ctx context.Context, tx pgx.Tx, idA, idB int64) (*domain.Account, *domain.Account, error)
	// UpdateBalanceInTx persists a locked account's balance. Must only be
	// called while the row lock from LockPairForTransfer is still held.
	UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, accountID int64, balance domain.Money, updatedAt time.Time) error
}

// AccountRepositoryFacade combines the account persistence interfaces.
type AccountRepositoryFacade interface {
	AccountRepository
	AccountLocker
}
