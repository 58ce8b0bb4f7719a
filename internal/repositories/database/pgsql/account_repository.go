package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/velopay/wallet_app/internal/apperrors"
	"github.com/velopay/wallet_app/internal/core/domain"
	portsrepo "github.com/velopay/wallet_app/internal/core/ports/repositories"
	"github.com/velopay/wallet_app/internal/models"
	"github.com/velopay/wallet_app/internal/utils/mapping"
)

// PgxAccountRepository implements account persistence against PostgreSQL.
type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a new PgxAccountRepository.
func NewAccountRepository(db PgxDB) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxAccountRepository implements the facade.
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// CreateAccount inserts a new account and fills in its assigned id and timestamps.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (name, balance)
		VALUES ($1, $2)
		RETURNING account_id, created_at, updated_at;
	`
	err := r.Pool.QueryRow(ctx, query, account.Name, account.Balance.Decimal()).
		Scan(&account.AccountID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert account", err)
	}
	return nil
}

// FindAccountByID retrieves an account by id.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `
		SELECT account_id, name, balance, created_at, updated_at
		FROM accounts
		WHERE account_id = $1;
	`
	modelAcc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", apperrors.ErrAccountNotFound, accountID)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find account %d", accountID), err)
	}
	acc := mapping.ToDomainAccount(modelAcc)
	return &acc, nil
}

// LockPairForTransfer acquires FOR UPDATE locks on both accounts within tx.
// Locks are taken one row at a time in ascending account-id order, independent
// of which side is sender or receiver; this single global lock order is what
// prevents deadlock when concurrent transfers move money in opposite
// directions between the same pair.
func (r *PgxAccountRepository) LockPairForTransfer(ctx context.Context, tx pgx.Tx, idA, idB int64) (*domain.Account, *domain.Account, error) {
	if idA == idB {
		return nil, nil, apperrors.ErrSelfTransfer
	}

	first, second := idA, idB
	if second < first {
		first, second = second, first
	}

	query := `
		SELECT account_id, name, balance, created_at, updated_at
		FROM accounts
		WHERE account_id = $1
		FOR UPDATE;
	`

	locked := make(map[int64]domain.Account, 2)
	for _, id := range []int64{first, second} {
		modelAcc, err := scanAccount(tx.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil, fmt.Errorf("%w: id %d", apperrors.ErrAccountNotFound, id)
			}
			return nil, nil, apperrors.NewAppError(500, fmt.Sprintf("failed to lock account %d", id), err)
		}
		locked[modelAcc.AccountID] = mapping.ToDomainAccount(modelAcc)
	}

	if len(locked) != 2 {
		return nil, nil, apperrors.NewAppError(500, "lock acquisition returned the wrong number of accounts", nil)
	}

	accA, accB := locked[idA], locked[idB]
	return &accA, &accB, nil
}

// UpdateBalanceInTx persists a locked account's balance within tx.
func (r *PgxAccountRepository) UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, accountID int64, balance domain.Money, updatedAt time.Time) error {
	query := `UPDATE accounts SET balance = $1, updated_at = $2 WHERE account_id = $3;`
	tag, err := tx.Exec(ctx, query, balance.Decimal(), updatedAt, accountID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update balance for account %d", accountID), err)
	}
	if tag.RowsAffected() != 1 {
		// The row was locked moments ago; anything but one row is a programmer error.
		return apperrors.NewAppError(500, fmt.Sprintf("balance update affected %d rows for account %d", tag.RowsAffected(), accountID), nil)
	}
	return nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(&m.AccountID, &m.Name, &m.Balance, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}
