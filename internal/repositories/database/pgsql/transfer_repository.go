package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/velopay/wallet_app/internal/apperrors"
	"github.com/velopay/wallet_app/internal/core/domain"
	portsrepo "github.com/velopay/wallet_app/internal/core/ports/repositories"
	"github.com/velopay/wallet_app/internal/models"
	"github.com/velopay/wallet_app/internal/utils/mapping"
)

// PgxTransferRepository implements transfer persistence against PostgreSQL.
// It owns the atomic unit of a transfer: account locking, funds validation,
// balance mutation and the append-only record insert all happen inside one
// database transaction here.
type PgxTransferRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountLocker
}

// NewTransferRepository creates a new PgxTransferRepository.
func NewTransferRepository(db PgxDB, accountRepo portsrepo.AccountLocker) *PgxTransferRepository {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: db},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransferRepository implements the port.
var _ portsrepo.TransferRepository = (*PgxTransferRepository)(nil)

// SaveTransfer executes one transfer atomically. Either every effect (both
// balance mutations and the record insert) commits, or none do; intermediate
// states are never visible to concurrent transfers because both account rows
// stay exclusively locked until commit.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer *domain.TransferRecord, totalDebit domain.Money) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction is committed successfully.
	defer r.Rollback(ctx, tx)

	sender, receiver, err := r.accountRepo.LockPairForTransfer(ctx, tx, transfer.SenderID, transfer.ReceiverID)
	if err != nil {
		return err
	}

	if sender.Balance.LessThan(totalDebit) {
		return apperrors.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	newSenderBalance := sender.Balance.Subtract(totalDebit)
	newReceiverBalance := receiver.Balance.Add(transfer.Amount)

	if err := r.accountRepo.UpdateBalanceInTx(ctx, tx, sender.AccountID, newSenderBalance, now); err != nil {
		return err
	}
	if err := r.accountRepo.UpdateBalanceInTx(ctx, tx, receiver.AccountID, newReceiverBalance, now); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO transfers (sender_id, receiver_id, amount, commission_fee, status, reference, meta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING transfer_id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		transfer.SenderID,
		transfer.ReceiverID,
		transfer.Amount.Decimal(),
		transfer.CommissionFee.Decimal(),
		string(transfer.Status),
		transfer.Reference,
		transfer.Meta,
		now,
		now,
	).Scan(&transfer.TransferID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transfer record", err)
	}
	transfer.CreatedAt = now
	transfer.UpdatedAt = now

	return r.Commit(ctx, tx)
}

// ListTransfersForAccount returns transfers where the account is a party,
// newest first, plus the total count for pagination.
func (r *PgxTransferRepository) ListTransfersForAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransferRecord, int64, error) {
	query := `
		SELECT transfer_id, sender_id, receiver_id, amount, commission_fee, status, reference, meta, created_at, updated_at
		FROM transfers
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC, transfer_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, fmt.Sprintf("failed to list transfers for account %d", accountID), err)
	}
	defer rows.Close()

	transfers := []models.Transfer{}
	for rows.Next() {
		var m models.Transfer
		err := rows.Scan(
			&m.TransferID,
			&m.SenderID,
			&m.ReceiverID,
			&m.Amount,
			&m.CommissionFee,
			&m.Status,
			&m.Reference,
			&m.Meta,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan transfer row", err)
		}
		transfers = append(transfers, m)
	}
	if rows.Err() != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to iterate transfer rows", rows.Err())
	}

	countQuery := `SELECT COUNT(*) FROM transfers WHERE sender_id = $1 OR receiver_id = $1;`
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, accountID).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, fmt.Sprintf("failed to count transfers for account %d", accountID), err)
	}

	return mapping.ToDomainTransferSlice(transfers), total, nil
}

// CountTransfersForAccountBetween counts transfers touching the account within [from, to).
func (r *PgxTransferRepository) CountTransfersForAccountBetween(ctx context.Context, accountID int64, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM transfers
		WHERE (sender_id = $1 OR receiver_id = $1)
		  AND created_at >= $2 AND created_at < $3;
	`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, accountID, from, to).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, fmt.Sprintf("failed to count transfers for account %d", accountID), err)
	}
	return count, nil
}
