package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/velopay/wallet_app/internal/apperrors"
	"github.com/velopay/wallet_app/internal/core/domain"
	"github.com/velopay/wallet_app/internal/core/services"
	"github.com/velopay/wallet_app/internal/dto"
)

// MockTransferRepository mocks portsrepo.TransferRepository.
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, transfer *domain.TransferRecord, totalDebit domain.Money) error {
	args := m.Called(ctx, transfer, totalDebit)
	return args.Error(0)
}

func (m *MockTransferRepository) ListTransfersForAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransferRecord, int64, error) {
	args := m.Called(ctx, accountID, limit, offset)
	var transfers []domain.TransferRecord
	if args.Get(0) != nil {
		transfers = args.Get(0).([]domain.TransferRecord)
	}
	return transfers, args.Get(1).(int64), args.Error(2)
}

func (m *MockTransferRepository) CountTransfersForAccountBetween(ctx context.Context, accountID int64, from, to time.Time) (int64, error) {
	args := m.Called(ctx, accountID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransferNotifier mocks portssvc.TransferNotifier.
type MockTransferNotifier struct {
	mock.Mock
}

func (m *MockTransferNotifier) TransferCompleted(ctx context.Context, event dto.TransferCompletedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestTransfer_Success(t *testing.T) {
	repo := new(MockTransferRepository)
	notifier := new(MockTransferNotifier)
	svc := services.NewTransferService(repo, notifier)
	ctx := context.Background()

	repo.On("SaveTransfer", ctx, mock.MatchedBy(func(tr *domain.TransferRecord) bool {
		return tr.SenderID == 1 &&
			tr.ReceiverID == 2 &&
			tr.Amount.String() == "50" &&
			tr.CommissionFee.String() == "0.75" &&
			tr.Status == domain.TransferStatusCompleted &&
			tr.Reference != ""
	}), mock.MatchedBy(func(totalDebit domain.Money) bool {
		return totalDebit.String() == "50.75"
	})).Run(func(args mock.Arguments) {
		// The repository assigns the id and timestamps on commit.
		tr := args.Get(1).(*domain.TransferRecord)
		tr.TransferID = 42
		tr.CreatedAt = time.Now().UTC()
		tr.UpdatedAt = tr.CreatedAt
	}).Return(nil).Once()

	notifier.On("TransferCompleted", ctx, mock.MatchedBy(func(event dto.TransferCompletedEvent) bool {
		return event.TransferID == 42 &&
			event.SenderID == 1 &&
			event.ReceiverID == 2 &&
			event.Amount == "50" &&
			event.CommissionFee == "0.75"
	})).Return(nil).Once()

	transfer, err := svc.Transfer(ctx, 1, 2, "50")

	require.NoError(t, err)
	require.NotNil(t, transfer)
	assert.Equal(t, int64(42), transfer.TransferID)
	assert.Equal(t, "50", transfer.Amount.String())
	assert.Equal(t, "0.75", transfer.CommissionFee.String())
	assert.NotEmpty(t, transfer.Meta["processed_at"])
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransfer_TruncatesAmountBeforePersisting(t *testing.T) {
	repo := new(MockTransferRepository)
	notifier := new(MockTransferNotifier)
	svc := services.NewTransferService(repo, notifier)
	ctx := context.Background()

	repo.On("SaveTransfer", ctx, mock.MatchedBy(func(tr *domain.TransferRecord) bool {
		// 10.00005 truncates to 10; commission is 0.15.
		return tr.Amount.String() == "10" && tr.CommissionFee.String() == "0.15"
	}), mock.MatchedBy(func(totalDebit domain.Money) bool {
		return totalDebit.String() == "10.15"
	})).Return(nil).Once()
	notifier.On("TransferCompleted", ctx, mock.Anything).Return(nil).Once()

	_, err := svc.Transfer(ctx, 1, 2, "10.00005")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTransfer_InsufficientFunds_NoNotification(t *testing.T) {
	repo := new(MockTransferRepository)
	notifier := new(MockTransferNotifier)
	svc := services.NewTransferService(repo, notifier)
	ctx := context.Background()

	repo.On("SaveTransfer", ctx, mock.Anything, mock.Anything).
		Return(apperrors.ErrInsufficientFunds).Once()

	transfer, err := svc.Transfer(ctx, 1, 2, "1000")

	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Nil(t, transfer)
	repo.AssertExpectations(t)
	notifier.AssertNotCalled(t, "TransferCompleted", mock.Anything, mock.Anything)
}

func TestTransfer_InvalidAmount_RepositoryNeverTouched(t *testing.T) {
	repo := new(MockTransferRepository)
	notifier := new(MockTransferNotifier)
	svc := services.NewTransferService(repo, notifier)
	ctx := context.Background()

	for _, raw := range []string{"abc", "", "-5", "0", "0.0000"} {
		transfer, err := svc.Transfer(ctx, 1, 2, raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, "amount %q", raw)
		assert.Nil(t, transfer, "amount %q", raw)
	}
	repo.AssertNotCalled(t, "SaveTransfer", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "TransferCompleted", mock.Anything, mock.Anything)
}

func TestTransfer_RepositoryErrorsPassThrough(t *testing.T) {
	cases := []struct {
		name    string
		repoErr error
	}{
		{"self transfer", apperrors.ErrSelfTransfer},
		{"receiver missing", apperrors.ErrAccountNotFound},
		{"storage failure", apperrors.NewAppError(500, "transfer transaction failed", assert.AnError)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockTransferRepository)
			notifier := new(MockTransferNotifier)
			svc := services.NewTransferService(repo, notifier)
			ctx := context.Background()

			repo.On("SaveTransfer", ctx, mock.Anything, mock.Anything).
				Return(tc.repoErr).Once()

			transfer, err := svc.Transfer(ctx, 1, 2, "50")

			assert.ErrorIs(t, err, tc.repoErr)
			assert.Nil(t, transfer)
			repo.AssertExpectations(t)
			notifier.AssertNotCalled(t, "TransferCompleted", mock.Anything, mock.Anything)
		})
	}
}

func TestTransfer_NotifierFailureDoesNotFailTransfer(t *testing.T) {
	repo := new(MockTransferRepository)
	notifier := new(MockTransferNotifier)
	svc := services.NewTransferService(repo, notifier)
	ctx := context.Background()

	repo.On("SaveTransfer", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	notifier.On("TransferCompleted", ctx, mock.Anything).
		Return(assert.AnError).Once()

	transfer, err := svc.Transfer(ctx, 1, 2, "50")

	require.NoError(t, err)
	require.NotNil(t, transfer)
	notifier.AssertExpectations(t)
}

func TestListTransfers(t *testing.T) {
	repo := new(MockTransferRepository)
	notifier := new(MockTransferNotifier)
	svc := services.NewTransferService(repo, notifier)
	ctx := context.Background()

	records := []domain.TransferRecord{
		{TransferID: 2, SenderID: 1, ReceiverID: 2},
		{TransferID: 1, SenderID: 3, ReceiverID: 1},
	}
	repo.On("ListTransfersForAccount", ctx, int64(1), 15, 0).
		Return(records, int64(2), nil).Once()

	transfers, total, err := svc.ListTransfers(ctx, 1, 15, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, transfers, 2)
	repo.AssertExpectations(t)
}

func TestListTransfers_Error(t *testing.T) {
	repo := new(MockTransferRepository)
	notifier := new(MockTransferNotifier)
	svc := services.NewTransferService(repo, notifier)
	ctx := context.Background()

	repo.On("ListTransfersForAccount", ctx, int64(1), 15, 0).
		Return(nil, int64(0), assert.AnError).Once()

	_, _, err := svc.ListTransfers(ctx, 1, 15, 0)

	assert.ErrorIs(t, err, assert.AnError)
}
