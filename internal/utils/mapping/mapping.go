package mapping

import (
	"github.com/velopay/wallet_app/internal/core/domain"
	"github.com/velopay/wallet_app/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID: m.AccountID,
		Name:      m.Name,
		Balance:   domain.MoneyFromDecimal(m.Balance),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID: d.AccountID,
		Name:      d.Name,
		Balance:   d.Balance.Decimal(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainTransfer converts a model Transfer to a domain TransferRecord.
func ToDomainTransfer(m models.Transfer) domain.TransferRecord {
	return domain.TransferRecord{
		TransferID:    m.TransferID,
		SenderID:      m.SenderID,
		ReceiverID:    m.ReceiverID,
		Amount:        domain.MoneyFromDecimal(m.Amount),
		CommissionFee: domain.MoneyFromDecimal(m.CommissionFee),
		Status:        domain.TransferStatus(m.Status),
		Reference:     m.Reference,
		Meta:          m.Meta,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToDomainTransferSlice converts a slice of model Transfers.
func ToDomainTransferSlice(ms []models.Transfer) []domain.TransferRecord {
	ds := make([]domain.TransferRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransfer(m)
	}
	return ds
}
