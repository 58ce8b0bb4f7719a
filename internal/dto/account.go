package dto

import (
	"time"

	"github.com/velopay/wallet_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
// OpeningBalance is optional; empty means zero.
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required"`
	OpeningBalance string `json:"opening_balance" binding:"omitempty,money"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID int64     `json:"id"`
	Name      string    `json:"name"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Name:      acc.Name,
		Balance:   acc.Balance.String(),
		CreatedAt: acc.CreatedAt,
		UpdatedAt: acc.UpdatedAt,
	}
}
