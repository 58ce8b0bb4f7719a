package dto

import (
	"time"

	"github.com/velopay/wallet_app/internal/core/domain"
)

// CreateTransferRequest defines the payload for initiating a transfer. The
// sender is never taken from the body; it comes from the authenticated caller.
// Amount must be a positive decimal string with at most 4 fractional digits
// (the "money" binding is registered in the handlers package).
type CreateTransferRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Amount     string `json:"amount" binding:"required,money"`
}

// TransferDirection reports how a transfer relates to the requesting account.
type TransferDirection string

const (
	DirectionIncoming TransferDirection = "incoming"
	DirectionOutgoing TransferDirection = "outgoing"
	DirectionExternal TransferDirection = "external"
)

// TransferResponse is the public shape of one transfer record.
type TransferResponse struct {
	TransferID    int64             `json:"id"`
	SenderID      int64             `json:"sender_id"`
	ReceiverID    int64             `json:"receiver_id"`
	Amount        string            `json:"amount"`
	CommissionFee string            `json:"commission_fee"`
	Status        string            `json:"status"`
	Reference     string            `json:"reference"`
	Direction     TransferDirection `json:"direction"`
	CreatedAt     time.Time         `json:"created_at"`
}

// TransferListResponse is a paginated transfer history plus the caller's
// current balance.
type TransferListResponse struct {
	Data []TransferResponse `json:"data"`
	Meta TransferListMeta   `json:"meta"`
}

// TransferListMeta carries pagination info and the caller's fresh balance.
type TransferListMeta struct {
	Balance string `json:"balance"`
	Total   int64  `json:"total"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
}

// TransferCompletedEvent is the notification payload emitted exactly once per
// committed transfer, never for a rolled-back one.
type TransferCompletedEvent struct {
	TransferID    int64  `json:"id"`
	SenderID      int64  `json:"sender_id"`
	ReceiverID    int64  `json:"receiver_id"`
	Amount        string `json:"amount"`
	CommissionFee string `json:"commission_fee"`
	Status        string `json:"status"`
	Reference     string `json:"reference"`
	CreatedAt     string `json:"created_at"` // ISO-8601
}

// ToTransferResponse converts a domain record, computing the direction
// relative to the requesting account.
func ToTransferResponse(t *domain.TransferRecord, requesterID int64) TransferResponse {
	direction := DirectionExternal
	switch requesterID {
	case t.SenderID:
		direction = DirectionOutgoing
	case t.ReceiverID:
		direction = DirectionIncoming
	}
	return TransferResponse{
		TransferID:    t.TransferID,
		SenderID:      t.SenderID,
		ReceiverID:    t.ReceiverID,
		Amount:        t.Amount.String(),
		CommissionFee: t.CommissionFee.String(),
		Status:        string(t.Status),
		Reference:     t.Reference,
		Direction:     direction,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransferCompletedEvent converts a committed domain record into its
// notification payload.
func ToTransferCompletedEvent(t *domain.TransferRecord) TransferCompletedEvent {
	return TransferCompletedEvent{
		TransferID:    t.TransferID,
		SenderID:      t.SenderID,
		ReceiverID:    t.ReceiverID,
		Amount:        t.Amount.String(),
		CommissionFee: t.CommissionFee.String(),
		Status:        string(t.Status),
		Reference:     t.Reference,
		CreatedAt:     t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
