package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velopay/wallet_app/internal/apperrors"
	portssvc "github.com/velopay/wallet_app/internal/core/ports/services"
	"github.com/velopay/wallet_app/internal/dto"
	"github.com/velopay/wallet_app/internal/middleware"
)

const (
	defaultPageSize = 15
	maxPageSize     = 100
)

// transferHandler handles HTTP requests for transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
	accountService  portssvc.AccountSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade, as portssvc.AccountSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts, accountService: as}
}

// registerTransferRoutes registers routes related to transfers. extra
// middleware (e.g. idempotency) is applied to the create route only.
func registerTransferRoutes(rg *gin.RouterGroup, ts portssvc.TransferSvcFacade, as portssvc.AccountSvcFacade, createMiddleware ...gin.HandlerFunc) {
	h := newTransferHandler(ts, as)

	transfers := rg.Group("/transfers")
	{
		handlerChain := append([]gin.HandlerFunc{}, createMiddleware...)
		handlerChain = append(handlerChain, h.createTransfer)
		transfers.POST("", handlerChain...)
		transfers.GET("", h.listTransfers)
	}
}

// createTransfer moves money from the authenticated account to the receiver.
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	senderID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Sender account id not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	transfer, err := h.transferService.Transfer(c.Request.Context(), senderID, req.ReceiverID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient funds to complete this transfer."})
		case errors.Is(err, apperrors.ErrAccountNotFound):
			// Either party's row may be missing; the sentinel does not say
			// which, so the message must not claim it was the receiver.
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to execute transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute transfer", "retryable": true})
		}
		return
	}

	resp := gin.H{"data": dto.ToTransferResponse(transfer, senderID)}
	if sender, err := h.accountService.GetAccountByID(c.Request.Context(), senderID); err == nil {
		resp["meta"] = gin.H{"balance": sender.Balance.String()}
	}
	c.JSON(http.StatusCreated, resp)
}

// listTransfers returns the authenticated account's transfer history, newest
// first, with the account's fresh balance in the response meta.
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account id not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit := parseQueryInt(c, "limit", defaultPageSize)
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := parseQueryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to load account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transfers"})
		return
	}

	transfers, total, err := h.transferService.ListTransfers(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		logger.Error("Failed to list transfers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transfers"})
		return
	}

	data := make([]dto.TransferResponse, len(transfers))
	for i := range transfers {
		data[i] = dto.ToTransferResponse(&transfers[i], accountID)
	}

	c.JSON(http.StatusOK, dto.TransferListResponse{
		Data: data,
		Meta: dto.TransferListMeta{
			Balance: account.Balance.String(),
			Total:   total,
			Limit:   limit,
			Offset:  offset,
		},
	})
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
