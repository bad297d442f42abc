package handler

import (
	"settlement-ledger/internal/adapter/http/dto"
	"settlement-ledger/internal/adapter/http/middleware"
	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
	"settlement-ledger/pkg/apperror"
	"settlement-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles the signed merchant API: payment settlement
// and withdrawals.
type PaymentHandler struct {
	settlementSvc ports.SettlementService
	reportingSvc  ports.ReportingService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(settlementSvc ports.SettlementService, reportingSvc ports.ReportingService) *PaymentHandler {
	return &PaymentHandler{settlementSvc: settlementSvc, reportingSvc: reportingSvc}
}

// ProcessPayment handles POST /api/v1/payments.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	merchantID, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		response.Error(c, apperror.ErrInvalidAccessKey())
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	asset, err := domain.ParseAsset(req.Asset)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rec, err := h.settlementSvc.ProcessPayment(c.Request.Context(), ports.PaymentRequest{
		MerchantID:    merchantID.(uuid.UUID),
		OrderID:       req.OrderID,
		InvoiceID:     req.InvoiceID,
		Payer:         req.Payer,
		Asset:         asset,
		Amount:        req.Amount,
		AttachedValue: req.AttachedValue,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toSettlementResponse(rec))
}

// Withdraw handles POST /api/v1/withdrawals.
func (h *PaymentHandler) Withdraw(c *gin.Context) {
	merchantID, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		response.Error(c, apperror.ErrInvalidAccessKey())
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	asset, err := domain.ParseAsset(req.Asset)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := h.settlementSvc.Withdraw(c.Request.Context(), ports.WithdrawRequest{
		MerchantID: merchantID.(uuid.UUID),
		Asset:      asset,
		Amount:     req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WithdrawResponse{
		Asset:  asset.String(),
		Amount: amount,
	})
}

// GetBalance handles GET /api/v1/balance.
func (h *PaymentHandler) GetBalance(c *gin.Context) {
	merchantID, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		response.Error(c, apperror.ErrInvalidAccessKey())
		return
	}

	asset, err := domain.ParseAsset(c.DefaultQuery("asset", "native"))
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	bal, err := h.reportingSvc.GetMerchantBalance(c.Request.Context(), merchantID.(uuid.UUID), asset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		Asset:  asset.String(),
		Amount: bal,
	})
}

// toSettlementResponse converts domain.SettlementRecord to DTO.
func toSettlementResponse(rec *domain.SettlementRecord) dto.SettlementResponse {
	return dto.SettlementResponse{
		MerchantID:    rec.Key.MerchantID.String(),
		OrderID:       rec.Key.OrderID,
		InvoiceID:     rec.Key.InvoiceID,
		Payer:         rec.Payer,
		Asset:         rec.Asset.String(),
		Amount:        rec.Amount,
		Commission:    rec.Commission,
		MerchantShare: rec.MerchantShare,
		SettledAt:     rec.SettledAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
