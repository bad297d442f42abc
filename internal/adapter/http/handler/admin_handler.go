package handler

import (
	"settlement-ledger/internal/adapter/http/dto"
	"settlement-ledger/internal/adapter/http/middleware"
	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
	"settlement-ledger/pkg/apperror"
	"settlement-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles operator-facing custody and commission endpoints.
type AdminHandler struct {
	settlementSvc ports.SettlementService
	custodySvc    ports.CustodyService
	reportingSvc  ports.ReportingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(settlementSvc ports.SettlementService, custodySvc ports.CustodyService, reportingSvc ports.ReportingService) *AdminHandler {
	return &AdminHandler{
		settlementSvc: settlementSvc,
		custodySvc:    custodySvc,
		reportingSvc:  reportingSvc,
	}
}

// Rescue handles POST /api/v1/admin/custody/rescue.
func (h *AdminHandler) Rescue(c *gin.Context) {
	auth, ok := middleware.AuthFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RescueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	asset, err := domain.ParseAsset(req.Asset)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.custodySvc.Rescue(c.Request.Context(), auth, asset, req.To, req.Amount); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"asset":  asset.String(),
		"to":     req.To,
		"amount": req.Amount,
	})
}

// GetFreeBalance handles GET /api/v1/admin/custody/free.
func (h *AdminHandler) GetFreeBalance(c *gin.Context) {
	asset, err := domain.ParseAsset(c.DefaultQuery("asset", "native"))
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	free, err := h.custodySvc.FreeBalance(c.Request.Context(), asset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		Asset:  asset.String(),
		Amount: free,
	})
}

// SetCommissionRate handles PUT /api/v1/admin/commission/rate.
func (h *AdminHandler) SetCommissionRate(c *gin.Context) {
	auth, ok := middleware.AuthFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CommissionRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.settlementSvc.SetCommissionRate(c.Request.Context(), auth, *req.Rate); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"rate": *req.Rate})
}

// SetCommissionReceiver handles PUT /api/v1/admin/commission/receiver.
func (h *AdminHandler) SetCommissionReceiver(c *gin.Context) {
	auth, ok := middleware.AuthFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CommissionReceiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.settlementSvc.SetCommissionReceiver(c.Request.Context(), auth, req.Receiver); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"receiver": req.Receiver})
}

// WithdrawCommission handles POST /api/v1/admin/commission/withdraw.
func (h *AdminHandler) WithdrawCommission(c *gin.Context) {
	auth, ok := middleware.AuthFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CommissionWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	asset, err := domain.ParseAsset(req.Asset)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := h.settlementSvc.WithdrawCommission(c.Request.Context(), auth, asset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WithdrawResponse{
		Asset:  asset.String(),
		Amount: amount,
	})
}

// GetCommissionBalance handles GET /api/v1/admin/commission/balance.
func (h *AdminHandler) GetCommissionBalance(c *gin.Context) {
	asset, err := domain.ParseAsset(c.DefaultQuery("asset", "native"))
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	cb, err := h.reportingSvc.GetCommissionBalance(c.Request.Context(), asset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CommissionBalanceResponse{
		Asset:   cb.Asset.String(),
		Balance: cb.Balance,
		Claimed: cb.Claimed,
	})
}
