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

// MerchantHandler handles operator-facing merchant registry endpoints.
type MerchantHandler struct {
	directorySvc ports.DirectoryService
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(directorySvc ports.DirectoryService) *MerchantHandler {
	return &MerchantHandler{directorySvc: directorySvc}
}

// Onboard handles POST /api/v1/admin/merchants.
func (h *MerchantHandler) Onboard(c *gin.Context) {
	auth, ok := middleware.AuthFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.OnboardMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.directorySvc.Onboard(c.Request.Context(), auth, ports.OnboardMerchantRequest{
		Name:         req.Name,
		FundReceiver: req.FundReceiver,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.OnboardMerchantResponse{
		MerchantID: result.MerchantID.String(),
		AccessKey:  result.AccessKey,
		SecretKey:  result.SecretKey,
	})
}

// GetMerchant handles GET /api/v1/admin/merchants/:id.
func (h *MerchantHandler) GetMerchant(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid merchant id"))
		return
	}

	m, err := h.directorySvc.GetMerchant(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toMerchantResponse(m))
}

// SetStatus handles PUT /api/v1/admin/merchants/:id/status.
func (h *MerchantHandler) SetStatus(c *gin.Context) {
	auth, ok := middleware.AuthFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid merchant id"))
		return
	}

	var req dto.MerchantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.directorySvc.SetStatus(c.Request.Context(), auth, merchantID, domain.MerchantStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"merchant_id": merchantID.String(), "status": req.Status})
}

// SetFundReceiver handles PUT /api/v1/admin/merchants/:id/receiver.
func (h *MerchantHandler) SetFundReceiver(c *gin.Context) {
	auth, ok := middleware.AuthFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid merchant id"))
		return
	}

	var req dto.FundReceiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.directorySvc.SetFundReceiver(c.Request.Context(), auth, merchantID, req.FundReceiver); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"merchant_id": merchantID.String(), "fund_receiver": req.FundReceiver})
}

// SetAssetSupport handles PUT /api/v1/admin/merchants/:id/assets.
func (h *MerchantHandler) SetAssetSupport(c *gin.Context) {
	auth, ok := middleware.AuthFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid merchant id"))
		return
	}

	var req dto.AssetSupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	asset, err := domain.ParseAsset(req.Asset)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.directorySvc.SetAssetSupport(c.Request.Context(), auth, merchantID, asset, *req.Supported); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"merchant_id": merchantID.String(),
		"asset":       asset.String(),
		"supported":   *req.Supported,
	})
}

// toMerchantResponse converts domain.Merchant to DTO.
func toMerchantResponse(m *domain.Merchant) dto.MerchantResponse {
	return dto.MerchantResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		FundReceiver: m.FundReceiver,
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
