package handler

import (
	"math"
	"strconv"

	"settlement-ledger/internal/adapter/http/dto"
	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
	"settlement-ledger/pkg/apperror"
	"settlement-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportingHandler handles operator-facing ledger query endpoints.
type ReportingHandler struct {
	reportingSvc ports.ReportingService
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(reportingSvc ports.ReportingService) *ReportingHandler {
	return &ReportingHandler{reportingSvc: reportingSvc}
}

// GetSettlement handles GET /api/v1/admin/settlements/:merchant_id/:order_id/:invoice_id.
func (h *ReportingHandler) GetSettlement(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("merchant_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid merchant id"))
		return
	}

	key := domain.InvoiceKey{
		MerchantID: merchantID,
		OrderID:    c.Param("order_id"),
		InvoiceID:  c.Param("invoice_id"),
	}

	rec, err := h.reportingSvc.GetSettlement(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSettlementResponse(rec))
}

// ListSettlements handles GET /api/v1/admin/settlements.
func (h *ReportingHandler) ListSettlements(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Query("merchant_id"))
	if err != nil {
		response.Error(c, apperror.Validation("merchant_id query parameter is required"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.SettlementListParams{
		MerchantID: merchantID,
		Page:       page,
		PageSize:   pageSize,
	}

	if a := c.Query("asset"); a != "" {
		asset, err := domain.ParseAsset(a)
		if err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		params.Asset = &asset
	}

	recs, total, err := h.reportingSvc.ListSettlements(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.SettlementResponse, 0, len(recs))
	for i := range recs {
		items = append(items, toSettlementResponse(&recs[i]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	response.OK(c, dto.SettlementListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// GetMerchantBalance handles GET /api/v1/admin/merchants/:id/balance.
func (h *ReportingHandler) GetMerchantBalance(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid merchant id"))
		return
	}

	asset, err := domain.ParseAsset(c.DefaultQuery("asset", "native"))
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	bal, err := h.reportingSvc.GetMerchantBalance(c.Request.Context(), merchantID, asset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		Asset:  asset.String(),
		Amount: bal,
	})
}

// ListEvents handles GET /api/v1/admin/events.
func (h *ReportingHandler) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.EventListParams{
		Page:     page,
		PageSize: pageSize,
	}

	if t := c.Query("type"); t != "" {
		typ := domain.EventType(t)
		params.Type = &typ
	}
	if m := c.Query("merchant_id"); m != "" {
		merchantID, err := uuid.Parse(m)
		if err != nil {
			response.Error(c, apperror.Validation("invalid merchant id"))
			return
		}
		params.MerchantID = &merchantID
	}

	evs, err := h.reportingSvc.ListEvents(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.EventResponse, 0, len(evs))
	for i := range evs {
		items = append(items, toEventResponse(&evs[i]))
	}

	response.OK(c, items)
}

// toEventResponse converts domain.LedgerEvent to DTO.
func toEventResponse(ev *domain.LedgerEvent) dto.EventResponse {
	resp := dto.EventResponse{
		ID:        ev.ID.String(),
		Type:      string(ev.Type),
		Amount:    ev.Amount,
		Details:   ev.Details,
		CreatedAt: ev.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if ev.MerchantID != nil {
		s := ev.MerchantID.String()
		resp.MerchantID = &s
	}
	if ev.Asset != nil {
		s := ev.Asset.String()
		resp.Asset = &s
	}
	return resp
}
