package service

import (
	"context"

	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
	"settlement-ledger/pkg/apperror"

	"github.com/google/uuid"
)

// ReportingServiceImpl implements ports.ReportingService: read-only
// queries over settlements, balances and events.
type ReportingServiceImpl struct {
	setlRepo   ports.SettlementRepository
	ledgerRepo ports.LedgerRepository
	commRepo   ports.CommissionRepository
	events     ports.EventRepository
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(
	setlRepo ports.SettlementRepository,
	ledgerRepo ports.LedgerRepository,
	commRepo ports.CommissionRepository,
	events ports.EventRepository,
) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		setlRepo:   setlRepo,
		ledgerRepo: ledgerRepo,
		commRepo:   commRepo,
		events:     events,
	}
}

// GetSettlement returns the settlement record for an invoice key.
func (s *ReportingServiceImpl) GetSettlement(ctx context.Context, key domain.InvoiceKey) (*domain.SettlementRecord, error) {
	rec, err := s.setlRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("settlement")
	}
	return rec, nil
}

// ListSettlements returns a filtered, paginated settlement listing.
func (s *ReportingServiceImpl) ListSettlements(ctx context.Context, params ports.SettlementListParams) ([]domain.SettlementRecord, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	recs, total, err := s.setlRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return recs, total, nil
}

// GetMerchantBalance returns the amount owed to a merchant in an asset.
func (s *ReportingServiceImpl) GetMerchantBalance(ctx context.Context, merchantID uuid.UUID, asset domain.Asset) (int64, error) {
	bal, err := s.ledgerRepo.GetBalance(ctx, merchantID, asset)
	if err != nil {
		return 0, apperror.InternalError(err)
	}
	return bal, nil
}

// GetCommissionBalance returns the platform's commission position in an asset.
func (s *ReportingServiceImpl) GetCommissionBalance(ctx context.Context, asset domain.Asset) (*domain.CommissionBalance, error) {
	cb, err := s.commRepo.GetBalance(ctx, asset)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return cb, nil
}

// ListEvents returns a filtered, paginated event listing.
func (s *ReportingServiceImpl) ListEvents(ctx context.Context, params ports.EventListParams) ([]domain.LedgerEvent, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	evs, err := s.events.List(ctx, params)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return evs, nil
}
