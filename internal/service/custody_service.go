package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
	"settlement-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CustodyServiceImpl implements ports.CustodyService. It keeps rescue
// sweeps confined to the free residual: custody balance minus the
// merchant-owed locked total minus unclaimed commission.
type CustodyServiceImpl struct {
	ledgerRepo ports.LedgerRepository
	commRepo   ports.CommissionRepository
	transferor ports.AssetTransferor
	opLock     ports.OperationLock
	events     ports.EventRepository
	log        zerolog.Logger
}

// NewCustodyService creates a new CustodyServiceImpl.
func NewCustodyService(
	ledgerRepo ports.LedgerRepository,
	commRepo ports.CommissionRepository,
	transferor ports.AssetTransferor,
	opLock ports.OperationLock,
	events ports.EventRepository,
	log zerolog.Logger,
) *CustodyServiceImpl {
	return &CustodyServiceImpl{
		ledgerRepo: ledgerRepo,
		commRepo:   commRepo,
		transferor: transferor,
		opLock:     opLock,
		events:     events,
		log:        log,
	}
}

// Rescue sweeps amount of asset out of custody to `to`. It can never
// move merchant-owed or unclaimed-commission funds, and it halts
// entirely when custody holds less than the locked total, since that
// means the books are wrong somewhere else.
func (s *CustodyServiceImpl) Rescue(ctx context.Context, auth domain.AuthContext, asset domain.Asset, to string, amount int64) error {
	if !auth.IsOwner() {
		return apperror.ErrForbiddenRole()
	}
	if domain.IsZeroAddress(to) || amount <= 0 {
		return apperror.ErrInvalidTarget()
	}

	acquired, err := s.opLock.Acquire(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("acquire operation lock: %w", err))
	}
	if !acquired {
		return apperror.ErrOperationInProgress()
	}
	defer func() {
		if err := s.opLock.Release(ctx); err != nil {
			s.log.Error().Err(err).Msg("failed to release operation lock")
		}
	}()

	free, err := s.freeBalance(ctx, asset)
	if err != nil {
		return err
	}
	if amount > free {
		return apperror.ErrAmountExceedsFree()
	}

	if err := s.transferor.Push(ctx, asset, to, amount); err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]any{"to": to})
	ev := &domain.LedgerEvent{
		ID:        uuid.New(),
		Type:      domain.EventRescue,
		Asset:     &asset,
		Amount:    amount,
		Details:   string(payload),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.events.Append(ctx, ev); err != nil {
		s.log.Warn().Err(err).Msg("failed to append rescue event")
	}

	s.log.Info().
		Str("asset", asset.String()).
		Str("to", to).
		Int64("amount", amount).
		Msg("custody rescue")

	return nil
}

// FreeBalance reports the amount of asset currently sweepable.
func (s *CustodyServiceImpl) FreeBalance(ctx context.Context, asset domain.Asset) (int64, error) {
	return s.freeBalance(ctx, asset)
}

func (s *CustodyServiceImpl) freeBalance(ctx context.Context, asset domain.Asset) (int64, error) {
	custody, err := s.transferor.CustodyBalance(ctx, asset)
	if err != nil {
		return 0, apperror.ErrTransferFailed(fmt.Errorf("custody balance: %w", err))
	}
	locked, err := s.ledgerRepo.LockedTotal(ctx, asset)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("locked total: %w", err))
	}
	if custody < locked {
		s.log.Error().
			Str("asset", asset.String()).
			Int64("custody", custody).
			Int64("locked", locked).
			Msg("custody balance below locked total")
		return 0, apperror.ErrAccountingInconsistent()
	}
	cb, err := s.commRepo.GetBalance(ctx, asset)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("commission balance: %w", err))
	}
	free := custody - locked - cb.Balance
	if free < 0 {
		free = 0
	}
	return free, nil
}
