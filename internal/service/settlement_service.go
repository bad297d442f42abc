package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
	"settlement-ledger/pkg/apperror"
	"settlement-ledger/pkg/percent"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettlementServiceImpl implements ports.SettlementService.
//
// Settlement variant: accumulate-then-withdraw. ProcessPayment never
// pushes the merchant share outward; it accrues the share to the
// merchant's balance and raises the asset's locked total. Merchants
// pull funds later through Withdraw.
type SettlementServiceImpl struct {
	setlRepo   ports.SettlementRepository
	ledgerRepo ports.LedgerRepository
	commRepo   ports.CommissionRepository
	directory  ports.MerchantDirectory
	transferor ports.AssetTransferor
	opLock     ports.OperationLock
	payerCtr   ports.PayerCounter
	events     ports.EventRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(
	setlRepo ports.SettlementRepository,
	ledgerRepo ports.LedgerRepository,
	commRepo ports.CommissionRepository,
	directory ports.MerchantDirectory,
	transferor ports.AssetTransferor,
	opLock ports.OperationLock,
	payerCtr ports.PayerCounter,
	events ports.EventRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		setlRepo:   setlRepo,
		ledgerRepo: ledgerRepo,
		commRepo:   commRepo,
		directory:  directory,
		transferor: transferor,
		opLock:     opLock,
		payerCtr:   payerCtr,
		events:     events,
		transactor: transactor,
		log:        log,
	}
}

// ProcessPayment settles one invoice: validates eligibility, records
// the settlement, splits the amount into commission and merchant share,
// and pulls the funds into custody. The invoice key settles at most
// once; all bookkeeping rolls back if the inbound transfer fails.
func (s *SettlementServiceImpl) ProcessPayment(ctx context.Context, req ports.PaymentRequest) (*domain.SettlementRecord, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.OrderID == "" || len(req.OrderID) > domain.MaxIdentifierLen {
		return nil, apperror.Validation("order_id must be 1-100 characters")
	}
	if req.InvoiceID == "" || len(req.InvoiceID) > domain.MaxIdentifierLen {
		return nil, apperror.Validation("invoice_id must be 1-100 characters")
	}

	active, err := s.directory.IsMerchantActive(ctx, req.MerchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("directory active check: %w", err))
	}
	if !active {
		return nil, apperror.ErrMerchantInactive()
	}

	supported, err := s.directory.IsAssetSupported(ctx, req.MerchantID, req.Asset)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("directory asset check: %w", err))
	}
	if !supported {
		return nil, apperror.ErrAssetNotSupported()
	}

	// Native value arrives attached to the request: it must match the
	// amount exactly, and must be absent for token payments.
	if req.Asset.IsNative() {
		if req.AttachedValue != req.Amount {
			return nil, apperror.ErrNativeValueMismatch()
		}
	} else if req.AttachedValue != 0 {
		return nil, apperror.ErrUnexpectedNativeValue()
	}

	// Busy guard: one externally-calling operation at a time. A payment
	// re-entered through a malicious bridge callback fails here.
	acquired, err := s.opLock.Acquire(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("acquire operation lock: %w", err))
	}
	if !acquired {
		return nil, apperror.ErrOperationInProgress()
	}
	defer func() {
		if err := s.opLock.Release(ctx); err != nil {
			s.log.Error().Err(err).Msg("failed to release operation lock")
		}
	}()

	// Attempt counter is informational and counts failures too.
	if _, err := s.payerCtr.Increment(ctx, req.Payer); err != nil {
		s.log.Warn().Err(err).Str("payer", req.Payer).Msg("payer counter increment failed")
	}

	settings, err := s.commRepo.GetSettings(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load commission settings: %w", err))
	}
	if settings == nil {
		return nil, apperror.ErrCommissionNotConfigured()
	}

	key := domain.InvoiceKey{MerchantID: req.MerchantID, OrderID: req.OrderID, InvoiceID: req.InvoiceID}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Anti-replay: checked inside the transaction, before any transfer.
	settled, err := s.setlRepo.Exists(ctx, dbTx, key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check invoice: %w", err))
	}
	if settled {
		return nil, apperror.ErrInvoiceAlreadySettled()
	}

	// Native value is not pulled, it arrives on the custody account
	// ahead of the request. Confirm custody covers the tracked totals
	// plus this payment before writing anything: a claimed attached
	// value that never reached the bridge fails here instead of minting
	// unbacked balance. Stray inflows only raise the custody side, so
	// they cannot fail a legitimate payment.
	if req.Asset.IsNative() {
		custody, err := s.transferor.CustodyBalance(ctx, req.Asset)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("read custody balance: %w", err))
		}
		locked, err := s.ledgerRepo.LockedTotalForUpdate(ctx, dbTx, req.Asset)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("read locked total: %w", err))
		}
		cb, err := s.commRepo.GetBalanceForUpdate(ctx, dbTx, req.Asset)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("read commission balance: %w", err))
		}
		if custody < locked+cb.Balance+req.Amount {
			return nil, apperror.ErrUnexpectedAmountReceived()
		}
	}

	commission := percent.Of(req.Amount, settings.Rate, percent.RateScale)
	merchantShare := req.Amount - commission

	now := time.Now().UTC()
	rec := &domain.SettlementRecord{
		Key:           key,
		Payer:         req.Payer,
		Asset:         req.Asset,
		Amount:        req.Amount,
		Commission:    commission,
		MerchantShare: merchantShare,
		SettledAt:     now,
	}

	if err := s.setlRepo.Create(ctx, dbTx, rec); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create settlement record: %w", err))
	}
	if err := s.commRepo.Accrue(ctx, dbTx, req.Asset, commission); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("accrue commission: %w", err))
	}
	if err := s.ledgerRepo.AddBalance(ctx, dbTx, req.MerchantID, req.Asset, merchantShare); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit merchant balance: %w", err))
	}
	if err := s.ledgerRepo.AddLocked(ctx, dbTx, req.Asset, merchantShare); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("raise locked total: %w", err))
	}

	// External call last: all internal writes precede it, and a pull
	// failure rolls every one of them back.
	if err := s.transferor.Pull(ctx, req.Asset, req.Payer, req.Amount); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.appendEvent(ctx, domain.EventPaymentSettled, &req.MerchantID, &req.Asset, req.Amount, map[string]any{
		"order_id":       req.OrderID,
		"invoice_id":     req.InvoiceID,
		"payer":          req.Payer,
		"commission":     commission,
		"merchant_share": merchantShare,
		"settled_at":     now.Format(time.RFC3339),
	})

	s.log.Info().
		Str("invoice_key", key.String()).
		Str("asset", req.Asset.String()).
		Int64("amount", req.Amount).
		Int64("commission", commission).
		Msg("payment settled")

	return rec, nil
}

// Withdraw pays out a merchant's accumulated balance to its registered
// fund receiver. Amount 0 withdraws the full balance.
func (s *SettlementServiceImpl) Withdraw(ctx context.Context, req ports.WithdrawRequest) (int64, error) {
	if req.Amount < 0 {
		return 0, apperror.ErrInvalidAmount()
	}

	receiver, err := s.directory.FundReceiver(ctx, req.MerchantID)
	if err != nil {
		return 0, apperror.ErrNotFound("merchant")
	}

	acquired, err := s.opLock.Acquire(ctx)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("acquire operation lock: %w", err))
	}
	if !acquired {
		return 0, apperror.ErrOperationInProgress()
	}
	defer func() {
		if err := s.opLock.Release(ctx); err != nil {
			s.log.Error().Err(err).Msg("failed to release operation lock")
		}
	}()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	balance, err := s.ledgerRepo.GetBalanceForUpdate(ctx, dbTx, req.MerchantID, req.Asset)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("lock merchant balance: %w", err))
	}

	amount := req.Amount
	if amount == 0 {
		amount = balance
	}
	if amount == 0 {
		return 0, apperror.ErrInvalidAmount()
	}
	if amount > balance {
		return 0, apperror.ErrInsufficientBalance()
	}

	// State update before the outbound transfer.
	if err := s.ledgerRepo.AddBalance(ctx, dbTx, req.MerchantID, req.Asset, -amount); err != nil {
		return 0, apperror.InternalError(fmt.Errorf("debit merchant balance: %w", err))
	}
	if err := s.ledgerRepo.AddLocked(ctx, dbTx, req.Asset, -amount); err != nil {
		return 0, apperror.InternalError(fmt.Errorf("lower locked total: %w", err))
	}

	if err := s.transferor.Push(ctx, req.Asset, receiver, amount); err != nil {
		return 0, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return 0, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.appendEvent(ctx, domain.EventWithdrawal, &req.MerchantID, &req.Asset, amount, map[string]any{
		"receiver": receiver,
	})

	s.log.Info().
		Str("merchant_id", req.MerchantID.String()).
		Str("asset", req.Asset.String()).
		Int64("amount", amount).
		Msg("merchant withdrawal")

	return amount, nil
}

// WithdrawCommission moves the full accumulated commission for an asset
// to the configured receiver and resets the balance to zero.
func (s *SettlementServiceImpl) WithdrawCommission(ctx context.Context, auth domain.AuthContext, asset domain.Asset) (int64, error) {
	if !auth.CanManage() {
		return 0, apperror.ErrForbiddenRole()
	}

	acquired, err := s.opLock.Acquire(ctx)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("acquire operation lock: %w", err))
	}
	if !acquired {
		return 0, apperror.ErrOperationInProgress()
	}
	defer func() {
		if err := s.opLock.Release(ctx); err != nil {
			s.log.Error().Err(err).Msg("failed to release operation lock")
		}
	}()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	cb, err := s.commRepo.GetBalanceForUpdate(ctx, dbTx, asset)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("lock commission balance: %w", err))
	}
	if cb.Balance == 0 {
		return 0, apperror.ErrNoBalance()
	}

	settings, err := s.commRepo.GetSettings(ctx)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("load commission settings: %w", err))
	}
	if settings == nil {
		return 0, apperror.ErrCommissionNotConfigured()
	}
	if domain.IsZeroAddress(settings.Receiver) {
		return 0, apperror.ErrReceiverNotConfigured()
	}

	amount := cb.Balance
	if err := s.commRepo.ResetBalance(ctx, dbTx, asset, amount); err != nil {
		return 0, apperror.InternalError(fmt.Errorf("reset commission balance: %w", err))
	}

	if err := s.transferor.Push(ctx, asset, settings.Receiver, amount); err != nil {
		return 0, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return 0, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.appendEvent(ctx, domain.EventCommissionWithdrawn, nil, &asset, amount, map[string]any{
		"receiver": settings.Receiver,
	})

	s.log.Info().
		Str("asset", asset.String()).
		Int64("amount", amount).
		Str("receiver", settings.Receiver).
		Msg("commission withdrawn")

	return amount, nil
}

// SetCommissionRate updates the platform commission percentage.
func (s *SettlementServiceImpl) SetCommissionRate(ctx context.Context, auth domain.AuthContext, rate uint32) error {
	if !auth.CanManage() {
		return apperror.ErrForbiddenRole()
	}
	if !percent.InRange(rate, 0, percent.RateScale) {
		return apperror.ErrInvalidPercentage()
	}

	settings, err := s.commRepo.GetSettings(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load commission settings: %w", err))
	}
	if settings == nil {
		return apperror.ErrCommissionNotConfigured()
	}
	if settings.Rate == rate {
		return apperror.ErrNoOpChange()
	}

	settings.Rate = rate
	settings.UpdatedAt = time.Now().UTC()
	if err := s.commRepo.UpdateSettings(ctx, settings); err != nil {
		return apperror.InternalError(fmt.Errorf("update commission settings: %w", err))
	}

	s.appendEvent(ctx, domain.EventCommissionConfig, nil, nil, 0, map[string]any{
		"rate":     rate,
		"receiver": settings.Receiver,
	})
	s.log.Info().Uint32("rate", rate).Msg("commission rate updated")
	return nil
}

// SetCommissionReceiver updates the commission payout address.
func (s *SettlementServiceImpl) SetCommissionReceiver(ctx context.Context, auth domain.AuthContext, receiver string) error {
	if !auth.CanManage() {
		return apperror.ErrForbiddenRole()
	}
	if domain.IsZeroAddress(receiver) {
		return apperror.ErrInvalidReceiver()
	}

	settings, err := s.commRepo.GetSettings(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load commission settings: %w", err))
	}
	if settings == nil {
		return apperror.ErrCommissionNotConfigured()
	}
	if settings.Receiver == receiver {
		return apperror.ErrNoOpChange()
	}

	settings.Receiver = receiver
	settings.UpdatedAt = time.Now().UTC()
	if err := s.commRepo.UpdateSettings(ctx, settings); err != nil {
		return apperror.InternalError(fmt.Errorf("update commission settings: %w", err))
	}

	s.appendEvent(ctx, domain.EventCommissionConfig, nil, nil, 0, map[string]any{
		"rate":     settings.Rate,
		"receiver": receiver,
	})
	s.log.Info().Str("receiver", receiver).Msg("commission receiver updated")
	return nil
}

// appendEvent persists a ledger event. Event delivery is best-effort:
// the state change has already committed.
func (s *SettlementServiceImpl) appendEvent(ctx context.Context, typ domain.EventType, merchantID *uuid.UUID, asset *domain.Asset, amount int64, details map[string]any) {
	payload, err := json.Marshal(details)
	if err != nil {
		s.log.Error().Err(err).Str("type", string(typ)).Msg("marshal event details")
		return
	}
	ev := &domain.LedgerEvent{
		ID:         uuid.New(),
		Type:       typ,
		MerchantID: merchantID,
		Asset:      asset,
		Amount:     amount,
		Details:    string(payload),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.events.Append(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("type", string(typ)).Msg("failed to append ledger event")
	}
}
