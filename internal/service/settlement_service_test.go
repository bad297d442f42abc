package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
	"settlement-ledger/internal/core/ports/mocks"
	"settlement-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type settlementTestDeps struct {
	svc        *SettlementServiceImpl
	setlRepo   *mocks.MockSettlementRepository
	ledgerRepo *mocks.MockLedgerRepository
	commRepo   *mocks.MockCommissionRepository
	directory  *mocks.MockMerchantDirectory
	transferor *mocks.MockAssetTransferor
	opLock     *mocks.MockOperationLock
	payerCtr   *mocks.MockPayerCounter
	events     *mocks.MockEventRepository
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupSettlementService(t *testing.T) *settlementTestDeps {
	ctrl := gomock.NewController(t)
	d := &settlementTestDeps{
		setlRepo:   mocks.NewMockSettlementRepository(ctrl),
		ledgerRepo: mocks.NewMockLedgerRepository(ctrl),
		commRepo:   mocks.NewMockCommissionRepository(ctrl),
		directory:  mocks.NewMockMerchantDirectory(ctrl),
		transferor: mocks.NewMockAssetTransferor(ctrl),
		opLock:     mocks.NewMockOperationLock(ctrl),
		payerCtr:   mocks.NewMockPayerCounter(ctrl),
		events:     mocks.NewMockEventRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewSettlementService(
		d.setlRepo, d.ledgerRepo, d.commRepo, d.directory,
		d.transferor, d.opLock, d.payerCtr, d.events, d.transactor,
		zerolog.Nop(),
	)
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

const testPayer = "0xpayer01"

func testSettings(rate uint32) *domain.CommissionSettings {
	return &domain.CommissionSettings{
		Receiver:  "0xfee0001",
		Rate:      rate,
		UpdatedAt: time.Now().UTC(),
	}
}

// ==================== ProcessPayment Tests ====================

func TestSettlementService_ProcessPayment_Success(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()
	tx := &mockTx{}

	req := ports.PaymentRequest{
		MerchantID:    merchantID,
		OrderID:       "ORDER-001",
		InvoiceID:     "INV-001",
		Payer:         testPayer,
		Asset:         asset,
		Amount:        1000000,
		AttachedValue: 1000000,
	}
	key := domain.InvoiceKey{MerchantID: merchantID, OrderID: "ORDER-001", InvoiceID: "INV-001"}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(true, nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.payerCtr.EXPECT().Increment(ctx, testPayer).Return(int64(1), nil)
	// 2.5% commission
	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(250), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.setlRepo.EXPECT().Exists(ctx, tx, key).Return(false, nil)
	d.setlRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.commRepo.EXPECT().Accrue(ctx, tx, asset, int64(25000)).Return(nil)
	d.ledgerRepo.EXPECT().AddBalance(ctx, tx, merchantID, asset, int64(975000)).Return(nil)
	d.ledgerRepo.EXPECT().AddLocked(ctx, tx, asset, int64(975000)).Return(nil)
	d.transferor.EXPECT().CustodyBalance(ctx, asset).Return(int64(1000000), nil)
	d.ledgerRepo.EXPECT().LockedTotalForUpdate(ctx, tx, asset).Return(int64(0), nil)
	d.commRepo.EXPECT().GetBalanceForUpdate(ctx, tx, asset).Return(&domain.CommissionBalance{Asset: asset}, nil)
	d.transferor.EXPECT().Pull(ctx, asset, testPayer, int64(1000000)).Return(nil)
	d.events.EXPECT().Append(ctx, gomock.Any()).Return(nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, key, rec.Key)
	assert.Equal(t, int64(1000000), rec.Amount)
	assert.Equal(t, int64(25000), rec.Commission)
	assert.Equal(t, int64(975000), rec.MerchantShare)
	assert.Equal(t, testPayer, rec.Payer)
}

func TestSettlementService_ProcessPayment_TokenAsset(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.TokenAsset("0xToKeN01")
	tx := &mockTx{}

	req := ports.PaymentRequest{
		MerchantID: merchantID,
		OrderID:    "ORDER-T1",
		InvoiceID:  "INV-T1",
		Payer:      testPayer,
		Asset:      asset,
		Amount:     40000,
		// Token payments carry no native value.
		AttachedValue: 0,
	}
	key := domain.InvoiceKey{MerchantID: merchantID, OrderID: "ORDER-T1", InvoiceID: "INV-T1"}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(true, nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.payerCtr.EXPECT().Increment(ctx, testPayer).Return(int64(3), nil)
	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(250), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.setlRepo.EXPECT().Exists(ctx, tx, key).Return(false, nil)
	d.setlRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.commRepo.EXPECT().Accrue(ctx, tx, asset, int64(1000)).Return(nil)
	d.ledgerRepo.EXPECT().AddBalance(ctx, tx, merchantID, asset, int64(39000)).Return(nil)
	d.ledgerRepo.EXPECT().AddLocked(ctx, tx, asset, int64(39000)).Return(nil)
	d.transferor.EXPECT().Pull(ctx, asset, testPayer, int64(40000)).Return(nil)
	d.events.EXPECT().Append(ctx, gomock.Any()).Return(nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), rec.Commission)
	assert.Equal(t, int64(39000), rec.MerchantShare)
}

func TestSettlementService_ProcessPayment_ZeroRate(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()
	tx := &mockTx{}

	req := ports.PaymentRequest{
		MerchantID:    merchantID,
		OrderID:       "ORDER-Z1",
		InvoiceID:     "INV-Z1",
		Payer:         testPayer,
		Asset:         asset,
		Amount:        777,
		AttachedValue: 777,
	}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(true, nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.payerCtr.EXPECT().Increment(ctx, testPayer).Return(int64(1), nil)
	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(0), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.setlRepo.EXPECT().Exists(ctx, tx, gomock.Any()).Return(false, nil)
	d.setlRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.commRepo.EXPECT().Accrue(ctx, tx, asset, int64(0)).Return(nil)
	d.ledgerRepo.EXPECT().AddBalance(ctx, tx, merchantID, asset, int64(777)).Return(nil)
	d.ledgerRepo.EXPECT().AddLocked(ctx, tx, asset, int64(777)).Return(nil)
	d.transferor.EXPECT().CustodyBalance(ctx, asset).Return(int64(777), nil)
	d.ledgerRepo.EXPECT().LockedTotalForUpdate(ctx, tx, asset).Return(int64(0), nil)
	d.commRepo.EXPECT().GetBalanceForUpdate(ctx, tx, asset).Return(&domain.CommissionBalance{Asset: asset}, nil)
	d.transferor.EXPECT().Pull(ctx, asset, testPayer, int64(777)).Return(nil)
	d.events.EXPECT().Append(ctx, gomock.Any()).Return(nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Commission)
	assert.Equal(t, int64(777), rec.MerchantShare)
}

func TestSettlementService_ProcessPayment_InvalidAmount(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	req := ports.PaymentRequest{
		MerchantID: uuid.New(),
		OrderID:    "ORDER-001",
		InvoiceID:  "INV-001",
		Payer:      testPayer,
		Asset:      domain.NativeAsset(),
		Amount:     0,
	}

	rec, err := d.svc.ProcessPayment(context.Background(), req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_001")
}

func TestSettlementService_ProcessPayment_IdentifierTooLong(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	req := ports.PaymentRequest{
		MerchantID:    uuid.New(),
		OrderID:       strings.Repeat("a", domain.MaxIdentifierLen+1),
		InvoiceID:     "INV-001",
		Payer:         testPayer,
		Asset:         domain.NativeAsset(),
		Amount:        100,
		AttachedValue: 100,
	}

	rec, err := d.svc.ProcessPayment(context.Background(), req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_001")

	req.OrderID = "ORDER-001"
	req.InvoiceID = ""
	rec, err = d.svc.ProcessPayment(context.Background(), req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_001")
}

func TestSettlementService_ProcessPayment_MerchantInactive(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()

	req := ports.PaymentRequest{
		MerchantID:    merchantID,
		OrderID:       "ORDER-001",
		InvoiceID:     "INV-001",
		Payer:         testPayer,
		Asset:         domain.NativeAsset(),
		Amount:        100,
		AttachedValue: 100,
	}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(false, nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_003")
}

func TestSettlementService_ProcessPayment_AssetNotSupported(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.TokenAsset("0xunlisted")

	req := ports.PaymentRequest{
		MerchantID: merchantID,
		OrderID:    "ORDER-001",
		InvoiceID:  "INV-001",
		Payer:      testPayer,
		Asset:      asset,
		Amount:     100,
	}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(false, nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_004")
}

func TestSettlementService_ProcessPayment_NativeValueMismatch(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()

	req := ports.PaymentRequest{
		MerchantID:    merchantID,
		OrderID:       "ORDER-001",
		InvoiceID:     "INV-001",
		Payer:         testPayer,
		Asset:         asset,
		Amount:        1000,
		AttachedValue: 999,
	}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(true, nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_005")
}

func TestSettlementService_ProcessPayment_UnexpectedNativeValue(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.TokenAsset("0xtoken01")

	req := ports.PaymentRequest{
		MerchantID:    merchantID,
		OrderID:       "ORDER-001",
		InvoiceID:     "INV-001",
		Payer:         testPayer,
		Asset:         asset,
		Amount:        1000,
		AttachedValue: 1000,
	}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(true, nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_006")
}

func TestSettlementService_ProcessPayment_AlreadySettled(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()
	tx := &mockTx{}

	req := ports.PaymentRequest{
		MerchantID:    merchantID,
		OrderID:       "ORDER-DUP",
		InvoiceID:     "INV-DUP",
		Payer:         testPayer,
		Asset:         asset,
		Amount:        100,
		AttachedValue: 100,
	}
	key := domain.InvoiceKey{MerchantID: merchantID, OrderID: "ORDER-DUP", InvoiceID: "INV-DUP"}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(true, nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.payerCtr.EXPECT().Increment(ctx, testPayer).Return(int64(2), nil)
	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(250), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.setlRepo.EXPECT().Exists(ctx, tx, key).Return(true, nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_002")
}

func TestSettlementService_ProcessPayment_SettingsNotSeeded(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()

	req := ports.PaymentRequest{
		MerchantID:    merchantID,
		OrderID:       "ORDER-001",
		InvoiceID:     "INV-001",
		Payer:         testPayer,
		Asset:         asset,
		Amount:        1000000,
		AttachedValue: 1000000,
	}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(true, nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.payerCtr.EXPECT().Increment(ctx, testPayer).Return(int64(1), nil)
	// No settings row yet, the repo reports absence as (nil, nil).
	d.commRepo.EXPECT().GetSettings(ctx).Return(nil, nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	assert.Nil(t, rec)
	assertAppError(t, err, "SYS_011")
}

func TestSettlementService_ProcessPayment_OperationInProgress(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()

	req := ports.PaymentRequest{
		MerchantID:    merchantID,
		OrderID:       "ORDER-001",
		InvoiceID:     "INV-001",
		Payer:         testPayer,
		Asset:         asset,
		Amount:        100,
		AttachedValue: 100,
	}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(true, nil)
	d.opLock.EXPECT().Acquire(ctx).Return(false, nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_011")
}

func TestSettlementService_ProcessPayment_PullFailureRollsBack(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.TokenAsset("0xtoken01")
	tx := &mockTx{}

	req := ports.PaymentRequest{
		MerchantID: merchantID,
		OrderID:    "ORDER-001",
		InvoiceID:  "INV-001",
		Payer:      testPayer,
		Asset:      asset,
		Amount:     1000,
	}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(true, nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.payerCtr.EXPECT().Increment(ctx, testPayer).Return(int64(1), nil)
	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(250), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.setlRepo.EXPECT().Exists(ctx, tx, gomock.Any()).Return(false, nil)
	d.setlRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.commRepo.EXPECT().Accrue(ctx, tx, asset, int64(25)).Return(nil)
	d.ledgerRepo.EXPECT().AddBalance(ctx, tx, merchantID, asset, int64(975)).Return(nil)
	d.ledgerRepo.EXPECT().AddLocked(ctx, tx, asset, int64(975)).Return(nil)
	d.transferor.EXPECT().Pull(ctx, asset, testPayer, int64(1000)).
		Return(apperror.ErrTransferFailed(errors.New("transferFrom rejected")))
	d.opLock.EXPECT().Release(ctx).Return(nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_007")
}

func TestSettlementService_ProcessPayment_NativeValueNotReceived(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()
	tx := &mockTx{}

	req := ports.PaymentRequest{
		MerchantID:    merchantID,
		OrderID:       "ORDER-001",
		InvoiceID:     "INV-001",
		Payer:         testPayer,
		Asset:         asset,
		Amount:        1000000,
		AttachedValue: 1000000,
	}

	d.directory.EXPECT().IsMerchantActive(ctx, merchantID).Return(true, nil)
	d.directory.EXPECT().IsAssetSupported(ctx, merchantID, asset).Return(true, nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.payerCtr.EXPECT().Increment(ctx, testPayer).Return(int64(1), nil)
	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(250), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.setlRepo.EXPECT().Exists(ctx, tx, gomock.Any()).Return(false, nil)
	// Custody never received the claimed attached value.
	d.transferor.EXPECT().CustodyBalance(ctx, asset).Return(int64(0), nil)
	d.ledgerRepo.EXPECT().LockedTotalForUpdate(ctx, tx, asset).Return(int64(0), nil)
	d.commRepo.EXPECT().GetBalanceForUpdate(ctx, tx, asset).Return(&domain.CommissionBalance{Asset: asset}, nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	rec, err := d.svc.ProcessPayment(ctx, req)
	assert.Nil(t, rec)
	assertAppError(t, err, "LGR_008")
}

// ==================== Withdraw Tests ====================

func TestSettlementService_Withdraw_FullBalance(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()
	tx := &mockTx{}

	req := ports.WithdrawRequest{MerchantID: merchantID, Asset: asset, Amount: 0}

	d.directory.EXPECT().FundReceiver(ctx, merchantID).Return("0xreceiver1", nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledgerRepo.EXPECT().GetBalanceForUpdate(ctx, tx, merchantID, asset).Return(int64(975000), nil)
	d.ledgerRepo.EXPECT().AddBalance(ctx, tx, merchantID, asset, int64(-975000)).Return(nil)
	d.ledgerRepo.EXPECT().AddLocked(ctx, tx, asset, int64(-975000)).Return(nil)
	d.transferor.EXPECT().Push(ctx, asset, "0xreceiver1", int64(975000)).Return(nil)
	d.events.EXPECT().Append(ctx, gomock.Any()).Return(nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	amount, err := d.svc.Withdraw(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(975000), amount)
}

func TestSettlementService_Withdraw_Partial(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.TokenAsset("0xtoken01")
	tx := &mockTx{}

	req := ports.WithdrawRequest{MerchantID: merchantID, Asset: asset, Amount: 30000}

	d.directory.EXPECT().FundReceiver(ctx, merchantID).Return("0xreceiver1", nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledgerRepo.EXPECT().GetBalanceForUpdate(ctx, tx, merchantID, asset).Return(int64(100000), nil)
	d.ledgerRepo.EXPECT().AddBalance(ctx, tx, merchantID, asset, int64(-30000)).Return(nil)
	d.ledgerRepo.EXPECT().AddLocked(ctx, tx, asset, int64(-30000)).Return(nil)
	d.transferor.EXPECT().Push(ctx, asset, "0xreceiver1", int64(30000)).Return(nil)
	d.events.EXPECT().Append(ctx, gomock.Any()).Return(nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	amount, err := d.svc.Withdraw(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), amount)
}

func TestSettlementService_Withdraw_Insufficient(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()
	tx := &mockTx{}

	req := ports.WithdrawRequest{MerchantID: merchantID, Asset: asset, Amount: 200000}

	d.directory.EXPECT().FundReceiver(ctx, merchantID).Return("0xreceiver1", nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledgerRepo.EXPECT().GetBalanceForUpdate(ctx, tx, merchantID, asset).Return(int64(100000), nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	amount, err := d.svc.Withdraw(ctx, req)
	assert.Zero(t, amount)
	assertAppError(t, err, "LGR_010")
}

func TestSettlementService_Withdraw_EmptyBalance(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()
	tx := &mockTx{}

	// Amount 0 means "everything", and everything is nothing here.
	req := ports.WithdrawRequest{MerchantID: merchantID, Asset: asset, Amount: 0}

	d.directory.EXPECT().FundReceiver(ctx, merchantID).Return("0xreceiver1", nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledgerRepo.EXPECT().GetBalanceForUpdate(ctx, tx, merchantID, asset).Return(int64(0), nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	amount, err := d.svc.Withdraw(ctx, req)
	assert.Zero(t, amount)
	assertAppError(t, err, "LGR_001")
}

func TestSettlementService_Withdraw_NegativeAmount(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	req := ports.WithdrawRequest{MerchantID: uuid.New(), Asset: domain.NativeAsset(), Amount: -1}

	amount, err := d.svc.Withdraw(context.Background(), req)
	assert.Zero(t, amount)
	assertAppError(t, err, "LGR_001")
}

func TestSettlementService_Withdraw_UnknownMerchant(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()

	req := ports.WithdrawRequest{MerchantID: merchantID, Asset: domain.NativeAsset(), Amount: 100}

	d.directory.EXPECT().FundReceiver(ctx, merchantID).Return("", errors.New("merchant not registered"))

	amount, err := d.svc.Withdraw(ctx, req)
	assert.Zero(t, amount)
	assertAppError(t, err, "LGR_012")
}

func TestSettlementService_Withdraw_PushFailureRollsBack(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	asset := domain.NativeAsset()
	tx := &mockTx{}

	req := ports.WithdrawRequest{MerchantID: merchantID, Asset: asset, Amount: 50000}

	d.directory.EXPECT().FundReceiver(ctx, merchantID).Return("0xreceiver1", nil)
	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledgerRepo.EXPECT().GetBalanceForUpdate(ctx, tx, merchantID, asset).Return(int64(100000), nil)
	d.ledgerRepo.EXPECT().AddBalance(ctx, tx, merchantID, asset, int64(-50000)).Return(nil)
	d.ledgerRepo.EXPECT().AddLocked(ctx, tx, asset, int64(-50000)).Return(nil)
	d.transferor.EXPECT().Push(ctx, asset, "0xreceiver1", int64(50000)).
		Return(apperror.ErrTransferFailed(errors.New("bridge down")))
	d.opLock.EXPECT().Release(ctx).Return(nil)

	amount, err := d.svc.Withdraw(ctx, req)
	assert.Zero(t, amount)
	assertAppError(t, err, "LGR_007")
}

// ==================== WithdrawCommission Tests ====================

func TestSettlementService_WithdrawCommission_Success(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	asset := domain.NativeAsset()
	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleManager}
	tx := &mockTx{}

	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.commRepo.EXPECT().GetBalanceForUpdate(ctx, tx, asset).Return(&domain.CommissionBalance{
		Asset: asset, Balance: 25000, Claimed: 100000,
	}, nil)
	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(250), nil)
	d.commRepo.EXPECT().ResetBalance(ctx, tx, asset, int64(25000)).Return(nil)
	d.transferor.EXPECT().Push(ctx, asset, "0xfee0001", int64(25000)).Return(nil)
	d.events.EXPECT().Append(ctx, gomock.Any()).Return(nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	amount, err := d.svc.WithdrawCommission(ctx, auth, asset)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), amount)
}

func TestSettlementService_WithdrawCommission_NoBalance(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	asset := domain.NativeAsset()
	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleOwner}
	tx := &mockTx{}

	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.commRepo.EXPECT().GetBalanceForUpdate(ctx, tx, asset).Return(&domain.CommissionBalance{Asset: asset}, nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	amount, err := d.svc.WithdrawCommission(ctx, auth, asset)
	assert.Zero(t, amount)
	assertAppError(t, err, "LGR_009")
}

func TestSettlementService_WithdrawCommission_SettingsNotSeeded(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	asset := domain.NativeAsset()
	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleOwner}
	tx := &mockTx{}

	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.commRepo.EXPECT().GetBalanceForUpdate(ctx, tx, asset).Return(&domain.CommissionBalance{
		Asset: asset, Balance: 500,
	}, nil)
	d.commRepo.EXPECT().GetSettings(ctx).Return(nil, nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	amount, err := d.svc.WithdrawCommission(ctx, auth, asset)
	assert.Zero(t, amount)
	assertAppError(t, err, "SYS_011")
}

func TestSettlementService_WithdrawCommission_ReceiverNotConfigured(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	asset := domain.NativeAsset()
	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleManager}
	tx := &mockTx{}

	settings := testSettings(250)
	settings.Receiver = "0x0000000000"

	d.opLock.EXPECT().Acquire(ctx).Return(true, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.commRepo.EXPECT().GetBalanceForUpdate(ctx, tx, asset).Return(&domain.CommissionBalance{
		Asset: asset, Balance: 500,
	}, nil)
	d.commRepo.EXPECT().GetSettings(ctx).Return(settings, nil)
	d.opLock.EXPECT().Release(ctx).Return(nil)

	amount, err := d.svc.WithdrawCommission(ctx, auth, asset)
	assert.Zero(t, amount)
	assertAppError(t, err, "ADM_006")
}

func TestSettlementService_WithdrawCommission_ForbiddenRole(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.OperatorRole("VIEWER")}

	amount, err := d.svc.WithdrawCommission(context.Background(), auth, domain.NativeAsset())
	assert.Zero(t, amount)
	assertAppError(t, err, "SEC_005")
}

// ==================== Commission Config Tests ====================

func TestSettlementService_SetCommissionRate_Success(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleManager}

	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(250), nil)
	d.commRepo.EXPECT().UpdateSettings(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s *domain.CommissionSettings) error {
			assert.Equal(t, uint32(500), s.Rate)
			return nil
		})
	d.events.EXPECT().Append(ctx, gomock.Any()).Return(nil)

	err := d.svc.SetCommissionRate(ctx, auth, 500)
	require.NoError(t, err)
}

func TestSettlementService_SetCommissionRate_NoOpChange(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleOwner}

	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(250), nil)

	err := d.svc.SetCommissionRate(ctx, auth, 250)
	assertAppError(t, err, "ADM_003")
}

func TestSettlementService_SetCommissionRate_OutOfRange(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleManager}

	err := d.svc.SetCommissionRate(context.Background(), auth, 10001)
	assertAppError(t, err, "ADM_004")
}

func TestSettlementService_SetCommissionRate_SettingsNotSeeded(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleManager}

	d.commRepo.EXPECT().GetSettings(ctx).Return(nil, nil)

	err := d.svc.SetCommissionRate(ctx, auth, 500)
	assertAppError(t, err, "SYS_011")
}

func TestSettlementService_SetCommissionReceiver_Success(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleManager}

	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(250), nil)
	d.commRepo.EXPECT().UpdateSettings(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s *domain.CommissionSettings) error {
			assert.Equal(t, "0xnewfee01", s.Receiver)
			return nil
		})
	d.events.EXPECT().Append(ctx, gomock.Any()).Return(nil)

	err := d.svc.SetCommissionReceiver(ctx, auth, "0xnewfee01")
	require.NoError(t, err)
}

func TestSettlementService_SetCommissionReceiver_ZeroAddress(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleManager}

	err := d.svc.SetCommissionReceiver(context.Background(), auth, "0x000000")
	assertAppError(t, err, "ADM_005")
}

func TestSettlementService_SetCommissionReceiver_NoOpChange(t *testing.T) {
	d := setupSettlementService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	auth := domain.AuthContext{AccountID: uuid.New(), Role: domain.RoleOwner}

	d.commRepo.EXPECT().GetSettings(ctx).Return(testSettings(250), nil)

	err := d.svc.SetCommissionReceiver(ctx, auth, "0xfee0001")
	assertAppError(t, err, "ADM_003")
}

// ==================== Helper ====================

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}
