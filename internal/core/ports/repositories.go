package ports

import (
	"context"

	"settlement-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SettlementRepository persists immutable settlement records.
// Methods accepting pgx.Tx run inside the settlement transaction.
type SettlementRepository interface {
	// Exists reports whether the invoice key already has a settlement
	// record. Called inside the settlement transaction, before any
	// external transfer.
	Exists(ctx context.Context, tx pgx.Tx, key domain.InvoiceKey) (bool, error)
	Create(ctx context.Context, tx pgx.Tx, rec *domain.SettlementRecord) error
	GetByKey(ctx context.Context, key domain.InvoiceKey) (*domain.SettlementRecord, error)
	List(ctx context.Context, params SettlementListParams) ([]domain.SettlementRecord, int64, error)
}

// SettlementListParams holds filter + pagination for listing settlements.
type SettlementListParams struct {
	MerchantID uuid.UUID
	Asset      *domain.Asset
	Page       int
	PageSize   int
}

// LedgerRepository maintains per-(merchant, asset) balances and the
// per-asset locked totals that partition custody into free and
// merchant-owed pools.
type LedgerRepository interface {
	// GetBalanceForUpdate reads a merchant balance with a row lock.
	// Returns 0 with no error when no row exists yet.
	GetBalanceForUpdate(ctx context.Context, tx pgx.Tx, merchantID uuid.UUID, asset domain.Asset) (int64, error)
	// AddBalance upserts merchantBalance += delta (delta may be negative).
	AddBalance(ctx context.Context, tx pgx.Tx, merchantID uuid.UUID, asset domain.Asset, delta int64) error
	GetBalance(ctx context.Context, merchantID uuid.UUID, asset domain.Asset) (int64, error)

	// LockedTotalForUpdate reads the asset's locked total with a row lock.
	LockedTotalForUpdate(ctx context.Context, tx pgx.Tx, asset domain.Asset) (int64, error)
	// AddLocked upserts lockedTotal += delta (delta may be negative).
	AddLocked(ctx context.Context, tx pgx.Tx, asset domain.Asset, delta int64) error
	LockedTotal(ctx context.Context, asset domain.Asset) (int64, error)
}

// CommissionRepository maintains per-asset commission balances and the
// platform commission configuration.
type CommissionRepository interface {
	// GetBalanceForUpdate reads the commission balance row with a lock.
	// Returns a zero-valued balance when no row exists yet.
	GetBalanceForUpdate(ctx context.Context, tx pgx.Tx, asset domain.Asset) (*domain.CommissionBalance, error)
	GetBalance(ctx context.Context, asset domain.Asset) (*domain.CommissionBalance, error)
	// Accrue upserts balance += delta.
	Accrue(ctx context.Context, tx pgx.Tx, asset domain.Asset, delta int64) error
	// ResetBalance zeroes the balance and adds the withdrawn amount to
	// the monotone claimed counter.
	ResetBalance(ctx context.Context, tx pgx.Tx, asset domain.Asset, claimedDelta int64) error

	GetSettings(ctx context.Context) (*domain.CommissionSettings, error)
	UpdateSettings(ctx context.Context, s *domain.CommissionSettings) error
}

// MerchantRepository defines persistence for the merchant registry.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
	GetByAccessKey(ctx context.Context, accessKey string) (*domain.Merchant, error)
	Update(ctx context.Context, merchant *domain.Merchant) error
	SetAssetSupport(ctx context.Context, merchantID uuid.UUID, asset domain.Asset, supported bool) error
	IsAssetSupported(ctx context.Context, merchantID uuid.UUID, asset domain.Asset) (bool, error)
}

// OperatorRepository defines persistence for platform operator accounts.
type OperatorRepository interface {
	Create(ctx context.Context, op *domain.Operator) error
	GetByUsername(ctx context.Context, username string) (*domain.Operator, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error)
}

// EventRepository appends ledger events for external indexers.
type EventRepository interface {
	Append(ctx context.Context, ev *domain.LedgerEvent) error
	List(ctx context.Context, params EventListParams) ([]domain.LedgerEvent, error)
}

// EventListParams holds filter + pagination for listing events.
type EventListParams struct {
	Type       *domain.EventType
	MerchantID *uuid.UUID
	Page       int
	PageSize   int
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
