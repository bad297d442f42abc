package ports

import (
	"context"
	"time"

	"settlement-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// MerchantDirectory is the read-only view of the merchant registry the
// settlement engine depends on. Absence is reported as false rather
// than an error; only FundReceiver may reject an unknown merchant.
type MerchantDirectory interface {
	IsMerchantActive(ctx context.Context, merchantID uuid.UUID) (bool, error)
	IsAssetSupported(ctx context.Context, merchantID uuid.UUID, asset domain.Asset) (bool, error)
	FundReceiver(ctx context.Context, merchantID uuid.UUID) (string, error)
}

// AssetTransferor moves value between bridge accounts and the ledger's
// custody account, hiding the native/token branch from callers.
//
// Calls leave the trust boundary: every caller must finalize its own
// bookkeeping before invoking Pull or Push (checks-effects-interactions)
// and must hold the operation lock for the duration of the call.
type AssetTransferor interface {
	// Pull moves amount of asset from `from` into custody. For the
	// native asset this is a no-op: native value arrives attached to
	// the triggering request and is validated, not moved. For tokens it
	// performs transferFrom and verifies the custody balance grew by
	// exactly the requested amount.
	Pull(ctx context.Context, asset domain.Asset, from string, amount int64) error
	// Push moves amount of asset from custody to `to`.
	Push(ctx context.Context, asset domain.Asset, to string, amount int64) error
	// CustodyBalance reports the bridge-side balance of the custody
	// account in the given asset.
	CustodyBalance(ctx context.Context, asset domain.Asset) (int64, error)
}

// BridgeClient is the raw token/native primitive interface exposed by
// the external bridge. Both a false `ok` and an error count as failure.
type BridgeClient interface {
	Transfer(ctx context.Context, token, to string, amount int64) (bool, error)
	TransferFrom(ctx context.Context, token, from, to string, amount int64) (bool, error)
	BalanceOf(ctx context.Context, token, account string) (int64, error)
	SendNative(ctx context.Context, to string, amount int64) error
	NativeBalance(ctx context.Context, account string) (int64, error)
}

// OperationLock is the ledger-wide busy flag: at most one operation
// that can call out through the bridge may be in flight at a time. A
// nested or concurrent acquire fails, which is what defeats
// reentrancy-based double accounting.
type OperationLock interface {
	// Acquire returns true if the lock was taken.
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// PayerCounter tracks a monotonically increasing per-payer attempt
// counter. Informational only; invoice keys enforce uniqueness.
type PayerCounter interface {
	Increment(ctx context.Context, payer string) (int64, error)
}

// NonceStore manages request nonce uniqueness for replay prevention on
// the signed merchant API.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, merchantID string, nonce string, ttl time.Duration) (bool, error)
}
