package token

import (
	"context"
	"fmt"

	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
	"settlement-ledger/pkg/apperror"
)

// Transferor implements ports.AssetTransferor over a bridge client.
// The native/token branch lives here and nowhere else.
type Transferor struct {
	client  ports.BridgeClient
	custody string // Bridge account holding all ledger-custodied funds
}

// NewTransferor creates a new Transferor.
func NewTransferor(client ports.BridgeClient, custodyAccount string) *Transferor {
	return &Transferor{client: client, custody: custodyAccount}
}

// Pull moves amount of asset from `from` into custody. Native value is
// validated upstream (it arrives attached to the request), so the
// native case is a no-op here. For tokens, both a false result and an
// error count as failure, and the custody balance must grow by exactly
// the requested amount: fee-on-transfer and rebasing tokens are
// rejected rather than mis-accounted.
func (t *Transferor) Pull(ctx context.Context, asset domain.Asset, from string, amount int64) error {
	if asset.IsNative() {
		return nil
	}

	before, err := t.client.BalanceOf(ctx, asset.Address, t.custody)
	if err != nil {
		return apperror.ErrTransferFailed(fmt.Errorf("balance before pull: %w", err))
	}

	ok, err := t.client.TransferFrom(ctx, asset.Address, from, t.custody, amount)
	if err != nil {
		return apperror.ErrTransferFailed(fmt.Errorf("transferFrom: %w", err))
	}
	if !ok {
		return apperror.ErrTransferFailed(fmt.Errorf("transferFrom returned false"))
	}

	after, err := t.client.BalanceOf(ctx, asset.Address, t.custody)
	if err != nil {
		return apperror.ErrTransferFailed(fmt.Errorf("balance after pull: %w", err))
	}
	if after-before != amount {
		return apperror.ErrUnexpectedAmountReceived()
	}
	return nil
}

// Push moves amount of asset from custody to `to`.
func (t *Transferor) Push(ctx context.Context, asset domain.Asset, to string, amount int64) error {
	if asset.IsNative() {
		if err := t.client.SendNative(ctx, to, amount); err != nil {
			return apperror.ErrTransferFailed(fmt.Errorf("native send: %w", err))
		}
		return nil
	}

	ok, err := t.client.Transfer(ctx, asset.Address, to, amount)
	if err != nil {
		return apperror.ErrTransferFailed(fmt.Errorf("transfer: %w", err))
	}
	if !ok {
		return apperror.ErrTransferFailed(fmt.Errorf("transfer returned false"))
	}
	return nil
}

// CustodyBalance reports the bridge-side holdings of the custody account.
func (t *Transferor) CustodyBalance(ctx context.Context, asset domain.Asset) (int64, error) {
	if asset.IsNative() {
		return t.client.NativeBalance(ctx, t.custody)
	}
	return t.client.BalanceOf(ctx, asset.Address, t.custody)
}
