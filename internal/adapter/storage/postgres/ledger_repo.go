package postgres

import (
	"context"
	"errors"
	"fmt"

	"settlement-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository. Merchant balances live
// in merchant_balances keyed by (merchant_id, asset); the per-asset
// locked totals live in locked_totals keyed by asset. Both tables are
// upserted so the first credit for a pair creates the row.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// GetBalanceForUpdate reads a merchant balance with a row lock. A
// missing row reads as zero; the lock then comes from the insert in
// AddBalance instead.
func (r *LedgerRepo) GetBalanceForUpdate(ctx context.Context, tx pgx.Tx, merchantID uuid.UUID, asset domain.Asset) (int64, error) {
	query := `SELECT amount FROM merchant_balances
		WHERE merchant_id = $1 AND asset = $2 FOR UPDATE`

	var amount int64
	err := tx.QueryRow(ctx, query, merchantID, asset.String()).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get merchant balance for update: %w", err)
	}
	return amount, nil
}

// AddBalance upserts merchant balance += delta within a transaction.
func (r *LedgerRepo) AddBalance(ctx context.Context, tx pgx.Tx, merchantID uuid.UUID, asset domain.Asset, delta int64) error {
	query := `INSERT INTO merchant_balances (merchant_id, asset, amount, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (merchant_id, asset)
		DO UPDATE SET amount = merchant_balances.amount + $3, updated_at = NOW()`

	_, err := tx.Exec(ctx, query, merchantID, asset.String(), delta)
	if err != nil {
		return fmt.Errorf("add merchant balance: %w", err)
	}
	return nil
}

// GetBalance reads a merchant balance without locking. A missing row
// reads as zero.
func (r *LedgerRepo) GetBalance(ctx context.Context, merchantID uuid.UUID, asset domain.Asset) (int64, error) {
	query := `SELECT amount FROM merchant_balances WHERE merchant_id = $1 AND asset = $2`

	var amount int64
	err := r.pool.QueryRow(ctx, query, merchantID, asset.String()).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get merchant balance: %w", err)
	}
	return amount, nil
}

// LockedTotalForUpdate reads the asset's locked total with a row lock.
func (r *LedgerRepo) LockedTotalForUpdate(ctx context.Context, tx pgx.Tx, asset domain.Asset) (int64, error) {
	query := `SELECT amount FROM locked_totals WHERE asset = $1 FOR UPDATE`

	var amount int64
	err := tx.QueryRow(ctx, query, asset.String()).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get locked total for update: %w", err)
	}
	return amount, nil
}

// AddLocked upserts the asset's locked total += delta within a transaction.
func (r *LedgerRepo) AddLocked(ctx context.Context, tx pgx.Tx, asset domain.Asset, delta int64) error {
	query := `INSERT INTO locked_totals (asset, amount, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (asset)
		DO UPDATE SET amount = locked_totals.amount + $2, updated_at = NOW()`

	_, err := tx.Exec(ctx, query, asset.String(), delta)
	if err != nil {
		return fmt.Errorf("add locked total: %w", err)
	}
	return nil
}

// LockedTotal reads the asset's locked total without locking.
func (r *LedgerRepo) LockedTotal(ctx context.Context, asset domain.Asset) (int64, error) {
	query := `SELECT amount FROM locked_totals WHERE asset = $1`

	var amount int64
	err := r.pool.QueryRow(ctx, query, asset.String()).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get locked total: %w", err)
	}
	return amount, nil
}
