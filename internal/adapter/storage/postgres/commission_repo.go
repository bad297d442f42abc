package postgres

import (
	"context"
	"errors"
	"fmt"

	"settlement-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CommissionRepo implements ports.CommissionRepository. Per-asset
// balances live in commission_balances; the single-row settings table
// holds the receiver and rate.
type CommissionRepo struct {
	pool Pool
}

// NewCommissionRepo creates a new CommissionRepo.
func NewCommissionRepo(pool Pool) *CommissionRepo {
	return &CommissionRepo{pool: pool}
}

// GetBalanceForUpdate reads the commission balance row with a lock.
// A missing row reads as a zero balance.
func (r *CommissionRepo) GetBalanceForUpdate(ctx context.Context, tx pgx.Tx, asset domain.Asset) (*domain.CommissionBalance, error) {
	query := `SELECT balance, claimed FROM commission_balances WHERE asset = $1 FOR UPDATE`

	b := &domain.CommissionBalance{Asset: asset}
	err := tx.QueryRow(ctx, query, asset.String()).Scan(&b.Balance, &b.Claimed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return b, nil
		}
		return nil, fmt.Errorf("get commission balance for update: %w", err)
	}
	return b, nil
}

// GetBalance reads the commission balance without locking.
func (r *CommissionRepo) GetBalance(ctx context.Context, asset domain.Asset) (*domain.CommissionBalance, error) {
	query := `SELECT balance, claimed FROM commission_balances WHERE asset = $1`

	b := &domain.CommissionBalance{Asset: asset}
	err := r.pool.QueryRow(ctx, query, asset.String()).Scan(&b.Balance, &b.Claimed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return b, nil
		}
		return nil, fmt.Errorf("get commission balance: %w", err)
	}
	return b, nil
}

// Accrue upserts commission balance += delta within a transaction.
func (r *CommissionRepo) Accrue(ctx context.Context, tx pgx.Tx, asset domain.Asset, delta int64) error {
	query := `INSERT INTO commission_balances (asset, balance, claimed, updated_at)
		VALUES ($1, $2, 0, NOW())
		ON CONFLICT (asset)
		DO UPDATE SET balance = commission_balances.balance + $2, updated_at = NOW()`

	_, err := tx.Exec(ctx, query, asset.String(), delta)
	if err != nil {
		return fmt.Errorf("accrue commission: %w", err)
	}
	return nil
}

// ResetBalance zeroes the balance and moves the withdrawn amount into
// the monotone claimed counter.
func (r *CommissionRepo) ResetBalance(ctx context.Context, tx pgx.Tx, asset domain.Asset, claimedDelta int64) error {
	query := `UPDATE commission_balances
		SET balance = 0, claimed = claimed + $2, updated_at = NOW()
		WHERE asset = $1`

	tag, err := tx.Exec(ctx, query, asset.String(), claimedDelta)
	if err != nil {
		return fmt.Errorf("reset commission balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reset commission balance: no row for asset %s", asset)
	}
	return nil
}

// GetSettings reads the commission configuration. Returns nil when the
// settings row has not been seeded yet.
func (r *CommissionRepo) GetSettings(ctx context.Context) (*domain.CommissionSettings, error) {
	query := `SELECT receiver, rate, updated_at FROM commission_settings WHERE id = 1`

	s := &domain.CommissionSettings{}
	err := r.pool.QueryRow(ctx, query).Scan(&s.Receiver, &s.Rate, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission settings: %w", err)
	}
	return s, nil
}

// UpdateSettings upserts the single commission configuration row.
func (r *CommissionRepo) UpdateSettings(ctx context.Context, s *domain.CommissionSettings) error {
	query := `INSERT INTO commission_settings (id, receiver, rate, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id)
		DO UPDATE SET receiver = $1, rate = $2, updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query, s.Receiver, s.Rate)
	if err != nil {
		return fmt.Errorf("update commission settings: %w", err)
	}
	return nil
}
