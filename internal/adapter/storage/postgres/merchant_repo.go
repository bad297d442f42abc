package postgres

import (
	"context"
	"errors"
	"fmt"

	"settlement-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MerchantRepo implements ports.MerchantRepository.
type MerchantRepo struct {
	pool Pool
}

// NewMerchantRepo creates a new MerchantRepo.
func NewMerchantRepo(pool Pool) *MerchantRepo {
	return &MerchantRepo{pool: pool}
}

// Create inserts a new merchant into the registry. The unique index on
// access_key turns duplicate onboarding into an error here.
func (r *MerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	query := `INSERT INTO merchants (id, name, fund_receiver, access_key, secret_key_enc, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.Name, m.FundReceiver, m.AccessKey,
		m.SecretKeyEnc, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merchant: %w", err)
	}
	return nil
}

// GetByID fetches a merchant by UUID.
func (r *MerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	query := `SELECT id, name, fund_receiver, access_key, secret_key_enc, status, created_at, updated_at
		FROM merchants WHERE id = $1`

	m := &domain.Merchant{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.FundReceiver, &m.AccessKey,
		&m.SecretKeyEnc, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant by id: %w", err)
	}
	return m, nil
}

// GetByAccessKey fetches a merchant by API access key.
func (r *MerchantRepo) GetByAccessKey(ctx context.Context, accessKey string) (*domain.Merchant, error) {
	query := `SELECT id, name, fund_receiver, access_key, secret_key_enc, status, created_at, updated_at
		FROM merchants WHERE access_key = $1`

	m := &domain.Merchant{}
	err := r.pool.QueryRow(ctx, query, accessKey).Scan(
		&m.ID, &m.Name, &m.FundReceiver, &m.AccessKey,
		&m.SecretKeyEnc, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant by access key: %w", err)
	}
	return m, nil
}

// Update persists merchant registry changes (receiver, status).
func (r *MerchantRepo) Update(ctx context.Context, m *domain.Merchant) error {
	query := `UPDATE merchants SET name = $1, fund_receiver = $2, status = $3, updated_at = NOW()
		WHERE id = $4`

	tag, err := r.pool.Exec(ctx, query, m.Name, m.FundReceiver, m.Status, m.ID)
	if err != nil {
		return fmt.Errorf("update merchant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update merchant: not found")
	}
	return nil
}

// SetAssetSupport toggles whether the merchant accepts payments in the
// asset. Rows are kept for both states so toggling leaves a trace.
func (r *MerchantRepo) SetAssetSupport(ctx context.Context, merchantID uuid.UUID, asset domain.Asset, supported bool) error {
	query := `INSERT INTO merchant_assets (merchant_id, asset, supported, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (merchant_id, asset)
		DO UPDATE SET supported = $3, updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query, merchantID, asset.String(), supported)
	if err != nil {
		return fmt.Errorf("set asset support: %w", err)
	}
	return nil
}

// IsAssetSupported reports whether the merchant accepts the asset.
// Assets are opt-in: no row means not supported.
func (r *MerchantRepo) IsAssetSupported(ctx context.Context, merchantID uuid.UUID, asset domain.Asset) (bool, error) {
	query := `SELECT supported FROM merchant_assets WHERE merchant_id = $1 AND asset = $2`

	var supported bool
	err := r.pool.QueryRow(ctx, query, merchantID, asset.String()).Scan(&supported)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check asset support: %w", err)
	}
	return supported, nil
}
