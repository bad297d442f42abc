package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// SettlementRepo implements ports.SettlementRepository.
type SettlementRepo struct {
	pool Pool
}

// NewSettlementRepo creates a new SettlementRepo.
func NewSettlementRepo(pool Pool) *SettlementRepo {
	return &SettlementRepo{pool: pool}
}

// Exists reports whether a settlement record already exists for the
// invoice key. Runs inside the settlement transaction so the check and
// the subsequent insert see the same snapshot.
func (r *SettlementRepo) Exists(ctx context.Context, tx pgx.Tx, key domain.InvoiceKey) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM settlements
		WHERE merchant_id = $1 AND order_id = $2 AND invoice_id = $3)`

	var exists bool
	err := tx.QueryRow(ctx, query, key.MerchantID, key.OrderID, key.InvoiceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check settlement exists: %w", err)
	}
	return exists, nil
}

// Create inserts a settlement record within the settlement transaction.
// The primary key on (merchant_id, order_id, invoice_id) backs up the
// Exists check against concurrent writers.
func (r *SettlementRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.SettlementRecord) error {
	query := `INSERT INTO settlements (merchant_id, order_id, invoice_id, payer, asset, amount, commission, merchant_share, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		rec.Key.MerchantID, rec.Key.OrderID, rec.Key.InvoiceID,
		rec.Payer, rec.Asset.String(), rec.Amount,
		rec.Commission, rec.MerchantShare, rec.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}
	return nil
}

// GetByKey fetches a settlement record by its invoice key.
func (r *SettlementRepo) GetByKey(ctx context.Context, key domain.InvoiceKey) (*domain.SettlementRecord, error) {
	query := `SELECT merchant_id, order_id, invoice_id, payer, asset, amount, commission, merchant_share, settled_at
		FROM settlements WHERE merchant_id = $1 AND order_id = $2 AND invoice_id = $3`

	rec, err := scanSettlement(r.pool.QueryRow(ctx, query, key.MerchantID, key.OrderID, key.InvoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settlement by key: %w", err)
	}
	return rec, nil
}

// List fetches settlement records with filtering and pagination.
func (r *SettlementRepo) List(ctx context.Context, params ports.SettlementListParams) ([]domain.SettlementRecord, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("merchant_id = $%d", argIdx))
	args = append(args, params.MerchantID)
	argIdx++

	if params.Asset != nil {
		conditions = append(conditions, fmt.Sprintf("asset = $%d", argIdx))
		args = append(args, params.Asset.String())
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM settlements %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count settlements: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT merchant_id, order_id, invoice_id, payer, asset, amount, commission, merchant_share, settled_at
		FROM settlements %s ORDER BY settled_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()

	var recs []domain.SettlementRecord
	for rows.Next() {
		rec, err := scanSettlement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan settlement row: %w", err)
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate settlement rows: %w", err)
	}
	return recs, total, nil
}

func scanSettlement(row pgx.Row) (*domain.SettlementRecord, error) {
	rec := &domain.SettlementRecord{}
	var asset string
	err := row.Scan(
		&rec.Key.MerchantID, &rec.Key.OrderID, &rec.Key.InvoiceID,
		&rec.Payer, &asset, &rec.Amount,
		&rec.Commission, &rec.MerchantShare, &rec.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Asset, err = domain.ParseAsset(asset)
	if err != nil {
		return nil, fmt.Errorf("stored asset %q: %w", asset, err)
	}
	return rec, nil
}
