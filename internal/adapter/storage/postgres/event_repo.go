package postgres

import (
	"context"
	"fmt"
	"strings"

	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
)

// EventRepo implements ports.EventRepository. Events are append-only;
// there is no update or delete path.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// Append inserts a ledger event.
func (r *EventRepo) Append(ctx context.Context, ev *domain.LedgerEvent) error {
	query := `INSERT INTO ledger_events (id, event_type, merchant_id, asset, amount, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var asset *string
	if ev.Asset != nil {
		s := ev.Asset.String()
		asset = &s
	}

	_, err := r.pool.Exec(ctx, query,
		ev.ID, ev.Type, ev.MerchantID, asset, ev.Amount, ev.Details, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger event: %w", err)
	}
	return nil
}

// List fetches ledger events with filtering and pagination, newest first.
func (r *EventRepo) List(ctx context.Context, params ports.EventListParams) ([]domain.LedgerEvent, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Type != nil {
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", argIdx))
		args = append(args, *params.Type)
		argIdx++
	}
	if params.MerchantID != nil {
		conditions = append(conditions, fmt.Sprintf("merchant_id = $%d", argIdx))
		args = append(args, *params.MerchantID)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	offset := (params.Page - 1) * params.PageSize
	query := fmt.Sprintf(`SELECT id, event_type, merchant_id, asset, amount, details, created_at
		FROM ledger_events %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger events: %w", err)
	}
	defer rows.Close()

	var events []domain.LedgerEvent
	for rows.Next() {
		ev := domain.LedgerEvent{}
		var asset *string
		err := rows.Scan(&ev.ID, &ev.Type, &ev.MerchantID, &asset, &ev.Amount, &ev.Details, &ev.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan ledger event row: %w", err)
		}
		if asset != nil {
			a, err := domain.ParseAsset(*asset)
			if err != nil {
				return nil, fmt.Errorf("stored asset %q: %w", *asset, err)
			}
			ev.Asset = &a
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger event rows: %w", err)
	}
	return events, nil
}
