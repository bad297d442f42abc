package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a ledger event for external observers/indexers.
type EventType string

const (
	EventPaymentSettled      EventType = "PAYMENT_SETTLED"
	EventWithdrawal          EventType = "WITHDRAWAL"
	EventCommissionWithdrawn EventType = "COMMISSION_WITHDRAWN"
	EventCommissionConfig    EventType = "COMMISSION_CONFIG_UPDATED"
	EventAssetSupportToggled EventType = "ASSET_SUPPORT_TOGGLED"
	EventRescue              EventType = "RESCUE"
)

// LedgerEvent is an append-only record of a state change, persisted for
// indexers alongside the structured log line.
type LedgerEvent struct {
	ID         uuid.UUID  `json:"id"`
	Type       EventType  `json:"type"`
	MerchantID *uuid.UUID `json:"merchant_id,omitempty"`
	Asset      *Asset     `json:"asset,omitempty"`
	Amount     int64      `json:"amount,omitempty"`
	Details    string     `json:"details,omitempty"` // JSON payload
	CreatedAt  time.Time  `json:"created_at"`
}
