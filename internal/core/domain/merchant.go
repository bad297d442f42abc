package domain

import (
	"time"

	"github.com/google/uuid"
)

// MerchantStatus represents the state of a merchant account.
// Merchants are never deleted; deactivation is the terminal-ish state
// and can be reversed by a manager.
type MerchantStatus string

const (
	MerchantStatusActive      MerchantStatus = "ACTIVE"
	MerchantStatusDeactivated MerchantStatus = "DEACTIVATED"
)

// Merchant is a registry entry: who receives settled funds and which
// assets the merchant accepts. AccessKey/SecretKeyEnc authenticate the
// merchant's server when it submits payments or withdrawals.
type Merchant struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	FundReceiver string         `json:"fund_receiver"` // Bridge account receiving withdrawals
	AccessKey    string         `json:"access_key"`
	SecretKeyEnc string         `json:"-"` // AES-256-GCM encrypted, never expose
	Status       MerchantStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// IsActive returns true if the merchant can accept payments.
func (m *Merchant) IsActive() bool {
	return m.Status == MerchantStatusActive
}
