package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxIdentifierLen bounds order and invoice identifier strings.
const MaxIdentifierLen = 100

// InvoiceKey uniquely identifies one payable obligation. A given key
// settles at most once; this is the anti-replay guarantee.
type InvoiceKey struct {
	MerchantID uuid.UUID `json:"merchant_id"`
	OrderID    string    `json:"order_id"`
	InvoiceID  string    `json:"invoice_id"`
}

// String returns the storage/log form "merchant:order:invoice".
func (k InvoiceKey) String() string {
	return k.MerchantID.String() + ":" + k.OrderID + ":" + k.InvoiceID
}

// SettlementRecord is the immutable fact that an invoice was settled.
// Written before any external transfer and never updated or deleted.
type SettlementRecord struct {
	Key           InvoiceKey `json:"key"`
	Payer         string     `json:"payer"` // Bridge account the funds were pulled from
	Asset         Asset      `json:"asset"`
	Amount        int64      `json:"amount"`
	Commission    int64      `json:"commission"`
	MerchantShare int64      `json:"merchant_share"`
	SettledAt     time.Time  `json:"settled_at"`
}

// CommissionBalance is the platform's accumulated cut for one asset.
// Balance resets to zero on withdrawal; Claimed only ever grows.
type CommissionBalance struct {
	Asset   Asset `json:"asset"`
	Balance int64 `json:"balance"`
	Claimed int64 `json:"claimed"`
}

// MerchantBalance is the amount owed to a merchant in one asset,
// withdrawable through the merchant's registered fund receiver.
type MerchantBalance struct {
	MerchantID uuid.UUID `json:"merchant_id"`
	Asset      Asset     `json:"asset"`
	Amount     int64     `json:"amount"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CommissionSettings is the platform commission configuration.
// Rate is expressed in parts per percent.RateScale.
type CommissionSettings struct {
	Receiver  string    `json:"receiver"`
	Rate      uint32    `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
}
