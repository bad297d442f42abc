package ports

import (
	"context"
	"time"

	"settlement-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// EncryptionService handles AES-256-GCM encryption/decryption of
// merchant API secrets at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService handles HMAC-SHA256 signing and verification of
// merchant API requests.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string
}

// HashService handles operator password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles operator JWT token operations.
type TokenService interface {
	Generate(accountID uuid.UUID, role domain.OperatorRole) (string, time.Time, error)
	Validate(tokenString string) (*domain.AuthContext, error)
}

// --- Service Ports (Business Logic) ---

// PaymentRequest holds validated input for settlement processing.
type PaymentRequest struct {
	MerchantID    uuid.UUID
	OrderID       string
	InvoiceID     string
	Payer         string // Bridge account funds are pulled from
	Asset         domain.Asset
	Amount        int64
	AttachedValue int64 // Native value delivered with the request
}

// WithdrawRequest holds validated input for a merchant withdrawal.
// Amount 0 means "withdraw the full balance".
type WithdrawRequest struct {
	MerchantID uuid.UUID
	Asset      domain.Asset
	Amount     int64
}

// SettlementService is the core accounting engine: it settles payments
// against invoices, accrues commission and merchant balances, and
// serves merchant withdrawals and commission administration.
type SettlementService interface {
	ProcessPayment(ctx context.Context, req PaymentRequest) (*domain.SettlementRecord, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (int64, error)
	WithdrawCommission(ctx context.Context, auth domain.AuthContext, asset domain.Asset) (int64, error)
	SetCommissionRate(ctx context.Context, auth domain.AuthContext, rate uint32) error
	SetCommissionReceiver(ctx context.Context, auth domain.AuthContext, receiver string) error
}

// CustodyService guards the free/locked partition of contract-held
// funds and performs administrative rescues of the free residual.
type CustodyService interface {
	Rescue(ctx context.Context, auth domain.AuthContext, asset domain.Asset, to string, amount int64) error
	// FreeBalance reports custody minus locked minus unclaimed commission.
	FreeBalance(ctx context.Context, asset domain.Asset) (int64, error)
}

// OnboardMerchantRequest holds input for merchant onboarding.
type OnboardMerchantRequest struct {
	Name         string
	FundReceiver string
}

// OnboardMerchantResponse carries the credentials shown once.
type OnboardMerchantResponse struct {
	MerchantID uuid.UUID
	AccessKey  string
	SecretKey  string // Plaintext, shown only at onboarding
}

// DirectoryService manages the merchant registry and implements the
// read-only MerchantDirectory consumed by the settlement engine.
type DirectoryService interface {
	MerchantDirectory

	Onboard(ctx context.Context, auth domain.AuthContext, req OnboardMerchantRequest) (*OnboardMerchantResponse, error)
	SetStatus(ctx context.Context, auth domain.AuthContext, merchantID uuid.UUID, status domain.MerchantStatus) error
	SetFundReceiver(ctx context.Context, auth domain.AuthContext, merchantID uuid.UUID, receiver string) error
	SetAssetSupport(ctx context.Context, auth domain.AuthContext, merchantID uuid.UUID, asset domain.Asset, supported bool) error
	GetMerchant(ctx context.Context, merchantID uuid.UUID) (*domain.Merchant, error)
}

// AuthService authenticates platform operators.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// ReportingService serves read-only ledger queries.
type ReportingService interface {
	GetSettlement(ctx context.Context, key domain.InvoiceKey) (*domain.SettlementRecord, error)
	ListSettlements(ctx context.Context, params SettlementListParams) ([]domain.SettlementRecord, int64, error)
	GetMerchantBalance(ctx context.Context, merchantID uuid.UUID, asset domain.Asset) (int64, error)
	GetCommissionBalance(ctx context.Context, asset domain.Asset) (*domain.CommissionBalance, error)
	ListEvents(ctx context.Context, params EventListParams) ([]domain.LedgerEvent, error)
}
