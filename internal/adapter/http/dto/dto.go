package dto

// PaymentRequest is the request body for settling a payment against an
// invoice. Payer funds are pulled through the bridge; attached_value
// carries the native amount delivered with the request, if any.
type PaymentRequest struct {
	OrderID       string `json:"order_id" binding:"required,max=100,safe_id"`
	InvoiceID     string `json:"invoice_id" binding:"required,max=100,safe_id"`
	Payer         string `json:"payer" binding:"required,bridge_account"`
	Asset         string `json:"asset" binding:"required,asset"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	AttachedValue int64  `json:"attached_value" binding:"min=0"`
}

// WithdrawRequest is the request body for a merchant withdrawal.
// Amount 0 withdraws the full balance.
type WithdrawRequest struct {
	Asset  string `json:"asset" binding:"required,asset"`
	Amount int64  `json:"amount" binding:"min=0"`
}

// RescueRequest is the request body for rescuing free custody funds.
type RescueRequest struct {
	Asset  string `json:"asset" binding:"required,asset"`
	To     string `json:"to" binding:"required,bridge_account"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
}

// CommissionRateRequest sets the platform commission rate in parts per
// ten thousand.
type CommissionRateRequest struct {
	Rate *uint32 `json:"rate" binding:"required"`
}

// CommissionReceiverRequest sets the commission payout receiver.
type CommissionReceiverRequest struct {
	Receiver string `json:"receiver" binding:"required,bridge_account"`
}

// CommissionWithdrawRequest chooses the asset to withdraw commission in.
type CommissionWithdrawRequest struct {
	Asset string `json:"asset" binding:"required,asset"`
}

// OnboardMerchantRequest is the request body for merchant onboarding.
type OnboardMerchantRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	FundReceiver string `json:"fund_receiver" binding:"required,bridge_account"`
}

// MerchantStatusRequest toggles a merchant's status.
type MerchantStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE DEACTIVATED"`
}

// FundReceiverRequest updates a merchant's fund receiver.
type FundReceiverRequest struct {
	FundReceiver string `json:"fund_receiver" binding:"required,bridge_account"`
}

// AssetSupportRequest toggles an asset for a merchant.
type AssetSupportRequest struct {
	Asset     string `json:"asset" binding:"required,asset"`
	Supported *bool  `json:"supported" binding:"required"`
}

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// OnboardMerchantResponse carries credentials shown exactly once.
type OnboardMerchantResponse struct {
	MerchantID string `json:"merchant_id"`
	AccessKey  string `json:"access_key"`
	SecretKey  string `json:"secret_key"`
}

// MerchantResponse is the registry view of a merchant.
type MerchantResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FundReceiver string `json:"fund_receiver"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// SettlementResponse is the response body for a settled payment.
type SettlementResponse struct {
	MerchantID    string `json:"merchant_id"`
	OrderID       string `json:"order_id"`
	InvoiceID     string `json:"invoice_id"`
	Payer         string `json:"payer"`
	Asset         string `json:"asset"`
	Amount        int64  `json:"amount"`
	Commission    int64  `json:"commission"`
	MerchantShare int64  `json:"merchant_share"`
	SettledAt     string `json:"settled_at"`
}

// WithdrawResponse reports the amount actually paid out.
type WithdrawResponse struct {
	Asset  string `json:"asset"`
	Amount int64  `json:"amount"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	Asset  string `json:"asset"`
	Amount int64  `json:"amount"`
}

// CommissionBalanceResponse is the response for a commission balance query.
type CommissionBalanceResponse struct {
	Asset   string `json:"asset"`
	Balance int64  `json:"balance"`
	Claimed int64  `json:"claimed"`
}

// EventResponse is one ledger event.
type EventResponse struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	MerchantID *string `json:"merchant_id,omitempty"`
	Asset      *string `json:"asset,omitempty"`
	Amount     int64   `json:"amount,omitempty"`
	Details    string  `json:"details,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// SettlementListResponse wraps a paginated settlement list.
type SettlementListResponse struct {
	Items      []SettlementResponse `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}
