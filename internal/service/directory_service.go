package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"
	"settlement-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DirectoryServiceImpl implements ports.DirectoryService: the managed
// merchant registry plus the read-only directory view the settlement
// engine consumes.
type DirectoryServiceImpl struct {
	merchantRepo ports.MerchantRepository
	encSvc       ports.EncryptionService
	events       ports.EventRepository
	log          zerolog.Logger
}

// NewDirectoryService creates a new DirectoryServiceImpl.
func NewDirectoryService(
	merchantRepo ports.MerchantRepository,
	encSvc ports.EncryptionService,
	events ports.EventRepository,
	log zerolog.Logger,
) *DirectoryServiceImpl {
	return &DirectoryServiceImpl{
		merchantRepo: merchantRepo,
		encSvc:       encSvc,
		events:       events,
		log:          log,
	}
}

// --- Read-only directory view (ports.MerchantDirectory) ---

// IsMerchantActive reports whether the merchant exists and is active.
func (s *DirectoryServiceImpl) IsMerchantActive(ctx context.Context, merchantID uuid.UUID) (bool, error) {
	m, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return false, err
	}
	return m != nil && m.IsActive(), nil
}

// IsAssetSupported reports whether the merchant accepts the asset.
func (s *DirectoryServiceImpl) IsAssetSupported(ctx context.Context, merchantID uuid.UUID, asset domain.Asset) (bool, error) {
	return s.merchantRepo.IsAssetSupported(ctx, merchantID, asset)
}

// FundReceiver resolves the merchant's payout address. Unknown
// merchants are rejected.
func (s *DirectoryServiceImpl) FundReceiver(ctx context.Context, merchantID uuid.UUID) (string, error) {
	m, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", fmt.Errorf("merchant %s not registered", merchantID)
	}
	return m.FundReceiver, nil
}

// --- Registry management ---

// Onboard registers a new merchant and returns its API credentials.
// The plaintext secret key is shown exactly once.
func (s *DirectoryServiceImpl) Onboard(ctx context.Context, auth domain.AuthContext, req ports.OnboardMerchantRequest) (*ports.OnboardMerchantResponse, error) {
	if !auth.CanManage() {
		return nil, apperror.ErrForbiddenRole()
	}
	if req.Name == "" {
		return nil, apperror.Validation("merchant name is required")
	}
	if domain.IsZeroAddress(req.FundReceiver) {
		return nil, apperror.ErrInvalidReceiver()
	}

	accessKey, err := generateKey("ak_", 24)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate access key: %w", err))
	}
	secretKey, err := generateKey("sk_", 32)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate secret key: %w", err))
	}
	secretEnc, err := s.encSvc.Encrypt(secretKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encrypt secret key: %w", err))
	}

	now := time.Now().UTC()
	m := &domain.Merchant{
		ID:           uuid.New(),
		Name:         req.Name,
		FundReceiver: req.FundReceiver,
		AccessKey:    accessKey,
		SecretKeyEnc: secretEnc,
		Status:       domain.MerchantStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.merchantRepo.Create(ctx, m); err != nil {
		return nil, apperror.ErrMerchantExists()
	}

	s.log.Info().Str("merchant_id", m.ID.String()).Str("name", m.Name).Msg("merchant onboarded")

	return &ports.OnboardMerchantResponse{
		MerchantID: m.ID,
		AccessKey:  accessKey,
		SecretKey:  secretKey,
	}, nil
}

// SetStatus activates or deactivates a merchant. Merchants are never
// deleted.
func (s *DirectoryServiceImpl) SetStatus(ctx context.Context, auth domain.AuthContext, merchantID uuid.UUID, status domain.MerchantStatus) error {
	if !auth.CanManage() {
		return apperror.ErrForbiddenRole()
	}
	m, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return apperror.InternalError(err)
	}
	if m == nil {
		return apperror.ErrNotFound("merchant")
	}
	if m.Status == status {
		return apperror.ErrNoOpChange()
	}

	m.Status = status
	m.UpdatedAt = time.Now().UTC()
	if err := s.merchantRepo.Update(ctx, m); err != nil {
		return apperror.InternalError(err)
	}
	s.log.Info().Str("merchant_id", merchantID.String()).Str("status", string(status)).Msg("merchant status updated")
	return nil
}

// SetFundReceiver updates the merchant's payout address.
func (s *DirectoryServiceImpl) SetFundReceiver(ctx context.Context, auth domain.AuthContext, merchantID uuid.UUID, receiver string) error {
	if !auth.CanManage() {
		return apperror.ErrForbiddenRole()
	}
	if domain.IsZeroAddress(receiver) {
		return apperror.ErrInvalidReceiver()
	}
	m, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return apperror.InternalError(err)
	}
	if m == nil {
		return apperror.ErrNotFound("merchant")
	}
	if m.FundReceiver == receiver {
		return apperror.ErrNoOpChange()
	}

	m.FundReceiver = receiver
	m.UpdatedAt = time.Now().UTC()
	if err := s.merchantRepo.Update(ctx, m); err != nil {
		return apperror.InternalError(err)
	}
	s.log.Info().Str("merchant_id", merchantID.String()).Msg("merchant fund receiver updated")
	return nil
}

// SetAssetSupport toggles a supported asset for a merchant.
func (s *DirectoryServiceImpl) SetAssetSupport(ctx context.Context, auth domain.AuthContext, merchantID uuid.UUID, asset domain.Asset, supported bool) error {
	if !auth.CanManage() {
		return apperror.ErrForbiddenRole()
	}
	m, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return apperror.InternalError(err)
	}
	if m == nil {
		return apperror.ErrNotFound("merchant")
	}

	if err := s.merchantRepo.SetAssetSupport(ctx, merchantID, asset, supported); err != nil {
		return apperror.InternalError(err)
	}

	payload, _ := json.Marshal(map[string]any{"supported": supported})
	ev := &domain.LedgerEvent{
		ID:         uuid.New(),
		Type:       domain.EventAssetSupportToggled,
		MerchantID: &merchantID,
		Asset:      &asset,
		Details:    string(payload),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.events.Append(ctx, ev); err != nil {
		s.log.Warn().Err(err).Msg("failed to append asset support event")
	}

	s.log.Info().
		Str("merchant_id", merchantID.String()).
		Str("asset", asset.String()).
		Bool("supported", supported).
		Msg("merchant asset support toggled")
	return nil
}

// GetMerchant returns a registry entry.
func (s *DirectoryServiceImpl) GetMerchant(ctx context.Context, merchantID uuid.UUID) (*domain.Merchant, error) {
	m, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if m == nil {
		return nil, apperror.ErrNotFound("merchant")
	}
	return m, nil
}

func generateKey(prefix string, length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return prefix + hex.EncodeToString(b), nil
}
