package integration

import (
	"context"
	"fmt"
	"sync"

	"settlement-ledger/internal/core/domain"
	"settlement-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Merchant Repo ---

type inMemoryMerchantRepo struct {
	mu        sync.RWMutex
	merchants map[uuid.UUID]*domain.Merchant
	assets    map[uuid.UUID]map[string]bool
}

func newInMemoryMerchantRepo() *inMemoryMerchantRepo {
	return &inMemoryMerchantRepo{
		merchants: make(map[uuid.UUID]*domain.Merchant),
		assets:    make(map[uuid.UUID]map[string]bool),
	}
}

func (r *inMemoryMerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.merchants {
		if existing.AccessKey == m.AccessKey {
			return fmt.Errorf("access key already exists")
		}
	}
	cp := *m
	r.merchants[m.ID] = &cp
	return nil
}

func (r *inMemoryMerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.merchants[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *inMemoryMerchantRepo) GetByAccessKey(ctx context.Context, accessKey string) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.merchants {
		if m.AccessKey == accessKey {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryMerchantRepo) Update(ctx context.Context, m *domain.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.merchants[m.ID]; !ok {
		return fmt.Errorf("merchant not found")
	}
	cp := *m
	r.merchants[m.ID] = &cp
	return nil
}

func (r *inMemoryMerchantRepo) SetAssetSupport(ctx context.Context, merchantID uuid.UUID, asset domain.Asset, supported bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.assets[merchantID] == nil {
		r.assets[merchantID] = make(map[string]bool)
	}
	r.assets[merchantID][asset.String()] = supported
	return nil
}

func (r *inMemoryMerchantRepo) IsAssetSupported(ctx context.Context, merchantID uuid.UUID, asset domain.Asset) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assets[merchantID][asset.String()], nil
}

func (r *inMemoryMerchantRepo) IsMerchantActive(ctx context.Context, merchantID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.merchants[merchantID]
	if !ok {
		return false, nil
	}
	return m.IsActive(), nil
}

func (r *inMemoryMerchantRepo) FundReceiver(ctx context.Context, merchantID uuid.UUID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.merchants[merchantID]
	if !ok {
		return "", fmt.Errorf("merchant not found")
	}
	return m.FundReceiver, nil
}

// --- In-Memory Operator Repo ---

type inMemoryOperatorRepo struct {
	mu        sync.RWMutex
	operators map[uuid.UUID]*domain.Operator
}

func newInMemoryOperatorRepo() *inMemoryOperatorRepo {
	return &inMemoryOperatorRepo{operators: make(map[uuid.UUID]*domain.Operator)}
}

func (r *inMemoryOperatorRepo) Create(ctx context.Context, op *domain.Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.operators {
		if existing.Username == op.Username {
			return fmt.Errorf("username already exists")
		}
	}
	cp := *op
	r.operators[op.ID] = &cp
	return nil
}

func (r *inMemoryOperatorRepo) GetByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, op := range r.operators {
		if op.Username == username {
			cp := *op
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryOperatorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.operators[id]
	if !ok {
		return nil, nil
	}
	cp := *op
	return &cp, nil
}

// --- In-Memory Settlement Repo ---

type inMemorySettlementRepo struct {
	mu      sync.RWMutex
	records map[domain.InvoiceKey]*domain.SettlementRecord
	order   []domain.InvoiceKey
}

func newInMemorySettlementRepo() *inMemorySettlementRepo {
	return &inMemorySettlementRepo{records: make(map[domain.InvoiceKey]*domain.SettlementRecord)}
}

func (r *inMemorySettlementRepo) Exists(ctx context.Context, tx pgx.Tx, key domain.InvoiceKey) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.records[key]
	return ok, nil
}

func (r *inMemorySettlementRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.SettlementRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.Key]; ok {
		return fmt.Errorf("duplicate settlement key")
	}
	cp := *rec
	r.records[rec.Key] = &cp
	r.order = append(r.order, rec.Key)
	return nil
}

func (r *inMemorySettlementRepo) GetByKey(ctx context.Context, key domain.InvoiceKey) (*domain.SettlementRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *inMemorySettlementRepo) List(ctx context.Context, params ports.SettlementListParams) ([]domain.SettlementRecord, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.SettlementRecord
	for _, key := range r.order {
		rec := r.records[key]
		if rec.Key.MerchantID != params.MerchantID {
			continue
		}
		if params.Asset != nil && rec.Asset != *params.Asset {
			continue
		}
		result = append(result, *rec)
	}
	total := int64(len(result))

	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.SettlementRecord{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

// --- In-Memory Ledger Repo ---

type balanceKey struct {
	merchantID uuid.UUID
	asset      string
}

type inMemoryLedgerRepo struct {
	mu       sync.RWMutex
	balances map[balanceKey]int64
	locked   map[string]int64
}

func newInMemoryLedgerRepo() *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{
		balances: make(map[balanceKey]int64),
		locked:   make(map[string]int64),
	}
}

func (r *inMemoryLedgerRepo) GetBalanceForUpdate(ctx context.Context, tx pgx.Tx, merchantID uuid.UUID, asset domain.Asset) (int64, error) {
	return r.GetBalance(ctx, merchantID, asset)
}

func (r *inMemoryLedgerRepo) AddBalance(ctx context.Context, tx pgx.Tx, merchantID uuid.UUID, asset domain.Asset, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[balanceKey{merchantID, asset.String()}] += delta
	return nil
}

func (r *inMemoryLedgerRepo) GetBalance(ctx context.Context, merchantID uuid.UUID, asset domain.Asset) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.balances[balanceKey{merchantID, asset.String()}], nil
}

func (r *inMemoryLedgerRepo) LockedTotalForUpdate(ctx context.Context, tx pgx.Tx, asset domain.Asset) (int64, error) {
	return r.LockedTotal(ctx, asset)
}

func (r *inMemoryLedgerRepo) AddLocked(ctx context.Context, tx pgx.Tx, asset domain.Asset, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked[asset.String()] += delta
	return nil
}

func (r *inMemoryLedgerRepo) LockedTotal(ctx context.Context, asset domain.Asset) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked[asset.String()], nil
}

// --- In-Memory Commission Repo ---

type inMemoryCommissionRepo struct {
	mu       sync.RWMutex
	balances map[string]*domain.CommissionBalance
	settings *domain.CommissionSettings
}

func newInMemoryCommissionRepo() *inMemoryCommissionRepo {
	return &inMemoryCommissionRepo{balances: make(map[string]*domain.CommissionBalance)}
}

func (r *inMemoryCommissionRepo) GetBalanceForUpdate(ctx context.Context, tx pgx.Tx, asset domain.Asset) (*domain.CommissionBalance, error) {
	return r.GetBalance(ctx, asset)
}

func (r *inMemoryCommissionRepo) GetBalance(ctx context.Context, asset domain.Asset) (*domain.CommissionBalance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.balances[asset.String()]
	if !ok {
		return &domain.CommissionBalance{Asset: asset}, nil
	}
	cp := *b
	return &cp, nil
}

func (r *inMemoryCommissionRepo) Accrue(ctx context.Context, tx pgx.Tx, asset domain.Asset, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[asset.String()]
	if !ok {
		b = &domain.CommissionBalance{Asset: asset}
		r.balances[asset.String()] = b
	}
	b.Balance += delta
	return nil
}

func (r *inMemoryCommissionRepo) ResetBalance(ctx context.Context, tx pgx.Tx, asset domain.Asset, claimedDelta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[asset.String()]
	if !ok {
		b = &domain.CommissionBalance{Asset: asset}
		r.balances[asset.String()] = b
	}
	b.Balance = 0
	b.Claimed += claimedDelta
	return nil
}

func (r *inMemoryCommissionRepo) GetSettings(ctx context.Context) (*domain.CommissionSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return nil, nil
	}
	cp := *r.settings
	return &cp, nil
}

func (r *inMemoryCommissionRepo) UpdateSettings(ctx context.Context, s *domain.CommissionSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.settings = &cp
	return nil
}

// --- In-Memory Event Repo ---

type inMemoryEventRepo struct {
	mu     sync.RWMutex
	events []domain.LedgerEvent
}

func newInMemoryEventRepo() *inMemoryEventRepo {
	return &inMemoryEventRepo{}
}

func (r *inMemoryEventRepo) Append(ctx context.Context, ev *domain.LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *ev)
	return nil
}

func (r *inMemoryEventRepo) List(ctx context.Context, params ports.EventListParams) ([]domain.LedgerEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerEvent
	for _, ev := range r.events {
		if params.Type != nil && ev.Type != *params.Type {
			continue
		}
		if params.MerchantID != nil && (ev.MerchantID == nil || *ev.MerchantID != *params.MerchantID) {
			continue
		}
		result = append(result, ev)
	}

	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.LedgerEvent{}, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], nil
}

// --- In-Memory Fake Bridge ---

// fakeBridge is an in-process stand-in for the external token bridge.
// It keeps native and per-token balances for every account, so the real
// Transferor adapter (including its balance-delta verification) runs
// unchanged against it.
type fakeBridge struct {
	mu     sync.Mutex
	native map[string]int64
	tokens map[string]map[string]int64
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{
		native: make(map[string]int64),
		tokens: make(map[string]map[string]int64),
	}
}

// creditNative simulates native value arriving at an account, the way
// attached value lands in custody on a real chain.
func (b *fakeBridge) creditNative(account string, amount int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.native[account] += amount
}

// mintToken gives an account token balance to pay with.
func (b *fakeBridge) mintToken(token, account string, amount int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tokens[token] == nil {
		b.tokens[token] = make(map[string]int64)
	}
	b.tokens[token][account] += amount
}

// Transfer sends from the custody account, matching the real bridge
// where the ledger only ever sends from its own account.
func (b *fakeBridge) Transfer(ctx context.Context, token, to string, amount int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tokens[token] == nil || b.tokens[token][custodyAccount] < amount {
		return false, nil
	}
	b.tokens[token][custodyAccount] -= amount
	b.tokens[token][to] += amount
	return true, nil
}

func (b *fakeBridge) TransferFrom(ctx context.Context, token, from, to string, amount int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tokens[token] == nil || b.tokens[token][from] < amount {
		return false, nil
	}
	b.tokens[token][from] -= amount
	b.tokens[token][to] += amount
	return true, nil
}

func (b *fakeBridge) BalanceOf(ctx context.Context, token, account string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tokens[token] == nil {
		return 0, nil
	}
	return b.tokens[token][account], nil
}

func (b *fakeBridge) SendNative(ctx context.Context, to string, amount int64) error {
	return b.sendNativeFrom(custodyAccount, to, amount)
}

func (b *fakeBridge) sendNativeFrom(from, to string, amount int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.native[from] < amount {
		return fmt.Errorf("insufficient native balance")
	}
	b.native[from] -= amount
	b.native[to] += amount
	return nil
}

func (b *fakeBridge) NativeBalance(ctx context.Context, account string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.native[account], nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
