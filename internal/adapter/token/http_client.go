package token

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"settlement-ledger/config"

	"github.com/rs/zerolog"
)

// HTTPBridgeClient implements ports.BridgeClient against the token
// bridge's REST API. The bridge fronts the actual token contracts and
// the native currency; the ledger never talks to a chain directly.
type HTTPBridgeClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewHTTPBridgeClient creates a bridge client from config.
func NewHTTPBridgeClient(cfg config.BridgeConfig, log zerolog.Logger) *HTTPBridgeClient {
	return &HTTPBridgeClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
}

type transferRequest struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

type transferResponse struct {
	OK bool `json:"ok"`
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

// Transfer invokes the token's transfer primitive via the bridge.
func (c *HTTPBridgeClient) Transfer(ctx context.Context, token, to string, amount int64) (bool, error) {
	var resp transferResponse
	path := fmt.Sprintf("/tokens/%s/transfer", url.PathEscape(token))
	err := c.post(ctx, path, transferRequest{To: to, Amount: amount}, &resp)
	if err != nil {
		return false, err
	}
	return resp.OK, nil
}

// TransferFrom invokes the token's transferFrom primitive via the bridge.
func (c *HTTPBridgeClient) TransferFrom(ctx context.Context, token, from, to string, amount int64) (bool, error) {
	var resp transferResponse
	path := fmt.Sprintf("/tokens/%s/transfer-from", url.PathEscape(token))
	err := c.post(ctx, path, transferRequest{From: from, To: to, Amount: amount}, &resp)
	if err != nil {
		return false, err
	}
	return resp.OK, nil
}

// BalanceOf reads a token balance via the bridge.
func (c *HTTPBridgeClient) BalanceOf(ctx context.Context, token, account string) (int64, error) {
	var resp balanceResponse
	path := fmt.Sprintf("/tokens/%s/balance/%s", url.PathEscape(token), url.PathEscape(account))
	if err := c.get(ctx, path, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// SendNative moves native currency out of the bridge-held custody.
func (c *HTTPBridgeClient) SendNative(ctx context.Context, to string, amount int64) error {
	var resp transferResponse
	err := c.post(ctx, "/native/send", transferRequest{To: to, Amount: amount}, &resp)
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("native send rejected by bridge")
	}
	return nil
}

// NativeBalance reads an account's native currency balance.
func (c *HTTPBridgeClient) NativeBalance(ctx context.Context, account string) (int64, error) {
	var resp balanceResponse
	path := fmt.Sprintf("/native/balance/%s", url.PathEscape(account))
	if err := c.get(ctx, path, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

func (c *HTTPBridgeClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal bridge request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build bridge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPBridgeClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build bridge request: %w", err)
	}
	return c.do(req, out)
}

func (c *HTTPBridgeClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("bridge call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read bridge response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("path", req.URL.Path).
			Msg("bridge returned non-200")
		return fmt.Errorf("bridge returned status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode bridge response: %w", err)
	}
	return nil
}
