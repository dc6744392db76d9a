// Package insightclient talks to a Dash Insight API instance: listing
// an address's UTXOs, broadcasting a raw transaction, and checking a
// transaction's confirmation/instant-lock status.
package insightclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/dashpay/asset-lock-bridge/codec"
	"github.com/dashpay/asset-lock-bridge/retry"
	"github.com/dashpay/asset-lock-bridge/utxo"
)

// Config configures one Insight client instance.
type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration
}

// Client wraps an Insight API base URL with the few endpoints the
// bridge needs.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient builds a Client; a zero HTTPTimeout defaults to 30s.
func NewClient(cfg Config) *Client {
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// utxoResponse mirrors one entry of GET /addr/{address}/utxo.
type utxoResponse struct {
	TxID          string `json:"txid"`
	Vout          uint32 `json:"vout"`
	Satoshis      int64  `json:"satoshis"`
	ScriptPubKey  string `json:"scriptPubKey"`
	Confirmations int    `json:"confirmations"`
}

// ListUTXO calls GET /addr/{address}/utxo.
func (c *Client) ListUTXO(ctx context.Context, address string) ([]*utxo.UTXO, error) {
	var raw []utxoResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/addr/%s/utxo", address), &raw); err != nil {
		return nil, err
	}
	out := make([]*utxo.UTXO, 0, len(raw))
	for _, r := range raw {
		script, err := hexDecodeLenient(r.ScriptPubKey)
		if err != nil {
			return nil, fmt.Errorf("insightclient: decode scriptPubKey for %s: %w", r.TxID, err)
		}
		out = append(out, &utxo.UTXO{
			TxID:          r.TxID,
			Vout:          r.Vout,
			Value:         r.Satoshis,
			ScriptPubKey:  script,
			Confirmations: r.Confirmations,
		})
	}
	return out, nil
}

// BroadcastResponse is the result of POST /tx/send.
type BroadcastResponse struct {
	TxID string `json:"txid"`
}

// Broadcast submits a raw signed transaction hex and returns its txid.
// A 409 (already in mempool/mined) is not retried; transport blips and
// 5xx/429 responses are, via retry.DefaultOptions.
func (c *Client) Broadcast(ctx context.Context, rawTxHex string) (string, error) {
	body, err := json.Marshal(map[string]string{"rawtx": rawTxHex})
	if err != nil {
		return "", err
	}
	resp, err := retry.WithRetry(ctx, func(ctx context.Context) (BroadcastResponse, error) {
		var r BroadcastResponse
		if err := c.postJSON(ctx, "/tx/send", body, &r); err != nil {
			return BroadcastResponse{}, err
		}
		return r, nil
	}, retry.DefaultOptions())
	if err != nil {
		return "", err
	}
	return resp.TxID, nil
}

// TxStatus is the result of GET /tx/{txid}.
type TxStatus struct {
	TxID          string `json:"txid"`
	Confirmations int    `json:"confirmations"`
	TxLock        bool   `json:"txlock"`
}

// Status fetches a transaction's current confirmation/instant-lock
// status.
func (c *Client) Status(ctx context.Context, txid string) (*TxStatus, error) {
	var resp TxStatus
	if err := c.getJSON(ctx, fmt.Sprintf("/tx/%s", txid), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt := string(raw)
		if len(excerpt) > 256 {
			excerpt = excerpt[:256]
		}
		return &NetworkError{StatusCode: resp.StatusCode, Body: excerpt}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.WithError(err).WithField("body", string(raw)).Warn("insightclient: failed to decode response")
		return err
	}
	return nil
}

func hexDecodeLenient(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return codec.DecodeHex(s)
}
