// Package islockclient retrieves InstantSend locks for a transaction
// id via a single JSON-RPC endpoint (method getislocks), polling until
// one is available or a deadline expires.
package islockclient

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
)

// Config configures one islock client instance.
type Config struct {
	RPCURL      string
	HTTPTimeout time.Duration
}

// Client wraps one islock RPC endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: cfg.HTTPTimeout}}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type islockEntry struct {
	TxID      string `json:"txid"`
	Hex       string `json:"hex"`
	Signature string `json:"signature,omitempty"`
	CycleHash string `json:"cycleHash,omitempty"`
}

type rpcResponse struct {
	Result []islockEntry `json:"result"`
	Error  *rpcError     `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Get calls getislocks for a single txid and returns the decoded
// InstantSend-lock bytes, or nil if none is available yet.
func (c *Client) Get(ctx context.Context, txid string) ([]byte, error) {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "getislocks",
		Params:  []interface{}{[]string{txid}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.RPCURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed rpcResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		logger.WithError(err).WithField("body", string(raw)).Warn("islockclient: failed to decode response")
		return nil, err
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("islockclient: rpc error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}

	for _, entry := range parsed.Result {
		if entry.TxID == txid && entry.Hex != "" {
			return codec.DecodeHex(entry.Hex)
		}
	}
	return nil, nil
}
