// Package faucetclient talks to an optional testnet faucet: a status
// probe that may demand a proof-of-work challenge before a core coin
// drip is granted.
package faucetclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/dashpay/asset-lock-bridge/retry"
)

// Config configures one faucet client instance.
type Config struct {
	BaseURL string
}

// Client wraps a testnet faucet's HTTP surface.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient builds a Client. Every request carries a fixed 30s
// timeout per the faucet's abort contract.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: 30 * time.Second}}
}

// StatusResponse mirrors GET /api/status.
type StatusResponse struct {
	Status      string `json:"status"`
	CapEndpoint string `json:"capEndpoint,omitempty"`
}

// RequiresChallenge reports whether a proof-of-work token must be
// solved before /api/core-faucet will accept a request.
func (s *StatusResponse) RequiresChallenge() bool {
	return s.CapEndpoint != ""
}

// Status calls GET /api/status.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/status", nil)
	if err != nil {
		return nil, err
	}
	var resp StatusResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DripResponse is the success shape of POST /api/core-faucet.
type DripResponse struct {
	TxID    string `json:"txid"`
	Amount  int64  `json:"amount"`
	Address string `json:"address"`
}

// RateLimit is returned when the faucet responds 429; RetryAfter is
// the number of seconds the caller should wait before trying again,
// zero if the header/body did not carry one.
type RateLimit struct {
	RetryAfter int
}

func (e *RateLimit) Error() string {
	return fmt.Sprintf("faucetclient: rate limited, retry after %ds", e.RetryAfter)
}

// HTTPStatus implements retry.StatusCoder so a 429 is retried.
func (e *RateLimit) HTTPStatus() (int, bool) { return http.StatusTooManyRequests, true }

// RequestTimedOut wraps a context-deadline or client-timeout abort.
type RequestTimedOut struct {
	Err error
}

func (e *RequestTimedOut) Error() string {
	return fmt.Sprintf("faucetclient: request timed out: %v", e.Err)
}

func (e *RequestTimedOut) Unwrap() error { return e.Err }

// Drip requests coins for address. If the current status demands a
// proof-of-work challenge, it is solved and submitted first. Transient
// transport/5xx/429 failures are retried per retry.DefaultOptions; a
// 429 that survives all attempts is surfaced as *RateLimit.
func (c *Client) Drip(ctx context.Context, address string, amount int64) (*DripResponse, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}

	var capToken string
	if status.RequiresChallenge() {
		token, err := c.solveAndSubmitChallenge(ctx, status.CapEndpoint)
		if err != nil {
			return nil, err
		}
		capToken = token
	}

	body, err := json.Marshal(map[string]interface{}{
		"address":  address,
		"amount":   amount,
		"capToken": capToken,
	})
	if err != nil {
		return nil, err
	}

	resp, err := retry.WithRetry(ctx, func(ctx context.Context) (*DripResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/core-faucet", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		var r DripResponse
		if err := c.do(req, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}, retry.DefaultOptions())
	if err != nil {
		var rl *RateLimit
		if isRateLimit(err, &rl) {
			return nil, rl
		}
		return nil, err
	}
	return resp, nil
}

func isRateLimit(err error, out **RateLimit) bool {
	if rl, ok := err.(*RateLimit); ok {
		*out = rl
		return true
	}
	return false
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return &RequestTimedOut{Err: ctxErr}
		}
		return &transportError{err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &transportError{err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		var body struct {
			RetryAfter int `json:"retryAfter"`
		}
		_ = json.Unmarshal(raw, &body)
		if body.RetryAfter == 0 {
			if hdr := resp.Header.Get("Retry-After"); hdr != "" {
				if secs, err := strconv.Atoi(hdr); err == nil {
					body.RetryAfter = secs
				}
			}
		}
		return &RateLimit{RetryAfter: body.RetryAfter}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &transportError{statusCode: resp.StatusCode, body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.WithError(err).WithField("body", string(raw)).Warn("faucetclient: failed to decode response")
		return err
	}
	return nil
}

// transportError implements retry.StatusCoder/retry.Transient without
// exporting a type the caller has to know about — the faucet's public
// error surface is deliberately just RateLimit and RequestTimedOut.
type transportError struct {
	statusCode int
	body       string
	err        error
}

func (e *transportError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("faucetclient: transport error: %v", e.err)
	}
	return fmt.Sprintf("faucetclient: HTTP %d: %s", e.statusCode, e.body)
}

func (e *transportError) HTTPStatus() (int, bool) { return e.statusCode, e.statusCode != 0 }
func (e *transportError) Transient() bool         { return e.err != nil }

// solveAndSubmitChallenge fetches a challenge from capEndpoint (a path
// such as "/api/cap" is resolved against the configured BaseURL), finds
// a nonce whose sha256(challenge||nonce) hex digest has the demanded
// number of leading zero hex digits, and submits it, returning the
// token the faucet hands back.
func (c *Client) solveAndSubmitChallenge(ctx context.Context, capEndpoint string) (string, error) {
	if strings.HasPrefix(capEndpoint, "/") {
		capEndpoint = c.cfg.BaseURL + capEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, capEndpoint, nil)
	if err != nil {
		return "", err
	}
	var challenge struct {
		Challenge  string `json:"challenge"`
		Difficulty int    `json:"difficulty"`
	}
	if err := c.do(req, &challenge); err != nil {
		return "", err
	}
	if challenge.Difficulty <= 0 {
		challenge.Difficulty = 4
	}

	nonce := solveProofOfWork(ctx, challenge.Challenge, challenge.Difficulty)

	submitBody, err := json.Marshal(map[string]string{
		"challenge": challenge.Challenge,
		"nonce":     nonce,
	})
	if err != nil {
		return "", err
	}
	submitReq, err := http.NewRequestWithContext(ctx, http.MethodPost, capEndpoint, bytes.NewReader(submitBody))
	if err != nil {
		return "", err
	}
	submitReq.Header.Set("Content-Type", "application/json")

	var tokenResp struct {
		Token string `json:"token"`
	}
	if err := c.do(submitReq, &tokenResp); err != nil {
		return "", err
	}
	return tokenResp.Token, nil
}

// solveProofOfWork is a suspension point: it checks ctx between
// batches of hashing so a cancelled session does not spin forever.
func solveProofOfWork(ctx context.Context, challenge string, difficulty int) string {
	prefix := make([]byte, difficulty)
	for i := range prefix {
		prefix[i] = '0'
	}
	target := string(prefix)

	for nonce := 0; ; nonce++ {
		if nonce%4096 == 0 {
			select {
			case <-ctx.Done():
				return ""
			default:
			}
		}
		candidate := challenge + strconv.Itoa(nonce)
		sum := sha256.Sum256([]byte(candidate))
		digest := hex.EncodeToString(sum[:])
		if len(digest) >= difficulty && digest[:difficulty] == target {
			return strconv.Itoa(nonce)
		}
	}
}
