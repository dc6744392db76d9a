package islockclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForInstantSendLockReturnsOnceAvailable(t *testing.T) {
	var ready atomic.Bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !ready.Load() {
			_ = json.NewEncoder(w).Encode(rpcResponse{Result: []islockEntry{}})
			return
		}
		_ = json.NewEncoder(w).Encode(rpcResponse{Result: []islockEntry{{TxID: "abc", Hex: "deadbeef"}}})
	}))
	defer server.Close()

	c := NewClient(Config{RPCURL: server.URL})

	go func() {
		time.Sleep(100 * time.Millisecond)
		ready.Store(true)
	}()

	lockBytes, err := c.WaitForInstantSendLock(context.Background(), "abc", 2*time.Second, 30*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, lockBytes)
}

func TestWaitForInstantSendLockTimesOutFatally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rpcResponse{Result: []islockEntry{}})
	}))
	defer server.Close()

	c := NewClient(Config{RPCURL: server.URL})

	_, err := c.WaitForInstantSendLock(context.Background(), "abc", 150*time.Millisecond, 30*time.Millisecond)
	require.Error(t, err)
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "abc", timeoutErr.TxID)
}

func TestWaitForInstantSendLockHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rpcResponse{Result: []islockEntry{}})
	}))
	defer server.Close()

	c := NewClient(Config{RPCURL: server.URL})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := c.WaitForInstantSendLock(ctx, "abc", 5*time.Second, 30*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetIgnoresEntriesForOtherTxIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rpcResponse{Result: []islockEntry{{TxID: "other", Hex: "ff"}}})
	}))
	defer server.Close()

	c := NewClient(Config{RPCURL: server.URL})
	lockBytes, err := c.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Nil(t, lockBytes)
}

func TestGetSurfacesTransportErrorOnNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	c := NewClient(Config{RPCURL: server.URL})
	_, err := c.Get(context.Background(), "abc")
	require.Error(t, err)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
}
