package insightclient

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

type utxoFixture struct {
	TxID         string `json:"txid"`
	Vout         uint32 `json:"vout"`
	Satoshis     int64  `json:"satoshis"`
	ScriptPubKey string `json:"scriptPubKey"`
}

func TestWaitForUTXOTimesOutThenSucceedsOnRecheck(t *testing.T) {
	var empty atomic.Bool
	empty.Store(true)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if empty.Load() {
			_ = json.NewEncoder(w).Encode([]utxoFixture{})
			return
		}
		_ = json.NewEncoder(w).Encode([]utxoFixture{{TxID: "abc", Vout: 0, Satoshis: 500_000, ScriptPubKey: "76a91400000000000000000000000000000000000000ff88ac"}})
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})

	result, err := c.WaitForUTXO(context.Background(), "addr", 300_000, 300*time.Millisecond, 50*time.Millisecond, nil)
	require.NoError(t, err)
	assert.True(t, result.TimedOut)
	assert.Nil(t, result.UTXO)

	empty.Store(false)

	result, err = c.WaitForUTXO(context.Background(), "addr", 300_000, 2*time.Second, 50*time.Millisecond, nil)
	require.NoError(t, err)
	assert.False(t, result.TimedOut)
	require.NotNil(t, result.UTXO)
	assert.Equal(t, int64(500_000), result.UTXO.Value)
}

func TestWaitForUTXOSelectsLargestSufficientUTXO(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]utxoFixture{
			{TxID: "a", Satoshis: 100_000, ScriptPubKey: "6a00"},
			{TxID: "b", Satoshis: 400_000, ScriptPubKey: "6a00"},
			{TxID: "c", Satoshis: 900_000, ScriptPubKey: "6a00"},
		})
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	result, err := c.WaitForUTXO(context.Background(), "addr", 300_000, time.Second, 10*time.Millisecond, nil)
	require.NoError(t, err)
	require.NotNil(t, result.UTXO)
	assert.Equal(t, "b", result.UTXO.TxID)
}

func TestBroadcastReturnsTxID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(BroadcastResponse{TxID: "deadbeef"})
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	txid, err := c.Broadcast(context.Background(), "0100")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", txid)
}

func TestBroadcastSurfacesNetworkErrorOnNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("already in mempool"))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	_, err := c.Broadcast(context.Background(), "0100")
	require.Error(t, err)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusConflict, netErr.StatusCode)
}
