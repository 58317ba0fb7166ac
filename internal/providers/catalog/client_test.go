package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() *retry.Config {
	return &retry.Config{
		MaxRetries:    2,
		BackoffFactor: 2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
	}
}

func TestClient_Search(t *testing.T) {
	var gotSearch string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listings", r.URL.Path)
		gotSearch = r.URL.Query().Get("search")
		_, _ = w.Write([]byte(`[{"id":1,"store_name":"Erafone Jakarta","listing_title":"Galaxy S24","price_idr":12999000,"stock":3,"item_condition":"Baru"}]`))
	}))
	defer srv.Close()

	c := NewClientWithRetry(srv.URL+"/", time.Second, fastRetry())
	got, err := c.Search(context.Background(), "galaxy s24")
	require.NoError(t, err)

	assert.Equal(t, "galaxy s24", gotSearch)
	require.Len(t, got, 1)
	assert.Equal(t, int64(12999000), got[0].PriceIDR)
	assert.Equal(t, "Erafone Jakarta", got[0].StoreName)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	got, err := NewClientWithRetry(srv.URL, time.Second, fastRetry()).Search(context.Background(), "poco")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad"}`))
	}))
	defer srv.Close()

	_, err := NewClientWithRetry(srv.URL, time.Second, fastRetry()).Search(context.Background(), "x")
	var upErr *core.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusBadRequest, upErr.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClientWithRetry(url, time.Second, fastRetry()).Search(context.Background(), "x")
	assert.ErrorIs(t, err, core.ErrUnavailable)
}
