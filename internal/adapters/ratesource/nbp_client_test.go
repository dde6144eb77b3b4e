package ratesource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNBPClient_FetchRates(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `[{
		"table": "A",
		"no": "052/A/NBP/2024",
		"effectiveDate": "2024-03-15",
		"rates": [
			{"currency": "euro", "code": "EUR", "mid": 4.3012},
			{"currency": "dolar amerykański", "code": "usd", "mid": "3.9876"},
			{"currency": "suspended", "code": "XXX", "mid": 0},
			{"currency": "nameless", "code": "", "mid": 1.5}
		]
	}]`)

	rates, err := NewNBPClient(srv.URL).FetchRates(context.Background())
	require.NoError(t, err)

	assert.Len(t, rates, 3)
	assert.True(t, rates["EUR"].Equal(decimal.RequireFromString("4.3012")))
	assert.True(t, rates["USD"].Equal(decimal.RequireFromString("3.9876")))
	assert.True(t, rates["XXX"].IsZero())
}

func TestNBPClient_SkipsUnreadableQuotes(t *testing.T) {
	rates, err := parseTables([]byte(`[{"rates": [
		{"code": "EUR", "mid": 4.3},
		{"code": "XAU", "mid": "n/a"},
		{"code": "USD", "mid": true},
		{"code": "GBP", "mid": {}},
		{"code": "CHF", "mid": null},
		{"code": "JPY"}
	]}]`))
	require.NoError(t, err)

	assert.Len(t, rates, 1)
	assert.True(t, rates["EUR"].Equal(decimal.RequireFromString("4.3")))
}

func TestNBPClient_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: `oops`},
		{name: "empty array", status: http.StatusOK, body: `[]`, malformed: true},
		{name: "not json", status: http.StatusOK, body: `<html>`, malformed: true},
		{name: "no usable rates", status: http.StatusOK, body: `[{"rates": []}]`, malformed: true},
		{name: "only unreadable quotes", status: http.StatusOK, body: `[{"rates": [{"code": "XAU", "mid": "n/a"}]}]`, malformed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveJSON(t, tt.status, tt.body)

			_, err := NewNBPClient(srv.URL).FetchRates(context.Background())
			require.Error(t, err)
			if tt.malformed {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			}
		})
	}
}

func TestNBPClient_RespectsContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewNBPClient(srv.URL, WithHTTPClient(srv.Client())).FetchRates(ctx)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
