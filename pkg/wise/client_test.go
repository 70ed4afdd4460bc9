package wise

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/centavo/centavo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *ClientImpl {
	return NewClient(config.Wise{
		APIKey:    "test-key",
		ProfileID: "12345",
		BaseURL:   serverURL,
		Timeout:   5,
	}, "MXN")
}

func TestClientImpl_FetchTransactions(t *testing.T) {
	// given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/profiles/12345/activities", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"activities": [
				{"id": "a1", "primaryAmount": "12.50 MXN", "title": " Tacos El Paisa ", "createdOn": "2024-03-05T10:00:00Z"},
				{"id": "a2", "primaryAmount": "5.00 USD", "title": "", "createdOn": "2024-03-06T10:00:00Z"},
				{"id": "", "primaryAmount": "8.00 MXN", "title": "missing id", "createdOn": "2024-03-06T10:00:00Z"},
				{"id": "a3", "title": "missing amount", "createdOn": "2024-03-06T10:00:00Z"}
			]
		}`))
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	// when
	transactions, err := client.FetchTransactions(context.Background())

	// then
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, Transaction{ID: "a1", Amount: "12.50 MXN", Title: "Tacos El Paisa", CreatedOn: "2024-03-05T10:00:00Z"}, transactions[0])
	assert.Equal(t, "No Title", transactions[1].Title)
}

func TestClientImpl_FetchTransactions_TransportFailure(t *testing.T) {
	// given a server that is already gone
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(server.URL)
	server.Close()

	// when
	_, err := client.FetchTransactions(context.Background())

	// then
	assert.Error(t, err)
}

func TestClientImpl_FetchTransactions_AuthFailure(t *testing.T) {
	// given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	// when
	_, err := client.FetchTransactions(context.Background())

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestClientImpl_FetchBalance(t *testing.T) {
	// given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/profiles/12345/balances", r.URL.Path)
		assert.Equal(t, "STANDARD", r.URL.Query().Get("types"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"currency": "EUR", "amount": {"value": 90.10}},
			{"currency": "MXN", "amount": {"value": 1250.75}}
		]`))
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	// when
	balance, err := client.FetchBalance(context.Background())

	// then
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, 1250.75, *balance)
}

func TestClientImpl_FetchBalance_NoDefaultCurrencyBalance(t *testing.T) {
	// given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"currency": "EUR", "amount": {"value": 90.10}}]`))
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	// when
	balance, err := client.FetchBalance(context.Background())

	// then
	require.NoError(t, err)
	assert.Nil(t, balance)
}
