package rippling

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/expenses", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		fmt.Fprint(w, `{
			"results": [
				{"date": "2025-08-01", "merchant": "Delta Airlines", "amount": 450.30, "expense_type": "Travel"},
				{"date": "2025-08-02", "merchant": "", "amount": 25, "expense_type": ""},
				{"date": "2025-08-03", "merchant": "Correction", "amount": -10, "expense_type": "Travel"}
			]
		}`)
	}))
	defer server.Close()

	client := NewClient(config.Rippling{URL: server.URL, APIKey: "test-key"})
	rows, err := client.FetchTransactions(context.Background(), 30)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Delta Airlines", rows[0].Description)
	assert.Equal(t, 450.30, rows[0].Amount)
	assert.Equal(t, "Travel", rows[0].Category)
	assert.Equal(t, domain.SourceRippling, rows[0].Source)

	assert.Equal(t, domain.UnknownDescription, rows[1].Description)
	assert.Equal(t, domain.UncategorizedCategory, rows[1].Category)
}

func TestFetchTransactions_EndpointNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(config.Rippling{URL: server.URL, APIKey: "test-key"})
	rows, err := client.FetchTransactions(context.Background(), 30)

	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchTransactions_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(config.Rippling{URL: server.URL, APIKey: "test-key"})
	rows, err := client.FetchTransactions(context.Background(), 30)

	assert.Error(t, err)
	assert.Empty(t, rows)
}

func TestFetchTransactions_SkipsWithoutAPIKey(t *testing.T) {
	client := NewClient(config.Rippling{URL: "http://unused"})

	rows, err := client.FetchTransactions(context.Background(), 30)

	assert.NoError(t, err)
	assert.Empty(t, rows)
}
