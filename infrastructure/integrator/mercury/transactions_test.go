package mercury

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

func TestFetchTransactions_Normalize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "500", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.URL.Query().Get("start"))

		fmt.Fprint(w, `{
			"transactions": [
				{"postedAt": "2025-08-01T10:30:00Z", "bankDescription": "GUSTO PAYROLL", "amount": -9000, "kind": "externalTransfer"},
				{"postedAt": "2025-08-02T08:00:00Z", "bankDescription": "Customer payment", "amount": 5000, "kind": "incomingDomesticWire"},
				{"createdAt": "2025-08-03T12:00:00Z", "note": "Office rent", "amount": "-2500.00", "kind": ""},
				{"postedAt": "2025-08-04T09:00:00Z", "bankDescription": "", "note": "", "amount": -10, "kind": "cardTransaction"}
			]
		}`)
	}))
	defer server.Close()

	client := NewClient(config.Mercury{URL: server.URL, APIKey: "test-key"})
	rows, err := client.FetchTransactions(context.Background(), 30)

	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Outflow sign is flipped, timestamp reduced to the date part
	assert.Equal(t, "2025-08-01", rows[0].Date)
	assert.Equal(t, "GUSTO PAYROLL", rows[0].Description)
	assert.Equal(t, 9000.0, rows[0].Amount)
	assert.Equal(t, "externalTransfer", rows[0].Category)
	assert.Equal(t, domain.SourceMercury, rows[0].Source)

	// createdAt and note are the fallbacks, string amounts parse
	assert.Equal(t, "2025-08-03", rows[1].Date)
	assert.Equal(t, "Office rent", rows[1].Description)
	assert.Equal(t, 2500.0, rows[1].Amount)
	assert.Equal(t, domain.UncategorizedCategory, rows[1].Category)

	assert.Equal(t, domain.UnknownDescription, rows[2].Description)
}

func TestFetchTransactions_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(config.Mercury{URL: server.URL, APIKey: "test-key"})
	rows, err := client.FetchTransactions(context.Background(), 30)

	assert.Error(t, err)
	assert.Empty(t, rows)
}

func TestFetchTransactions_SkipsWithoutAPIKey(t *testing.T) {
	client := NewClient(config.Mercury{URL: "http://unused"})

	rows, err := client.FetchTransactions(context.Background(), 30)

	assert.NoError(t, err)
	assert.Empty(t, rows)
}
