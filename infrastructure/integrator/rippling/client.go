package rippling

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/integrator"
	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/daylightco/finops-reporter/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client fetches employee expense reimbursements from the Rippling platform
// API. The /expenses endpoint has not been confirmed against their partner
// docs; until it is, any error (404 included) yields an empty result and the
// run carries on with the other sources.
type Client struct {
	httpClient *http.Client
	cfg        config.Rippling
}

func NewClient(cfg config.Rippling) integrator.SourceAdapter {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg: cfg,
	}
}

type expense struct {
	Date        string      `json:"date"`
	Merchant    string      `json:"merchant"`
	Amount      interface{} `json:"amount"`
	ExpenseType string      `json:"expense_type"`
}

type expensesResponse struct {
	Results []expense `json:"results"`
}

func (c *Client) Name() domain.Source {
	return domain.SourceRippling
}

// FetchTransactions pulls reimbursed expenses. Rippling exposes no date
// window on this endpoint, so daysBack is accepted for contract uniformity
// and intentionally unused.
func (c *Client) FetchTransactions(ctx context.Context, daysBack int) ([]domain.Transaction, error) {
	if c.cfg.APIKey == "" {
		logrus.Warn("rippling: no API key provided, skipping source")
		return []domain.Transaction{}, nil
	}

	endpoint := fmt.Sprintf("%s/expenses", c.cfg.URL)

	logrus.Info("rippling: fetching expenses")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return []domain.Transaction{}, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("rippling: request failed")
		return []domain.Transaction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logrus.Warn("rippling: /expenses endpoint not found, verify the endpoint in the API docs")
		return []domain.Transaction{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("rippling responded %d: %s", resp.StatusCode, string(body))
		logrus.WithError(err).Error("rippling: fetch failed")
		return []domain.Transaction{}, err
	}

	var response expensesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		logrus.WithError(err).Error("rippling: failed to decode response")
		return []domain.Transaction{}, err
	}

	return c.normalize(response.Results), nil
}

// normalize maps Rippling expenses onto the canonical model. Reimbursements
// are always money out, so amounts pass through with no sign handling.
func (c *Client) normalize(items []expense) []domain.Transaction {
	normalized := make([]domain.Transaction, 0, len(items))

	for _, item := range items {
		amount, _ := integrator.CoerceAmount(domain.SourceRippling, item.Amount)
		if amount < 0 {
			continue
		}

		description := item.Merchant
		if description == "" {
			description = domain.UnknownDescription
		}

		category := item.ExpenseType
		if category == "" {
			category = domain.UncategorizedCategory
		}

		normalized = append(normalized, domain.Transaction{
			Date:        item.Date,
			Description: description,
			Amount:      amount,
			Category:    category,
			Source:      domain.SourceRippling,
		})
	}

	return normalized
}
