package mercury

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/integrator"
	"github.com/daylightco/finops-reporter/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (c *Client) Name() domain.Source {
	return domain.SourceMercury
}

// FetchTransactions pulls account transactions from the last daysBack days.
// Mercury returns the whole window in a single response, so there is no
// pagination loop here.
func (c *Client) FetchTransactions(ctx context.Context, daysBack int) ([]domain.Transaction, error) {
	if c.cfg.APIKey == "" {
		logrus.Warn("mercury: no API key provided, skipping source")
		return []domain.Transaction{}, nil
	}

	start := time.Now().AddDate(0, 0, -daysBack).Format(time.RFC3339)

	params := url.Values{}
	params.Set("start", start)
	params.Set("limit", "500")

	endpoint := fmt.Sprintf("%s/transactions?%s", c.cfg.URL, params.Encode())

	logrus.WithField("start", start).Info("mercury: fetching transactions")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return []domain.Transaction{}, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("mercury: request failed")
		return []domain.Transaction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("mercury responded %d: %s", resp.StatusCode, string(body))
		logrus.WithError(err).Error("mercury: fetch failed")
		return []domain.Transaction{}, err
	}

	var response transactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		logrus.WithError(err).Error("mercury: failed to decode response")
		return []domain.Transaction{}, err
	}

	return c.normalize(response.Transactions), nil
}

// normalize maps Mercury rows onto the canonical model. Mercury encodes
// outflows as negative amounts, so deposits (>= 0) are dropped and the sign
// flipped on what remains. Mercury has no merchant categorization; the
// transaction kind is the best available label.
func (c *Client) normalize(items []bankTransaction) []domain.Transaction {
	normalized := make([]domain.Transaction, 0, len(items))

	for _, item := range items {
		amount, ok := integrator.CoerceAmount(domain.SourceMercury, item.Amount)
		if ok && amount >= 0 {
			continue // skip deposits
		}

		dateStr := item.PostedAt
		if dateStr == "" {
			dateStr = item.CreatedAt
		}
		date, _, _ := strings.Cut(dateStr, "T")

		description := item.BankDesc
		if description == "" {
			description = item.Note
		}
		if description == "" {
			description = domain.UnknownDescription
		}

		category := item.Kind
		if category == "" {
			category = domain.UncategorizedCategory
		}

		normalized = append(normalized, domain.Transaction{
			Date:        date,
			Description: description,
			Amount:      math.Abs(amount),
			Category:    category,
			Source:      domain.SourceMercury,
		})
	}

	return normalized
}
