package brex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/integrator"
	"github.com/daylightco/finops-reporter/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errNonSuccessStatus marks a page request that came back with a non-2xx
// status. Rows decoded from earlier pages are still trustworthy then, unlike
// after a transport or decode failure.
var errNonSuccessStatus = errors.New("non-success status")

func (c *Client) Name() domain.Source {
	return domain.SourceBrex
}

// FetchTransactions pulls primary card transactions posted in the last
// daysBack days and normalizes them into canonical rows.
//
// Brex pages with an opaque cursor: each response may carry a next_cursor
// which is merged into the query parameters of the next request while the
// original filters are kept. A non-2xx status mid-pagination stops the loop
// and keeps the pages already fetched; a transport or decode failure on any
// page aborts the whole fetch because partially decoded state cannot be
// trusted.
func (c *Client) FetchTransactions(ctx context.Context, daysBack int) ([]domain.Transaction, error) {
	if c.cfg.APIKey == "" {
		logrus.Warn("brex: no API key provided, skipping source")
		return []domain.Transaction{}, nil
	}

	postedAtStart := time.Now().AddDate(0, 0, -daysBack).Format(time.RFC3339)

	params := url.Values{}
	params.Set("posted_at_start", postedAtStart)
	params.Set("limit", "100")

	logrus.WithField("posted_at_start", postedAtStart).Info("brex: fetching card transactions")

	var items []cardTransaction

	for {
		page, err := c.fetchPage(ctx, params)
		if err != nil {
			if errors.Is(err, errNonSuccessStatus) && len(items) > 0 {
				// Availability over completeness: a late page refused by the
				// server must not discard the pages already fetched.
				logrus.WithError(err).Warn("brex: pagination aborted, keeping partial results")
				break
			}
			logrus.WithError(err).Error("brex: fetch failed")
			return []domain.Transaction{}, err
		}

		items = append(items, page.Items...)

		if page.NextCursor == "" {
			break
		}
		params.Set("cursor", page.NextCursor)
	}

	return c.normalize(items), nil
}

func (c *Client) fetchPage(ctx context.Context, params url.Values) (*transactionsPage, error) {
	endpoint := fmt.Sprintf("%s/transactions/card/primary?%s", c.cfg.URL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: brex responded %d: %s", errNonSuccessStatus, resp.StatusCode, string(body))
	}

	var page transactionsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &page, nil
}

// normalize maps Brex rows onto the canonical model. Brex encodes spend as
// positive amounts; refunds and card payments come back negative and are
// dropped as inflows.
func (c *Client) normalize(items []cardTransaction) []domain.Transaction {
	normalized := make([]domain.Transaction, 0, len(items))

	for _, item := range items {
		amount, ok := integrator.CoerceAmount(domain.SourceBrex, item.Amount.Amount)
		if ok && amount < 0 {
			continue // refund or card payment, not spend
		}

		description := item.Description
		if description == "" {
			description = domain.UnknownDescription
		}

		category := domain.UncategorizedCategory
		if item.Merchant != nil && item.Merchant.MccDescription != "" {
			category = item.Merchant.MccDescription
		}

		normalized = append(normalized, domain.Transaction{
			Date:        item.PostedAtDate,
			Description: description,
			Amount:      amount,
			Category:    category,
			Source:      domain.SourceBrex,
		})
	}

	return normalized
}
