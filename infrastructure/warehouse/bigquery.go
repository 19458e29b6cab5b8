package warehouse

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
)

// SKU groupings carried over from the merchandising team's reporting sheet.
const (
	grossSKUs = "'1','6','6-k','100','200','300','301','400','401','7','303'"
	unitSKUs  = "'1','6','100','200','300','301','303','400','401','7','302'"
	kidsSKUs  = "'7','400','401'"
)

// BigQuerySales executes the weekly sales aggregation on BigQuery.
type BigQuerySales struct {
	cfg config.Warehouse
}

func NewBigQuerySales(cfg config.Warehouse) *BigQuerySales {
	return &BigQuerySales{cfg: cfg}
}

type weekAggregates struct {
	WeekLabel   string  `bigquery:"week_label"`
	GrossSales  float64 `bigquery:"gross_sales"`
	KidsRevenue float64 `bigquery:"kids_revenue"`
	KidsUnits   float64 `bigquery:"kids_units"`
	GrossUnits  float64 `bigquery:"gross_units"`
}

// WeeklySales aggregates the Shopify line items table over two one-week
// windows and derives the comparison metrics locally, so the safe-division
// rules live in one tested place instead of warehouse SQL.
func (b *BigQuerySales) WeeklySales(ctx context.Context, targetMonday time.Time) ([]domain.SalesMetric, error) {
	if b.cfg.ProjectID == "" {
		return nil, errors.New("warehouse project not configured")
	}

	client, err := bigquery.NewClient(ctx, b.cfg.ProjectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bigquery client")
	}
	defer client.Close()

	week1Start := targetMonday
	week1End := targetMonday.AddDate(0, 0, 6)
	week2Start := targetMonday.AddDate(0, 0, -7)
	week2End := targetMonday.AddDate(0, 0, -1)

	logrus.WithFields(logrus.Fields{
		"week1_start": week1Start.Format(time.DateOnly),
		"week2_start": week2Start.Format(time.DateOnly),
	}).Info("warehouse: running weekly sales query")

	query := client.Query(fmt.Sprintf(`
		SELECT
			week_label,
			SUM(CASE WHEN lineitem_sku IN (%s) THEN lineitem_price * lineitem_quantity ELSE 0 END) AS gross_sales,
			SUM(CASE WHEN lineitem_sku IN (%s) THEN lineitem_price * lineitem_quantity ELSE 0 END) AS kids_revenue,
			SUM(CASE WHEN lineitem_sku IN (%s) THEN lineitem_quantity ELSE 0 END) AS kids_units,
			SUM(CASE WHEN lineitem_sku IN (%s) THEN lineitem_quantity ELSE 0 END) AS gross_units
		FROM (
			SELECT *,
				CASE
					WHEN DATE(created_at) BETWEEN @week1_start AND @week1_end THEN 'w1'
					WHEN DATE(created_at) BETWEEN @week2_start AND @week2_end THEN 'w2'
				END AS week_label
			FROM `+"`%s.%s`"+`
		)
		WHERE week_label IS NOT NULL
		GROUP BY week_label
	`, grossSKUs, kidsSKUs, kidsSKUs, unitSKUs, b.cfg.Dataset, b.cfg.Table))

	query.Parameters = []bigquery.QueryParameter{
		{Name: "week1_start", Value: week1Start.Format(time.DateOnly)},
		{Name: "week1_end", Value: week1End.Format(time.DateOnly)},
		{Name: "week2_start", Value: week2Start.Format(time.DateOnly)},
		{Name: "week2_end", Value: week2End.Format(time.DateOnly)},
	}

	it, err := query.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "weekly sales query failed")
	}

	var week1, week2 weekAggregates
	for {
		var row weekAggregates
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read query row")
		}

		switch row.WeekLabel {
		case "w1":
			week1 = row
		case "w2":
			week2 = row
		}
	}

	return BuildMetrics(week1Start, week1, week2), nil
}
