package warehouse

import (
	"context"
	"time"

	"github.com/daylightco/finops-reporter/internal/domain"
)

// WeeklySalesFetcher runs the fixed weekly sales comparison against the
// analytical warehouse: the week starting at targetMonday versus the week
// before it.
type WeeklySalesFetcher interface {
	WeeklySales(ctx context.Context, targetMonday time.Time) ([]domain.SalesMetric, error)
}
