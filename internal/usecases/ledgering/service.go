package ledgering

import (
	"context"
	"errors"

	"github.com/daylightco/finops-reporter/infrastructure/integrator"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/sirupsen/logrus"
)

// ErrNoData is returned when every configured source produced zero rows, so
// callers can distinguish "nothing to report" from an empty-but-valid run.
var ErrNoData = errors.New("no data from any source")

// Aggregator builds the unified ledger from all source adapters.
type Aggregator interface {
	Collect(ctx context.Context, daysBack int) (domain.Ledger, error)
}

type Service struct {
	adapters []integrator.SourceAdapter
}

func NewService(adapters ...integrator.SourceAdapter) Aggregator {
	return &Service{adapters: adapters}
}

// Collect fetches every source in input order and concatenates the results.
// A failing adapter contributes zero rows and never blocks its siblings; the
// aggregation itself only fails when no source returned anything.
func (s *Service) Collect(ctx context.Context, daysBack int) (domain.Ledger, error) {
	ledger := make(domain.Ledger, 0)

	for _, adapter := range s.adapters {
		rows, err := adapter.FetchTransactions(ctx, daysBack)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"source": adapter.Name(),
				"error":  err.Error(),
			}).Warn("ledger: source failed, continuing with remaining sources")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"source": adapter.Name(),
			"rows":   len(rows),
		}).Debug("ledger: source collected")

		ledger = append(ledger, rows...)
	}

	if len(ledger) == 0 {
		return ledger, ErrNoData
	}

	return ledger, nil
}
