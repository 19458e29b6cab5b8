package integrator

import (
	"context"
	"strconv"

	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/sirupsen/logrus"
)

// SourceAdapter is the uniform fetch-and-normalize contract every vendor
// integration implements. A missing credential is not an error: the adapter
// logs the skip and returns an empty, correctly-typed result so the
// aggregator can proceed with the remaining sources.
//
// Errors are reserved for total fetch failures (first-page transport error,
// undecodable payload). A failure after at least one page has been decoded
// returns the rows accumulated so far with a nil error.
type SourceAdapter interface {
	Name() domain.Source
	FetchTransactions(ctx context.Context, daysBack int) ([]domain.Transaction, error)
}

// CoerceAmount turns whatever the vendor put in its amount field into a
// float64. Unparseable values come back as 0.0 with ok=false rather than
// dropping the row, so totals stay comparable run over run; callers must not
// apply their inflow filters to coerced rows. Zeroing unknown amounts is a
// deliberate policy, logged at warn level so it stays auditable.
func CoerceAmount(source domain.Source, raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return parsed, true
		}
	case nil:
		// fall through to the warn below
	}

	logrus.WithFields(logrus.Fields{
		"source":     source,
		"raw_amount": raw,
	}).Warn("adapter: unparseable amount coerced to zero")

	return 0.0, false
}
