package summarizing

import (
	"sort"

	"github.com/daylightco/finops-reporter/internal/domain"
)

const (
	topVendorCount  = 5
	largestTxnCount = 50
)

// Reducer condenses the unified ledger into the small numeric summary handed
// to the narrative generator. Pure aggregation, no side effects.
type Reducer interface {
	Summarize(ledger domain.Ledger) domain.SpendSummary
}

type Service struct{}

func NewService() Reducer {
	return &Service{}
}

// Summarize computes total spend, the top vendors by summed spend and the
// per-source breakdown. Grouping plus summation is commutative, so the
// result does not depend on row ordering except for tie-breaks, which follow
// first-seen grouping order.
func (s *Service) Summarize(ledger domain.Ledger) domain.SpendSummary {
	summary := domain.SpendSummary{
		TotalSpend:    ledger.Total(),
		TopVendors:    topVendors(ledger),
		SpendBySource: spendBySource(ledger),
		LargestTxns:   largestTransactions(ledger),
	}

	return summary
}

func topVendors(ledger domain.Ledger) []domain.VendorSpend {
	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, txn := range ledger {
		if _, seen := totals[txn.Description]; !seen {
			order = append(order, txn.Description)
		}
		totals[txn.Description] += txn.Amount
	}

	vendors := make([]domain.VendorSpend, 0, len(order))
	for _, vendor := range order {
		vendors = append(vendors, domain.VendorSpend{Vendor: vendor, Amount: totals[vendor]})
	}

	sort.SliceStable(vendors, func(i, j int) bool {
		return vendors[i].Amount > vendors[j].Amount
	})

	if len(vendors) > topVendorCount {
		vendors = vendors[:topVendorCount]
	}

	return vendors
}

func spendBySource(ledger domain.Ledger) []domain.SourceSpend {
	totals := make(map[domain.Source]float64)
	order := make([]domain.Source, 0)

	for _, txn := range ledger {
		if _, seen := totals[txn.Source]; !seen {
			order = append(order, txn.Source)
		}
		totals[txn.Source] += txn.Amount
	}

	sources := make([]domain.SourceSpend, 0, len(order))
	for _, source := range order {
		sources = append(sources, domain.SourceSpend{Source: source, Amount: totals[source]})
	}

	return sources
}

// largestTransactions keeps the narrative input bounded: only the biggest
// rows travel to the generator, the full ledger goes out as a CSV attachment.
func largestTransactions(ledger domain.Ledger) []domain.Transaction {
	sorted := make(domain.Ledger, len(ledger))
	copy(sorted, ledger)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})

	if len(sorted) > largestTxnCount {
		sorted = sorted[:largestTxnCount]
	}

	return sorted
}
