package domain

// Source identifies the adapter a transaction came from.
type Source string

const (
	SourceBrex     Source = "Brex"
	SourceMercury  Source = "Mercury"
	SourceRippling Source = "Rippling"
)

// Transaction is the canonical spend record every source adapter must
// produce. Amount is always money out, never negative; inflows are dropped
// at the adapter boundary rather than zeroed.
type Transaction struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Source      Source  `json:"source"`
}

// Fallback labels used by adapters when the vendor omits a field.
const (
	UnknownDescription    = "Unknown"
	UncategorizedCategory = "Uncategorized"
)

// Ledger is the unified transaction table produced by the aggregator.
// Row order follows source input order, not date.
type Ledger []Transaction

// Total returns the summed spend across the ledger.
func (l Ledger) Total() float64 {
	var total float64
	for _, txn := range l {
		total += txn.Amount
	}
	return total
}

// BySource returns the subset of rows originating from the given source.
func (l Ledger) BySource(source Source) Ledger {
	filtered := make(Ledger, 0)
	for _, txn := range l {
		if txn.Source == source {
			filtered = append(filtered, txn)
		}
	}
	return filtered
}
