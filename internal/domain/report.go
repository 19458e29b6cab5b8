package domain

// ReportKind names the three scheduled report pipelines.
type ReportKind string

const (
	ReportKindSpend     ReportKind = "spend"
	ReportKindInventory ReportKind = "inventory"
	ReportKindSales     ReportKind = "sales"
)

// Attachment is a file delivered alongside a report email.
type Attachment struct {
	Filename string
	Content  []byte
}

// VendorSpend is one row of the top-vendors breakdown.
type VendorSpend struct {
	Vendor string
	Amount float64
}

// SourceSpend is one row of the spend-by-source breakdown.
type SourceSpend struct {
	Source Source
	Amount float64
}

// SpendSummary is the locally computed reduction of the unified ledger that
// bounds what gets handed to the narrative generator.
type SpendSummary struct {
	TotalSpend    float64
	TopVendors    []VendorSpend
	SpendBySource []SourceSpend
	LargestTxns   []Transaction
}

// SalesMetric is one metric line of the week-over-week sales comparison.
// PctChange carries "N/A" when the comparison week divides by zero.
type SalesMetric struct {
	Metric    string
	Week1     string
	Week2     string
	PctChange string
}
