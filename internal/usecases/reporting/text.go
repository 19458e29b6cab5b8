package reporting

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/daylightco/finops-reporter/pkg/utils"
)

// The renderers below produce the deterministic numeric summaries handed to
// the narrative generator. Everything the prose claims must be derivable
// from these tables; the generator only adds wording.

func spendSummaryText(summary domain.SpendSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total Spend: %s\n\n", utils.FormatCurrency(summary.TotalSpend))

	b.WriteString("Top 5 Vendors:\n")
	for _, vendor := range summary.TopVendors {
		fmt.Fprintf(&b, "  %-40s %s\n", vendor.Vendor, utils.FormatCurrency(vendor.Amount))
	}

	b.WriteString("\nSpend by Source:\n")
	for _, source := range summary.SpendBySource {
		fmt.Fprintf(&b, "  %-10s %s\n", source.Source, utils.FormatCurrency(source.Amount))
	}

	fmt.Fprintf(&b, "\nDetailed Transaction List (Top %d by size):\n", len(summary.LargestTxns))
	for _, txn := range summary.LargestTxns {
		fmt.Fprintf(&b, "  %s  %-40s %-20s %-10s %s\n",
			txn.Date, txn.Description, txn.Category, txn.Source, utils.FormatCurrency(txn.Amount))
	}

	return b.String()
}

func spendPrompt(summary domain.SpendSummary) string {
	return `You are a CFO / Financial Analyst.
Analyze the following spend data for the company.

` + spendSummaryText(summary) + `

Write a Weekly Spend Report email.
1. **Executive Summary**: Total spend and biggest drivers.
2. **Anomalies**: Point out any unusually large or suspicious transactions.
3. **Category Breakdown**: Where is the money going?

**Format as HTML**. Use <h2> for sections, tables for data where appropriate.`
}

func diffTableText(rows []domain.DiffRow) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %-30s %15s %18s  %s\n", "Item", "Current Stock", "Sales (This Week)", "Runway (Est)")
	for _, row := range rows {
		fmt.Fprintf(&b, "  %-30s %15.0f %18.0f  %s\n", row.Item, row.CurrentQty, row.WeeklySales, row.RunwayLabel)
	}

	return b.String()
}

func inventoryPrompt(rows []domain.DiffRow) string {
	return `You are an inventory and supply chain expert.
Analyze the following inventory change data (Previous Week vs Current Week).

Inventory Comparison:
` + diffTableText(rows) + `

Please write a professional Executive Summary report for my boss.
Include the following sections:
1. **Burn Rate Overview**: Which items are selling fastest?
2. **Stock Runway**: Highlight items that will run out in less than 4 weeks.
3. **Reorder Recommendations**: Give specific "Order Now" recommendations for low-runway items.
4. **Stagnant Items**: Note items with 0 sales this week.

**Format as HTML**. Use <h3> for headers, <ul>/<li> for lists, and <b> for emphasis.
Use a <table> for the Item Summary.
Keep it professional, concise, and actionable.`
}

func salesTableText(metrics []domain.SalesMetric) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %-28s %16s %16s %12s\n", "Metric", "Week 1", "Week 2", "Change")
	for _, metric := range metrics {
		fmt.Fprintf(&b, "  %-28s %16s %16s %12s\n", metric.Metric, metric.Week1, metric.Week2, metric.PctChange)
	}

	return b.String()
}

func salesPrompt(metrics []domain.SalesMetric) string {
	return `You are a retail sales analyst.
Analyze the following week-over-week sales summary (target week vs the week before).

` + salesTableText(metrics) + `

Write a Weekly Sales Summary email.
1. **Headline**: How did the week go overall?
2. **Drivers**: Which metrics moved the most and why might that be?
3. **Watch Items**: Anything trending the wrong way.

**Format as HTML**. Use <h2> for sections and a <table> for the metric summary.`
}

func ledgerCSV(ledger domain.Ledger) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Date", "Description", "Amount", "Category", "Source"}); err != nil {
		return nil, err
	}

	for _, txn := range ledger {
		record := []string{
			txn.Date,
			txn.Description,
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
			txn.Category,
			string(txn.Source),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func salesCSV(metrics []domain.SalesMetric) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Metric", "Week 1", "Week 2", "Change"}); err != nil {
		return nil, err
	}

	for _, metric := range metrics {
		if err := writer.Write([]string{metric.Metric, metric.Week1, metric.Week2, metric.PctChange}); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}
