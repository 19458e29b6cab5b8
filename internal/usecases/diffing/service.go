package diffing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/sirupsen/logrus"
)

// ColumnHeuristic picks the item-identifier and quantity column indices out
// of a snapshot header row. It is injectable so an explicit override can
// replace the name-matching default without touching the diff algorithm.
type ColumnHeuristic func(headers []string) (itemIdx, qtyIdx int)

// DefaultColumnHeuristic matches fulfillment-provider naming conventions:
// the item column is the first header containing "item" or "sku", the
// quantity column the first containing "hand", "qty" or "available". This is
// best-effort by design; adversarial headers can mis-select and that is an
// accepted limitation. Fallbacks are the first and last column.
func DefaultColumnHeuristic(headers []string) (int, int) {
	itemIdx := 0
	for i, header := range headers {
		lower := strings.ToLower(header)
		if strings.Contains(lower, "item") || strings.Contains(lower, "sku") {
			itemIdx = i
			break
		}
	}

	qtyIdx := len(headers) - 1
	for i, header := range headers {
		lower := strings.ToLower(header)
		if strings.Contains(lower, "hand") || strings.Contains(lower, "qty") || strings.Contains(lower, "available") {
			qtyIdx = i
			break
		}
	}

	return itemIdx, qtyIdx
}

// Differ compares two time-separated inventory snapshots.
type Differ interface {
	Diff(previous, current domain.Snapshot) []domain.DiffRow
}

type Service struct {
	pickColumns ColumnHeuristic
}

func NewService() *Service {
	return &Service{pickColumns: DefaultColumnHeuristic}
}

// WithHeuristic swaps the column-inference strategy.
func (s *Service) WithHeuristic(heuristic ColumnHeuristic) *Service {
	s.pickColumns = heuristic
	return s
}

// Diff inner-joins the two snapshots on the inferred item column and derives
// weekly sales and runway per item. Items present in only one snapshot are
// silently excluded: without a join partner no velocity can be computed.
// Row order follows the previous snapshot, matching how the comparison is
// read ("what did we have, what is left").
func (s *Service) Diff(previous, current domain.Snapshot) []domain.DiffRow {
	if len(previous.Headers) == 0 || len(current.Headers) == 0 {
		logrus.Warn("diff: snapshot without headers, nothing to compare")
		return []domain.DiffRow{}
	}

	prevItemIdx, prevQtyIdx := s.pickColumns(previous.Headers)
	currItemIdx, currQtyIdx := s.pickColumns(current.Headers)

	logrus.WithFields(logrus.Fields{
		"item_column": current.Headers[currItemIdx],
		"qty_column":  current.Headers[currQtyIdx],
	}).Info("diff: inferred snapshot columns")

	currentQty := make(map[string]float64, len(current.Records))
	for _, record := range current.Records {
		item, qty, ok := readRecord(record, currItemIdx, currQtyIdx)
		if !ok {
			continue
		}
		currentQty[item] = qty
	}

	rows := make([]domain.DiffRow, 0, len(previous.Records))

	for _, record := range previous.Records {
		item, prevQty, ok := readRecord(record, prevItemIdx, prevQtyIdx)
		if !ok {
			continue
		}

		currQty, found := currentQty[item]
		if !found {
			continue
		}

		// A restock shows up as a quantity increase; that is zero sales for
		// the period, never negative burn.
		weeklySales := prevQty - currQty
		if weeklySales < 0 {
			weeklySales = 0
		}

		rows = append(rows, domain.DiffRow{
			Item:        item,
			PreviousQty: prevQty,
			CurrentQty:  currQty,
			WeeklySales: weeklySales,
			RunwayLabel: runwayLabel(currQty, weeklySales),
		})
	}

	return rows
}

// runwayLabel estimates weeks of stock left at the current burn rate. Zero
// sales means the division never happens and the sentinel is returned.
func runwayLabel(currentQty, weeklySales float64) string {
	if weeklySales <= 0 {
		return domain.NoSalesRunway
	}
	return fmt.Sprintf("%.1f weeks", currentQty/weeklySales)
}

// readRecord extracts the item key and quantity from one CSV record. Rows
// that are too short or carry a non-numeric quantity (vendor summary lines,
// usually) are skipped.
func readRecord(record []string, itemIdx, qtyIdx int) (string, float64, bool) {
	if itemIdx >= len(record) || qtyIdx >= len(record) {
		return "", 0, false
	}

	item := strings.TrimSpace(record[itemIdx])
	if item == "" {
		return "", 0, false
	}

	qty, err := strconv.ParseFloat(strings.TrimSpace(record[qtyIdx]), 64)
	if err != nil {
		return "", 0, false
	}

	return item, qty, true
}
