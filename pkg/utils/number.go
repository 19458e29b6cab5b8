package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrency renders a dollar amount as "$1,234.56".
func FormatCurrency(amount float64) string {
	negative := amount < 0
	formatted := fmt.Sprintf("%.2f", math.Abs(amount))

	parts := strings.SplitN(formatted, ".", 2)
	integer, fraction := parts[0], parts[1]

	var grouped strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	if negative {
		return "-$" + grouped.String() + "." + fraction
	}
	return "$" + grouped.String() + "." + fraction
}

// PercentChangeLabel computes the week-over-week change as "12.3%". A zero
// comparison value makes the change undefined, which is reported as "N/A"
// instead of dividing by zero.
func PercentChangeLabel(current, previous float64) string {
	if previous == 0 {
		return "N/A"
	}

	change := (current - previous) / previous * 100
	return fmt.Sprintf("%.1f%%", change)
}
