package warehouse

import (
	"fmt"
	"time"

	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/daylightco/finops-reporter/pkg/utils"
)

// BuildMetrics turns the two week aggregates into the comparison table the
// narrative generator receives. Week 1 is the target week, week 2 the one
// before it. Percent changes against a zero comparison week come out as
// "N/A" rather than dividing by zero.
func BuildMetrics(week1Start time.Time, week1, week2 weekAggregates) []domain.SalesMetric {
	week1End := week1Start.AddDate(0, 0, 6)
	week2Start := week1Start.AddDate(0, 0, -7)
	week2End := week1Start.AddDate(0, 0, -1)

	metrics := []domain.SalesMetric{
		{
			Metric:    "Target Week (W1)",
			Week1:     week1Start.Format(time.DateOnly),
			Week2:     week1End.Format(time.DateOnly),
			PctChange: "7 days",
		},
		{
			Metric:    "Comp Week (W2)",
			Week1:     week2Start.Format(time.DateOnly),
			Week2:     week2End.Format(time.DateOnly),
			PctChange: "7 days",
		},
		{
			Metric:    "Gross Sales",
			Week1:     utils.FormatCurrency(week1.GrossSales),
			Week2:     utils.FormatCurrency(week2.GrossSales),
			PctChange: utils.PercentChangeLabel(week1.GrossSales, week2.GrossSales),
		},
		{
			Metric:    "Average Daily Sales",
			Week1:     utils.FormatCurrency(week1.GrossSales / 7),
			Week2:     utils.FormatCurrency(week2.GrossSales / 7),
			PctChange: utils.PercentChangeLabel(week1.GrossSales/7, week2.GrossSales/7),
		},
		{
			Metric:    "Kids Revenue",
			Week1:     utils.FormatCurrency(week1.KidsRevenue),
			Week2:     utils.FormatCurrency(week2.KidsRevenue),
			PctChange: utils.PercentChangeLabel(week1.KidsRevenue, week2.KidsRevenue),
		},
		{
			Metric:    "Kids % of Total Revenue",
			Week1:     shareLabel(week1.KidsRevenue, week1.GrossSales),
			Week2:     shareLabel(week2.KidsRevenue, week2.GrossSales),
			PctChange: sharePointsDelta(week1, week2),
		},
		{
			Metric:    "Total Units Sold",
			Week1:     fmt.Sprintf("%.0f", week1.GrossUnits),
			Week2:     fmt.Sprintf("%.0f", week2.GrossUnits),
			PctChange: utils.PercentChangeLabel(week1.GrossUnits, week2.GrossUnits),
		},
		{
			Metric:    "Kids Units Sold",
			Week1:     fmt.Sprintf("%.0f", week1.KidsUnits),
			Week2:     fmt.Sprintf("%.0f", week2.KidsUnits),
			PctChange: utils.PercentChangeLabel(week1.KidsUnits, week2.KidsUnits),
		},
	}

	return metrics
}

func shareLabel(part, whole float64) string {
	if whole == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", part/whole*100)
}

// sharePointsDelta reports the change of the kids share in percentage
// points, which only makes sense when both weeks had revenue.
func sharePointsDelta(week1, week2 weekAggregates) string {
	if week1.GrossSales == 0 || week2.GrossSales == 0 {
		return "N/A"
	}

	delta := week1.KidsRevenue/week1.GrossSales*100 - week2.KidsRevenue/week2.GrossSales*100
	return fmt.Sprintf("%.1f pts", delta)
}
