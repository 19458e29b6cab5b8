package utils

import "time"

// LastMonday returns the most recent Monday on or before the given day,
// truncated to midnight. Used to anchor the weekly sales windows.
func LastMonday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// time.Weekday has Sunday as 0; shift so Monday subtracts zero days.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
