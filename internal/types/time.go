package types

import "time"

// StartOfMonth truncates t to midnight UTC on the first day of its month
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthWindow returns the first instant of each of the n months ending with
// the month containing end, oldest first
func MonthWindow(end time.Time, n int) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}
	last := StartOfMonth(end)
	months := make([]time.Time, n)
	for i := 0; i < n; i++ {
		months[i] = last.AddDate(0, i-(n-1), 0)
	}
	return months
}

// MonthLabel formats a month bucket as its short name, e.g. "Jan"
func MonthLabel(t time.Time) string {
	return t.Format("Jan")
}
