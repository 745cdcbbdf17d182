// Package fiscal implements the US federal fiscal calendar. The fiscal year
// starts October 1; periods are derived from the calendar month, never from
// date addition, so month-end dates cannot overflow into the wrong bucket.
package fiscal

import "time"

// Year returns the federal fiscal year the date falls in.
func Year(t time.Time) int {
	if t.Month() >= time.October {
		return t.Year() + 1
	}
	return t.Year()
}

// Month returns the fiscal month, 1 through 12. October is month 1.
func Month(t time.Time) int {
	return (int(t.Month())+2)%12 + 1
}

// Quarter returns the fiscal quarter, 1 through 4. Q1 starts in October.
func Quarter(t time.Time) int {
	return (Month(t)-1)/3 + 1
}

// YearEnd returns the last day of the given fiscal year.
func YearEnd(fiscalYear int) time.Time {
	return time.Date(fiscalYear, time.September, 30, 0, 0, 0, 0, time.UTC)
}
