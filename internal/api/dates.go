package api

import "time"

// dateLayout is the calendar-date format expected by the analytics endpoint.
const dateLayout = "2006-01-02"

// FormatDate renders t as a zero-padded local calendar date (YYYY-MM-DD)
// without any time or zone component.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(dateLayout)
}
