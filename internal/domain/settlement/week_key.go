package settlement

import (
	"fmt"
	"time"
)

// WeekKeyOf computes the canonical week label for a date, e.g. "2024-W12".
//
// The week number is ceil((dayOfYear + jan1Weekday + 1) / 7), where
// dayOfYear is the 0-based offset from January 1 and jan1Weekday is the
// 0-based weekday of January 1 (0 = Sunday). This is the house rule used
// for fechamento labels since the system's first deployment; it is NOT
// ISO 8601 and callers must not assume ISO week numbers.
func WeekKeyOf(date time.Time) string {
	jan1 := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
	dayOfYear := date.YearDay() - 1
	jan1Weekday := int(jan1.Weekday())

	week := (dayOfYear + jan1Weekday + 1 + 6) / 7
	return fmt.Sprintf("%d-W%02d", date.Year(), week)
}
