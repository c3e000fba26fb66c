package outcome

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a civil date. Day may hold values past the end of the month, such
// as 2/31, which the legacy step function produces.
type Date struct {
	Year  int
	Month int
	Day   int
}

var layouts = []string{
	"1/2/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"Mon, Jan 2, 2006",
	"Mon Jan 2 2006",
	"Jan 2, 2006",
}

// ParseDate parses M/D/YYYY, ISO dates and datetimes, and the schedule
// formats "Mon, Oct 28, 2019" and "Mon Oct 28 2019".
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FromTime returns the civil date of t.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Time returns midnight UTC of d. Out-of-range days are normalised.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Valid reports whether d exists in the calendar.
func (d Date) Valid() bool {
	return d.Month >= 1 && d.Month <= 12 && d.Day >= 1 && FromTime(d.Time()) == d
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

// String renders d as M/D/YYYY.
func (d Date) String() string {
	return strconv.Itoa(d.Month) + "/" + strconv.Itoa(d.Day) + "/" + strconv.Itoa(d.Year)
}

// Prev returns the previous calendar day.
func (d Date) Prev() Date {
	return FromTime(d.Time().AddDate(0, 0, -1))
}

// LegacyPrev steps back one day the way the exported season sheets were
// processed: day 1 becomes day 31 of the previous month and January 1
// becomes December 31 of the previous year, even when that day does not
// exist.
func (d Date) LegacyPrev() Date {
	switch {
	case d.Month == 1 && d.Day == 1:
		return Date{Year: d.Year - 1, Month: 12, Day: 31}
	case d.Day == 1:
		return Date{Year: d.Year, Month: d.Month - 1, Day: 31}
	default:
		return Date{Year: d.Year, Month: d.Month, Day: d.Day - 1}
	}
}

func daysBetween(from, to Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}
