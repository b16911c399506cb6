package rentals

import (
	"fmt"
	"time"

	"hermannm.dev/bikedash/csv"
	"hermannm.dev/wrap"
)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start time.Time, end time.Time) DateRange {
	return DateRange{Start: truncateToDay(start), End: truncateToDay(end)}
}

func ParseDateRange(start string, end string) (DateRange, error) {
	startDate, err := ParseDate(start)
	if err != nil {
		return DateRange{}, wrap.Error(err, "invalid start date")
	}

	endDate, err := ParseDate(end)
	if err != nil {
		return DateRange{}, wrap.Error(err, "invalid end date")
	}

	return DateRange{Start: startDate, End: endDate}, nil
}

// An inverted range is kept as is, and selects no rows.
func (dateRange DateRange) IsInverted() bool {
	return dateRange.Start.After(dateRange.End)
}

func (dateRange DateRange) Contains(date time.Time) bool {
	date = truncateToDay(date)
	return !date.Before(dateRange.Start) && !date.After(dateRange.End)
}

// ClampTo restricts both ends of the range to lie within the given bounds.
func (dateRange DateRange) ClampTo(bounds DateRange) DateRange {
	return DateRange{
		Start: clampDate(dateRange.Start, bounds),
		End:   clampDate(dateRange.End, bounds),
	}
}

func clampDate(date time.Time, bounds DateRange) time.Time {
	if date.Before(bounds.Start) {
		return bounds.Start
	}
	if date.After(bounds.End) {
		return bounds.End
	}
	return date
}

func (dateRange DateRange) String() string {
	return fmt.Sprintf(
		"%s - %s",
		dateRange.Start.Format(csv.DateLayout),
		dateRange.End.Format(csv.DateLayout),
	)
}

// Accepted date layouts, in the order they are tried. Spreadsheet cells formatted with the
// default short date format come out as month-first dates.
var dateLayouts = []string{
	csv.DateLayout,
	"2006-1-2",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01-02-06",
	"1/2/06",
	"1/2/2006",
}

func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return truncateToDay(date), nil
		}
	}

	return time.Time{}, fmt.Errorf("'%s' is not a date in the format YYYY-MM-DD", value)
}

func truncateToDay(date time.Time) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
