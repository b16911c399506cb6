package rentals

import (
	"errors"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"hermannm.dev/bikedash/csv"
	"hermannm.dev/wrap"
)

// Table is a read-only table of rental records. Every operation returns a new Table and leaves
// the receiver untouched.
type Table struct {
	frame dataframe.DataFrame
}

func newTable(frame dataframe.DataFrame) (Table, error) {
	if frame.Err != nil {
		return Table{}, wrap.Error(frame.Err, "invalid rental data frame")
	}

	return Table{frame: frame}, nil
}

func TableFromRecords(records []Record) Table {
	dates := make([]string, len(records))
	seasons := make([]string, len(records))
	months := make([]string, len(records))
	weekdays := make([]string, len(records))
	workingDays := make([]string, len(records))
	holidays := make([]string, len(records))
	weathers := make([]string, len(records))
	casuals := make([]int, len(records))
	registereds := make([]int, len(records))
	counts := make([]int, len(records))

	for i, record := range records {
		dates[i] = truncateToDay(record.Date).Format(csv.DateLayout)
		seasons[i] = record.Season
		months[i] = record.Month
		weekdays[i] = record.Weekday
		workingDays[i] = record.WorkingDay
		holidays[i] = record.Holiday
		weathers[i] = record.Weather
		casuals[i] = int(record.Casual)
		registereds[i] = int(record.Registered)
		counts[i] = int(record.Count)
	}

	return Table{
		frame: dataframe.New(
			series.New(dates, series.String, ColumnDate),
			series.New(seasons, series.String, ColumnSeason),
			series.New(months, series.String, ColumnMonth),
			series.New(weekdays, series.String, ColumnWeekday),
			series.New(workingDays, series.String, ColumnWorkingDay),
			series.New(holidays, series.String, ColumnHoliday),
			series.New(weathers, series.String, ColumnWeather),
			series.New(casuals, series.Int, ColumnCasual),
			series.New(registereds, series.Int, ColumnRegistered),
			series.New(counts, series.Int, ColumnCount),
		),
	}
}

func (table Table) Len() int {
	return table.frame.Nrow()
}

func (table Table) Columns() []string {
	return table.frame.Names()
}

func (table Table) HasColumn(name string) bool {
	return slices.Contains(table.frame.Names(), name)
}

func (table Table) StringColumn(name string) ([]string, error) {
	if !table.HasColumn(name) {
		return nil, MissingColumnError{Column: name}
	}

	return table.frame.Col(name).Records(), nil
}

func (table Table) IntColumn(name string) ([]int64, error) {
	if !table.HasColumn(name) {
		return nil, MissingColumnError{Column: name}
	}

	values, err := table.frame.Col(name).Int()
	if err != nil {
		return nil, wrap.Errorf(err, "failed to read column '%s' as integers", name)
	}

	converted := make([]int64, len(values))
	for i, value := range values {
		converted[i] = int64(value)
	}
	return converted, nil
}

// DateBounds returns the earliest and latest date in the table. hasRows is false for an empty
// table, in which case the returned range is the zero value.
func (table Table) DateBounds() (bounds DateRange, hasRows bool, err error) {
	dates, err := table.StringColumn(ColumnDate)
	if err != nil {
		return DateRange{}, false, err
	}
	if len(dates) == 0 {
		return DateRange{}, false, nil
	}

	// Dates are stored as YYYY-MM-DD, so lexical order is chronological order
	minDate, err := ParseDate(slices.Min(dates))
	if err != nil {
		return DateRange{}, false, wrap.Error(err, "failed to parse earliest date")
	}
	maxDate, err := ParseDate(slices.Max(dates))
	if err != nil {
		return DateRange{}, false, wrap.Error(err, "failed to parse latest date")
	}

	return DateRange{Start: minDate, End: maxDate}, true, nil
}

// DefaultDateRange is the full range of the table. It is the zero value for an empty table.
func DefaultDateRange(table Table) (DateRange, error) {
	bounds, _, err := table.DateBounds()
	return bounds, err
}

// FilterDates returns the rows whose date lies within the given range, both ends inclusive. An
// inverted range gives an empty table.
func (table Table) FilterDates(dateRange DateRange) (Table, error) {
	if !table.HasColumn(ColumnDate) {
		return Table{}, MissingColumnError{Column: ColumnDate}
	}

	if table.Len() == 0 {
		return table, nil
	}
	if dateRange.IsInverted() {
		return table.emptyCopy(), nil
	}

	filtered := table.frame.
		Filter(dataframe.F{
			Colname:    ColumnDate,
			Comparator: series.GreaterEq,
			Comparando: dateRange.Start.Format(csv.DateLayout),
		}).
		Filter(dataframe.F{
			Colname:    ColumnDate,
			Comparator: series.LessEq,
			Comparando: dateRange.End.Format(csv.DateLayout),
		})

	if filtered.Err != nil {
		return Table{}, wrap.Errorf(filtered.Err, "failed to filter rental table on %v", dateRange)
	}

	return Table{frame: filtered}, nil
}

func (table Table) emptyCopy() Table {
	columns := make([]series.Series, 0, table.frame.Ncol())
	for _, name := range table.frame.Names() {
		column := table.frame.Col(name)
		columns = append(columns, series.New([]string{}, column.Type(), name))
	}

	return Table{frame: dataframe.New(columns...)}
}

// Records converts the table back to typed records. All record columns must be present.
func (table Table) Records() ([]Record, error) {
	var errs []error
	stringColumns := make(map[string][]string, len(categoryColumns)+1)
	intColumns := make(map[string][]int64, len(countColumns))

	for _, name := range RecordColumns {
		if countColumns[name] {
			values, err := table.IntColumn(name)
			if err != nil {
				errs = append(errs, err)
			}
			intColumns[name] = values
		} else {
			values, err := table.StringColumn(name)
			if err != nil {
				errs = append(errs, err)
			}
			stringColumns[name] = values
		}
	}
	if len(errs) != 0 {
		return nil, wrap.Errors("failed to read rental records from table", errs...)
	}

	records := make([]Record, table.Len())
	for i := range records {
		date, err := ParseDate(stringColumns[ColumnDate][i])
		if err != nil {
			return nil, wrap.Errorf(err, "invalid date in row %d", i+1)
		}

		records[i] = Record{
			Date:       date,
			Season:     stringColumns[ColumnSeason][i],
			Month:      stringColumns[ColumnMonth][i],
			Weekday:    stringColumns[ColumnWeekday][i],
			WorkingDay: stringColumns[ColumnWorkingDay][i],
			Holiday:    stringColumns[ColumnHoliday][i],
			Weather:    stringColumns[ColumnWeather][i],
			Casual:     intColumns[ColumnCasual][i],
			Registered: intColumns[ColumnRegistered][i],
			Count:      intColumns[ColumnCount][i],
		}
	}

	return records, nil
}

var errNoColumns = errors.New("rental table has no columns")

// ResolveDateRange builds the date range to filter the table on. A blank start or end defaults to
// the earliest or latest date in the table, and both ends are clamped to the table's dates. An
// inverted range is returned as is.
func (table Table) ResolveDateRange(start string, end string) (DateRange, error) {
	bounds, hasRows, err := table.DateBounds()
	if err != nil {
		return DateRange{}, err
	}

	dateRange := bounds
	if start != "" {
		if dateRange.Start, err = ParseDate(start); err != nil {
			return DateRange{}, wrap.Error(err, "invalid start date")
		}
	}
	if end != "" {
		if dateRange.End, err = ParseDate(end); err != nil {
			return DateRange{}, wrap.Error(err, "invalid end date")
		}
	}

	if hasRows {
		dateRange = dateRange.ClampTo(bounds)
	}
	return dateRange, nil
}
