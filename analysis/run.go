package analysis

import (
	"hermannm.dev/bikedash/rentals"
	"hermannm.dev/wrap"
)

// Summary holds the headline rental counts of a dashboard.
type Summary struct {
	Casual     int64 `json:"casual"`
	Registered int64 `json:"registered"`
	Total      int64 `json:"total"`
}

// Result is everything a dashboard shows for one date range.
type Result struct {
	DateRange rentals.DateRange `json:"dateRange"`
	// Full date range of the unfiltered table. Zero if the table is empty.
	Bounds rentals.DateRange `json:"bounds"`

	DailyTotal      View `json:"dailyTotal"`
	DailyCasual     View `json:"dailyCasual"`
	DailyRegistered View `json:"dailyRegistered"`
	Seasonal        View `json:"seasonal"`
	Monthly         View `json:"monthly"`
	Weekday         View `json:"weekday"`
	WorkingDay      View `json:"workingDay"`
	Holiday         View `json:"holiday"`
	Weather         View `json:"weather"`

	Summary Summary `json:"summary"`
}

// Run filters the table to the given date range, and computes every view and the summary from
// the filtered rows. It never modifies the table, so calling it again with the same arguments
// gives the same result.
func Run(table rentals.Table, dateRange rentals.DateRange) (Result, error) {
	bounds, _, err := table.DateBounds()
	if err != nil {
		return Result{}, wrap.Error(err, "failed to get date bounds of rental table")
	}

	filtered, err := table.FilterDates(dateRange)
	if err != nil {
		return Result{}, wrap.Error(err, "failed to filter rental table")
	}

	result := Result{DateRange: dateRange, Bounds: bounds}

	views := []struct {
		dest      *View
		aggregate func(rentals.Table) (View, error)
		name      string
	}{
		{&result.DailyTotal, DailyTotal, "daily total"},
		{&result.DailyCasual, DailyCasual, "daily casual"},
		{&result.DailyRegistered, DailyRegistered, "daily registered"},
		{&result.Seasonal, Seasonal, "seasonal"},
		{&result.Monthly, Monthly, "monthly"},
		{&result.Weekday, Weekday, "weekday"},
		{&result.WorkingDay, WorkingDay, "working day"},
		{&result.Holiday, Holiday, "holiday"},
		{&result.Weather, Weather, "weather"},
	}
	for _, view := range views {
		*view.dest, err = view.aggregate(filtered)
		if err != nil {
			return Result{}, wrap.Errorf(err, "failed to compute %s rentals", view.name)
		}
	}

	result.Summary = Summary{
		Casual:     result.DailyCasual.Total(rentals.ColumnCasual),
		Registered: result.DailyRegistered.Total(rentals.ColumnRegistered),
		Total:      result.DailyTotal.Total(rentals.ColumnCount),
	}

	return result, nil
}
