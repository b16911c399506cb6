package analysis

import (
	"hermannm.dev/bikedash/rentals"
)

func DailyTotal(table rentals.Table) (View, error) {
	return sumBy(table, DimensionDate, rentals.ColumnCount)
}

func DailyCasual(table rentals.Table) (View, error) {
	return sumBy(table, DimensionDate, rentals.ColumnCasual)
}

func DailyRegistered(table rentals.Table) (View, error) {
	return sumBy(table, DimensionDate, rentals.ColumnRegistered)
}

// Seasonal sums registered and casual rentals per season, in that column order.
func Seasonal(table rentals.Table) (View, error) {
	return sumBy(table, DimensionSeason, rentals.ColumnRegistered, rentals.ColumnCasual)
}

// Monthly always has one row per calendar month from Jan to Dec. Months without rentals are 0,
// and month values outside the abbreviated English names are dropped.
func Monthly(table rentals.Table) (View, error) {
	view, err := sumBy(table, DimensionMonth, rentals.ColumnCount)
	if err != nil {
		return View{}, err
	}

	return view.Reindex(Months), nil
}

func Weekday(table rentals.Table) (View, error) {
	return sumBy(table, DimensionWeekday, rentals.ColumnCount)
}

func WorkingDay(table rentals.Table) (View, error) {
	return sumBy(table, DimensionWorkingDay, rentals.ColumnCount)
}

func Holiday(table rentals.Table) (View, error) {
	return sumBy(table, DimensionHoliday, rentals.ColumnCount)
}

func Weather(table rentals.Table) (View, error) {
	return sumBy(table, DimensionWeather, rentals.ColumnCount)
}
