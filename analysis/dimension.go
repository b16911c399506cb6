package analysis

import (
	"hermannm.dev/bikedash/rentals"
	"hermannm.dev/enumnames"
)

// Dimension is the column an aggregated view is keyed by.
type Dimension uint8

const (
	DimensionDate Dimension = iota + 1
	DimensionSeason
	DimensionMonth
	DimensionWeekday
	DimensionWorkingDay
	DimensionHoliday
	DimensionWeather
)

var dimensionNames = enumnames.NewMap(map[Dimension]string{
	DimensionDate:       "DATE",
	DimensionSeason:     "SEASON",
	DimensionMonth:      "MONTH",
	DimensionWeekday:    "WEEKDAY",
	DimensionWorkingDay: "WORKING_DAY",
	DimensionHoliday:    "HOLIDAY",
	DimensionWeather:    "WEATHER",
})

var dimensionColumns = map[Dimension]string{
	DimensionDate:       rentals.ColumnDate,
	DimensionSeason:     rentals.ColumnSeason,
	DimensionMonth:      rentals.ColumnMonth,
	DimensionWeekday:    rentals.ColumnWeekday,
	DimensionWorkingDay: rentals.ColumnWorkingDay,
	DimensionHoliday:    rentals.ColumnHoliday,
	DimensionWeather:    rentals.ColumnWeather,
}

func (dimension Dimension) IsValid() bool {
	return dimensionNames.ContainsEnumValue(dimension)
}

func (dimension Dimension) String() string {
	return dimensionNames.GetNameOrFallback(dimension, "INVALID_DIMENSION")
}

func (dimension Dimension) MarshalJSON() ([]byte, error) {
	return dimensionNames.MarshalToNameJSON(dimension)
}

func (dimension *Dimension) UnmarshalJSON(bytes []byte) error {
	return dimensionNames.UnmarshalFromNameJSON(bytes, dimension)
}

// Column returns the name of the rental table column that the dimension groups on.
func (dimension Dimension) Column() string {
	return dimensionColumns[dimension]
}

// Months is the canonical order of the monthly view.
var Months = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}
