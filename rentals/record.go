package rentals

import (
	"fmt"
	"time"
)

const (
	ColumnDate       = "dateday"
	ColumnSeason     = "season"
	ColumnMonth      = "month"
	ColumnWeekday    = "weekday"
	ColumnWorkingDay = "workingday"
	ColumnHoliday    = "holiday"
	ColumnWeather    = "weather_cond"
	ColumnCasual     = "casual"
	ColumnRegistered = "registered"
	ColumnCount      = "count"
)

// Columns of a Record, in the order they are stored.
var RecordColumns = []string{
	ColumnDate,
	ColumnSeason,
	ColumnMonth,
	ColumnWeekday,
	ColumnWorkingDay,
	ColumnHoliday,
	ColumnWeather,
	ColumnCasual,
	ColumnRegistered,
	ColumnCount,
}

var countColumns = map[string]bool{
	ColumnCasual:     true,
	ColumnRegistered: true,
	ColumnCount:      true,
}

var categoryColumns = map[string]bool{
	ColumnSeason:     true,
	ColumnMonth:      true,
	ColumnWeekday:    true,
	ColumnWorkingDay: true,
	ColumnHoliday:    true,
	ColumnWeather:    true,
}

// Record is one day of rentals.
type Record struct {
	Date       time.Time `json:"dateday"`
	Season     string    `json:"season"`
	Month      string    `json:"month"`
	Weekday    string    `json:"weekday"`
	WorkingDay string    `json:"workingday"`
	Holiday    string    `json:"holiday"`
	Weather    string    `json:"weather_cond"`
	Casual     int64     `json:"casual"`
	Registered int64     `json:"registered"`
	Count      int64     `json:"count"`
}

type MissingColumnError struct {
	Column string
}

func (err MissingColumnError) Error() string {
	return fmt.Sprintf("rental table has no column '%s'", err.Column)
}
