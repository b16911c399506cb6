package report

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"hermannm.dev/bikedash/analysis"
	"hermannm.dev/bikedash/dashboard"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

const (
	SummarySheet    = "Summary"
	DailySheet      = "Daily"
	SeasonalSheet   = "Seasonal"
	MonthlySheet    = "Monthly"
	WeekdaySheet    = "Weekday"
	WorkingDaySheet = "Working Day"
	HolidaySheet    = "Holiday"
	WeatherSheet    = "Weather"
)

// Export writes the dashboard to an Excel workbook at the given path: a summary sheet with the
// headline counts, one sheet of data per view, and a chart next to the data of each panel.
func Export(path string, result analysis.Result, config dashboard.Config) error {
	config = config.WithDefaults()
	labels := dashboard.LabelsFor(config.Locale)

	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetDocProps(&excelize.DocProperties{
		Title:       labels.Header,
		Description: fmt.Sprintf("%s: %v", labels.DateRange, result.DateRange),
	}); err != nil {
		return wrap.Error(err, "failed to set workbook properties")
	}

	if _, err := workbook.NewSheet(SummarySheet); err != nil {
		return wrap.Error(err, "failed to create summary sheet")
	}
	if err := writeSummary(workbook, result, labels); err != nil {
		return wrap.Error(err, "failed to write summary sheet")
	}

	daily := analysis.View{
		Dimension: analysis.DimensionDate,
		Keys:      result.DailyTotal.Keys,
		Columns: append(append(append([]analysis.ValueColumn(nil),
			result.DailyTotal.Columns...),
			result.DailyCasual.Columns...),
			result.DailyRegistered.Columns...),
	}

	viewSheets := []struct {
		name string
		view analysis.View
	}{
		{DailySheet, daily},
		{SeasonalSheet, result.Seasonal},
		{MonthlySheet, result.Monthly},
		{WeekdaySheet, result.Weekday},
		{WorkingDaySheet, result.WorkingDay},
		{HolidaySheet, result.Holiday},
		{WeatherSheet, result.Weather},
	}
	for _, viewSheet := range viewSheets {
		if _, err := workbook.NewSheet(viewSheet.name); err != nil {
			return wrap.Errorf(err, "failed to create sheet '%s'", viewSheet.name)
		}
		if err := writeView(workbook, viewSheet.name, viewSheet.view); err != nil {
			return wrap.Errorf(err, "failed to write sheet '%s'", viewSheet.name)
		}
	}

	for _, panel := range dashboard.Panels(result, config) {
		sheet, ok := sheetForDimension(panel.View.Dimension)
		if !ok {
			continue
		}
		if err := addChart(workbook, sheet, panel); err != nil {
			return wrap.Errorf(err, "failed to add chart '%s'", panel.Title)
		}
	}

	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return wrap.Error(err, "failed to remove default sheet")
	}
	summaryIndex, err := workbook.GetSheetIndex(SummarySheet)
	if err != nil {
		return wrap.Error(err, "failed to find summary sheet")
	}
	workbook.SetActiveSheet(summaryIndex)

	if err := workbook.SaveAs(path); err != nil {
		return wrap.Errorf(err, "failed to save workbook to '%s'", path)
	}

	log.Info("exported dashboard report", slog.String("path", path))
	return nil
}

func writeSummary(workbook *excelize.File, result analysis.Result, labels dashboard.Labels) error {
	rows := [][]any{
		{labels.Header},
		{labels.DateRange, result.DateRange.String()},
		{},
		{labels.DailySubheader},
		{labels.CasualMetric, result.Summary.Casual},
		{labels.RegisteredMetric, result.Summary.Registered},
		{labels.TotalMetric, result.Summary.Total},
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := workbook.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}

	return workbook.SetColWidth(SummarySheet, "A", "A", 30)
}

// Writes the view keys in the first column and each value column after it, below a header row.
func writeView(workbook *excelize.File, sheet string, view analysis.View) error {
	header := []any{strings.ToLower(view.Dimension.String())}
	for _, column := range view.Columns {
		header = append(header, column.Name)
	}
	if err := workbook.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, key := range view.Keys {
		row := []any{key}
		for _, column := range view.Columns {
			row = append(row, column.Values[i])
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return workbook.SetColWidth(sheet, "A", "A", 20)
}

func sheetForDimension(dimension analysis.Dimension) (string, bool) {
	switch dimension {
	case analysis.DimensionMonth:
		return MonthlySheet, true
	case analysis.DimensionWeather:
		return WeatherSheet, true
	case analysis.DimensionWorkingDay:
		return WorkingDaySheet, true
	case analysis.DimensionHoliday:
		return HolidaySheet, true
	case analysis.DimensionSeason:
		return SeasonalSheet, true
	case analysis.DimensionWeekday:
		return WeekdaySheet, true
	default:
		return "", false
	}
}

var chartTypes = map[dashboard.PanelKind]excelize.ChartType{
	dashboard.PanelKindLine: excelize.Line,
	dashboard.PanelKindBar:  excelize.Col,
	dashboard.PanelKindPie:  excelize.Pie,
}

func addChart(workbook *excelize.File, sheet string, panel dashboard.Panel) error {
	if panel.View.Len() == 0 {
		log.Debug("skipping chart for empty view", slog.String("chart", panel.Title))
		return nil
	}

	columnIndex := slices.IndexFunc(panel.View.Columns, func(column analysis.ValueColumn) bool {
		return column.Name == panel.Column
	})
	if columnIndex == -1 {
		return fmt.Errorf("view has no column '%s'", panel.Column)
	}

	valueColumn, err := excelize.ColumnNumberToName(columnIndex + 2)
	if err != nil {
		return err
	}

	chartType, ok := chartTypes[panel.Kind]
	if !ok {
		return fmt.Errorf("invalid panel kind %v", panel.Kind)
	}

	lastRow := panel.View.Len() + 1
	chart := excelize.Chart{
		Type:   chartType,
		Title:  []excelize.RichTextRun{{Text: panel.Title}},
		Legend: excelize.ChartLegend{Position: "none"},
	}

	switch panel.Kind {
	case dashboard.PanelKindPie:
		// excelize colors pie slices from the workbook theme, as it has no per-point fill
		chart.Legend.Position = "bottom"
		chart.PlotArea = excelize.ChartPlotArea{ShowPercent: true}
		chart.Series = []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$%s$1", sheet, valueColumn),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, lastRow),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, valueColumn, valueColumn, lastRow),
		}}
	case dashboard.PanelKindLine:
		chart.PlotArea = excelize.ChartPlotArea{ShowVal: true}
		chart.Series = []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$%s$1", sheet, valueColumn),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, lastRow),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, valueColumn, valueColumn, lastRow),
			Fill:       solidFill(panel.ColorAt(0)),
			Line:       excelize.ChartLine{Width: 2},
			Marker:     excelize.ChartMarker{Symbol: "circle", Size: 5},
		}}
	default:
		// One series per key, so that each bar gets its own color from the panel
		chart.Legend.Position = "bottom"
		chart.PlotArea = excelize.ChartPlotArea{ShowVal: true}
		for i := range panel.View.Keys {
			row := i + 2
			chart.Series = append(chart.Series, excelize.ChartSeries{
				Name:       fmt.Sprintf("'%s'!$A$%d", sheet, row),
				Categories: fmt.Sprintf("'%s'!$A$%d", sheet, row),
				Values:     fmt.Sprintf("'%s'!$%s$%d", sheet, valueColumn, row),
				Fill:       solidFill(panel.ColorAt(i)),
			})
		}
	}

	// Leaves room for the data columns to the left of the chart
	anchor, err := excelize.CoordinatesToCellName(len(panel.View.Columns)+3, 2)
	if err != nil {
		return err
	}

	return workbook.AddChart(sheet, anchor, &chart)
}

func solidFill(hexColor string) excelize.Fill {
	return excelize.Fill{
		Type:    "pattern",
		Pattern: 1,
		Color:   []string{strings.TrimPrefix(hexColor, "#")},
	}
}
