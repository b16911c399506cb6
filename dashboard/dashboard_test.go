package dashboard_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/bikedash/analysis"
	"hermannm.dev/bikedash/dashboard"
	"hermannm.dev/bikedash/rentals"
)

func testResult(t *testing.T) analysis.Result {
	t.Helper()

	day := func(value string) time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		require.NoError(t, err)
		return parsed
	}

	table := rentals.TableFromRecords([]rentals.Record{
		{
			Date:       day("2011-01-01"),
			Season:     "Winter",
			Month:      "Jan",
			Weekday:    "Sat",
			WorkingDay: "0",
			Holiday:    "0",
			Weather:    "Clear",
			Casual:     1200,
			Registered: 300,
			Count:      1500,
		},
		{
			Date:       day("2011-01-03"),
			Season:     "Winter",
			Month:      "Jan",
			Weekday:    "Mon",
			WorkingDay: "1",
			Holiday:    "0",
			Weather:    "Misty",
			Casual:     100,
			Registered: 400,
			Count:      500,
		},
	})

	result, err := analysis.Run(table, rentals.NewDateRange(day("2011-01-01"), day("2011-01-31")))
	require.NoError(t, err)
	return result
}

func TestConfigUnmarshalText(t *testing.T) {
	var locale dashboard.Locale
	require.NoError(t, locale.UnmarshalText([]byte("id")))
	assert.Equal(t, dashboard.LocaleIndonesian, locale)

	var style dashboard.ChartStyle
	require.NoError(t, style.UnmarshalText([]byte("pies")))
	assert.Equal(t, dashboard.ChartStylePies, style)

	assert.Error(t, locale.UnmarshalText([]byte("fr")))
	assert.Error(t, style.UnmarshalText([]byte("donuts")))
}

func TestConfigJSON(t *testing.T) {
	config := dashboard.Config{Locale: dashboard.LocaleIndonesian, ChartStyle: dashboard.ChartStylePies}

	encoded, err := json.Marshal(config)
	require.NoError(t, err)
	assert.JSONEq(t, `{"locale":"id","chartStyle":"pies"}`, string(encoded))

	var decoded dashboard.Config
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, config, decoded)
}

func TestWithDefaults(t *testing.T) {
	assert.Equal(t, dashboard.DefaultConfig(), dashboard.Config{}.WithDefaults())

	config := dashboard.Config{ChartStyle: dashboard.ChartStylePies}.WithDefaults()
	assert.Equal(t, dashboard.LocaleEnglish, config.Locale)
	assert.Equal(t, dashboard.ChartStylePies, config.ChartStyle)
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, "Bike Rental Dashboard", dashboard.LabelsFor(dashboard.LocaleEnglish).Header)
	assert.Equal(
		t,
		"Tampilan Data Penyewa Sepeda",
		dashboard.LabelsFor(dashboard.LocaleIndonesian).Header,
	)
	assert.Equal(t, "Rentang Waktu", dashboard.LabelsFor(dashboard.LocaleIndonesian).DateRange)
}

func TestPanels(t *testing.T) {
	result := testResult(t)

	testCases := []struct {
		style         dashboard.ChartStyle
		expectedKinds []dashboard.PanelKind
		weatherColors []string
		workdayColors []string
	}{
		{
			style: dashboard.ChartStyleBars,
			expectedKinds: []dashboard.PanelKind{
				dashboard.PanelKindLine,
				dashboard.PanelKindBar,
				dashboard.PanelKindBar,
				dashboard.PanelKindBar,
			},
			weatherColors: []string{dashboard.ColorRed, dashboard.ColorBlue, dashboard.ColorGreen},
			workdayColors: []string{dashboard.ColorOrange, dashboard.ColorGreen},
		},
		{
			style: dashboard.ChartStylePies,
			expectedKinds: []dashboard.PanelKind{
				dashboard.PanelKindLine,
				dashboard.PanelKindBar,
				dashboard.PanelKindPie,
				dashboard.PanelKindPie,
			},
			weatherColors: []string{dashboard.ColorBlue, dashboard.ColorOrange, dashboard.ColorGreen},
			workdayColors: []string{dashboard.ColorBlue, dashboard.ColorOrange},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.style.String(), func(t *testing.T) {
			panels := dashboard.Panels(
				result,
				dashboard.Config{Locale: dashboard.LocaleEnglish, ChartStyle: testCase.style},
			)
			require.Len(t, panels, len(testCase.expectedKinds))

			for i, panel := range panels {
				assert.Equal(t, testCase.expectedKinds[i], panel.Kind)
			}

			assert.Equal(t, analysis.DimensionMonth, panels[0].View.Dimension)
			assert.Equal(t, testCase.weatherColors, panels[1].Colors)
			assert.Equal(t, testCase.workdayColors, panels[2].Colors)
			assert.Equal(t, "Number of Rents based on Holiday", panels[3].Title)
		})
	}
}

func TestColorAt(t *testing.T) {
	panel := dashboard.Panel{Colors: []string{dashboard.ColorOrange, dashboard.ColorGreen}}
	assert.Equal(t, dashboard.ColorOrange, panel.ColorAt(2))
	assert.Equal(t, dashboard.ColorBlue, dashboard.Panel{}.ColorAt(0))
}

func TestRenderText(t *testing.T) {
	result := testResult(t)

	var english strings.Builder
	require.NoError(t, dashboard.RenderText(&english, result, dashboard.DefaultConfig()))
	assert.Contains(t, english.String(), "Bike Rental Dashboard")
	assert.Contains(t, english.String(), "2011-01-01 - 2011-01-31")
	assert.Contains(t, english.String(), "1,300")
	assert.Contains(t, english.String(), "2,000")
	assert.Contains(t, english.String(), "Number of Rents based on Working Day")

	var indonesian strings.Builder
	require.NoError(
		t,
		dashboard.RenderText(
			&indonesian,
			result,
			dashboard.Config{Locale: dashboard.LocaleIndonesian, ChartStyle: dashboard.ChartStylePies},
		),
	)
	assert.Contains(t, indonesian.String(), "Total Jumlah Penyewa")
	assert.Contains(t, indonesian.String(), "2.000")
	assert.Contains(t, indonesian.String(), "75,0%")
}
