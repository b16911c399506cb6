package config_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/bikedash/config"
	"hermannm.dev/bikedash/dashboard"
)

func TestReadFromEnvDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // No .env file
	t.Setenv("INPUT_PATH", "rentals.csv")

	conf, err := config.ReadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, config.DataSourceFile, conf.DataSource)
	assert.Equal(t, "rentals.csv", conf.File.Path)
	assert.Equal(t, "", conf.File.Sheet)
	assert.Equal(t, slog.LevelInfo, conf.LogLevel)
	assert.Equal(t, dashboard.DefaultConfig(), conf.Dashboard.ToDashboardConfig())
	assert.False(t, conf.Refresh.WatchInput)
	assert.Equal(t, "", conf.Refresh.Schedule)
}

func TestReadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INPUT_PATH", "rentals.xlsx")
	t.Setenv("INPUT_SHEET", "day")
	t.Setenv("LOCALE", "id")
	t.Setenv("CHART_STYLE", "pies")
	t.Setenv("FILTER_START", "2011-01-01")
	t.Setenv("FILTER_END", "2011-06-30")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WATCH_INPUT", "true")
	t.Setenv("REFRESH_SCHEDULE", "@every 10m")
	t.Setenv("REPORT_PATH", "report.xlsx")

	conf, err := config.ReadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, dashboard.LocaleIndonesian, conf.Dashboard.Locale)
	assert.Equal(t, dashboard.ChartStylePies, conf.Dashboard.ChartStyle)
	assert.Equal(t, config.Filter{Start: "2011-01-01", End: "2011-06-30"}, conf.Filter)
	assert.Equal(t, slog.LevelDebug, conf.LogLevel)
	assert.True(t, conf.Refresh.WatchInput)
	assert.Equal(t, "@every 10m", conf.Refresh.Schedule)
	assert.Equal(t, "report.xlsx", conf.ReportPath)
	assert.Equal(t, "day", conf.File.Sheet)
}

func TestReadFromEnvRequiresInputPath(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := config.ReadFromEnv()
	assert.ErrorContains(t, err, "INPUT_PATH")
}

func TestReadFromEnvClickHouse(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATA_SOURCE", "clickhouse")
	t.Setenv("CLICKHOUSE_ADDRESS", "localhost:9000")
	t.Setenv("CLICKHOUSE_DB_NAME", "default")
	t.Setenv("CLICKHOUSE_USERNAME", "default")
	t.Setenv("CLICKHOUSE_PASSWORD", "")

	conf, err := config.ReadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, config.DataSourceClickHouse, conf.DataSource)
	assert.Equal(t, "localhost:9000", conf.ClickHouse.Address)
	assert.Equal(t, "bike_rentals", conf.ClickHouse.Table)
	assert.Equal(t, "", conf.File.Path, "file config should not be read for ClickHouse source")
}

func TestReadIngestConfigFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INPUT_PATH", "rentals.csv")

	_, err := config.ReadIngestConfigFromEnv()
	assert.ErrorContains(t, err, "CLICKHOUSE_ADDRESS")
}

func TestReadFromEnvRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		variable string
		value    string
	}{
		{"LOCALE", "fr"},
		{"CHART_STYLE", "donuts"},
		{"DATA_SOURCE", "postgres"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.variable, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv("INPUT_PATH", "rentals.csv")
			t.Setenv(testCase.variable, testCase.value)

			_, err := config.ReadFromEnv()
			assert.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test, restoring
// it on cleanup (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	previous, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(previous); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})
}
