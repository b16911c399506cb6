package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/bikedash/dashboard"
	"hermannm.dev/enumnames"
	"hermannm.dev/wrap"
)

type Config struct {
	BaseConfig
	File       File
	ClickHouse ClickHouse
}

type BaseConfig struct {
	DataSource DataSource `env:"DATA_SOURCE" envDefault:"file"`
	LogLevel   slog.Level `env:"LOG_LEVEL"   envDefault:"INFO"`
	Dashboard  Dashboard
	Filter     Filter
	Refresh    Refresh
	ReportPath string `env:"REPORT_PATH" envDefault:""`
}

type Dashboard struct {
	Locale     dashboard.Locale     `env:"LOCALE"      envDefault:"en"`
	ChartStyle dashboard.ChartStyle `env:"CHART_STYLE" envDefault:"bars"`
}

func (config Dashboard) ToDashboardConfig() dashboard.Config {
	return dashboard.Config{Locale: config.Locale, ChartStyle: config.ChartStyle}
}

// Blank start or end means the earliest or latest date in the rental table.
type Filter struct {
	Start string `env:"FILTER_START" envDefault:""`
	End   string `env:"FILTER_END"   envDefault:""`
}

type Refresh struct {
	WatchInput bool `env:"WATCH_INPUT" envDefault:"false"`
	// Cron spec, such as "@every 10m". Blank disables scheduled refresh.
	Schedule string `env:"REFRESH_SCHEDULE" envDefault:""`
}

type File struct {
	Path string `env:"INPUT_PATH"`
	// Only used for XLSX files. Blank means the first sheet.
	Sheet string `env:"INPUT_SHEET" envDefault:""`
}

type ClickHouse struct {
	Address      string `env:"CLICKHOUSE_ADDRESS"`
	DatabaseName string `env:"CLICKHOUSE_DB_NAME"`
	Username     string `env:"CLICKHOUSE_USERNAME"`
	Password     string `env:"CLICKHOUSE_PASSWORD"`
	Debug        bool   `env:"CLICKHOUSE_DEBUG_ENABLED" envDefault:"false"`
	Table        string `env:"CLICKHOUSE_TABLE"         envDefault:"bike_rentals"`
}

type DataSource uint8

const (
	DataSourceFile DataSource = iota + 1
	DataSourceClickHouse
)

var dataSourceNames = enumnames.NewMap(map[DataSource]string{
	DataSourceFile:       "file",
	DataSourceClickHouse: "clickhouse",
})

func (source DataSource) IsValid() bool {
	return dataSourceNames.ContainsEnumValue(source)
}

func (source DataSource) String() string {
	return dataSourceNames.GetNameOrFallback(source, "INVALID_DATA_SOURCE")
}

func (source *DataSource) UnmarshalText(text []byte) error {
	if err := dataSourceNames.UnmarshalFromNameJSON(
		[]byte(fmt.Sprintf("%q", text)),
		source,
	); err != nil {
		return fmt.Errorf(
			"unsupported data source '%s' (must be '%v' or '%v')",
			text,
			DataSourceFile,
			DataSourceClickHouse,
		)
	}
	return nil
}

var parseOptions = env.Options{RequiredIfNoDef: true}

// ReadFromEnv reads the config for rendering the dashboard. Only the settings of the configured
// data source are read.
func ReadFromEnv() (Config, error) {
	config, err := readBaseConfig()
	if err != nil {
		return Config{}, err
	}

	switch config.DataSource {
	case DataSourceFile:
		if err := env.ParseWithOptions(&config.File, parseOptions); err != nil {
			return Config{}, wrap.Error(err, "failed to parse input file config")
		}
	case DataSourceClickHouse:
		if err := env.ParseWithOptions(&config.ClickHouse, parseOptions); err != nil {
			return Config{}, wrap.Error(err, "failed to parse ClickHouse config")
		}
	}

	return config, nil
}

// ReadIngestConfigFromEnv reads the config for ingesting an input file into ClickHouse, which needs
// both the file and ClickHouse settings regardless of DATA_SOURCE.
func ReadIngestConfigFromEnv() (Config, error) {
	config, err := readBaseConfig()
	if err != nil {
		return Config{}, err
	}

	var errs []error
	if err := env.ParseWithOptions(&config.File, parseOptions); err != nil {
		errs = append(errs, err)
	}
	if err := env.ParseWithOptions(&config.ClickHouse, parseOptions); err != nil {
		errs = append(errs, err)
	}
	if len(errs) != 0 {
		return Config{}, wrap.Errors("invalid ingest config", errs...)
	}

	return config, nil
}

func readBaseConfig() (Config, error) {
	// The .env file is optional, as variables may be set directly in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	var config Config
	if err := env.ParseWithOptions(&config.BaseConfig, parseOptions); err != nil {
		return Config{}, wrap.Error(err, "failed to parse config from env")
	}

	return config, nil
}
