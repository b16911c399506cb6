package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"hermannm.dev/bikedash/analysis"
	"hermannm.dev/bikedash/clickhouse"
	"hermannm.dev/bikedash/config"
	"hermannm.dev/bikedash/dashboard"
	"hermannm.dev/bikedash/refresh"
	"hermannm.dev/bikedash/rentals"
	"hermannm.dev/bikedash/report"
	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

func main() {
	setUpLogger(slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := ""
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	var err error
	switch command {
	case "":
		err = runDashboard(ctx)
	case "ingest":
		err = runIngest(ctx)
	default:
		err = fmt.Errorf("unknown command '%s' (expected no command, or 'ingest')", command)
	}

	if err != nil {
		log.ErrorCause(err, "bikedash failed")
		stop()
		os.Exit(1)
	}
}

func setUpLogger(level slog.Level) {
	logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: level})
	slog.SetDefault(slog.New(logHandler))
}

func runDashboard(ctx context.Context) error {
	conf, err := config.ReadFromEnv()
	if err != nil {
		return wrap.Error(err, "failed to read config from env")
	}
	setUpLogger(conf.LogLevel)

	loadTable, closeSource, err := newTableLoader(ctx, conf)
	if err != nil {
		return err
	}
	defer closeSource()

	renderer := dashboardRenderer{conf: conf, loadTable: loadTable}
	if err := renderer.render(ctx); err != nil {
		return err
	}

	watchInput := conf.Refresh.WatchInput && conf.DataSource == config.DataSourceFile
	if !watchInput && conf.Refresh.Schedule == "" {
		return nil
	}

	rerender := func() {
		if err := renderer.render(ctx); err != nil {
			log.ErrorCause(err, "failed to refresh dashboard, keeping previous output")
		}
	}

	if conf.Refresh.Schedule != "" {
		stopSchedule, err := refresh.Schedule(conf.Refresh.Schedule, rerender)
		if err != nil {
			return err
		}
		defer stopSchedule()

		log.Info("refreshing dashboard on schedule", slog.String("schedule", conf.Refresh.Schedule))
	}

	if watchInput {
		go func() {
			if err := refresh.WatchFile(ctx, conf.File.Path, rerender); err != nil {
				log.ErrorCause(err, "stopped watching input file")
			}
		}()
	}

	<-ctx.Done()
	log.Info("shutting down")
	return nil
}

type tableLoader func(ctx context.Context) (rentals.Table, error)

func newTableLoader(
	ctx context.Context,
	conf config.Config,
) (load tableLoader, closeSource func(), err error) {
	switch conf.DataSource {
	case config.DataSourceClickHouse:
		db, err := clickhouse.NewClickHouseDB(ctx, conf.ClickHouse)
		if err != nil {
			return nil, nil, wrap.Error(err, "failed to initialize database")
		}

		load = func(ctx context.Context) (rentals.Table, error) {
			return db.LoadTable(ctx, conf.ClickHouse.Table)
		}
		closeSource = func() {
			if err := db.Close(); err != nil {
				log.ErrorCause(err, "failed to close ClickHouse connection")
			}
		}
		return load, closeSource, nil
	default:
		load = func(context.Context) (rentals.Table, error) {
			return rentals.Load(conf.File.Path, conf.File.Sheet)
		}
		return load, func() {}, nil
	}
}

// Renders are serialized, since a file change and a scheduled refresh may trigger at once.
type dashboardRenderer struct {
	conf      config.Config
	loadTable tableLoader
	lock      sync.Mutex
}

func (renderer *dashboardRenderer) render(ctx context.Context) error {
	renderer.lock.Lock()
	defer renderer.lock.Unlock()

	table, err := renderer.loadTable(ctx)
	if err != nil {
		return wrap.Error(err, "failed to load rental table")
	}

	dateRange, err := table.ResolveDateRange(
		renderer.conf.Filter.Start,
		renderer.conf.Filter.End,
	)
	if err != nil {
		return wrap.Error(err, "invalid date range filter")
	}
	if dateRange.IsInverted() {
		log.Warn(
			"date range filter starts after it ends, so no rentals are included",
			slog.String("dateRange", dateRange.String()),
		)
	}

	result, err := analysis.Run(table, dateRange)
	if err != nil {
		return wrap.Error(err, "failed to compute dashboard")
	}

	dashboardConfig := renderer.conf.Dashboard.ToDashboardConfig()

	if err := dashboard.RenderText(os.Stdout, result, dashboardConfig); err != nil {
		return err
	}

	if renderer.conf.ReportPath != "" {
		if err := report.Export(renderer.conf.ReportPath, result, dashboardConfig); err != nil {
			return wrap.Error(err, "failed to export dashboard report")
		}
	}

	log.Debug(
		"rendered dashboard",
		slog.Int("rows", table.Len()),
		slog.String("dateRange", dateRange.String()),
	)
	return nil
}

// Loads the input file and replaces the configured ClickHouse table with its rentals.
func runIngest(ctx context.Context) error {
	conf, err := config.ReadIngestConfigFromEnv()
	if err != nil {
		return wrap.Error(err, "failed to read config from env")
	}
	setUpLogger(conf.LogLevel)

	table, err := rentals.Load(conf.File.Path, conf.File.Sheet)
	if err != nil {
		return wrap.Error(err, "failed to load rental table")
	}

	db, err := clickhouse.NewClickHouseDB(ctx, conf.ClickHouse)
	if err != nil {
		return wrap.Error(err, "failed to initialize database")
	}
	defer db.Close()

	alreadyDropped, err := db.DropTable(ctx, conf.ClickHouse.Table)
	if err != nil {
		return wrap.Errorf(err, "failed to drop existing table '%s'", conf.ClickHouse.Table)
	}
	if !alreadyDropped {
		log.Infof("dropped existing table '%s'", conf.ClickHouse.Table)
	}

	if err := db.CreateRentalsTable(ctx, conf.ClickHouse.Table); err != nil {
		return err
	}

	insertedRows, err := db.IngestTable(ctx, conf.ClickHouse.Table, table)
	if err != nil {
		return wrap.Errorf(err, "failed to ingest rentals into '%s'", conf.ClickHouse.Table)
	}

	log.Infof("ingested %d rental records into '%s'", insertedRows, conf.ClickHouse.Table)
	return nil
}
