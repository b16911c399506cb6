package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"hermannm.dev/bikedash/analysis"
	"hermannm.dev/bikedash/clickhouse"
	"hermannm.dev/bikedash/config"
	"hermannm.dev/bikedash/rentals"
	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

const testDataPath = "rentals/testdata/rentals.csv"

// Only set when ClickHouse is configured in the environment.
var database *clickhouse.ClickHouseDB

// Sets up logger and database connection before running tests.
func TestMain(m *testing.M) {
	logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))

	if os.Getenv("CLICKHOUSE_ADDRESS") != "" {
		conf, err := config.ReadIngestConfigFromEnv()
		if err != nil {
			log.ErrorCause(err, "failed to read config from env")
			os.Exit(1)
		}

		db, err := clickhouse.NewClickHouseDB(context.Background(), conf.ClickHouse)
		if err != nil {
			log.ErrorCause(err, "failed to initialize database")
			os.Exit(1)
		}
		database = &db
	}

	os.Exit(m.Run())
}

func BenchmarkReadCSV(b *testing.B) {
	content := readTestData(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rentals.ReadCSV(bytes.NewReader(content)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConcurrentRuns(b *testing.B) {
	table, err := rentals.ReadCSV(bytes.NewReader(readTestData(b)))
	if err != nil {
		b.Fatal(err)
	}
	dateRange, err := table.ResolveDateRange("", "")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := analysis.Run(table, dateRange); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkIngestion(b *testing.B) {
	withTestTable(b, "ingestion_test", func(table rentals.Table) {
		for i := 0; i < b.N; i++ {
			if _, err := database.IngestTable(context.Background(), "ingestion_test", table); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkLoadTable(b *testing.B) {
	withTestTable(b, "load_test", func(rentals.Table) {
		for i := 0; i < b.N; i++ {
			if _, err := database.LoadTable(context.Background(), "load_test"); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkCreateTable(b *testing.B) {
	if database == nil {
		b.Skip("ClickHouse not configured")
	}

	const table = "create_table_test"

	for i := 0; i < b.N; i++ {
		if err := database.CreateRentalsTable(context.Background(), table); err != nil {
			b.Fatal(wrap.Errorf(err, "failed to create table no. %d", i))
		}

		b.StopTimer()
		if _, err := database.DropTable(context.Background(), table); err != nil {
			b.Fatal(wrap.Errorf(err, "failed to clean up table '%s'", table))
		}
		b.StartTimer()
	}
}

func readTestData(b *testing.B) []byte {
	content, err := os.ReadFile(testDataPath)
	if err != nil {
		b.Fatal(wrap.Error(err, "failed to open test file"))
	}
	return content
}

func withTestTable(b *testing.B, table string, testFunc func(rentals.Table)) {
	if database == nil {
		b.Skip("ClickHouse not configured")
	}

	if err := database.CreateRentalsTable(context.Background(), table); err != nil {
		b.Fatal(wrap.Errorf(err, "failed to create table '%s'", table))
	}
	defer func() {
		if _, err := database.DropTable(context.Background(), table); err != nil {
			b.Fatal(wrap.Errorf(err, "failed to clean up table '%s' after test", table))
		}
	}()

	rentalTable, err := rentals.ReadCSV(bytes.NewReader(readTestData(b)))
	if err != nil {
		b.Fatal(wrap.Error(err, "failed to read CSV test file"))
	}

	if _, err := database.IngestTable(context.Background(), table, rentalTable); err != nil {
		b.Fatal(wrap.Errorf(err, "failed to insert test data in table '%s'", table))
	}

	b.ResetTimer()
	testFunc(rentalTable)
	b.StopTimer()
}
