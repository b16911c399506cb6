package clickhouse

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"hermannm.dev/bikedash/rentals"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

// See https://clickhouse.com/docs/en/sql-reference/data-types
var rentalColumnTypes = map[string]string{
	rentals.ColumnDate:       "Date",
	rentals.ColumnSeason:     "LowCardinality(String)",
	rentals.ColumnMonth:      "LowCardinality(String)",
	rentals.ColumnWeekday:    "LowCardinality(String)",
	rentals.ColumnWorkingDay: "LowCardinality(String)",
	rentals.ColumnHoliday:    "LowCardinality(String)",
	rentals.ColumnWeather:    "LowCardinality(String)",
	rentals.ColumnCasual:     "Int64",
	rentals.ColumnRegistered: "Int64",
	rentals.ColumnCount:      "Int64",
}

const idColumn = "id"

func (clickhouse ClickHouseDB) CreateRentalsTable(ctx context.Context, table string) error {
	query, err := buildCreateTableQuery(table)
	if err != nil {
		return err
	}

	if err := clickhouse.conn.Exec(ctx, query); err != nil {
		return wrap.Errorf(err, "ClickHouse table creation query failed for table '%s'", table)
	}

	return nil
}

func buildCreateTableQuery(table string) (string, error) {
	if err := ValidateIdentifier(table); err != nil {
		return "", wrap.Error(err, "invalid table name")
	}

	var query QueryBuilder
	query.WriteString("CREATE TABLE IF NOT EXISTS ")
	query.WriteIdentifier(table)
	query.WriteString(" (")
	query.WriteIdentifier(idColumn)
	query.WriteString(" UUID")

	for _, column := range rentals.RecordColumns {
		query.WriteString(", ")
		query.WriteIdentifier(column)
		query.WriteByte(' ')
		query.WriteString(rentalColumnTypes[column])
	}

	query.WriteByte(')')
	query.WriteString(" ENGINE = MergeTree()")
	query.WriteString(" ORDER BY (")
	query.WriteIdentifier(rentals.ColumnDate)
	query.WriteString(", ")
	query.WriteIdentifier(idColumn)
	query.WriteByte(')')

	return query.String(), nil
}

// ClickHouse recommends keeping batch inserts between 10,000 and 100,000 rows:
// https://clickhouse.com/docs/en/cloud/bestpractices/bulk-inserts
const BatchInsertSize = 10000

// IngestTable inserts every record of the rental table into the given ClickHouse table, in batches
// of BatchInsertSize. Each inserted row gets a generated UUID.
func (clickhouse ClickHouseDB) IngestTable(
	ctx context.Context,
	table string,
	data rentals.Table,
) (insertedRows int, err error) {
	query, err := buildInsertQuery(table)
	if err != nil {
		return 0, err
	}

	records, err := data.Records()
	if err != nil {
		return 0, wrap.Error(err, "failed to read records to ingest")
	}

	for batchStart := 0; batchStart < len(records); batchStart += BatchInsertSize {
		batchEnd := min(batchStart+BatchInsertSize, len(records))

		batch, err := clickhouse.conn.PrepareBatch(ctx, query)
		if err != nil {
			return insertedRows, wrap.Error(err, "failed to prepare batch data insert")
		}

		for i, record := range records[batchStart:batchEnd] {
			rowNumber := batchStart + i + 1

			id, err := uuid.NewUUID()
			if err != nil {
				return insertedRows, wrap.Errorf(
					err,
					"failed to generate unique ID for row %d",
					rowNumber,
				)
			}

			if err := batch.Append(recordToRow(id, record)...); err != nil {
				return insertedRows, wrap.Errorf(err, "failed to add row %d to batch insert", rowNumber)
			}
		}

		if err := batch.Send(); err != nil {
			return insertedRows, wrap.Error(err, "failed to send batch insert")
		}

		insertedRows = batchEnd
		log.Debug(
			"sent batch insert to ClickHouse",
			slog.String("table", table),
			slog.Int("rows", insertedRows),
		)
	}

	return insertedRows, nil
}

func buildInsertQuery(table string) (string, error) {
	if err := ValidateIdentifier(table); err != nil {
		return "", wrap.Error(err, "invalid table name")
	}

	var query QueryBuilder
	query.WriteString("INSERT INTO ")
	query.WriteIdentifier(table)
	query.WriteString(" (")
	query.WriteIdentifier(idColumn)
	query.WriteString(", ")
	query.WriteIdentifierList(rentals.RecordColumns)
	query.WriteByte(')')

	return query.String(), nil
}

// Values are in the order of rentals.RecordColumns, after the ID.
func recordToRow(id uuid.UUID, record rentals.Record) []any {
	return []any{
		id.String(),
		record.Date,
		record.Season,
		record.Month,
		record.Weekday,
		record.WorkingDay,
		record.Holiday,
		record.Weather,
		record.Casual,
		record.Registered,
		record.Count,
	}
}

// LoadTable reads every rental record from the given ClickHouse table, ordered by date.
func (clickhouse ClickHouseDB) LoadTable(ctx context.Context, table string) (rentals.Table, error) {
	query, err := buildSelectQuery(table)
	if err != nil {
		return rentals.Table{}, err
	}

	log.Debug("generated clickhouse query", slog.String("query", query))

	rows, err := clickhouse.conn.Query(ctx, query)
	if err != nil {
		return rentals.Table{}, wrap.Error(err, "failed to execute query against ClickHouse")
	}
	defer rows.Close()

	var records []rentals.Record
	for rows.Next() {
		var record rentals.Record
		var date time.Time

		if err := rows.Scan(
			&date,
			&record.Season,
			&record.Month,
			&record.Weekday,
			&record.WorkingDay,
			&record.Holiday,
			&record.Weather,
			&record.Casual,
			&record.Registered,
			&record.Count,
		); err != nil {
			return rentals.Table{}, wrap.Errorf(err, "failed to scan row %d", len(records)+1)
		}

		record.Date = date.UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return rentals.Table{}, wrap.Error(err, "failed to read rental rows from ClickHouse")
	}

	return rentals.TableFromRecords(records), nil
}

func buildSelectQuery(table string) (string, error) {
	if err := ValidateIdentifier(table); err != nil {
		return "", wrap.Error(err, "invalid table name")
	}

	var query QueryBuilder
	query.WriteString("SELECT ")
	query.WriteIdentifierList(rentals.RecordColumns)
	query.WriteString(" FROM ")
	query.WriteIdentifier(table)
	query.WriteString(" ORDER BY ")
	query.WriteIdentifier(rentals.ColumnDate)

	return query.String(), nil
}
