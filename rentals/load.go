package rentals

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
	"hermannm.dev/bikedash/csv"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

// Load reads a rental table from a CSV or XLSX file, picking the reader from the file extension.
// sheet is only used for XLSX files, and the first sheet is read when it is blank.
func Load(path string, sheet string) (Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, sheet)
	case ".csv", ".tsv", ".txt":
		file, err := os.Open(path)
		if err != nil {
			return Table{}, wrap.Errorf(err, "failed to open rental file '%s'", path)
		}
		defer file.Close()

		table, err := ReadCSV(file)
		if err != nil {
			return Table{}, wrap.Errorf(err, "failed to read rental file '%s'", path)
		}
		return table, nil
	default:
		return Table{}, fmt.Errorf(
			"unsupported rental file extension '%s' (expected .csv or .xlsx)",
			filepath.Ext(path),
		)
	}
}

func ReadCSV(csvFile io.ReadSeeker) (Table, error) {
	reader, err := csv.NewReader(csvFile)
	if err != nil {
		return Table{}, wrap.Error(err, "failed to create CSV reader")
	}

	log.Debug(
		"deduced CSV field delimiter",
		slog.String("delimiter", string(reader.Delimiter())),
	)

	return readTable(reader)
}

func ReadXLSX(path string, sheet string) (Table, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, wrap.Errorf(err, "failed to open workbook '%s'", path)
	}
	defer workbook.Close()

	if sheet == "" {
		sheets := workbook.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, fmt.Errorf("workbook '%s' has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return Table{}, wrap.Errorf(err, "failed to read sheet '%s' of workbook '%s'", sheet, path)
	}

	table, err := readTable(&sliceRowSource{rows: rows})
	if err != nil {
		return Table{}, wrap.Errorf(err, "failed to read sheet '%s' of workbook '%s'", sheet, path)
	}
	return table, nil
}

type rowSource interface {
	ReadHeaderRow() ([]string, error)
	ReadRow() (row []string, rowNumber int, done bool, err error)
}

// Spreadsheet rows come without trailing empty cells, so they are padded to the header width.
type sliceRowSource struct {
	rows       [][]string
	currentRow int
	width      int
}

func (source *sliceRowSource) ReadHeaderRow() ([]string, error) {
	if source.currentRow != 0 {
		return nil, errors.New("tried to read header row after reading previous rows")
	}
	if len(source.rows) == 0 {
		return nil, errors.New("sheet ended before header row")
	}

	header := source.rows[0]
	source.currentRow = 1
	source.width = len(header)
	return header, nil
}

func (source *sliceRowSource) ReadRow() (row []string, rowNumber int, done bool, err error) {
	if source.currentRow >= len(source.rows) {
		return nil, 0, true, nil
	}

	row = source.rows[source.currentRow]
	source.currentRow++

	if len(row) < source.width {
		padded := make([]string, source.width)
		copy(padded, row)
		row = padded
	}

	return row, source.currentRow, false, nil
}

func readTable(source rowSource) (Table, error) {
	header, err := source.ReadHeaderRow()
	if err != nil {
		return Table{}, wrap.Error(err, "failed to read header row")
	}
	if len(header) == 0 {
		return Table{}, errNoColumns
	}

	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return Table{}, fmt.Errorf("header column %d is blank", i+1)
		}
		if seen[name] {
			return Table{}, fmt.Errorf("duplicate column '%s' in header", name)
		}
		seen[name] = true
		header[i] = name
	}
	if !seen[ColumnDate] {
		return Table{}, MissingColumnError{Column: ColumnDate}
	}

	values := make([][]string, len(header))
	schema := csv.NewSchema(header)

	for {
		row, rowNumber, done, err := source.ReadRow()
		if err != nil {
			return Table{}, err
		}
		if done {
			break
		}
		if isBlankRow(row) {
			continue
		}
		if len(row) != len(header) {
			return Table{}, fmt.Errorf(
				"row %d has %d fields, but header has %d columns",
				rowNumber,
				len(row),
				len(header),
			)
		}

		for i, field := range row {
			field = strings.TrimSpace(field)

			if header[i] == ColumnDate {
				date, err := ParseDate(field)
				if err != nil {
					return Table{}, wrap.Errorf(err, "invalid %s in row %d", ColumnDate, rowNumber)
				}
				field = date.Format(csv.DateLayout)
			} else if countColumns[header[i]] {
				if _, err := strconv.ParseInt(field, 10, 64); err != nil {
					return Table{}, fmt.Errorf(
						"invalid %s in row %d: '%s' is not an integer",
						header[i],
						rowNumber,
						field,
					)
				}
			}

			values[i] = append(values[i], field)
		}

		if err := schema.DeduceDataTypesFromRow(row); err != nil {
			return Table{}, wrap.Errorf(err, "failed to deduce data types in row %d", rowNumber)
		}
	}

	columns := make([]series.Series, len(header))
	for i, name := range header {
		columns[i] = series.New(values[i], seriesType(name, schema.Columns[i].DataType), name)
	}

	table, err := newTable(dataframe.New(columns...))
	if err != nil {
		return Table{}, err
	}

	log.Debugf("loaded rental table with %d rows and %d columns", table.Len(), len(header))
	return table, nil
}

func seriesType(column string, deduced csv.DataType) series.Type {
	switch {
	case countColumns[column]:
		return series.Int
	case column == ColumnDate, categoryColumns[column]:
		return series.String
	}

	switch deduced {
	case csv.DataTypeInt:
		return series.Int
	case csv.DataTypeFloat:
		return series.Float
	default:
		return series.String
	}
}

func isBlankRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
