package csv

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"hermannm.dev/enumnames"
)

type DataType uint8

const (
	DataTypeText DataType = iota + 1
	DataTypeInt
	DataTypeFloat
	DataTypeDate
	DataTypeTimestamp
	DataTypeUUID
)

var dataTypeNames = enumnames.NewMap(map[DataType]string{
	DataTypeText:      "TEXT",
	DataTypeInt:       "INTEGER",
	DataTypeFloat:     "FLOAT",
	DataTypeDate:      "DATE",
	DataTypeTimestamp: "TIMESTAMP",
	DataTypeUUID:      "UUID",
})

func (dataType DataType) IsValid() bool {
	return dataTypeNames.ContainsEnumValue(dataType)
}

func (dataType DataType) String() string {
	return dataTypeNames.GetNameOrFallback(dataType, "INVALID_DATA_TYPE")
}

func (dataType DataType) MarshalJSON() ([]byte, error) {
	return dataTypeNames.MarshalToNameJSON(dataType)
}

func (dataType *DataType) UnmarshalJSON(bytes []byte) error {
	return dataTypeNames.UnmarshalFromNameJSON(bytes, dataType)
}

const DateLayout = "2006-01-02"

func DeduceDataType(field string) (deducedType DataType, isBlank bool) {
	if field == "" {
		return 0, true
	}
	if _, err := strconv.ParseInt(field, 10, 64); err == nil {
		return DataTypeInt, false
	}
	if _, err := strconv.ParseFloat(field, 64); err == nil {
		return DataTypeFloat, false
	}
	if _, err := time.Parse(DateLayout, field); err == nil {
		return DataTypeDate, false
	}
	if _, err := time.Parse(time.RFC3339, field); err == nil {
		return DataTypeTimestamp, false
	}
	if _, err := uuid.Parse(field); err == nil {
		return DataTypeUUID, false
	}
	return DataTypeText, false
}

type Schema struct {
	Columns []Column `json:"columns"`
}

type Column struct {
	Name     string   `json:"name"`
	DataType DataType `json:"dataType"`
	Optional bool     `json:"optional"`
}

func NewSchema(columnNames []string) Schema {
	columns := make([]Column, 0, len(columnNames))
	for _, columnName := range columnNames {
		columns = append(columns, Column{Name: columnName})
	}

	return Schema{Columns: columns}
}

// Unlike a strict schema, columns that mix data types are widened instead of rejected: integers
// mixed with floats become FLOAT, and any other mix becomes TEXT.
func (schema Schema) DeduceDataTypesFromRow(row []string) error {
	if len(row) > len(schema.Columns) {
		return errors.New("row contains more fields than there are columns")
	}

	for i, field := range row {
		column := schema.Columns[i]

		deducedType, isBlank := DeduceDataType(field)
		if isBlank {
			column.Optional = true
		} else if !column.DataType.IsValid() {
			column.DataType = deducedType
		} else if column.DataType != deducedType {
			column.DataType = widenDataType(column.DataType, deducedType)
		}

		schema.Columns[i] = column
	}

	return nil
}

func widenDataType(current DataType, deduced DataType) DataType {
	isNumber := func(dataType DataType) bool {
		return dataType == DataTypeInt || dataType == DataTypeFloat
	}

	if isNumber(current) && isNumber(deduced) {
		return DataTypeFloat
	}
	return DataTypeText
}

func (schema Schema) Validate() []error {
	var errs []error

	for i, column := range schema.Columns {
		if err := column.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("column %d ('%s'): %w", i, column.Name, err))
		}
	}

	return errs
}

func (column Column) Validate() error {
	if column.Name == "" {
		return errors.New("column name is blank")
	}

	if !column.DataType.IsValid() {
		return errors.New("no data type could be deduced, as all values were blank")
	}

	return nil
}

func (schema Schema) ColumnNames() []string {
	names := make([]string, len(schema.Columns))
	for i, column := range schema.Columns {
		names[i] = column.Name
	}
	return names
}
