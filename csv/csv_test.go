package csv_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/bikedash/csv"
)

func TestDeduceFieldDelimiter(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected rune
	}{
		{
			name:     "comma",
			input:    "dateday,weather_cond,count\n2011-01-01,Misty/Cloudy,985\n",
			expected: ',',
		},
		{
			name:     "semicolon with commas in quotes",
			input:    "dateday;weather_cond;count\n2011-01-01;\"Rain, light\";985\n",
			expected: ';',
		},
		{
			name:     "tab",
			input:    "dateday\tweather_cond\tcount\n2011-01-01\tClear Sky\t985\n",
			expected: '\t',
		},
		{
			name:     "single column falls back to first candidate",
			input:    "dateday\n2011-01-01\n",
			expected: ',',
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			delimiter, err := csv.DeduceFieldDelimiter(
				strings.NewReader(testCase.input),
				20,
				csv.DefaultDelimitersToCheck,
			)
			require.NoError(t, err)
			assert.Equal(t, string(testCase.expected), string(delimiter))
		})
	}
}

func TestReader(t *testing.T) {
	input := "dateday;count\n2011-01-01; 985\n2011-01-02;801\n"

	reader, err := csv.NewReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, ';', reader.Delimiter())

	header, err := reader.ReadHeaderRow()
	require.NoError(t, err)
	assert.Equal(t, []string{"dateday", "count"}, header)

	row, rowNumber, done, err := reader.ReadRow()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 2, rowNumber)
	assert.Equal(t, []string{"2011-01-01", "985"}, row)

	_, _, done, err = reader.ReadRow()
	require.NoError(t, err)
	assert.False(t, done)

	_, _, done, err = reader.ReadRow()
	require.NoError(t, err)
	assert.True(t, done)
}

func TestReaderSkipsByteOrderMark(t *testing.T) {
	input := "\ufeff\"dateday\";count\n2011-01-01;985\n"

	reader, err := csv.NewReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, ';', reader.Delimiter())

	header, err := reader.ReadHeaderRow()
	require.NoError(t, err)
	assert.Equal(t, []string{"dateday", "count"}, header)
}

func TestReaderRowFieldCountMismatch(t *testing.T) {
	reader, err := csv.NewReader(strings.NewReader("a,b\n1,2,3\n"))
	require.NoError(t, err)

	_, err = reader.ReadHeaderRow()
	require.NoError(t, err)

	_, _, _, err = reader.ReadRow()
	assert.ErrorContains(t, err, "row 2")
}

func TestDeduceDataType(t *testing.T) {
	testCases := []struct {
		field    string
		expected csv.DataType
	}{
		{"985", csv.DataTypeInt},
		{"0.344167", csv.DataTypeFloat},
		{"2011-01-01", csv.DataTypeDate},
		{"2011-01-01T10:00:00Z", csv.DataTypeTimestamp},
		{"9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", csv.DataTypeUUID},
		{"Misty/Cloudy", csv.DataTypeText},
	}

	for _, testCase := range testCases {
		t.Run(testCase.field, func(t *testing.T) {
			dataType, isBlank := csv.DeduceDataType(testCase.field)
			assert.False(t, isBlank)
			assert.Equal(t, testCase.expected, dataType)
		})
	}

	_, isBlank := csv.DeduceDataType("")
	assert.True(t, isBlank)
}

func TestDeduceDataTypesFromRow(t *testing.T) {
	schema := csv.NewSchema([]string{"count", "temp", "note", "weather"})

	require.NoError(t, schema.DeduceDataTypesFromRow([]string{"1", "1", "", "Clear"}))
	require.NoError(t, schema.DeduceDataTypesFromRow([]string{"2", "0.5", "", "2011-01-01"}))

	assert.Equal(t, csv.DataTypeInt, schema.Columns[0].DataType)
	assert.Equal(t, csv.DataTypeFloat, schema.Columns[1].DataType)
	assert.True(t, schema.Columns[2].Optional)
	assert.Equal(t, csv.DataTypeText, schema.Columns[3].DataType)

	errs := schema.Validate()
	assert.Len(t, errs, 1, "column with only blank values has no data type")

	assert.Error(t, schema.DeduceDataTypesFromRow([]string{"1", "2", "3", "4", "5"}))
	assert.Equal(t, []string{"count", "temp", "note", "weather"}, schema.ColumnNames())
}

func TestDataTypeJSON(t *testing.T) {
	encoded, err := csv.DataTypeFloat.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"FLOAT"`, string(encoded))

	var decoded csv.DataType
	require.NoError(t, decoded.UnmarshalJSON([]byte(`"UUID"`)))
	assert.Equal(t, csv.DataTypeUUID, decoded)
	assert.Equal(t, "INVALID_DATA_TYPE", csv.DataType(0).String())
}
