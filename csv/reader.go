package csv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"

	"hermannm.dev/wrap"
)

type Reader struct {
	inner      *csv.Reader
	currentRow int
}

// NewReader deduces the field delimiter from the first rows of the file before reading it.
func NewReader(csvFile io.ReadSeeker) (*Reader, error) {
	delimiter, err := DeduceFieldDelimiter(csvFile, 20, DefaultDelimitersToCheck)
	if err != nil {
		return nil, err
	}

	return &Reader{inner: newInnerReader(skipByteOrderMark(csvFile), delimiter), currentRow: 0}, nil
}

// Excel's "CSV UTF-8" export starts the file with a UTF-8 byte order mark.
const byteOrderMark = "\ufeff"

func skipByteOrderMark(csvFile io.Reader) io.Reader {
	buffered := bufio.NewReader(csvFile)
	if start, err := buffered.Peek(len(byteOrderMark)); err == nil && string(start) == byteOrderMark {
		_, _ = buffered.Discard(len(byteOrderMark))
	}
	return buffered
}

func newInnerReader(csvFile io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(csvFile)
	reader.ReuseRecord = true
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	return reader
}

func (reader *Reader) Delimiter() rune {
	return reader.inner.Comma
}

// The returned row is only valid until the next call to ReadRow, as the underlying buffer is
// reused.
func (reader *Reader) ReadRow() (row []string, rowNumber int, done bool, err error) {
	reader.currentRow++

	row, err = reader.inner.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, true, nil
		} else {
			return nil, 0, false, wrap.Errorf(err, "failed to read CSV row %d", reader.currentRow)
		}
	}

	return row, reader.currentRow, false, nil
}

func (reader *Reader) ReadHeaderRow() (row []string, err error) {
	row, rowNumber, done, err := reader.ReadRow()
	if err != nil {
		return nil, err
	}
	if done {
		return nil, errors.New("csv file ended before header row")
	}
	if rowNumber != 1 {
		return nil, errors.New("tried to read header row after reading previous rows")
	}

	header := make([]string, len(row))
	copy(header, row)
	return header, nil
}
