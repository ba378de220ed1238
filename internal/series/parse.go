package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted date format (DD/MM/YYYY).
const DateLayout = "02/01/2006"

const (
	columnDate     = "date"
	columnCategory = "category"
	columnValue    = "value"
)

var (
	errMissingHeader = errors.New("missing header row")
	errEmptyCategory = errors.New("category is required")
	errFieldCount    = errors.New("wrong number of fields")
	requiredColumns  = []string{columnDate, columnCategory, columnValue}
)

const byteOrderMark = "\ufeff"

// LoadFile parses the CSV file at path.
func LoadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("series: open %s: %w", path, err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads CSV rows with the header date,category,value. Columns are
// located by header name, so their order may vary. Any bad row fails the
// whole parse.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: errMissingHeader}
	}
	if err != nil {
		return nil, csvError(err)
	}
	columns, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := reader.FieldPos(0)
		if len(row) != len(header) {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: got %d, want %d", errFieldCount, len(row), len(header))}
		}
		record, err := parseRow(row, columns, line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func locateColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, byteOrderMark)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, &ParseError{Line: 1, Column: required, Err: errors.New("column missing from header")}
		}
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int, line int) (Record, error) {
	rawDate := strings.TrimSpace(row[columns[columnDate]])
	date, err := time.Parse(DateLayout, rawDate)
	if err != nil {
		return Record{}, &ParseError{Line: line, Column: columnDate, Value: rawDate, Err: err}
	}

	category := strings.TrimSpace(row[columns[columnCategory]])
	if category == "" {
		return Record{}, &ParseError{Line: line, Column: columnCategory, Value: category, Err: errEmptyCategory}
	}

	rawValue := strings.TrimSpace(row[columns[columnValue]])
	value, err := strconv.ParseInt(rawValue, 10, 64)
	if err != nil {
		return Record{}, &ParseError{Line: line, Column: columnValue, Value: rawValue, Err: err}
	}

	return Record{Date: date, Category: category, Value: value}, nil
}

func csvError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return fmt.Errorf("series: read csv: %w", err)
}

// Group splits records into one Series per category, keeping categories in
// first-seen order and points in input order.
func Group(records []Record) []Series {
	index := make(map[string]int)
	out := make([]Series, 0)
	for _, rec := range records {
		i, ok := index[rec.Category]
		if !ok {
			i = len(out)
			index[rec.Category] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], Point{X: rec.Date, Y: rec.Value, Category: rec.Category})
	}
	return out
}
