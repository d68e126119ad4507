package incidents

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Column names of the incident dataset.
const (
	ColumnID       = "incident_id"
	ColumnDate     = "date"
	ColumnRegion   = "state"
	ColumnLocality = "city_or_county"
	ColumnAddress  = "address"
	ColumnKilled   = "n_killed"
	ColumnInjured  = "n_injured"
)

var requiredColumns = []string{
	ColumnID,
	ColumnDate,
	ColumnRegion,
	ColumnLocality,
	ColumnAddress,
	ColumnKilled,
	ColumnInjured,
}

// LoadOptions controls how rows are coerced.
type LoadOptions struct {
	// DateFormat is a pattern accepted by DateLayout. Empty means DefaultDateFormat.
	DateFormat string
	// Strict aborts the load on the first defective row instead of skipping it.
	Strict bool
}

// Load fetches and parses a dataset into a Store. Every failure is a *LoadError.
func Load(ctx context.Context, src Source, opts LoadOptions) (*Store, error) {
	format := opts.DateFormat
	if format == "" {
		format = DefaultDateFormat
	}
	layout, err := DateLayout(format)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	defer func() {
		_ = rc.Close()
	}()

	records, defects, err := Parse(rc, layout, opts.Strict)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	return NewStore(records, defects), nil
}

// Parse reads CSV rows into records using a Go time layout for the date
// column. Rows failing coercion are returned as defects, or abort parsing
// when strict is set.
func Parse(r io.Reader, layout string, strict bool) ([]Record, []*RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("empty dataset: missing header")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, nil, err
	}

	var records []Record
	var defects []*RowError
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		record, rowErr := parseRow(row, index, layout, line)
		if rowErr != nil {
			if strict {
				return nil, nil, rowErr
			}
			defects = append(defects, rowErr)
			continue
		}
		records = append(records, record)
	}

	return records, defects, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRow(row []string, index map[string]int, layout string, line int) (Record, *RowError) {
	field := func(name string) (string, *RowError) {
		i := index[name]
		if i >= len(row) {
			return "", &RowError{Line: line, Column: name, Err: errors.New("missing field")}
		}
		return strings.TrimSpace(row[i]), nil
	}

	var rec Record
	var value string
	var rowErr *RowError

	if value, rowErr = field(ColumnID); rowErr != nil {
		return Record{}, rowErr
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return Record{}, &RowError{Line: line, Column: ColumnID, Value: value, Err: err}
	}
	rec.ID = id

	if value, rowErr = field(ColumnDate); rowErr != nil {
		return Record{}, rowErr
	}
	date, err := time.Parse(layout, value)
	if err != nil {
		return Record{}, &RowError{Line: line, Column: ColumnDate, Value: value, Err: err}
	}
	rec.Date = Day(date)

	if rec.Killed, rowErr = countField(field, ColumnKilled, line); rowErr != nil {
		return Record{}, rowErr
	}
	if rec.Injured, rowErr = countField(field, ColumnInjured, line); rowErr != nil {
		return Record{}, rowErr
	}

	if rec.Region, rowErr = field(ColumnRegion); rowErr != nil {
		return Record{}, rowErr
	}
	if rec.Locality, rowErr = field(ColumnLocality); rowErr != nil {
		return Record{}, rowErr
	}
	if rec.Address, rowErr = field(ColumnAddress); rowErr != nil {
		return Record{}, rowErr
	}

	return rec, nil
}

func countField(field func(string) (string, *RowError), column string, line int) (int, *RowError) {
	value, rowErr := field(column)
	if rowErr != nil {
		return 0, rowErr
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &RowError{Line: line, Column: column, Value: value, Err: err}
	}
	if n < 0 {
		return 0, &RowError{Line: line, Column: column, Value: value, Err: errNegative}
	}
	return n, nil
}
