package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"epicurve/internal/curve"

	"github.com/rs/zerolog/log"
)

// ValueType selects how the data column is parsed.
type ValueType string

const (
	IntValues   ValueType = "int"
	FloatValues ValueType = "float"
)

// Column names understood by ReadCSV.
const (
	colDate       = "date"
	colState      = "state"
	colLocation   = "location"
	colISOCode    = "iso_code"
	colPopulation = "population"
)

// aggregatePrefix marks world dataset rows that aggregate several countries.
const aggregatePrefix = "OWID"

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DataKey       string    // column holding the cumulative value
	ValueType     ValueType // default: IntValues
	DateFormat    string    // default: "2006-01-02"
	MinPopulation float64   // world rows below this population are skipped
}

// DefaultCSVOptions returns the options used for the bundled datasets.
func DefaultCSVOptions(dataKey string) *CSVOptions {
	return &CSVOptions{
		DataKey:       dataKey,
		ValueType:     IntValues,
		DateFormat:    "2006-01-02",
		MinPopulation: 1_000_000,
	}
}

// LoadCSV loads every jurisdiction of a dataset file.
func LoadCSV(filename string, opts *CSVOptions) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	ds, err := ReadCSV(file, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	log.Debug().Str("path", filename).Int("jurisdictions", ds.Len()).Msg("Loaded dataset")
	return ds, nil
}

// ReadCSV parses a dataset with one row per jurisdiction and day. The
// jurisdiction comes from the "state" column (US data) or the "location"
// column (world data). Unparsable values repeat the jurisdiction's previous
// value so the cumulative series has no holes.
func ReadCSV(r io.Reader, opts *CSVOptions) (*Dataset, error) {
	if opts == nil || opts.DataKey == "" {
		return nil, errors.New("data key is required")
	}
	dateFormat := opts.DateFormat
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	if _, ok := cols[colDate]; !ok {
		return nil, fmt.Errorf("missing %q column", colDate)
	}
	if _, ok := cols[opts.DataKey]; !ok {
		return nil, fmt.Errorf("missing %q column", opts.DataKey)
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	ds := NewDataset()
	prev := make(map[string]float64) // last parsed value per key; 0 before the first
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if isAggregate(field(record, colISOCode), field(record, colPopulation), opts.MinPopulation) {
			continue
		}

		jurisdiction := field(record, colState)
		if jurisdiction == "" {
			jurisdiction = field(record, colLocation)
		}
		if jurisdiction == "" {
			continue
		}
		key := Key(jurisdiction)

		date, err := time.Parse(dateFormat, field(record, colDate))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date: %w", line, err)
		}

		value, ok := parseValue(field(record, opts.DataKey), opts.ValueType)
		if !ok {
			value = prev[key]
		} else {
			prev[key] = value
		}

		ds.Append(key, curve.TimePoint{Date: date, Cumulative: value})
	}

	return ds, nil
}

// isAggregate reports whether a world dataset row should be left out: regional
// aggregates and countries below the population floor.
func isAggregate(isoCode, population string, minPopulation float64) bool {
	if isoCode == "" {
		return false
	}
	if strings.HasPrefix(isoCode, aggregatePrefix) {
		return true
	}
	if pop, err := strconv.ParseFloat(population, 64); err == nil && pop < minPopulation {
		return true
	}
	return false
}

func parseValue(raw string, vt ValueType) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if vt != FloatValues {
		v = math.Trunc(v)
	}
	return v, true
}
