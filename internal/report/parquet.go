package report

import (
	"fmt"
	"os"
	"time"

	"epicurve/internal/curve"

	"github.com/parquet-go/parquet-go"
)

// SeriesRow is one day of one jurisdiction's derived series.
type SeriesRow struct {
	// Key is the normalized jurisdiction key
	Key string `parquet:"key,snappy,dict"`

	// Date is the calendar day (stored as TIMESTAMP)
	Date time.Time `parquet:"date,snappy"`

	// Delta is the daily change of the cumulative value
	Delta float64 `parquet:"delta,snappy"`

	// Avg7 is the 7-day average, null in the warm-up days
	Avg7 *float64 `parquet:"avg7,optional,snappy"`

	// Avg7Smooth is the smoothed 7-day average, null in the warm-up days
	Avg7Smooth *float64 `parquet:"avg7_smooth,optional,snappy"`

	// Slice is the index of the slice containing the day; boundary days
	// belong to the later slice
	Slice int32 `parquet:"slice,snappy"`

	// IsPeak marks the peak day of a slice
	IsPeak bool `parquet:"is_peak"`
}

// SeriesRows flattens an analysis into one row per day.
func SeriesRows(a curve.Analysis) []SeriesRow {
	s := a.Series
	avg := curve.Nullable(s.Avg7)
	smooth := curve.Nullable(s.Avg7Smooth)

	sliceOf := make([]int32, s.Len())
	peaks := make(map[int]bool)
	for k, sl := range a.Slices {
		for i := sl.Start; i <= sl.End && i < len(sliceOf); i++ {
			sliceOf[i] = int32(k)
		}
		if sl.Peak != nil {
			peaks[sl.Peak.Index] = true
		}
	}

	rows := make([]SeriesRow, s.Len())
	for i := range rows {
		rows[i] = SeriesRow{
			Key:        a.Key,
			Date:       s.Dates[i],
			Delta:      s.Delta[i],
			Avg7:       avg[i],
			Avg7Smooth: smooth[i],
			Slice:      sliceOf[i],
			IsPeak:     peaks[i],
		}
	}
	return rows
}

// WriteSeriesParquet writes the derived series of several jurisdictions to a
// single Parquet file.
func WriteSeriesParquet(analyses []curve.Analysis, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[SeriesRow](file)
	for _, a := range analyses {
		if _, err := writer.Write(SeriesRows(a)); err != nil {
			_ = writer.Close()
			return fmt.Errorf("failed to write %s to parquet file: %w", a.Key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}
