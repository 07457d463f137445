// Package report writes the per-folder outputs of an analysis run: the slice
// peak log, the per-jurisdiction slice files, a columnar series export and
// console tables.
package report

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the short US date used in logs and labels, e.g. 03/25/20.
const DateLayout = "01/02/06"

// FormatDate formats a day in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatCount renders a rounded count with thousands separators.
func FormatCount(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}
