package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"epicurve/internal/curve"
)

// SliceLogName is the file name of a folder's peak log.
const SliceLogName = "_slices.csv"

const sliceLogHeader = `"state", "date_peak", "cases_peak"`

// SliceLog appends one record per slice peak to a folder's _slices.csv.
type SliceLog struct {
	path string
}

// NewSliceLog creates dir if needed and starts a fresh log with its header.
func NewSliceLog(dir string) (*SliceLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, SliceLogName)
	if err := os.WriteFile(path, []byte(sliceLogHeader+"\n"), 0644); err != nil {
		return nil, fmt.Errorf("failed to create slice log: %w", err)
	}
	return &SliceLog{path: path}, nil
}

// Path returns the log file location.
func (l *SliceLog) Path() string {
	return l.path
}

// Append writes the peaks of a jurisdiction's slices in chronological order.
// Slices without a peak are left out.
func (l *SliceLog) Append(displayName string, slices []curve.Slice) error {
	var sb strings.Builder
	for _, s := range slices {
		if s.Peak == nil {
			continue
		}
		sb.WriteString(FormatRecord(displayName, *s.Peak))
		sb.WriteString("\n")
	}
	if sb.Len() == 0 {
		return nil
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open slice log: %w", err)
	}
	if _, err := file.WriteString(sb.String()); err != nil {
		file.Close()
		return fmt.Errorf("failed to append to slice log: %w", err)
	}
	return file.Close()
}

// FormatRecord renders one log line: name, peak date and peak value, each quoted.
func FormatRecord(displayName string, p curve.Peak) string {
	return fmt.Sprintf("%s, %s, %s", quote(displayName), quote(FormatDate(p.Date)), quote(FormatCount(p.Value)))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
