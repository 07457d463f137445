package visuals

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"epicurve/internal/curve"
	"epicurve/internal/report"
)

// maxPoints is roughly where Mermaid's xychart starts overlapping labels.
const maxPoints = 60

// CurveDiagram creates a Mermaid xychart-beta body for one jurisdiction. Daily
// values and slice peaks are bars, the 7-day average and its smoothed version
// are lines. The y-axis is clipped at the analysis' y maximum.
func CurveDiagram(title, valueLabel string, a curve.Analysis) string {
	s := a.Series
	if s.Len() == 0 {
		return ""
	}

	// Subsample points if the chart is too wide for Mermaid's layout engine
	subsampleRate := 1
	if s.Len() > maxPoints {
		subsampleRate = int(math.Ceil(float64(s.Len()) / float64(maxPoints)))
	}
	var sampled []int
	for i := 0; i < s.Len(); i++ {
		if i%subsampleRate == 0 || i == s.Len()-1 {
			sampled = append(sampled, i)
		}
	}

	labels := make([]string, len(sampled))
	bars := make([]string, len(sampled))
	averages := make([]string, len(sampled))
	smoothed := make([]string, len(sampled))
	for k, i := range sampled {
		labels[k] = fmt.Sprintf("\"%s\"", s.Dates[i].Format("Jan02"))
		bars[k] = chartValue(s.Delta[i], a.YMax)
		averages[k] = chartValue(s.Avg7[i], a.YMax)
		smoothed[k] = chartValue(s.Avg7Smooth[i], a.YMax)
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", escape(title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"%s\" 0 --> %d\n", escape(valueLabel), int(math.Ceil(a.YMax))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(bars, ", ")))
	if markers := peakMarkers(a, sampled); markers != nil {
		sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(markers, ", ")))
	}
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(averages, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(smoothed, ", ")))
	return sb.String()
}

// peakMarkers returns a series that is zero except at the sampled point
// covering each slice peak, where it carries the peak value. It returns nil
// when no slice has a peak.
func peakMarkers(a curve.Analysis, sampled []int) []string {
	values := make([]float64, len(sampled))
	found := false
	for _, p := range a.Peaks() {
		// last sampled index at or before the peak
		k := sort.SearchInts(sampled, p.Index+1) - 1
		if k < 0 {
			continue
		}
		values[k] = math.Max(values[k], p.Value)
		found = true
	}
	if !found {
		return nil
	}

	result := make([]string, len(values))
	for k, v := range values {
		result[k] = chartValue(v, a.YMax)
	}
	return result
}

// CurveChart wraps CurveDiagram in a fenced mermaid block for Markdown.
func CurveChart(title, valueLabel string, a curve.Analysis) string {
	body := CurveDiagram(title, valueLabel, a)
	if body == "" {
		return ""
	}
	return "```mermaid\n" + body + "```"
}

// PeakList renders the slice peaks as a Markdown list, one line per peak.
func PeakList(a curve.Analysis) string {
	var sb strings.Builder
	for k, p := range a.Peaks() {
		sb.WriteString(fmt.Sprintf("- Peak %d: %s (%s)\n", k+1, report.FormatCount(p.Value), report.FormatDate(p.Date)))
	}
	return sb.String()
}

// Document assembles the Markdown page of one jurisdiction.
func Document(name, valueLabel, source string, a curve.Analysis, generated time.Time) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s [%s]\n\n", valueLabel, name))
	if chart := CurveChart(name, valueLabel, a); chart != "" {
		sb.WriteString(chart)
		sb.WriteString("\n\n")
	}
	if peaks := PeakList(a); peaks != "" {
		sb.WriteString("## Peaks\n\n")
		sb.WriteString(peaks)
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Datasource: %s; Generated: %s; Smoothing: %gx\n", source, report.FormatDate(generated), a.SmoothFactor))
	return sb.String()
}

// chartValue clamps a value into the drawable range [0, yMax]; sentinel
// days are drawn at zero.
func chartValue(v, yMax float64) string {
	if !curve.Defined(v) || v < 0 {
		v = 0
	}
	if yMax > 0 && v > yMax {
		v = yMax
	}
	return fmt.Sprintf("%.1f", v)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
