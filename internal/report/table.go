package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSlices renders a jurisdiction's slices as a table, one row per slice.
func PrintSlices(w io.Writer, rec SliceRecord) error {
	green := color.New(color.FgGreen).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	table := tablewriter.NewWriter(w)

	// --- 1. Define Headers ---
	table.Header([]string{"Slice", "Start", "End", "Peak Date", "Peak"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for k, s := range rec.Slices {
		peakDate, peakValue := faint("-"), faint("-")
		if s.Peak != nil {
			peakDate = FormatDate(s.Peak.Date)
			peakValue = green(FormatCount(s.Peak.Value))
		}
		data = append(data, []string{
			strconv.Itoa(k + 1),
			FormatDate(rec.DayDate(s.Start)),
			FormatDate(rec.DayDate(s.End)),
			peakDate,
			peakValue,
		})
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s: %d slices, smooth factor %g, y-axis max %s\n",
		rec.Name, len(rec.Slices), rec.SmoothFactor, FormatCount(rec.YMax))
	return err
}
