package excel

import (
	"fmt"
	"io"

	"cricdash/domain/chart"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// Writer exports evaluated charts as single-sheet workbooks: the data as a
// table starting at A1 and a native Excel chart drawn next to it.
type Writer struct{}

// NewWriter creates a chart exporter.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteRanked writes one ranked result as label/value rows.
func (x *Writer) WriteRanked(w io.Writer, res chart.RankedResult) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{orDefault(res.XLabel, "Label"), orDefault(res.YLabel, "Value")}
	if err := writeHeader(f, headers); err != nil {
		return err
	}
	for i, e := range res.Entries {
		if err := writeRow(f, i+2, e.Label, e.Value); err != nil {
			return err
		}
	}

	if n := len(res.Entries); n > 0 {
		last := n + 1
		err := f.AddChart(exportSheet, "D2", &excelize.Chart{
			Type: chartType(res.Kind),
			Series: []excelize.ChartSeries{{
				Name:       ref("B", 1, 1),
				Categories: ref("A", 2, last),
				Values:     ref("B", 2, last),
			}},
			Title: []excelize.RichTextRun{{Text: res.Title}},
		})
		if err != nil {
			return fmt.Errorf("add chart %s: %w", res.SpecID, err)
		}
	}
	return f.Write(w)
}

// WriteHistogram writes bin edges and one count column per series.
func (x *Writer) WriteHistogram(w io.Writer, hist chart.Histogram) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Bin start", "Bin end"}
	for _, s := range hist.Series {
		headers = append(headers, s.Name)
	}
	if err := writeHeader(f, headers); err != nil {
		return err
	}

	bins := len(hist.Edges) - 1
	for b := 0; b < bins; b++ {
		cells := []interface{}{hist.Edges[b], hist.Edges[b+1]}
		for _, s := range hist.Series {
			cells = append(cells, s.Counts[b])
		}
		if err := writeRow(f, b+2, cells...); err != nil {
			return err
		}
	}

	if bins > 0 {
		last := bins + 1
		series := make([]excelize.ChartSeries, len(hist.Series))
		for i := range hist.Series {
			col, _ := excelize.ColumnNumberToName(i + 3)
			series[i] = excelize.ChartSeries{
				Name:       ref(col, 1, 1),
				Categories: ref("A", 2, last),
				Values:     ref(col, 2, last),
			}
		}
		anchor, _ := excelize.CoordinatesToCellName(len(headers)+2, 2)
		err := f.AddChart(exportSheet, anchor, &excelize.Chart{
			Type:   excelize.Col,
			Series: series,
			Title:  []excelize.RichTextRun{{Text: hist.Title}},
		})
		if err != nil {
			return fmt.Errorf("add histogram %s: %w", hist.SpecID, err)
		}
	}
	return f.Write(w)
}

func writeHeader(f *excelize.File, headers []string) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return err
		}
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	end, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(exportSheet, "A1", end, style); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(exportSheet, "A", lastCol, 18)
}

func writeRow(f *excelize.File, row int, cells ...interface{}) error {
	for c, v := range cells {
		cell, _ := excelize.CoordinatesToCellName(c+1, row)
		if err := f.SetCellValue(exportSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func ref(col string, from, to int) string {
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", exportSheet, col, from, col, to)
}

func chartType(kind chart.Kind) excelize.ChartType {
	switch kind {
	case chart.KindBarH:
		return excelize.Bar
	case chart.KindPie:
		return excelize.Pie
	default:
		return excelize.Col
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
