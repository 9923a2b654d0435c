package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"cricdash/domain/chart"
	"cricdash/internal/container"
	"cricdash/internal/profiling"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	heading     = color.New(color.FgCyan, color.Bold)
	unavailable = color.New(color.FgRed)
)

func printDatasets(w io.Writer, c *container.Container) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Dataset", "Rows", "Columns", "Charts"})
	for _, name := range c.Registry.Names() {
		tbl, err := c.Registry.Get(name)
		if err != nil {
			continue
		}
		table.Append([]string{
			name,
			strconv.Itoa(tbl.Len()),
			strconv.Itoa(len(tbl.Columns())),
			strconv.Itoa(len(c.Catalog.IDs(name))),
		})
	}
	table.Render()

	for _, r := range c.Rejections {
		unavailable.Fprintf(w, "disabled %s\n", r)
	}
}

func printOutcomes(w io.Writer, outcomes []chart.Outcome) {
	for _, o := range outcomes {
		heading.Fprintf(w, "\n%s (%s)\n", o.Title, o.ID)
		switch {
		case !o.Ready():
			unavailable.Fprintf(w, "unavailable: %s\n", o.Reason)
		case o.Ranked != nil:
			printRanked(w, *o.Ranked)
		case o.Histogram != nil:
			printHistogram(w, *o.Histogram)
		}
	}
}

func printRanked(w io.Writer, res chart.RankedResult) {
	table := tablewriter.NewWriter(w)
	// Horizontal bars put the categories on the y axis.
	labels, values := res.XLabel, res.YLabel
	if res.Kind == chart.KindBarH {
		labels, values = values, labels
	}
	table.SetHeader([]string{"#", orDefault(labels, "Label"), orDefault(values, "Value")})
	for i, e := range res.Entries {
		table.Append([]string{strconv.Itoa(i + 1), e.Label, number(e.Value)})
	}
	table.Render()
}

func printHistogram(w io.Writer, hist chart.Histogram) {
	table := tablewriter.NewWriter(w)
	header := []string{orDefault(hist.XLabel, "Bin")}
	for _, s := range hist.Series {
		header = append(header, s.Name)
	}
	table.SetHeader(header)
	for i := 0; i+1 < len(hist.Edges); i++ {
		row := []string{number(hist.Edges[i]) + " - " + number(hist.Edges[i+1])}
		for _, s := range hist.Series {
			row = append(row, number(s.Counts[i]))
		}
		table.Append(row)
	}
	table.Render()
}

func printProfile(w io.Writer, profiles []profiling.ColumnProfile) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Column", "Kind", "Count", "Missing", "Distinct", "Mean", "Median", "Min", "Max", "Top"})
	for _, p := range profiles {
		row := []string{p.Name, p.Kind, strconv.Itoa(p.Count), strconv.Itoa(p.Missing), strconv.Itoa(p.Distinct)}
		if s := p.Summary; s != nil {
			row = append(row, number(s.Mean), number(s.Median), number(s.Min), number(s.Max))
		} else {
			row = append(row, "", "", "", "")
		}
		top := ""
		for i, v := range p.Top {
			if i > 0 {
				top += ", "
			}
			top += fmt.Sprintf("%s (%d)", v.Value, v.Count)
		}
		table.Append(append(row, top))
	}
	table.Render()
}

func number(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
