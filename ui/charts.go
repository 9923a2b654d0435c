package ui

import (
	"io"
	"math"
	"slices"

	"cricdash/domain/chart"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "900px"
	chartHeight = "460px"
)

// renderChartPage writes an HTML page with one echarts chart per ready
// outcome. Unavailable charts are left out.
func renderChartPage(w io.Writer, title string, outcomes []chart.Outcome) error {
	page := components.NewPage()
	page.PageTitle = title
	for _, o := range outcomes {
		switch {
		case o.Ranked != nil && o.Ranked.Kind == chart.KindPie:
			page.AddCharts(pieChart(*o.Ranked))
		case o.Ranked != nil:
			page.AddCharts(barChart(*o.Ranked))
		case o.Histogram != nil:
			page.AddCharts(histogramChart(*o.Histogram))
		}
	}
	return page.Render(w)
}

func globalOpts(title, xLabel, yLabel string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: yLabel}),
	}
}

func barChart(res chart.RankedResult) *charts.Bar {
	labels := res.Labels()
	data := make([]opts.BarData, len(res.Entries))
	for i, e := range res.Entries {
		data[i] = opts.BarData{Value: e.Value}
	}

	bar := charts.NewBar()
	if res.Kind == chart.KindBarH {
		// Horizontal bars are drawn bottom-up; reverse so rank 1 is on top.
		slices.Reverse(labels)
		slices.Reverse(data)
		bar.SetGlobalOptions(globalOpts(res.Title, res.XLabel, res.YLabel)...)
		bar.SetXAxis(labels).AddSeries(orDefault(res.XLabel, res.Title), data)
		bar.XYReversal()
		return bar
	}

	bar.SetGlobalOptions(globalOpts(res.Title, res.XLabel, res.YLabel)...)
	bar.SetXAxis(labels).AddSeries(orDefault(res.YLabel, res.Title), data)
	return bar
}

func pieChart(res chart.RankedResult) *charts.Pie {
	data := make([]opts.PieData, len(res.Entries))
	for i, e := range res.Entries {
		data[i] = opts.PieData{Name: e.Label, Value: e.Value}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: res.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	pie.AddSeries(res.Title, data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}

func histogramChart(hist chart.Histogram) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(hist.Title, hist.XLabel, hist.YLabel)...)
	bar.SetXAxis(binLabels(hist.Edges))
	for _, s := range hist.Series {
		data := make([]opts.BarData, len(s.Counts))
		for i, c := range s.Counts {
			data[i] = opts.BarData{Value: c}
		}
		bar.AddSeries(s.Name, data)
	}
	return bar
}

// binLabels names each bin by its edges, e.g. "10-20".
func binLabels(edges []float64) []string {
	if len(edges) < 2 {
		return []string{}
	}
	labels := make([]string, len(edges)-1)
	for i := range labels {
		labels[i] = formatNumber(roundEdge(edges[i])) + "-" + formatNumber(roundEdge(edges[i+1]))
	}
	return labels
}

func roundEdge(f float64) float64 {
	return math.Round(f*100) / 100
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
