// Package gostplot renders the enrichment result charts as standalone
// HTML: a Manhattan-style overview of all terms and a top-terms bar
// chart.
package gostplot

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"goEnrich/pkg/gprofiler"
)

// g:GOSt source palette
var SourceColors = map[string]string{
	"GO:MF": "#dc3912",
	"GO:BP": "#ff9900",
	"GO:CC": "#109618",
	"KEGG":  "#dd4477",
	"REAC":  "#3366cc",
	"WP":    "#0099c6",
	"TF":    "#5574a6",
	"MIRNA": "#22aa99",
	"HPA":   "#6633cc",
	"CORUM": "#66aa00",
	"HP":    "#990099",
}

var (
	MinSymbolSize = 4
	MaxSymbolSize = 18
)

// Manhattan builds the gostplot-style scatter: one series per source,
// x = per-source term order laid out in source blocks, y = -log10(p)
// capped, symbol size scaled by intersection size.
func Manhattan(results []*gprofiler.Result) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "560px"}),
		charts.WithTitleOpts(opts.Title{Title: "g:GOSt over-representation"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "-log10(p-adj)"}),
	)

	maxIntersection := 1
	bySource := make(map[string][]*gprofiler.Result)
	var sources []string
	for _, result := range results {
		if _, ok := bySource[result.Source]; !ok {
			sources = append(sources, result.Source)
		}
		bySource[result.Source] = append(bySource[result.Source], result)
		if result.IntersectionSize > maxIntersection {
			maxIntersection = result.IntersectionSize
		}
	}

	offset := 0
	for _, source := range sources {
		var points []opts.ScatterData
		width := 0
		for _, result := range bySource[source] {
			if result.SourceOrder > width {
				width = result.SourceOrder
			}
			points = append(points, opts.ScatterData{
				Name:       fmt.Sprintf("%s %s p=%.2e", result.Native, result.Name, result.PValue),
				Value:      []any{offset + result.SourceOrder, result.LogP()},
				SymbolSize: symbolSize(result.IntersectionSize, maxIntersection),
			})
		}
		var seriesOpts []charts.SeriesOpts
		if color, ok := SourceColors[source]; ok {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
		}
		scatter.AddSeries(source, points, seriesOpts...)
		offset += width + width/10 + 1
	}

	return scatter
}

// TopTerms builds a horizontal bar chart of the n most significant
// terms across all sources.
func TopTerms(response *gprofiler.Response, n int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Top %d enriched terms", n)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "-log10(p-adj)"}),
	)

	top := response.TopN(n)
	// most significant on top after axis flip
	var names []string
	var values []opts.BarData
	for i := len(top) - 1; i >= 0; i-- {
		result := top[i]
		names = append(names, fmt.Sprintf("%s %s", result.Native, result.Name))
		values = append(values, opts.BarData{
			Name:  result.Name,
			Value: result.LogP(),
			ItemStyle: &opts.ItemStyle{
				Color: SourceColors[result.Source],
			},
		})
	}

	bar.SetXAxis(names).AddSeries("-log10(p-adj)", values)
	bar.XYReversal()
	return bar
}

func symbolSize(intersection, maxIntersection int) int {
	size := MinSymbolSize + intersection*(MaxSymbolSize-MinSymbolSize)/maxIntersection
	if size > MaxSymbolSize {
		return MaxSymbolSize
	}
	return size
}
