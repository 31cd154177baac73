package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/version"

	"goEnrich/pkg/deg"
	"goEnrich/pkg/gostplot"
	"goEnrich/pkg/gprofiler"
)

// flag
var (
	input = flag.String(
		"i",
		"",
		"input DEG csv from the DE pipeline",
	)
	background = flag.String(
		"b",
		"",
		"background (universe) gene csv, optional",
	)
	prefix = flag.String(
		"o",
		"",
		"output prefix, default input without extension",
	)
	cfg = flag.String(
		"cfg",
		"",
		"optional yaml analysis profile, flags win",
	)
	organism = flag.String(
		"organism",
		gprofiler.Organism,
		"g:Profiler organism code",
	)
	sources = flag.String(
		"sources",
		strings.Join(gprofiler.DefaultSources, ","),
		"annotation sources, comma separated",
	)
	maxPadj = flag.Float64(
		"p",
		0.05,
		"keep genes with padj < P",
	)
	minLFC = flag.Float64(
		"fc",
		1.0,
		"keep genes with |log2FC| >= FC",
	)
	threshold = flag.Float64(
		"threshold",
		gprofiler.UserThreshold,
		"enrichment significance threshold",
	)
	correction = flag.String(
		"correction",
		gprofiler.CorrectionMethod,
		"multiple-testing correction: g_SCS, fdr or bonferroni",
	)
	ordered = flag.Bool(
		"ordered",
		false,
		"ordered query, genes ranked by padj",
	)
	all = flag.Bool(
		"all",
		false,
		"keep non-significant terms too",
	)
	top = flag.Int(
		"top",
		20,
		"term count of the top-terms chart",
	)
	apiURL = flag.String(
		"url",
		gprofiler.BaseURL,
		"g:Profiler base url",
	)
	timeout = flag.Duration(
		"timeout",
		2*time.Minute,
		"profile request timeout",
	)
)

func main() {
	version.LogVersion()
	flag.Parse()
	if *input == "" {
		flag.PrintDefaults()
		log.Fatal("-i is required")
	}
	if *prefix == "" {
		*prefix = strings.TrimSuffix(*input, filepath.Ext(*input))
	}
	if *cfg != "" {
		ApplyProfile(*cfg)
	}

	var table = simpleUtil.HandleError(deg.Load(*input))
	slog.Info("DEG", "input", *input, "rows", len(table.Genes))

	table.Filter(*maxPadj, *minLFC)
	table.Dedup()
	if *ordered {
		table.SortByPadj()
	}
	genes := table.Symbols()
	if len(genes) == 0 {
		log.Fatalf("no genes pass padj<%g && |log2FC|>=%g", *maxPadj, *minLFC)
	}
	slog.Info("Filtered", "genes", len(genes), "padj", *maxPadj, "log2FC", *minLFC)

	query := gprofiler.NewQuery(genes)
	query.Organism = *organism
	query.Sources = strings.Split(*sources, ",")
	query.UserThreshold = *threshold
	query.CorrectionMethod = *correction
	query.Ordered = *ordered
	query.AllResults = *all
	if *background != "" {
		query.SetBackground(simpleUtil.HandleError(deg.LoadBackground(*background)))
		slog.Info("Background", "input", *background, "genes", len(query.Background))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := gprofiler.NewClient(*apiURL, *timeout)
	response := simpleUtil.HandleError(client.Profile(ctx, query))
	if len(response.Result) == 0 {
		slog.Warn("no enriched terms", "genes", len(genes), "threshold", *threshold)
	}

	// 写入 enrichment table
	tsv := osUtil.Create(*prefix + ".enrich.tsv")
	response.WriteTSV(tsv)
	simpleUtil.CheckErr(tsv.Close())

	// 写入 GEM for Cytoscape EnrichmentMap
	gem := osUtil.Create(*prefix + ".gem.txt")
	response.WriteGEM(gem, Phenotype)
	simpleUtil.CheckErr(gem.Close())

	// 写入 excel
	WriteReport(*prefix+".enrich.xlsx", table, response)

	// charts
	manhattan := osUtil.Create(*prefix + ".gostplot.html")
	simpleUtil.CheckErr(gostplot.Manhattan(response.Result).Render(manhattan))
	simpleUtil.CheckErr(manhattan.Close())

	topTerms := osUtil.Create(*prefix + ".topterms.html")
	simpleUtil.CheckErr(gostplot.TopTerms(response, *top).Render(topTerms))
	simpleUtil.CheckErr(topTerms.Close())

	slog.Info("Done", "prefix", *prefix, "terms", len(response.Result))
}
