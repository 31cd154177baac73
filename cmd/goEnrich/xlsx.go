package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/xuri/excelize/v2"

	"goEnrich/pkg/deg"
	"goEnrich/pkg/gprofiler"
)

// WriteReport writes the multi-sheet xlsx report: filtered query genes,
// full enrichment table and the GEM table.
func WriteReport(path string, table *deg.Table, response *gprofiler.Response) {
	xlsx := excelize.NewFile()

	simpleUtil.HandleError(xlsx.NewSheet(QuerySheet))
	xlsx.SetSheetRow(QuerySheet, "A1", &table.Header)
	row := 2
	for _, gene := range table.Genes {
		xlsx.SetSheetRow(QuerySheet, fmt.Sprintf("A%d", row), &gene.Row)
		row++
	}

	simpleUtil.HandleError(xlsx.NewSheet(EnrichmentSheet))
	xlsx.SetSheetRow(EnrichmentSheet, "A1", &gprofiler.ResultTitle)
	row = 2
	for _, result := range response.Result {
		line := []any{
			result.Source,
			result.Native,
			result.Name,
			result.PValue,
			result.Significant,
			result.TermSize,
			result.QuerySize,
			result.IntersectionSize,
			result.EffectiveDomainSize,
			result.Precision,
			result.Recall,
			strings.Join(result.Intersection, ","),
			strings.Join(result.Evidences, ";"),
		}
		xlsx.SetSheetRow(EnrichmentSheet, fmt.Sprintf("A%d", row), &line)
		row++
	}

	simpleUtil.HandleError(xlsx.NewSheet(GEMSheet))
	xlsx.SetSheetRow(GEMSheet, "A1", &gprofiler.GEMTitle)
	row = 2
	for _, result := range response.Result {
		line := []any{
			result.Native,
			result.Name,
			result.PValue,
			result.PValue,
			Phenotype,
			strings.Join(result.Intersection, ","),
		}
		xlsx.SetSheetRow(GEMSheet, fmt.Sprintf("A%d", row), &line)
		row++
	}

	simpleUtil.CheckErr(xlsx.DeleteSheet("Sheet1"))

	log.Printf("SaveAs(%s)", path)
	simpleUtil.CheckErr(xlsx.SaveAs(path))
}
