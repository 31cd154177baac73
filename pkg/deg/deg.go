package deg

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// column aliases of common DE pipelines (DESeq2 / edgeR / limma)
var (
	SymbolNames = []string{"gene", "gene_symbol", "symbol", "SYMBOL", "gene_name", "GeneID"}
	LFCNames    = []string{"log2FoldChange", "logFC", "log2fc", "log2FC"}
	PadjNames   = []string{"padj", "FDR", "adj.P.Val", "qvalue", "q_value"}
	PValueNames = []string{"pvalue", "PValue", "P.Value", "p_value"}
)

var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"NaN":  true,
	"nan":  true,
	"null": true,
}

type Gene struct {
	Symbol string
	Log2FC float64
	PValue float64
	Padj   float64

	// raw row for the report sheet
	Row []string
}

type Table struct {
	Header []string
	Genes  []*Gene

	symbolCol int
	lfcCol    int
	padjCol   int
	pvalueCol int
}

// Load reads a DE result CSV and resolves the symbol / log2FC / padj
// columns from their common aliases. The first column is the symbol
// fallback when no alias matches.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table := &Table{
		Header:    header,
		symbolCol: findColumn(header, SymbolNames, 0),
		lfcCol:    findColumn(header, LFCNames, -1),
		padjCol:   findColumn(header, PadjNames, -1),
		pvalueCol: findColumn(header, PValueNames, -1),
	}
	slog.Info("Load", "path", path, "rows", len(records)-1, "symbolCol", table.symbolCol, "lfcCol", table.lfcCol, "padjCol", table.padjCol)

	for i, row := range records[1:] {
		gene, err := table.parseRow(row)
		if err != nil {
			slog.Warn("Skip row", "path", path, "line", i+2, "err", err)
			continue
		}
		if gene == nil {
			continue
		}
		table.Genes = append(table.Genes, gene)
	}
	return table, nil
}

func (t *Table) parseRow(row []string) (*Gene, error) {
	if t.symbolCol >= len(row) {
		return nil, fmt.Errorf("short row: %d fields", len(row))
	}
	symbol := strings.TrimSpace(row[t.symbolCol])
	if missingTokens[symbol] {
		return nil, nil
	}

	gene := &Gene{
		Symbol: symbol,
		Log2FC: math.NaN(),
		PValue: math.NaN(),
		Padj:   math.NaN(),
		Row:    row,
	}
	var err error
	if gene.Log2FC, err = parseCell(row, t.lfcCol); err != nil {
		return nil, fmt.Errorf("log2FC: %w", err)
	}
	if gene.Padj, err = parseCell(row, t.padjCol); err != nil {
		return nil, fmt.Errorf("padj: %w", err)
	}
	if gene.PValue, err = parseCell(row, t.pvalueCol); err != nil {
		return nil, fmt.Errorf("pvalue: %w", err)
	}
	return gene, nil
}

// Filter keeps rows with padj < maxPadj and |log2FC| >= minAbsLFC. Rows
// with a missing padj or log2FC are dropped.
func (t *Table) Filter(maxPadj, minAbsLFC float64) {
	t.Genes = lo.Filter(
		t.Genes,
		func(gene *Gene, _ int) bool {
			if math.IsNaN(gene.Padj) || math.IsNaN(gene.Log2FC) {
				return false
			}
			return gene.Padj < maxPadj && math.Abs(gene.Log2FC) >= minAbsLFC
		},
	)
}

// Dedup de-duplicates by symbol, keeping the smallest padj. Original
// order is preserved for the kept rows.
func (t *Table) Dedup() {
	best := make(map[string]*Gene)
	for _, gene := range t.Genes {
		kept, ok := best[gene.Symbol]
		if !ok {
			best[gene.Symbol] = gene
			continue
		}
		if !math.IsNaN(gene.Padj) && (math.IsNaN(kept.Padj) || gene.Padj < kept.Padj) {
			best[gene.Symbol] = gene
		}
	}

	var genes []*Gene
	seen := make(map[string]bool)
	for _, gene := range t.Genes {
		if seen[gene.Symbol] {
			continue
		}
		seen[gene.Symbol] = true
		genes = append(genes, best[gene.Symbol])
	}
	t.Genes = genes
}

func (t *Table) Symbols() []string {
	return lo.Map(
		t.Genes,
		func(gene *Gene, _ int) string { return gene.Symbol },
	)
}

// SortByPadj orders rows by ascending padj, missing last. Used for the
// ordered-query mode where gene rank carries weight.
func (t *Table) SortByPadj() {
	sort.SliceStable(
		t.Genes,
		func(i, j int) bool {
			if math.IsNaN(t.Genes[j].Padj) {
				return !math.IsNaN(t.Genes[i].Padj)
			}
			if math.IsNaN(t.Genes[i].Padj) {
				return false
			}
			return t.Genes[i].Padj < t.Genes[j].Padj
		},
	)
}

// LoadBackground reads the universe gene list: one symbol per row, or
// an aliased symbol column when a header is present.
func LoadBackground(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	col := findColumn(header, SymbolNames, -1)
	if col < 0 {
		// headerless single-column list
		col = 0
	} else {
		records = records[1:]
	}

	var symbols []string
	for _, row := range records {
		if col >= len(row) {
			continue
		}
		symbol := strings.TrimSpace(row[col])
		if missingTokens[symbol] {
			continue
		}
		symbols = append(symbols, symbol)
	}
	return lo.Uniq(symbols), nil
}

func findColumn(header, names []string, fallback int) int {
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return fallback
}

func parseCell(row []string, col int) (float64, error) {
	if col < 0 || col >= len(row) {
		return math.NaN(), nil
	}
	cell := strings.TrimSpace(row[col])
	if missingTokens[cell] {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}
