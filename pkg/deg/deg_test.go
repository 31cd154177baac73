package deg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, "deg.csv",
		"gene_symbol,baseMean,log2FoldChange,pvalue,padj\n"+
			"TP53,100,2.5,1e-8,1e-6\n"+
			" BRCA1 ,50,-1.8,1e-5,2e-4\n"+
			"NA,10,0.1,0.5,0.9\n"+
			"MYC,80,not-a-number,1e-3,1e-2\n"+
			"EGFR,60,0.4,0.2,NA\n")

	table, err := Load(path)
	require.NoError(t, err)

	// NA symbol dropped, unparseable log2FC dropped
	require.Len(t, table.Genes, 3)
	assert.Equal(t, "TP53", table.Genes[0].Symbol)
	assert.Equal(t, "BRCA1", table.Genes[1].Symbol, "symbols are trimmed")
	assert.Equal(t, "EGFR", table.Genes[2].Symbol)
	assert.InDelta(t, 2.5, table.Genes[0].Log2FC, 1e-9)
	assert.InDelta(t, 1e-6, table.Genes[0].Padj, 1e-12)
}

func TestLoadColumnAliases(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"deseq2", "gene,log2FoldChange,pvalue,padj"},
		{"edger", "SYMBOL,logFC,PValue,FDR"},
		{"limma", "gene_name,logFC,P.Value,adj.P.Val"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, "deg.csv", tt.header+"\nTP53,2.0,1e-6,1e-4\n")
			table, err := Load(path)
			require.NoError(t, err)
			require.Len(t, table.Genes, 1)
			assert.Equal(t, "TP53", table.Genes[0].Symbol)
			assert.InDelta(t, 2.0, table.Genes[0].Log2FC, 1e-9)
			assert.InDelta(t, 1e-4, table.Genes[0].Padj, 1e-12)
		})
	}
}

func TestLoadFirstColumnFallback(t *testing.T) {
	path := writeCSV(t, "deg.csv", "id,log2FoldChange,padj\nTP53,1.5,0.01\n")
	table, err := Load(path)
	require.NoError(t, err)
	require.Len(t, table.Genes, 1)
	assert.Equal(t, "TP53", table.Genes[0].Symbol)
}

func TestLoadBOM(t *testing.T) {
	path := writeCSV(t, "deg.csv", "\ufeffgene,log2FoldChange,padj\nTP53,1.5,0.01\n")
	table, err := Load(path)
	require.NoError(t, err)
	require.Len(t, table.Genes, 1)
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeCSV(t, "deg.csv", "gene,log2FoldChange,padj\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	path := writeCSV(t, "deg.csv",
		"gene,log2FoldChange,padj\n"+
			"UP,2.0,1e-6\n"+
			"DOWN,-1.5,1e-4\n"+
			"EXACT,1.0,1e-3\n"+
			"WEAK,0.5,1e-6\n"+
			"NOTSIG,3.0,0.5\n"+
			"NOPADJ,3.0,NA\n")
	table, err := Load(path)
	require.NoError(t, err)

	table.Filter(0.05, 1.0)
	assert.Equal(t, []string{"UP", "DOWN", "EXACT"}, table.Symbols(),
		"|log2FC| inclusive, padj exclusive, missing padj dropped")
}

func TestDedup(t *testing.T) {
	path := writeCSV(t, "deg.csv",
		"gene,log2FoldChange,padj\n"+
			"TP53,2.0,1e-4\n"+
			"MYC,1.5,1e-3\n"+
			"TP53,2.2,1e-8\n"+
			"MYC,1.5,1e-3\n")
	table, err := Load(path)
	require.NoError(t, err)

	table.Dedup()
	require.Equal(t, []string{"TP53", "MYC"}, table.Symbols(), "order preserved, no duplicates")
	assert.InDelta(t, 1e-8, table.Genes[0].Padj, 1e-14, "smallest padj kept")
}

func TestSortByPadj(t *testing.T) {
	path := writeCSV(t, "deg.csv",
		"gene,log2FoldChange,padj\n"+
			"A,1.0,1e-2\n"+
			"B,1.0,NA\n"+
			"C,1.0,1e-6\n")
	table, err := Load(path)
	require.NoError(t, err)

	table.SortByPadj()
	assert.Equal(t, []string{"C", "A", "B"}, table.Symbols(), "missing padj last")
}

func TestLoadBackground(t *testing.T) {
	t.Run("with header", func(t *testing.T) {
		path := writeCSV(t, "bg.csv", "gene\nTP53\nMYC\nTP53\n NA \n")
		genes, err := LoadBackground(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"TP53", "MYC"}, genes)
	})

	t.Run("headerless", func(t *testing.T) {
		path := writeCSV(t, "bg.csv", "TP53\nMYC\nEGFR\n")
		genes, err := LoadBackground(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"TP53", "MYC", "EGFR"}, genes)
	})

	t.Run("empty", func(t *testing.T) {
		path := writeCSV(t, "bg.csv", "")
		_, err := LoadBackground(path)
		assert.Error(t, err)
	})
}
