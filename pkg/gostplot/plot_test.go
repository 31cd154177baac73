package gostplot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goEnrich/pkg/gprofiler"
)

func testResults() []*gprofiler.Result {
	return []*gprofiler.Result{
		{Source: "GO:BP", Native: "GO:0006915", Name: "apoptotic process", PValue: 1e-8, IntersectionSize: 12, SourceOrder: 10},
		{Source: "GO:BP", Native: "GO:0008283", Name: "cell population proliferation", PValue: 1e-3, IntersectionSize: 4, SourceOrder: 30},
		{Source: "KEGG", Native: "KEGG:04110", Name: "Cell cycle", PValue: 1e-4, IntersectionSize: 6, SourceOrder: 7},
	}
}

func TestManhattan(t *testing.T) {
	scatter := Manhattan(testResults())
	require.Len(t, scatter.MultiSeries, 2, "one series per source")
	assert.Equal(t, "GO:BP", scatter.MultiSeries[0].Name)
	assert.Equal(t, "KEGG", scatter.MultiSeries[1].Name)

	var buf bytes.Buffer
	require.NoError(t, scatter.Render(&buf))
	assert.Contains(t, buf.String(), "echarts")
	assert.Contains(t, buf.String(), "GO:0006915")
}

func TestTopTerms(t *testing.T) {
	response := &gprofiler.Response{Result: testResults()}

	bar := TopTerms(response, 2)
	require.Len(t, bar.MultiSeries, 1)
	assert.Len(t, bar.MultiSeries[0].Data, 2)

	var buf bytes.Buffer
	require.NoError(t, bar.Render(&buf))
	assert.Contains(t, buf.String(), "apoptotic process")
}

func TestTopTermsOverflow(t *testing.T) {
	response := &gprofiler.Response{Result: testResults()}
	bar := TopTerms(response, 100)
	assert.Len(t, bar.MultiSeries[0].Data, 3)
}

func TestSymbolSize(t *testing.T) {
	assert.Equal(t, MaxSymbolSize, symbolSize(20, 20))
	assert.Equal(t, MinSymbolSize, symbolSize(0, 20))
	assert.GreaterOrEqual(t, symbolSize(10, 20), MinSymbolSize)
	assert.LessOrEqual(t, symbolSize(10, 20), MaxSymbolSize)
}
