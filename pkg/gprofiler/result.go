package gprofiler

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/samber/lo"
)

// {"source": "GO:BP", "native": "GO:0006955", "name": "immune response", "p_value": 1.2e-10, ...}
type Result struct {
	Source      string  `json:"source"`
	Native      string  `json:"native"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"significant"`

	TermSize            int `json:"term_size"`
	QuerySize           int `json:"query_size"`
	IntersectionSize    int `json:"intersection_size"`
	EffectiveDomainSize int `json:"effective_domain_size"`

	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	SourceOrder int     `json:"source_order"`
	GroupID     int     `json:"group_id"`

	Parents []string `json:"parents"`

	// per query gene, aligned with Query.Genes; empty = not annotated
	Intersections [][]string `json:"intersections"`

	// filled by CalIntersections
	Intersection []string
	Evidences    []string
}

func (r *Result) String() string {
	return fmt.Sprintf(
		"%s\t%s\t%s\t%g\t%t\t%d\t%d\t%d\t%d\t%f\t%f\t%s\t%s",
		r.Source,
		r.Native,
		r.Name,
		r.PValue,
		r.Significant,
		r.TermSize,
		r.QuerySize,
		r.IntersectionSize,
		r.EffectiveDomainSize,
		r.Precision,
		r.Recall,
		strings.Join(r.Intersection, ","),
		strings.Join(r.Evidences, ";"),
	)
}

// LogP returns -log10(p) capped at LogPCap for plotting.
func (r *Result) LogP() float64 {
	if r.PValue <= 0 {
		return LogPCap
	}
	return math.Min(-math.Log10(r.PValue), LogPCap)
}

type Meta struct {
	QueryMetadata  json.RawMessage `json:"query_metadata"`
	ResultMetadata json.RawMessage `json:"result_metadata"`
	GenesMetadata  json.RawMessage `json:"genes_metadata"`
	Version        string          `json:"version"`
}

type Response struct {
	Result []*Result `json:"result"`
	Meta   *Meta     `json:"meta"`
}

// CalIntersections rebuilds each term's intersection gene list from the
// evidence arrays: Intersections[i] belongs to genes[i], a non-empty
// entry means the gene is annotated to the term.
func (resp *Response) CalIntersections(genes []string) {
	for _, result := range resp.Result {
		if len(result.Intersections) != len(genes) {
			continue
		}
		for i, evidences := range result.Intersections {
			if len(evidences) == 0 {
				continue
			}
			result.Intersection = append(result.Intersection, genes[i])
			result.Evidences = append(result.Evidences, strings.Join(lo.Uniq(evidences), "|"))
		}
	}
}

// Sources lists the annotation sources present, in result order.
func (resp *Response) Sources() []string {
	return lo.Uniq(
		lo.Map(
			resp.Result,
			func(r *Result, _ int) string { return r.Source },
		),
	)
}

// TopN returns the n most significant terms across all sources.
func (resp *Response) TopN(n int) []*Result {
	top := make([]*Result, len(resp.Result))
	copy(top, resp.Result)
	sort.SliceStable(
		top,
		func(i, j int) bool {
			return top[i].PValue < top[j].PValue
		},
	)
	if n > len(top) {
		n = len(top)
	}
	return top[:n]
}

func (resp *Response) WriteTSV(w io.Writer) {
	fmtUtil.FprintStringArray(w, ResultTitle, "\t")
	for _, result := range resp.Result {
		fmtUtil.Fprintln(w, result)
	}
}

// WriteGEM writes the Generic Enrichment Map table consumed by
// Cytoscape EnrichmentMap. Phenotype is conventionally +1.
func (resp *Response) WriteGEM(w io.Writer, phenotype int) {
	fmtUtil.FprintStringArray(w, GEMTitle, "\t")
	for _, result := range resp.Result {
		fmtUtil.Fprintf(
			w,
			"%s\t%s\t%g\t%g\t%+d\t%s\n",
			result.Native,
			result.Name,
			result.PValue,
			result.PValue,
			phenotype,
			strings.Join(result.Intersection, ","),
		)
	}
}
