package gprofiler

var (
	BaseURL = "https://biit.cs.ut.ee/gprofiler"

	Organism         = "hsapiens"
	UserThreshold    = 0.05
	CorrectionMethod = "g_SCS"

	// -log10(p) cap for plotting
	LogPCap = 16.0
)

var DefaultSources = []string{
	"GO:BP",
	"GO:MF",
	"GO:CC",
	"KEGG",
	"REAC",
	"WP",
}

var ResultTitle = []string{
	"Source",
	"TermID",
	"TermName",
	"PValue",
	"Significant",
	"TermSize",
	"QuerySize",
	"IntersectionSize",
	"EffectiveDomainSize",
	"Precision",
	"Recall",
	"Intersection",
	"Evidences",
}

var GEMTitle = []string{
	"GO.ID",
	"Description",
	"p.Val",
	"FDR",
	"Phenotype",
	"Genes",
}
