package main

var (
	// GEM phenotype column, +1 for an up/combined query
	Phenotype = 1

	QuerySheet      = "Query"
	EnrichmentSheet = "Enrichment"
	GEMSheet        = "GEM"
)
