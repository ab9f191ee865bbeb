// Package rcsb is a client for the RCSB PDB search API v2.
package rcsb

import "context"

// DefaultBaseURL is the public RCSB search endpoint.
const DefaultBaseURL = "https://search.rcsb.org/rcsbsearch/v2/query"

// YearCount is a single data point from the release-date facet: the number
// of structures released in a year for an experimental method.
type YearCount struct {
	Year   int
	Method string
	Count  int
}

// Client fetches structure counts from the RCSB search API.
type Client interface {
	CountsByYear(ctx context.Context, method string) ([]YearCount, error)
}
