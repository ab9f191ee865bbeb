package rcsb

// Attribute paths in the RCSB search schema.
const (
	attrExperimentalMethod = "rcsb_entry_info.experimental_method"
	attrInitialReleaseDate = "rcsb_accession_info.initial_release_date"
)

type searchQuery struct {
	Query          queryNode      `json:"query"`
	ReturnType     string         `json:"return_type"`
	RequestOptions requestOptions `json:"request_options"`
}

type queryNode struct {
	Type            string       `json:"type"`
	Nodes           []queryNode  `json:"nodes,omitempty"`
	LogicalOperator string       `json:"logical_operator,omitempty"`
	Service         string       `json:"service,omitempty"`
	Parameters      *queryParams `json:"parameters,omitempty"`
}

type queryParams struct {
	Attribute string `json:"attribute"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
}

type requestOptions struct {
	Paginate paginate       `json:"paginate"`
	Facets   []facetRequest `json:"facets"`
}

type paginate struct {
	Rows int `json:"rows"`
}

type facetRequest struct {
	Name                  string         `json:"name"`
	AggregationType       string         `json:"aggregation_type"`
	Attribute             string         `json:"attribute"`
	Interval              string         `json:"interval,omitempty"`
	MinIntervalPopulation int            `json:"min_interval_population"`
	Facets                []facetRequest `json:"facets,omitempty"`
}

// releaseCountQuery builds the facet query for one experimental method:
// entries matching the method, bucketed by release year with a nested
// per-method terms facet. No rows are paginated back, only facets.
func releaseCountQuery(method string) searchQuery {
	return searchQuery{
		Query: queryNode{
			Type: "group",
			Nodes: []queryNode{
				{
					Type:    "terminal",
					Service: "text",
					Parameters: &queryParams{
						Attribute: attrExperimentalMethod,
						Operator:  "exact_match",
						Value:     method,
					},
				},
			},
			LogicalOperator: "or",
		},
		ReturnType: "entry",
		RequestOptions: requestOptions{
			Paginate: paginate{Rows: 0},
			Facets: []facetRequest{
				{
					Name:                  "Release Date",
					AggregationType:       "date_histogram",
					Attribute:             attrInitialReleaseDate,
					Interval:              "year",
					MinIntervalPopulation: 1,
					Facets: []facetRequest{
						{
							Name:                  "Experimental Method",
							AggregationType:       "terms",
							Attribute:             attrExperimentalMethod,
							MinIntervalPopulation: 1,
						},
					},
				},
			},
		},
	}
}

type searchResponse struct {
	Facets []facetResult `json:"facets"`
}

type facetResult struct {
	Name    string        `json:"name"`
	Buckets []facetBucket `json:"buckets"`
}

type facetBucket struct {
	Label      string        `json:"label"`
	Population int           `json:"population"`
	Facets     []facetResult `json:"facets"`
}
