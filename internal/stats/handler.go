package stats

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/connyyu/pdbstats/internal/pkg/message"
	"github.com/connyyu/pdbstats/internal/pkg/web"
	"github.com/connyyu/pdbstats/internal/platform/validation"
)

type Handler struct {
	svc       Service
	validator validation.Validator
}

func NewHandler(svc Service, validator validation.Validator) *Handler {
	return &Handler{
		svc:       svc,
		validator: validator,
	}
}

// RangeQuery is the filter portion of a dashboard request: an inclusive
// release-year range and the selected techniques.
type RangeQuery struct {
	FromYear   int      `json:"from_year" validate:"gte=1900,lte=2100"`
	ToYear     int      `json:"to_year" validate:"gte=1900,lte=2100,gtefield=FromYear"`
	Techniques []string `json:"techniques"`
}

// ParseRangeQuery reads filters from the URL query, filling defaults from
// the dataset bounds: from 2000, to the year before the latest, techniques
// X-ray, EM and NMR.
func ParseRangeQuery(r *http.Request, records []Record) (RangeQuery, map[string]string) {
	minYear, maxYear, ok := YearBounds(records)
	if !ok {
		return RangeQuery{}, map[string]string{"records": "dataset is empty"}
	}

	query := RangeQuery{
		FromYear:   DefaultFromYear,
		ToYear:     maxYear - 1,
		Techniques: DefaultTechniques,
	}
	if query.FromYear < minYear {
		query.FromYear = minYear
	}
	if query.ToYear < query.FromYear {
		query.ToYear = maxYear
	}

	params := r.URL.Query()
	errs := make(map[string]string)

	if raw := params.Get("from_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			errs["from_year"] = "from_year must be a number"
		} else {
			query.FromYear = year
		}
	}

	if raw := params.Get("to_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			errs["to_year"] = "to_year must be a number"
		} else {
			query.ToYear = year
		}
	}

	// Techniques arrive either as repeated parameters (HTML form
	// checkboxes) or as one comma-separated list.
	if raw := params["techniques"]; len(raw) > 0 {
		var selected []string
		for _, group := range raw {
			for _, label := range strings.Split(group, ",") {
				label = strings.TrimSpace(label)
				if label == "" {
					continue
				}
				if !IsKnownTechnique(label) {
					errs["techniques"] = fmt.Sprintf("unknown technique: %s", label)
					continue
				}
				selected = append(selected, label)
			}
		}
		if len(selected) > 0 {
			query.Techniques = selected
		}
	}

	if len(errs) > 0 {
		return query, errs
	}
	return query, nil
}

type TechniquesResponse struct {
	Techniques []Technique `json:"techniques"`
}

func (h *Handler) Techniques(w http.ResponseWriter, _ *http.Request) {
	payload := &TechniquesResponse{Techniques: Techniques()}
	web.OK(w, http.StatusOK, nil, payload)
}

type CountsResponse struct {
	FromYear   int      `json:"from_year"`
	ToYear     int      `json:"to_year"`
	MinYear    int      `json:"min_year"`
	MaxYear    int      `json:"max_year"`
	Techniques []string `json:"techniques"`
	Records    []Record `json:"records"`
}

func (h *Handler) Counts(w http.ResponseWriter, r *http.Request) {
	records, query, ok := h.dataset(w, r)
	if !ok {
		return
	}

	minYear, maxYear, _ := YearBounds(records)
	payload := &CountsResponse{
		FromYear:   query.FromYear,
		ToYear:     query.ToYear,
		MinYear:    minYear,
		MaxYear:    maxYear,
		Techniques: query.Techniques,
		Records:    Filter(records, query.FromYear, query.ToYear, query.Techniques),
	}
	web.OK(w, http.StatusOK, nil, payload)
}

type SummaryResponse struct {
	FromYear int      `json:"from_year"`
	ToYear   int      `json:"to_year"`
	Metrics  []Metric `json:"metrics"`
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	records, query, ok := h.dataset(w, r)
	if !ok {
		return
	}

	filtered := Filter(records, query.FromYear, query.ToYear, query.Techniques)
	payload := &SummaryResponse{
		FromYear: query.FromYear,
		ToYear:   query.ToYear,
		Metrics:  Summarize(filtered, query.FromYear, query.ToYear, query.Techniques),
	}
	web.OK(w, http.StatusOK, nil, payload)
}

// dataset loads the records and the validated range query, writing the
// error response itself when either fails.
func (h *Handler) dataset(w http.ResponseWriter, r *http.Request) ([]Record, RangeQuery, bool) {
	records, err := h.svc.Dataset(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoData) {
			web.Fail(w, http.StatusServiceUnavailable, err, message.NoData, nil)
		} else {
			web.Fail(w, http.StatusInternalServerError, err, message.ServerError, nil)
		}
		return nil, RangeQuery{}, false
	}

	query, errs := ParseRangeQuery(r, records)
	if errs != nil {
		web.Fail(w, http.StatusBadRequest, errors.New("invalid range query"), message.InvalidInput, errs)
		return nil, RangeQuery{}, false
	}

	if errs := h.validator.ValidateStruct(query); errs != nil {
		web.Fail(w, http.StatusBadRequest, errors.New("invalid range query"), message.InvalidInput, errs)
		return nil, RangeQuery{}, false
	}

	return records, query, true
}
