package dashboard

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/connyyu/pdbstats/internal/pkg/message"
	"github.com/connyyu/pdbstats/internal/platform/validation"
	"github.com/connyyu/pdbstats/internal/stats"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type Handler struct {
	svc       stats.Service
	validator validation.Validator
}

func NewHandler(svc stats.Service, validator validation.Validator) *Handler {
	return &Handler{
		svc:       svc,
		validator: validator,
	}
}

type techniqueOption struct {
	Label    string
	FullName string
	Selected bool
}

type metricView struct {
	Label string
	Value string
	Delta string
}

type pageData struct {
	FromYear   int
	ToYear     int
	MinYear    int
	MaxYear    int
	Techniques []techniqueOption
	Metrics    []metricView
	ChartJSON  template.JS
	Error      string
}

// Show renders the dashboard page.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.Dataset(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		msg := message.ServerError
		if errors.Is(err, stats.ErrNoData) {
			status = http.StatusServiceUnavailable
			msg = message.NoData
		}
		slog.Error("failed to load dataset for dashboard", "reason", err)
		h.render(w, status, &pageData{Error: msg})
		return
	}

	query, errs := stats.ParseRangeQuery(r, records)
	if errs == nil {
		errs = h.validator.ValidateStruct(query)
	}
	if errs != nil {
		h.render(w, http.StatusBadRequest, &pageData{Error: message.InvalidInput})
		return
	}

	filtered := stats.Filter(records, query.FromYear, query.ToYear, query.Techniques)
	minYear, maxYear, _ := stats.YearBounds(records)

	chart := BuildChart(filtered, query.FromYear, query.ToYear, query.Techniques)
	chartJSON, err := json.Marshal(chart)
	if err != nil {
		slog.Error("failed to marshal chart config", "reason", err)
		h.render(w, http.StatusInternalServerError, &pageData{Error: message.ServerError})
		return
	}

	data := &pageData{
		FromYear:   query.FromYear,
		ToYear:     query.ToYear,
		MinYear:    minYear,
		MaxYear:    maxYear,
		Techniques: techniqueOptions(query.Techniques),
		Metrics:    metricViews(stats.Summarize(filtered, query.FromYear, query.ToYear, query.Techniques)),
		ChartJSON:  template.JS(chartJSON), //nolint:gosec //Marshaled from typed data, not user input.
	}
	h.render(w, http.StatusOK, data)
}

func (h *Handler) render(w http.ResponseWriter, status int, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, data); err != nil {
		slog.Error("failed to render dashboard template", "reason", err)
	}
}

func techniqueOptions(selected []string) []techniqueOption {
	options := make([]techniqueOption, 0, 6)
	for _, t := range stats.Techniques() {
		option := techniqueOption{
			Label:    t.Label,
			FullName: t.FullName,
		}
		for _, s := range selected {
			if s == t.Label {
				option.Selected = true
				break
			}
		}
		options = append(options, option)
	}
	return options
}

func metricViews(metrics []stats.Metric) []metricView {
	views := make([]metricView, 0, len(metrics))
	for _, m := range metrics {
		delta := "n/a"
		if m.GrowthPct != nil {
			delta = fmt.Sprintf("%.2f %%", *m.GrowthPct)
		}

		views = append(views, metricView{
			Label: m.Technique + " Structures",
			Value: fmt.Sprintf("%d", m.Count),
			Delta: delta,
		})
	}
	return views
}
