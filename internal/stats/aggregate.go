package stats

import "slices"

// Filter keeps records inside the inclusive year range whose technique is
// in the selection.
func Filter(records []Record, fromYear, toYear int, selected []string) []Record {
	var out []Record
	for _, rec := range records {
		if rec.Year < fromYear || rec.Year > toYear {
			continue
		}
		if !slices.Contains(selected, rec.Technique) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// YearBounds returns the minimum and maximum release year present.
func YearBounds(records []Record) (minYear, maxYear int, ok bool) {
	if len(records) == 0 {
		return 0, 0, false
	}

	minYear, maxYear = records[0].Year, records[0].Year
	for _, rec := range records[1:] {
		if rec.Year < minYear {
			minYear = rec.Year
		}
		if rec.Year > maxYear {
			maxYear = rec.Year
		}
	}
	return minYear, maxYear, true
}

// Metric summarizes one technique over a year range: the count in the end
// year and its growth relative to the start year. GrowthPct is nil when the
// start year count is zero, rendered as "n/a".
type Metric struct {
	Technique     string   `json:"technique"`
	TechniqueFull string   `json:"technique_full"`
	Count         int      `json:"count"`
	GrowthPct     *float64 `json:"growth_pct,omitempty"`
}

// Summarize computes one Metric per selected technique, in selection order.
func Summarize(records []Record, fromYear, toYear int, selected []string) []Metric {
	metrics := make([]Metric, 0, len(selected))
	for _, technique := range selected {
		firstCount := countFor(records, fromYear, technique)
		lastCount := countFor(records, toYear, technique)

		metric := Metric{
			Technique:     technique,
			TechniqueFull: FullName(technique),
			Count:         lastCount,
		}

		if firstCount != 0 {
			growth := (float64(lastCount-firstCount) / float64(firstCount)) * 100
			metric.GrowthPct = &growth
		}

		metrics = append(metrics, metric)
	}
	return metrics
}

func countFor(records []Record, year int, technique string) int {
	total := 0
	for _, rec := range records {
		if rec.Year == year && rec.Technique == technique {
			total += rec.Count
		}
	}
	return total
}
