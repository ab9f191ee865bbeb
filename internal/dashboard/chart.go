package dashboard

import "github.com/connyyu/pdbstats/internal/stats"

// chartColors is the palette assigned to series in selection order.
var chartColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Series is one line on the chart, shaped for Chart.js datasets.
type Series struct {
	Name  string `json:"label"`
	Color string `json:"borderColor"`
	Data  []*int `json:"data"`
}

// ChartConfig is the data block handed to the frontend chart.
type ChartConfig struct {
	Labels []int    `json:"labels"`
	Series []Series `json:"datasets"`
}

// BuildChart lays out one series per selected technique across every year
// in the range. Years without a count carry null so the chart shows a gap
// instead of a zero.
func BuildChart(records []stats.Record, fromYear, toYear int, selected []string) *ChartConfig {
	if toYear < fromYear {
		return nil
	}

	counts := make(map[int]map[string]int)
	for _, rec := range records {
		if counts[rec.Year] == nil {
			counts[rec.Year] = make(map[string]int)
		}
		counts[rec.Year][rec.Technique] += rec.Count
	}

	labels := make([]int, 0, toYear-fromYear+1)
	for year := fromYear; year <= toYear; year++ {
		labels = append(labels, year)
	}

	series := make([]Series, 0, len(selected))
	for i, technique := range selected {
		data := make([]*int, len(labels))
		for j, year := range labels {
			if count, ok := counts[year][technique]; ok {
				c := count
				data[j] = &c
			}
		}

		series = append(series, Series{
			Name:  stats.FullName(technique),
			Color: chartColors[i%len(chartColors)],
			Data:  data,
		})
	}

	return &ChartConfig{
		Labels: labels,
		Series: series,
	}
}
