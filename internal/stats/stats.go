// Package stats holds the structure release counts domain: the tracked
// experimental techniques, the cached dataset, and its aggregations.
package stats

// Technique is an experimental method as labeled by the RCSB search API,
// paired with the full name shown on the dashboard.
type Technique struct {
	Label    string `json:"label"`
	FullName string `json:"full_name"`
}

// techniques are the methods tracked by the dashboard, in display order.
var techniques = []Technique{
	{Label: "EM", FullName: "Electron Microscopy"},
	{Label: "X-ray", FullName: "X-ray Crystallography"},
	{Label: "NMR", FullName: "Nuclear Magnetic Resonance"},
	{Label: "Neutron", FullName: "Neutron Diffraction"},
	{Label: "Multiple methods", FullName: "Multiple Methods"},
	{Label: "Other", FullName: "Other Techniques"},
}

// DefaultTechniques are preselected on the dashboard.
var DefaultTechniques = []string{"X-ray", "EM", "NMR"}

// DefaultFromYear is the lower bound preselected on the dashboard.
const DefaultFromYear = 2000

func Techniques() []Technique {
	out := make([]Technique, len(techniques))
	copy(out, techniques)
	return out
}

// FullName maps a technique label to its display name. Unknown labels pass
// through unchanged so new upstream methods still render.
func FullName(label string) string {
	for _, t := range techniques {
		if t.Label == label {
			return t.FullName
		}
	}
	return label
}

func IsKnownTechnique(label string) bool {
	for _, t := range techniques {
		if t.Label == label {
			return true
		}
	}
	return false
}

// Record is the number of structures released in a year for one technique.
type Record struct {
	Year          int    `json:"year"`
	Technique     string `json:"technique"`
	TechniqueFull string `json:"technique_full"`
	Count         int    `json:"count"`
}
