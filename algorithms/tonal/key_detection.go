package tonal

import (
	"github.com/Swaminathan-5/midi-maestro/algorithms/chroma"
	"github.com/Swaminathan-5/midi-maestro/algorithms/stats"
)

// ScaleTemplate is one entry of the fixed key catalog: a named
// major or natural-minor scale as a set of 7 pitch classes.
type ScaleTemplate struct {
	Name         string    `json:"name"`
	Minor        bool      `json:"minor"`
	PitchClasses []int     `json:"pitch_classes"`
	indicator    []float64 // binary 12-vector, precomputed
}

var (
	majorIntervals = []int{0, 2, 4, 5, 7, 9, 11} // Ionian
	minorIntervals = []int{0, 2, 3, 5, 7, 8, 10} // Aeolian
)

// scaleCatalog is the fixed 24-entry key catalog: 12 major keys in
// circle-of-fifths listing order, then 12 minor keys likewise. The
// listing order doubles as the tie-break order (first strict maximum
// wins), so it must not be reordered.
var scaleCatalog = buildScaleCatalog()

func buildScaleCatalog() []ScaleTemplate {
	majors := []struct {
		name  string
		tonic int
	}{
		{"C", 0}, {"G", 7}, {"D", 2}, {"A", 9}, {"E", 4}, {"B", 11},
		{"F#", 6}, {"C#", 1}, {"F", 5}, {"Bb", 10}, {"Eb", 3}, {"Ab", 8},
	}
	minors := []struct {
		name  string
		tonic int
	}{
		{"Am", 9}, {"Em", 4}, {"Bm", 11}, {"F#m", 6}, {"C#m", 1}, {"G#m", 8},
		{"D#m", 3}, {"A#m", 10}, {"Dm", 2}, {"Gm", 7}, {"Cm", 0}, {"Fm", 5},
	}

	catalog := make([]ScaleTemplate, 0, 24)
	for _, m := range majors {
		catalog = append(catalog, newScaleTemplate(m.name, m.tonic, false))
	}
	for _, m := range minors {
		catalog = append(catalog, newScaleTemplate(m.name, m.tonic, true))
	}
	return catalog
}

func newScaleTemplate(name string, tonic int, minor bool) ScaleTemplate {
	intervals := majorIntervals
	if minor {
		intervals = minorIntervals
	}

	pcs := make([]int, len(intervals))
	indicator := make([]float64, 12)
	for i, iv := range intervals {
		pc := (tonic + iv) % 12
		pcs[i] = pc
		indicator[pc] = 1.0
	}

	return ScaleTemplate{
		Name:         name,
		Minor:        minor,
		PitchClasses: pcs,
		indicator:    indicator,
	}
}

// ScaleCatalog returns the fixed key catalog in scan order.
func ScaleCatalog() []ScaleTemplate {
	return scaleCatalog
}

// KeyResult is the outcome of key detection. Confidence is the
// winning Pearson correlation in [-1, 1]; a value near or below 0
// marks the key guess as unreliable and is surfaced as-is.
type KeyResult struct {
	Key            string    `json:"key"`
	Confidence     float64   `json:"confidence"`
	Minor          bool      `json:"minor"`
	ScaleClasses   []int     `json:"scale_classes"`
	ScaleNoteNames []string  `json:"scale_notes"`
	Scores         []float64 `json:"scores"` // correlation per catalog entry
}

// KeyDetector selects the best-fit key for a pitch class profile by
// Pearson correlation against the 24 scale templates.
type KeyDetector struct{}

// NewKeyDetector creates a new key detector
func NewKeyDetector() *KeyDetector {
	return &KeyDetector{}
}

// Detect scans the catalog in listing order and keeps the first
// strict maximum. Degenerate correlations (constant or all-zero
// profile) score 0, so an empty piece reports the first catalog entry
// with confidence 0 rather than failing.
func (kd *KeyDetector) Detect(profile *chroma.PitchClassProfile) KeyResult {
	best := scaleCatalog[0]
	bestScore := -1.0
	scores := make([]float64, len(scaleCatalog))

	for i, tmpl := range scaleCatalog {
		score := stats.PearsonCorrelation(profile.Profile, tmpl.indicator)
		scores[i] = score
		if score > bestScore {
			bestScore = score
			best = tmpl
		}
	}

	names := make([]string, len(best.PitchClasses))
	for i, pc := range best.PitchClasses {
		names[i] = chroma.PitchClassNames[pc]
	}

	return KeyResult{
		Key:            best.Name,
		Confidence:     bestScore,
		Minor:          best.Minor,
		ScaleClasses:   best.PitchClasses,
		ScaleNoteNames: names,
		Scores:         scores,
	}
}
