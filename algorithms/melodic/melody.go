package melodic

import (
	"sort"

	"github.com/Swaminathan-5/midi-maestro/algorithms/stats"
	"github.com/Swaminathan-5/midi-maestro/model"
)

// ContourStep is the direction of one melodic movement.
type ContourStep string

const (
	ContourUp   ContourStep = "up"
	ContourDown ContourStep = "down"
	ContourSame ContourStep = "same"
)

// MelodyResult contains melodic shape analysis. Intervals and Contour
// always have length len(Notes)-1 (or 0 for an empty melody); an
// empty Notes slice marks the whole result as undetermined.
type MelodyResult struct {
	Notes        []model.NoteEvent `json:"notes"`
	Intervals    []int             `json:"intervals"` // signed semitones
	Contour      []ContourStep     `json:"contour"`
	PitchMin     int               `json:"pitch_min"`
	PitchMax     int               `json:"pitch_max"`
	MeanVelocity float64           `json:"mean_velocity"`
}

// MelodyAnalyzer extracts interval and contour sequences from the
// non-percussion notes of a piece.
type MelodyAnalyzer struct{}

// NewMelodyAnalyzer creates a new melody analyzer
func NewMelodyAnalyzer() *MelodyAnalyzer {
	return &MelodyAnalyzer{}
}

// Analyze filters out percussion notes, sorts the rest by onset
// (stable, so simultaneous notes keep their original order) and
// derives intervals, contour, pitch range and mean velocity. Zero
// non-percussion notes yield an empty result, not an error.
func (ma *MelodyAnalyzer) Analyze(notes []model.NoteEvent) MelodyResult {
	var melody []model.NoteEvent
	for _, n := range notes {
		if !n.IsPercussion {
			melody = append(melody, n)
		}
	}

	if len(melody) == 0 {
		return MelodyResult{}
	}

	sort.SliceStable(melody, func(i, j int) bool {
		return melody[i].Start < melody[j].Start
	})

	intervals := make([]int, 0, len(melody)-1)
	contour := make([]ContourStep, 0, len(melody)-1)
	for i := 1; i < len(melody); i++ {
		delta := melody[i].Pitch - melody[i-1].Pitch
		intervals = append(intervals, delta)

		switch {
		case delta > 0:
			contour = append(contour, ContourUp)
		case delta < 0:
			contour = append(contour, ContourDown)
		default:
			contour = append(contour, ContourSame)
		}
	}

	minPitch, maxPitch := melody[0].Pitch, melody[0].Pitch
	velocities := make([]float64, len(melody))
	for i, n := range melody {
		if n.Pitch < minPitch {
			minPitch = n.Pitch
		}
		if n.Pitch > maxPitch {
			maxPitch = n.Pitch
		}
		velocities[i] = float64(n.Velocity)
	}

	return MelodyResult{
		Notes:        melody,
		Intervals:    intervals,
		Contour:      contour,
		PitchMin:     minPitch,
		PitchMax:     maxPitch,
		MeanVelocity: stats.Mean(velocities),
	}
}
