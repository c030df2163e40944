package chroma

import (
	"gonum.org/v1/gonum/floats"

	"github.com/Swaminathan-5/midi-maestro/model"
)

// PitchClassNames are the twelve chromatic pitch names, sharp
// spelling, indexed by pitch class.
var PitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchClassProfile is a duration-weighted pitch class distribution.
// Profile sums to 1 when the piece has any sounding notes and is
// all-zero otherwise; callers must treat the all-zero profile as
// "undetermined", not as silence in C.
type PitchClassProfile struct {
	Profile       []float64 `json:"profile"` // 12 bins, index = pitch % 12
	TotalDuration float64   `json:"total_duration"`
}

// IsZero reports whether the profile is the degenerate all-zero
// profile produced by an empty note list.
func (p *PitchClassProfile) IsZero() bool {
	return p.TotalDuration == 0
}

// PitchClassAnalyzer reduces a note-event list to a pitch class
// profile. Pure function of its input; safe to share.
type PitchClassAnalyzer struct{}

// NewPitchClassAnalyzer creates a new pitch class analyzer
func NewPitchClassAnalyzer() *PitchClassAnalyzer {
	return &PitchClassAnalyzer{}
}

// CreateProfile builds the duration-weighted histogram over pitch
// classes and normalizes it to sum to 1.
func (pca *PitchClassAnalyzer) CreateProfile(notes []model.NoteEvent) *PitchClassProfile {
	profile := make([]float64, 12)

	for _, n := range notes {
		profile[n.Pitch%12] += n.Duration()
	}

	total := floats.Sum(profile)
	if total > 0 {
		floats.Scale(1.0/total, profile)
	}

	return &PitchClassProfile{
		Profile:       profile,
		TotalDuration: total,
	}
}
