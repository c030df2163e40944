package analyze

import (
	"github.com/Swaminathan-5/midi-maestro/algorithms/melodic"
	"github.com/Swaminathan-5/midi-maestro/algorithms/temporal"
	"github.com/Swaminathan-5/midi-maestro/algorithms/tonal"
)

// Result is the merged output of one analysis run. Every field is a
// plain nested struct of primitives so the record serializes to JSON
// or CSV without touching internal objects.
type Result struct {
	ID              string                `json:"id"`
	Params          Params                `json:"params"`
	Basic           BasicInfo             `json:"basic"`
	Key             KeyInfo               `json:"key"`
	ScaleNotes      []string              `json:"scale_notes"`
	TimeSignature   TimeSignatureInfo     `json:"time_signature"`
	InitialTempoBPM float64               `json:"initial_tempo_bpm"`
	Rhythm          temporal.RhythmResult `json:"rhythm"`
	Harmony         HarmonyInfo           `json:"harmony"`
	Melody          melodic.MelodyResult  `json:"melody"`
	PitchClass      []float64             `json:"pitch_class"`
}

// BasicInfo is piece-level metadata.
type BasicInfo struct {
	Instruments []string `json:"instruments"`
	TotalNotes  int      `json:"total_notes"`
	Duration    float64  `json:"duration"`
}

// KeyInfo is the detected key. Confidence at or below 0 marks the
// detection as unreliable; callers must not hide that.
type KeyInfo struct {
	Key        string  `json:"key"`
	Confidence float64 `json:"confidence"`
	Minor      bool    `json:"minor"`
}

// TimeSignatureInfo is the piece's (first) meter.
type TimeSignatureInfo struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

// HarmonyInfo is the harmony branch output: the labeled chord
// sequence, the ranked progression table and the underlying
// chromagram.
type HarmonyInfo struct {
	Chords       []tonal.ChordFrame      `json:"chords"`
	Progressions []tonal.ChordTransition `json:"progressions"`
	Chromagram   [][]float64             `json:"chromagram"`
	ChromaTimes  []float64               `json:"chroma_times"`
}
