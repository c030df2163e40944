package chroma

import (
	"math"

	"github.com/Swaminathan-5/midi-maestro/model"
)

// Chromagram is a time-framed 12-row pitch class activity matrix.
// Data[pc][t] is the number of pitches of class pc sounding in frame
// t; Times[t] is the frame start in seconds.
type Chromagram struct {
	Data       [][]float64 `json:"data"` // 12 x NumFrames
	Times      []float64   `json:"times"`
	SampleRate float64     `json:"sample_rate"` // frames per second
}

// NumFrames returns the number of time frames.
func (c *Chromagram) NumFrames() int {
	return len(c.Times)
}

// BuilderParams configures chromagram construction. The hop length
// sets the frame rate (fs = 1/hop); coarse framing trades harmonic
// resolution for robustness against ornamental notes.
type BuilderParams struct {
	HopSeconds float64 `json:"hop_seconds"`
}

// DefaultBuilderParams returns the standard 10 Hz framing.
func DefaultBuilderParams() BuilderParams {
	return BuilderParams{HopSeconds: 0.1}
}

// Builder folds a note-event stream into a chromagram via a
// piano-roll-like per-pitch activity matrix.
type Builder struct {
	params BuilderParams
}

// NewBuilder creates a chromagram builder with default parameters
func NewBuilder() *Builder {
	return &Builder{params: DefaultBuilderParams()}
}

// NewBuilderWithParams creates a chromagram builder with custom parameters
func NewBuilderWithParams(params BuilderParams) *Builder {
	if params.HopSeconds <= 0 {
		params.HopSeconds = DefaultBuilderParams().HopSeconds
	}
	return &Builder{params: params}
}

// SampleRate returns the frame rate in frames per second.
func (b *Builder) SampleRate() float64 {
	return 1.0 / b.params.HopSeconds
}

// Build constructs the chromagram for a note-event list. endTime caps
// the frame axis; an empty note list or non-positive endTime yields a
// zero-frame chromagram.
func (b *Builder) Build(notes []model.NoteEvent, endTime float64) *Chromagram {
	fs := b.SampleRate()

	numFrames := 0
	if endTime > 0 {
		numFrames = int(math.Ceil(endTime * fs))
	}

	data := make([][]float64, 12)
	for pc := range data {
		data[pc] = make([]float64, numFrames)
	}
	times := make([]float64, numFrames)
	for t := range times {
		times[t] = float64(t) / fs
	}

	if numFrames == 0 {
		return &Chromagram{Data: data, Times: times, SampleRate: fs}
	}

	// Per-pitch binary activity, folded into pitch class rows. The
	// roll is binary per pitch, so a held note contributes 1 per frame
	// regardless of velocity, and octave doublings stack.
	roll := make([][]bool, 128)
	for p := range roll {
		roll[p] = make([]bool, numFrames)
	}

	for _, n := range notes {
		if n.Pitch < 0 || n.Pitch > 127 {
			continue
		}
		startIdx := int(n.Start * fs)
		endIdx := int(n.End * fs)
		if startIdx < 0 {
			startIdx = 0
		}
		if endIdx > numFrames {
			endIdx = numFrames
		}
		for t := startIdx; t < endIdx; t++ {
			roll[n.Pitch][t] = true
		}
	}

	for p := 0; p < 128; p++ {
		pc := p % 12
		for t, active := range roll[p] {
			if active {
				data[pc][t] += 1.0
			}
		}
	}

	return &Chromagram{Data: data, Times: times, SampleRate: fs}
}
