package chroma

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Swaminathan-5/midi-maestro/model"
)

func note(pitch int, start, end float64) model.NoteEvent {
	return model.NoteEvent{Pitch: pitch, Start: start, End: end, Velocity: 80}
}

func TestProfileSumsToOne(t *testing.T) {
	notes := []model.NoteEvent{
		note(60, 0, 1),
		note(64, 1, 2),
		note(67, 2, 2.5),
	}
	profile := NewPitchClassAnalyzer().CreateProfile(notes)

	sum := 0.0
	for _, v := range profile.Profile {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.False(t, profile.IsZero())
}

func TestProfileIsDurationWeighted(t *testing.T) {
	notes := []model.NoteEvent{
		note(60, 0, 3), // C for 3s
		note(62, 0, 1), // D for 1s
	}
	profile := NewPitchClassAnalyzer().CreateProfile(notes)

	assert.InDelta(t, 0.75, profile.Profile[0], 1e-9)
	assert.InDelta(t, 0.25, profile.Profile[2], 1e-9)
}

func TestProfileFoldsOctaves(t *testing.T) {
	notes := []model.NoteEvent{
		note(60, 0, 1), // C4
		note(72, 0, 1), // C5
	}
	profile := NewPitchClassAnalyzer().CreateProfile(notes)

	assert.InDelta(t, 1.0, profile.Profile[0], 1e-9)
}

func TestEmptyNoteListYieldsZeroProfile(t *testing.T) {
	profile := NewPitchClassAnalyzer().CreateProfile(nil)

	assert.True(t, profile.IsZero())
	for _, v := range profile.Profile {
		assert.Equal(t, 0.0, v)
	}
}

func TestZeroDurationNotesYieldZeroProfile(t *testing.T) {
	notes := []model.NoteEvent{note(60, 1, 1)}
	profile := NewPitchClassAnalyzer().CreateProfile(notes)
	assert.True(t, profile.IsZero())
}

func TestChromagramTriad(t *testing.T) {
	notes := []model.NoteEvent{
		note(60, 0, 1),
		note(64, 0, 1),
		note(67, 0, 1),
	}
	cg := NewBuilder().Build(notes, 1.0)

	assert.Equal(t, 10, cg.NumFrames())
	assert.InDelta(t, 10.0, cg.SampleRate, 1e-9)

	for tt := 0; tt < cg.NumFrames(); tt++ {
		assert.Equal(t, 1.0, cg.Data[0][tt])  // C
		assert.Equal(t, 1.0, cg.Data[4][tt])  // E
		assert.Equal(t, 1.0, cg.Data[7][tt])  // G
		assert.Equal(t, 0.0, cg.Data[1][tt])
	}
}

func TestChromagramFrameTimes(t *testing.T) {
	cg := NewBuilder().Build([]model.NoteEvent{note(60, 0, 0.3)}, 0.3)

	assert.Equal(t, 3, cg.NumFrames())
	assert.InDelta(t, 0.0, cg.Times[0], 1e-9)
	assert.InDelta(t, 0.1, cg.Times[1], 1e-9)
	assert.InDelta(t, 0.2, cg.Times[2], 1e-9)
}

func TestChromagramOctaveDoublingStacks(t *testing.T) {
	notes := []model.NoteEvent{
		note(60, 0, 1),
		note(72, 0, 1),
	}
	cg := NewBuilder().Build(notes, 1.0)

	assert.Equal(t, 2.0, cg.Data[0][0])
}

func TestChromagramEmptyPiece(t *testing.T) {
	cg := NewBuilder().Build(nil, 0)
	assert.Equal(t, 0, cg.NumFrames())
}

func TestBuilderCustomHop(t *testing.T) {
	b := NewBuilderWithParams(BuilderParams{HopSeconds: 0.5})
	cg := b.Build([]model.NoteEvent{note(60, 0, 2)}, 2.0)

	assert.InDelta(t, 2.0, cg.SampleRate, 1e-9)
	assert.Equal(t, 4, cg.NumFrames())
}
