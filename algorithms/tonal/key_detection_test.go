package tonal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Swaminathan-5/midi-maestro/algorithms/chroma"
	"github.com/Swaminathan-5/midi-maestro/model"
)

func TestScaleCatalogShape(t *testing.T) {
	catalog := ScaleCatalog()
	assert := assert.New(t)
	assert.Len(catalog, 24)

	majors := 0
	for _, tmpl := range catalog {
		seen := make(map[int]bool)
		for _, pc := range tmpl.PitchClasses {
			assert.GreaterOrEqual(pc, 0)
			assert.Less(pc, 12)
			seen[pc] = true
		}
		assert.Len(seen, 7, "scale %s must have 7 distinct pitch classes", tmpl.Name)
		if !tmpl.Minor {
			majors++
		}
	}
	assert.Equal(12, majors)
}

func TestScaleCatalogOrderStartsWithCMajor(t *testing.T) {
	catalog := ScaleCatalog()
	assert.Equal(t, "C", catalog[0].Name)
	assert.False(t, catalog[0].Minor)
	assert.Equal(t, "Am", catalog[12].Name)
	assert.True(t, catalog[12].Minor)
}

func TestDetectCMajorFromTriadNotes(t *testing.T) {
	// C major triad plus octave C, one second each
	notes := []model.NoteEvent{
		{Pitch: 60, Start: 0, End: 1, Velocity: 80},
		{Pitch: 64, Start: 1, End: 2, Velocity: 80},
		{Pitch: 67, Start: 2, End: 3, Velocity: 80},
		{Pitch: 60, Start: 3, End: 4, Velocity: 80},
	}
	profile := chroma.NewPitchClassAnalyzer().CreateProfile(notes)
	result := NewKeyDetector().Detect(profile)

	assert := assert.New(t)
	assert.Greater(result.Confidence, 0.0)

	inScale := make(map[int]bool)
	for _, pc := range result.ScaleClasses {
		inScale[pc] = true
	}
	assert.True(inScale[0], "detected scale must contain C")
	assert.True(inScale[4], "detected scale must contain E")
	assert.True(inScale[7], "detected scale must contain G")
}

func TestDetectIsDeterministic(t *testing.T) {
	notes := []model.NoteEvent{
		{Pitch: 62, Start: 0, End: 1, Velocity: 70},
		{Pitch: 66, Start: 0, End: 2, Velocity: 70},
		{Pitch: 69, Start: 1, End: 2, Velocity: 70},
	}
	profile := chroma.NewPitchClassAnalyzer().CreateProfile(notes)

	first := NewKeyDetector().Detect(profile)
	for i := 0; i < 5; i++ {
		again := NewKeyDetector().Detect(profile)
		assert.Equal(t, first.Key, again.Key)
		assert.Equal(t, first.Confidence, again.Confidence)
	}
}

func TestDetectZeroProfileIsDegenerate(t *testing.T) {
	profile := chroma.NewPitchClassAnalyzer().CreateProfile(nil)
	result := NewKeyDetector().Detect(profile)

	// first catalog entry wins with all scores at 0
	assert.Equal(t, "C", result.Key)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestDetectReportsScaleNoteNames(t *testing.T) {
	notes := []model.NoteEvent{
		{Pitch: 60, Start: 0, End: 4, Velocity: 80},
		{Pitch: 64, Start: 0, End: 4, Velocity: 80},
		{Pitch: 67, Start: 0, End: 4, Velocity: 80},
	}
	profile := chroma.NewPitchClassAnalyzer().CreateProfile(notes)
	result := NewKeyDetector().Detect(profile)

	assert.Len(t, result.ScaleNoteNames, 7)
	for _, name := range result.ScaleNoteNames {
		assert.Contains(t, chroma.PitchClassNames, name)
	}
}
