package midi

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ticksPerQuarter of 960 at 120 BPM makes one quarter note 0.5 s,
// which keeps the expected times below readable.
func newTestSMF() *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)
	return s
}

func TestFromSMFNotesAndTiming(t *testing.T) {
	assert := assert.New(t)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, smf.MetaMeter(3, 4))
	tr.Add(0, smf.MetaTrackSequenceName("Piano"))
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(960, gomidi.NoteOff(0, 60))
	tr.Add(0, gomidi.NoteOn(0, 64, 90))
	tr.Add(960, gomidi.NoteOff(0, 64))
	tr.Close(0)

	s := newTestSMF()
	s.Add(tr)

	piece, err := FromSMF(s)
	require.NoError(t, err)

	require.Len(t, piece.Notes, 2)
	assert.Equal(60, piece.Notes[0].Pitch)
	assert.InDelta(0.0, piece.Notes[0].Start, 1e-9)
	assert.InDelta(0.5, piece.Notes[0].End, 1e-9)
	assert.Equal(100, piece.Notes[0].Velocity)

	assert.Equal(64, piece.Notes[1].Pitch)
	assert.InDelta(0.5, piece.Notes[1].Start, 1e-9)
	assert.InDelta(1.0, piece.Notes[1].End, 1e-9)

	require.Len(t, piece.TempoChanges, 1)
	assert.InDelta(120.0, piece.TempoChanges[0].BPM, 1e-9)
	assert.InDelta(0.0, piece.TempoChanges[0].Time, 1e-9)

	require.Len(t, piece.TimeSignatures, 1)
	assert.Equal(3, piece.TimeSignatures[0].Numerator)
	assert.Equal(4, piece.TimeSignatures[0].Denominator)

	require.Len(t, piece.Instruments, 1)
	assert.Equal("Piano", piece.Instruments[0].Name)
	assert.Equal(2, piece.Instruments[0].NoteCount)
}

func TestFromSMFZeroVelocityNoteOff(t *testing.T) {
	assert := assert.New(t)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOn(0, 60, 0))
	tr.Close(0)

	s := newTestSMF()
	s.Add(tr)

	piece, err := FromSMF(s)
	require.NoError(t, err)

	require.Len(t, piece.Notes, 1)
	assert.InDelta(0.25, piece.Notes[0].End, 1e-9)
}

func TestFromSMFImplicitInitialTempo(t *testing.T) {
	assert := assert.New(t)

	// no tempo event until tick 960, so the first 960 ticks run at
	// the implicit 120 BPM
	var tempoTrack smf.Track
	tempoTrack.Add(960, smf.MetaTempo(60))
	tempoTrack.Close(0)

	var notes smf.Track
	notes.Add(0, gomidi.NoteOn(0, 60, 100))
	notes.Add(1920, gomidi.NoteOff(0, 60))
	notes.Close(0)

	s := newTestSMF()
	s.Add(tempoTrack)
	s.Add(notes)

	piece, err := FromSMF(s)
	require.NoError(t, err)

	require.Len(t, piece.TempoChanges, 1)
	assert.InDelta(0.5, piece.TempoChanges[0].Time, 1e-9)
	assert.InDelta(60.0, piece.TempoChanges[0].BPM, 1e-9)

	// 960 ticks at 120 BPM then 960 ticks at 60 BPM
	require.Len(t, piece.Notes, 1)
	assert.InDelta(1.5, piece.Notes[0].End, 1e-9)
}

func TestFromSMFPercussionChannel(t *testing.T) {
	assert := assert.New(t)

	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(9, 36, 127))
	tr.Add(240, gomidi.NoteOff(9, 36))
	tr.Close(0)

	s := newTestSMF()
	s.Add(tr)

	piece, err := FromSMF(s)
	require.NoError(t, err)

	require.Len(t, piece.Notes, 1)
	assert.True(piece.Notes[0].IsPercussion)
	require.Len(t, piece.Instruments, 1)
	assert.True(piece.Instruments[0].IsPercussion)
	assert.Equal("Instrument 0", piece.Instruments[0].Name)
}

func TestFromSMFProgramChange(t *testing.T) {
	assert := assert.New(t)

	var tr smf.Track
	tr.Add(0, gomidi.ProgramChange(0, 24))
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOff(0, 60))
	tr.Close(0)

	s := newTestSMF()
	s.Add(tr)

	piece, err := FromSMF(s)
	require.NoError(t, err)

	require.Len(t, piece.Notes, 1)
	assert.Equal(24, piece.Notes[0].Instrument)
	require.Len(t, piece.Instruments, 1)
	assert.Equal(24, piece.Instruments[0].Program)
	assert.Equal("Instrument 24", piece.Instruments[0].Name)
}

func TestFromSMFDropsUnterminatedNotes(t *testing.T) {
	assert := assert.New(t)

	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOff(0, 60))
	tr.Add(0, gomidi.NoteOn(0, 64, 100))
	tr.Close(0)

	s := newTestSMF()
	s.Add(tr)

	piece, err := FromSMF(s)
	require.NoError(t, err)

	require.Len(t, piece.Notes, 1)
	assert.Equal(60, piece.Notes[0].Pitch)
}

func TestLoadMissingFile(t *testing.T) {
	assert := assert.New(t)

	piece, err := Load(filepath.Join(t.TempDir(), "does-not-exist.mid"))

	assert.Nil(piece)
	assert.True(errors.Is(err, ErrLoad))
}

func TestLoadRoundTrip(t *testing.T) {
	assert := assert.New(t)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(960, gomidi.NoteOff(0, 60))
	tr.Close(0)

	s := newTestSMF()
	s.Add(tr)

	path := filepath.Join(t.TempDir(), "test.mid")
	require.NoError(t, s.WriteFile(path))

	piece, err := Load(path)
	require.NoError(t, err)

	require.Len(t, piece.Notes, 1)
	assert.Equal(60, piece.Notes[0].Pitch)
	assert.InDelta(0.5, piece.Notes[0].End, 1e-9)
}
