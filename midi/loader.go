package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Swaminathan-5/midi-maestro/logging"
	"github.com/Swaminathan-5/midi-maestro/model"
)

// ErrLoad is returned (wrapped) whenever a file cannot be read or is
// not a valid standard MIDI file. It is the only fatal error kind in
// the pipeline; check with errors.Is.
var ErrLoad = errors.New("midi: load failed")

const defaultBPM = 120.0

// Load reads a standard MIDI file and flattens it into a Piece:
// note events with absolute times in seconds, the tempo map, the time
// signature events and per-track instrument info.
func Load(path string) (p *model.Piece, err error) {
	// handle panics from malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = fmt.Errorf("%w: parsing %s: %v", ErrLoad, path, r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, path, err)
	}

	parsed, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrLoad, path, err)
	}

	piece, err := FromSMF(parsed)
	if err != nil {
		return nil, err
	}

	logging.Info("loaded midi file", logging.Fields{
		"path":        path,
		"instruments": len(piece.Instruments),
		"notes":       piece.TotalNotes(),
	})
	return piece, nil
}

// FromSMF flattens an in-memory SMF into a Piece.
func FromSMF(s *smf.SMF) (*model.Piece, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported time format %v", ErrLoad, s.TimeFormat)
	}

	tm := buildTempoMap(s, ticks)

	var piece model.Piece
	piece.TempoChanges = tm.changes

	for _, track := range s.Tracks {
		extractTrack(track, tm, &piece)
	}

	sort.SliceStable(piece.Notes, func(i, j int) bool {
		return piece.Notes[i].Start < piece.Notes[j].Start
	})
	sort.SliceStable(piece.TimeSignatures, func(i, j int) bool {
		return piece.TimeSignatures[i].Time < piece.TimeSignatures[j].Time
	})

	return &piece, nil
}

// tempoMap converts absolute ticks to seconds using the piece's tempo
// events. Segment boundaries are precomputed so conversion is a binary
// search plus one multiply.
type tempoMap struct {
	ticksPerQuarter float64
	segStartTick    []uint64
	segStartSec     []float64
	segBPM          []float64
	changes         []model.TempoChange
}

func buildTempoMap(s *smf.SMF, ticks smf.MetricTicks) *tempoMap {
	type tempoAt struct {
		tick uint64
		bpm  float64
	}
	var events []tempoAt

	for _, track := range s.Tracks {
		var absTicks uint64
		for _, ev := range track {
			absTicks += uint64(ev.Delta)
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) && bpm > 0 {
				events = append(events, tempoAt{tick: absTicks, bpm: bpm})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	tm := &tempoMap{ticksPerQuarter: float64(ticks.Resolution())}

	// implicit 120 BPM before the first tempo event
	if len(events) == 0 || events[0].tick > 0 {
		tm.segStartTick = append(tm.segStartTick, 0)
		tm.segStartSec = append(tm.segStartSec, 0)
		tm.segBPM = append(tm.segBPM, defaultBPM)
	}

	for _, ev := range events {
		sec := tm.timeAt(ev.tick)
		tm.segStartTick = append(tm.segStartTick, ev.tick)
		tm.segStartSec = append(tm.segStartSec, sec)
		tm.segBPM = append(tm.segBPM, ev.bpm)
		tm.changes = append(tm.changes, model.TempoChange{Time: sec, BPM: ev.bpm})
	}

	return tm
}

// timeAt converts an absolute tick position to seconds.
func (tm *tempoMap) timeAt(tick uint64) float64 {
	if len(tm.segStartTick) == 0 {
		return float64(tick) * 60.0 / (defaultBPM * tm.ticksPerQuarter)
	}

	idx := sort.Search(len(tm.segStartTick), func(i int) bool {
		return tm.segStartTick[i] > tick
	}) - 1
	if idx < 0 {
		idx = 0
	}

	dt := float64(tick - tm.segStartTick[idx])
	return tm.segStartSec[idx] + dt*60.0/(tm.segBPM[idx]*tm.ticksPerQuarter)
}

// extractTrack walks one track, pairing note on/off events and
// collecting meta events into the piece.
func extractTrack(track smf.Track, tm *tempoMap, piece *model.Piece) {
	type noteKey struct {
		channel uint8
		key     uint8
	}
	type openNote struct {
		start    float64
		velocity uint8
	}

	open := make(map[noteKey]openNote)
	trackName := ""
	program := 0
	noteCount := 0
	percussion := false

	var absTicks uint64

	closeNote := func(ch, key uint8) {
		on, ok := open[noteKey{ch, key}]
		if !ok {
			return
		}
		delete(open, noteKey{ch, key})

		isPerc := ch == 9 // GM percussion channel
		if isPerc {
			percussion = true
		}

		piece.Notes = append(piece.Notes, model.NoteEvent{
			Pitch:        int(key),
			Start:        on.start,
			End:          tm.timeAt(absTicks),
			Velocity:     int(on.velocity),
			Instrument:   program,
			IsPercussion: isPerc,
		})
		noteCount++
	}

	for _, ev := range track {
		absTicks += uint64(ev.Delta)

		var (
			ch, key, vel uint8
			num, denom   uint8
			prog         uint8
			text         string
		)

		switch {
		case ev.Message.GetNoteOn(&ch, &key, &vel):
			if vel == 0 {
				// note on with zero velocity is a note off
				closeNote(ch, key)
				continue
			}
			open[noteKey{ch, key}] = openNote{start: tm.timeAt(absTicks), velocity: vel}

		case ev.Message.GetNoteOff(&ch, &key, &vel):
			closeNote(ch, key)

		case ev.Message.GetProgramChange(&ch, &prog):
			program = int(prog)

		case ev.Message.GetMetaTrackName(&text):
			trackName = text

		case ev.Message.GetMetaMeter(&num, &denom):
			piece.TimeSignatures = append(piece.TimeSignatures, model.TimeSignature{
				Time:        tm.timeAt(absTicks),
				Numerator:   int(num),
				Denominator: int(denom),
			})
		}
	}

	// notes still open at end of track are dropped rather than given
	// arbitrary durations
	if noteCount > 0 {
		name := trackName
		if name == "" {
			name = fmt.Sprintf("Instrument %d", program)
		}
		piece.Instruments = append(piece.Instruments, model.Instrument{
			Program:      program,
			Name:         name,
			IsPercussion: percussion,
			NoteCount:    noteCount,
		})
	}
}
