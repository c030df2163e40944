package model

// NoteEvent is a single sounded note with absolute times in seconds.
// Events are produced once by the loader and are read-only afterwards;
// every analyzer shares the same slice.
type NoteEvent struct {
	Pitch        int     `json:"pitch"`    // MIDI pitch 0-127
	Start        float64 `json:"start"`    // onset, seconds
	End          float64 `json:"end"`      // release, seconds (>= Start)
	Velocity     int     `json:"velocity"` // 0-127
	Instrument   int     `json:"instrument"`
	IsPercussion bool    `json:"is_percussion"`
}

// Duration returns the sounding length of the note in seconds.
func (n NoteEvent) Duration() float64 {
	return n.End - n.Start
}

// TempoChange is a tempo event at an absolute time.
type TempoChange struct {
	Time float64 `json:"time_sec"`
	BPM  float64 `json:"bpm"`
}

// TimeSignature is a meter event at an absolute time.
type TimeSignature struct {
	Time        float64 `json:"time_sec"`
	Numerator   int     `json:"numerator"`
	Denominator int     `json:"denominator"`
}

// Instrument describes one instrument track of a piece.
type Instrument struct {
	Program      int    `json:"program"`
	Name         string `json:"name"`
	IsPercussion bool   `json:"is_percussion"`
	NoteCount    int    `json:"note_count"`
}

// Piece is the frozen snapshot of a loaded performance that a single
// analysis run consumes. Nothing mutates it after loading.
type Piece struct {
	Notes          []NoteEvent     `json:"notes"`
	TempoChanges   []TempoChange   `json:"tempo_changes"`
	TimeSignatures []TimeSignature `json:"time_signatures"`
	Instruments    []Instrument    `json:"instruments"`
}

// EndTime returns the total duration of the piece: the latest note
// release, or 0 for an empty piece.
func (p *Piece) EndTime() float64 {
	end := 0.0
	for _, n := range p.Notes {
		if n.End > end {
			end = n.End
		}
	}
	return end
}

// TotalNotes returns the number of note events across all instruments.
func (p *Piece) TotalNotes() int {
	return len(p.Notes)
}
