package temporal

import (
	"math"

	"github.com/Swaminathan-5/midi-maestro/algorithms/stats"
	"github.com/Swaminathan-5/midi-maestro/model"
)

const defaultTempo = 120.0

// RhythmResult contains tempo and pulse analysis for one piece.
// BeatTimes may be empty, which means "beats not detected", never
// "no rhythm". EstimatedTempo is the note-density autocorrelation
// estimate; 0 means the series was too short to estimate.
type RhythmResult struct {
	AvgTempo       float64             `json:"avg_tempo"`
	TempoChanges   []model.TempoChange `json:"tempo_changes"`
	DensityTimes   []float64           `json:"density_times"`
	Density        []float64           `json:"density"`
	BeatTimes      []float64           `json:"beat_times"`
	EstimatedTempo float64             `json:"estimated_tempo"`
	TotalDuration  float64             `json:"total_duration"`
}

// RhythmParams configures rhythm analysis.
type RhythmParams struct {
	SampleRate float64 `json:"sample_rate"` // density samples per second
}

// DefaultRhythmParams returns the standard 10 Hz density sampling.
func DefaultRhythmParams() RhythmParams {
	return RhythmParams{SampleRate: 10.0}
}

// RhythmAnalyzer derives tempo, a note-density series and beat
// positions from a note-event list plus tempo events.
type RhythmAnalyzer struct {
	params RhythmParams
}

// NewRhythmAnalyzer creates a rhythm analyzer with default parameters
func NewRhythmAnalyzer() *RhythmAnalyzer {
	return &RhythmAnalyzer{params: DefaultRhythmParams()}
}

// NewRhythmAnalyzerWithParams creates a rhythm analyzer with custom parameters
func NewRhythmAnalyzerWithParams(params RhythmParams) *RhythmAnalyzer {
	if params.SampleRate <= 0 {
		params.SampleRate = DefaultRhythmParams().SampleRate
	}
	return &RhythmAnalyzer{params: params}
}

// Analyze runs the full rhythm branch. Average tempo is the
// unweighted arithmetic mean of the tempo events (not time-weighted),
// defaulting to 120 BPM when no tempo events exist.
func (ra *RhythmAnalyzer) Analyze(notes []model.NoteEvent, tempoChanges []model.TempoChange, endTime float64) RhythmResult {
	avgTempo := defaultTempo
	if len(tempoChanges) > 0 {
		bpms := make([]float64, len(tempoChanges))
		for i, tc := range tempoChanges {
			bpms[i] = tc.BPM
		}
		avgTempo = stats.Mean(bpms)
	}

	density, times := ra.densitySeries(notes, endTime)
	beats := ra.detectBeats(density, times, avgTempo)

	return RhythmResult{
		AvgTempo:       avgTempo,
		TempoChanges:   tempoChanges,
		DensityTimes:   times,
		Density:        density,
		BeatTimes:      beats,
		EstimatedTempo: ra.estimateTempo(density),
		TotalDuration:  endTime,
	}
}

// densitySeries samples the count of simultaneously sounding pitches.
// The count is over distinct pitches (piano-roll columns with nonzero
// activity), so unison doublings do not inflate it.
func (ra *RhythmAnalyzer) densitySeries(notes []model.NoteEvent, endTime float64) ([]float64, []float64) {
	fs := ra.params.SampleRate

	numSamples := 0
	if endTime > 0 {
		numSamples = int(math.Ceil(endTime * fs))
	}

	times := make([]float64, numSamples)
	for t := range times {
		times[t] = float64(t) / fs
	}

	density := make([]float64, numSamples)
	if numSamples == 0 {
		return density, times
	}

	active := make([][]bool, 128)
	for p := range active {
		active[p] = make([]bool, numSamples)
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
		if endIdx > numSamples {
			endIdx = numSamples
		}
		for t := startIdx; t < endIdx; t++ {
			active[n.Pitch][t] = true
		}
	}

	for p := 0; p < 128; p++ {
		for t, on := range active[p] {
			if on {
				density[t] += 1.0
			}
		}
	}

	return density, times
}

// detectBeats peak-picks the density series. Minimum peak height is
// the series mean; minimum separation is half the beat interval at
// the average tempo. Any degenerate input yields an empty beat list.
func (ra *RhythmAnalyzer) detectBeats(density, times []float64, avgTempo float64) []float64 {
	if avgTempo <= 0 || len(density) == 0 {
		return nil
	}

	beatInterval := 60.0 / avgTempo
	beatFrames := int(beatInterval * ra.params.SampleRate)
	minDistance := beatFrames / 2

	peaks := stats.FindPeaks(density, stats.Mean(density), minDistance)

	beats := make([]float64, 0, len(peaks))
	for _, p := range peaks {
		beats = append(beats, times[p])
	}
	return beats
}
