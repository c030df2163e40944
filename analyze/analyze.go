// Package analyze wires the analysis branches into a single pipeline:
// one immutable Piece in, one AnalysisResult out. Each branch is a
// side-effect-free computation over the same snapshot; a branch that
// cannot produce a meaningful answer returns an empty or zero-valued
// sub-result instead of an error.
package analyze

import (
	"github.com/google/uuid"

	"github.com/Swaminathan-5/midi-maestro/algorithms/chroma"
	"github.com/Swaminathan-5/midi-maestro/algorithms/melodic"
	"github.com/Swaminathan-5/midi-maestro/algorithms/temporal"
	"github.com/Swaminathan-5/midi-maestro/algorithms/tonal"
	"github.com/Swaminathan-5/midi-maestro/logging"
	"github.com/Swaminathan-5/midi-maestro/model"
)

// Params configures the pipeline's resolution/speed tradeoffs.
type Params struct {
	WindowSeconds float64 `json:"window_seconds"` // chord analysis window
	HopSeconds    float64 `json:"hop_seconds"`    // chroma frame hop
	DensityRate   float64 `json:"density_rate"`   // rhythm sampling, Hz
}

// DefaultParams returns the standard configuration: 0.5 s chord
// windows over 10 Hz chroma frames and 10 Hz density sampling.
func DefaultParams() Params {
	return Params{
		WindowSeconds: 0.5,
		HopSeconds:    0.1,
		DensityRate:   10.0,
	}
}

// Analyzer runs the full analysis pipeline over one loaded piece.
type Analyzer struct {
	params     Params
	profiler   *chroma.PitchClassAnalyzer
	keys       *tonal.KeyDetector
	chromagram *chroma.Builder
	chords     *tonal.Recognizer
	rhythm     *temporal.RhythmAnalyzer
	melody     *melodic.MelodyAnalyzer
}

// NewAnalyzer creates an analyzer with default parameters
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithParams(DefaultParams())
}

// NewAnalyzerWithParams creates an analyzer with custom parameters
func NewAnalyzerWithParams(params Params) *Analyzer {
	def := DefaultParams()
	if params.WindowSeconds <= 0 {
		params.WindowSeconds = def.WindowSeconds
	}
	if params.HopSeconds <= 0 {
		params.HopSeconds = def.HopSeconds
	}
	if params.DensityRate <= 0 {
		params.DensityRate = def.DensityRate
	}

	return &Analyzer{
		params:     params,
		profiler:   chroma.NewPitchClassAnalyzer(),
		keys:       tonal.NewKeyDetector(),
		chromagram: chroma.NewBuilderWithParams(chroma.BuilderParams{HopSeconds: params.HopSeconds}),
		chords:     tonal.NewRecognizerWithParams(tonal.RecognizerParams{WindowSeconds: params.WindowSeconds}),
		rhythm:     temporal.NewRhythmAnalyzerWithParams(temporal.RhythmParams{SampleRate: params.DensityRate}),
		melody:     melodic.NewMelodyAnalyzer(),
	}
}

// Analyze runs every branch over the piece and merges the outputs
// into one result record. The four branches have no data dependency
// on each other; they all read the same frozen note-event list.
func (a *Analyzer) Analyze(piece *model.Piece) *Result {
	endTime := piece.EndTime()

	result := &Result{
		ID:     uuid.NewString(),
		Params: a.params,
		Basic:  a.basicInfo(piece, endTime),
	}

	logging.Info("detecting musical key")
	profile := a.profiler.CreateProfile(piece.Notes)
	key := a.keys.Detect(profile)
	result.PitchClass = profile.Profile
	result.Key = KeyInfo{Key: key.Key, Confidence: key.Confidence, Minor: key.Minor}
	result.ScaleNotes = key.ScaleNoteNames

	result.TimeSignature = firstTimeSignature(piece.TimeSignatures)

	logging.Info("analyzing rhythm")
	result.Rhythm = a.rhythm.Analyze(piece.Notes, piece.TempoChanges, endTime)
	if len(piece.TempoChanges) > 0 {
		result.InitialTempoBPM = piece.TempoChanges[0].BPM
	}

	logging.Info("analyzing harmony")
	cg := a.chromagram.Build(piece.Notes, endTime)
	frames := a.chords.Recognize(cg)
	labels := make([]string, len(frames))
	for i, f := range frames {
		labels[i] = f.Label
	}
	result.Harmony = HarmonyInfo{
		Chords:       frames,
		Progressions: tonal.CountProgressions(labels),
		Chromagram:   cg.Data,
		ChromaTimes:  cg.Times,
	}

	logging.Info("analyzing melody")
	result.Melody = a.melody.Analyze(piece.Notes)

	logging.Info("analysis complete", logging.Fields{
		"key":      result.Key.Key,
		"duration": result.Basic.Duration,
		"chords":   len(result.Harmony.Chords),
	})
	return result
}

func (a *Analyzer) basicInfo(piece *model.Piece, endTime float64) BasicInfo {
	names := make([]string, len(piece.Instruments))
	for i, inst := range piece.Instruments {
		names[i] = inst.Name
	}
	return BasicInfo{
		Instruments: names,
		TotalNotes:  piece.TotalNotes(),
		Duration:    endTime,
	}
}

// firstTimeSignature returns the first meter event, defaulting to 4/4.
func firstTimeSignature(sigs []model.TimeSignature) TimeSignatureInfo {
	if len(sigs) == 0 {
		return TimeSignatureInfo{Numerator: 4, Denominator: 4}
	}
	return TimeSignatureInfo{
		Numerator:   sigs[0].Numerator,
		Denominator: sigs[0].Denominator,
	}
}
