package tonal

import (
	"math"

	"github.com/Swaminathan-5/midi-maestro/algorithms/chroma"
	"github.com/Swaminathan-5/midi-maestro/algorithms/stats"
)

// NoChordLabel is the sentinel emitted for silent analysis windows.
const NoChordLabel = "N"

// silenceThreshold guards against zero-energy chroma blocks: below
// it a window is labeled NoChordLabel with confidence 0 instead of
// being force-matched to a template.
const silenceThreshold = 1e-6

// chordQuality is one quality pattern of the chord catalog: a label
// suffix and its intervals in semitones from the root.
type chordQuality struct {
	suffix    string
	intervals []int
}

// chordQualities lists the 22 quality patterns in catalog-insertion
// order. Together with the root-outer scan in Recognize this order is
// the tie-break rule and must not be reordered. Intervals above 11
// (9ths, 11ths) fold mod 12 into the pitch class template.
var chordQualities = []chordQuality{
	// triads
	{"", []int{0, 4, 7}},
	{"m", []int{0, 3, 7}},
	{"dim", []int{0, 3, 6}},
	{"aug", []int{0, 4, 8}},
	{"sus2", []int{0, 2, 7}},
	{"sus4", []int{0, 5, 7}},

	// 7ths
	{"maj7", []int{0, 4, 7, 11}},
	{"7", []int{0, 4, 7, 10}},
	{"m7", []int{0, 3, 7, 10}},
	{"m7b5", []int{0, 3, 6, 10}},
	{"dim7", []int{0, 3, 6, 9}},
	{"maj7#5", []int{0, 4, 8, 11}},
	{"7#5", []int{0, 4, 8, 10}},
	{"7b5", []int{0, 4, 6, 10}},

	// 9ths
	{"maj9", []int{0, 4, 7, 11, 14}},
	{"9", []int{0, 4, 7, 10, 14}},
	{"m9", []int{0, 3, 7, 10, 14}},

	// extended
	{"add9", []int{0, 4, 7, 14}},
	{"add11", []int{0, 4, 7, 17}},
	{"6", []int{0, 4, 7, 9}},
	{"m6", []int{0, 3, 7, 9}},
	{"5", []int{0, 7}},
}

// ChordTemplate is one entry of the expanded catalog: a label and its
// binary pitch class indicator.
type ChordTemplate struct {
	Label     string    `json:"label"`
	Root      int       `json:"root"`
	Quality   string    `json:"quality"`
	Indicator []float64 `json:"indicator"`
}

// chordCatalog is the fixed catalog of 22 qualities x 12 roots = 264
// templates, root-outer, quality inner.
var chordCatalog = buildChordCatalog()

func buildChordCatalog() []ChordTemplate {
	catalog := make([]ChordTemplate, 0, 12*len(chordQualities))
	for root := 0; root < 12; root++ {
		for _, q := range chordQualities {
			indicator := make([]float64, 12)
			for _, iv := range q.intervals {
				indicator[(root+iv)%12] = 1.0
			}
			catalog = append(catalog, ChordTemplate{
				Label:     chroma.PitchClassNames[root] + q.suffix,
				Root:      root,
				Quality:   q.suffix,
				Indicator: indicator,
			})
		}
	}
	return catalog
}

// ChordCatalog returns the fixed chord template catalog in scan order.
func ChordCatalog() []ChordTemplate {
	return chordCatalog
}

// ChordFrame is one labeled analysis window of the chord sequence.
type ChordFrame struct {
	Time       float64 `json:"time_sec"`
	Label      string  `json:"chord"`
	Confidence float64 `json:"confidence"`
}

// RecognizerParams configures chord recognition windowing.
type RecognizerParams struct {
	WindowSeconds float64 `json:"window_seconds"`
}

// DefaultRecognizerParams returns the standard half-second window.
func DefaultRecognizerParams() RecognizerParams {
	return RecognizerParams{WindowSeconds: 0.5}
}

// Recognizer matches chromagram blocks against the chord catalog.
// This is a deliberate brute-force template match, O(frames/window x
// 264 x 12); batch analysis of a single piece keeps it tractable.
type Recognizer struct {
	params RecognizerParams
}

// NewRecognizer creates a chord recognizer with default parameters
func NewRecognizer() *Recognizer {
	return &Recognizer{params: DefaultRecognizerParams()}
}

// NewRecognizerWithParams creates a chord recognizer with custom parameters
func NewRecognizerWithParams(params RecognizerParams) *Recognizer {
	if params.WindowSeconds <= 0 {
		params.WindowSeconds = DefaultRecognizerParams().WindowSeconds
	}
	return &Recognizer{params: params}
}

// Recognize slides a non-overlapping window of winFrames across the
// chromagram (step = winFrames: a block average, not a sliding
// correlation), scores each block's averaged chroma vector against
// every template by dot product, and emits one frame per block. The
// first strict maximum in catalog order wins.
func (r *Recognizer) Recognize(cg *chroma.Chromagram) []ChordFrame {
	numFrames := cg.NumFrames()
	if numFrames == 0 {
		return nil
	}

	winFrames := int(math.Round(r.params.WindowSeconds * cg.SampleRate))
	if winFrames < 1 {
		winFrames = 1
	}

	var frames []ChordFrame
	for i := 0; i < numFrames; i += winFrames {
		end := i + winFrames
		if end > numFrames {
			end = numFrames
		}

		block := averageBlock(cg.Data, i, end)

		// block start time, clipped to the last valid frame
		timeIdx := i
		if timeIdx > numFrames-1 {
			timeIdx = numFrames - 1
		}
		t := cg.Times[timeIdx]

		energy := 0.0
		for _, v := range block {
			energy += v
		}
		if energy < silenceThreshold {
			frames = append(frames, ChordFrame{Time: t, Label: NoChordLabel, Confidence: 0})
			continue
		}

		bestLabel := NoChordLabel
		bestScore := -1.0
		for _, tmpl := range chordCatalog {
			score := stats.Dot(tmpl.Indicator, block)
			if score > bestScore {
				bestScore = score
				bestLabel = tmpl.Label
			}
		}

		frames = append(frames, ChordFrame{Time: t, Label: bestLabel, Confidence: bestScore})
	}

	return frames
}

// averageBlock averages chroma columns [start, end) into one 12-vector.
func averageBlock(data [][]float64, start, end int) []float64 {
	avg := make([]float64, 12)
	n := end - start
	if n <= 0 {
		return avg
	}

	for pc := 0; pc < 12; pc++ {
		sum := 0.0
		for t := start; t < end; t++ {
			sum += data[pc][t]
		}
		avg[pc] = sum / float64(n)
	}
	return avg
}
