package temporal

import (
	"github.com/mjibson/go-dsp/fft"
)

// Tempo search range for the autocorrelation estimate.
const (
	minSearchBPM = 60.0
	maxSearchBPM = 180.0
)

// estimateTempo estimates tempo in BPM from periodicity in the note
// density series, independent of the file's tempo events. Returns 0
// when the series is too short to carry a beat period.
func (ra *RhythmAnalyzer) estimateTempo(density []float64) float64 {
	if len(density) < 10 {
		return 0.0
	}

	autocorr := autocorrelate(density)

	fs := ra.params.SampleRate
	minLag := int(fs * 60.0 / maxSearchBPM)
	maxLag := int(fs * 60.0 / minSearchBPM)

	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(autocorr)-1 {
		maxLag = len(autocorr) - 2
	}
	if maxLag < minLag {
		return 0.0
	}

	// highest local maximum inside the beat-period range
	bestLag := 0
	bestVal := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		if autocorr[lag] > autocorr[lag-1] &&
			autocorr[lag] > autocorr[lag+1] &&
			autocorr[lag] > bestVal {
			bestVal = autocorr[lag]
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return 0.0
	}

	period := float64(bestLag) / fs
	return 60.0 / period
}

// autocorrelate computes the normalized autocorrelation of a series
// via FFT (Wiener-Khinchin), zero-padded to avoid circular wrap.
// mjibson/go-dsp handles non-power-of-2 sizes.
func autocorrelate(series []float64) []float64 {
	n := len(series)

	padded := make([]float64, 2*n)
	copy(padded, series)

	spectrum := fft.FFTReal(padded)
	for i, v := range spectrum {
		spectrum[i] = complex(real(v)*real(v)+imag(v)*imag(v), 0)
	}

	inverse := fft.IFFT(spectrum)

	autocorr := make([]float64, n)
	for i := range autocorr {
		autocorr[i] = real(inverse[i])
	}

	// normalize to lag 0
	if autocorr[0] > 0 {
		r0 := autocorr[0]
		for i := range autocorr {
			autocorr[i] /= r0
		}
	}

	return autocorr
}
