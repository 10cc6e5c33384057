package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/repulse/internal/repulse"
)

// Mode is the free motion of one profile: a rotation of Frequency cycles per
// tick whose amplitude shrinks by Decay every tick.
type Mode struct {
	Frequency float64
	Decay     float64
}

// NaturalFrequency solves the per-tick update
//
//	v' = Damping*v - Spring*x
//	x' = x + v'
//
// for its eigenvalues. ok is false when the motion is overdamped and does
// not oscillate.
func NaturalFrequency(p repulse.Profile) (Mode, bool) {
	trace := 1 + repulse.Damping - p.Spring
	det := repulse.Damping
	disc := trace*trace - 4*det
	if disc >= 0 {
		return Mode{Decay: (math.Abs(trace) + math.Sqrt(disc)) / 2}, false
	}
	r := math.Sqrt(det)
	theta := math.Acos(trace / (2 * r))
	return Mode{Frequency: theta / (2 * math.Pi), Decay: r}, true
}

// PowerSpectrum returns the magnitude of the first half of the DFT of data
// with its mean removed.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	bins := fft.FFTReal(centered)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-zero frequency of data in
// cycles per sample, or 0 for flat or too-short input.
func DominantFrequency(data []float64) float64 {
	ps := PowerSpectrum(data)
	best, bestMag := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > bestMag {
			best, bestMag = i, ps[i]
		}
	}
	if bestMag == 0 {
		return 0
	}
	return float64(best) / float64(len(data))
}
