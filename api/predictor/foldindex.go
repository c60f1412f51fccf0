package predictor

import (
	"context"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"gene_weaver_go/api/fetch"
)

const (
	DefaultWindow = 51

	// Steepness of the logistic mapping; FoldIndex 0 maps to 0.5.
	foldIndexSlope = 10.0
)

// Kyte-Doolittle hydropathy.
var kyteDoolittle = map[byte]float64{
	'A': 1.8, 'R': -4.5, 'N': -3.5, 'D': -3.5, 'C': 2.5,
	'Q': -3.5, 'E': -3.5, 'G': -0.4, 'H': -3.2, 'I': 4.5,
	'L': 3.8, 'K': -3.9, 'M': 1.9, 'F': 2.8, 'P': -1.6,
	'S': -0.8, 'T': -0.7, 'W': -0.9, 'Y': -1.3, 'V': 4.2,
}

// FoldIndex implements the charge/hydropathy FoldIndex (Prilusky et al.,
// 2005) over a centred sliding window. Negative FoldIndex means unfolded.
type FoldIndex struct {
	Window int
}

func NewFoldIndex(window int) FoldIndex {
	if window <= 0 {
		window = DefaultWindow
	}
	return FoldIndex{Window: window}
}

func (FoldIndex) Name() string { return KindFoldIndex }

func (f FoldIndex) Predict(_ context.Context, sequence string) fetch.Result[[]float64] {
	return fetch.FoundValue(f.Scores(sequence))
}

// Scores computes the disorder probability for every residue.
func (f FoldIndex) Scores(sequence string) []float64 {
	seq := strings.ToUpper(sequence)
	n := len(seq)
	if n == 0 {
		return nil
	}

	hydro := make([]float64, n)
	charge := make([]float64, n)
	for i := 0; i < n; i++ {
		if kd, ok := kyteDoolittle[seq[i]]; ok {
			hydro[i] = (kd + 4.5) / 9 // normalised to [0,1]
		} else {
			hydro[i] = 0.5
		}
		switch seq[i] {
		case 'K', 'R':
			charge[i] = 1
		case 'D', 'E':
			charge[i] = -1
		}
	}
	hydroSum := floats.CumSum(make([]float64, n), hydro)
	chargeSum := floats.CumSum(make([]float64, n), charge)

	half := f.Window / 2
	scores := make([]float64, n)
	for i := range scores {
		lo := max(0, i-half)
		hi := min(n-1, i+half)
		width := float64(hi - lo + 1)
		h := windowSum(hydroSum, lo, hi) / width
		r := windowSum(chargeSum, lo, hi) / width
		fi := 2.785*h - math.Abs(r) - 1.151
		scores[i] = clamp01(1 / (1 + math.Exp(foldIndexSlope*fi)))
	}
	return scores
}

func windowSum(cum []float64, lo, hi int) float64 {
	if lo == 0 {
		return cum[hi]
	}
	return cum[hi] - cum[lo-1]
}
