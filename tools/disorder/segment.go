// Package disorder splits per-residue disorder probabilities into
// intrinsically disordered regions (IDRs).
package disorder

const (
	DefaultThreshold = 0.5
	DefaultMinLength = 30

	KindIDR = "IDR"
)

// Interval is a 1-based, inclusive residue range.
type Interval struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Kind  string `json:"type"`
}

// Len returns the number of residues covered by the interval.
func (iv Interval) Len() int {
	return iv.End - iv.Start + 1
}

// Contains reports whether residue pos (1-based) falls inside the interval.
func (iv Interval) Contains(pos int) bool {
	return iv.Start <= pos && pos <= iv.End
}

// FindIDRs segments scores with the default threshold and minimum length.
func FindIDRs(scores []float64) []Interval {
	return Segment(scores, DefaultThreshold, DefaultMinLength)
}

// Segment returns every maximal run of scores >= threshold that is at least
// minLength residues long. Runs are reported in ascending order with 1-based
// inclusive coordinates; a run reaching the last score is closed there.
func Segment(scores []float64, threshold float64, minLength int) []Interval {
	var idrs []Interval
	start := 0 // 1-based start of the open run, 0 when none

	closeRun := func(end int) {
		iv := Interval{Start: start, End: end, Kind: KindIDR}
		if iv.Len() >= minLength {
			idrs = append(idrs, iv)
		}
		start = 0
	}

	for i, score := range scores {
		if score >= threshold {
			if start == 0 {
				start = i + 1
			}
			continue
		}
		if start != 0 {
			closeRun(i) // residue i is the last one above threshold
		}
	}

	// C-terminal run
	if start != 0 {
		closeRun(len(scores))
	}
	return idrs
}

// Coverage returns the fraction of residues that fall inside intervals.
func Coverage(intervals []Interval, length int) float64 {
	if length <= 0 {
		return 0
	}
	covered := 0
	for _, iv := range intervals {
		covered += iv.Len()
	}
	return float64(covered) / float64(length)
}
