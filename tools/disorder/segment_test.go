package disorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSegment_SingleFullLengthRun(t *testing.T) {
	idrs := Segment(repeat(0.9, 40), 0.5, 30)
	require.Len(t, idrs, 1)
	assert.Equal(t, Interval{Start: 1, End: 40, Kind: KindIDR}, idrs[0])
}

func TestSegment_ShortRunDropped(t *testing.T) {
	scores := append(repeat(0.1, 5), repeat(0.9, 10)...)
	scores = append(scores, repeat(0.1, 5)...)
	assert.Empty(t, Segment(scores, 0.5, 30))
}

func TestSegment_EmptyInput(t *testing.T) {
	assert.Empty(t, Segment(nil, 0.5, 30))
	assert.Empty(t, FindIDRs([]float64{}))
}

func TestSegment_InteriorRunCoordinates(t *testing.T) {
	// 10 ordered, 35 disordered, 10 ordered -> residues 11..45
	scores := append(repeat(0.2, 10), repeat(0.7, 35)...)
	scores = append(scores, repeat(0.2, 10)...)

	idrs := FindIDRs(scores)
	require.Len(t, idrs, 1)
	assert.Equal(t, 11, idrs[0].Start)
	assert.Equal(t, 45, idrs[0].End)
	assert.Equal(t, 35, idrs[0].Len())
}

func TestSegment_ThresholdIsInclusive(t *testing.T) {
	idrs := Segment(repeat(0.5, 3), 0.5, 3)
	require.Len(t, idrs, 1)
	assert.Equal(t, 3, idrs[0].End)
}

func TestSegment_MultipleRunsAscendingAndDisjoint(t *testing.T) {
	scores := append(repeat(0.8, 4), 0.1)
	scores = append(scores, repeat(0.9, 2)...)
	scores = append(scores, 0.0)
	scores = append(scores, repeat(0.6, 5)...)

	idrs := Segment(scores, 0.5, 4)
	require.Len(t, idrs, 2)
	assert.Equal(t, Interval{Start: 1, End: 4, Kind: KindIDR}, idrs[0])
	assert.Equal(t, Interval{Start: 9, End: 13, Kind: KindIDR}, idrs[1])
	assert.Less(t, idrs[0].End, idrs[1].Start)
}

func TestCoverage(t *testing.T) {
	idrs := []Interval{{Start: 1, End: 10}, {Start: 21, End: 30}}
	assert.InDelta(t, 0.5, Coverage(idrs, 40), 1e-9)
	assert.Zero(t, Coverage(idrs, 0))
}
