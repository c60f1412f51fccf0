package primers

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Overhangs(t *testing.T) {
	dna := "ATGCGTACGTAGCTAGCTAGCTAGCTAG"
	require.Len(t, dna, 28)

	p := Generate(dna, "GAATTC", "GGATCC")
	assert.True(t, strings.HasPrefix(p.Forward, "GAATTC"))
	assert.True(t, strings.HasPrefix(p.Reverse, "GGATCC"))
	assert.Equal(t, dna[:20], p.ForwardBinding)
	assert.Equal(t, ReverseComplement(dna[8:]), p.ReverseBinding)
	assert.Equal(t, "GAATTC"+dna[:20], p.Forward)
}

func TestGenerate_ShortTemplateIsNotPadded(t *testing.T) {
	p := Generate("ATGC", "AA", "TT")
	assert.Equal(t, "ATGC", p.ForwardBinding)
	assert.Equal(t, "GCAT", p.ReverseBinding)
	assert.Equal(t, "AAATGC", p.Forward)
	assert.Equal(t, "TTGCAT", p.Reverse)

	empty := Generate("", "GAATTC", "GGATCC")
	assert.Equal(t, "GAATTC", empty.Forward)
	assert.Equal(t, "GGATCC", empty.Reverse)
}

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "GCAT", ReverseComplement("ATGC"))
	assert.Equal(t, "TNA", ReverseComplement("TNA"))
	assert.Equal(t, "a-T", ReverseComplement("A-a"))
	assert.Equal(t, "", ReverseComplement(""))
}

func TestReverseComplement_Involution(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bases := "ACGT"
	for n := 0; n < 200; n++ {
		b := make([]byte, rng.Intn(64))
		for i := range b {
			b[i] = bases[rng.Intn(4)]
		}
		d := string(b)
		assert.Equal(t, d, ReverseComplement(ReverseComplement(d)))
	}
}

func TestMeltingTemp(t *testing.T) {
	assert.Equal(t, 0, MeltingTemp(""))
	assert.Equal(t, 2*2+4*2, MeltingTemp("ATGC"))
	assert.Equal(t, 80, MeltingTemp(strings.Repeat("G", 20)))
	assert.Equal(t, 4, MeltingTemp("GN"))
}

func TestAssess(t *testing.T) {
	cases := []struct {
		name   string
		full   string
		gc     float64
		status Status
	}{
		{"lower bound", "GGCCAATTAT", 40, Pass},
		{"upper bound", "GGCCGCAATT", 60, Pass},
		{"too low", "AAAAAAAAAG", 10, Warning},
		{"too high", "GGGGGGGGGA", 90, Warning},
		{"empty", "", 0, Warning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := Assess(tc.full, tc.full)
			assert.InDelta(t, tc.gc, q.GC, 1e-9)
			assert.Equal(t, tc.status, q.Status)
		})
	}
}

func TestAssess_GCUsesFullPrimerTmUsesBinding(t *testing.T) {
	q := Assess("GGGGAAAA", "AAAA")
	assert.Equal(t, 8, q.Tm)
	assert.InDelta(t, 50, q.GC, 1e-9)
	assert.Equal(t, Pass, q.Status)
}

func TestAssessPair(t *testing.T) {
	p := Generate(strings.Repeat("GA", 15), "GAATTC", "GGATCC")
	fwd, rev := AssessPair(p)
	assert.Equal(t, MeltingTemp(p.ForwardBinding), fwd.Tm)
	assert.Equal(t, MeltingTemp(p.ReverseBinding), rev.Tm)
}
