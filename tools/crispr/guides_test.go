package crispr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignGuides_PolyGWithAGG(t *testing.T) {
	guides := DesignGuides(strings.Repeat("G", 30) + "AGG")
	require.NotEmpty(t, guides)
	assert.LessOrEqual(t, len(guides), MaxGuides)
	for _, g := range guides {
		assert.Equal(t, PAMType, g.PAM)
		assert.Len(t, g.Sequence, GuideLength)
	}
	assert.Equal(t, "gRNA_1", guides[0].Label)
	assert.Equal(t, 0, guides[0].StartIndex)
	assert.Equal(t, 100.0, guides[0].GC)
}

func TestDesignGuides_ShortSequence(t *testing.T) {
	assert.Empty(t, DesignGuides(strings.Repeat("G", 22)))
	assert.Empty(t, DesignGuides(""))
}

func TestDesignGuides_PositionalCapNotRanking(t *testing.T) {
	// every offset qualifies; only the first five in scan order come back
	guides := DesignGuides(strings.Repeat("G", 60))
	require.Len(t, guides, MaxGuides)
	for i, g := range guides {
		assert.Equal(t, i, g.StartIndex)
	}
}

func TestDesignGuides_SinglePAM(t *testing.T) {
	// guide of 10 A + 10 C, PAM "TGG", then padding so the window is scanned
	dna := strings.Repeat("A", 10) + strings.Repeat("C", 10) + "TGG" + "A"
	guides := DesignGuides(dna)
	require.Len(t, guides, 1)
	g := guides[0]
	assert.Equal(t, strings.Repeat("A", 10)+strings.Repeat("C", 10), g.Sequence)
	assert.Equal(t, 50.0, g.GC)
	assert.Equal(t, "gRNA_1", g.Label)
}

func TestDesignGuides_LabelFollowsOffset(t *testing.T) {
	dna := strings.Repeat("A", 27) + "CGG" + "A"
	guides := DesignGuides(dna)
	require.Len(t, guides, 1)
	assert.Equal(t, 7, guides[0].StartIndex)
	assert.Equal(t, "gRNA_8", guides[0].Label)
	assert.Zero(t, guides[0].GC)
}
