package codon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize_LengthIsThreeTimesInput(t *testing.T) {
	for _, org := range Organisms() {
		for _, aa := range []string{"", "M", "METVAL", "ACDEFGHIKLMNPQRSTVWY*", "MXB?"} {
			assert.Len(t, Optimize(aa, org), 3*len(aa), "%s %q", org, aa)
		}
	}
}

func TestOptimize_TablesDiffer(t *testing.T) {
	human := Optimize("METVAL", Human)
	yeast := Optimize("METVAL", Yeast)
	require.Len(t, human, 18)
	assert.NotEqual(t, human, yeast)
	assert.Equal(t, "ATGGAGACCGTGGCCCTG", human)
	assert.Equal(t, "ATGGAAACTGTTGCTTTG", yeast)
}

func TestOptimize_UnknownSymbols(t *testing.T) {
	assert.Equal(t, "ATG"+Unknown+"TAA", Optimize("MZ*", Human))
	assert.Equal(t, strings.Repeat(Unknown, 2), Optimize("m1", Yeast))
}

func TestParseOrganism(t *testing.T) {
	assert.Equal(t, Human, ParseOrganism("human"))
	assert.Equal(t, Yeast, ParseOrganism(" YEAST "))
	assert.Equal(t, DefaultOrganism, ParseOrganism("axolotl"))
	assert.Equal(t, DefaultOrganism, ParseOrganism(""))
}

func TestOrganism_OutOfRangeFallsBack(t *testing.T) {
	bogus := Organism(42)
	assert.Equal(t, "Human", bogus.String())
	assert.Equal(t, Optimize("MK", Human), Optimize("MK", bogus))
	assert.Equal(t, "4932", Yeast.TaxID())
	assert.Equal(t, "9606", Human.TaxID())
}
