package restriction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_EcoRI(t *testing.T) {
	found := Scan("ATATGAATTCATAT")
	assert.Contains(t, Names(found), "EcoRI")
}

func TestScan_CaseInsensitiveAndOrdered(t *testing.T) {
	found := Scan("ctcgagTTggatccAAgaattc")
	assert.Equal(t, []Enzyme{EcoRI, BamHI, XhoI}, found)
	assert.Equal(t, []string{"EcoRI", "BamHI", "XhoI"}, Names(found))
}

func TestScan_NoSites(t *testing.T) {
	assert.Empty(t, Scan("AAAAAAAAAA"))
	assert.Empty(t, Scan(""))
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("hindiii")
	require.True(t, ok)
	assert.Equal(t, HindIII, e)
	assert.Equal(t, "AAGCTT", e.Site())

	e, ok = Lookup("SmaI")
	assert.False(t, ok)
	assert.Equal(t, "unknown", e.String())
	assert.Equal(t, "", e.Site())
}

func TestPalindromic(t *testing.T) {
	for _, e := range Enzymes() {
		assert.True(t, e.Palindromic(), e.String())
	}
	assert.False(t, Enzyme(99).Palindromic())
}
