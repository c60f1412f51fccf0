// Package protparam computes basic physico-chemical parameters of a protein
// region: average molecular weight and isoelectric point.
package protparam

import (
	"math"
	"strings"
)

// Average masses of the free amino acids, in daltons.
var aaWeights = map[rune]float64{
	'A': 89.09, 'C': 121.16, 'D': 133.10, 'E': 147.13,
	'F': 165.19, 'G': 75.07, 'H': 155.16, 'I': 131.17,
	'K': 146.19, 'L': 131.17, 'M': 149.21, 'N': 132.12,
	'P': 115.13, 'Q': 146.15, 'R': 174.20, 'S': 105.09,
	'T': 119.12, 'V': 117.15, 'W': 204.23, 'Y': 181.19,
}

const water = 18.02

// MolecularWeight sums residue masses and removes one water per peptide
// bond. Unknown residues contribute nothing.
func MolecularWeight(seq string) float64 {
	weight := 0.0
	n := 0
	for _, aa := range strings.ToUpper(seq) {
		if w, ok := aaWeights[aa]; ok {
			weight += w
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return weight - float64(n-1)*water
}

// Side-chain and terminal pKa values (Bjellqvist). The terminal pKa depends
// on the first and last residue when they appear in the terminal tables.
var (
	positivePK = map[rune]float64{'K': 10.0, 'R': 12.0, 'H': 5.98}
	negativePK = map[rune]float64{'D': 4.05, 'E': 4.45, 'C': 9.0, 'Y': 10.0}

	nTermByResidue = map[rune]float64{
		'A': 7.59, 'M': 7.0, 'S': 6.93, 'P': 8.36,
		'T': 6.82, 'V': 7.44, 'E': 7.7,
	}
	cTermByResidue = map[rune]float64{'D': 4.55, 'E': 4.75}
)

const (
	nTermPK = 9.0
	cTermPK = 2.0
)

// terminalPKs returns the N- and C-terminal pKa for seq.
func terminalPKs(seq []rune) (float64, float64) {
	nTerm, cTerm := nTermPK, cTermPK
	if pk, ok := nTermByResidue[seq[0]]; ok {
		nTerm = pk
	}
	if pk, ok := cTermByResidue[seq[len(seq)-1]]; ok {
		cTerm = pk
	}
	return nTerm, cTerm
}

func netCharge(counts map[rune]int, nTerm, cTerm, pH float64) float64 {
	positive := 1 / (1 + math.Pow(10, pH-nTerm))
	for aa, pk := range positivePK {
		positive += float64(counts[aa]) / (1 + math.Pow(10, pH-pk))
	}
	negative := 1 / (1 + math.Pow(10, cTerm-pH))
	for aa, pk := range negativePK {
		negative += float64(counts[aa]) / (1 + math.Pow(10, pk-pH))
	}
	return positive - negative
}

// IsoelectricPoint finds the pH at which the net charge is zero by
// bisection over [0, 14].
func IsoelectricPoint(seq string) float64 {
	if seq == "" {
		return 0
	}
	residues := []rune(strings.ToUpper(seq))
	counts := make(map[rune]int)
	for _, aa := range residues {
		counts[aa]++
	}
	nTerm, cTerm := terminalPKs(residues)
	lo, hi := 0.0, 14.0
	for hi-lo > 1e-4 {
		mid := (lo + hi) / 2
		if netCharge(counts, nTerm, cTerm, mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
