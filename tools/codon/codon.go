// Package codon back-translates protein sequences using a single preferred
// codon per amino acid for each supported host organism.
package codon

import "strings"

// Organism is a supported expression host.
type Organism int

const (
	Human Organism = iota
	Yeast

	DefaultOrganism = Human

	// Unknown is emitted for any symbol missing from a table.
	Unknown = "NNN"
)

type organismInfo struct {
	name  string
	taxID string
	table map[rune]string
}

var organisms = [...]organismInfo{
	Human: {
		name:  "Human",
		taxID: "9606",
		table: map[rune]string{
			'A': "GCC", 'C': "TGC", 'D': "GAC", 'E': "GAG", 'F': "TTC",
			'G': "GGC", 'H': "CAC", 'I': "ATC", 'K': "AAG", 'L': "CTG",
			'M': "ATG", 'N': "AAC", 'P': "CCC", 'Q': "CAG", 'R': "CGC",
			'S': "TCC", 'T': "ACC", 'V': "GTG", 'W': "TGG", 'Y': "TAC",
			'*': "TAA",
		},
	},
	Yeast: {
		name:  "Yeast",
		taxID: "4932",
		table: map[rune]string{
			'A': "GCT", 'C': "TGT", 'D': "GAT", 'E': "GAA", 'F': "TTT",
			'G': "GGT", 'H': "CAT", 'I': "ATT", 'K': "AAA", 'L': "TTG",
			'M': "ATG", 'N': "AAT", 'P': "CCA", 'Q': "CAA", 'R': "AGA",
			'S': "TCT", 'T': "ACT", 'V': "GTT", 'W': "TGG", 'Y': "TAT",
			'*': "TAA",
		},
	},
}

// Organisms lists every supported host in declaration order.
func Organisms() []Organism {
	out := make([]Organism, len(organisms))
	for i := range organisms {
		out[i] = Organism(i)
	}
	return out
}

func (o Organism) info() organismInfo {
	if o < 0 || int(o) >= len(organisms) {
		return organisms[DefaultOrganism]
	}
	return organisms[o]
}

func (o Organism) String() string { return o.info().name }

// TaxID returns the NCBI taxonomy identifier used by the remote services.
func (o Organism) TaxID() string { return o.info().taxID }

// Codon returns the preferred codon for aa, or Unknown.
func (o Organism) Codon(aa rune) string {
	if c, ok := o.info().table[aa]; ok {
		return c
	}
	return Unknown
}

// ParseOrganism matches a host name case-insensitively and falls back to
// DefaultOrganism for anything unrecognised.
func ParseOrganism(name string) Organism {
	for i, info := range organisms {
		if strings.EqualFold(info.name, strings.TrimSpace(name)) {
			return Organism(i)
		}
	}
	return DefaultOrganism
}

// Optimize returns DNA exactly three times the length of protein.
func Optimize(protein string, org Organism) string {
	var dna strings.Builder
	dna.Grow(len(protein) * 3)
	for _, aa := range protein {
		dna.WriteString(org.Codon(aa))
	}
	return dna.String()
}
