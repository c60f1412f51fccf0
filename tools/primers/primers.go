// Package primers derives cloning primers from the ends of a template and
// grades them with the Wallace-rule melting temperature and GC content.
package primers

import "strings"

const (
	// BindingLength is the number of template bases annealed by each primer.
	BindingLength = 20

	MinGC = 40.0
	MaxGC = 60.0
)

// Status grades a primer's GC content.
type Status string

const (
	Pass    Status = "pass"
	Warning Status = "warning"
)

// Pair holds both primers and the template-binding part of each.
type Pair struct {
	Forward        string `json:"fwd"`
	Reverse        string `json:"rev"`
	ForwardBinding string `json:"fwd_bind"`
	ReverseBinding string `json:"rev_bind"`
}

// Quality summarises a single primer.
type Quality struct {
	Tm     int     `json:"tm"`
	GC     float64 `json:"gc"`
	Status Status  `json:"status"`
}

// MeltingTemp applies the Wallace rule, 2(A+T) + 4(G+C). It is only
// meaningful for short oligos.
func MeltingTemp(seq string) int {
	at := strings.Count(seq, "A") + strings.Count(seq, "T")
	gc := strings.Count(seq, "G") + strings.Count(seq, "C")
	return 2*at + 4*gc
}

// ReverseComplement reverses seq and swaps A/T and G/C. Any other byte,
// including N, is copied unchanged.
func ReverseComplement(seq string) string {
	rc := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		rc[len(seq)-1-i] = complement(seq[i])
	}
	return string(rc)
}

func complement(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return b
	}
}

// Generate builds a primer pair for dna. Templates shorter than
// BindingLength bind over their whole length; nothing is padded.
func Generate(dna, fwdOverhang, revOverhang string) Pair {
	fwdBind := dna[:min(BindingLength, len(dna))]
	revBind := ReverseComplement(dna[max(0, len(dna)-BindingLength):])
	return Pair{
		Forward:        fwdOverhang + fwdBind,
		Reverse:        revOverhang + revBind,
		ForwardBinding: fwdBind,
		ReverseBinding: revBind,
	}
}

// Assess computes Tm on the binding region and GC% on the full primer,
// overhang included.
func Assess(full, binding string) Quality {
	q := Quality{Tm: MeltingTemp(binding), Status: Warning}
	if len(full) == 0 {
		return q
	}
	gc := strings.Count(full, "G") + strings.Count(full, "C")
	q.GC = float64(gc) / float64(len(full)) * 100
	if q.GC >= MinGC && q.GC <= MaxGC {
		q.Status = Pass
	}
	return q
}

// AssessPair grades both primers of p.
func AssessPair(p Pair) (fwd, rev Quality) {
	return Assess(p.Forward, p.ForwardBinding), Assess(p.Reverse, p.ReverseBinding)
}
