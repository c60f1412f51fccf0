// Package restriction scans DNA for the recognition sites of the common
// cloning enzymes.
package restriction

import (
	"strings"

	"github.com/TimothyStiles/poly/checks"
)

// Enzyme is one of the supported restriction enzymes.
type Enzyme int

const (
	EcoRI Enzyme = iota
	BamHI
	HindIII
	NotI
	XhoI
)

var sites = [...]struct {
	name string
	site string
}{
	EcoRI:   {"EcoRI", "GAATTC"},
	BamHI:   {"BamHI", "GGATCC"},
	HindIII: {"HindIII", "AAGCTT"},
	NotI:    {"NotI", "GCGGCCGC"},
	XhoI:    {"XhoI", "CTCGAG"},
}

// Enzymes returns every supported enzyme in declaration order.
func Enzymes() []Enzyme {
	out := make([]Enzyme, len(sites))
	for i := range sites {
		out[i] = Enzyme(i)
	}
	return out
}

func (e Enzyme) valid() bool { return e >= 0 && int(e) < len(sites) }

func (e Enzyme) String() string {
	if !e.valid() {
		return "unknown"
	}
	return sites[e].name
}

// Site returns the recognition sequence, or "" for an unknown enzyme.
func (e Enzyme) Site() string {
	if !e.valid() {
		return ""
	}
	return sites[e].site
}

// Palindromic reports whether the site reads the same on both strands.
func (e Enzyme) Palindromic() bool {
	return e.valid() && checks.IsPalindromic(e.Site())
}

// Lookup finds an enzyme by name, case-insensitively.
func Lookup(name string) (Enzyme, bool) {
	for i, s := range sites {
		if strings.EqualFold(s.name, name) {
			return Enzyme(i), true
		}
	}
	return -1, false
}

// Scan returns the enzymes whose site occurs in dna, in declaration order.
func Scan(dna string) []Enzyme {
	upper := strings.ToUpper(dna)
	var found []Enzyme
	for _, e := range Enzymes() {
		if strings.Contains(upper, e.Site()) {
			found = append(found, e)
		}
	}
	return found
}

// Names converts enzymes to their display names.
func Names(enzymes []Enzyme) []string {
	names := make([]string, len(enzymes))
	for i, e := range enzymes {
		names[i] = e.String()
	}
	return names
}
