package uniprot

import (
	"fmt"
	"strings"
)

// FeatureType is the closed set of annotation kinds kept from an entry.
type FeatureType int

const (
	Domain FeatureType = iota
	Region
	DNABinding
	ZincFinger
	Motif
	Repeat
	InterPro
)

var featureNames = [...]string{
	Domain:     "Domain",
	Region:     "Region",
	DNABinding: "DNA binding",
	ZincFinger: "Zinc finger",
	Motif:      "Motif",
	Repeat:     "Repeat",
	InterPro:   "InterPro",
}

// UniProt JSON feature type -> kept annotation kind. Older releases use
// DNA_BIND for DNA-binding regions.
var featureTypes = map[string]FeatureType{
	"domain":      Domain,
	"region":      Region,
	"dna binding": DNABinding,
	"dna_bind":    DNABinding,
	"zinc finger": ZincFinger,
	"motif":       Motif,
	"repeat":      Repeat,
}

func (t FeatureType) String() string {
	if t < 0 || int(t) >= len(featureNames) {
		return "Unknown"
	}
	return featureNames[t]
}

// Structural reports whether the annotation is a Domain or Region, the two
// kinds shown in the architecture summary.
func (t FeatureType) Structural() bool {
	return t == Domain || t == Region
}

func (t FeatureType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *FeatureType) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	if s == "interpro" {
		*t = InterPro
		return nil
	}
	ft, ok := featureTypes[s]
	if !ok {
		return fmt.Errorf("unknown feature type %q", text)
	}
	*t = ft
	return nil
}

// parseFeatureType reports whether a UniProt feature type is kept.
func parseFeatureType(apiType string) (FeatureType, bool) {
	ft, ok := featureTypes[strings.ToLower(strings.TrimSpace(apiType))]
	return ft, ok
}
