// Package crispr scans DNA for SpCas9 NGG PAM sites and reports guide RNA
// candidates.
package crispr

import (
	"fmt"
	"strings"
)

const (
	GuideLength = 20
	PAMLength   = 3
	PAMType     = "NGG"

	// MaxGuides caps the result positionally; guides are not ranked.
	MaxGuides = 5
)

// Guide is a protospacer candidate upstream of an NGG PAM.
type Guide struct {
	Label      string  `json:"label"`
	Sequence   string  `json:"sequence"`
	PAM        string  `json:"pam"`
	GC         float64 `json:"gc"`
	StartIndex int     `json:"start_index"` // 0-based offset into the scanned DNA
}

// DesignGuides returns up to MaxGuides candidates in ascending offset order.
func DesignGuides(dna string) []Guide {
	var guides []Guide
	window := GuideLength + PAMLength

	for i := 0; i < len(dna)-window; i++ {
		pamTail := dna[i+GuideLength+1 : i+window]
		if pamTail != "GG" {
			continue
		}
		guide := dna[i : i+GuideLength]
		guides = append(guides, Guide{
			Label:      fmt.Sprintf("gRNA_%d", i+1),
			Sequence:   guide,
			PAM:        PAMType,
			GC:         gcPercent(guide),
			StartIndex: i,
		})
		if len(guides) == MaxGuides {
			break
		}
	}
	return guides
}

func gcPercent(guide string) float64 {
	gc := strings.Count(guide, "G") + strings.Count(guide, "C")
	return float64(gc) / GuideLength * 100
}
