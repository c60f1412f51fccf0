// Package construct turns a selected protein region into a cloning
// construct: codon-optimised DNA, primers, internal sites and guide hits.
package construct

import (
	"fmt"
	"strings"

	"github.com/TimothyStiles/poly/checks"
	polyprimers "github.com/TimothyStiles/poly/primers"

	"gene_weaver_go/api/uniprot"
	"gene_weaver_go/tools/codon"
	"gene_weaver_go/tools/crispr"
	"gene_weaver_go/tools/primers"
	"gene_weaver_go/tools/protparam"
	"gene_weaver_go/tools/restriction"
)

// LinkerRegion is the location of a guide that hits no annotation.
const LinkerRegion = "Linker Region"

// Overhangs are the 5' tails added to the forward and reverse primers.
type Overhangs struct {
	Forward string `json:"forward"`
	Reverse string `json:"reverse"`
}

// DefaultOverhangs carry an EcoRI site on the forward primer and a BamHI
// site on the reverse primer.
var DefaultOverhangs = Overhangs{
	Forward: restriction.EcoRI.Site(),
	Reverse: restriction.BamHI.Site(),
}

// Construct is a designed region ready for cloning.
type Construct struct {
	Label     string `json:"label"`
	Accession string `json:"accession"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Organism  string `json:"organism"`

	Protein string   `json:"target_aa"`
	DNA     string   `json:"optimized_dna"`
	Sites   []string `json:"internal_sites"`
	GC      float64  `json:"gc_percent"`

	Primers        primers.Pair    `json:"primers"`
	ForwardQuality primers.Quality `json:"fwd_quality"`
	ReverseQuality primers.Quality `json:"rev_quality"`
	// Nearest-neighbour (SantaLucia) Tm of the binding regions, for
	// comparison with the Wallace estimate.
	ForwardNNTm float64 `json:"fwd_nn_tm"`
	ReverseNNTm float64 `json:"rev_nn_tm"`

	MolecularWeight  float64 `json:"molecular_weight"`
	IsoelectricPoint float64 `json:"pi"`
}

// Clamp fits a 1-based inclusive range into a sequence of the given length.
// An empty sequence clamps to 1..0.
func Clamp(length, start, end int) (int, int) {
	start = max(1, min(start, length))
	end = max(start, min(end, length))
	if length == 0 {
		return 1, 0
	}
	return start, end
}

// Region returns residues start..end (1-based, inclusive) after clamping.
func Region(seq string, start, end int) string {
	start, end = Clamp(len(seq), start, end)
	if end < start {
		return ""
	}
	return seq[start-1 : end]
}

// Label names a construct as <accession>_<start>-<end>.
func Label(accession string, start, end int) string {
	return fmt.Sprintf("%s_%d-%d", accession, start, end)
}

// Design builds the construct for rec[start..end] expressed in org.
func Design(rec uniprot.Record, start, end int, org codon.Organism, oh Overhangs) Construct {
	start, end = Clamp(len(rec.Sequence), start, end)
	target := Region(rec.Sequence, start, end)
	dna := codon.Optimize(target, org)
	pair := primers.Generate(dna, oh.Forward, oh.Reverse)
	fwd, rev := primers.AssessPair(pair)

	c := Construct{
		Label:            Label(rec.Accession, start, end),
		Accession:        rec.Accession,
		Start:            start,
		End:              end,
		Organism:         org.String(),
		Protein:          target,
		DNA:              dna,
		Sites:            restriction.Names(restriction.Scan(dna)),
		Primers:          pair,
		ForwardQuality:   fwd,
		ReverseQuality:   rev,
		ForwardNNTm:      nearestNeighborTm(pair.ForwardBinding),
		ReverseNNTm:      nearestNeighborTm(pair.ReverseBinding),
		MolecularWeight:  protparam.MolecularWeight(target),
		IsoelectricPoint: protparam.IsoelectricPoint(target),
	}
	if dna != "" {
		c.GC = checks.GcContent(dna) * 100
	}
	return c
}

func nearestNeighborTm(binding string) float64 {
	if len(binding) < 2 || strings.Contains(binding, "N") {
		return 0
	}
	return polyprimers.MeltingTemp(binding)
}

// GuideHit places a guide on the protein.
type GuideHit struct {
	crispr.Guide
	Residue  int    `json:"residue"`
	Location string `json:"location"`
}

// MapGuides converts each guide's DNA offset into an absolute residue
// (regionStart + offset/3) and reports the last annotation containing it.
func MapGuides(guides []crispr.Guide, regionStart int, domains []uniprot.Annotation) []GuideHit {
	hits := make([]GuideHit, 0, len(guides))
	for _, g := range guides {
		pos := regionStart + g.StartIndex/3
		loc := LinkerRegion
		for _, d := range domains {
			if d.Contains(pos) {
				loc = "Hits " + d.Label
			}
		}
		hits = append(hits, GuideHit{Guide: g, Residue: pos, Location: loc})
	}
	return hits
}
