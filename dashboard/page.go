package dashboard

import (
	"context"
	"fmt"
	"html/template"

	"gene_weaver_go/api/jaspar"
	"gene_weaver_go/api/predictor"
	"gene_weaver_go/api/uniprot"
	"gene_weaver_go/plots"
	"gene_weaver_go/tools/codon"
	"gene_weaver_go/tools/construct"
	"gene_weaver_go/tools/crispr"
)

var templateFuncs = template.FuncMap{
	"kda":   func(mw float64) string { return fmt.Sprintf("%.1f", mw/1000) },
	"fixed": func(digits int, v float64) string { return fmt.Sprintf("%.*f", digits, v) },
}

// pageData is the view model of the dashboard template.
type pageData struct {
	Message   string
	Accession string
	Organism  string
	Organisms []string
	History   []string

	Loaded   bool
	Record   uniprot.Record
	Reason   string
	Length   int
	Start    int
	End      int
	Disorder predictor.Analysis

	ArchitectureSVG template.HTML
	ProfileSVG      template.HTML

	Region construct.Construct

	Motifs        []jaspar.Motif
	MotifsReason  string
	SelectedMotif string
	LogoSVG       template.HTML

	Partners       []string
	PartnersReason string

	CRISPR bool
	Guides []construct.GuideHit

	Constructs []construct.Construct
}

func (s *Server) buildPage(ctx context.Context, sess *Session, motifID string, runCRISPR bool) pageData {
	p := pageData{
		Message:    sess.TakeMessage(),
		Accession:  sess.CurrentID,
		Organism:   sess.Organism.String(),
		History:    sess.RecentHistory(s.HistorySize),
		Constructs: sess.Constructs,
	}
	for _, o := range codon.Organisms() {
		p.Organisms = append(p.Organisms, o.String())
	}
	if p.Accession == "" {
		p.Accession = "P01106"
	}
	if !sess.Protein.Ok() {
		p.Reason = sess.Protein.Reason
		return p
	}

	rec := sess.Protein.Value
	p.Loaded = true
	p.Record = rec
	p.Length = len(rec.Sequence)
	p.Start, p.End = sess.Start, sess.End

	p.Disorder = s.Memo.Analyze(ctx, predictor.New(s.Predictors, rec.Accession), rec.Sequence)
	p.ArchitectureSVG = s.svg("architecture", func() (string, error) {
		return plots.ArchitectureSVG(len(rec.Sequence), rec.Domains, p.Disorder.IDRs)
	})
	if len(p.Disorder.Scores) > 0 {
		p.ProfileSVG = s.svg("disorder profile", func() (string, error) {
			return plots.DisorderProfileSVG(p.Disorder.Scores, s.Memo.Threshold)
		})
	}

	p.Region = construct.Design(rec, sess.Start, sess.End, sess.Organism, s.Overhangs)

	p.Motifs = sess.Motifs.Value
	p.MotifsReason = sess.Motifs.Reason
	if len(p.Motifs) > 0 {
		p.SelectedMotif = p.Motifs[0].MatrixID
		for _, m := range p.Motifs {
			if m.MatrixID == motifID {
				p.SelectedMotif = motifID
			}
		}
		if pfm := s.Motifs.PFM(ctx, p.SelectedMotif); pfm.Ok() {
			p.LogoSVG = s.svg("motif logo", func() (string, error) {
				return plots.MotifLogoSVG(p.SelectedMotif, pfm.Value.Information())
			})
		}
	}

	if s.Partners != nil {
		partners := s.Partners.Partners(ctx, rec.Gene, sess.Organism.TaxID())
		p.Partners = partners.Value
		p.PartnersReason = partners.Reason
	}

	if runCRISPR {
		p.CRISPR = true
		p.Guides = construct.MapGuides(crispr.DesignGuides(p.Region.DNA), p.Region.Start, rec.Domains)
	}
	return p
}

func (s *Server) svg(what string, render func() (string, error)) template.HTML {
	out, err := render()
	if err != nil {
		s.Log.Warn("chart failed", "chart", what, "err", err)
		return ""
	}
	// gonum/plot escapes label text when writing SVG
	return template.HTML(out)
}
