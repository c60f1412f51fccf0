// Package weave assembles the protein architecture report: structural
// domains next to predicted disordered regions.
package weave

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"gene_weaver_go/api/fetch"
	"gene_weaver_go/api/predictor"
	"gene_weaver_go/api/uniprot"
	"gene_weaver_go/tools/disorder"
)

// RecordSource is satisfied by *uniprot.Client.
type RecordSource interface {
	Record(ctx context.Context, accession string) fetch.Result[uniprot.Record]
}

// Report is the architecture summary of one protein.
type Report struct {
	Record    uniprot.Record
	Domains   []uniprot.Annotation // Domain and Region features only
	IDRs      []disorder.Interval
	Scores    []float64
	Threshold float64

	MeanDisorder float64
	StdDisorder  float64
	Coverage     float64 // fraction of residues inside an IDR

	Predictor string
	Reason    string // why no disorder profile is available
}

// Summarize combines a record with its disorder analysis.
func Summarize(rec uniprot.Record, a predictor.Analysis, threshold float64) Report {
	r := Report{
		Record:    rec,
		IDRs:      a.IDRs,
		Scores:    a.Scores,
		Threshold: threshold,
		Predictor: a.Predictor,
		Reason:    a.Reason,
	}
	for _, d := range rec.Domains {
		if d.Type.Structural() {
			r.Domains = append(r.Domains, d)
		}
	}
	if len(a.Scores) > 0 {
		r.MeanDisorder, r.StdDisorder = stat.MeanStdDev(a.Scores, nil)
		if len(a.Scores) == 1 {
			r.StdDisorder = 0
		}
		r.Coverage = disorder.Coverage(a.IDRs, len(a.Scores))
	}
	return r
}

// Weaver fetches a record, runs the disorder predictor and summarises.
type Weaver struct {
	Records    RecordSource
	Memo       *predictor.Memo
	Predictors predictor.Options
	Log        *slog.Logger
}

// Weave builds the report for accession. A missing record yields an empty
// result carrying the reason; a failed prediction still yields a report
// with Reason set.
func (w *Weaver) Weave(ctx context.Context, accession string) fetch.Result[Report] {
	log := w.Log
	if log == nil {
		log = slog.Default()
	}
	rec := w.Records.Record(ctx, accession)
	if !rec.Ok() {
		return fetch.EmptyResult[Report](rec.Reason)
	}

	p := predictor.New(w.Predictors, rec.Value.Accession)
	a := w.Memo.Analyze(ctx, p, rec.Value.Sequence)
	if a.Reason != "" {
		log.Warn("disorder prediction unavailable", "accession", accession, "predictor", a.Predictor, "reason", a.Reason)
	}
	log.Debug("woven", "accession", accession, "idrs", len(a.IDRs), "memoised", w.Memo.Len())
	return fetch.FoundValue(Summarize(rec.Value, a, w.Memo.Threshold))
}

// WriteText prints the report in the plain console layout.
func (r Report) WriteText(out io.Writer) error {
	ew := &errWriter{w: out}
	ew.printf("\n--- Gene Weaving Report for %s ---\n", r.Record.Name)
	ew.printf("\n[Architecture Summary]\n")

	ew.printf("\nKnown Structural Domains:\n")
	for _, d := range r.Domains {
		ew.printf("  -> %s: residues %d-%d\n", d.Label, d.Start, d.End)
	}

	ew.printf("\nPredicted Disordered Regions (IDRs):\n")
	if len(r.IDRs) == 0 {
		ew.printf("  (No large IDRs met the automatic threshold)\n")
	}
	for _, iv := range r.IDRs {
		ew.printf("  ~ IDR: residues %d-%d\n", iv.Start, iv.End)
	}

	if r.Reason != "" {
		ew.printf("\nDisorder profile unavailable: %s\n", r.Reason)
		return ew.err
	}
	ew.printf("\nAverage Protein Disorder Score: %.2f (sd %.2f, %s)\n", r.MeanDisorder, r.StdDisorder, r.Predictor)
	ew.printf("Disordered Fraction: %.1f%%\n", r.Coverage*100)
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
