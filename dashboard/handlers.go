package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"gene_weaver_go/tools/codon"
	"gene_weaver_go/tools/construct"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, sess *Session) {
	q := r.URL.Query()
	p := s.buildPage(r.Context(), sess, q.Get("motif"), q.Get("crispr") != "")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "page.html", p); err != nil {
		s.Log.Error("rendering page", "err", err)
	}
}

// openProtein loads accession into the session, resets the range to the
// whole protein and refreshes the motif search for its gene.
func (s *Server) openProtein(ctx context.Context, sess *Session, accession string) bool {
	rec := s.Proteins.Record(ctx, accession)
	if !rec.Ok() {
		sess.Message = "Protein not found."
		if rec.Reason != "" {
			sess.Message = fmt.Sprintf("Protein not found (%s).", rec.Reason)
		}
		return false
	}
	sess.Protein = rec
	sess.CurrentID = accession
	sess.Start, sess.End = 1, len(rec.Value.Sequence)
	if s.Motifs != nil {
		sess.Motifs = s.Motifs.SearchMotifs(ctx, rec.Value.Gene, sess.Organism.TaxID())
	}
	sess.AddHistory(accession)
	s.Log.Info("protein opened", "session", sess.ID[:8], "accession", accession, "length", len(rec.Value.Sequence))
	return true
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request, sess *Session) {
	accession := strings.ToUpper(strings.TrimSpace(r.FormValue("accession")))
	if org := r.FormValue("organism"); org != "" {
		sess.Organism = codon.ParseOrganism(org)
	}
	if accession == "" {
		sess.Message = "Enter a UniProt ID."
	} else {
		s.openProtein(r.Context(), sess, accession)
	}
	redirectHome(w, r)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, sess *Session) {
	id := r.PathValue("id")
	if !slices.Contains(sess.RecentHistory(s.HistorySize), id) {
		http.NotFound(w, r)
		return
	}
	s.openProtein(r.Context(), sess, id)
	redirectHome(w, r)
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request, sess *Session) {
	start, err1 := strconv.Atoi(strings.TrimSpace(r.FormValue("start")))
	end, err2 := strconv.Atoi(strings.TrimSpace(r.FormValue("end")))
	if err1 != nil || err2 != nil {
		http.Error(w, "start and end must be integers", http.StatusBadRequest)
		return
	}
	if org := r.FormValue("organism"); org != "" {
		sess.Organism = codon.ParseOrganism(org)
	}
	if !sess.Protein.Ok() {
		sess.Message = "Load a protein first."
	} else {
		sess.SetRange(start, end)
	}
	redirectHome(w, r)
}

func (s *Server) handleDomainRange(w http.ResponseWriter, r *http.Request, sess *Session) {
	idx, err := strconv.Atoi(r.FormValue("index"))
	domains := sess.Protein.Value.Domains
	if err != nil || idx < 0 || idx >= len(domains) {
		http.Error(w, "unknown annotation", http.StatusBadRequest)
		return
	}
	sess.SetRange(domains[idx].Start, domains[idx].End)
	redirectHome(w, r)
}

func (s *Server) handleAddConstruct(w http.ResponseWriter, r *http.Request, sess *Session) {
	if !sess.Protein.Ok() {
		sess.Message = "Load a protein first."
		redirectHome(w, r)
		return
	}
	c := construct.Design(sess.Protein.Value, sess.Start, sess.End, sess.Organism, s.Overhangs)
	sess.Constructs = append(sess.Constructs, c)
	sess.Message = "Construct saved: " + c.Label
	redirectHome(w, r)
}

func (s *Server) handlePartner(w http.ResponseWriter, r *http.Request, sess *Session) {
	symbol := r.PathValue("symbol")
	acc := s.Proteins.AccessionForSymbol(r.Context(), symbol, sess.Organism.TaxID())
	if !acc.Ok() {
		sess.Message = fmt.Sprintf("No %s UniProt entry for %s.", sess.Organism, symbol)
	} else {
		s.openProtein(r.Context(), sess, acc.Value)
	}
	redirectHome(w, r)
}

func (s *Server) handleCSV(w http.ResponseWriter, _ *http.Request, sess *Session) {
	if len(sess.Constructs) == 0 {
		http.Error(w, "no saved constructs", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", construct.CSVFilename(sess.CurrentID)))
	if err := construct.WriteCSV(w, sess.Constructs); err != nil {
		s.Log.Error("writing primer csv", "err", err)
	}
}
