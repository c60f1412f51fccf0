// Package dashboard serves the interactive construct designer over HTTP.
package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"gene_weaver_go/api/fetch"
	"gene_weaver_go/api/jaspar"
	"gene_weaver_go/api/predictor"
	"gene_weaver_go/api/uniprot"
	"gene_weaver_go/tools/codon"
	"gene_weaver_go/tools/construct"
)

const cookieName = "gene_weaver_session"

//go:embed templates/*.html
var templateFS embed.FS

// ProteinSource is satisfied by *uniprot.Client.
type ProteinSource interface {
	Record(ctx context.Context, accession string) fetch.Result[uniprot.Record]
	AccessionForSymbol(ctx context.Context, symbol, taxID string) fetch.Result[string]
}

// MotifSource is satisfied by *jaspar.Client.
type MotifSource interface {
	SearchMotifs(ctx context.Context, keyword, taxID string) fetch.Result[[]jaspar.Motif]
	PFM(ctx context.Context, matrixID string) fetch.Result[jaspar.PFM]
}

// PartnerSource is satisfied by *stringdb.Client.
type PartnerSource interface {
	Partners(ctx context.Context, gene, taxID string) fetch.Result[[]string]
}

// Options wires the server to its collaborators.
type Options struct {
	Proteins   ProteinSource
	Motifs     MotifSource
	Partners   PartnerSource
	Memo       *predictor.Memo
	Predictors predictor.Options

	Overhangs   construct.Overhangs
	Organism    codon.Organism
	HistorySize int
	MaxSessions int
	Log         *slog.Logger
}

// Server renders the dashboard page and handles its form posts.
type Server struct {
	Options

	store *Store
	tmpl  *template.Template
}

func New(opts Options) (*Server, error) {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = 3
	}
	if opts.Overhangs == (construct.Overhangs{}) {
		opts.Overhangs = construct.DefaultOverhangs
	}
	if opts.Memo == nil {
		opts.Memo = predictor.NewMemo(0, 0.5, 30)
	}
	tmpl, err := template.New("page.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{Options: opts, store: NewStore(opts.MaxSessions), tmpl: tmpl}, nil
}

// Handler routes every dashboard endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.withSession(s.handleIndex))
	mux.HandleFunc("POST /analyze", s.withSession(s.handleAnalyze))
	mux.HandleFunc("POST /history/{id}", s.withSession(s.handleHistory))
	mux.HandleFunc("POST /range", s.withSession(s.handleRange))
	mux.HandleFunc("POST /range/domain", s.withSession(s.handleDomainRange))
	mux.HandleFunc("POST /constructs", s.withSession(s.handleAddConstruct))
	mux.HandleFunc("POST /partner/{symbol}", s.withSession(s.handlePartner))
	mux.HandleFunc("GET /constructs.csv", s.withSession(s.handleCSV))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return s.logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.Log.Info("dashboard listening", "addr", "http://"+addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *Session)

// withSession loads the caller's session, creating it and setting the
// cookie on first contact, and holds its lock for the whole request.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sess *Session
		if c, err := r.Cookie(cookieName); err == nil {
			sess, _ = s.store.Get(c.Value)
		}
		if sess == nil {
			var err error
			if sess, err = s.store.Create(); err != nil {
				http.Error(w, "could not start session", http.StatusInternalServerError)
				return
			}
			sess.Organism = s.Organism
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		h(w, r, sess)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "elapsed", time.Since(start))
	})
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
