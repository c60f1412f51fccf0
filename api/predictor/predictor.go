// Package predictor produces per-residue disorder probabilities for a
// protein sequence.
package predictor

import (
	"context"
	"log/slog"
	"strings"

	"gene_weaver_go/api/fetch"
)

// Predictor returns one disorder probability in [0,1] per residue. An empty
// sequence yields an empty, found result.
type Predictor interface {
	Predict(ctx context.Context, sequence string) fetch.Result[[]float64]
	Name() string
}

const (
	KindFoldIndex = "foldindex"
	KindAlphaFold = "alphafold"
)

// Options configures New.
type Options struct {
	Kind         string
	Window       int
	AlphaFoldURL string
	Getter       *fetch.Getter
	Log          *slog.Logger
}

// New builds the configured predictor. The AlphaFold predictor needs the
// entry accession and falls back to FoldIndex when no model is available.
func New(opts Options, accession string) Predictor {
	local := NewFoldIndex(opts.Window)
	if strings.ToLower(opts.Kind) != KindAlphaFold || accession == "" || opts.Getter == nil {
		return local
	}
	remote := NewAlphaFold(opts.AlphaFoldURL, accession, opts.Getter, opts.Log)
	return Fallback{Primary: remote, Secondary: local}
}

// Fallback tries Primary and uses Secondary when Primary comes back empty.
type Fallback struct {
	Primary   Predictor
	Secondary Predictor
}

func (f Fallback) Name() string { return f.Primary.Name() + "+" + f.Secondary.Name() }

func (f Fallback) Predict(ctx context.Context, sequence string) fetch.Result[[]float64] {
	res, _, _ := f.Resolve(ctx, sequence)
	return res
}

// Resolve is Predict that also returns the predictor that answered and
// whether it was Secondary.
func (f Fallback) Resolve(ctx context.Context, sequence string) (fetch.Result[[]float64], Predictor, bool) {
	if res := f.Primary.Predict(ctx, sequence); res.Ok() {
		return res, f.Primary, false
	}
	return f.Secondary.Predict(ctx, sequence), f.Secondary, true
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
