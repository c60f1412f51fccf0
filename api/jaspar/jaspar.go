// Package jaspar searches the JASPAR transcription-factor motif database
// and retrieves position frequency matrices.
package jaspar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"

	"gonum.org/v1/gonum/stat"

	"gene_weaver_go/api/fetch"
)

const DefaultBaseURL = "https://jaspar.elixir.no"

// Bases is the row order of every matrix.
const Bases = "ACGT"

// Motif describes one JASPAR matrix.
type Motif struct {
	MatrixID   string `json:"matrix_id"`
	Name       string `json:"name"`
	Collection string `json:"collection"`
	BaseID     string `json:"base_id"`
	Version    string `json:"version"`
}

// PFM is a position frequency matrix: Counts[b][i] is the count of base
// Bases[b] at motif position i.
type PFM struct {
	MatrixID string
	Counts   [4][]float64
}

// Len returns the motif width.
func (p PFM) Len() int { return len(p.Counts[0]) }

// Probabilities normalises each column to sum to one. Empty columns stay zero.
func (p PFM) Probabilities() [4][]float64 {
	var probs [4][]float64
	for b := range probs {
		probs[b] = make([]float64, p.Len())
	}
	for i := 0; i < p.Len(); i++ {
		total := 0.0
		for b := range p.Counts {
			total += p.Counts[b][i]
		}
		if total == 0 {
			continue
		}
		for b := range p.Counts {
			probs[b][i] = p.Counts[b][i] / total
		}
	}
	return probs
}

// Information converts counts to letter heights in bits: each column's
// probabilities scaled by its information content, 2 - H.
func (p PFM) Information() [4][]float64 {
	probs := p.Probabilities()
	var info [4][]float64
	for b := range info {
		info[b] = make([]float64, p.Len())
	}
	col := make([]float64, 4)
	for i := 0; i < p.Len(); i++ {
		for b := range probs {
			col[b] = probs[b][i]
		}
		if col[0]+col[1]+col[2]+col[3] == 0 {
			continue
		}
		ic := 2 - stat.Entropy(col)/math.Ln2
		for b := range probs {
			info[b][i] = col[b] * ic
		}
	}
	return info
}

// Client talks to the JASPAR REST API.
type Client struct {
	BaseURL string
	Getter  *fetch.Getter
	Log     *slog.Logger
}

func NewClient(baseURL string, getter *fetch.Getter, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Getter: getter, Log: log}
}

// SearchMotifs lists the latest matrices whose name matches keyword.
func (c *Client) SearchMotifs(ctx context.Context, keyword, taxID string) fetch.Result[[]Motif] {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return fetch.EmptyResult[[]Motif]("empty keyword")
	}
	q := url.Values{}
	q.Set("name", keyword)
	q.Set("tax_id", taxID)
	q.Set("is_latest", "true")
	u := fmt.Sprintf("%s/api/v1/matrix/?%s", c.BaseURL, q.Encode())

	body, err := c.Getter.Get(ctx, "jaspar-search", keyword+"_"+taxID, u)
	if err != nil {
		c.Log.Warn("jaspar search failed", "keyword", keyword, "tax_id", taxID, "err", err)
		return fetch.EmptyResult[[]Motif](err.Error())
	}
	var resp struct {
		Results []Motif `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fetch.EmptyResult[[]Motif](fmt.Sprintf("decoding search response: %v", err))
	}
	if len(resp.Results) == 0 {
		return fetch.EmptyResult[[]Motif]("no motifs found")
	}
	return fetch.FoundValue(resp.Results)
}

// PFM fetches the frequency matrix for matrixID.
func (c *Client) PFM(ctx context.Context, matrixID string) fetch.Result[PFM] {
	matrixID = strings.TrimSpace(matrixID)
	if matrixID == "" {
		return fetch.EmptyResult[PFM]("empty matrix id")
	}
	u := fmt.Sprintf("%s/api/v1/matrix/%s/", c.BaseURL, url.PathEscape(matrixID))
	body, err := c.Getter.Get(ctx, "jaspar-pfm", matrixID, u)
	if err != nil {
		c.Log.Warn("jaspar matrix fetch failed", "matrix_id", matrixID, "err", err)
		return fetch.EmptyResult[PFM](err.Error())
	}
	pfm, err := decodePFM(body)
	if err != nil {
		c.Log.Warn("jaspar matrix unreadable", "matrix_id", matrixID, "err", err)
		return fetch.EmptyResult[PFM](err.Error())
	}
	pfm.MatrixID = matrixID
	return fetch.FoundValue(pfm)
}

func decodePFM(body []byte) (PFM, error) {
	var resp struct {
		PFM map[string][]float64 `json:"pfm"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return PFM{}, fmt.Errorf("decoding matrix: %w", err)
	}
	if len(resp.PFM) == 0 {
		return PFM{}, errors.New("matrix has no pfm")
	}
	var pfm PFM
	width := -1
	for b, base := range Bases {
		row, ok := resp.PFM[string(base)]
		if !ok {
			return PFM{}, fmt.Errorf("matrix missing row %c", base)
		}
		if width >= 0 && len(row) != width {
			return PFM{}, errors.New("matrix rows differ in length")
		}
		width = len(row)
		pfm.Counts[b] = row
	}
	return pfm, nil
}
