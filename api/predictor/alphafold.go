package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"gene_weaver_go/api/fetch"
)

const DefaultAlphaFoldURL = "https://alphafold.ebi.ac.uk/api/prediction"

// AlphaFold derives disorder from the per-residue pLDDT of the AlphaFold
// model for one accession: p = (100 - pLDDT) / 100.
type AlphaFold struct {
	BaseURL   string
	Accession string
	Getter    *fetch.Getter
	Log       *slog.Logger
}

func NewAlphaFold(baseURL, accession string, getter *fetch.Getter, log *slog.Logger) AlphaFold {
	if baseURL == "" {
		baseURL = DefaultAlphaFoldURL
	}
	if log == nil {
		log = slog.Default()
	}
	return AlphaFold{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Accession: strings.ToUpper(strings.TrimSpace(accession)),
		Getter:    getter,
		Log:       log,
	}
}

func (AlphaFold) Name() string { return KindAlphaFold }

type prediction struct {
	UniProtAccession string    `json:"uniprotAccession"`
	PdbURL           string    `json:"pdbUrl"`
	Plddt            []float64 `json:"plddt"`
}

func (a AlphaFold) Predict(ctx context.Context, sequence string) fetch.Result[[]float64] {
	if sequence == "" {
		return fetch.FoundValue[[]float64](nil)
	}
	plddt, err := a.plddt(ctx)
	if err != nil {
		a.Log.Warn("alphafold lookup failed", "accession", a.Accession, "err", err)
		return fetch.EmptyResult[[]float64](err.Error())
	}
	if len(plddt) != len(sequence) {
		reason := fmt.Sprintf("model covers %d residues, sequence has %d", len(plddt), len(sequence))
		a.Log.Warn("alphafold model length mismatch", "accession", a.Accession, "reason", reason)
		return fetch.EmptyResult[[]float64](reason)
	}
	scores := make([]float64, len(plddt))
	for i, v := range plddt {
		scores[i] = clamp01((100 - v) / 100)
	}
	return fetch.FoundValue(scores)
}

func (a AlphaFold) plddt(ctx context.Context) ([]float64, error) {
	u := fmt.Sprintf("%s/%s", a.BaseURL, url.PathEscape(a.Accession))
	body, err := a.Getter.Get(ctx, "alphafold", a.Accession, u)
	if err != nil {
		return nil, err
	}
	var predictions []prediction
	if err := json.Unmarshal(body, &predictions); err != nil {
		return nil, fmt.Errorf("decoding prediction: %w", err)
	}
	if len(predictions) == 0 {
		return nil, errors.New("alphafold response empty")
	}
	if len(predictions[0].Plddt) > 0 {
		return predictions[0].Plddt, nil
	}
	if predictions[0].PdbURL == "" {
		return nil, errors.New("alphafold model lacks pLDDT array and pdbUrl")
	}
	pdb, err := a.Getter.Get(ctx, "alphafold-pdb", a.Accession, predictions[0].PdbURL)
	if err != nil {
		return nil, err
	}
	return parsePLDDT(string(pdb))
}

// parsePLDDT reads the B-factor column of each residue's CA atom.
func parsePLDDT(pdb string) ([]float64, error) {
	var plddt []float64
	lastRes := -1
	for _, line := range strings.Split(pdb, "\n") {
		if !strings.HasPrefix(line, "ATOM") || len(line) < 66 {
			continue
		}
		if strings.TrimSpace(line[12:16]) != "CA" {
			continue
		}
		resSeq, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
		if err != nil || resSeq == lastRes {
			continue
		}
		lastRes = resSeq
		b, err := strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
		if err != nil {
			continue
		}
		plddt = append(plddt, b)
	}
	if len(plddt) == 0 {
		return nil, errors.New("no CA atoms found for pLDDT extraction")
	}
	return plddt, nil
}
