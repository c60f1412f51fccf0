// Package uniprot fetches protein entries from the UniProt REST API and
// reduces them to the fields the construct designer needs.
package uniprot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gene_weaver_go/api/fetch"
)

const DefaultBaseURL = "https://rest.uniprot.org"

// Annotation is a labelled residue range (1-based, inclusive).
type Annotation struct {
	Label string      `json:"label"`
	Start int         `json:"start"`
	End   int         `json:"end"`
	Type  FeatureType `json:"type"`
}

// Contains reports whether residue pos falls inside the annotation.
func (a Annotation) Contains(pos int) bool {
	return a.Start <= pos && pos <= a.End
}

// Record is the reduced view of a UniProt entry.
type Record struct {
	Accession string       `json:"accession"`
	Name      string       `json:"name"`
	Gene      string       `json:"gene_name"`
	Sequence  string       `json:"sequence"`
	Domains   []Annotation `json:"domains"`
}

// Client talks to UniProt.
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

// Record fetches and reduces the entry for accession. Unknown accessions and
// failed calls come back as an Empty result.
func (c *Client) Record(ctx context.Context, accession string) fetch.Result[Record] {
	accession = strings.ToUpper(strings.TrimSpace(accession))
	if accession == "" {
		return fetch.EmptyResult[Record]("empty accession")
	}
	u := fmt.Sprintf("%s/uniprotkb/%s.json", c.BaseURL, url.PathEscape(accession))
	body, err := c.Getter.Get(ctx, "uniprot", accession, u)
	if err != nil {
		c.Log.Warn("uniprot lookup failed", "accession", accession, "err", err)
		return fetch.EmptyResult[Record](err.Error())
	}
	rec, err := decodeRecord(body)
	if err != nil {
		c.Log.Warn("uniprot entry unreadable", "accession", accession, "err", err)
		return fetch.EmptyResult[Record](err.Error())
	}
	rec.Accession = accession
	return fetch.FoundValue(rec)
}

// AccessionForSymbol maps a gene symbol to the first matching accession for
// the given taxonomy.
func (c *Client) AccessionForSymbol(ctx context.Context, symbol, taxID string) fetch.Result[string] {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return fetch.EmptyResult[string]("empty symbol")
	}
	q := url.Values{}
	q.Set("query", fmt.Sprintf("gene_exact:%s AND taxonomy_id:%s", symbol, taxID))
	q.Set("format", "json")
	q.Set("size", "1")
	u := fmt.Sprintf("%s/uniprotkb/search?%s", c.BaseURL, q.Encode())

	body, err := c.Getter.Get(ctx, "uniprot-search", symbol+"_"+taxID, u)
	if err != nil {
		c.Log.Warn("uniprot search failed", "symbol", symbol, "tax_id", taxID, "err", err)
		return fetch.EmptyResult[string](err.Error())
	}
	var resp struct {
		Results []struct {
			PrimaryAccession string `json:"primaryAccession"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fetch.EmptyResult[string](fmt.Sprintf("decoding search response: %v", err))
	}
	if len(resp.Results) == 0 || resp.Results[0].PrimaryAccession == "" {
		return fetch.EmptyResult[string]("no UniProt entries found")
	}
	return fetch.FoundValue(resp.Results[0].PrimaryAccession)
}

type entry struct {
	ProteinDescription struct {
		RecommendedName struct {
			FullName struct {
				Value string `json:"value"`
			} `json:"fullName"`
		} `json:"recommendedName"`
	} `json:"proteinDescription"`
	Genes []struct {
		GeneName struct {
			Value string `json:"value"`
		} `json:"geneName"`
	} `json:"genes"`
	Sequence struct {
		Value string `json:"value"`
	} `json:"sequence"`
	Features        []feature  `json:"features"`
	CrossReferences []crossRef `json:"uniProtKBCrossReferences"`
}

type feature struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Location    struct {
		Start *position `json:"start"`
		End   *position `json:"end"`
	} `json:"location"`
}

type position struct {
	Value *int `json:"value"`
}

type crossRef struct {
	Database   string      `json:"database"`
	ID         string      `json:"id"`
	Properties propertyMap `json:"properties"`
}

// propertyMap accepts both the object and the key/value-list encodings.
type propertyMap map[string]string

func (p *propertyMap) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	switch data[0] {
	case '{':
		var values map[string]string
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*p = values
		return nil
	case '[':
		var entries []map[string]string
		if err := json.Unmarshal(data, &entries); err != nil {
			return err
		}
		values := make(map[string]string, len(entries))
		for _, e := range entries {
			if key := e["key"]; key != "" {
				values[key] = e["value"]
			}
		}
		*p = values
		return nil
	}
	return errors.New("unknown properties format in UniProt cross-reference")
}

func decodeRecord(body []byte) (Record, error) {
	var e entry
	if err := json.Unmarshal(body, &e); err != nil {
		return Record{}, fmt.Errorf("decoding entry: %w", err)
	}
	rec := Record{
		Name:     e.ProteinDescription.RecommendedName.FullName.Value,
		Gene:     "Unknown",
		Sequence: e.Sequence.Value,
	}
	if rec.Name == "" {
		rec.Name = "Unknown"
	}
	if len(e.Genes) > 0 && e.Genes[0].GeneName.Value != "" {
		rec.Gene = e.Genes[0].GeneName.Value
	}

	for _, f := range e.Features {
		ft, ok := parseFeatureType(f.Type)
		if !ok {
			continue
		}
		start, end, ok := f.span()
		if !ok {
			continue
		}
		label := f.Description
		if label == "" {
			label = f.Type
		}
		rec.Domains = append(rec.Domains, Annotation{Label: label, Start: start, End: end, Type: ft})
	}

	for _, ref := range e.CrossReferences {
		if ref.Database != "InterPro" {
			continue
		}
		start, end, ok := parseMatchRegion(ref.Properties["MatchRegion"])
		if !ok {
			continue
		}
		name := ref.Properties["EntryName"]
		if name == "" {
			name = "InterPro Domain"
		}
		rec.Domains = append(rec.Domains, Annotation{
			Label: "InterPro: " + name,
			Start: start,
			End:   end,
			Type:  InterPro,
		})
	}

	// N- to C-terminus
	sort.SliceStable(rec.Domains, func(i, j int) bool {
		return rec.Domains[i].Start < rec.Domains[j].Start
	})
	return rec, nil
}

func (f feature) span() (int, int, bool) {
	s, e := f.Location.Start, f.Location.End
	if s == nil || e == nil || s.Value == nil || e.Value == nil {
		return 0, 0, false
	}
	return *s.Value, *e.Value, true
}

// parseMatchRegion reads the first span of values like "10-50" or
// "10..50,80..120".
func parseMatchRegion(raw string) (int, int, bool) {
	if raw == "" {
		return 0, 0, false
	}
	first := strings.Split(raw, ",")[0]
	parts := strings.Split(strings.ReplaceAll(first, "..", "-"), "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return start, end, true
}
