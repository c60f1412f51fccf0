// Package stringdb looks up physical and functional interaction partners in
// the STRING database.
package stringdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"gene_weaver_go/api/fetch"
)

const (
	DefaultBaseURL = "https://string-db.org"

	// DefaultLimit is the number of partners requested per query.
	DefaultLimit = 5
)

// Client talks to the STRING JSON API.
type Client struct {
	BaseURL string
	Limit   int
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
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Limit: DefaultLimit, Getter: getter, Log: log}
}

type edge struct {
	PreferredNameA string  `json:"preferredName_A"`
	PreferredNameB string  `json:"preferredName_B"`
	Score          float64 `json:"score"`
}

// Partners returns the distinct partner symbols of gene, excluding gene
// itself, sorted alphabetically.
func (c *Client) Partners(ctx context.Context, gene, taxID string) fetch.Result[[]string] {
	gene = strings.TrimSpace(gene)
	if gene == "" {
		return fetch.EmptyResult[[]string]("empty gene symbol")
	}
	q := url.Values{}
	q.Set("identifiers", gene)
	q.Set("species", taxID)
	q.Set("limit", fmt.Sprint(c.Limit))
	u := fmt.Sprintf("%s/api/json/network?%s", c.BaseURL, q.Encode())

	key := fmt.Sprintf("%s_%s_%d", gene, taxID, c.Limit)
	body, err := c.Getter.Get(ctx, "stringdb", key, u)
	if err != nil {
		c.Log.Warn("string lookup failed", "gene", gene, "tax_id", taxID, "err", err)
		return fetch.EmptyResult[[]string](err.Error())
	}
	var edges []edge
	if err := json.Unmarshal(body, &edges); err != nil {
		return fetch.EmptyResult[[]string](fmt.Sprintf("decoding network: %v", err))
	}

	seen := make(map[string]bool)
	var partners []string
	for _, e := range edges {
		p := e.PreferredNameB
		if p == "" || strings.EqualFold(p, gene) || seen[p] {
			continue
		}
		seen[p] = true
		partners = append(partners, p)
	}
	if len(partners) == 0 {
		return fetch.EmptyResult[[]string]("no interaction partners")
	}
	sort.Strings(partners)
	return fetch.FoundValue(partners)
}
