package weave

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gene_weaver_go/api/fetch"
	"gene_weaver_go/api/predictor"
	"gene_weaver_go/api/uniprot"
	"gene_weaver_go/tools/disorder"
)

type stubRecords map[string]uniprot.Record

func (s stubRecords) Record(_ context.Context, acc string) fetch.Result[uniprot.Record] {
	rec, ok := s[acc]
	if !ok {
		return fetch.EmptyResult[uniprot.Record]("no entry for " + acc)
	}
	return fetch.FoundValue(rec)
}

func sampleRecord() uniprot.Record {
	return uniprot.Record{
		Accession: "P00001",
		Name:      "Test factor",
		Gene:      "TST1",
		Sequence:  strings.Repeat("E", 80),
		Domains: []uniprot.Annotation{
			{Label: "Transactivation", Start: 1, End: 40, Type: uniprot.Region},
			{Label: "LxxLL", Start: 10, End: 14, Type: uniprot.Motif},
			{Label: "bZIP", Start: 50, End: 75, Type: uniprot.Domain},
		},
	}
}

func TestSummarize(t *testing.T) {
	a := predictor.Analysis{
		Scores:    []float64{0.2, 0.4, 0.6, 0.8},
		IDRs:      []disorder.Interval{{Start: 3, End: 4, Kind: disorder.KindIDR}},
		Predictor: "stub",
	}
	r := Summarize(sampleRecord(), a, 0.5)

	require.Len(t, r.Domains, 2)
	assert.Equal(t, "Transactivation", r.Domains[0].Label)
	assert.Equal(t, "bZIP", r.Domains[1].Label)
	assert.InDelta(t, 0.5, r.MeanDisorder, 1e-9)
	assert.InDelta(t, math.Sqrt(0.2/3), r.StdDisorder, 1e-9)
	assert.InDelta(t, 0.5, r.Coverage, 1e-9)
}

func TestSummarize_NoScores(t *testing.T) {
	r := Summarize(sampleRecord(), predictor.Analysis{Reason: "offline"}, 0.5)
	assert.Zero(t, r.MeanDisorder)
	assert.Zero(t, r.StdDisorder)
	assert.Equal(t, "offline", r.Reason)
}

func newWeaver() *Weaver {
	return &Weaver{
		Records:    stubRecords{"P00001": sampleRecord()},
		Memo:       predictor.NewMemo(4, disorder.DefaultThreshold, disorder.DefaultMinLength),
		Predictors: predictor.Options{Kind: predictor.KindFoldIndex},
	}
}

func TestWeave(t *testing.T) {
	w := newWeaver()
	res := w.Weave(context.Background(), "P00001")
	require.True(t, res.Ok())

	r := res.Value
	assert.Len(t, r.Scores, 80)
	assert.Equal(t, predictor.KindFoldIndex, r.Predictor)
	require.Len(t, r.IDRs, 1)
	assert.Equal(t, disorder.Interval{Start: 1, End: 80, Kind: disorder.KindIDR}, r.IDRs[0])
	assert.Greater(t, r.MeanDisorder, 0.9)
	assert.Equal(t, 1, w.Memo.Len())

	w.Weave(context.Background(), "P00001")
	assert.Equal(t, 1, w.Memo.Len())
}

func TestWeave_MissingRecord(t *testing.T) {
	res := newWeaver().Weave(context.Background(), "Q99999")
	assert.False(t, res.Ok())
	assert.Equal(t, fetch.Empty, res.Status)
	assert.Contains(t, res.Reason, "Q99999")
}

func TestWriteText(t *testing.T) {
	r := newWeaver().Weave(context.Background(), "P00001").Value

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, "--- Gene Weaving Report for Test factor ---")
	assert.Contains(t, out, "  -> Transactivation: residues 1-40")
	assert.NotContains(t, out, "LxxLL")
	assert.Contains(t, out, "  ~ IDR: residues 1-80")
	assert.Contains(t, out, "Average Protein Disorder Score: 1.00")
}

func TestWriteText_NoIDRs(t *testing.T) {
	r := Summarize(sampleRecord(), predictor.Analysis{Reason: "offline"}, 0.5)
	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	assert.Contains(t, buf.String(), "(No large IDRs met the automatic threshold)")
	assert.Contains(t, buf.String(), "Disorder profile unavailable: offline")
}

func TestWriteHTML(t *testing.T) {
	r := newWeaver().Weave(context.Background(), "P00001").Value

	var buf bytes.Buffer
	require.NoError(t, r.WriteHTML(&buf))
	page := buf.String()
	assert.Contains(t, page, "<title>Gene Weaving Report: Test factor</title>")
	assert.Equal(t, 2, strings.Count(page, "<svg"))
	assert.Contains(t, page, "<td>Region</td><td>Transactivation</td><td>1-40</td>")
	assert.Contains(t, page, "<td>IDR</td><td>predicted</td><td>1-80</td>")
}
