package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI in-process and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GENE_WEAVER_HTTP_CACHE_DIR", t.TempDir())
	t.Setenv("GENE_WEAVER_HTTP_RETRIES", "0")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCodon(t *testing.T) {
	out, _, err := run(t, "codon", "--seq", "mk*")
	require.NoError(t, err)
	assert.Equal(t, ">input organism=Human\nATGAAGTAA\n", out)

	out, _, err = run(t, "codon", "-s", "MK", "-o", "yeast")
	require.NoError(t, err)
	assert.Equal(t, ">input organism=Yeast\nATGAAA\n", out)
}

func TestCodon_WrapsAt60(t *testing.T) {
	out, _, err := run(t, "codon", "--seq", strings.Repeat("A", 25))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Len(t, lines[1], 60)
	assert.Len(t, lines[2], 15)
}

func TestCRISPR(t *testing.T) {
	out, _, err := run(t, "crispr", "--seq", strings.Repeat("A", 21)+"GGA")
	require.NoError(t, err)
	assert.Equal(t, ">input guides=1\ngRNA_1\t"+strings.Repeat("A", 20)+"\tNGG\t0%\t0\n", out)
}

func TestCRISPR_WarnsOnNonDNA(t *testing.T) {
	_, errOut, err := run(t, "crispr", "--seq", strings.Repeat("A", 21)+"GGA")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "not plain ACGT")

	out, errOut, err := run(t, "crispr", "--seq", strings.Repeat("N", 21)+"GGA")
	require.NoError(t, err)
	assert.Contains(t, errOut, "sequence is not plain ACGT DNA")
	assert.Contains(t, out, ">input guides=")
}

func TestSites(t *testing.T) {
	out, _, err := run(t, "sites", "--seq", "gaattcAAActcgag")
	require.NoError(t, err)
	assert.Equal(t, "input\tEcoRI,XhoI\n", out)

	out, _, err = run(t, "sites", "--seq", "AAAA")
	require.NoError(t, err)
	assert.Equal(t, "input\tnone\n", out)
}

func TestPrimers_FastaAndCSV(t *testing.T) {
	dir := t.TempDir()
	fasta := filepath.Join(dir, "in.fa")
	require.NoError(t, os.WriteFile(fasta, []byte(">a\nACGTACGTACGTACGTACGTAAAA\n>b\nGGGG\n"), 0o644))
	csvPath := filepath.Join(dir, "primers.csv")

	out, _, err := run(t, "primers", "--fasta", fasta, "--csv", csvPath, "--fwd-overhang", "aagctt")
	require.NoError(t, err)
	assert.Contains(t, out, ">a\nFwd\tAAGCTTACGTACGTACGTACGTACGT\t")
	assert.Contains(t, out, ">b\nFwd\tAAGCTTGGGG\tTm=16\tGC=60.0%\tpass\n")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Label,Fwd,Rev\n"+
		"a,AAGCTTACGTACGTACGTACGTACGT,GGATCCTTTTACGTACGTACGTACGT\n"+
		"b,AAGCTTGGGG,GGATCCCCCC\n", string(data))
}

func TestDisorder(t *testing.T) {
	out, _, err := run(t, "disorder", "--seq", strings.Repeat("E", 80))
	require.NoError(t, err)
	assert.Equal(t, ">input length=80 predictor=foldindex idrs=1\nIDR\t1\t80\t80\n", out)

	out, _, err = run(t, "disorder", "--seq", strings.Repeat("E", 80), "--min-length", "81")
	require.NoError(t, err)
	assert.Contains(t, out, "idrs=0")
}

func TestMissingInput(t *testing.T) {
	_, _, err := run(t, "crispr")
	assert.ErrorIs(t, err, errNoInput)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Gene Weaver:")
	assert.Contains(t, out, "Codon Optimizer:")
}

func TestBenchmarkFlag(t *testing.T) {
	out, errOut, err := run(t, "codon", "--seq", "M", "--benchmark")
	require.NoError(t, err)
	assert.Equal(t, ">input organism=Human\nATG\n", out)
	assert.Contains(t, errOut, "[Benchmark] Running: gene_weaver codon")
}

const entryJSON = `{
	"primaryAccession": "P00001",
	"proteinDescription": {"recommendedName": {"fullName": {"value": "Test factor"}}},
	"genes": [{"geneName": {"value": "TST1"}}],
	"sequence": {"value": "%s"},
	"features": [
		{"type": "Region", "description": "Acidic", "location": {"start": {"value": 1}, "end": {"value": 40}}},
		{"type": "Motif", "description": "Short", "location": {"start": {"value": 2}, "end": {"value": 5}}}
	]
}`

func uniprotServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/uniprotkb/P00001.json" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, entryJSON, strings.Repeat("E", 80))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestWeave(t *testing.T) {
	t.Setenv("GENE_WEAVER_SERVICES_UNIPROT", uniprotServer(t))
	htmlPath := filepath.Join(t.TempDir(), "report.html")

	out, _, err := run(t, "weave", "p00001", "--html", htmlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "--- Gene Weaving Report for Test factor ---")
	assert.Contains(t, out, "  -> Acidic: residues 1-40")
	assert.NotContains(t, out, "Short")
	assert.Contains(t, out, "  ~ IDR: residues 1-80")

	page, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<svg")
}

func TestWeave_Unknown(t *testing.T) {
	t.Setenv("GENE_WEAVER_SERVICES_UNIPROT", uniprotServer(t))
	_, _, err := run(t, "weave", "Q99999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Q99999")
}

func TestDesign(t *testing.T) {
	t.Setenv("GENE_WEAVER_SERVICES_UNIPROT", uniprotServer(t))
	out, _, err := run(t, "design", "P00001", "--start", "1", "--end", "40", "--guides")
	require.NoError(t, err)
	assert.Contains(t, out, "Construct P00001_1-40 (Test factor, Human)")
	assert.Contains(t, out, "Fwd\tGAATTCGAGGAGGAGGAGGAGGA")
	assert.Contains(t, out, "gRNA_3\t1\tHits Acidic\t")
}
