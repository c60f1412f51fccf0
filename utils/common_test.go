package common

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoRecords = `>sp|P05412|JUN_HUMAN
mtakmettfy
DDALNASFLP

>second
ACGT acgt
`

func TestStreamFastaReader(t *testing.T) {
	var got []Record
	err := StreamFastaReader(strings.NewReader(twoRecords), func(id, seq string) error {
		got = append(got, Record{ID: id, Seq: seq})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{ID: "sp|P05412|JUN_HUMAN", Seq: "MTAKMETTFYDDALNASFLP"},
		{ID: "second", Seq: "ACGTACGT"},
	}, got)
}

func TestStreamFastaReader_BareSequence(t *testing.T) {
	var got []Record
	err := StreamFastaReader(strings.NewReader("1 atgc gg\n61 tt\n"), func(id, seq string) error {
		got = append(got, Record{ID: id, Seq: seq})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Record{{Seq: "ATGCGGTT"}}, got)
}

func TestStreamFastaReader_HandlerError(t *testing.T) {
	boom := errors.New("boom")
	err := StreamFastaReader(strings.NewReader(twoRecords), func(string, string) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestReadFasta_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(twoRecords))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	dir := t.TempDir()
	plain := filepath.Join(dir, "seqs.fa")
	zipped := filepath.Join(dir, "seqs.fa.gz")
	require.NoError(t, os.WriteFile(plain, []byte(twoRecords), 0o644))
	require.NoError(t, os.WriteFile(zipped, buf.Bytes(), 0o644))

	a, err := ReadFasta(plain)
	require.NoError(t, err)
	b, err := ReadFasta(zipped)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 2)

	_, err = ReadFasta(filepath.Join(dir, "missing.fa"))
	assert.Error(t, err)
}
