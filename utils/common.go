// Common package contains commonly used functions that benefit multiple tools
// Exporting these functions from the Common package reduces redundant code
package common

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Record is one FASTA entry. Seq is upper-cased with whitespace removed.
type Record struct {
	ID  string
	Seq string
}

// FastaHandler is called once per record while streaming.
type FastaHandler func(id string, seq string) error

// StreamFasta streams a FASTA file of any size record by record. Gzipped
// files are detected by their magic bytes and decompressed transparently.
func StreamFasta(file string, handler FastaHandler) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var reader io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1F && magic[1] == 0x8B {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return fmt.Errorf("failed to open gzip reader: %w", err)
		}
		defer gr.Close()
		reader = gr
	}
	return StreamFastaReader(reader, handler)
}

// StreamFastaReader is StreamFasta over an already open reader. Text before
// the first header is treated as one unnamed record, so a bare sequence
// file works too.
func StreamFastaReader(r io.Reader, handler FastaHandler) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var currentID string
	var buffer []byte

	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		if err := handler(currentID, string(buffer)); err != nil {
			return fmt.Errorf("handler error (%s): %w", currentID, err)
		}
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return err
			}
			currentID = strings.TrimPrefix(line, ">")
			buffer = buffer[:0] // reset buffer
			continue
		}
		buffer = append(buffer, CleanSequence(line)...)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return flush()
}

// ReadFasta collects every record of file.
func ReadFasta(file string) ([]Record, error) {
	var records []Record
	err := StreamFasta(file, func(id, seq string) error {
		records = append(records, Record{ID: id, Seq: seq})
		return nil
	})
	return records, err
}

// CleanSequence upper-cases seq and drops whitespace and digits, which
// turns pasted GenBank-style blocks into a plain sequence.
func CleanSequence(seq string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsDigit(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, seq)
}
