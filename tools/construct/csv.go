package construct

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVFilename is the download name used for an accession's primer sheet.
func CSVFilename(accession string) string {
	return fmt.Sprintf("primers_%s.csv", accession)
}

// WriteCSV writes one Label,Fwd,Rev row per construct.
func WriteCSV(w io.Writer, constructs []Construct) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Label", "Fwd", "Rev"}); err != nil {
		return err
	}
	for _, c := range constructs {
		if err := writer.Write([]string{c.Label, c.Primers.Forward, c.Primers.Reverse}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the primer sheet to filename.
func WriteCSVFile(filename string, constructs []Construct) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer f.Close()

	if err := WriteCSV(f, constructs); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return f.Close()
}
