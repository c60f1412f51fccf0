package weave

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"gene_weaver_go/plots"
)

// WriteHTML renders the report as a standalone page with inline SVG charts.
func (r Report) WriteHTML(w io.Writer) error {
	archSVG, err := plots.ArchitectureSVG(len(r.Record.Sequence), r.Record.Domains, r.IDRs)
	if err != nil {
		return fmt.Errorf("architecture plot: %w", err)
	}
	profileSVG := "<p>Disorder profile unavailable: " + html.EscapeString(r.Reason) + "</p>"
	if len(r.Scores) > 0 {
		if profileSVG, err = plots.DisorderProfileSVG(r.Scores, r.Threshold); err != nil {
			return fmt.Errorf("disorder plot: %w", err)
		}
	}

	var rows strings.Builder
	for _, d := range r.Domains {
		fmt.Fprintf(&rows, "\t\t<tr><td>%s</td><td>%s</td><td>%d-%d</td></tr>\n",
			html.EscapeString(d.Type.String()), html.EscapeString(d.Label), d.Start, d.End)
	}
	for _, iv := range r.IDRs {
		fmt.Fprintf(&rows, "\t\t<tr><td>%s</td><td>predicted</td><td>%d-%d</td></tr>\n", iv.Kind, iv.Start, iv.End)
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<title>Gene Weaving Report: %s</title>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; padding: 20px; background-color: #f9f9f9; }
		h1 { color: #333; }
		table { border-collapse: collapse; margin-top: 20px; }
		th, td { padding: 8px 12px; border: 1px solid #ccc; text-align: left; }
		th { background-color: #eee; }
	</style>
</head>
<body>
	<h1>Gene Weaving Report: %s (%s)</h1>
	<table>
		<tr><th>Metric</th><th>Value</th></tr>
		<tr><td>Gene</td><td>%s</td></tr>
		<tr><td>Length</td><td>%d</td></tr>
		<tr><td>Average Disorder Score</td><td>%.2f</td></tr>
		<tr><td>Disorder StdDev</td><td>%.2f</td></tr>
		<tr><td>Disordered Fraction</td><td>%.1f%%</td></tr>
		<tr><td>Predictor</td><td>%s</td></tr>
	</table>
	<h2>Architecture</h2>
	<div>%s</div>
	<h2>Disorder Probability</h2>
	<div>%s</div>
	<h2>Structural Features</h2>
	<table>
		<tr><th>Type</th><th>Label</th><th>Residues</th></tr>
%s	</table>
</body>
</html>
`,
		html.EscapeString(r.Record.Name),
		html.EscapeString(r.Record.Name),
		html.EscapeString(r.Record.Accession),
		html.EscapeString(r.Record.Gene),
		len(r.Record.Sequence),
		r.MeanDisorder,
		r.StdDisorder,
		r.Coverage*100,
		html.EscapeString(r.Predictor),
		archSVG,
		profileSVG,
		rows.String(),
	)

	_, err = io.WriteString(w, page)
	return err
}

// WriteHTMLFile writes the report to filename.
func (r Report) WriteHTMLFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := r.WriteHTML(f); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return f.Close()
}
