// Package plots renders the dashboard and report charts as SVG strings.
package plots

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"gene_weaver_go/api/uniprot"
	"gene_weaver_go/tools/disorder"
)

var (
	disorderRed    = color.RGBA{R: 255, G: 75, B: 75, A: 255}
	thresholdGrey  = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	backboneGrey   = color.RGBA{R: 211, G: 211, B: 211, A: 80}
	idrOrange      = color.RGBA{R: 255, G: 165, B: 0, A: 153}
	interProPurple = color.RGBA{R: 0x9B, G: 0x51, B: 0xE0, A: 204}

	domainPalette = []color.RGBA{
		{R: 0x4A, G: 0x90, B: 0xE2, A: 204},
		{R: 0x50, G: 0xE3, B: 0xC2, A: 204},
		{R: 0xF5, G: 0xA6, B: 0x23, A: 204},
		{R: 0xD0, G: 0x02, B: 0x1B, A: 204},
		{R: 0x8B, G: 0x57, B: 0x2A, A: 204},
	}

	baseColors = [4]color.RGBA{
		{R: 0x10, G: 0x96, B: 0x48, A: 255}, // A
		{R: 0x25, G: 0x5C, B: 0x99, A: 255}, // C
		{R: 0xF7, G: 0xB3, B: 0x2B, A: 255}, // G
		{R: 0xD6, G: 0x2B, B: 0x2B, A: 255}, // T
	}
)

// IntegerTicks labels every whole number between min and max, stepping in
// powers of two so at most Max labels are drawn.
type IntegerTicks struct{ Max int }

func (t IntegerTicks) Ticks(min, max float64) []plot.Tick {
	step := 1
	if t.Max > 0 {
		span := int(math.Floor(max) - math.Ceil(min))
		for span/step > t.Max {
			step *= 2
		}
	}
	var ticks []plot.Tick
	for i := int(math.Ceil(min)); i <= int(math.Floor(max)); i += step {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}
	return ticks
}

func renderSVG(p *plot.Plot, w, h vg.Length) (string, error) {
	var buf bytes.Buffer
	writer, err := p.WriterTo(w, h, "svg")
	if err != nil {
		return "", err
	}
	if _, err := writer.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DisorderProfileSVG draws the per-residue disorder probability with the
// IDR threshold as a dashed line.
func DisorderProfileSVG(scores []float64, threshold float64) (string, error) {
	if len(scores) == 0 {
		return "", errors.New("no disorder scores to plot")
	}
	p := plot.New()
	p.Title.Text = "Disorder Probability"
	p.X.Label.Text = "Residue"
	p.Y.Label.Text = "Probability"
	p.Y.Min = 0
	p.Y.Max = 1
	p.X.Tick.Marker = IntegerTicks{Max: 25}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(scores))
	for i, s := range scores {
		pts[i].X = float64(i + 1)
		pts[i].Y = s
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	line.LineStyle.Color = disorderRed
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("Disorder Probability", line)

	cut, err := plotter.NewLine(plotter.XYs{{X: 1, Y: threshold}, {X: float64(len(scores)), Y: threshold}})
	if err != nil {
		return "", err
	}
	cut.LineStyle.Color = thresholdGrey
	cut.LineStyle.Width = vg.Points(1)
	cut.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(cut)
	p.Legend.Add(fmt.Sprintf("Threshold %.2f", threshold), cut)
	p.Legend.Top = true

	return renderSVG(p, 12*vg.Inch, 3*vg.Inch)
}

func rect(x0, x1, y0, y1 float64) plotter.XYs {
	return plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// ArchitectureSVG draws the protein backbone with IDRs as thin bars and
// annotations as boxes. Annotations wider than 2% of the protein are
// labelled with the text after their last colon.
func ArchitectureSVG(length int, domains []uniprot.Annotation, idrs []disorder.Interval) (string, error) {
	if length <= 0 {
		return "", errors.New("protein length must be positive")
	}
	p := plot.New()
	p.HideAxes()
	p.X.Min = 0
	p.X.Max = float64(length + 10)
	p.Y.Min = 0
	p.Y.Max = 4

	backbone, err := plotter.NewPolygon(rect(1, float64(length), 0.8, 1.2))
	if err != nil {
		return "", err
	}
	backbone.Color = backboneGrey
	backbone.LineStyle.Width = 0
	p.Add(backbone)

	for _, iv := range idrs {
		bar, err := plotter.NewPolygon(rect(float64(iv.Start), float64(iv.End), 0.95, 1.05))
		if err != nil {
			return "", err
		}
		bar.Color = idrOrange
		bar.LineStyle.Width = 0
		p.Add(bar)
	}

	var labelPts plotter.XYs
	var labels []string
	for i, d := range domains {
		box, err := plotter.NewPolygon(rect(float64(d.Start), float64(d.End), 0.7, 1.3))
		if err != nil {
			return "", err
		}
		box.Color = domainPalette[i%len(domainPalette)]
		if strings.Contains(d.Label, "InterPro") {
			box.Color = interProPurple
		}
		box.LineStyle.Color = color.Black
		box.LineStyle.Width = vg.Points(0.5)
		p.Add(box)

		if float64(d.End-d.Start) > float64(length)*0.02 {
			labelPts = append(labelPts, plotter.XY{X: float64(d.Start+d.End) / 2, Y: 1.5})
			labels = append(labels, ShortLabel(d.Label))
		}
	}

	if len(labels) > 0 {
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: labelPts, Labels: labels})
		if err != nil {
			return "", err
		}
		for i := range l.TextStyle {
			l.TextStyle[i].Rotation = 35 * math.Pi / 180
		}
		p.Add(l)
	}

	return renderSVG(p, 12*vg.Inch, 3*vg.Inch)
}

// ShortLabel returns the text after the last ':' of label, trimmed.
func ShortLabel(label string) string {
	if i := strings.LastIndex(label, ":"); i >= 0 {
		return strings.TrimSpace(label[i+1:])
	}
	return strings.TrimSpace(label)
}

// MotifLogoSVG stacks per-base information heights (bits) into a sequence
// logo, one bar column per motif position.
func MotifLogoSVG(name string, info [4][]float64) (string, error) {
	width := len(info[0])
	if width == 0 {
		return "", errors.New("empty motif")
	}
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "Position"
	p.Y.Label.Text = "Bits"
	p.Y.Min = 0
	p.Y.Max = 2

	var below *plotter.BarChart
	for b, base := range "ACGT" {
		bars, err := plotter.NewBarChart(plotter.Values(info[b]), vg.Points(20))
		if err != nil {
			return "", err
		}
		bars.Color = baseColors[b]
		bars.LineStyle.Width = 0
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		p.Legend.Add(string(base), bars)
		below = bars
	}
	p.Legend.Top = true
	p.NominalX(positionLabels(width)...)

	return renderSVG(p, 8*vg.Inch, 2.5*vg.Inch)
}

func positionLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}
	return labels
}
