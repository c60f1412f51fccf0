package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/TimothyStiles/poly/checks"
	"github.com/spf13/cobra"

	"gene_weaver_go/api/predictor"
	"gene_weaver_go/tools/codon"
	"gene_weaver_go/tools/construct"
	"gene_weaver_go/tools/crispr"
	"gene_weaver_go/tools/primers"
	"gene_weaver_go/tools/restriction"
)

func (a *app) disorderCmd() *cobra.Command {
	var in seqInput
	var accession string
	cmd := &cobra.Command{
		Use:   "disorder",
		Short: "Predict intrinsically disordered regions (IDRs) of protein sequences",
		Args:  cobra.NoArgs,
	}
	in.register(cmd, "protein")
	cmd.Flags().StringVar(&accession, "accession", "", "UniProt accession, used by the alphafold predictor")
	cmd.Flags().Float64("threshold", 0.5, "minimum disorder probability of an IDR residue")
	cmd.Flags().Int("min-length", 30, "minimum IDR length in residues")
	a.v.BindPFlag("disorder.threshold", cmd.Flags().Lookup("threshold"))
	a.v.BindPFlag("disorder.min_length", cmd.Flags().Lookup("min-length"))

	cmd.RunE = a.runE(func(cmd *cobra.Command, _ []string) error {
		svc := a.services()
		out := cmd.OutOrStdout()
		return in.each(func(id, seq string) error {
			p := predictor.New(svc.predictors, accession)
			res := svc.memo.Analyze(cmd.Context(), p, seq)
			if res.Reason != "" {
				return fmt.Errorf("%s: no disorder profile: %s", id, res.Reason)
			}
			fmt.Fprintf(out, ">%s length=%d predictor=%s idrs=%d\n", id, len(seq), res.Predictor, len(res.IDRs))
			for _, iv := range res.IDRs {
				fmt.Fprintf(out, "%s\t%d\t%d\t%d\n", iv.Kind, iv.Start, iv.End, iv.Len())
			}
			return nil
		})
	})
	return cmd
}

func (a *app) crisprCmd() *cobra.Command {
	var in seqInput
	cmd := &cobra.Command{
		Use:   "crispr",
		Short: "List SpCas9 guide candidates (20 nt + NGG PAM) in DNA sequences",
		Long: `List SpCas9 guide candidates (20 nt + NGG PAM) in DNA sequences.

Candidates are reported in order of position and capped at 5 per sequence;
they are not ranked.`,
		Args: cobra.NoArgs,
	}
	in.register(cmd, "DNA")

	cmd.RunE = a.runE(func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		return in.each(func(id, seq string) error {
			if seq == "" || !checks.IsDNA(seq) {
				a.log.Warn("sequence is not plain ACGT DNA", "id", id)
			}
			guides := crispr.DesignGuides(seq)
			fmt.Fprintf(out, ">%s guides=%d\n", id, len(guides))
			for _, g := range guides {
				fmt.Fprintf(out, "%s\t%s\t%s\t%.0f%%\t%d\n", g.Label, g.Sequence, g.PAM, g.GC, g.StartIndex)
			}
			return nil
		})
	})
	return cmd
}

func (a *app) codonCmd() *cobra.Command {
	var in seqInput
	cmd := &cobra.Command{
		Use:   "codon",
		Short: "Back-translate protein sequences with the host's preferred codons",
		Args:  cobra.NoArgs,
	}
	in.register(cmd, "protein")
	cmd.Flags().StringP("organism", "o", codon.DefaultOrganism.String(), "expression host: Human or Yeast")

	cmd.RunE = a.runE(func(cmd *cobra.Command, _ []string) error {
		org := a.organism(cmd)
		out := cmd.OutOrStdout()
		return in.each(func(id, seq string) error {
			dna := codon.Optimize(seq, org)
			if n := strings.Count(dna, codon.Unknown); n > 0 {
				a.log.Warn("unmapped residues encoded as NNN", "id", id, "count", n)
			}
			fmt.Fprintf(out, ">%s organism=%s\n", id, org)
			return writeWrapped(out, dna, 60)
		})
	})
	return cmd
}

func (a *app) primersCmd() *cobra.Command {
	var in seqInput
	var csvPath string
	cmd := &cobra.Command{
		Use:   "primers",
		Short: "Design cloning primers for DNA sequences",
		Long: `Design cloning primers for DNA sequences.

The forward primer is the forward overhang plus the first 20 nt; the reverse
primer is the reverse overhang plus the reverse complement of the last 20 nt.
Tm uses the Wallace rule, which is only meaningful for short oligos.`,
		Args: cobra.NoArgs,
	}
	in.register(cmd, "DNA")
	cmd.Flags().String("fwd-overhang", construct.DefaultOverhangs.Forward, "5' overhang of the forward primer")
	cmd.Flags().String("rev-overhang", construct.DefaultOverhangs.Reverse, "5' overhang of the reverse primer")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write Label,Fwd,Rev rows to this file")

	cmd.RunE = a.runE(func(cmd *cobra.Command, _ []string) error {
		oh := a.overhangs(cmd)
		out := cmd.OutOrStdout()
		var rows []construct.Construct
		err := in.each(func(id, seq string) error {
			pair := primers.Generate(seq, oh.Forward, oh.Reverse)
			fwd, rev := primers.AssessPair(pair)
			fmt.Fprintf(out, ">%s\n", id)
			fmt.Fprintf(out, "Fwd\t%s\tTm=%d\tGC=%.1f%%\t%s\n", pair.Forward, fwd.Tm, fwd.GC, fwd.Status)
			fmt.Fprintf(out, "Rev\t%s\tTm=%d\tGC=%.1f%%\t%s\n", pair.Reverse, rev.Tm, rev.GC, rev.Status)
			rows = append(rows, construct.Construct{Label: id, Primers: pair})
			return nil
		})
		if err != nil || csvPath == "" {
			return err
		}
		return construct.WriteCSVFile(csvPath, rows)
	})
	return cmd
}

func (a *app) sitesCmd() *cobra.Command {
	var in seqInput
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Scan DNA sequences for EcoRI, BamHI, HindIII, NotI and XhoI sites",
		Args:  cobra.NoArgs,
	}
	in.register(cmd, "DNA")

	cmd.RunE = a.runE(func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		return in.each(func(id, seq string) error {
			found := restriction.Names(restriction.Scan(seq))
			if len(found) == 0 {
				fmt.Fprintf(out, "%s\tnone\n", id)
				return nil
			}
			fmt.Fprintf(out, "%s\t%s\n", id, strings.Join(found, ","))
			return nil
		})
	})
	return cmd
}

func writeWrapped(w io.Writer, seq string, width int) error {
	for len(seq) > width {
		if _, err := fmt.Fprintln(w, seq[:width]); err != nil {
			return err
		}
		seq = seq[width:]
	}
	_, err := fmt.Fprintln(w, seq)
	return err
}
