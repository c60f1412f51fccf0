package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"gene_weaver_go/config"
	"gene_weaver_go/dashboard"
	"gene_weaver_go/plots"
	"gene_weaver_go/tools/construct"
	"gene_weaver_go/tools/crispr"
	"gene_weaver_go/tools/weave"
)

func (a *app) weaveCmd() *cobra.Command {
	var htmlPath string
	cmd := &cobra.Command{
		Use:   "weave <accession>",
		Short: "Report known structural domains next to predicted disordered regions",
		Example: `  gene_weaver weave P01106
  gene_weaver weave P10275 --html ar_report.html`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&htmlPath, "html", "", "also write an HTML report with charts to this file")

	cmd.RunE = a.runE(func(cmd *cobra.Command, args []string) error {
		svc := a.services()
		w := &weave.Weaver{
			Records:    svc.proteins,
			Memo:       svc.memo,
			Predictors: svc.predictors,
			Log:        a.log,
		}
		accession := strings.ToUpper(args[0])
		res := w.Weave(cmd.Context(), accession)
		if !res.Ok() {
			return fmt.Errorf("no UniProt entry for %s: %s", accession, res.Reason)
		}
		if err := res.Value.WriteText(cmd.OutOrStdout()); err != nil {
			return err
		}
		if htmlPath == "" {
			return nil
		}
		if err := res.Value.WriteHTMLFile(htmlPath); err != nil {
			return err
		}
		a.log.Info("report written", "path", htmlPath)
		return nil
	})
	return cmd
}

func (a *app) designCmd() *cobra.Command {
	var start, end int
	var guides bool
	var csvPath string
	cmd := &cobra.Command{
		Use:   "design <accession>",
		Short: "Design a cloning construct for a region of a UniProt protein",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().IntVar(&start, "start", 1, "first residue of the region (1-based)")
	cmd.Flags().IntVar(&end, "end", 0, "last residue of the region, 0 for the C terminus")
	cmd.Flags().StringP("organism", "o", "Human", "expression host: Human or Yeast")
	cmd.Flags().String("fwd-overhang", construct.DefaultOverhangs.Forward, "5' overhang of the forward primer")
	cmd.Flags().String("rev-overhang", construct.DefaultOverhangs.Reverse, "5' overhang of the reverse primer")
	cmd.Flags().BoolVar(&guides, "guides", false, "map CRISPR guides in the region onto annotations")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the primer sheet to this file")

	cmd.RunE = a.runE(func(cmd *cobra.Command, args []string) error {
		svc := a.services()
		accession := strings.ToUpper(args[0])
		rec := svc.proteins.Record(cmd.Context(), accession)
		if !rec.Ok() {
			return fmt.Errorf("no UniProt entry for %s: %s", accession, rec.Reason)
		}
		if end <= 0 {
			end = len(rec.Value.Sequence)
		}
		c := construct.Design(rec.Value, start, end, a.organism(cmd), a.overhangs(cmd))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Construct %s (%s, %s)\n", c.Label, rec.Value.Name, c.Organism)
		fmt.Fprintf(out, "MW: %.1f kDa | pI: %.1f | GC: %.1f%%\n", c.MolecularWeight/1000, c.IsoelectricPoint, c.GC)
		if len(c.Sites) > 0 {
			fmt.Fprintf(out, "Internal Restriction Sites: %s\n", strings.Join(c.Sites, ", "))
		} else {
			fmt.Fprintln(out, "No internal restriction sites.")
		}
		fmt.Fprintf(out, "Fwd\t%s\tTm=%d (NN %.1f)\tGC=%.1f%%\t%s\n",
			c.Primers.Forward, c.ForwardQuality.Tm, c.ForwardNNTm, c.ForwardQuality.GC, c.ForwardQuality.Status)
		fmt.Fprintf(out, "Rev\t%s\tTm=%d (NN %.1f)\tGC=%.1f%%\t%s\n",
			c.Primers.Reverse, c.ReverseQuality.Tm, c.ReverseNNTm, c.ReverseQuality.GC, c.ReverseQuality.Status)

		if guides {
			hits := construct.MapGuides(crispr.DesignGuides(c.DNA), c.Start, rec.Value.Domains)
			if len(hits) == 0 {
				fmt.Fprintln(out, "No NGG PAM sites found in this selection.")
			}
			for _, h := range hits {
				fmt.Fprintf(out, "%s\t%d\t%s\t%.0f%%\n", h.Label, h.Residue, h.Location, h.GC)
			}
		}
		if csvPath != "" {
			return construct.WriteCSVFile(csvPath, []construct.Construct{c})
		}
		return nil
	})
	return cmd
}

func (a *app) motifsCmd() *cobra.Command {
	var logoPath, matrix string
	cmd := &cobra.Command{
		Use:   "motifs <gene>",
		Short: "Search JASPAR for DNA-binding motifs of a transcription factor",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringP("organism", "o", "Human", "species to search: Human or Yeast")
	cmd.Flags().StringVar(&logoPath, "logo", "", "write a sequence logo SVG of the selected motif")
	cmd.Flags().StringVar(&matrix, "matrix", "", "matrix ID for --logo (default: first hit)")

	cmd.RunE = a.runE(func(cmd *cobra.Command, args []string) error {
		svc := a.services()
		org := a.organism(cmd)
		res := svc.motifs.SearchMotifs(cmd.Context(), args[0], org.TaxID())
		out := cmd.OutOrStdout()
		if !res.Ok() {
			fmt.Fprintln(out, "No direct DNA-binding motifs found.")
			fmt.Fprintln(out, "Hint: This may be a co-activator. Check 'interactions' for partners.")
			return nil
		}
		for _, m := range res.Value {
			fmt.Fprintf(out, "%s\t%s\t%s\n", m.MatrixID, m.Name, m.Collection)
		}
		if logoPath == "" {
			return nil
		}
		if matrix == "" {
			matrix = res.Value[0].MatrixID
		}
		pfm := svc.motifs.PFM(cmd.Context(), matrix)
		if !pfm.Ok() {
			return fmt.Errorf("no matrix %s: %s", matrix, pfm.Reason)
		}
		svg, err := plots.MotifLogoSVG(matrix, pfm.Value.Information())
		if err != nil {
			return err
		}
		return os.WriteFile(logoPath, []byte(svg), 0o644)
	})
	return cmd
}

func (a *app) interactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactions <gene>",
		Short: "List high-confidence physical interaction partners from STRING",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringP("organism", "o", "Human", "species: Human or Yeast")

	cmd.RunE = a.runE(func(cmd *cobra.Command, args []string) error {
		svc := a.services()
		res := svc.partners.Partners(cmd.Context(), args[0], a.organism(cmd).TaxID())
		out := cmd.OutOrStdout()
		if !res.Ok() {
			fmt.Fprintln(out, "No high-confidence partners found.")
			return nil
		}
		for _, p := range res.Value {
			fmt.Fprintln(out, p)
		}
		return nil
	})
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the interactive construct designer dashboard",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().String("addr", "127.0.0.1:8501", "listen address")
	a.v.BindPFlag("dashboard.addr", cmd.Flags().Lookup("addr"))

	cmd.RunE = a.runE(func(cmd *cobra.Command, _ []string) error {
		svc := a.services()
		srv, err := dashboard.New(dashboard.Options{
			Proteins:    svc.proteins,
			Motifs:      svc.motifs,
			Partners:    svc.partners,
			Memo:        svc.memo,
			Predictors:  svc.predictors,
			Overhangs:   a.overhangs(cmd),
			Organism:    a.organism(cmd),
			HistorySize: a.cfg.Dashboard.HistorySize,
			MaxSessions: a.cfg.Dashboard.MaxSessions,
			Log:         a.log,
		})
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx, a.cfg.Dashboard.Addr)
	})
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Gene Weaver - Version Information Menu")
			fmt.Fprintln(out, "Central Executable:")
			fmt.Fprintf(out, "\tGene Weaver:\t\t%s\n", config.MainVersion)
			fmt.Fprintf(out, "\nModular tools:\n")
			for _, t := range config.Tools() {
				fmt.Fprintf(out, "\t%-24s%s\n", t.Name+":", t.Version)
			}
		},
	}
}

