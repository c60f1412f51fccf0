// Package cmd is for command line interactions with the gene_weaver application
package cmd

import (
	"io"
	"log"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gene_weaver_go/api/fetch"
	"gene_weaver_go/api/jaspar"
	"gene_weaver_go/api/predictor"
	"gene_weaver_go/api/stringdb"
	"gene_weaver_go/api/uniprot"
	"gene_weaver_go/benchmark"
	"gene_weaver_go/config"
	"gene_weaver_go/tools/codon"
	"gene_weaver_go/tools/construct"
)

// app carries what every subcommand shares: settings and the logger.
type app struct {
	v          *viper.Viper
	cfg        config.Config
	log        *slog.Logger
	configFile string
	benchmark  bool
}

// newRootCmd builds the command tree. Each call gets its own viper
// instance so tests can run commands side by side.
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use: "gene_weaver",
		Short: `Design transcription-factor constructs from UniProt, disorder, JASPAR
and STRING data: codon-optimised DNA, cloning primers and CRISPR guides`,
		Version:       config.MainVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = newLogger(cmd.ErrOrStderr(), cfg.Log)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to a gene_weaver.yaml settings file")
	flags.BoolVar(&a.benchmark, "benchmark", false, "report runtime, memory use and host information")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("predictor", "foldindex", "disorder predictor: foldindex or alphafold")
	a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	a.v.BindPFlag("disorder.predictor", flags.Lookup("predictor"))

	root.AddCommand(
		a.weaveCmd(),
		a.disorderCmd(),
		a.crisprCmd(),
		a.codonCmd(),
		a.primersCmd(),
		a.sitesCmd(),
		a.designCmd(),
		a.motifsCmd(),
		a.interactionsCmd(),
		a.serveCmd(),
		a.versionCmd(),
	)
	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// runE wraps a subcommand body in the resource benchmark when --benchmark
// is set.
func (a *app) runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !a.benchmark {
			return fn(cmd, args)
		}
		label := strings.TrimSpace("gene_weaver " + cmd.Name() + " " + strings.Join(args, " "))
		_, err := benchmark.Run(cmd.ErrOrStderr(), label, func() error { return fn(cmd, args) })
		return err
	}
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (a *app) getter() *fetch.Getter {
	g := fetch.NewGetter(a.log)
	g.Timeout = a.cfg.HTTP.Timeout
	g.Retries = a.cfg.HTTP.Retries
	g.Backoff = a.cfg.HTTP.Backoff
	g.UserAgent = a.cfg.HTTP.UserAgent
	g.Cache = fetch.DiskCache{Dir: a.cfg.HTTP.CacheDir, TTL: a.cfg.HTTP.CacheTTL}
	return g
}

// services are the remote collaborators, sharing one Getter.
type services struct {
	proteins   *uniprot.Client
	motifs     *jaspar.Client
	partners   *stringdb.Client
	predictors predictor.Options
	memo       *predictor.Memo
}

func (a *app) services() services {
	g := a.getter()
	s := a.cfg.Services
	return services{
		proteins: uniprot.NewClient(s.UniProt, g, a.log),
		motifs:   jaspar.NewClient(s.JASPAR, g, a.log),
		partners: stringdb.NewClient(s.StringDB, g, a.log),
		predictors: predictor.Options{
			Kind:         a.cfg.Disorder.Predictor,
			Window:       a.cfg.Disorder.Window,
			AlphaFoldURL: s.AlphaFold,
			Getter:       g,
			Log:          a.log,
		},
		memo: predictor.NewMemo(a.cfg.Disorder.MemoSize, a.cfg.Disorder.Threshold, a.cfg.Disorder.MinLength),
	}
}

// organism resolves --organism, falling back to construct.organism.
func (a *app) organism(cmd *cobra.Command) codon.Organism {
	if f := cmd.Flags().Lookup("organism"); f != nil && f.Changed {
		return codon.ParseOrganism(f.Value.String())
	}
	return codon.ParseOrganism(a.cfg.Construct.Organism)
}

func (a *app) overhangs(cmd *cobra.Command) construct.Overhangs {
	oh := construct.Overhangs{
		Forward: a.cfg.Construct.ForwardOverhang,
		Reverse: a.cfg.Construct.ReverseOverhang,
	}
	if f := cmd.Flags().Lookup("fwd-overhang"); f != nil && f.Changed {
		oh.Forward = strings.ToUpper(f.Value.String())
	}
	if f := cmd.Flags().Lookup("rev-overhang"); f != nil && f.Changed {
		oh.Reverse = strings.ToUpper(f.Value.String())
	}
	return oh
}
