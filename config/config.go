// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gene_weaver_go/api/fetch"
)

// EnvPrefix prefixes every environment override, e.g.
// GENE_WEAVER_DISORDER_THRESHOLD.
const EnvPrefix = "GENE_WEAVER"

// LogConfig controls the slog handler
type LogConfig struct {
	// debug, info, warn or error
	Level string `mapstructure:"level"`
	// text or json
	Format string `mapstructure:"format"`
}

// HTTPConfig is shared by every remote collaborator
type HTTPConfig struct {
	// per-attempt deadline
	Timeout time.Duration `mapstructure:"timeout"`
	// extra attempts after the first failure
	Retries int `mapstructure:"retries"`
	// linear back-off unit between attempts
	Backoff time.Duration `mapstructure:"backoff"`
	// on-disk response cache; empty disables it
	CacheDir string        `mapstructure:"cache_dir"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	UserAgent string `mapstructure:"user_agent"`
}

// ServicesConfig holds the base URLs of the remote services
type ServicesConfig struct {
	UniProt   string `mapstructure:"uniprot"`
	JASPAR    string `mapstructure:"jaspar"`
	StringDB  string `mapstructure:"stringdb"`
	AlphaFold string `mapstructure:"alphafold"`
}

// DisorderConfig settings for IDR prediction and segmentation
type DisorderConfig struct {
	Threshold float64 `mapstructure:"threshold"`
	MinLength int     `mapstructure:"min_length"`
	// foldindex or alphafold
	Predictor string `mapstructure:"predictor"`
	// FoldIndex sliding window, in residues
	Window int `mapstructure:"window"`
	// number of sequences kept in the analysis memo
	MemoSize int `mapstructure:"memo_size"`
}

// ConstructConfig settings for construct design
type ConstructConfig struct {
	ForwardOverhang string `mapstructure:"forward_overhang"`
	ReverseOverhang string `mapstructure:"reverse_overhang"`
	Organism        string `mapstructure:"organism"`
}

// DashboardConfig settings for the HTTP dashboard
type DashboardConfig struct {
	Addr string `mapstructure:"addr"`
	// history entries offered for quick re-opening
	HistorySize int `mapstructure:"history_size"`
	// sessions kept in memory before the least recently used is dropped
	MaxSessions int `mapstructure:"max_sessions"`
}

// Config is the root-level settings struct and is a mix
// of settings available in gene_weaver.yaml, the environment
// and those available from the command line
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Services  ServicesConfig  `mapstructure:"services"`
	Disorder  DisorderConfig  `mapstructure:"disorder"`
	Construct ConstructConfig `mapstructure:"construct"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// SetDefaults registers every key so environment overrides resolve.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("http.retries", 2)
	v.SetDefault("http.backoff", time.Second)
	v.SetDefault("http.cache_dir", fetch.DefaultCacheDir())
	v.SetDefault("http.cache_ttl", 7*24*time.Hour)
	v.SetDefault("http.user_agent", "gene_weaver/"+MainVersion)

	v.SetDefault("services.uniprot", "https://rest.uniprot.org")
	v.SetDefault("services.jaspar", "https://jaspar.elixir.no")
	v.SetDefault("services.stringdb", "https://string-db.org")
	v.SetDefault("services.alphafold", "https://alphafold.ebi.ac.uk/api/prediction")

	v.SetDefault("disorder.threshold", 0.5)
	v.SetDefault("disorder.min_length", 30)
	v.SetDefault("disorder.predictor", "foldindex")
	v.SetDefault("disorder.window", 51)
	v.SetDefault("disorder.memo_size", 64)

	v.SetDefault("construct.forward_overhang", "GAATTC")
	v.SetDefault("construct.reverse_overhang", "GGATCC")
	v.SetDefault("construct.organism", "Human")

	v.SetDefault("dashboard.addr", "127.0.0.1:8501")
	v.SetDefault("dashboard.history_size", 3)
	v.SetDefault("dashboard.max_sessions", 1000)
}

// Load reads file (or gene_weaver.yaml from the working directory or
// ~/.config/gene_weaver when file is empty), applies environment
// overrides and decodes the result. A missing default file is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("gene_weaver")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gene_weaver"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return c, c.Validate()
}

// Validate rejects settings the analysis cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Disorder.Threshold < 0 || c.Disorder.Threshold > 1 {
		errs = append(errs, fmt.Errorf("disorder.threshold %.2f outside [0,1]", c.Disorder.Threshold))
	}
	if c.Disorder.MinLength < 1 {
		errs = append(errs, fmt.Errorf("disorder.min_length must be positive, got %d", c.Disorder.MinLength))
	}
	switch strings.ToLower(c.Disorder.Predictor) {
	case "foldindex", "alphafold":
	default:
		errs = append(errs, fmt.Errorf("disorder.predictor %q is not foldindex or alphafold", c.Disorder.Predictor))
	}
	if c.HTTP.Retries < 0 {
		errs = append(errs, fmt.Errorf("http.retries must not be negative, got %d", c.HTTP.Retries))
	}
	return errors.Join(errs...)
}
