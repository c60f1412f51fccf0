package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 10*time.Second, c.HTTP.Timeout)
	assert.Equal(t, 2, c.HTTP.Retries)
	assert.Equal(t, 0.5, c.Disorder.Threshold)
	assert.Equal(t, 30, c.Disorder.MinLength)
	assert.Equal(t, "foldindex", c.Disorder.Predictor)
	assert.Equal(t, "GAATTC", c.Construct.ForwardOverhang)
	assert.Equal(t, "GGATCC", c.Construct.ReverseOverhang)
	assert.Equal(t, "https://rest.uniprot.org", c.Services.UniProt)
	assert.Equal(t, 3, c.Dashboard.HistorySize)
	assert.Equal(t, 1000, c.Dashboard.MaxSessions)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gene_weaver.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
http:
  timeout: 3s
  cache_dir: ""
disorder:
  threshold: 0.6
  predictor: alphafold
construct:
  organism: Yeast
`), 0o644))
	t.Setenv("GENE_WEAVER_DISORDER_MIN_LENGTH", "12")

	c, err := Load(viper.New(), file)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.HTTP.Timeout)
	assert.Empty(t, c.HTTP.CacheDir)
	assert.Equal(t, 0.6, c.Disorder.Threshold)
	assert.Equal(t, "alphafold", c.Disorder.Predictor)
	assert.Equal(t, 12, c.Disorder.MinLength)
	assert.Equal(t, "Yeast", c.Construct.Organism)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	var c Config
	require.NoError(t, v.Unmarshal(&c))
	require.NoError(t, c.Validate())

	c.Disorder.Threshold = 1.5
	c.Disorder.MinLength = 0
	c.Disorder.Predictor = "metapredict"
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disorder.threshold")
	assert.Contains(t, err.Error(), "disorder.min_length")
	assert.Contains(t, err.Error(), "metapredict")
}

func TestTools(t *testing.T) {
	tools := Tools()
	require.NotEmpty(t, tools)
	for _, tv := range tools {
		assert.Regexp(t, `^v\d+\.\d+\.\d+$`, tv.Version, tv.Name)
	}
}
