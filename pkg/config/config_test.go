package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), reloaded)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeFile(t, `
[suggest]
cache_size = 0
case_fold = false

[genome]
k = 3

[censor]
placeholder = "#"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Suggest.CacheSize)
	assert.Equal(t, 3, cfg.Genome.K)
	assert.Equal(t, 64, cfg.Server.MaxLimit, "untouched sections keep defaults")

	opts := cfg.EngineOptions()
	assert.Equal(t, '#', opts.Placeholder)
	assert.Equal(t, 3, opts.K)
	assert.Equal(t, 0, opts.CacheSize)
	assert.False(t, opts.CaseFold)
}

func TestPartialParseKeepsValidKeys(t *testing.T) {
	path := writeFile(t, `
[server]
max_limit = "lots"
min_prefix = 2

[fuzzy]
alphabet = "abc"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Server.MaxLimit)
	assert.Equal(t, 2, cfg.Server.MinPrefix)
	assert.Equal(t, "abc", cfg.Fuzzy.Alphabet)
}

func TestBrokenFileFallsBackToDefaults(t *testing.T) {
	path := writeFile(t, "[server\nmax_limit = ")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeFile(t, "[cli]\ndefault_limit = 5\n")
	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 5, cfg.CLI.DefaultLimit)
}

func TestUpdateValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()

	limit := 12
	require.NoError(t, cfg.Update(path, &limit, nil, nil, nil))
	saved, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, saved.Server.MaxLimit)

	bad := 0
	assert.Error(t, cfg.Update(path, &bad, nil, nil, nil))
}
