package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	godbf "github.com/Ulysses-Xu/go-dbfwriter"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Toml(t *testing.T) {
	path := writeConfig(t, "dbfwriter.toml", `
codepage = 1251
output_directory = "/tmp/out"
unsupported_types = "reject"
stamp_date = true

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1251, cfg.Codepage)
	assert.Equal(t, "/tmp/out", cfg.OutputDirectory)
	assert.Equal(t, "reject", cfg.UnsupportedTypes)
	assert.True(t, cfg.StampDate)
	assert.False(t, cfg.BlankEmptyValues)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Yaml(t *testing.T) {
	path := writeConfig(t, "dbfwriter.yaml", `
blankEmptyValues: true
logging:
  level: warn
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, godbf.DefaultCodepage, cfg.Codepage)
	assert.Equal(t, ".", cfg.OutputDirectory)
	assert.True(t, cfg.BlankEmptyValues)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	path := writeConfig(t, "broken.toml", "codepage = [")
	_, err = Load(path)
	require.Error(t, err)
}

func TestConfig_Policy(t *testing.T) {
	cfg := Default()
	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, godbf.DowngradeUnsupported, policy)

	cfg.UnsupportedTypes = "Reject"
	policy, err = cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, godbf.RejectUnsupported, policy)

	cfg.UnsupportedTypes = "ignore"
	_, err = cfg.Policy()
	require.Error(t, err)
}

func TestConfig_Options(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

	cfg := Default()
	cfg.Codepage = 1252
	options, err := cfg.Options(now)
	require.NoError(t, err)
	assert.Equal(t, 1252, options.Codepage)
	assert.True(t, options.LastUpdate.IsZero())

	cfg.StampDate = true
	cfg.BlankEmptyValues = true
	options, err = cfg.Options(now)
	require.NoError(t, err)
	assert.Equal(t, now, options.LastUpdate)
	assert.True(t, options.BlankEmptyValues)

	cfg.UnsupportedTypes = "?"
	_, err = cfg.Options(now)
	require.Error(t, err)
}
