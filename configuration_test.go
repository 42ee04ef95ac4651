package osm2gmns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))
	return fname
}

func TestLoadConfigurationTOML(t *testing.T) {
	fname := writeConfig(t, "conf.toml", `
auto_identify = true
int_buffer = 35.5
lonlat_coord_precision = 6
`)
	cfg, err := LoadConfiguration(fname)
	require.NoError(t, err)
	assert.True(t, cfg.AutoIdentify)
	assert.Equal(t, 35.5, cfg.IntBuffer)
	assert.Equal(t, 6, cfg.LonLatPrecision)
	assert.Equal(t, DEFAULT_LOCAL_PRECISION, cfg.LocalPrecision, "Missing parameters keep defaults")
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigurationYAML(t *testing.T) {
	fname := writeConfig(t, "conf.yaml", `
auto_identify: true
local_coord_precision: 3
verbose: true
`)
	cfg, err := LoadConfiguration(fname)
	require.NoError(t, err)
	assert.True(t, cfg.AutoIdentify)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 3, cfg.LocalPrecision)
	assert.Equal(t, DEFAULT_INT_BUFFER, cfg.IntBuffer)

	consolidator := NewIntersectionConsolidator(cfg.Options()...)
	assert.True(t, consolidator.autoIdentify)
	assert.True(t, consolidator.verbose)
	assert.Equal(t, 3, consolidator.localPrecision)
	assert.Equal(t, DEFAULT_LONLAT_PRECISION, consolidator.lonlatPrecision)
}

func TestLoadConfigurationErrors(t *testing.T) {
	_, err := LoadConfiguration(writeConfig(t, "conf.toml", "int_buffer = -1\n"))
	assert.Error(t, err, "Negative buffer")

	_, err = LoadConfiguration(writeConfig(t, "conf.yml", "lonlat_coord_precision: 20\n"))
	assert.Error(t, err, "Precision is too big")

	_, err = LoadConfiguration(writeConfig(t, "conf.json", "{}"))
	assert.Error(t, err, "Unsupported extension")

	_, err = LoadConfiguration(writeConfig(t, "conf.toml", "int_buffer = \"abc\"\n"))
	assert.Error(t, err)

	_, err = LoadConfiguration(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()
	require.NoError(t, cfg.Validate())
	consolidator := NewIntersectionConsolidator(cfg.Options()...)
	defaults := NewIntersectionConsolidator()
	assert.Equal(t, defaults.String(), consolidator.String())
}
