package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gridbase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /var/gridbase\naddr: \":9090\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/gridbase", cfg.DataDir)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, Default().TagsFile, cfg.TagsFile)
}
