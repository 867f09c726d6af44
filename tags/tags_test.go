package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.tag")
	require.NoError(t, os.WriteFile(path, []byte("alpha\n\nbeta\n  gamma  \n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta", "gamma"}, got)
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "missing.tag"))
	require.NoError(t, err)
	require.Nil(t, got)
}
