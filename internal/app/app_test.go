package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithDefaults(t *testing.T) {
	a, err := New("")
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Logger())
	require.Equal(t, "index.html", a.Config().Generator.OutputFile)
}

func TestNewWithBadConfigFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  output_file: \"\"\n"), 0o600))

	_, err := New(path)
	require.Error(t, err)
}
