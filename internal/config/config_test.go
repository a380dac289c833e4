package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromExecutableUsesBinaryDirectory(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "exefinder")
	require.NoError(t, os.WriteFile(exe, nil, 0o755))

	cfg, err := FromExecutable(exe)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, cfg.AppDir)
	assert.Equal(t, ".exe", cfg.Suffix)
	assert.Equal(t, filepath.Join(want, "exefinder.log"), cfg.Log.FilePath)
	assert.NotEmpty(t, cfg.StartDir)
}

func TestFromExecutableFollowsSymlink(t *testing.T) {
	realDir := t.TempDir()
	linkDir := t.TempDir()
	exe := filepath.Join(realDir, "exefinder")
	require.NoError(t, os.WriteFile(exe, nil, 0o755))
	link := filepath.Join(linkDir, "exefinder")
	require.NoError(t, os.Symlink(exe, link))

	cfg, err := FromExecutable(link)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(realDir)
	require.NoError(t, err)
	assert.Equal(t, want, cfg.AppDir)
}
