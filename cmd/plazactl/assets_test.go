package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plazakit/plaza/pkg/clilog"
	"github.com/plazakit/plaza/pkg/weburl"
)

func TestBuildManifest(t *testing.T) {
	out = clilog.New(clilog.WithOutput(os.Stderr), clilog.WithColor(clilog.ColorOff))

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "app.js"), []byte("console.log(1)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))

	outPath := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, buildManifest(dir, outPath))

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	m, err := weburl.LoadManifest(f)
	require.NoError(t, err)

	assert.Len(t, m.Assets, 2, "dotfiles are skipped")
	assert.Len(t, m.Version, 8)
	assert.Regexp(t, `^js/app\.js\?v=[0-9a-f]{8}$`, m.Assets["js/app.js"])
	assert.Regexp(t, `^site\.css\?v=[0-9a-f]{8}$`, m.Assets["site.css"])
}

func TestBuildManifestEmptyDir(t *testing.T) {
	out = clilog.New(clilog.WithOutput(os.Stderr), clilog.WithColor(clilog.ColorOff))
	require.Error(t, buildManifest(t.TempDir(), filepath.Join(t.TempDir(), "m.json")))
}

func TestParseScalar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, true, parseScalar("true"))
	assert.Equal(t, int64(42), parseScalar("42"))
	assert.Equal(t, 1.5, parseScalar("1.5"))
	assert.Equal(t, "Community Forum", parseScalar("Community Forum"))
}
