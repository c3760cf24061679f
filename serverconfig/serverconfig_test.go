package serverconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBasic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "btxd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_root: /srv/btx/data\nlisten: \":7800\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/btx/data", cfg.DataRoot)
	assert.Equal(t, ":7800", cfg.Listen)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "btxd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_root: /srv\nbogus: 1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRequiresDataRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "btxd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":7800\"\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLocateRcfileFindsXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "btxd"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "btxd", "btxd.yaml"), []byte("data_root: /srv\n"), 0o644))
	t.Setenv("XDG_CONFIG_HOME", dir)

	file, err := LocateRcfile(DefaultLocator())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "btxd", "btxd.yaml"), file)
}
