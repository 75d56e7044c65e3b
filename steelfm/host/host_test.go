package host

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelcutops/steelfm/steelfm/commandmanager"
	"github.com/steelcutops/steelfm/steelfm/filemanager"
	"github.com/steelcutops/steelfm/steelfm/opener"
)

type recordingCommandManager struct {
	configs []commandmanager.CommandConfig
}

func (r *recordingCommandManager) Run(_ context.Context, config commandmanager.CommandConfig) (commandmanager.CommandResult, error) {
	r.configs = append(r.configs, config)
	return commandmanager.CommandResult{Command: config.Command}, nil
}

func TestNewHostWithMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/sdcard/Music", 0755))
	require.NoError(t, afero.WriteFile(fs, "/sdcard/song.mp3", []byte("id3"), 0644))
	cm := &recordingCommandManager{}

	h, err := NewHost(
		WithFs(fs),
		WithRoot("/sdcard/"),
		WithViewer("player {path}"),
		WithCommandManager(cm),
	)
	require.NoError(t, err)

	assert.Equal(t, "/sdcard", h.Root)
	assert.Equal(t, "/sdcard", h.Navigator.Current())
	assert.Equal(t, "/sdcard", h.FileManager.Root())
	assert.Len(t, h.Navigator.Entries(), 2)

	require.NoError(t, h.Opener.Open(context.Background(), "/sdcard/song.mp3"))
	require.Len(t, cm.configs, 1)
	assert.Equal(t, "player", cm.configs[0].Command)
	assert.Equal(t, []string{"/sdcard/song.mp3"}, cm.configs[0].Args)
}

func TestNewHostDefaults(t *testing.T) {
	root := t.TempDir()

	h, err := NewHost(WithRoot(root))
	require.NoError(t, err)

	assert.IsType(t, &afero.OsFs{}, h.Fs)
	assert.IsType(t, &commandmanager.UnixCommandManager{}, h.CommandManager)
	assert.Equal(t, opener.DefaultTemplate(), h.Viewer)
	assert.NotNil(t, h.Logger)
	assert.Equal(t, root, h.Navigator.Root())
}

func TestNewHostResolvesRelativeRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "storage"), 0755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	h, err := NewHost(WithRoot("storage"))
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(h.Root)
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(filepath.Join(dir, "storage"))
	require.NoError(t, err)
	assert.Equal(t, expected, resolved)
	assert.True(t, filepath.IsAbs(h.Root))
}

func TestNewHostMissingRoot(t *testing.T) {
	_, err := NewHost(WithFs(afero.NewMemMapFs()), WithRoot("/nowhere"))
	assert.ErrorIs(t, err, filemanager.ErrNotReadable)
}
