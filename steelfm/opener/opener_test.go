package opener

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/steelcutops/steelfm/steelfm/commandmanager"
	"github.com/steelcutops/steelfm/steelfm/filemanager"
)

type MockCommandManager struct {
	mock.Mock
}

func (m *MockCommandManager) Run(ctx context.Context, config commandmanager.CommandConfig) (commandmanager.CommandResult, error) {
	args := m.Called(ctx, config)
	return args.Get(0).(commandmanager.CommandResult), args.Error(1)
}

func newFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/sdcard/Pictures", 0755))
	require.NoError(t, afero.WriteFile(fs, "/sdcard/Pictures/cat.jpg", []byte("jpeg"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/sdcard/notes", []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/sdcard/blob.bin", []byte{0x00, 0x01, 0x02}, 0644))
	return fs
}

func TestOpenRunsTemplate(t *testing.T) {
	cm := new(MockCommandManager)
	want := commandmanager.CommandConfig{
		Command: "viewer",
		Args:    []string{"--type=image/jpeg", "/sdcard/Pictures/cat.jpg"},
	}
	cm.On("Run", mock.Anything, want).Return(commandmanager.CommandResult{}, nil)

	o := New(newFs(t), cm, WithTemplate("viewer --type={mime} {path}"))

	require.NoError(t, o.Open(context.Background(), "/sdcard/Pictures/cat.jpg"))
	cm.AssertExpectations(t)
}

func TestCommandAppendsPathWithoutPlaceholder(t *testing.T) {
	o := New(newFs(t), new(MockCommandManager), WithTemplate("viewer -f"))

	config, err := o.Command("/sdcard/Pictures/cat.jpg")
	require.NoError(t, err)
	assert.Equal(t, "viewer", config.Command)
	assert.Equal(t, []string{"-f", "/sdcard/Pictures/cat.jpg"}, config.Args)
}

func TestCommandEmptyTemplate(t *testing.T) {
	o := New(newFs(t), new(MockCommandManager), WithTemplate("   "))

	_, err := o.Command("/sdcard/Pictures/cat.jpg")
	assert.Error(t, err)

	err = o.Open(context.Background(), "/sdcard/Pictures/cat.jpg")
	assert.ErrorIs(t, err, filemanager.ErrNoHandler)
}

func TestDefaultTemplate(t *testing.T) {
	assert.Contains(t, DefaultTemplate(), PathPlaceholder)
}

func TestMimeTypeSniffsUnknownExtensions(t *testing.T) {
	o := New(newFs(t), new(MockCommandManager))

	assert.Equal(t, "image/jpeg", o.MimeType("/sdcard/Pictures/cat.jpg"))
	assert.Equal(t, "application/pdf", o.MimeType("/sdcard/notes"))
	assert.Equal(t, "application/octet-stream", o.MimeType("/sdcard/blob.bin"))
	assert.Equal(t, "*/*", o.MimeType("/sdcard/missing"))

	o = New(newFs(t), new(MockCommandManager), WithSniffing(false))
	assert.Equal(t, "*/*", o.MimeType("/sdcard/notes"))
}

func TestOpenDirectory(t *testing.T) {
	cm := new(MockCommandManager)
	o := New(newFs(t), cm)

	err := o.Open(context.Background(), "/sdcard/Pictures")
	assert.ErrorIs(t, err, filemanager.ErrNoHandler)
	assert.Equal(t, "No app found to open this file", filemanager.Notice(err))
	cm.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestOpenMissingFile(t *testing.T) {
	o := New(newFs(t), new(MockCommandManager))

	err := o.Open(context.Background(), "/sdcard/gone.txt")
	assert.ErrorIs(t, err, filemanager.ErrNotReadable)
}

func TestOpenWithoutViewer(t *testing.T) {
	cases := []struct {
		name   string
		result commandmanager.CommandResult
		err    error
	}{
		{"not installed", commandmanager.CommandResult{ExitCode: -1}, &exec.Error{Name: "xdg-open", Err: exec.ErrNotFound}},
		{"non-zero exit", commandmanager.CommandResult{ExitCode: 3, STDERR: "no method"}, errors.New("exit status 3")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cm := new(MockCommandManager)
			cm.On("Run", mock.Anything, mock.Anything).Return(c.result, c.err)

			o := New(newFs(t), cm)
			err := o.Open(context.Background(), "/sdcard/Pictures/cat.jpg")

			assert.ErrorIs(t, err, filemanager.ErrNoHandler)
			assert.Equal(t, filemanager.OpOpen, err.(*filemanager.Error).Op)
			cm.AssertExpectations(t)
		})
	}
}
