package host

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/steelcutops/steelfm/logger"
	"github.com/steelcutops/steelfm/steelfm/commandmanager"
	"github.com/steelcutops/steelfm/steelfm/filemanager"
	"github.com/steelcutops/steelfm/steelfm/navigator"
	"github.com/steelcutops/steelfm/steelfm/opener"
)

// NewHost applies options, fills in defaults and opens the navigator at the
// storage root. Without WithFs the host works on the OS filesystem and a
// relative root is resolved against the working directory.
func NewHost(options ...HostOption) (*Host, error) {
	h := &Host{}
	for _, option := range options {
		option(h)
	}

	if h.Logger == nil {
		h.Logger = logger.Discard()
	}
	if h.Fs == nil {
		h.Fs = afero.NewOsFs()
	}
	if h.Root == "" {
		h.Root = string(filepath.Separator)
	}
	if _, ok := h.Fs.(*afero.OsFs); ok {
		abs, err := filepath.Abs(h.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve storage root: %w", err)
		}
		h.Root = abs
	}
	h.Root = filepath.Clean(h.Root)
	if h.Viewer == "" {
		h.Viewer = opener.DefaultTemplate()
	}
	if h.CommandManager == nil {
		h.CommandManager = &commandmanager.UnixCommandManager{Logger: h.Logger}
	}

	h.FileManager = filemanager.NewFileManager(h.Fs, h.Root, filemanager.WithLogger(h.Logger))
	h.Opener = opener.New(h.Fs, h.CommandManager,
		opener.WithTemplate(h.Viewer),
		opener.WithLogger(h.Logger),
	)

	nav, err := navigator.New(h.FileManager, navigator.WithLogger(h.Logger))
	if err != nil {
		return nil, err
	}
	h.Navigator = nav

	h.Logger.Debug("Host ready", "root", h.Root, "viewer", h.Viewer)
	return h, nil
}
