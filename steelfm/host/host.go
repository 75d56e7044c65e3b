// Package host assembles the file manager, navigator and opener over one
// filesystem and storage root.
package host

import (
	"github.com/spf13/afero"

	"github.com/steelcutops/steelfm/logger"
	"github.com/steelcutops/steelfm/steelfm/commandmanager"
	"github.com/steelcutops/steelfm/steelfm/filemanager"
	"github.com/steelcutops/steelfm/steelfm/navigator"
	"github.com/steelcutops/steelfm/steelfm/opener"
)

type Host struct {
	Root   string
	Fs     afero.Fs
	Viewer string
	Logger logger.Logger

	CommandManager commandmanager.CommandManager
	FileManager    filemanager.FileManager
	Navigator      *navigator.Navigator
	Opener         *opener.Opener
}
