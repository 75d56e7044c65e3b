package host

import (
	"github.com/spf13/afero"

	"github.com/steelcutops/steelfm/logger"
	"github.com/steelcutops/steelfm/steelfm/commandmanager"
)

type HostOption func(*Host)

// WithFs returns a HostOption that sets the filesystem for a Host.
func WithFs(fs afero.Fs) HostOption {
	return func(host *Host) {
		host.Fs = fs
	}
}

// WithRoot returns a HostOption that sets the storage root for a Host.
func WithRoot(root string) HostOption {
	return func(host *Host) {
		host.Root = root
	}
}

// WithLogger returns a HostOption that sets the logger shared by all managers.
func WithLogger(l logger.Logger) HostOption {
	return func(host *Host) {
		host.Logger = l
	}
}

// WithViewer returns a HostOption that sets the launcher template for a Host.
func WithViewer(template string) HostOption {
	return func(host *Host) {
		host.Viewer = template
	}
}

// WithCommandManager returns a HostOption that sets the command runner for a Host.
func WithCommandManager(cm commandmanager.CommandManager) HostOption {
	return func(host *Host) {
		host.CommandManager = cm
	}
}
