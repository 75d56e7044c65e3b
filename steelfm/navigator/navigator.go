// Package navigator tracks the current directory below a storage root and
// the single pending clipboard item and overwrite confirmation.
package navigator

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/steelcutops/steelfm/logger"
	"github.com/steelcutops/steelfm/steelfm/filemanager"
)

const opEnter = "enter"

var (
	ErrAtRoot               = errors.New("Already at the storage root")
	ErrNothingToPaste       = errors.New("No file selected to paste")
	ErrConfirmationRequired = errors.New("Do you want to replace the existing file?")
	ErrConfirmationPending  = errors.New("Answer the pending confirmation first")
	ErrNoConfirmation       = errors.New("Nothing is waiting for confirmation")
	ErrNotInCurrent         = errors.New("Select an item in the current directory")
)

type Option func(*Navigator)

// WithLogger sets the logger used for navigation tracing.
func WithLogger(l logger.Logger) Option {
	return func(n *Navigator) {
		n.logger = l
	}
}

// Navigator is the navigation state machine. It is not safe for concurrent
// use; the shell drives it from a single goroutine.
type Navigator struct {
	fm      filemanager.FileManager
	root    string
	current string
	entries []filemanager.Entry
	clip    *ClipboardItem
	pending *Confirmation
	logger  logger.Logger
}

// New starts at the file manager's root, which must be listable.
func New(fm filemanager.FileManager, options ...Option) (*Navigator, error) {
	n := &Navigator{
		fm:     fm,
		root:   filepath.Clean(fm.Root()),
		logger: logger.Discard(),
	}
	for _, option := range options {
		option(n)
	}

	entries, err := fm.List(n.root)
	if err != nil {
		return nil, err
	}
	n.current = n.root
	n.entries = entries
	return n, nil
}

func (n *Navigator) Root() string { return n.root }

func (n *Navigator) Current() string { return n.current }

func (n *Navigator) AtRoot() bool { return n.current == n.root }

// Entries returns the listing of the current directory from the last load.
func (n *Navigator) Entries() []filemanager.Entry { return n.entries }

// Lookup finds an entry of the last listing by its label.
func (n *Navigator) Lookup(label string) (filemanager.Entry, bool) {
	for _, e := range n.entries {
		if e.Label() == label {
			return e, true
		}
	}
	return filemanager.Entry{}, false
}

func (n *Navigator) guard() error {
	if n.pending != nil {
		return ErrConfirmationPending
	}
	return nil
}

// Enter moves into dir. The directory must lie below the root and be
// listable; on failure the current directory is unchanged.
func (n *Navigator) Enter(dir string) ([]filemanager.Entry, error) {
	if err := n.guard(); err != nil {
		return nil, err
	}
	dir = filepath.Clean(dir)
	if !n.inRoot(dir) {
		return nil, &filemanager.Error{Kind: filemanager.NotReadable, Op: opEnter, Path: dir, Err: errors.New("outside the storage root")}
	}

	entry, err := n.fm.Stat(dir)
	if err != nil {
		return nil, &filemanager.Error{Kind: filemanager.NotReadable, Op: opEnter, Path: dir, Err: err}
	}
	if !entry.IsDir {
		return nil, &filemanager.Error{Kind: filemanager.NotReadable, Op: opEnter, Path: dir, Err: errors.New("not a directory")}
	}

	entries, err := n.fm.List(dir)
	if err != nil {
		return nil, err
	}
	n.logger.Debug("Entered directory", "path", dir)
	n.current = dir
	n.entries = entries
	return entries, nil
}

// GoToParent moves one level up. It fails with ErrAtRoot at the root.
func (n *Navigator) GoToParent() ([]filemanager.Entry, error) {
	if err := n.guard(); err != nil {
		return nil, err
	}
	if n.AtRoot() {
		return nil, ErrAtRoot
	}
	return n.Enter(filepath.Dir(n.current))
}

// GoBack goes to the parent directory and reports true, or reports false at
// the root so the caller can apply its own back action.
func (n *Navigator) GoBack() (bool, error) {
	if n.AtRoot() {
		return false, nil
	}
	_, err := n.GoToParent()
	return true, err
}

// Reload lists the current directory again.
func (n *Navigator) Reload() ([]filemanager.Entry, error) {
	if err := n.guard(); err != nil {
		return nil, err
	}
	entries, err := n.fm.List(n.current)
	if err != nil {
		return nil, err
	}
	n.entries = entries
	return entries, nil
}

// refresh reloads after a mutation; a failed reload keeps the old listing.
func (n *Navigator) refresh() {
	entries, err := n.fm.List(n.current)
	if err != nil {
		n.logger.Warn("Failed to reload directory", "path", n.current, "error", err)
		return
	}
	n.entries = entries
}

func (n *Navigator) inRoot(path string) bool {
	rel, err := filepath.Rel(n.root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// child checks that path names an entry directly inside the current directory.
func (n *Navigator) child(path string) (string, error) {
	path = filepath.Clean(path)
	if filepath.Dir(path) != n.current || path == n.current {
		return "", ErrNotInCurrent
	}
	return path, nil
}

// CreateFile creates a file in the current directory.
func (n *Navigator) CreateFile(name string) (string, error) {
	if err := n.guard(); err != nil {
		return "", err
	}
	path, err := n.fm.CreateFile(n.current, name)
	if err != nil {
		return "", err
	}
	n.refresh()
	return path, nil
}

// CreateFolder creates a directory in the current directory.
func (n *Navigator) CreateFolder(name string) (string, error) {
	if err := n.guard(); err != nil {
		return "", err
	}
	path, err := n.fm.CreateFolder(n.current, name)
	if err != nil {
		return "", err
	}
	n.refresh()
	return path, nil
}

// Rename renames an entry of the current directory.
func (n *Navigator) Rename(path, newName string) (string, error) {
	if err := n.guard(); err != nil {
		return "", err
	}
	path, err := n.child(path)
	if err != nil {
		return "", err
	}
	target, err := n.fm.Rename(path, newName)
	if err != nil {
		return "", err
	}
	n.refresh()
	return target, nil
}

// Delete removes an entry of the current directory. The listing is
// reloaded even on failure since a partial delete may have removed children.
func (n *Navigator) Delete(path string) error {
	if err := n.guard(); err != nil {
		return err
	}
	path, err := n.child(path)
	if err != nil {
		return err
	}
	err = n.fm.Delete(path)
	n.refresh()
	return err
}
