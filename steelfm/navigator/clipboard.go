package navigator

import (
	"path/filepath"

	"github.com/steelcutops/steelfm/steelfm/filemanager"
)

// Op is the paste action remembered with a clipboard item.
type Op int

const (
	OpCopy Op = iota + 1
	OpMove
)

func (o Op) String() string {
	if o == OpMove {
		return filemanager.OpMove
	}
	return filemanager.OpCopy
}

// ClipboardItem is the single source waiting for a paste target.
type ClipboardItem struct {
	Source string
	Op     Op
}

// Confirmation is a paste suspended until the user decides whether to
// replace Destination.
type Confirmation struct {
	Item        ClipboardItem
	Destination string
}

// MarkCopy remembers path to be copied on the next paste.
func (n *Navigator) MarkCopy(path string) error {
	return n.mark(path, OpCopy)
}

// MarkMove remembers path to be moved on the next paste.
func (n *Navigator) MarkMove(path string) error {
	return n.mark(path, OpMove)
}

func (n *Navigator) mark(path string, op Op) error {
	if err := n.guard(); err != nil {
		return err
	}
	path = filepath.Clean(path)
	if !n.fm.Exists(path) {
		return &filemanager.Error{Kind: filemanager.NotReadable, Op: op.String(), Path: path}
	}
	n.logger.Debug("Clipboard set", "path", path, "op", op.String())
	n.clip = &ClipboardItem{Source: path, Op: op}
	return nil
}

// Clipboard returns the pending clipboard item, if any.
func (n *Navigator) Clipboard() (ClipboardItem, bool) {
	if n.clip == nil {
		return ClipboardItem{}, false
	}
	return *n.clip, true
}

// ClearClipboard drops the pending clipboard item.
func (n *Navigator) ClearClipboard() {
	n.clip = nil
}

// Pending returns the outstanding overwrite confirmation, if any.
func (n *Navigator) Pending() (Confirmation, bool) {
	if n.pending == nil {
		return Confirmation{}, false
	}
	return *n.pending, true
}

// Paste copies or moves the clipboard item into the current directory.
// When the destination already exists nothing is written: the paste is
// parked as a Confirmation and ErrConfirmationRequired is returned together
// with the destination path. Call Resolve to continue.
func (n *Navigator) Paste() (string, error) {
	if err := n.guard(); err != nil {
		return "", err
	}
	if n.clip == nil {
		return "", ErrNothingToPaste
	}
	item := *n.clip

	if !n.fm.Exists(item.Source) {
		n.clip = nil
		return "", &filemanager.Error{Kind: filemanager.NotReadable, Op: item.Op.String(), Path: item.Source}
	}

	dest := filepath.Join(n.current, filepath.Base(item.Source))
	if dest != item.Source && n.fm.Exists(dest) {
		n.logger.Debug("Paste needs confirmation", "source", item.Source, "destination", dest)
		n.pending = &Confirmation{Item: item, Destination: dest}
		return dest, ErrConfirmationRequired
	}
	return n.execute(item, false)
}

// Resolve answers the pending confirmation. Proceeding replaces the
// destination; abandoning drops both the confirmation and the clipboard item.
func (n *Navigator) Resolve(proceed bool) (string, error) {
	if n.pending == nil {
		return "", ErrNoConfirmation
	}
	c := *n.pending
	n.pending = nil
	if !proceed {
		n.logger.Debug("Paste abandoned", "source", c.Item.Source)
		n.clip = nil
		return "", nil
	}
	return n.execute(c.Item, true)
}

func (n *Navigator) execute(item ClipboardItem, overwrite bool) (string, error) {
	n.clip = nil

	var (
		dest string
		err  error
	)
	switch item.Op {
	case OpMove:
		dest, err = n.fm.Move(item.Source, n.current, overwrite)
	default:
		dest, err = n.fm.Copy(item.Source, n.current, overwrite)
	}
	n.refresh()
	return dest, err
}
