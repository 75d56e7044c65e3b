package filemanager

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the shell can show a single notice for it.
type Kind int

const (
	NotReadable Kind = iota + 1
	ListingUnavailable
	AlreadyExists
	IoError
	PartialMove
	NoHandlerAvailable
	InvalidName
)

// Operation names recorded on errors.
const (
	OpList         = "list"
	OpStat         = "stat"
	OpCreateFile   = "create-file"
	OpCreateFolder = "create-folder"
	OpRename       = "rename"
	OpDelete       = "delete"
	OpCopy         = "copy"
	OpMove         = "move"
	OpOpen         = "open"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrNotReadable        = &Error{Kind: NotReadable}
	ErrListingUnavailable = &Error{Kind: ListingUnavailable}
	ErrAlreadyExists      = &Error{Kind: AlreadyExists}
	ErrIO                 = &Error{Kind: IoError}
	ErrPartialMove        = &Error{Kind: PartialMove}
	ErrNoHandler          = &Error{Kind: NoHandlerAvailable}
	ErrInvalidName        = &Error{Kind: InvalidName}
)

// Error is returned by every file manager operation.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + " " + e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind. Empty Op and
// Path on the target act as wildcards.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind &&
		(t.Op == "" || t.Op == e.Op) &&
		(t.Path == "" || t.Path == e.Path)
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf returns the Kind carried by err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func (k Kind) String() string {
	switch k {
	case NotReadable:
		return "not readable"
	case ListingUnavailable:
		return "listing unavailable"
	case AlreadyExists:
		return "already exists"
	case IoError:
		return "i/o error"
	case PartialMove:
		return "partial move"
	case NoHandlerAvailable:
		return "no handler available"
	case InvalidName:
		return "invalid name"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Notice renders err as the one-line message shown to the user.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Kind {
	case NotReadable:
		switch e.Op {
		case OpList:
			return "Permission denied to access this directory"
		case OpCopy, OpMove:
			return "The selected file no longer exists"
		default:
			return "Cannot open this directory"
		}
	case ListingUnavailable:
		return "Unable to access this directory"
	case AlreadyExists:
		switch e.Op {
		case OpCreateFolder:
			return "Folder already exists"
		case OpRename:
			return "A file with that name already exists"
		default:
			return "File already exists"
		}
	case IoError:
		switch e.Op {
		case OpCreateFolder:
			return "Failed to create folder"
		case OpCreateFile:
			return "Failed to create file"
		case OpRename:
			return "Failed to rename"
		case OpDelete:
			return "Failed to delete"
		case OpCopy:
			return "Error copying: " + cause(e)
		case OpMove:
			return "Error moving: " + cause(e)
		default:
			return "Error: " + cause(e)
		}
	case PartialMove:
		return "File copied but original could not be deleted"
	case NoHandlerAvailable:
		return "No app found to open this file"
	case InvalidName:
		return cause(e)
	}
	return err.Error()
}

func cause(e *Error) string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}
