package filemanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/steelcutops/steelfm/logger"
	"github.com/steelcutops/steelfm/steelfm/filetype"
)

// ParentLabel is shown in place of the name of the synthetic parent entry.
const ParentLabel = ".."

// FileManager encompasses operations on both files and directories.
type FileManager interface {
	FileOperations
	DirOperations
}

// Entry is a snapshot of one directory entry taken at listing time.
type Entry struct {
	Path       string
	Name       string
	IsDir      bool
	IsParent   bool
	Size       int64 // bytes, files only
	ChildCount int   // immediate children, directories only
	Modified   time.Time
}

// Label is the name shown in the list view.
func (e Entry) Label() string {
	if e.IsParent {
		return ParentLabel
	}
	return e.Name
}

// Details is the secondary line shown under the label.
func (e Entry) Details() string {
	switch {
	case e.IsParent:
		return "Parent Directory"
	case e.IsDir:
		return fmt.Sprintf("%d items | %s", e.ChildCount, FormatDate(e.Modified))
	default:
		return fmt.Sprintf("%s | %s", FormatSize(e.Size), FormatDate(e.Modified))
	}
}

// Category classifies the entry for icon selection. Directories are Other.
func (e Entry) Category() filetype.Category {
	if e.IsDir {
		return filetype.Other
	}
	return filetype.Classify(e.Name)
}

type Option func(*FileManagerImpl)

// WithLogger sets the logger used for operation tracing.
func WithLogger(l logger.Logger) Option {
	return func(f *FileManagerImpl) {
		f.logger = l
	}
}

type FileManagerImpl struct {
	fs     afero.Fs
	root   string
	logger logger.Logger
}

// NewFileManager returns a FileManager operating on fs. root is the storage
// boundary above which listings carry no parent entry.
func NewFileManager(fs afero.Fs, root string, options ...Option) *FileManagerImpl {
	f := &FileManagerImpl{
		fs:     fs,
		root:   filepath.Clean(root),
		logger: logger.Discard(),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// Root returns the storage root.
func (f *FileManagerImpl) Root() string {
	return f.root
}

// Fs exposes the underlying filesystem.
func (f *FileManagerImpl) Fs() afero.Fs {
	return f.fs
}

// lstat does not follow symlinks when the filesystem supports it.
func (f *FileManagerImpl) lstat(path string) (os.FileInfo, error) {
	if l, ok := f.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return f.fs.Stat(path)
}

func (f *FileManagerImpl) exists(path string) bool {
	_, err := f.lstat(path)
	return err == nil
}

// Exists reports whether path is present, without following symlinks.
func (f *FileManagerImpl) Exists(path string) bool {
	return f.exists(filepath.Clean(path))
}

// Stat returns a fresh snapshot of a single path.
func (f *FileManagerImpl) Stat(path string) (Entry, error) {
	path = filepath.Clean(path)
	info, err := f.fs.Stat(path)
	if err != nil {
		return Entry{}, newError(NotReadable, OpStat, path, err)
	}
	return f.entryFor(path, info), nil
}

func (f *FileManagerImpl) entryFor(path string, info os.FileInfo) Entry {
	e := Entry{
		Path:     path,
		Name:     info.Name(),
		IsDir:    info.IsDir(),
		Modified: info.ModTime(),
	}
	if e.IsDir {
		e.ChildCount = f.childCount(path)
	} else {
		e.Size = info.Size()
	}
	return e
}

// validateName rejects names that are empty or would escape the parent.
func validateName(op, dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", newError(InvalidName, op, dir, errors.New("Name cannot be empty"))
	}
	if name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return "", newError(InvalidName, op, dir, fmt.Errorf("Invalid name %q", name))
	}
	return name, nil
}

// within reports whether path equals dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
