package filemanager

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
)

// DirOperations represents operations that can be performed on directories.
type DirOperations interface {
	Root() string
	List(dir string) ([]Entry, error)
	CreateFolder(dir, name string) (string, error)
}

// List returns the entries of dir: the parent entry first unless dir is the
// root, then directories, then files, each group by case-insensitive name.
func (f *FileManagerImpl) List(dir string) ([]Entry, error) {
	dir = filepath.Clean(dir)
	f.logger.Debug("Listing directory", "path", dir)

	info, err := f.fs.Stat(dir)
	if err != nil {
		return nil, newError(NotReadable, OpList, dir, err)
	}
	if !info.IsDir() {
		return nil, newError(NotReadable, OpList, dir, errors.New("not a directory"))
	}

	d, err := f.fs.Open(dir)
	if err != nil {
		return nil, newError(NotReadable, OpList, dir, err)
	}
	defer d.Close()

	infos, err := d.Readdir(-1)
	if err != nil {
		return nil, newError(ListingUnavailable, OpList, dir, err)
	}

	children := make([]Entry, 0, len(infos))
	for _, child := range infos {
		children = append(children, f.entryFor(filepath.Join(dir, child.Name()), child))
	}
	SortEntries(children)

	if dir == f.root {
		return children, nil
	}
	entries := make([]Entry, 0, len(children)+1)
	entries = append(entries, Entry{
		Path:     filepath.Dir(dir),
		Name:     ParentLabel,
		IsDir:    true,
		IsParent: true,
	})
	return append(entries, children...), nil
}

// SortEntries orders directories before files and each group by
// case-insensitive name. Ties fall back to the raw name.
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

// childCount returns the number of immediate children of dir, or 0 when the
// directory cannot be read.
func (f *FileManagerImpl) childCount(dir string) int {
	d, err := f.fs.Open(dir)
	if err != nil {
		return 0
	}
	defer d.Close()

	names, err := d.Readdirnames(-1)
	if err != nil {
		return 0
	}
	return len(names)
}

// CreateFolder creates name inside dir. Parent directories are not created.
func (f *FileManagerImpl) CreateFolder(dir, name string) (string, error) {
	name, err := validateName(OpCreateFolder, dir, name)
	if err != nil {
		return "", err
	}
	target := filepath.Join(dir, name)
	f.logger.Debug("Creating folder", "path", target)

	if f.exists(target) {
		return "", newError(AlreadyExists, OpCreateFolder, target, nil)
	}
	if err := f.requireDir(OpCreateFolder, dir); err != nil {
		return "", err
	}
	if err := f.fs.Mkdir(target, 0755); err != nil {
		return "", newError(IoError, OpCreateFolder, target, err)
	}
	return target, nil
}

func (f *FileManagerImpl) requireDir(op, dir string) error {
	info, err := f.fs.Stat(dir)
	if err != nil {
		return newError(IoError, op, dir, err)
	}
	if !info.IsDir() {
		return newError(IoError, op, dir, errors.New("not a directory"))
	}
	return nil
}
