package filemanager

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
)

// FileOperations represents operations that can be performed on files and
// whole subtrees.
type FileOperations interface {
	CreateFile(dir, name string) (string, error)
	Rename(path, newName string) (string, error)
	Delete(path string) error
	Copy(src, destDir string, overwrite bool) (string, error)
	Move(src, destDir string, overwrite bool) (string, error)
	Stat(path string) (Entry, error)
	Exists(path string) bool
}

var (
	errIntoItself    = errors.New("cannot copy a directory into itself")
	errSamePath      = errors.New("source and destination are the same file")
	errReplaceParent = errors.New("destination contains the source")
)

// CreateFile creates an empty file inside dir. A ".txt" extension is added
// when name has none.
func (f *FileManagerImpl) CreateFile(dir, name string) (string, error) {
	name, err := validateName(OpCreateFile, dir, name)
	if err != nil {
		return "", err
	}
	if !strings.Contains(name, ".") {
		name += ".txt"
	}
	target := filepath.Join(dir, name)
	f.logger.Debug("Creating file", "path", target)

	if f.exists(target) {
		return "", newError(AlreadyExists, OpCreateFile, target, nil)
	}
	if err := f.requireDir(OpCreateFile, dir); err != nil {
		return "", err
	}

	file, err := f.fs.OpenFile(target, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return "", newError(AlreadyExists, OpCreateFile, target, err)
		}
		return "", newError(IoError, OpCreateFile, target, err)
	}
	if err := file.Close(); err != nil {
		return "", newError(IoError, OpCreateFile, target, err)
	}
	return target, nil
}

// Rename renames path to newName within the same parent directory.
func (f *FileManagerImpl) Rename(path, newName string) (string, error) {
	path = filepath.Clean(path)
	newName, err := validateName(OpRename, path, newName)
	if err != nil {
		return "", err
	}
	target := filepath.Join(filepath.Dir(path), newName)
	f.logger.Debug("Renaming", "from", path, "to", target)

	if f.exists(target) {
		return "", newError(AlreadyExists, OpRename, target, nil)
	}
	if err := f.fs.Rename(path, target); err != nil {
		return "", newError(IoError, OpRename, path, err)
	}
	return target, nil
}

// Delete removes path, descending into directories depth-first. Children
// that cannot be removed are skipped; the operation fails only when path
// itself could not be removed. Already removed children are not restored.
func (f *FileManagerImpl) Delete(path string) error {
	path = filepath.Clean(path)
	f.logger.Debug("Deleting", "path", path)

	childErrs, err := f.removeAll(path, nil)
	if err != nil {
		return newError(IoError, OpDelete, path, multierror.Append(childErrs, err))
	}
	if childErrs != nil {
		f.logger.Warn("Delete succeeded with child failures", "path", path, "error", childErrs)
	}
	return nil
}

// removeAll appends failures below path to errs and returns the error from
// removing path itself.
func (f *FileManagerImpl) removeAll(path string, errs *multierror.Error) (*multierror.Error, error) {
	info, err := f.lstat(path)
	if err != nil {
		return errs, err
	}

	if info.IsDir() {
		names, err := f.readNames(path)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		for _, name := range names {
			child := filepath.Join(path, name)
			var childErr error
			errs, childErr = f.removeAll(child, errs)
			if childErr != nil {
				f.logger.Warn("Failed to delete child", "path", child, "error", childErr)
				errs = multierror.Append(errs, childErr)
			}
		}
	}

	return errs, f.fs.Remove(path)
}

func (f *FileManagerImpl) readNames(dir string) ([]string, error) {
	d, err := f.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	names, err := d.Readdirnames(-1)
	sort.Strings(names)
	return names, err
}

// Copy copies src into destDir under its own name. An existing destination
// is only written to when overwrite is set; directories are merged into it.
// A failed directory copy leaves already copied children in place.
func (f *FileManagerImpl) Copy(src, destDir string, overwrite bool) (string, error) {
	src = filepath.Clean(src)
	dest := filepath.Join(destDir, filepath.Base(src))
	f.logger.Debug("Copying", "from", src, "to", dest, "overwrite", overwrite)

	info, err := f.fs.Stat(src)
	if err != nil {
		return "", newError(IoError, OpCopy, src, err)
	}
	if dest == src {
		return "", newError(IoError, OpCopy, dest, errSamePath)
	}
	if info.IsDir() && within(dest, src) {
		return "", newError(IoError, OpCopy, dest, errIntoItself)
	}
	if f.exists(dest) && !overwrite {
		return "", newError(AlreadyExists, OpCopy, dest, nil)
	}

	if err := f.copyTree(src, dest, info); err != nil {
		return "", newError(IoError, OpCopy, src, err)
	}
	return dest, nil
}

func (f *FileManagerImpl) copyTree(src, dest string, info os.FileInfo) error {
	if !info.IsDir() {
		return f.copyFile(src, dest, info)
	}

	if err := f.fs.MkdirAll(dest, info.Mode().Perm()|0700); err != nil {
		return err
	}
	names, err := f.readNames(src)
	if err != nil {
		return err
	}
	for _, name := range names {
		childSrc := filepath.Join(src, name)
		childInfo, err := f.fs.Stat(childSrc)
		if err != nil {
			return err
		}
		if err := f.copyTree(childSrc, filepath.Join(dest, name), childInfo); err != nil {
			return err
		}
	}
	return nil
}

// copyFile transfers the whole content of src into a truncated dest.
func (f *FileManagerImpl) copyFile(src, dest string, info os.FileInfo) (err error) {
	in, err := f.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := f.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// Move moves src into destDir under its own name. It tries an atomic rename
// first and falls back to copy followed by delete, e.g. across volumes. When
// the copy succeeds but the source cannot be deleted the result is a
// PartialMove and both copies remain.
func (f *FileManagerImpl) Move(src, destDir string, overwrite bool) (string, error) {
	src = filepath.Clean(src)
	dest := filepath.Join(destDir, filepath.Base(src))
	f.logger.Debug("Moving", "from", src, "to", dest, "overwrite", overwrite)

	info, err := f.fs.Stat(src)
	if err != nil {
		return "", newError(IoError, OpMove, src, err)
	}
	if dest == src {
		return dest, nil
	}
	if info.IsDir() && within(dest, src) {
		return "", newError(IoError, OpMove, dest, errIntoItself)
	}
	if within(src, dest) {
		return "", newError(IoError, OpMove, dest, errReplaceParent)
	}
	if f.exists(dest) {
		if !overwrite {
			return "", newError(AlreadyExists, OpMove, dest, nil)
		}
		if _, err := f.removeAll(dest, nil); err != nil {
			return "", newError(IoError, OpMove, dest, err)
		}
	}

	renameErr := f.fs.Rename(src, dest)
	if renameErr == nil {
		return dest, nil
	}
	f.logger.Info("Rename failed, falling back to copy and delete", "from", src, "to", dest, "error", renameErr)

	if err := f.copyTree(src, dest, info); err != nil {
		return "", newError(IoError, OpMove, src, err)
	}
	childErrs, err := f.removeAll(src, nil)
	if err != nil {
		return dest, newError(PartialMove, OpMove, src, multierror.Append(childErrs, err))
	}
	return dest, nil
}
