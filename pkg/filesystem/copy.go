package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/xctinstall/pkg/types"
)

// Exists reports whether path exists. Any Stat error other than
// "not exist" is treated as existing, so callers never clobber a path
// they merely failed to inspect.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// CopyTree copies the directory src to dst, recreating its structure,
// file contents and permission bits. dst must not exist. Symlinks are
// followed, so a linked file lands in dst as a regular file.
func CopyTree(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("copy %s: not a directory", src)
	}
	if _, err := fsys.Stat(dst); err == nil {
		return &fs.PathError{Op: "copy", Path: dst, Err: fs.ErrExist}
	}
	return copyDir(fsys, src, dst, info.Mode().Perm()|0o700)
}

func copyDir(fsys types.FS, src, dst string, perm fs.FileMode) error {
	if err := fsys.MkdirAll(dst, perm); err != nil {
		return err
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return err
	}

	for _, e := range entries {
		srcPath := filepath.Join(src, e.Name())
		dstPath := filepath.Join(dst, e.Name())

		// Stat rather than the DirEntry type so symlinks resolve to their target
		info, err := fsys.Stat(srcPath)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if err := copyDir(fsys, srcPath, dstPath, info.Mode().Perm()|0o700); err != nil {
				return err
			}
			continue
		}

		data, err := fsys.ReadFile(srcPath)
		if err != nil {
			return err
		}
		if err := fsys.WriteFile(dstPath, data, info.Mode().Perm()); err != nil {
			return err
		}
	}

	return nil
}
