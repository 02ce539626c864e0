package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/arthur-debert/xctinstall/pkg/types"
)

// aferoFS adapts afero to types.FS. Stat, MkdirAll, RemoveAll and
// WriteFile come straight from afero.Afero.
type aferoFS struct {
	afero.Afero
}

// NewOS returns the real filesystem. Stat follows symlinks.
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewAferoFS wraps any afero filesystem, typically afero.NewMemMapFs in tests
func NewAferoFS(fsys afero.Fs) types.FS {
	return aferoFS{afero.Afero{Fs: fsys}}
}

// ReadFile rejects directories up front; MemMapFs would return an empty read
func (a aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return a.Afero.ReadFile(name)
}

// ReadDir returns entries sorted by name
func (a aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := a.Afero.ReadDir(name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}
