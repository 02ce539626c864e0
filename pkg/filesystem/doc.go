// Package filesystem backs types.FS with afero and copies template trees.
//
// NewOS is the real disk. NewAferoFS takes any afero.Fs, so tests run the
// installer against afero.NewMemMapFs. CopyTree only uses types.FS, so a
// fault-injecting wrapper can fail any single step of a copy.
package filesystem
