package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

var ErrInvalidUTF8 = errors.New("file is not valid UTF-8 text")

// DiskFS reads and writes whole text files on the local disk.
type DiskFS struct{}

func (DiskFS) ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrInvalidUTF8)
	}
	return string(b), nil
}

// WriteText replaces path atomically, keeping the mode of an existing file.
// Symlinks are followed so the link itself survives. When the directory
// forbids new files, an existing file is rewritten in place instead.
func (DiskFS) WriteText(path, text string) error {
	target, err := resolveLinks(path)
	if err != nil {
		return err
	}
	perm := os.FileMode(0o644)
	exists := false
	if st, err := os.Stat(target); err == nil {
		if st.IsDir() {
			return fmt.Errorf("%s: is a directory", path)
		}
		perm = st.Mode().Perm()
		exists = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	b := []byte(text)
	err = atomicWriteFile(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp", target, b, perm)
	if err != nil && exists && errors.Is(err, os.ErrPermission) {
		return os.WriteFile(target, b, perm)
	}
	return err
}

const maxLinkHops = 40

// resolveLinks follows symlinks at the last path element, including
// dangling ones, and returns the file a write should land on.
func resolveLinks(path string) (string, error) {
	p := path
	for i := 0; i < maxLinkHops; i++ {
		st, err := os.Lstat(p)
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		if err != nil {
			return "", err
		}
		if st.Mode()&os.ModeSymlink == 0 {
			return p, nil
		}
		dest, err := os.Readlink(p)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(p), dest)
		}
		p = dest
	}
	return "", fmt.Errorf("%s: too many levels of symbolic links", path)
}
