package cpio

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cavaliergopher/cpio"
)

// Archive wraps a CPIO writer for bundling console logs
type Archive struct {
	writer *cpio.Writer
	dirs   map[string]bool
}

// NewArchive creates a new CPIO archive writer
func NewArchive(w io.Writer) *Archive {
	return &Archive{
		writer: cpio.NewWriter(w),
		dirs:   make(map[string]bool),
	}
}

// AddFile adds a regular file to the archive, creating parent directory
// entries that have not been written yet.
func (a *Archive) AddFile(path string, content []byte, mode os.FileMode, modTime time.Time) error {
	if err := a.addParents(path); err != nil {
		return err
	}

	hdr := &cpio.Header{
		Name:    path,
		Mode:    cpio.TypeReg | cpio.FileMode(mode.Perm()),
		Size:    int64(len(content)),
		ModTime: modTime,
	}

	if err := a.writer.WriteHeader(hdr); err != nil {
		return err
	}

	_, err := a.writer.Write(content)
	return err
}

// AddFileFromDisk adds a file from the host filesystem to the archive
func (a *Archive) AddFileFromDisk(srcPath, dstPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	return a.AddFile(dstPath, content, info.Mode(), info.ModTime())
}

// AddDirectory adds a directory entry to the archive
func (a *Archive) AddDirectory(path string, mode os.FileMode) error {
	if a.dirs[path] {
		return nil
	}
	hdr := &cpio.Header{
		Name: path,
		Mode: cpio.TypeDir | cpio.FileMode(mode.Perm()),
	}
	if err := a.writer.WriteHeader(hdr); err != nil {
		return err
	}
	a.dirs[path] = true
	return nil
}

func (a *Archive) addParents(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "/" || a.dirs[dir] {
		return nil
	}
	if err := a.addParents(dir); err != nil {
		return err
	}
	return a.AddDirectory(dir, 0755)
}

// Close finalizes the archive
func (a *Archive) Close() error {
	return a.writer.Close()
}
