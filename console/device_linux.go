//go:build linux

package console

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Setup opens a console device (see Open) and redirects stdout/stderr to it
func Setup(paths ...string) (*os.File, error) {
	fd, err := Open(paths...)
	if err != nil {
		return nil, err
	}
	if err := unix.Dup3(int(fd.Fd()), 1, 0); err != nil {
		fd.Close()
		return nil, fmt.Errorf("redirect stdout: %w", err)
	}
	if err := unix.Dup3(int(fd.Fd()), 2, 0); err != nil {
		fd.Close()
		return nil, fmt.Errorf("redirect stderr: %w", err)
	}
	return fd, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	return err == nil
}
