//go:build !linux

package console

import (
	"errors"
	"io"
	"os"
)

// Setup is only supported on Linux
func Setup(paths ...string) (*os.File, error) {
	return nil, errors.New("console redirection not supported on this platform")
}

func isTerminal(w io.Writer) bool {
	return false
}
