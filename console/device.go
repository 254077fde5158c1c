package console

import (
	"fmt"
	"os"
)

// DefaultDevices are tried in order by Open when no paths are given
var DefaultDevices = []string{"/dev/console", "/dev/tty1", "/dev/ttyS0"}

// Open returns the first console device that can be opened for writing
func Open(paths ...string) (*os.File, error) {
	if len(paths) == 0 {
		paths = DefaultDevices
	}
	for _, path := range paths {
		fd, err := os.OpenFile(path, os.O_RDWR, 0)
		if err == nil {
			return fd, nil
		}
	}
	return nil, fmt.Errorf("no console device available")
}
