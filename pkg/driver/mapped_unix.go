//go:build unix

package driver

import (
	"os"

	"golang.org/x/sys/unix"
)

func openMapped(path string, size int64) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &MappedFile{
		Bytes: data,
		close: func() error {
			unmapErr := unix.Munmap(data)
			closeErr := f.Close()
			if unmapErr != nil {
				return unmapErr
			}
			return closeErr
		},
	}, nil
}
