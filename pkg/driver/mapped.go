// Package driver owns the resource acquisition and release around the
// input file: opening it, mapping its bytes into memory, and optionally
// re-running a decode callback whenever the file changes on disk.
package driver

import "os"

// MappedFile is an open input file's byte image plus the release function
// that returns its backing resource (an mmap region, or nothing at all on
// platforms without mmap support) to the OS.
type MappedFile struct {
	Bytes []byte
	close func() error
}

// Close releases the file's backing resource. It is safe to call exactly
// once; the MappedFile must not be used afterward.
func (m *MappedFile) Close() error {
	if m.close == nil {
		return nil
	}
	return m.close()
}

// Open opens path and maps its contents read-only into memory. On
// platforms without mmap support it falls back to reading the whole file
// into a heap buffer; callers only ever see a []byte either way.
func Open(path string) (*MappedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, ErrEmptyFile
	}

	return openMapped(path, info.Size())
}
