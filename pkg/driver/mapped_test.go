package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ReadsFileContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.bin")
	want := []byte("mach-o object bytes go here")
	require.NoError(t, os.WriteFile(path, want, 0o644))

	mapped, err := Open(path)
	require.NoError(t, err)
	defer mapped.Close()

	assert.Equal(t, want, mapped.Bytes)
}

func TestOpen_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Open(path)
	assertIsError(t, err, ErrEmptyFile)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	assert.Error(t, err)
}
