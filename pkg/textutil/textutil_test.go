package textutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBinary_EmptyData(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary(nil))
	assert.False(t, IsBinary([]byte{}))
}

func TestIsBinary_PureText(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary([]byte("import os\n")))
}

func TestIsBinary_NullByte(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBinary([]byte("hello\x00world")))
}

func TestIsBinary_NullBeyondSniffWindow(t *testing.T) {
	t.Parallel()

	data := []byte(strings.Repeat("a", BinarySniffLength) + "\x00")
	assert.False(t, IsBinary(data))
}

func TestIsBinaryFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	text := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(text, []byte("package a\n"), 0o600))

	bin := filepath.Join(dir, "b.js")
	require.NoError(t, os.WriteFile(bin, []byte{0x7f, 'E', 'L', 'F', 0, 1}, 0o600))

	empty := filepath.Join(dir, "c.py")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	got, err := IsBinaryFile(text)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = IsBinaryFile(bin)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = IsBinaryFile(empty)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = IsBinaryFile(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
