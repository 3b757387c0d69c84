package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "h1.example.com.cfg")

	require.NoError(t, WriteFileAtomic(dst, []byte("define host {\n}\n"), 0644))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "define host {\n}\n", string(content))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriteFileAtomic_CreatesParents(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "conf.d", "hosts", "h1.cfg")

	require.NoError(t, WriteFileAtomic(dst, []byte("x"), 0644))

	_, err := os.Stat(dst)
	require.NoError(t, err)
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "h1.cfg")
	require.NoError(t, os.WriteFile(dst, []byte("old content that is longer"), 0644))

	require.NoError(t, WriteFileAtomic(dst, []byte("new"), 0644))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestWriteFileAtomic_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFileAtomic(filepath.Join(dir, "a.cfg"), []byte("a"), 0644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.cfg", entries[0].Name())
}

func TestWriteFileAtomic_RejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.cfg")
	link := filepath.Join(dir, "link.cfg")
	require.NoError(t, os.WriteFile(target, []byte("keep"), 0644))
	require.NoError(t, os.Symlink(target, link))

	err := WriteFileAtomic(link, []byte("replace"), 0644)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSymlinkNotSupported))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(content))
}

func TestSameContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h1.cfg")

	same, err := SameContent(path, []byte("x"))
	require.NoError(t, err)
	assert.False(t, same, "missing file differs")

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	same, err = SameContent(path, []byte("x"))
	require.NoError(t, err)
	assert.True(t, same)

	same, err = SameContent(path, []byte("y"))
	require.NoError(t, err)
	assert.False(t, same)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.cfg")
	require.NoError(t, os.WriteFile(src, []byte("define service {\n}\n"), 0600))

	dst := filepath.Join(dir, "nested", "dst.cfg")
	require.NoError(t, CopyFile(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "define service {\n}\n", string(content))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCopyFile_Errors(t *testing.T) {
	dir := t.TempDir()

	err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))
	assert.True(t, os.IsNotExist(err))

	target := filepath.Join(dir, "target")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	err = CopyFile(link, filepath.Join(dir, "dst"))
	assert.True(t, errors.Is(err, ErrSymlinkNotSupported))
}
