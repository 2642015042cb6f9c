package yamlfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Names []string `yaml:"names"`
}

func TestFile_MissingAndEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	missing := NewFile[doc](filepath.Join(dir, "missing.yml"))
	got, err := missing.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Names)

	emptyPath := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(emptyPath, []byte("\n  \n"), 0o644))

	got, err = NewFile[doc](emptyPath).Load()
	require.NoError(t, err)
	assert.Empty(t, got.Names)
}

func TestFile_UpdateCreatesDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "data", "names.yml")
	f := NewFile[doc](path)

	require.NoError(t, f.Update(func(d *doc) error {
		d.Names = append(d.Names, "a", "b")
		return nil
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "names:\n  - a\n  - b\n", string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must be renamed away")
}

func TestFile_UpdateErrorWritesNothing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "names.yml")
	f := NewFile[doc](path)

	boom := errors.New("boom")
	err := f.Update(func(d *doc) error {
		d.Names = []string{"lost"}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFile_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "names.yml")
	require.NoError(t, os.WriteFile(path, []byte("names: [unterminated"), 0o644))

	_, err := NewFile[doc](path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
