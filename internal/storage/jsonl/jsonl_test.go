package jsonl

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/internal/storage"
	"github.com/mesh-intelligence/phonebook/internal/storage/storagetest"
)

func TestRepository(t *testing.T) {
	storagetest.Run(t, func(t *testing.T, dir string) storage.Repository {
		repo, err := Open(dir, nil)
		require.NoError(t, err)
		return repo
	})
}

func TestOpenCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	repo, err := Open(dir, nil)
	require.NoError(t, err)
	defer repo.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, FileName), repo.Path())
}

func TestSaveWritesOneLinePerRecord(t *testing.T) {
	repo, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	defer repo.Close()

	book := storagetest.SampleBook(t)
	require.NoError(t, repo.Save(context.Background(), book))

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, book.Len())
	assert.Contains(t, lines[0], `"name":"John"`)

	// No temp files are left behind.
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(repo.Path()), ".jsonl-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestLoadSkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		`{"record_id":"a","name":"Ann","phones":["1"]}`,
		`not json`,
		``,
		`{"record_id":"b","name":"Bob7","phones":["2"]}`,
		`{"record_id":"c","name":"Cid","phones":["3"],"birthday":"2000-01-02"}`,
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	repo, err := Open(dir, nil)
	require.NoError(t, err)
	defer repo.Close()

	book := phonebook.New()
	require.NoError(t, repo.Load(context.Background(), book))
	assert.Equal(t, 2, book.Len())
	assert.True(t, book.Contains("Ann"))
	assert.True(t, book.Contains("Cid"))
	assert.False(t, book.Contains("Bob7"))
}
