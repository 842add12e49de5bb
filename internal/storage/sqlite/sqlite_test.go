package sqlite

import (
	"context"
	"os"
	"path/filepath"
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

func TestOpenCreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	repo, err := Open(dir, nil)
	require.NoError(t, err)
	defer repo.Close()

	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)

	// Opening an existing database keeps the schema and its data.
	require.NoError(t, repo.Save(context.Background(), storagetest.SampleBook(t)))
	require.NoError(t, repo.Close())

	again, err := Open(dir, nil)
	require.NoError(t, err)
	defer again.Close()
	book := phonebook.New()
	require.NoError(t, again.Load(context.Background(), book))
	assert.Equal(t, storagetest.SampleBook(t).Len(), book.Len())
}

func TestSaveStoresPhonesInOrder(t *testing.T) {
	repo, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Save(context.Background(), storagetest.SampleBook(t)))

	rows, err := repo.db.Query(`SELECT p.number FROM phones p
		JOIN contacts c ON c.record_id = p.record_id
		WHERE c.name = ? ORDER BY p.position`, "John")
	require.NoError(t, err)
	defer rows.Close()

	var got []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		got = append(got, n)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"12345", "+380(12)3456789"}, got)
}
