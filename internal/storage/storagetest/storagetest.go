// Package storagetest holds the behavior every storage.Repository must show.
// Backend packages run it from their own tests.
package storagetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/internal/storage"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// OpenFunc opens a repository rooted at dir. Calling it twice with the same
// dir must reach the same stored data.
type OpenFunc func(t *testing.T, dir string) storage.Repository

// Run exercises open against the shared Repository contract.
func Run(t *testing.T, open OpenFunc) {
	t.Run("empty data dir loads an empty book", func(t *testing.T) {
		repo := open(t, t.TempDir())
		defer repo.Close()

		book := phonebook.New()
		require.NoError(t, repo.Load(context.Background(), book))
		assert.Equal(t, 0, book.Len())
	})

	t.Run("save and reload round-trips every field", func(t *testing.T) {
		dir := t.TempDir()
		book := SampleBook(t)

		repo := open(t, dir)
		require.NoError(t, repo.Save(context.Background(), book))
		require.NoError(t, repo.Close())

		reopened := open(t, dir)
		defer reopened.Close()
		loaded := phonebook.New()
		require.NoError(t, reopened.Load(context.Background(), loaded))

		assert.Equal(t, book.Len(), loaded.Len())
		assert.Equal(t, storage.Entries(book), storage.Entries(loaded))
	})

	t.Run("save replaces earlier state", func(t *testing.T) {
		dir := t.TempDir()
		repo := open(t, dir)
		defer repo.Close()

		require.NoError(t, repo.Save(context.Background(), SampleBook(t)))

		smaller := phonebook.New()
		smaller.AddRecord(record(t, "Solo", nil, "42"))
		require.NoError(t, repo.Save(context.Background(), smaller))

		loaded := phonebook.New()
		require.NoError(t, repo.Load(context.Background(), loaded))
		assert.Equal(t, storage.Entries(smaller), storage.Entries(loaded))
	})

	t.Run("empty book round-trips", func(t *testing.T) {
		dir := t.TempDir()
		repo := open(t, dir)
		defer repo.Close()

		require.NoError(t, repo.Save(context.Background(), SampleBook(t)))
		require.NoError(t, repo.Save(context.Background(), phonebook.New()))

		loaded := phonebook.New()
		require.NoError(t, repo.Load(context.Background(), loaded))
		assert.Equal(t, 0, loaded.Len())
	})

	t.Run("canceled context", func(t *testing.T) {
		repo := open(t, t.TempDir())
		defer repo.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, repo.Save(ctx, SampleBook(t)), context.Canceled)
		assert.ErrorIs(t, repo.Load(ctx, phonebook.New()), context.Canceled)
	})

	t.Run("closed repository", func(t *testing.T) {
		repo := open(t, t.TempDir())
		require.NoError(t, repo.Close())
		require.NoError(t, repo.Close(), "Close is idempotent")

		assert.ErrorIs(t, repo.Save(context.Background(), SampleBook(t)), storage.ErrRepositoryClosed)
		assert.ErrorIs(t, repo.Load(context.Background(), phonebook.New()), storage.ErrRepositoryClosed)
	})
}

// SampleBook returns a book covering every field shape: several phones, no
// phones, a valid birthday, a birthday kept as entered, and non-ASCII names.
func SampleBook(t *testing.T) *phonebook.Store {
	t.Helper()
	valid := types.NewBirthday("1990-05-17")
	loose := types.NewBirthday("17.05")

	book := phonebook.New()
	book.AddRecord(record(t, "John", &valid, "12345", "+380(12)3456789"))
	book.AddRecord(record(t, "Ann", nil))
	book.AddRecord(record(t, "Олена", &loose, "111", "111"))
	for i := range 5 {
		book.AddRecord(record(t, fmt.Sprintf("Bulk%c", 'a'+i), nil, fmt.Sprint(1000+i)))
	}
	return book
}

func record(t *testing.T, name string, birthday *types.Birthday, phones ...string) *types.Record {
	t.Helper()
	n, err := types.NewPersonName(name)
	require.NoError(t, err)
	ps := make([]types.PhoneNumber, 0, len(phones))
	for _, raw := range phones {
		p, err := types.NewPhoneNumber(raw)
		require.NoError(t, err)
		ps = append(ps, p)
	}
	return types.NewRecord(n, ps, birthday)
}
