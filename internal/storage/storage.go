// Package storage defines how a phone book is persisted between sessions.
// A Repository loads the whole book once at startup and saves it once at
// shutdown; backends live in the subpackages.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Repository persists a complete phone book.
type Repository interface {
	// Load adds every stored record to book in stored order. A repository
	// with nothing saved yet leaves book empty and returns nil.
	Load(ctx context.Context, book *phonebook.Store) error

	// Save replaces the stored state with the contents of book. The write
	// is all-or-nothing.
	Save(ctx context.Context, book *phonebook.Store) error

	// Close releases backend resources. Idempotent.
	Close() error
}

// ErrRepositoryClosed is returned by operations on a closed Repository.
var ErrRepositoryClosed = errors.New("repository is closed")

// Entry is the stored form of a Record shared by every backend.
type Entry struct {
	RecordID string   `json:"record_id"`
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday *string  `json:"birthday,omitempty"`
}

// EntryOf converts a Record to its stored form.
func EntryOf(r *types.Record) Entry {
	e := Entry{
		RecordID: r.ID,
		Name:     r.Name.String(),
		Phones:   r.PhoneValues(),
	}
	if r.Birthday != nil {
		b := r.Birthday.String()
		e.Birthday = &b
	}
	return e
}

// Record rebuilds the Record, validating the name and phones again.
// Birthdays are restored as entered. An entry without an ID gets a new one.
func (e Entry) Record() (*types.Record, error) {
	name, err := types.NewPersonName(e.Name)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", e.RecordID, err)
	}
	phones := make([]types.PhoneNumber, 0, len(e.Phones))
	for _, raw := range e.Phones {
		p, err := types.NewPhoneNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.RecordID, err)
		}
		phones = append(phones, p)
	}
	r := types.NewRecord(name, phones, nil)
	if e.RecordID != "" {
		r.ID = e.RecordID
	}
	if e.Birthday != nil {
		b := types.NewBirthday(*e.Birthday)
		r.Birthday = &b
	}
	return r, nil
}

// Entries returns the stored form of every record in book, in order.
func Entries(book *phonebook.Store) []Entry {
	entries := make([]Entry, 0, book.Len())
	for r := range book.Records() {
		entries = append(entries, EntryOf(r))
	}
	return entries
}
