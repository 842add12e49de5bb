package types

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is one contact: a name, an ordered list of phone numbers and an
// optional birthday. A nil Birthday means none was recorded.
type Record struct {
	ID       string        // UUID v7, generated on creation.
	Name     PersonName    // Unique key in the phone book.
	Phones   []PhoneNumber // In insertion order; duplicates allowed.
	Birthday *Birthday
}

// NewRecord creates a Record with a freshly generated ID.
func NewRecord(name PersonName, phones []PhoneNumber, birthday *Birthday) *Record {
	return &Record{
		ID:       NewID(),
		Name:     name,
		Phones:   phones,
		Birthday: birthday,
	}
}

// NewID generates a new UUID v7 for record IDs.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// AddPhone appends p to the phone list. No duplicate check is made.
func (r *Record) AddPhone(p PhoneNumber) {
	r.Phones = append(r.Phones, p)
}

// DeletePhone removes every phone whose value equals p. A phone that is
// not on the record is a no-op.
func (r *Record) DeletePhone(p PhoneNumber) {
	r.Phones = slices.DeleteFunc(r.Phones, func(q PhoneNumber) bool {
		return q.value == p.value
	})
}

// ChangePhone replaces old with replacement. If old is absent this is a
// plain add.
func (r *Record) ChangePhone(old, replacement PhoneNumber) {
	r.DeletePhone(old)
	r.AddPhone(replacement)
}

// PhoneValues returns the phone numbers as strings, in order.
func (r *Record) PhoneValues() []string {
	out := make([]string, len(r.Phones))
	for i, p := range r.Phones {
		out[i] = p.value
	}
	return out
}

// DaysToBirthday returns the number of whole days from today until the next
// occurrence of the birthday's month and day, zero when it is today. The
// year wraps when this year's date has already passed. A 29 February
// birthday falls on 1 March in common years.
//
// Returns ErrNoBirthday when none is recorded and ErrInvalidBirthday when
// the stored text is not YYYY-MM-DD.
func (r *Record) DaysToBirthday(today time.Time) (int, error) {
	if r.Birthday == nil {
		return 0, ErrNoBirthday
	}
	born, ok := r.Birthday.Date()
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBirthday, r.Birthday.raw)
	}

	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	next := time.Date(y, born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(start) {
		next = time.Date(y+1, born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(start).Hours() / 24), nil
}

// String renders the record as
// "name: <name>, phone: [<phones>], birthday: <birthday>".
func (r *Record) String() string {
	birthday := ""
	if r.Birthday != nil {
		birthday = r.Birthday.raw
	}
	return fmt.Sprintf("name: %s, phone: [%s], birthday: %s",
		r.Name.value, strings.Join(r.PhoneValues(), ", "), birthday)
}
