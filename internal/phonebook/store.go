// Package phonebook holds the in-memory contact store: records keyed by
// name, kept in insertion order for paginated display.
package phonebook

import (
	"fmt"
	"iter"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Messages returned in place of an empty listing.
const (
	MsgEmpty      = "Phone book is empty"
	listingHeader = "List of all users:\n"
)

// pageSeparator opens every page produced by Paginate.
var pageSeparator = strings.Repeat("-", 50) + "\n"

// Store maps a contact name to its Record. It is not safe for concurrent
// use; the phone book runs one command at a time.
type Store struct {
	records map[string]*types.Record
	order   []string

	// PageSize is used by RenderAll. Values below one fall back to
	// types.DefaultPageSize.
	PageSize int

	// Now returns the current time for birthday filtering.
	Now func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		records:  make(map[string]*types.Record),
		PageSize: types.DefaultPageSize,
		Now:      time.Now,
	}
}

// AddRecord inserts r under its name. An existing record with the same name
// is replaced in place and keeps its position in the listing.
func (s *Store) AddRecord(r *types.Record) {
	key := r.Name.String()
	if _, ok := s.records[key]; !ok {
		s.order = append(s.order, key)
	}
	s.records[key] = r
}

// Contains reports whether a record exists for name.
func (s *Store) Contains(name string) bool {
	_, ok := s.records[keyOf(name)]
	return ok
}

// Lookup returns the record for name. Returns types.ErrNotFound if absent.
func (s *Store) Lookup(name string) (*types.Record, error) {
	r, ok := s.records[keyOf(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrNotFound, name)
	}
	return r, nil
}

// PhonesOf returns the phone numbers recorded for name.
// Returns types.ErrNotFound if absent.
func (s *Store) PhonesOf(name string) ([]string, error) {
	r, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	return r.PhoneValues(), nil
}

// keyOf returns the stored form of a typed name, so input with combining
// marks finds the record added under its composed form.
func keyOf(name string) string {
	if n, err := types.NewPersonName(name); err == nil {
		return n.String()
	}
	return name
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.order) }

// Records yields every record in insertion order.
func (s *Store) Records() iter.Seq[*types.Record] {
	return func(yield func(*types.Record) bool) {
		for _, key := range s.order {
			if !yield(s.records[key]) {
				return
			}
		}
	}
}

// Paginate yields blocks of up to pageSize rendered records, each opened by
// a separator line. When maxDaysToBirthday is positive only records whose
// birthday is known and at most that many days away are included. The last
// page is always yielded, so a caller may see a trailing page holding only
// the separator. The sequence can be ranged over any number of times.
func (s *Store) Paginate(pageSize, maxDaysToBirthday int) iter.Seq[string] {
	if pageSize < 1 {
		pageSize = types.DefaultPageSize
	}
	return func(yield func(string) bool) {
		var page strings.Builder
		page.WriteString(pageSeparator)
		n := 0
		for r := range s.Records() {
			if maxDaysToBirthday > 0 && !s.birthdayWithin(r, maxDaysToBirthday) {
				continue
			}
			page.WriteString(r.String())
			page.WriteByte('\n')
			n++
			if n < pageSize {
				continue
			}
			if !yield(page.String()) {
				return
			}
			page.Reset()
			page.WriteString(pageSeparator)
			n = 0
		}
		yield(page.String())
	}
}

func (s *Store) birthdayWithin(r *types.Record, days int) bool {
	left, err := r.DaysToBirthday(s.Now())
	return err == nil && left <= days
}

// RenderAll returns every record under a header, paged by s.PageSize, or
// MsgEmpty when the store has no records.
func (s *Store) RenderAll() string {
	return s.Render(s.PageSize, 0)
}

// Render is RenderAll with an explicit page size and birthday window.
func (s *Store) Render(pageSize, maxDaysToBirthday int) string {
	if s.Len() == 0 {
		return MsgEmpty
	}
	var b strings.Builder
	b.WriteString(listingHeader)
	for page := range s.Paginate(pageSize, maxDaysToBirthday) {
		b.WriteString(page)
	}
	return b.String()
}

// FindSubstring returns, one per line, the rendering of every record that
// contains text (case-sensitive). When nothing matches it returns a message
// saying so.
func (s *Store) FindSubstring(text string) string {
	var b strings.Builder
	for r := range s.Records() {
		rendered := r.String()
		if strings.Contains(rendered, text) {
			b.WriteString(rendered)
			b.WriteByte('\n')
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf(`There are no "%s" symbols in the Phonebook`, text)
	}
	return b.String()
}

// View lists every record as its name centered in ten columns, a colon, and
// the record rendering right-aligned in ten columns.
func (s *Store) View() string {
	if s.Len() == 0 {
		return MsgEmpty
	}
	lines := make([]string, 0, s.Len())
	for r := range s.Records() {
		lines = append(lines, center(r.Name.String(), 10)+": "+padLeft(r.String(), 10))
	}
	return strings.Join(lines, "\n")
}

func center(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func padLeft(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
