package phonebook

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

var fixedToday = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func newRecord(t *testing.T, name string, birthday string, phones ...string) *types.Record {
	t.Helper()
	n, err := types.NewPersonName(name)
	require.NoError(t, err)
	var ps []types.PhoneNumber
	for _, raw := range phones {
		p, err := types.NewPhoneNumber(raw)
		require.NoError(t, err)
		ps = append(ps, p)
	}
	var b *types.Birthday
	if birthday != "" {
		bd := types.NewBirthday(birthday)
		b = &bd
	}
	return types.NewRecord(n, ps, b)
}

func newStore(t *testing.T, records ...*types.Record) *Store {
	t.Helper()
	s := New()
	s.Now = func() time.Time { return fixedToday }
	for _, r := range records {
		s.AddRecord(r)
	}
	return s
}

func TestStoreAddAndLookup(t *testing.T) {
	s := newStore(t, newRecord(t, "John", "", "12345"))

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("John"))

	phones, err := s.PhonesOf("John")
	require.NoError(t, err)
	assert.Equal(t, []string{"12345"}, phones)

	r, err := s.Lookup("John")
	require.NoError(t, err)
	assert.Equal(t, "John", r.Name.String())
}

func TestStoreLookupComposesCombiningMarks(t *testing.T) {
	s := newStore(t, newRecord(t, "Jose\u0301", "", "123"))

	assert.True(t, s.Contains("Jos\u00e9"))
	assert.True(t, s.Contains("Jose\u0301"))

	phones, err := s.PhonesOf("Jose\u0301")
	require.NoError(t, err)
	assert.Equal(t, []string{"123"}, phones)
}

func TestStoreLookupMissing(t *testing.T) {
	s := newStore(t)

	_, err := s.Lookup("Ghost")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = s.PhonesOf("Ghost")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestStoreAddRecordOverwritesInPlace(t *testing.T) {
	s := newStore(t,
		newRecord(t, "Ann", "", "1"),
		newRecord(t, "Bob", "", "2"),
	)
	s.AddRecord(newRecord(t, "Ann", "", "3"))

	assert.Equal(t, 2, s.Len())
	phones, err := s.PhonesOf("Ann")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, phones)

	var names []string
	for r := range s.Records() {
		names = append(names, r.Name.String())
	}
	assert.Equal(t, []string{"Ann", "Bob"}, names)
}

func TestStorePaginate(t *testing.T) {
	sep := strings.Repeat("-", 50) + "\n"
	a := newRecord(t, "Ann", "", "1")
	b := newRecord(t, "Bob", "", "2")
	c := newRecord(t, "Cid", "", "3")

	tests := []struct {
		name     string
		records  []*types.Record
		pageSize int
		want     []string
	}{
		{
			name: "empty store yields one empty page",
			want: []string{sep},
		},
		{
			name:     "partial last page",
			records:  []*types.Record{a, b, c},
			pageSize: 2,
			want: []string{
				sep + a.String() + "\n" + b.String() + "\n",
				sep + c.String() + "\n",
			},
		},
		{
			name:     "full pages end with an empty trailing page",
			records:  []*types.Record{a, b},
			pageSize: 2,
			want: []string{
				sep + a.String() + "\n" + b.String() + "\n",
				sep,
			},
		},
		{
			name:     "non-positive page size uses the default",
			records:  []*types.Record{a, b, c},
			pageSize: 0,
			want: []string{
				sep + a.String() + "\n" + b.String() + "\n",
				sep + c.String() + "\n",
			},
		},
		{
			name:     "page size one",
			records:  []*types.Record{a, b},
			pageSize: 1,
			want: []string{
				sep + a.String() + "\n",
				sep + b.String() + "\n",
				sep,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, tt.records...)
			got := slices.Collect(s.Paginate(tt.pageSize, 0))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStorePaginateIsRestartable(t *testing.T) {
	s := newStore(t, newRecord(t, "Ann", "", "1"), newRecord(t, "Bob", "", "2"), newRecord(t, "Cid", "", "3"))
	pages := s.Paginate(2, 0)

	first := slices.Collect(pages)
	second := slices.Collect(pages)
	assert.Equal(t, first, second)

	// Stopping early must not disturb a later full pass.
	for range pages {
		break
	}
	assert.Equal(t, first, slices.Collect(pages))
}

func TestStorePaginateBirthdayWindow(t *testing.T) {
	sep := strings.Repeat("-", 50) + "\n"
	soon := newRecord(t, "Soon", "1990-10-25", "1")
	later := newRecord(t, "Later", "1990-12-25", "2")
	none := newRecord(t, "None", "", "3")
	broken := newRecord(t, "Broken", "25.10", "4")
	s := newStore(t, soon, later, none, broken)

	got := slices.Collect(s.Paginate(5, 10))
	assert.Equal(t, []string{sep + soon.String() + "\n"}, got)
}

func TestStoreRenderAll(t *testing.T) {
	assert.Equal(t, "Phone book is empty", newStore(t).RenderAll())

	a := newRecord(t, "Ann", "", "1")
	s := newStore(t, a)
	sep := strings.Repeat("-", 50) + "\n"
	assert.Equal(t, "List of all users:\n"+sep+a.String()+"\n", s.RenderAll())
}

func TestStoreFindSubstring(t *testing.T) {
	a := newRecord(t, "Ann", "1990-01-01", "12345")
	b := newRecord(t, "Bob", "", "67890")
	s := newStore(t, a, b)

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "matches name", text: "Ann", want: a.String() + "\n"},
		{name: "matches phone digits", text: "789", want: b.String() + "\n"},
		{name: "matches every record", text: "name: ", want: a.String() + "\n" + b.String() + "\n"},
		{name: "case sensitive", text: "ann", want: `There are no "ann" symbols in the Phonebook`},
		{name: "no match", text: "zzz", want: `There are no "zzz" symbols in the Phonebook`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.FindSubstring(tt.text))
		})
	}
}

func TestStoreView(t *testing.T) {
	assert.Equal(t, "Phone book is empty", newStore(t).View())

	a := newRecord(t, "Ann", "", "1")
	b := newRecord(t, "Bobby", "", "2")
	s := newStore(t, a, b)

	want := "   Ann    : " + a.String() + "\n" + "  Bobby   : " + b.String()
	assert.Equal(t, want, s.View())
}
