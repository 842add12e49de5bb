package types

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// BirthdayLayout is the canonical stored form of a birthday (YYYY-MM-DD).
const BirthdayLayout = "2006-01-02"

// PersonName is a contact name made only of letters. It is the unique key
// of a Record in the phone book.
type PersonName struct {
	value string
}

// NewPersonName returns a PersonName for raw. Returns ErrValidation if raw
// is empty or contains anything other than letters. Input whose letters are
// written with combining marks is NFC-composed before the check, so "Jose"
// followed by U+0301 is accepted as "José".
func NewPersonName(raw string) (PersonName, error) {
	value := raw
	if !isLetters(value) {
		value = norm.NFC.String(raw)
	}
	if !isLetters(value) {
		return PersonName{}, fmt.Errorf("%w: name %q", ErrValidation, raw)
	}
	return PersonName{value: value}, nil
}

// String returns the stored name.
func (n PersonName) String() string { return n.value }

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// PhoneNumber is a string of ASCII digits that may carry a leading "+" and
// parenthesized groups, e.g. +380(12)3456789.
type PhoneNumber struct {
	value string
}

// phoneDecoration lists the characters ignored when validating a phone number.
var phoneDecoration = strings.NewReplacer("+", "", "(", "", ")", "")

// NewPhoneNumber returns a PhoneNumber for raw. Returns ErrValidation when,
// after removing every "+", "(" and ")", nothing is left or anything other
// than a decimal digit remains.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	digits := phoneDecoration.Replace(raw)
	if digits == "" {
		return PhoneNumber{}, fmt.Errorf("%w: phone %q", ErrValidation, raw)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return PhoneNumber{}, fmt.Errorf("%w: phone %q", ErrValidation, raw)
		}
	}
	return PhoneNumber{value: raw}, nil
}

// String returns the phone number exactly as entered.
func (p PhoneNumber) String() string { return p.value }

// Birthday keeps the raw text a user entered for a birthday together with
// the date it parsed to, if any.
type Birthday struct {
	raw  string
	date time.Time
	ok   bool
}

// NewBirthday stores raw unchanged whether or not it parses as YYYY-MM-DD.
// A malformed value surfaces later as ErrInvalidBirthday from
// Record.DaysToBirthday.
func NewBirthday(raw string) Birthday {
	b := Birthday{raw: raw}
	if d, err := time.Parse(BirthdayLayout, raw); err == nil {
		b.date, b.ok = d, true
	}
	return b
}

// ParseBirthday is the strict form of NewBirthday. Returns ErrValidation if
// raw is not a YYYY-MM-DD date.
func ParseBirthday(raw string) (Birthday, error) {
	b := NewBirthday(raw)
	if !b.ok {
		return Birthday{}, fmt.Errorf("%w: birthday %q", ErrValidation, raw)
	}
	return b, nil
}

// String returns the birthday exactly as entered.
func (b Birthday) String() string { return b.raw }

// Date returns the parsed date and whether the raw text was a valid date.
func (b Birthday) Date() (time.Time, bool) { return b.date, b.ok }
