package types

import "errors"

// Command-facing errors. The dispatcher maps each of these to a fixed
// user-visible message.
var (
	ErrValidation     = errors.New("invalid value")
	ErrNotFound       = errors.New("no such name in phonebook")
	ErrArgument       = errors.New("too few arguments")
	ErrUnknownCommand = errors.New("no such command")
)

// Days-to-birthday results that are not day counts.
var (
	ErrNoBirthday      = errors.New("no birthday recorded")
	ErrInvalidBirthday = errors.New("birthday is not in YYYY-MM-DD form")
)
