package dispatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

type handlers struct {
	book           *phonebook.Store
	strictBirthday bool
}

// table lists the commands in resolution order.
func (h *handlers) table() []Command {
	return []Command{
		{Name: "hello", Phrases: []string{"hello", "hi"}, Handler: h.hello},
		{Name: "add user", Phrases: []string{"add user"}, Handler: h.addUser},
		{Name: "add number", Phrases: []string{"add number"}, Handler: h.addNumber},
		{Name: "change", Phrases: []string{"change"}, Handler: h.changeNumber},
		{Name: "delete", Phrases: []string{"delete"}, Handler: h.deleteNumber},
		{Name: "phone", Phrases: []string{"phone"}, Handler: h.phone},
		{Name: "days to birthday", Phrases: []string{"tell days to birthday"}, Handler: h.daysToBirthday},
		{Name: "show all", Phrases: []string{"show all", "show"}, Handler: h.showAll},
		{Name: "all users", Phrases: []string{"all users"}, Handler: h.view},
		{Name: "find", Phrases: []string{"find"}, Handler: h.find},
		{Name: "exit", Phrases: []string{"exit", "close", "good bye", ".", "bye"}, Handler: h.end, End: true},
	}
}

// need returns types.ErrArgument when fewer than n arguments were given.
func need(args []string, n int) error {
	if len(args) < n {
		return fmt.Errorf("%w: need %d, got %d", types.ErrArgument, n, len(args))
	}
	return nil
}

func (h *handlers) hello(args []string) (string, error) {
	return "How can I help you?", nil
}

func (h *handlers) end(args []string) (string, error) {
	return "Good bye", nil
}

// addUser takes a name followed by any number of phones and an optional
// birthday. Tokens that are valid phones become phones; the last token that
// is not becomes the birthday.
func (h *handlers) addUser(args []string) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	name, err := types.NewPersonName(args[0])
	if err != nil {
		return "Please enter a name", nil
	}
	if h.book.Contains(name.String()) {
		return fmt.Sprintf("The name %s already exists. Please use the 'change %s' command", name, name), nil
	}

	var phones []types.PhoneNumber
	var birthdayText string
	for _, arg := range args[1:] {
		if p, err := types.NewPhoneNumber(arg); err == nil {
			phones = append(phones, p)
			continue
		}
		birthdayText = arg
	}

	var birthday *types.Birthday
	if birthdayText != "" {
		b := types.NewBirthday(birthdayText)
		if h.strictBirthday {
			if b, err = types.ParseBirthday(birthdayText); err != nil {
				return "Enter a valid birthday in YYYY-MM-DD form", nil
			}
		}
		birthday = &b
	}

	h.book.AddRecord(types.NewRecord(name, phones, birthday))
	return fmt.Sprintf("Contact %s added successfully", name), nil
}

func (h *handlers) addNumber(args []string) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}
	r, err := h.book.Lookup(args[0])
	if err != nil {
		return "", err
	}
	p, err := types.NewPhoneNumber(args[1])
	if err != nil {
		return "", err
	}
	r.AddPhone(p)
	return fmt.Sprintf("Phone number %s is successfully added for user %s", p, r.Name), nil
}

func (h *handlers) deleteNumber(args []string) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}
	r, err := h.book.Lookup(args[0])
	if err != nil {
		return "", err
	}
	p, err := types.NewPhoneNumber(args[1])
	if err != nil {
		return "", err
	}
	r.DeletePhone(p)
	return fmt.Sprintf("Phone number %s is successfully deleted", p), nil
}

func (h *handlers) changeNumber(args []string) (string, error) {
	if err := need(args, 3); err != nil {
		return "", err
	}
	r, err := h.book.Lookup(args[0])
	if err != nil {
		return "", err
	}
	old, err := types.NewPhoneNumber(args[1])
	if err != nil {
		return "", err
	}
	replacement, err := types.NewPhoneNumber(args[2])
	if err != nil {
		return "", err
	}
	r.ChangePhone(old, replacement)
	return fmt.Sprintf("Phone number for %s is successfully changed from %s to %s", r.Name, old, replacement), nil
}

func (h *handlers) phone(args []string) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	phones, err := h.book.PhonesOf(args[0])
	if err != nil {
		return "", err
	}
	return "[" + strings.Join(phones, ", ") + "]", nil
}

func (h *handlers) daysToBirthday(args []string) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	r, err := h.book.Lookup(args[0])
	if err != nil {
		return "", err
	}
	days, err := r.DaysToBirthday(h.book.Now())
	switch {
	case errors.Is(err, types.ErrNoBirthday):
		return "No Birthday found", nil
	case errors.Is(err, types.ErrInvalidBirthday):
		return fmt.Sprintf("Birthday %s is not in YYYY-MM-DD form", r.Birthday), nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("Days left until birthday = %d", days), nil
}

// showAll accepts an optional page size and an optional birthday window in
// days. A window of 0 lists every record.
func (h *handlers) showAll(args []string) (string, error) {
	pageSize, maxDays := h.book.PageSize, 0
	var err error
	if len(args) > 0 {
		if pageSize, err = positiveInt(args[0]); err != nil {
			return "", err
		}
	}
	if len(args) > 1 {
		if maxDays, err = nonNegativeInt(args[1]); err != nil {
			return "", err
		}
	}
	return h.book.Render(pageSize, maxDays), nil
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a positive number", types.ErrValidation, s)
	}
	return n, nil
}

func nonNegativeInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a number of days", types.ErrValidation, s)
	}
	return n, nil
}

func (h *handlers) view(args []string) (string, error) {
	return h.book.View(), nil
}

func (h *handlers) find(args []string) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	return h.book.FindSubstring(strings.Join(args, " ")), nil
}
