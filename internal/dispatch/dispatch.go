// Package dispatch turns free-text command lines into phone book operations.
//
// Commands are held in a static ordered table of phrases. A line selects the
// first phrase, in table order, that it starts with (case-insensitively) and
// that is followed by the end of the line or a space. Phrases that share a
// prefix are listed longest first, so "show all" wins over "show". The rest
// of the line is split on spaces into the handler's arguments.
package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Fixed user-facing messages for the error kinds a handler may return.
const (
	MsgArgument       = "Please, enter the name and number"
	MsgValidation     = "Enter a valid number"
	MsgNotFound       = "No such name in phonebook"
	MsgUnknownCommand = "No such command"
)

// State is the dispatcher lifecycle: Running until an end command executes.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// Handler executes one command with the tokens that followed its phrase and
// returns the text to display.
type Handler func(args []string) (string, error)

// Command is one row of the command table.
type Command struct {
	Name    string
	Phrases []string
	Handler Handler
	// End marks the command that terminates the session.
	End bool
}

// Options configures a Dispatcher.
type Options struct {
	// StrictBirthday rejects birthdays that are not YYYY-MM-DD instead of
	// storing them as entered.
	StrictBirthday bool
	Logger         *slog.Logger
}

// Dispatcher resolves command lines against the command table and runs them
// against a single phone book.
type Dispatcher struct {
	commands []Command
	state    State
	logger   *slog.Logger
}

// New creates a Dispatcher whose handlers operate on book.
func New(book *phonebook.Store, opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handlers{book: book, strictBirthday: opts.StrictBirthday}
	return &Dispatcher{
		commands: h.table(),
		logger:   logger,
	}
}

// Commands returns the command table in resolution order.
func (d *Dispatcher) Commands() []Command {
	return d.commands
}

// State returns the current lifecycle state.
func (d *Dispatcher) State() State {
	return d.state
}

// Resolve finds the command for line and splits the remainder into
// arguments. Returns types.ErrUnknownCommand if no phrase matches.
func (d *Dispatcher) Resolve(line string) (Command, []string, error) {
	line = strings.TrimSpace(line)
	for _, cmd := range d.commands {
		for _, phrase := range cmd.Phrases {
			if rest, ok := cutPhrase(line, phrase); ok {
				return cmd, strings.Fields(rest), nil
			}
		}
	}
	return Command{}, nil, fmt.Errorf("%w: %q", types.ErrUnknownCommand, line)
}

// cutPhrase reports whether line starts with phrase as a whole word and
// returns what follows it.
func cutPhrase(line, phrase string) (string, bool) {
	if len(line) < len(phrase) || !strings.EqualFold(line[:len(phrase)], phrase) {
		return "", false
	}
	rest := line[len(phrase):]
	if rest != "" && rest[0] != ' ' {
		return "", false
	}
	return rest, true
}

// Execute resolves and runs line, translating any error into its fixed
// message. Executing an end command moves the dispatcher to Terminated.
func (d *Dispatcher) Execute(line string) string {
	cmd, args, err := d.Resolve(line)
	if err != nil {
		d.logger.Debug("unresolved command", "line", line)
		return Translate(err)
	}

	out, err := cmd.Handler(args)
	if err != nil {
		d.logger.Debug("command failed", "command", cmd.Name, "args", args, "err", err)
		out = Translate(err)
	} else {
		d.logger.Debug("command executed", "command", cmd.Name, "args", args)
	}

	if cmd.End {
		d.state = Terminated
	}
	return out
}

// Translate maps err to the message shown to the user. Errors outside the
// known kinds are shown with their text.
func Translate(err error) string {
	switch {
	case errors.Is(err, types.ErrArgument):
		return MsgArgument
	case errors.Is(err, types.ErrValidation):
		return MsgValidation
	case errors.Is(err, types.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, types.ErrUnknownCommand):
		return MsgUnknownCommand
	default:
		return "Error: " + err.Error()
	}
}
