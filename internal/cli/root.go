// Package cli implements the phonebook command-line interface. Run without
// a subcommand it starts the interactive session.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
}

var flags rootFlags

// errUser marks failures caused by how the command was invoked.
var errUser = errors.New("usage error")

// NewRootCmd creates the top-level "phonebook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "phonebook",
		Short: "A command-line address book",
		Long: "Phonebook stores names, phone numbers and birthdays.\n" +
			"Run it without arguments for an interactive session; type \"exit\" to save and quit.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/phonebook)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .phonebook-db)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: jsonl, sqlite or bolt")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newExecCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "phonebook:", err)
		if errors.Is(err, errUser) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
	os.Exit(exitSuccess)
}
