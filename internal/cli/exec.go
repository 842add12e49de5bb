package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command words...>",
		Short: "Run a single phone book command and save",
		Example: `  phonebook exec add user John 12345 1990-05-17
  phonebook exec show all`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.dispatcher.Execute(strings.Join(args, " ")))
			return s.close(ctx)
		},
	}
}
