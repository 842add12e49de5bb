package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/internal/dispatch"
)

const prompt = ">>> "

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	loopErr := readEvalPrint(cmd.InOrStdin(), cmd.OutOrStdout(), s.dispatcher)
	return errors.Join(loopErr, s.close(ctx))
}

// readEvalPrint prompts for a line, executes it and prints the result until
// an end command runs or input is exhausted.
func readEvalPrint(in io.Reader, out io.Writer, d *dispatch.Dispatcher) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for d.State() == dispatch.Running {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fmt.Fprintln(out, d.Execute(scanner.Text()))
	}
	return nil
}
