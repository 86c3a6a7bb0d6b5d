// File: internal/prompt/prompt.go

// Package prompt handles the driver's interactive exchanges with the
// operator: free-text input, masked secrets, and yes/no confirmations. The
// Prompter interface exists so stages can be exercised in tests without a
// terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter is the operator-interaction surface used by the pipeline stages.
type Prompter interface {
	// Line prints the prompt and reads one line of visible input.
	Line(prompt string) (string, error)
	// Secret prints the prompt and reads input without echoing it.
	Secret(prompt string) (string, error)
	// Confirm prints the prompt with a "(y/n)" suffix and reports whether
	// the operator answered affirmatively.
	Confirm(prompt string) (bool, error)
}

// Terminal is the production Prompter, reading from stdin and writing to
// stdout.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal builds a Prompter over the process's stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

// NewWithStreams builds a Prompter over explicit streams; used by tests.
func NewWithStreams(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (t *Terminal) Line(prompt string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) Secret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// Piped stdin: fall back to a plain read.
		return t.Line(prompt)
	}
	fmt.Fprintf(t.out, "%s: ", prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

func (t *Terminal) Confirm(prompt string) (bool, error) {
	answer, err := t.Line(prompt + " (y/n)")
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}
