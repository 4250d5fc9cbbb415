// Package prompt reads secrets from the user when they are not passed as flags.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmpty is returned when the user enters nothing.
var ErrEmpty = errors.New("prompt: empty input")

// readPassword and isTerminal are test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Prompter asks the user for a secret value.
type Prompter interface {
	Secret(label string) (string, error)
}

// Terminal prompts on in/out. When in is a terminal the input is read
// without echo; otherwise a single line is read, which lets scripts pipe
// secrets in.
type Terminal struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminal returns a Terminal reading from in and writing prompts to out.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, reader: bufio.NewReader(in)}
}

// Secret prints "label: " and reads the answer.
func (t *Terminal) Secret(label string) (string, error) {
	if _, err := fmt.Fprint(t.out, label+": "); err != nil {
		return "", err
	}

	var value string
	fd := int(t.in.Fd())
	if isTerminal(fd) {
		b, err := readPassword(fd)
		fmt.Fprintln(t.out)
		if err != nil {
			return "", err
		}
		value = string(b)
	} else {
		line, err := t.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return "", ErrEmpty
			}
			return "", err
		}
		value = strings.TrimRight(line, "\r\n")
	}

	if value == "" {
		return "", ErrEmpty
	}

	return value, nil
}
