// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads answers line by line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the terminal used for hidden input, -1 when input is not a terminal.
	fd int
}

// NewPrompter prompts on stdout and reads stdin.
func NewPrompter() *Prompter {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fd = -1
	}
	return &Prompter{in: bufio.NewReader(os.Stdin), out: os.Stdout, fd: fd}
}

// NewPrompterFrom reads r and writes prompts to w. Secrets are read as plain lines.
func NewPrompterFrom(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w, fd: -1}
}

// Out is where prompts are written.
func (p *Prompter) Out() io.Writer { return p.out }

// Line prints label and returns the trimmed answer. A final line without a
// newline is accepted; io.EOF is returned only when nothing was read.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Default is Line with a fallback shown in brackets and used for an empty answer.
func (p *Prompter) Default(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]: ", label, def)
	} else {
		label += ": "
	}
	s, err := p.Line(label)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// Secret reads an answer without echo when attached to a terminal.
func (p *Prompter) Secret(label string) (string, error) {
	if p.fd < 0 {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
