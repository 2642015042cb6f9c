package tty

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const (
	ansiHideCursor = "\033[?25l"
	ansiShowCursor = "\033[?25h"
)

// Terminal is the controlling terminal used by the interactive picker.
type Terminal interface {
	// IsTerminal reports whether input is attached to a terminal.
	IsTerminal() bool
	// MakeRaw switches input to raw mode. The returned func restores the
	// previous mode and must be called exactly once.
	MakeRaw() (restore func() error, err error)
	Input() io.Reader
	Output() io.Writer
	// Width is the number of columns of the output, or 0 when unknown.
	Width() int
}

// Console is a Terminal backed by two open files, usually stdin and stderr.
type Console struct {
	in  *os.File
	out *os.File
}

var _ Terminal = (*Console)(nil)

// NewConsole returns a Console reading keys from in and drawing to out.
func NewConsole(in, out *os.File) *Console {
	return &Console{in: in, out: out}
}

// Stdio reads from stdin and draws on stderr so stdout stays pipeable.
func Stdio() *Console {
	return NewConsole(os.Stdin, os.Stderr)
}

func (c *Console) IsTerminal() bool {
	fd := c.in.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *Console) MakeRaw() (func() error, error) {
	fd := int(c.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	_, _ = fmt.Fprint(c.out, ansiHideCursor)

	return func() error {
		_, _ = fmt.Fprint(c.out, ansiShowCursor)
		return term.Restore(fd, oldState)
	}, nil
}

func (c *Console) Input() io.Reader  { return c.in }
func (c *Console) Output() io.Writer { return c.out }

func (c *Console) Width() int {
	w, _, err := term.GetSize(int(c.out.Fd()))
	if err != nil {
		return 0
	}
	return w
}
