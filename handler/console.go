package handler

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console reads line-based input and writes prompts and messages.
// Once input is exhausted every further read returns "" and Closed reports
// true.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	closed  bool
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{scanner: bufio.NewScanner(in), out: out}
}

// ReadLine returns the next trimmed input line and false once input is
// exhausted.
func (c *Console) ReadLine() (string, bool) {
	if c.closed {
		return "", false
	}
	if !c.scanner.Scan() {
		c.closed = true
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

// Prompt prints label on its own line and reads the answer.
func (c *Console) Prompt(label string) string {
	c.Println(label)
	line, _ := c.ReadLine()
	return line
}

func (c *Console) Closed() bool {
	return c.closed
}

func (c *Console) Out() io.Writer {
	return c.out
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}
