package agent

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// A TerminalPrompter asks the user to confirm before files are written.
type TerminalPrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter(r io.Reader, w io.Writer) *TerminalPrompter {
	return &TerminalPrompter{r: bufio.NewReader(r), w: w}
}

// Confirm shows question to the user and reads a single line in reply.
// Only "y" or "yes" confirm; anything else, including the end of input,
// declines.
func (tp *TerminalPrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(tp.w, "%s [y/N] ", question)
	line, err := tp.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
