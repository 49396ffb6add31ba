package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errNotTerminal = errors.New("stdin is not a terminal")

// PINPrompt asks for a PIN after printing label.
type PINPrompt interface {
	ReadPIN(label string) (string, error)
}

// TerminalPrompt reads PINs from stdin without echo. When stdin is not a terminal
// (piped input, CI) it falls back to plain line reads.
type TerminalPrompt struct {
	stdin  *os.File
	out    io.Writer
	reader *bufio.Reader
}

func NewTerminalPrompt(stdin *os.File, out io.Writer) *TerminalPrompt {
	return &TerminalPrompt{
		stdin:  stdin,
		out:    out,
		reader: bufio.NewReader(stdin),
	}
}

func (prompt *TerminalPrompt) ReadPIN(label string) (string, error) {
	fmt.Fprint(prompt.out, label)

	line, err := withEchoDisabled(prompt.stdin, prompt.reader, readLine)
	if errors.Is(err, errNotTerminal) {
		return readLine(prompt.reader)
	}
	fmt.Fprintln(prompt.out)
	return line, err
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}
