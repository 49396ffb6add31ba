//go:build windows

package cli

import (
	"bufio"
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// withEchoDisabled runs read with console echo turned off on stdin.
func withEchoDisabled(stdin *os.File, reader *bufio.Reader, read func(*bufio.Reader) (string, error)) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}

	handle := windows.Handle(stdin.Fd())
	var originalMode uint32
	if err := windows.GetConsoleMode(handle, &originalMode); err != nil {
		return "", errNotTerminal
	}

	if err := windows.SetConsoleMode(handle, originalMode&^windows.ENABLE_ECHO_INPUT); err != nil {
		return "", err
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, originalMode)
	}()

	return read(reader)
}
