//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import (
	"bufio"
	"os"
)

func withEchoDisabled(_ *os.File, _ *bufio.Reader, _ func(*bufio.Reader) (string, error)) (string, error) {
	return "", errNotTerminal
}
