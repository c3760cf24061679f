package transport

import (
	"os"

	"golang.org/x/term"
)

// RawTTY puts a local terminal (e.g. os.Stdin when btxd is run directly
// against a user's console rather than over a modem/socket) into raw
// mode for the duration of a connection, returning a restore function to
// call on disconnect.
func RawTTY(f *os.File) (restore func() error, err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() error { return nil }, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, state) }, nil
}
