// Package transport wires a connection's byte stream (a plain TCP socket,
// a real serial/modem line, or a local raw tty) into a terminal.Terminal,
// and implements the modem AT-dial handshake the --modem flag waits for
// before the navigation loop starts.
package transport

import (
	"bufio"
	"io"
	"regexp"

	"github.com/lestrrat-go/pdebug"

	"github.com/dostermann/bildschirmtext/terminal"
)

// dialCommand matches an AT dial command, e.g. "ATD" or "ATX3D". Anything
// else read while waiting resets the accumulated line.
var dialCommand = regexp.MustCompile(`^AT *(X\d)? *D`)

// WaitForDialCommand echoes bytes read from r to w until a line matching
// the AT dial grammar is seen, then returns. This lets a modem attached
// to the byte stream complete its call-answering handshake before the
// navigation loop takes over the same stream.
func WaitForDialCommand(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	var line []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		if _, err := w.Write([]byte{b}); err != nil {
			return err
		}
		switch {
		case b == '\n' || b == '\r':
			if pdebug.Enabled {
				pdebug.Printf("transport: modem line %q", string(line))
			}
			if dialCommand.Match(line) {
				return nil
			}
			line = line[:0]
		case b >= 0x20:
			line = append(line, b)
		}
	}
}

// New wraps an io.Reader/io.Writer pair (a net.Conn, a serial port, or a
// local tty) as a terminal.Terminal, buffering writes so a page's bytes
// go out in as few writes as the underlying stream allows.
func New(r io.Reader, w io.Writer) terminal.Terminal {
	return terminal.New(r, bufio.NewWriter(w))
}
