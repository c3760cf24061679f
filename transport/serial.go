//go:build linux

package transport

import (
	serial "github.com/daedaluz/goserial"

	"github.com/dostermann/bildschirmtext/terminal"
)

// OpenSerial opens a real serial device (e.g. a modem attached to
// /dev/ttyUSB0) as a terminal.Terminal. It is the Linux-only counterpart
// to New for deployments that talk to physical BTX decoders over a serial
// line rather than a TCP socket.
func OpenSerial(device string) (terminal.Terminal, func() error, error) {
	port, err := serial.Open(device, serial.NewOptions())
	if err != nil {
		return nil, nil, err
	}
	if err := port.MakeRaw(); err != nil {
		_ = port.Close()
		return nil, nil, err
	}
	return New(port, port), port.Close, nil
}
