package oled

import (
	"bytes"
	"errors"
)

var errTransport = errors.New("transport: i/o error")

type transfer struct {
	command bool
	bytes   []byte
}

// fakeConn records transfers. When failAfter is positive the transfer with that
// (1-based) sequence number fails with errTransport.
type fakeConn struct {
	transfers []transfer
	calls     int
	failAfter int
	closed    int
}

func (c *fakeConn) String() string { return "fake" }

func (c *fakeConn) Close() error {
	c.closed++
	return nil
}

func (c *fakeConn) record(command bool, b []byte) error {
	c.calls++
	if c.failAfter > 0 && c.calls == c.failAfter {
		return errTransport
	}
	c.transfers = append(c.transfers, transfer{command: command, bytes: bytes.Clone(b)})
	return nil
}

func (c *fakeConn) Command(cmd ...byte) error { return c.record(true, cmd) }

func (c *fakeConn) Data(data []byte) error { return c.record(false, data) }

func (c *fakeConn) reset() {
	c.transfers = nil
	c.calls = 0
	c.failAfter = 0
}

func (c *fakeConn) commands() (out [][]byte) {
	for _, t := range c.transfers {
		if t.command {
			out = append(out, t.bytes)
		}
	}
	return
}

func (c *fakeConn) data() (out []byte) {
	for _, t := range c.transfers {
		if !t.command {
			out = append(out, t.bytes...)
		}
	}
	return
}
