package conn

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// ErrDCPin is returned if no usable data/command pin was given.
var ErrDCPin = errors.New("conn: data/command (DC) GPIO pin is invalid")

// SPI is a display on a 4-wire SPI bus.
type SPI struct {
	port  spi.PortCloser // nil if the port is owned by the caller
	conn  conn.Conn
	dc    gpio.PinOut
	reset gpio.PinOut
}

// OpenSPI opens the named SPI port, use "" for the first available port.
func OpenSPI(name string, speed physic.Frequency, dc, reset gpio.PinOut) (*SPI, error) {
	port, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}

	c, err := NewSPI(port, speed, dc, reset)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	c.port = port
	return c, nil
}

// NewSPI connects to an already opened port in SPI mode 0. The reset pin is optional; if
// given it is driven high to take the controller out of reset.
func NewSPI(port spi.Port, speed physic.Frequency, dc, reset gpio.PinOut) (*SPI, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, ErrDCPin
	}

	c, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return newSPI(c, dc, reset)
}

func newSPI(c conn.Conn, dc, reset gpio.PinOut) (*SPI, error) {
	if reset == gpio.INVALID {
		reset = nil
	}
	if reset != nil {
		if err := reset.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("conn: failed to pull reset high: %w", err)
		}
	}
	return &SPI{
		conn:  c,
		dc:    dc,
		reset: reset,
	}, nil
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %s", c.conn)
}

func (c *SPI) Close() error {
	if c.port == nil {
		return nil
	}
	return c.port.Close()
}

// Command sends command bytes with DC low.
func (c *SPI) Command(cmd ...byte) error {
	if err := c.dc.Out(gpio.Low); err != nil {
		return err
	}
	return c.conn.Tx(cmd, nil)
}

// Data sends data bytes with DC high.
func (c *SPI) Data(data []byte) error {
	if err := c.dc.Out(gpio.High); err != nil {
		return err
	}
	return c.conn.Tx(data, nil)
}
