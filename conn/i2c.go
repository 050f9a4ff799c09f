package conn

import (
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// I²C control bytes.
const (
	i2cCommand = 0x00
	i2cData    = 0x40
)

// I2C is a display on an I²C bus.
type I2C struct {
	bus i2c.BusCloser // nil if the bus is owned by the caller
	dev *i2c.Dev
}

// OpenI2C opens the numbered I²C bus, use -1 to open the first available bus.
func OpenI2C(device int, addr uint16) (*I2C, error) {
	var name string
	if device >= 0 {
		name = strconv.Itoa(device)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}

	c := NewI2C(bus, addr)
	c.bus = bus
	return c, nil
}

// NewI2C uses an already opened bus. Closing the returned connection leaves the bus open.
func NewI2C(bus i2c.Bus, addr uint16) *I2C {
	return &I2C{
		dev: &i2c.Dev{Bus: bus, Addr: addr},
	}
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C %s", c.dev)
}

func (c *I2C) Close() error {
	if c.bus == nil {
		return nil
	}
	return c.bus.Close()
}

// Command sends command bytes in one transfer.
func (c *I2C) Command(cmd ...byte) error {
	return c.dev.Tx(append([]byte{i2cCommand}, cmd...), nil)
}

// Data sends data bytes in one transfer.
func (c *I2C) Data(data []byte) error {
	return c.dev.Tx(append([]byte{i2cData}, data...), nil)
}
