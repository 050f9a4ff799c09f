package oled

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/oled/conn"
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Command sends command bytes in one transfer.
	Command(...byte) error

	// Data sends data bytes in one transfer.
	Data([]byte) error
}

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Device is the I²C device, use -1 to use the first available device.
	Device int

	// Addr is the I²C address.
	Addr uint8
}

var DefaultI2CConfig = I2CConfig{
	Device: -1,
	Addr:   0x3c,
}

// OpenI2C opens an I²C connection, a nil config uses DefaultI2CConfig.
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}
	c, err := conn.OpenI2C(config.Device, uint16(config.Addr))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	Bus     int
	Device  int
	SpeedHz uint32

	// Reset pin, nil selects DefaultResetPin. Use gpio.INVALID if the reset line is not wired.
	Reset gpio.PinOut

	// DC is the data/command pin, nil selects DefaultDCPin.
	DC gpio.PinOut
}

// Default GPIO pins, looked up when the connection is opened.
const (
	DefaultResetPin = "GPIO25"
	DefaultDCPin    = "GPIO24"
)

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:     0,
	Device:  0,
	SpeedHz: 8_000_000,
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	16_000_000,
	20_000_000,
	24_000_000,
	28_000_000,
	32_000_000,
}

// OpenSPI opens a SPI connection, a nil config uses DefaultSPIConfig.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	speed := config.SpeedHz
	if speed == 0 {
		speed = DefaultSPIConfig.SpeedHz
	}
	var valid bool
	for _, v := range ValidSPISpeeds {
		if valid = v == speed; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("oled: invalid SPI speed %dHz", speed)
	}

	var (
		dc    = config.DC
		reset = config.Reset
	)
	if dc == nil {
		dc = gpioreg.ByName(DefaultDCPin)
	}
	if reset == nil {
		reset = gpioreg.ByName(DefaultResetPin)
	}

	name := fmt.Sprintf("SPI%d.%d", config.Bus, config.Device)
	c, err := conn.OpenSPI(name, physic.Frequency(speed)*physic.Hertz, dc, reset)
	if err != nil {
		return nil, err
	}
	return c, nil
}
