package conn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestI2CCommand(t *testing.T) {
	bus := &i2ctest.Record{}
	c := NewI2C(bus, 0x83)

	require.NoError(t, c.Command(3, 1, 4, 2))
	require.Len(t, bus.Ops, 1)
	assert.Equal(t, uint16(0x83), bus.Ops[0].Addr)
	assert.Equal(t, []byte{0x00, 3, 1, 4, 2}, bus.Ops[0].W)
}

func TestI2CData(t *testing.T) {
	bus := &i2ctest.Record{}
	c := NewI2C(bus, 0x21)

	data := []byte{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}
	require.NoError(t, c.Data(data))
	require.Len(t, bus.Ops, 1)
	assert.Equal(t, uint16(0x21), bus.Ops[0].Addr)
	assert.Equal(t, append([]byte{0x40}, data...), bus.Ops[0].W)
}

func TestI2CCloseLeavesCallerBus(t *testing.T) {
	c := NewI2C(&i2ctest.Record{}, 0x3c)
	assert.NoError(t, c.Close())
}

// levelRecord records the DC line level at every transfer.
type levelRecord struct {
	conntest.Record
	dc     *gpiotest.Pin
	levels []gpio.Level
}

func (r *levelRecord) Tx(w, read []byte) error {
	r.levels = append(r.levels, r.dc.Read())
	return r.Record.Tx(w, read)
}

func TestSPI(t *testing.T) {
	var (
		dc    = &gpiotest.Pin{N: "DC"}
		reset = &gpiotest.Pin{N: "RST"}
		rec   = &levelRecord{dc: dc}
	)

	c, err := newSPI(rec, dc, reset)
	require.NoError(t, err)
	assert.Equal(t, gpio.High, reset.Read(), "reset must be released")

	require.NoError(t, c.Command(3, 1, 4, 2))
	require.NoError(t, c.Data([]byte{9, 8, 7}))
	require.NoError(t, c.Command(0xAF))

	require.Len(t, rec.Ops, 3)
	assert.Equal(t, []byte{3, 1, 4, 2}, rec.Ops[0].W)
	assert.Equal(t, []byte{9, 8, 7}, rec.Ops[1].W)
	assert.Equal(t, []byte{0xAF}, rec.Ops[2].W)
	assert.Equal(t, []gpio.Level{gpio.Low, gpio.High, gpio.Low}, rec.levels)
}

func TestSPIWithoutReset(t *testing.T) {
	c, err := newSPI(&conntest.Record{}, &gpiotest.Pin{N: "DC"}, gpio.INVALID)
	require.NoError(t, err)
	assert.Nil(t, c.reset)
	assert.NoError(t, c.Close())
}

func TestNewSPIInvalidDC(t *testing.T) {
	_, err := NewSPI(nil, 0, gpio.INVALID, nil)
	assert.True(t, errors.Is(err, ErrDCPin))

	_, err = NewSPI(nil, 0, nil, nil)
	assert.ErrorIs(t, err, ErrDCPin)
}
