package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLayout = `
bus = "spi"
driver = "sh1106"
height = 32

[canvas]
width = 256
pause = "500ms"

[spi]
speed = 4000000
dc = "GPIO22"

[[hotspot]]
kind = "clock"
width = 128
height = 32
interval = "2s"

[[hotspot]]
kind = "text"
text = "hi"
x = 128
width = 128
height = 32
size = 10.0
`

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, cfg)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(testLayout))
	require.NoError(t, err)

	assert.Equal(t, "spi", cfg.Bus)
	assert.Equal(t, "sh1106", cfg.Driver)
	assert.Zero(t, cfg.Width)
	assert.Equal(t, 32, cfg.Height)

	assert.Equal(t, 256, cfg.Canvas.Width)
	assert.Equal(t, DefaultConfig.Canvas.Step, cfg.Canvas.Step)
	assert.Equal(t, 500*time.Millisecond, cfg.Canvas.Pause.Duration)
	assert.Equal(t, DefaultConfig.Canvas.Tick, cfg.Canvas.Tick)

	assert.Equal(t, uint32(4_000_000), cfg.SPI.SpeedHz)
	assert.Equal(t, "GPIO22", cfg.SPI.DC)
	assert.Equal(t, DefaultConfig.SPI.Reset, cfg.SPI.Reset)
	assert.Equal(t, DefaultConfig.I2C, cfg.I2C)

	require.Len(t, cfg.Hotspots, 2)
	assert.Equal(t, Hotspot{Kind: "clock", Width: 128, Height: 32, Interval: Duration{2 * time.Second}}, cfg.Hotspots[0])
	assert.Equal(t, Hotspot{Kind: "text", Text: "hi", X: 128, Width: 128, Height: 32, Size: 10}, cfg.Hotspots[1])

	assert.Len(t, DefaultConfig.Hotspots, 5, "defaults are not modified")
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"syntax", `bus = `},
		{"bus", `bus = "usb"`},
		{"driver", `driver = "ssd1322"`},
		{"transform", "[emulator]\ntransform = \"hq4x\""},
		{"step", "[canvas]\nstep = -1"},
		{"duration", "[canvas]\ntick = \"soon\""},
		{"kind", "[[hotspot]]\nkind = \"image\"\nwidth = 1\nheight = 1"},
		{"size", "[[hotspot]]\nkind = \"text\"\nwidth = 0\nheight = 1"},
		{"interval", "[[hotspot]]\nkind = \"text\"\nwidth = 1\nheight = 1\ninterval = \"-1s\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.layout))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "layout.toml")
	require.NoError(t, os.WriteFile(name, []byte(testLayout), 0o644))

	cfg, err := LoadConfig(name)
	require.NoError(t, err)
	assert.Equal(t, "sh1106", cfg.Driver)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))
}
