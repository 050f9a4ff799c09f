package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/emulator"
)

// Supported values.
var (
	Buses         = []string{"i2c", "spi", "capture", "terminal", "window", "framebuffer"}
	Drivers       = []string{"ssd1306", "sh1106"}
	HotspotKinds  = []string{"clock", "text", "box"}
	errBadSetting = errors.New("invalid setting")
)

type Config struct {
	Bus         string      `toml:"bus"`
	Driver      string      `toml:"driver"`
	Width       int         `toml:"width,omitempty"`
	Height      int         `toml:"height,omitempty"`
	Canvas      Canvas      `toml:"canvas"`
	I2C         I2C         `toml:"i2c"`
	SPI         SPI         `toml:"spi"`
	Emulator    Emulator    `toml:"emulator"`
	Framebuffer Framebuffer `toml:"framebuffer"`
	Hotspots    []Hotspot   `toml:"hotspot"`
}

type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height,omitempty"`

	// Step is the distance in pixels the viewport moves per tick.
	Step int `toml:"step"`

	// Tick is the time between viewport moves.
	Tick Duration `toml:"tick"`

	// Pause is the time the viewport rests on a hotspot edge.
	Pause Duration `toml:"pause"`
}

type I2C struct {
	Device int   `toml:"device"`
	Addr   uint8 `toml:"addr"`
}

type SPI struct {
	Bus     int    `toml:"bus"`
	Device  int    `toml:"device"`
	SpeedHz uint32 `toml:"speed"`
	Reset   string `toml:"reset"`
	DC      string `toml:"dc"`
}

type Emulator struct {
	Transform string `toml:"transform"`
	Scale     int    `toml:"scale"`
	Template  string `toml:"template,omitempty"`
	FPS       int    `toml:"fps,omitempty"`
}

type Framebuffer struct {
	Device string `toml:"device"`
}

type Hotspot struct {
	Kind   string `toml:"kind"`
	Text   string `toml:"text,omitempty"`
	X      int    `toml:"x"`
	Y      int    `toml:"y"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	// Interval makes the hotspot a snapshot, re-rendered at most once per interval.
	Interval Duration `toml:"interval,omitempty"`

	// Size of the font in points.
	Size float64 `toml:"size,omitempty"`
}

// Duration is a time.Duration in its string form, such as "1.5s".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

var DefaultConfig = Config{
	Bus:    "i2c",
	Driver: "ssd1306",
	Canvas: Canvas{
		Width: 512,
		Step:  2,
		Tick:  Duration{40 * time.Millisecond},
		Pause: Duration{2 * time.Second},
	},
	I2C: I2C{
		Device: oled.DefaultI2CConfig.Device,
		Addr:   oled.DefaultI2CConfig.Addr,
	},
	SPI: SPI{
		Bus:     oled.DefaultSPIConfig.Bus,
		Device:  oled.DefaultSPIConfig.Device,
		SpeedHz: oled.DefaultSPIConfig.SpeedHz,
		Reset:   oled.DefaultResetPin,
		DC:      oled.DefaultDCPin,
	},
	Emulator: Emulator{
		Transform: string(emulator.DefaultConfig.Transform),
		Scale:     emulator.DefaultConfig.Scale,
		Template:  emulator.DefaultTemplate,
	},
	Framebuffer: Framebuffer{
		Device: "/dev/fb0",
	},
	Hotspots: []Hotspot{
		{Kind: "clock", X: 0, Width: 128, Height: 64, Interval: Duration{time.Second}},
		{Kind: "text", Text: "BeatGlow", X: 128, Width: 128, Height: 64},
		{Kind: "box", Text: "OLED", X: 256, Width: 128, Height: 64},
		{Kind: "text", Text: "virtual", X: 384, Width: 128, Height: 32, Size: 12},
		{Kind: "text", Text: "viewport", X: 384, Y: 32, Width: 128, Height: 32, Size: 12},
	},
}

// LoadConfig reads a TOML layout file. Settings missing from the file keep their defaults,
// hotspots in the file replace the default hotspots.
func LoadConfig(name string) (Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// ParseConfig parses a TOML layout.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig
	cfg.Hotspots = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if len(cfg.Hotspots) == 0 {
		cfg.Hotspots = slices.Clone(DefaultConfig.Hotspots)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that can be checked without opening a device.
func (cfg Config) Validate() error {
	if !slices.Contains(Buses, cfg.Bus) {
		return fmt.Errorf("%w: bus %q, expected one of %v", errBadSetting, cfg.Bus, Buses)
	}
	if !slices.Contains(Drivers, cfg.Driver) {
		return fmt.Errorf("%w: driver %q, expected one of %v", errBadSetting, cfg.Driver, Drivers)
	}
	if !slices.Contains(emulator.Transforms, emulator.Transform(cfg.Emulator.Transform)) {
		return fmt.Errorf("%w: transform %q", errBadSetting, cfg.Emulator.Transform)
	}
	if cfg.Canvas.Step <= 0 {
		return fmt.Errorf("%w: canvas step %d", errBadSetting, cfg.Canvas.Step)
	}
	for i, h := range cfg.Hotspots {
		if !slices.Contains(HotspotKinds, h.Kind) {
			return fmt.Errorf("%w: hotspot %d: kind %q, expected one of %v", errBadSetting, i, h.Kind, HotspotKinds)
		}
		if h.Width <= 0 || h.Height <= 0 {
			return fmt.Errorf("%w: hotspot %d: size %dx%d", errBadSetting, i, h.Width, h.Height)
		}
		if h.Interval.Duration < 0 {
			return fmt.Errorf("%w: hotspot %d: negative interval", errBadSetting, i)
		}
	}
	return nil
}
