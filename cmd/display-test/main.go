package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/emulator"
	"github.com/BeatGlow/oled/emulator/window"
	"github.com/BeatGlow/oled/framebuffer"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	configFlag := flag.String("config", "", "TOML layout file")
	flag.String("bus", DefaultConfig.Bus, "Output bus: "+strings.Join(Buses, ", "))
	flag.String("driver", DefaultConfig.Driver, "Display driver: "+strings.Join(Drivers, ", "))
	flag.Int("width", 0, "Display width (default: driver default)")
	flag.Int("height", 0, "Display height (default: driver default)")
	flag.Int("canvas-width", DefaultConfig.Canvas.Width, "Virtual canvas width")
	flag.Int("i2c-dev", DefaultConfig.I2C.Device, "I²C device number (default: use first available)")
	flag.Uint("i2c-addr", uint(DefaultConfig.I2C.Addr), "I²C device address")
	flag.Int("spi-bus", DefaultConfig.SPI.Bus, "SPI bus")
	flag.Int("spi-dev", DefaultConfig.SPI.Device, "SPI device")
	flag.Uint("spi-speed", uint(DefaultConfig.SPI.SpeedHz), "SPI speed in Hz")
	flag.String("reset", DefaultConfig.SPI.Reset, "Reset GPIO pin")
	flag.String("dc", DefaultConfig.SPI.DC, "Data/Command GPIO pin (DC)")
	flag.String("transform", DefaultConfig.Emulator.Transform, "Emulator transform")
	flag.Int("scale", DefaultConfig.Emulator.Scale, "Emulator scale")
	flag.Int("fps", window.DefaultFrameRate, "Window frame rate limit")
	flag.String("template", DefaultConfig.Emulator.Template, "Capture file name template")
	flag.String("fb", DefaultConfig.Framebuffer.Device, "Framebuffer device")
	framesFlag := flag.Int("frames", 0, "Stop after this many frames (default: run until interrupted)")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debugFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		oled.Logger = log.Logger.Level(zerolog.DebugLevel)
	}

	cfg := DefaultConfig
	if *configFlag != "" {
		var err error
		if cfg, err = LoadConfig(*configFlag); err != nil {
			log.Fatal().Err(err).Str("config", *configFlag).Msg("can't load config")
		}
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	dev, win, err := openDevice(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("bus", cfg.Bus).Msg("can't open display")
	}
	log.Info().Str("display", fmt.Sprint(dev)).Stringer("size", dev.Bounds().Size()).Msg("using display")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c, err := newCarousel(cfg, dev, clockwork.NewRealClock())
	if err != nil {
		_ = dev.Close()
		log.Fatal().Err(err).Msg("can't create canvas")
	}

	if win == nil {
		err = c.run(ctx, *framesFlag)
	} else {
		// the window owns the main goroutine
		errs := make(chan error, 1)
		go func() {
			errs <- c.run(ctx, *framesFlag)
			_ = win.Close()
		}()
		if err = win.Run(); err != nil {
			log.Error().Err(err).Msg("window")
		}
		cancel()
		err = <-errs
	}
	if err != nil && !errors.Is(err, window.ErrClosed) {
		log.Error().Err(err).Msg("display failed")
	}
	if err = dev.Close(); err != nil {
		log.Error().Err(err).Msg("close failed")
	}
}

// applyFlags copies the flags given on the command line into cfg.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		v := f.Value.(flag.Getter).Get()
		switch f.Name {
		case "bus":
			cfg.Bus = v.(string)
		case "driver":
			cfg.Driver = strings.ToLower(v.(string))
		case "width":
			cfg.Width = v.(int)
		case "height":
			cfg.Height = v.(int)
		case "canvas-width":
			cfg.Canvas.Width = v.(int)
		case "i2c-dev":
			cfg.I2C.Device = v.(int)
		case "i2c-addr":
			cfg.I2C.Addr = uint8(v.(uint))
		case "spi-bus":
			cfg.SPI.Bus = v.(int)
		case "spi-dev":
			cfg.SPI.Device = v.(int)
		case "spi-speed":
			cfg.SPI.SpeedHz = uint32(v.(uint))
		case "reset":
			cfg.SPI.Reset = v.(string)
		case "dc":
			cfg.SPI.DC = v.(string)
		case "transform":
			cfg.Emulator.Transform = v.(string)
		case "scale":
			cfg.Emulator.Scale = v.(int)
		case "fps":
			cfg.Emulator.FPS = v.(int)
		case "template":
			cfg.Emulator.Template = v.(string)
		case "fb":
			cfg.Framebuffer.Device = v.(string)
		}
	})
}

// openDevice opens the configured display. The window is returned separately, it has to be
// run on the main goroutine.
func openDevice(cfg Config) (oled.Device, *window.Window, error) {
	emu := &emulator.Config{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Transform: emulator.Transform(cfg.Emulator.Transform),
		Scale:     cfg.Emulator.Scale,
	}

	switch cfg.Bus {
	case "capture":
		dev, err := emulator.NewCapture(emu, cfg.Emulator.Template)
		if err != nil {
			return nil, nil, err
		}
		return dev, nil, nil
	case "terminal":
		dev, err := emulator.NewTerminal(emu)
		if err != nil {
			return nil, nil, err
		}
		return dev, nil, nil
	case "window":
		w, err := window.New(emu, cfg.Emulator.FPS)
		if err != nil {
			return nil, nil, err
		}
		return w, w, nil
	case "framebuffer":
		width, height := cfg.Width, cfg.Height
		if width == 0 || height == 0 {
			width, height = emulator.DefaultConfig.Width, emulator.DefaultConfig.Height
		}
		dev, err := framebuffer.Open(cfg.Framebuffer.Device, width, height)
		return dev, nil, err
	}

	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}

	var (
		conn oled.Conn
		err  error
	)
	switch cfg.Bus {
	case "i2c":
		conn, err = oled.OpenI2C(&oled.I2CConfig{
			Device: cfg.I2C.Device,
			Addr:   cfg.I2C.Addr,
		})
	case "spi":
		conn, err = oled.OpenSPI(&oled.SPIConfig{
			Bus:     cfg.SPI.Bus,
			Device:  cfg.SPI.Device,
			SpeedHz: cfg.SPI.SpeedHz,
			Reset:   gpioreg.ByName(cfg.SPI.Reset),
			DC:      gpioreg.ByName(cfg.SPI.DC),
		})
	default:
		err = fmt.Errorf("unsupported bus type %q", cfg.Bus)
	}
	if err != nil {
		return nil, nil, err
	}
	log.Info().Stringer("conn", conn).Msg("using connection")

	config := &oled.Config{Width: cfg.Width, Height: cfg.Height}
	var dev oled.Device
	switch cfg.Driver {
	case "sh1106":
		dev, err = oled.SH1106(conn, config)
	default:
		dev, err = oled.SSD1306(conn, config)
	}
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return dev, nil, nil
}
