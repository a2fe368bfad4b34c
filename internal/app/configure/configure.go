// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package configure

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/boschglobal/dse.clib/extra/go/command"
	"github.com/elliotchance/orderedmap/v3"

	"github.com/MY201314MY/yocto-stm32mp2/internal/logger"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/bus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/config"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/control"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/media"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/pixelproc"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/power"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/regs"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/selection"
)

type ConfigureCommand struct {
	command.Command

	configFile string
	dump       bool
	logLevel   int
}

func NewConfigureCommand(name string) *ConfigureCommand {
	c := &ConfigureCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().StringVar(&c.configFile, "config", "", "pipeline configuration file (YAML)")
	c.FlagSet().BoolVar(&c.dump, "dump", false, "print the register file after stream on")
	c.FlagSet().IntVar(&c.logLevel, "logger", 3, "log level (select between 0..4)")
	return c
}

func (c ConfigureCommand) Name() string {
	return c.Command.Name
}

func (c ConfigureCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *ConfigureCommand) Parse(args []string) error {
	if err := c.FlagSet().Parse(args); err != nil {
		return err
	}
	slog.SetDefault(logger.NewLogger(c.logLevel))
	return nil
}

func (c *ConfigureCommand) Run() error {
	cfg := config.Default()
	if len(c.configFile) > 0 {
		var err error
		if cfg, err = config.Load(c.configFile); err != nil {
			return err
		}
	}
	return Run(cfg, c.dump)
}

// OpenBus builds the register bus selected by the configuration. The
// trace transport records writes made to an in-memory register file.
func OpenBus(cfg config.BusConfig) (bus.RegisterBus, error) {
	switch cfg.Transport {
	case config.TransportRedis:
		return &bus.RedisBus{Url: cfg.Url, Key: cfg.Key}, nil
	case config.TransportTrace:
		f, err := os.Create(cfg.File)
		if err != nil {
			return nil, err
		}
		return &bus.TraceBus{Bus: bus.NewStubBus(), W: f}, nil
	default:
		return bus.NewStubBus(), nil
	}
}

// Registers collects the register file of a bus in first write order.
func Registers(b bus.RegisterBus) (*orderedmap.OrderedMap[uint32, uint32], error) {
	m := orderedmap.NewOrderedMap[uint32, uint32]()
	switch b := b.(type) {
	case *bus.StubBus:
		for offset, value := range b.Registers() {
			m.Set(offset, value)
		}
	case *bus.TraceBus:
		return Registers(b.Bus)
	case *bus.RedisBus:
		log, err := b.Log()
		if err != nil {
			return nil, err
		}
		for _, a := range log {
			m.Set(a.Offset, a.Value)
		}
	default:
		return nil, fmt.Errorf("register dump not supported by %T", b)
	}
	return m, nil
}

// Run configures a device from cfg and starts streaming, the resulting
// configuration (and optionally the register file) is printed.
func Run(cfg *config.Config, dump bool) error {
	b, err := OpenBus(cfg.Bus)
	if err != nil {
		return err
	}
	if err := b.Connect(); err != nil {
		return err
	}
	defer b.Disconnect()
	if rb, ok := b.(*bus.RedisBus); ok {
		if err := rb.Flush(); err != nil {
			return err
		}
	}

	cc, err := cfg.ColorConverter()
	if err != nil {
		return err
	}
	var pm power.Runtime = power.AlwaysOn{}
	counter := &power.Counter{}
	if cfg.Power.Managed {
		pm = counter
	}
	graph := media.NewGraph()

	d, err := pixelproc.New(cfg.Entity, b,
		pixelproc.WithLimits(cfg.FrameLimits()),
		pixelproc.WithColorConv(cc),
		pixelproc.WithPower(pm),
		pixelproc.WithRegistrar(graph),
	)
	if err != nil {
		return err
	}
	defer d.Release()

	if err := apply(d, cfg); err != nil {
		return err
	}

	if cfg.Power.Managed && cfg.Power.PowerOn() {
		counter.Get()
		defer counter.Put()
	}
	if err := d.StreamOn(); err != nil {
		return err
	}
	defer d.StreamOff()

	report(d)
	if dump {
		m, err := Registers(b)
		if err != nil {
			return err
		}
		fmt.Printf("Registers:\n")
		for offset, value := range m.AllFromFront() {
			fmt.Printf("  %-10s 0x%03x = 0x%08x\n", regs.Name(offset), offset, value)
		}
	}
	return nil
}

func apply(d *pixelproc.Device, cfg *config.Config) error {
	interval, err := cfg.SinkInterval()
	if err != nil {
		return err
	}
	if err := d.SetFrameInterval(&pixelproc.FrameInterval{Pad: mbus.PadSink, Interval: interval}); err != nil {
		return err
	}

	sink, err := cfg.SinkFormat()
	if err != nil {
		return err
	}
	f := pixelproc.Format{Pad: mbus.PadSink, Which: mbus.WhichActive, Format: sink}
	if err := d.SetFormat(nil, &f); err != nil {
		return err
	}
	if f.Format.Code != sink.Code || f.Format.Width != sink.Width || f.Format.Height != sink.Height {
		slog.Warn(fmt.Sprintf("sink format adjusted to %s", f.Format))
	}

	if cfg.Crop != nil {
		s := pixelproc.Selection{Pad: mbus.PadSink, Which: mbus.WhichActive, Target: selection.TargetCrop, Rect: cfg.Crop.Rect()}
		if err := d.SetSelection(nil, &s); err != nil {
			return err
		}
	}
	if cfg.Compose != nil {
		s := pixelproc.Selection{Pad: mbus.PadSink, Which: mbus.WhichActive, Target: selection.TargetCompose, Rect: cfg.Compose.Rect()}
		if err := d.SetSelection(nil, &s); err != nil {
			return err
		}
	}

	if code, ok, err := cfg.SourceCode(); err != nil {
		return err
	} else if ok {
		f := pixelproc.Format{Pad: mbus.PadSource, Which: mbus.WhichActive, Format: mbus.FrameFormat{Code: code}}
		if err := d.SetFormat(nil, &f); err != nil {
			return err
		}
		if f.Format.Code != code {
			slog.Warn(fmt.Sprintf("source code %s not supported, using %s", code, f.Format.Code))
		}
	}

	if interval, ok, err := cfg.SourceInterval(); err != nil {
		return err
	} else if ok {
		if err := d.SetFrameInterval(&pixelproc.FrameInterval{Pad: mbus.PadSource, Interval: interval}); err != nil {
			return err
		}
	}

	if cfg.Controls.Gamma != nil {
		var v int32
		if *cfg.Controls.Gamma {
			v = 1
		}
		if _, err := d.SetControl(control.GammaCorrection, v); err != nil {
			return err
		}
	}
	return nil
}

func report(d *pixelproc.Device) {
	st := d.Active()
	sink := st.Formats[mbus.PadSink]
	src := st.Formats[mbus.PadSource]
	fmt.Printf("Entity: %s (pipe %d)\n", d.Name(), d.Channel().Pipe())
	fmt.Printf("Sink: %dx%d %s\n", sink.Width, sink.Height, sink.Code)
	fmt.Printf("Source: %dx%d %s\n", src.Width, src.Height, src.Code)
	fmt.Printf("Crop: %s\n", st.Crop)
	fmt.Printf("Compose: %s\n", st.Compose)
	for _, pad := range []mbus.Pad{mbus.PadSink, mbus.PadSource} {
		fi := pixelproc.FrameInterval{Pad: pad}
		if err := d.GetFrameInterval(&fi); err == nil {
			fmt.Printf("Interval[%s]: %s\n", pad, fi.Interval)
		}
	}
	fmt.Printf("Frame skip: 1/%d\n", 1<<d.FrameRateCode())
	if g, err := d.GetControl(control.GammaCorrection); err == nil {
		fmt.Printf("Gamma: %d\n", g)
	}
}
