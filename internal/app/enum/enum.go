// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package enum

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/boschglobal/dse.clib/extra/go/command"

	"github.com/MY201314MY/yocto-stm32mp2/internal/logger"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/bus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/config"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/pixelproc"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/pixmap"
)

type EnumCommand struct {
	command.Command

	entity   string
	pad      string
	logLevel int
}

func NewEnumCommand(name string) *EnumCommand {
	c := &EnumCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().StringVar(&c.entity, "entity", config.DefaultEntity, "entity name (selects the pipe)")
	c.FlagSet().StringVar(&c.pad, "pad", "", "pad to enumerate (sink, source), all pads when empty")
	c.FlagSet().IntVar(&c.logLevel, "logger", 3, "log level (select between 0..4)")
	return c
}

func (c EnumCommand) Name() string {
	return c.Command.Name
}

func (c EnumCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *EnumCommand) Parse(args []string) error {
	if err := c.FlagSet().Parse(args); err != nil {
		return err
	}
	slog.SetDefault(logger.NewLogger(c.logLevel))
	return nil
}

func (c *EnumCommand) Run() error {
	pads, err := parsePad(c.pad)
	if err != nil {
		return err
	}
	d, err := pixelproc.New(c.entity, bus.NewStubBus())
	if err != nil {
		return err
	}
	defer d.Release()
	for _, pad := range pads {
		Pad(d, pad)
	}
	return nil
}

func parsePad(s string) ([]mbus.Pad, error) {
	switch strings.ToLower(s) {
	case "":
		return []mbus.Pad{mbus.PadSink, mbus.PadSource}, nil
	case "sink":
		return []mbus.Pad{mbus.PadSink}, nil
	case "source", "src":
		return []mbus.Pad{mbus.PadSource}, nil
	}
	return nil, fmt.Errorf("unknown pad: %q", s)
}

// Pad prints the codes, frame sizes and frame intervals of one pad.
func Pad(d *pixelproc.Device, pad mbus.Pad) {
	fmt.Printf("Pad: %s (%s)\n", pad, d.Name())
	for i := uint32(0); ; i++ {
		e := pixelproc.CodeEnum{Pad: pad, Index: i}
		if err := d.EnumMbusCode(&e); err != nil {
			break
		}
		desc, _ := pixmap.ByCode(e.Code, pad)
		fs := pixelproc.FrameSizeEnum{Pad: pad, Code: e.Code}
		if err := d.EnumFrameSize(&fs); err != nil {
			slog.Warn(err.Error())
			continue
		}
		swap := ""
		if desc.SwapUV {
			swap = " swap"
		}
		fmt.Printf("  [%d] %-16s 0x%04x format=0x%x%s layout=%s size=%d..%dx%d..%d\n",
			i, e.Code, uint32(e.Code), uint32(desc.Format), swap, desc.Layout,
			fs.MinWidth, fs.MaxWidth, fs.MinHeight, fs.MaxHeight)
	}

	st := d.Active()
	f := st.Formats[pad]
	intervals := []string{}
	for i := uint32(0); ; i++ {
		e := pixelproc.FrameIntervalEnum{Pad: pad, Index: i, Code: f.Code, Width: f.Width, Height: f.Height}
		if err := d.EnumFrameInterval(&e); err != nil {
			break
		}
		intervals = append(intervals, e.Interval.String())
	}
	fmt.Printf("  intervals: %s\n", strings.Join(intervals, " "))
}
