// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package pixelproc

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/bus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/colorconv"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/control"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/framerate"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/media"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/power"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/regs"
)

type Option func(*Device)

func WithColorConv(cc colorconv.ColorConv) Option {
	return func(d *Device) { d.colorconv = cc }
}

func WithPower(p power.Runtime) Option {
	return func(d *Device) { d.power = p }
}

func WithRegistrar(r media.Registrar) Option {
	return func(d *Device) { d.registrar = r }
}

func WithLimits(l mbus.Limits) Option {
	return func(d *Device) { d.limits = l }
}

func WithControls(configs ...control.Config) Option {
	return func(d *Device) { d.ctrlConfigs = configs }
}

// Device is one pixel processing pipe. A single lock guards the whole
// configuration, operations on a streaming device fail with ErrBusy.
type Device struct {
	name    string
	channel regs.Channel
	bus     bus.RegisterBus

	colorconv   colorconv.ColorConv
	power       power.Runtime
	registrar   media.Registrar
	limits      mbus.Limits
	ctrlConfigs []control.Config

	mu        sync.Mutex
	active    State
	rate      *framerate.Controller
	ctrls     *control.Handler
	streaming bool
}

// New creates the device for the entity name, the name selects the pipe
// ("main" or "aux").
func New(name string, b bus.RegisterBus, opts ...Option) (*Device, error) {
	d := &Device{
		name:        name,
		bus:         b,
		colorconv:   colorconv.Passthrough{},
		power:       power.AlwaysOn{},
		limits:      mbus.DefaultLimits,
		ctrlConfigs: []control.Config{control.GammaConfig},
	}
	for _, opt := range opts {
		opt(d)
	}
	if b == nil {
		return nil, errors.ErrConstruct(errors.ErrBusNotConnected)
	}
	if !d.limits.Valid() {
		return nil, errors.ErrConstruct(errors.NewPixelprocError(errors.ErrInvalidArgument,
			fmt.Sprintf("bad frame limits %+v", d.limits)))
	}

	channel, err := regs.ChannelFromName(name)
	if err != nil {
		slog.Error(fmt.Sprintf("%s: failed to retrieve pipe", name))
		return nil, errors.ErrConstruct(err)
	}
	d.channel = channel

	d.active = *NewTryState()
	d.rate = framerate.NewController(framerate.DefaultInterval)

	d.ctrls, err = control.NewHandler(d.power, d.applyControl, d.ctrlConfigs...)
	if err != nil {
		slog.Error(fmt.Sprintf("%s: control initialization error %v", name, err))
		return nil, errors.ErrConstruct(err)
	}

	if d.registrar != nil {
		err := d.registrar.Register(media.Entity{
			Name:     name,
			Function: media.FunctionPixelFormatter,
			Pads:     []media.PadFlag{media.PadFlagSink, media.PadFlagSource},
		})
		if err != nil {
			return nil, errors.ErrConstruct(err)
		}
	}
	slog.Debug(fmt.Sprintf("%s: pipe %d created", name, channel.Pipe()))

	return d, nil
}

// Release removes the device from the graph.
func (d *Device) Release() {
	if d.registrar != nil {
		d.registrar.Unregister(d.name)
	}
}

func (d *Device) Name() string {
	return d.name
}

func (d *Device) Channel() regs.Channel {
	return d.channel
}

func (d *Device) Limits() mbus.Limits {
	return d.limits
}

func (d *Device) Streaming() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.streaming
}

// Active returns a copy of the live configuration.
func (d *Device) Active() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// FrameRateCode is the committed frame skip code (0..3).
func (d *Device) FrameRateCode() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rate.Code()
}

func (d *Device) SetControl(id uint32, value int32) (int32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctrls.Set(id, value)
}

func (d *Device) GetControl(id uint32) (int32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctrls.Get(id)
}

// ControlPending reports whether a control value still waits for replay.
func (d *Device) ControlPending(id uint32) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, err := d.ctrls.Control(id)
	if err != nil {
		return false, err
	}
	return c.Pending(), nil
}

func (d *Device) applyControl(id uint32, value int32) error {
	switch id {
	case control.GammaCorrection:
		return d.write(regs.GMCR, regs.Gamma(value != 0))
	}
	return nil
}

func (d *Device) write(r regs.Reg, v uint32) error {
	return d.bus.Write(d.channel.Addr(r), v)
}

func (d *Device) set(r regs.Reg, mask uint32) error {
	return bus.Set(d.bus, d.channel.Addr(r), mask)
}

func (d *Device) clear(r regs.Reg, mask uint32) error {
	return bus.Clear(d.bus, d.channel.Addr(r), mask)
}
