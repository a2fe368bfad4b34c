// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"fmt"
	"log/slog"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/power"
)

const (
	UserBase        uint32 = 0x00980900
	GammaCorrection uint32 = UserBase | 0x1001
)

type Type int

const (
	TypeInteger Type = iota + 1
	TypeBoolean
)

type Config struct {
	ID   uint32
	Type Type
	Name string
	Min  int32
	Max  int32
	Step int32
	Def  int32
}

var GammaConfig = Config{
	ID:   GammaCorrection,
	Type: TypeBoolean,
	Name: "Gamma correction",
	Min:  0,
	Max:  1,
	Step: 1,
	Def:  0,
}

// Applier writes a control value to the hardware.
type Applier func(id uint32, value int32) error

// Control keeps the value requested by the user and the value last
// written to the hardware.
type Control struct {
	Config

	value   int32
	applied int32
	synced  bool
}

func (c *Control) Value() int32 {
	return c.value
}

// Pending reports whether the hardware does not hold the current value.
func (c *Control) Pending() bool {
	return !c.synced || c.applied != c.value
}

func (c *Control) validate(v int32) int32 {
	switch c.Type {
	case TypeBoolean:
		if v != 0 {
			return 1
		}
		return 0
	default:
		if v < c.Min {
			v = c.Min
		}
		if v > c.Max {
			v = c.Max
		}
		if off := (v - c.Min) % c.Step; off != 0 {
			if off*2 >= c.Step && v+c.Step-off <= c.Max {
				v += c.Step - off
			} else {
				v -= off
			}
		}
		return v
	}
}

// Handler owns the controls of a device. It is not safe for concurrent
// use, the device lock serializes access.
type Handler struct {
	ctrls []*Control
	power power.Runtime
	apply Applier
}

func NewHandler(p power.Runtime, apply Applier, configs ...Config) (*Handler, error) {
	h := &Handler{power: p, apply: apply}
	for _, cfg := range configs {
		if err := h.add(cfg); err != nil {
			return nil, errors.NewPixelprocError(errors.ErrControlInit, err.Error())
		}
	}
	return h, nil
}

func (h *Handler) add(cfg Config) error {
	if cfg.Type != TypeBoolean && cfg.Type != TypeInteger {
		return fmt.Errorf("control 0x%08x: bad type %d", cfg.ID, cfg.Type)
	}
	if cfg.Step <= 0 || cfg.Min > cfg.Max || cfg.Def < cfg.Min || cfg.Def > cfg.Max {
		return fmt.Errorf("control 0x%08x: bad range", cfg.ID)
	}
	if h.find(cfg.ID) != nil {
		return fmt.Errorf("control 0x%08x: duplicate id", cfg.ID)
	}
	h.ctrls = append(h.ctrls, &Control{Config: cfg, value: cfg.Def})
	return nil
}

func (h *Handler) find(id uint32) *Control {
	for _, c := range h.ctrls {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (h *Handler) Control(id uint32) (*Control, error) {
	c := h.find(id)
	if c == nil {
		return nil, errors.NewPixelprocError(errors.ErrInvalidArgument,
			fmt.Sprintf("unknown control: 0x%08x", id))
	}
	return c, nil
}

func (h *Handler) Controls() []*Control {
	return h.ctrls
}

func (h *Handler) Get(id uint32) (int32, error) {
	c, err := h.Control(id)
	if err != nil {
		return 0, err
	}
	return c.value, nil
}

// Set stores the value and writes it to the hardware when the device is
// powered. Otherwise the write is skipped and left to Replay.
func (h *Handler) Set(id uint32, value int32) (int32, error) {
	c, err := h.Control(id)
	if err != nil {
		return 0, err
	}
	c.value = c.validate(value)

	release, ok := h.power.Acquire()
	if !ok {
		slog.Debug(fmt.Sprintf("control: %s=%d deferred, device not in use", c.Name, c.value))
		return c.value, nil
	}
	defer release()
	if err := h.apply(c.ID, c.value); err != nil {
		return c.value, err
	}
	c.applied, c.synced = c.value, true
	return c.value, nil
}

// Replay writes every control value to the hardware.
func (h *Handler) Replay() error {
	for _, c := range h.ctrls {
		if err := h.apply(c.ID, c.value); err != nil {
			return err
		}
		c.applied, c.synced = c.value, true
	}
	return nil
}
