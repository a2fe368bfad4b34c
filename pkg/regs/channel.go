// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package regs

import (
	"fmt"
	"strings"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
)

// Channel selects one of the two pixel processing pipes.
type Channel int

const (
	Main Channel = iota
	Auxiliary
)

type block struct {
	pipe      uint32
	base      uint32
	colorConv bool
	name      string
}

var blocks = [...]block{
	Main:      {pipe: 1, base: 0x900, colorConv: true, name: "main"},
	Auxiliary: {pipe: 2, base: 0xd00, colorConv: false, name: "aux"},
}

// ChannelFromName identifies the pipe from an entity name.
func ChannelFromName(name string) (Channel, error) {
	for i, b := range blocks {
		if strings.Contains(name, b.name) {
			return Channel(i), nil
		}
	}
	return 0, errors.NewPixelprocError(errors.ErrUnknownChannel,
		fmt.Sprintf("failed to retrieve pipe for %q", name))
}

func (c Channel) valid() bool {
	return c >= 0 && int(c) < len(blocks)
}

func (c Channel) Pipe() uint32 {
	return blocks[c].pipe
}

func (c Channel) Base() uint32 {
	return blocks[c].base
}

// HasColorConv reports whether the pipe carries the YUV conversion block.
func (c Channel) HasColorConv() bool {
	return c.valid() && blocks[c].colorConv
}

func (c Channel) String() string {
	if !c.valid() {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return blocks[c].name
}

// Addr returns the absolute offset of a register in the pipe block.
func (c Channel) Addr(r Reg) uint32 {
	return blocks[c].base + uint32(r)
}

// Lookup resolves an absolute offset back to the pipe and register.
func Lookup(addr uint32) (Channel, Reg, bool) {
	for i, b := range blocks {
		if addr < b.base {
			continue
		}
		r := Reg(addr - b.base)
		if _, ok := regNames[r]; !ok {
			continue
		}
		if r.colorConvOnly() && !b.colorConv {
			continue
		}
		return Channel(i), r, true
	}
	return 0, 0, false
}

// Name is the register name for an absolute offset, P1CRSZR for example.
func Name(addr uint32) string {
	c, r, ok := Lookup(addr)
	if !ok {
		return fmt.Sprintf("0x%03x", addr)
	}
	return fmt.Sprintf("P%d%s", c.Pipe(), r)
}
