// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package bus

import (
	"iter"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
)

// StubBus is an in-memory register file. Registers read as zero until
// written, every write is appended to Trace.
type StubBus struct {
	Trace     []Access
	WriteFail error

	regs *orderedmap.OrderedMap[uint32, uint32]
}

func NewStubBus() *StubBus {
	return &StubBus{regs: orderedmap.NewOrderedMap[uint32, uint32]()}
}

func (s *StubBus) Connect() error {
	if s.regs == nil {
		s.regs = orderedmap.NewOrderedMap[uint32, uint32]()
	}
	return nil
}

func (s *StubBus) Disconnect() {
}

func (s *StubBus) Read(offset uint32) (uint32, error) {
	if s.regs == nil {
		return 0, errors.ErrBusNotConnected
	}
	v, _ := s.regs.Get(offset)
	return v, nil
}

func (s *StubBus) Write(offset uint32, value uint32) error {
	if s.regs == nil {
		return errors.ErrBusNotConnected
	}
	if s.WriteFail != nil {
		return errors.ErrBusWriteFail(s.WriteFail)
	}
	s.regs.Set(offset, value)
	s.Trace = append(s.Trace, Access{Offset: offset, Value: value})
	return nil
}

// Register returns the current value of a register which was written.
func (s *StubBus) Register(offset uint32) (uint32, error) {
	if s.regs == nil || !s.regs.Has(offset) {
		return 0, errors.ErrBusRegisterNotFound(offset)
	}
	v, _ := s.regs.Get(offset)
	return v, nil
}

// Registers yields the register file in first write order.
func (s *StubBus) Registers() iter.Seq2[uint32, uint32] {
	if s.regs == nil {
		return func(yield func(uint32, uint32) bool) {}
	}
	return s.regs.AllFromFront()
}

// TraceFrom returns the writes made after the first n.
func (s *StubBus) TraceFrom(n int) []Access {
	if n >= len(s.Trace) {
		return []Access{}
	}
	return s.Trace[n:]
}

func (s *StubBus) Reset() {
	s.Trace = []Access{}
	s.regs = orderedmap.NewOrderedMap[uint32, uint32]()
}
