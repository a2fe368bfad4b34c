// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package bus

// RegisterBus gives access to the 32 bit registers of the pixel processor.
// Offsets are relative to the start of the register file.
type RegisterBus interface {
	Connect() error
	Disconnect()
	Read(offset uint32) (uint32, error)
	Write(offset uint32, value uint32) error
}

type Access struct {
	Offset uint32
	Value  uint32
}

// Set ORs mask into a register.
func Set(b RegisterBus, offset uint32, mask uint32) error {
	v, err := b.Read(offset)
	if err != nil {
		return err
	}
	return b.Write(offset, v|mask)
}

// Clear removes mask from a register.
func Clear(b RegisterBus, offset uint32, mask uint32) error {
	v, err := b.Read(offset)
	if err != nil {
		return err
	}
	return b.Write(offset, v&^mask)
}
