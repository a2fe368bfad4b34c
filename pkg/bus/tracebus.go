// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package bus

import (
	"io"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/trace"
)

// TraceBus forwards to another bus and records each write as a flatbuffer
// frame on W.
type TraceBus struct {
	Bus RegisterBus
	W   io.Writer

	writer *trace.Writer
}

func (t *TraceBus) Connect() error {
	t.writer = trace.NewWriter(t.W)
	return t.Bus.Connect()
}

func (t *TraceBus) Disconnect() {
	t.Bus.Disconnect()
	if c, ok := t.W.(io.Closer); ok {
		c.Close()
	}
}

func (t *TraceBus) Read(offset uint32) (uint32, error) {
	return t.Bus.Read(offset)
}

func (t *TraceBus) Write(offset uint32, value uint32) error {
	if t.writer == nil {
		return errors.ErrBusNotConnected
	}
	if err := t.Bus.Write(offset, value); err != nil {
		return err
	}
	if err := t.writer.WriteRegister(offset, value); err != nil {
		return errors.ErrBusWriteFail(err)
	}
	return nil
}
