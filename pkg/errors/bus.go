// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrBusNotConnected     = fmt.Errorf("bus not connected")
	ErrBusRespIncomplete   = fmt.Errorf("response incomplete")
	ErrBusRegisterNotFound = func(offset uint32) error {
		return NewBusError(nil, fmt.Sprintf("register not written: 0x%03x", offset))
	}
	ErrBusConnectFail = func(e error) error { return NewBusError(e, "connect failed") }
	ErrBusWriteFail   = func(e error) error { return NewBusError(e, "write failed") }
)

type BusError struct {
	msg string
	err error
}

func NewBusError(e error, msg string) *BusError {
	return &BusError{msg: msg, err: e}
}

func (e *BusError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("bus: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("bus: %q", e.msg)
	}
}

func (e *BusError) Unwrap() error {
	return e.err
}
