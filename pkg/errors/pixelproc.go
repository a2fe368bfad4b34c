// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrBusy            = fmt.Errorf("device busy")
	ErrUnknownChannel  = fmt.Errorf("unknown channel")
	ErrControlInit     = fmt.Errorf("control initialization failed")

	ErrInvalidPad = func(pad uint32) error {
		return NewPixelprocError(ErrInvalidArgument, fmt.Sprintf("invalid pad: %d", pad))
	}
	ErrInvalidTarget = func(target string) error {
		return NewPixelprocError(ErrInvalidArgument, fmt.Sprintf("invalid selection target: %s", target))
	}
	ErrInvalidIndex = func(index uint32) error {
		return NewPixelprocError(ErrInvalidArgument, fmt.Sprintf("index out of range: %d", index))
	}
	ErrUnresolvedCode = func(code uint32) error {
		return NewPixelprocError(ErrInvalidArgument, fmt.Sprintf("pixel code not in catalog: 0x%04x", code))
	}
	ErrStreaming = func(op string) error {
		return NewPixelprocError(ErrBusy, fmt.Sprintf("%s while streaming", op))
	}
	ErrConstruct = func(e error) error { return NewPixelprocError(e, "construction failed") }
)

type PixelprocError struct {
	msg string
	err error
}

func NewPixelprocError(e error, msg string) *PixelprocError {
	return &PixelprocError{msg: msg, err: e}
}

func (e *PixelprocError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("pixelproc: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("pixelproc: %q", e.msg)
	}
}

func (e *PixelprocError) Unwrap() error {
	return e.err
}
