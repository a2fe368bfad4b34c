// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrConfigRead  = func(e error) error { return NewConfigError(e, "read failed") }
	ErrConfigParse = func(e error) error { return NewConfigError(e, "parse failed") }
	ErrConfigValue = func(field string, value string) error {
		return NewConfigError(nil, fmt.Sprintf("bad value for %s: %q", field, value))
	}
)

type ConfigError struct {
	msg string
	err error
}

func NewConfigError(e error, msg string) *ConfigError {
	return &ConfigError{msg: msg, err: e}
}

func (e *ConfigError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("config: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("config: %q", e.msg)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.err
}
