// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"io"
	"os"
)

// StdoutCapture redirects os.Stdout into a pipe, for command tests.
type StdoutCapture struct {
	oldStdout *os.File
	readPipe  *os.File
	done      chan []byte
}

func (sc *StdoutCapture) StartCapture() {
	sc.oldStdout = os.Stdout
	sc.readPipe, os.Stdout, _ = os.Pipe()
	sc.done = make(chan []byte)
	go func() {
		b, _ := io.ReadAll(sc.readPipe)
		sc.done <- b
	}()
}

func (sc *StdoutCapture) StopCapture() (string, error) {
	if sc.oldStdout == nil || sc.readPipe == nil {
		return "", errors.New("StartCapture not called before StopCapture")
	}
	os.Stdout.Close()
	os.Stdout = sc.oldStdout
	b := <-sc.done
	sc.readPipe.Close()
	return string(b), nil
}
