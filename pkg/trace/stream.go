// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	flatbuffers "github.com/google/flatbuffers/go"
)

// MaxFrameSize bounds the size prefix accepted from a stream. Register
// write frames are a few dozen bytes.
const MaxFrameSize = 4096

type Stream struct {
	File   string
	Reader io.Reader
	stack  []Flatbuffer // Supports unit tests.
}

func (s Stream) Messages() iter.Seq[Flatbuffer] {
	return func(yield func(Flatbuffer) bool) {
		for _, m := range s.stack {
			if !yield(m) {
				return
			}
		}

		r := s.Reader
		if r == nil {
			if len(s.File) == 0 {
				return
			}
			f, err := os.Open(s.File)
			if err != nil {
				slog.Error(fmt.Sprintf("trace: open failed: %v", err))
				return
			}
			defer f.Close()
			r = f
		}
		for {
			// Get the size of the next flatbuffer.
			b := make([]byte, flatbuffers.SizeUint32)
			if _, err := io.ReadFull(r, b); err != nil {
				break
			}
			length := flatbuffers.GetSizePrefix(b, 0)
			if length > MaxFrameSize {
				slog.Warn(fmt.Sprintf("Corrupt flatbuffer size prefix %d, stream abandoned", length))
				break
			}

			// Load the rest of the flatbuffer.
			flatbuffer := make([]byte, length)
			readLen, err := io.ReadFull(r, flatbuffer)
			if err != nil {
				slog.Warn(fmt.Sprintf("Incomplete flatbuffer, read len %d (expected %d)", readLen, length))
				break
			}

			if length < flatbuffers.SizeUOffsetT+uint32(len(FileIdentifier)) {
				slog.Warn(fmt.Sprintf("Short flatbuffer skipped, len %d", length))
				continue
			}

			switch id := flatbuffers.GetBufferIdentifier(flatbuffer); id {
			case FileIdentifier:
				rw, err := Decode(flatbuffer)
				if err != nil {
					slog.Warn(err.Error())
					continue
				}
				if !yield(RegisterWriteMsg{Msg: rw}) {
					return
				}
			default:
				slog.Warn(fmt.Sprintf("unsupported flatbuffer, file_identifier: %s", id))
			}
		}
	}
}

func (s Stream) Process(v *Visitor) error {
	if len(s.File) > 0 && s.Reader == nil {
		if _, err := os.Stat(s.File); err != nil {
			return err
		}
	}
	for m := range s.Messages() {
		m.Accept(v)
	}
	return nil
}
