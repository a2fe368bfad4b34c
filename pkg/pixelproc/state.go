// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package pixelproc

import (
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/pixmap"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// State holds the pad formats and the sink selections. The device owns
// the active State, callers negotiating with WhichTry own theirs.
type State struct {
	Formats [2]mbus.FrameFormat
	Crop    mbus.Rect
	Compose mbus.Rect
}

func DefaultFormat(pad mbus.Pad) mbus.FrameFormat {
	return mbus.FrameFormat{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Code:         pixmap.DefaultCode(pad),
		Field:        mbus.FieldNone,
		Colorspace:   mbus.ColorspaceREC709,
		YCbCrEnc:     mbus.YCbCrEncDefault,
		Quantization: mbus.QuantizationDefault,
		XferFunc:     mbus.XferFuncDefault,
	}
}

// NewTryState returns a scratch state initialised with the defaults.
func NewTryState() *State {
	full := mbus.Rect{Width: DefaultWidth, Height: DefaultHeight}
	return &State{
		Formats: [2]mbus.FrameFormat{
			DefaultFormat(mbus.PadSink),
			DefaultFormat(mbus.PadSource),
		},
		Crop:    full,
		Compose: full,
	}
}

func (s *State) resetSelections() {
	sink := s.Formats[mbus.PadSink]
	s.Crop = mbus.Rect{Width: sink.Width, Height: sink.Height}
	s.Compose = s.Crop
}
