// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package mbus

// Limits bounds the frame size accepted on both pads.
type Limits struct {
	MinWidth  uint32
	MaxWidth  uint32
	MinHeight uint32
	MaxHeight uint32
}

var DefaultLimits = Limits{
	MinWidth:  16,
	MaxWidth:  4096,
	MinHeight: 16,
	MaxHeight: 2160,
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp limits the width and height of f.
func (l Limits) Clamp(f *FrameFormat) {
	f.Width = clamp(f.Width, l.MinWidth, l.MaxWidth)
	f.Height = clamp(f.Height, l.MinHeight, l.MaxHeight)
}

// Valid reports whether the limits describe a non empty range.
func (l Limits) Valid() bool {
	return l.MinWidth > 0 && l.MinHeight > 0 && l.MinWidth <= l.MaxWidth && l.MinHeight <= l.MaxHeight
}
