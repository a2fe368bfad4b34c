// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package pixelproc

import (
	"fmt"
	"log/slog"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/framerate"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/pixmap"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/selection"
)

type Format struct {
	Pad    mbus.Pad
	Which  mbus.Which
	Format mbus.FrameFormat
}

type Selection struct {
	Pad    mbus.Pad
	Which  mbus.Which
	Target selection.Target
	Rect   mbus.Rect
}

type FrameInterval struct {
	Pad      mbus.Pad
	Interval mbus.Fract
}

type CodeEnum struct {
	Pad   mbus.Pad
	Index uint32
	Code  mbus.Code
}

type FrameSizeEnum struct {
	Pad       mbus.Pad
	Index     uint32
	Code      mbus.Code
	MinWidth  uint32
	MaxWidth  uint32
	MinHeight uint32
	MaxHeight uint32
}

type FrameIntervalEnum struct {
	Pad      mbus.Pad
	Index    uint32
	Code     mbus.Code
	Width    uint32
	Height   uint32
	Interval mbus.Fract
}

func checkPad(pad mbus.Pad) error {
	if pad != mbus.PadSink && pad != mbus.PadSource {
		return errors.ErrInvalidPad(uint32(pad))
	}
	return nil
}

// state picks the live configuration or the caller scratch copy.
func (d *Device) state(which mbus.Which, try *State) (*State, error) {
	if which == mbus.WhichActive {
		return &d.active, nil
	}
	if try == nil {
		return nil, errors.NewPixelprocError(errors.ErrInvalidArgument, "try state missing")
	}
	return try, nil
}

// AdjustFormat makes f acceptable for the pad: unknown codes fall back to
// the pad default, the size is clamped, ANY/ALTERNATE fields become NONE.
func (d *Device) AdjustFormat(f *mbus.FrameFormat, pad mbus.Pad) {
	if _, ok := pixmap.ByCode(f.Code, pad); !ok {
		f.Code = pixmap.DefaultCode(pad)
	}
	d.limits.Clamp(f)
	if f.Field == mbus.FieldAny || f.Field == mbus.FieldAlternate {
		f.Field = mbus.FieldNone
	}
	d.colorconv.Clamp(f)
}

// SourceCode is the source code derived from a sink code.
func SourceCode(sink mbus.Code) mbus.Code {
	if sink.IsYUV() {
		return mbus.CodeYUYV8_2X8
	}
	return mbus.CodeRGB565_2X8_LE
}

func (d *Device) EnumMbusCode(e *CodeEnum) error {
	if err := checkPad(e.Pad); err != nil {
		return err
	}
	desc, ok := pixmap.ByIndex(e.Index, e.Pad)
	if !ok {
		return errors.ErrInvalidIndex(e.Index)
	}
	e.Code = desc.Code
	return nil
}

func (d *Device) EnumFrameSize(e *FrameSizeEnum) error {
	if err := checkPad(e.Pad); err != nil {
		return err
	}
	if e.Index != 0 {
		return errors.ErrInvalidIndex(e.Index)
	}
	if _, ok := pixmap.ByCode(e.Code, e.Pad); !ok {
		return errors.NewPixelprocError(errors.ErrInvalidArgument,
			fmt.Sprintf("code %s not supported on %s", e.Code, e.Pad))
	}
	e.MinWidth = d.limits.MinWidth
	e.MaxWidth = d.limits.MaxWidth
	e.MinHeight = d.limits.MinHeight
	e.MaxHeight = d.limits.MaxHeight
	return nil
}

func (d *Device) EnumFrameInterval(e *FrameIntervalEnum) error {
	if err := checkPad(e.Pad); err != nil {
		return err
	}
	if e.Width > d.limits.MaxWidth || e.Height > d.limits.MaxHeight {
		return errors.NewPixelprocError(errors.ErrInvalidArgument,
			fmt.Sprintf("frame size %dx%d out of range", e.Width, e.Height))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	interval, err := d.rate.Enumerate(e.Pad, e.Index)
	if err != nil {
		return err
	}
	e.Interval = interval
	return nil
}

func (d *Device) GetFormat(try *State, f *Format) error {
	if err := checkPad(f.Pad); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	st, err := d.state(f.Which, try)
	if err != nil {
		return err
	}
	f.Format = st.Formats[f.Pad]
	return nil
}

// SetFormat adjusts f.Format and stores it. Setting the sink format also
// replaces the source format and resets crop and compose to the frame.
func (d *Device) SetFormat(try *State, f *Format) error {
	if err := checkPad(f.Pad); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if f.Which == mbus.WhichActive && d.streaming {
		return errors.ErrStreaming("set format")
	}
	st, err := d.state(f.Which, try)
	if err != nil {
		return err
	}

	d.AdjustFormat(&f.Format, f.Pad)
	if f.Pad.IsSource() {
		f.Format.Width = st.Compose.Width
		f.Format.Height = st.Compose.Height
	}

	old := st.Formats[f.Pad]
	slog.Debug(fmt.Sprintf("%s: %s format update: old:%s new:%s", d.name, f.Pad, old, f.Format))
	st.Formats[f.Pad] = f.Format

	if !f.Pad.IsSource() {
		src := f.Format
		src.Code = SourceCode(f.Format.Code)
		st.Formats[mbus.PadSource] = src
		if f.Which == mbus.WhichActive {
			st.resetSelections()
		}
		slog.Debug(fmt.Sprintf("%s: source format update: new:%s", d.name, src))
	}
	return nil
}

func (d *Device) GetSelection(try *State, s *Selection) error {
	if err := checkPad(s.Pad); err != nil {
		return err
	}
	if s.Pad.IsSource() {
		return errors.NewPixelprocError(errors.ErrInvalidArgument, "no selection on source pad")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	st, err := d.state(s.Which, try)
	if err != nil {
		return err
	}
	switch s.Target {
	case selection.TargetCrop:
		s.Rect = st.Crop
	case selection.TargetCropBounds, selection.TargetCropDefault:
		s.Rect = selection.Bound(st.Formats[mbus.PadSink])
	case selection.TargetCompose:
		s.Rect = st.Compose
	default:
		return errors.ErrInvalidTarget(s.Target.String())
	}
	return nil
}

// SetSelection adjusts and stores crop or compose. Setting the crop also
// sets the compose to the same rectangle, the source size follows.
func (d *Device) SetSelection(try *State, s *Selection) error {
	if err := checkPad(s.Pad); err != nil {
		return err
	}
	if s.Pad.IsSource() {
		return errors.NewPixelprocError(errors.ErrInvalidArgument, "no selection on source pad")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if s.Which == mbus.WhichActive && d.streaming {
		return errors.ErrStreaming("set selection")
	}
	st, err := d.state(s.Which, try)
	if err != nil {
		return err
	}

	switch s.Target {
	case selection.TargetCrop:
		s.Rect = selection.AdjustCrop(s.Rect, st.Formats[mbus.PadSink], d.limits)
		st.Crop = s.Rect
		st.Compose = s.Rect
		slog.Debug(fmt.Sprintf("%s: s_selection: crop %s", d.name, s.Rect))
	case selection.TargetCompose:
		s.Rect = selection.AdjustCompose(s.Rect, st.Crop)
		st.Compose = s.Rect
		slog.Debug(fmt.Sprintf("%s: s_selection: compose %s", d.name, s.Rect))
	default:
		return errors.ErrInvalidTarget(s.Target.String())
	}

	st.Formats[mbus.PadSource].Width = s.Rect.Width
	st.Formats[mbus.PadSource].Height = s.Rect.Height
	return nil
}

func (d *Device) GetFrameInterval(fi *FrameInterval) error {
	if err := checkPad(fi.Pad); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	fi.Interval = d.rate.Interval(fi.Pad)
	return nil
}

// SetFrameInterval stores the interval and returns in fi the interval
// the pipe achieves. On the source pad this is the sink interval times
// the selected frame skip divisor.
func (d *Device) SetFrameInterval(fi *FrameInterval) error {
	if err := checkPad(fi.Pad); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.streaming {
		return errors.ErrStreaming("set frame interval")
	}
	fi.Interval = d.rate.SetInterval(fi.Pad, fi.Interval)
	slog.Debug(fmt.Sprintf("%s: %s frame interval %s (skip 1/%d)",
		d.name, fi.Pad, fi.Interval, framerate.Divisors[d.rate.Code()]))
	return nil
}
