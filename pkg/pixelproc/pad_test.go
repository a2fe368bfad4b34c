// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package pixelproc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pperrors "github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/pixmap"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/selection"
)

func setSink(t *testing.T, d *Device, w, h uint32, code mbus.Code) mbus.FrameFormat {
	f := Format{Pad: mbus.PadSink, Which: mbus.WhichActive, Format: mbus.FrameFormat{Width: w, Height: h, Code: code}}
	require.NoError(t, d.SetFormat(nil, &f))
	return f.Format
}

func setSelection(t *testing.T, d *Device, target selection.Target, r mbus.Rect) mbus.Rect {
	s := Selection{Pad: mbus.PadSink, Which: mbus.WhichActive, Target: target, Rect: r}
	require.NoError(t, d.SetSelection(nil, &s))
	return s.Rect
}

func TestSetSinkUnknownCodeClamped(t *testing.T) {
	limits := mbus.Limits{MinWidth: 16, MaxWidth: 1280, MinHeight: 16, MaxHeight: 2160}
	d, _ := newDevice(t, mainEntity, WithLimits(limits))

	f := setSink(t, d, 1920, 1080, mbus.Code(0x5001))
	assert.Equal(t, mbus.CodeRGB888_1X24, f.Code)
	assert.Equal(t, uint32(1280), f.Width)
	assert.Equal(t, uint32(1080), f.Height)

	st := d.Active()
	assert.Equal(t, f, st.Formats[mbus.PadSink])
	assert.Equal(t, mbus.CodeRGB565_2X8_LE, st.Formats[mbus.PadSource].Code)
	assert.Equal(t, uint32(1280), st.Formats[mbus.PadSource].Width)
	assert.Equal(t, mbus.Rect{Width: 1280, Height: 1080}, st.Crop)
	assert.Equal(t, mbus.Rect{Width: 1280, Height: 1080}, st.Compose)
}

func TestSetSinkDerivesSource(t *testing.T) {
	tests := map[string]struct {
		sink mbus.Code
		src  mbus.Code
	}{
		"rgb": {sink: mbus.CodeRGB888_1X24, src: mbus.CodeRGB565_2X8_LE},
		"yuv": {sink: mbus.CodeYUV8_1X24, src: mbus.CodeYUYV8_2X8},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d, _ := newDevice(t, mainEntity)
			setSink(t, d, 1024, 768, tc.sink)
			src := d.Active().Formats[mbus.PadSource]
			assert.Equal(t, tc.src, src.Code)
			assert.Equal(t, uint32(1024), src.Width)
			assert.Equal(t, uint32(768), src.Height)
		})
	}
	assert.Equal(t, mbus.CodeYUYV8_2X8, SourceCode(mbus.CodeY8_1X8))
	assert.Equal(t, mbus.CodeRGB565_2X8_LE, SourceCode(mbus.CodeSBGGR8_1X8))
}

func TestAdjustFormat(t *testing.T) {
	d, _ := newDevice(t, mainEntity)
	tests := map[string]struct {
		pad     mbus.Pad
		in, out mbus.FrameFormat
	}{
		"field any": {
			pad: mbus.PadSink,
			in:  mbus.FrameFormat{Width: 640, Height: 480, Code: mbus.CodeYUV8_1X24, Field: mbus.FieldAny, Colorspace: mbus.ColorspaceSRGB},
			out: mbus.FrameFormat{Width: 640, Height: 480, Code: mbus.CodeYUV8_1X24, Field: mbus.FieldNone, Colorspace: mbus.ColorspaceSRGB},
		},
		"field alternate": {
			pad: mbus.PadSink,
			in:  mbus.FrameFormat{Width: 640, Height: 480, Code: mbus.CodeRGB888_1X24, Field: mbus.FieldAlternate},
			out: mbus.FrameFormat{Width: 640, Height: 480, Code: mbus.CodeRGB888_1X24, Field: mbus.FieldNone, Colorspace: mbus.ColorspaceREC709},
		},
		"field interlaced kept": {
			pad: mbus.PadSink,
			in:  mbus.FrameFormat{Width: 640, Height: 480, Code: mbus.CodeRGB888_1X24, Field: mbus.FieldInterlaced, Colorspace: mbus.ColorspaceREC709},
			out: mbus.FrameFormat{Width: 640, Height: 480, Code: mbus.CodeRGB888_1X24, Field: mbus.FieldInterlaced, Colorspace: mbus.ColorspaceREC709},
		},
		"source unknown code": {
			pad: mbus.PadSource,
			in:  mbus.FrameFormat{Width: 8, Height: 9000, Code: mbus.CodeYUV8_1X24, Field: mbus.FieldNone, Colorspace: mbus.ColorspaceREC709},
			out: mbus.FrameFormat{Width: 16, Height: 2160, Code: mbus.CodeRGB565_2X8_LE, Field: mbus.FieldNone, Colorspace: mbus.ColorspaceREC709},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := tc.in
			d.AdjustFormat(&f, tc.pad)
			assert.Equal(t, tc.out, f)
		})
	}
}

func TestSetSourceFormat(t *testing.T) {
	d, _ := newDevice(t, mainEntity)
	setSelection(t, d, selection.TargetCompose, mbus.Rect{Width: 320, Height: 240})

	f := Format{Pad: mbus.PadSource, Which: mbus.WhichActive, Format: mbus.FrameFormat{Width: 1920, Height: 1080, Code: mbus.CodeYVYU8_1_5X8}}
	require.NoError(t, d.SetFormat(nil, &f))
	assert.Equal(t, mbus.CodeYVYU8_1_5X8, f.Format.Code)
	assert.Equal(t, uint32(320), f.Format.Width)
	assert.Equal(t, uint32(240), f.Format.Height)

	f = Format{Pad: mbus.PadSource, Which: mbus.WhichActive, Format: mbus.FrameFormat{Code: mbus.CodeYUV8_1X24}}
	require.NoError(t, d.SetFormat(nil, &f))
	assert.Equal(t, mbus.CodeRGB565_2X8_LE, f.Format.Code)

	// Sink side untouched.
	assert.Equal(t, mbus.Rect{Width: 320, Height: 240}, d.Active().Compose)
	assert.Equal(t, uint32(640), d.Active().Formats[mbus.PadSink].Width)
}

func TestTryState(t *testing.T) {
	d, _ := newDevice(t, mainEntity)
	try := NewTryState()

	f := Format{Pad: mbus.PadSink, Which: mbus.WhichTry, Format: mbus.FrameFormat{Width: 1280, Height: 720, Code: mbus.CodeYUV8_1X24}}
	require.NoError(t, d.SetFormat(try, &f))
	assert.Equal(t, mbus.CodeYUYV8_2X8, try.Formats[mbus.PadSource].Code)
	// Scratch crop and compose only follow the sink on the live state.
	assert.Equal(t, mbus.Rect{Width: 640, Height: 480}, try.Crop)
	assert.Equal(t, mbus.Rect{Width: 640, Height: 480}, try.Compose)

	s := Selection{Pad: mbus.PadSink, Which: mbus.WhichTry, Target: selection.TargetCompose, Rect: mbus.Rect{Width: 640, Height: 360}}
	require.NoError(t, d.SetSelection(try, &s))
	assert.Equal(t, uint32(640), try.Formats[mbus.PadSource].Width)

	get := Format{Pad: mbus.PadSource, Which: mbus.WhichTry}
	require.NoError(t, d.GetFormat(try, &get))
	assert.Equal(t, uint32(360), get.Format.Height)

	// The live configuration is untouched.
	st := d.Active()
	assert.Equal(t, uint32(640), st.Formats[mbus.PadSink].Width)
	assert.Equal(t, mbus.CodeRGB888_1X24, st.Formats[mbus.PadSink].Code)
	assert.Equal(t, mbus.Rect{Width: 640, Height: 480}, st.Compose)

	err := d.SetFormat(nil, &Format{Pad: mbus.PadSink, Which: mbus.WhichTry})
	assert.True(t, errors.Is(err, pperrors.ErrInvalidArgument))
}

func TestCropResetsCompose(t *testing.T) {
	d, _ := newDevice(t, mainEntity)

	r := setSelection(t, d, selection.TargetCrop, mbus.Rect{Width: 640, Height: 480})
	assert.Equal(t, mbus.Rect{Width: 640, Height: 480}, r)
	st := d.Active()
	assert.Equal(t, mbus.Rect{Width: 640, Height: 480}, st.Compose)
	assert.Equal(t, uint32(640), st.Formats[mbus.PadSource].Width)
	assert.Equal(t, uint32(480), st.Formats[mbus.PadSource].Height)

	setSelection(t, d, selection.TargetCompose, mbus.Rect{Width: 100, Height: 100})
	r = setSelection(t, d, selection.TargetCrop, mbus.Rect{Left: 600, Top: 10, Width: 200, Height: 100})
	assert.Equal(t, mbus.Rect{Left: 440, Top: 10, Width: 200, Height: 100}, r)
	st = d.Active()
	assert.Equal(t, r, st.Crop)
	assert.Equal(t, r, st.Compose)
	assert.Equal(t, uint32(200), st.Formats[mbus.PadSource].Width)
}

func TestComposeClamp(t *testing.T) {
	d, _ := newDevice(t, mainEntity)
	setSelection(t, d, selection.TargetCrop, mbus.Rect{Width: 640, Height: 480})

	r := setSelection(t, d, selection.TargetCompose, mbus.Rect{Left: 1, Top: 1, Width: 5, Height: 5})
	assert.Equal(t, mbus.Rect{Width: 10, Height: 7}, r)
	st := d.Active()
	assert.Equal(t, r, st.Compose)
	assert.Equal(t, uint32(10), st.Formats[mbus.PadSource].Width)
	assert.Equal(t, uint32(7), st.Formats[mbus.PadSource].Height)
}

func TestGetSelection(t *testing.T) {
	d, _ := newDevice(t, mainEntity)
	setSink(t, d, 800, 600, mbus.CodeRGB888_1X24)
	setSelection(t, d, selection.TargetCrop, mbus.Rect{Left: 8, Top: 8, Width: 400, Height: 300})
	setSelection(t, d, selection.TargetCompose, mbus.Rect{Width: 200, Height: 150})

	tests := map[selection.Target]mbus.Rect{
		selection.TargetCrop:        {Left: 8, Top: 8, Width: 400, Height: 300},
		selection.TargetCropBounds:  {Width: 800, Height: 600},
		selection.TargetCropDefault: {Width: 800, Height: 600},
		selection.TargetCompose:     {Width: 200, Height: 150},
	}
	for target, want := range tests {
		s := Selection{Pad: mbus.PadSink, Which: mbus.WhichActive, Target: target}
		require.NoError(t, d.GetSelection(nil, &s))
		assert.Equal(t, want, s.Rect, target.String())
	}
}

func TestSelectionInvalid(t *testing.T) {
	d, _ := newDevice(t, mainEntity)
	tests := map[string]struct {
		s   Selection
		set bool
	}{
		"get source":          {s: Selection{Pad: mbus.PadSource, Which: mbus.WhichActive, Target: selection.TargetCrop}},
		"set source":          {s: Selection{Pad: mbus.PadSource, Which: mbus.WhichActive, Target: selection.TargetCrop}, set: true},
		"get bad pad":         {s: Selection{Pad: 2, Which: mbus.WhichActive, Target: selection.TargetCrop}},
		"get compose bounds":  {s: Selection{Pad: mbus.PadSink, Which: mbus.WhichActive, Target: selection.TargetComposeBounds}},
		"set crop bounds":     {s: Selection{Pad: mbus.PadSink, Which: mbus.WhichActive, Target: selection.TargetCropBounds}, set: true},
		"set native size":     {s: Selection{Pad: mbus.PadSink, Which: mbus.WhichActive, Target: selection.TargetNativeSize}, set: true},
		"try without a state": {s: Selection{Pad: mbus.PadSink, Which: mbus.WhichTry, Target: selection.TargetCrop}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := tc.s
			var err error
			if tc.set {
				err = d.SetSelection(nil, &s)
			} else {
				err = d.GetSelection(nil, &s)
			}
			assert.True(t, errors.Is(err, pperrors.ErrInvalidArgument))
		})
	}
	st := d.Active()
	assert.Equal(t, mbus.Rect{Width: 640, Height: 480}, st.Crop)
	assert.Equal(t, mbus.Rect{Width: 640, Height: 480}, st.Compose)
}

func TestInvalidPad(t *testing.T) {
	d, _ := newDevice(t, mainEntity)
	assert.True(t, errors.Is(d.GetFormat(nil, &Format{Pad: 2, Which: mbus.WhichActive}), pperrors.ErrInvalidArgument))
	assert.True(t, errors.Is(d.SetFormat(nil, &Format{Pad: 5, Which: mbus.WhichActive}), pperrors.ErrInvalidArgument))
	assert.True(t, errors.Is(d.GetFrameInterval(&FrameInterval{Pad: 2}), pperrors.ErrInvalidArgument))
	assert.True(t, errors.Is(d.SetFrameInterval(&FrameInterval{Pad: 2}), pperrors.ErrInvalidArgument))
	assert.True(t, errors.Is(d.EnumMbusCode(&CodeEnum{Pad: 2}), pperrors.ErrInvalidArgument))
}

func TestFrameInterval(t *testing.T) {
	d, _ := newDevice(t, mainEntity)

	fi := FrameInterval{Pad: mbus.PadSource, Interval: mbus.Fract{Numerator: 5, Denominator: 30}}
	require.NoError(t, d.SetFrameInterval(&fi))
	assert.Equal(t, mbus.Fract{Numerator: 4, Denominator: 30}, fi.Interval)
	assert.Equal(t, uint32(2), d.FrameRateCode())

	get := FrameInterval{Pad: mbus.PadSource}
	require.NoError(t, d.GetFrameInterval(&get))
	assert.Equal(t, mbus.Fract{Numerator: 4, Denominator: 30}, get.Interval)

	fi = FrameInterval{Pad: mbus.PadSink, Interval: mbus.Fract{Numerator: 1, Denominator: 25}}
	require.NoError(t, d.SetFrameInterval(&fi))
	get = FrameInterval{Pad: mbus.PadSource}
	require.NoError(t, d.GetFrameInterval(&get))
	assert.Equal(t, mbus.Fract{Numerator: 1, Denominator: 25}, get.Interval)
	assert.Equal(t, uint32(0), d.FrameRateCode())
}

func TestEnumMbusCode(t *testing.T) {
	d, _ := newDevice(t, auxEntity)
	for _, pad := range []mbus.Pad{mbus.PadSink, mbus.PadSource} {
		codes := []mbus.Code{}
		for i := uint32(0); ; i++ {
			e := CodeEnum{Pad: pad, Index: i}
			if err := d.EnumMbusCode(&e); err != nil {
				assert.True(t, errors.Is(err, pperrors.ErrInvalidArgument))
				break
			}
			codes = append(codes, e.Code)
		}
		assert.Len(t, codes, pixmap.Len(pad))
	}
}

func TestEnumFrameSize(t *testing.T) {
	d, _ := newDevice(t, mainEntity, WithLimits(mbus.Limits{MinWidth: 16, MaxWidth: 1280, MinHeight: 16, MaxHeight: 720}))

	e := FrameSizeEnum{Pad: mbus.PadSource, Code: mbus.CodeUYVY8_2X8}
	require.NoError(t, d.EnumFrameSize(&e))
	assert.Equal(t, uint32(16), e.MinWidth)
	assert.Equal(t, uint32(1280), e.MaxWidth)
	assert.Equal(t, uint32(16), e.MinHeight)
	assert.Equal(t, uint32(720), e.MaxHeight)

	assert.Error(t, d.EnumFrameSize(&FrameSizeEnum{Pad: mbus.PadSource, Code: mbus.CodeUYVY8_2X8, Index: 1}))
	assert.Error(t, d.EnumFrameSize(&FrameSizeEnum{Pad: mbus.PadSink, Code: mbus.CodeUYVY8_2X8}))
}

func TestEnumFrameInterval(t *testing.T) {
	d, _ := newDevice(t, mainEntity)
	fi := FrameInterval{Pad: mbus.PadSink, Interval: mbus.Fract{Numerator: 1, Denominator: 60}}
	require.NoError(t, d.SetFrameInterval(&fi))

	e := FrameIntervalEnum{Pad: mbus.PadSink, Width: 640, Height: 480}
	require.NoError(t, d.EnumFrameInterval(&e))
	assert.Equal(t, mbus.Fract{Numerator: 1, Denominator: 60}, e.Interval)
	assert.Error(t, d.EnumFrameInterval(&FrameIntervalEnum{Pad: mbus.PadSink, Index: 1}))

	for i, n := range []uint32{1, 2, 4, 8} {
		e := FrameIntervalEnum{Pad: mbus.PadSource, Index: uint32(i), Width: 640, Height: 480}
		require.NoError(t, d.EnumFrameInterval(&e))
		assert.Equal(t, mbus.Fract{Numerator: n, Denominator: 60}, e.Interval)
	}
	assert.Error(t, d.EnumFrameInterval(&FrameIntervalEnum{Pad: mbus.PadSource, Index: 4}))
	assert.Error(t, d.EnumFrameInterval(&FrameIntervalEnum{Pad: mbus.PadSource, Width: 5000}))
	assert.Error(t, d.EnumFrameInterval(&FrameIntervalEnum{Pad: mbus.PadSource, Height: 5000}))
	assert.Error(t, d.EnumFrameInterval(&FrameIntervalEnum{Pad: 2}))
}
