// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package mbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	tests := map[string]struct {
		in   string
		code Code
		err  bool
	}{
		"name":        {in: "YUYV8_2X8", code: CodeYUYV8_2X8},
		"lower":       {in: "rgb565_2x8_le", code: CodeRGB565_2X8_LE},
		"kernel name": {in: "MEDIA_BUS_FMT_RGB888_1X24", code: CodeRGB888_1X24},
		"hex":         {in: "0x2025", code: CodeYUV8_1X24},
		"decimal":     {in: "12289", code: CodeSBGGR8_1X8},
		"unknown":     {in: "NV12", err: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := ParseCode(tc.in)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.code, c)
		})
	}
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "YVYU8_1X16", CodeYVYU8_1X16.String())
	assert.Equal(t, "0x5001", Code(0x5001).String())
}

func TestCodeIsYUV(t *testing.T) {
	assert.True(t, CodeY8_1X8.IsYUV())
	assert.True(t, CodeYUV8_1X24.IsYUV())
	assert.False(t, CodeRGB888_1X24.IsYUV())
	assert.False(t, CodeSBGGR8_1X8.IsYUV())
	assert.False(t, CodeJPEG_1X8.IsYUV())
}

func TestFract(t *testing.T) {
	assert.True(t, Fract{0, 30}.IsZero())
	assert.True(t, Fract{1, 0}.IsZero())
	assert.False(t, Fract{1, 30}.IsZero())
	assert.Equal(t, "4/30", Fract{4, 30}.String())
}

func TestParseFract(t *testing.T) {
	tests := map[string]struct {
		in  string
		out Fract
		err bool
	}{
		"fraction":   {in: "1/30", out: Fract{1, 30}},
		"spaces":     {in: " 1001 / 30000 ", out: Fract{1001, 30000}},
		"integer":    {in: "2", out: Fract{2, 1}},
		"zero num":   {in: "0/30", err: true},
		"zero den":   {in: "1/0", err: true},
		"garbage":    {in: "fast", err: true},
		"bad den":    {in: "1/x", err: true},
		"negative":   {in: "-1/30", err: true},
		"empty text": {in: "", err: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := ParseFract(tc.in)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.out, f)
		})
	}
}

func TestLimitsClamp(t *testing.T) {
	l := Limits{MinWidth: 16, MaxWidth: 1280, MinHeight: 16, MaxHeight: 2160}
	tests := map[string]struct {
		in, out FrameFormat
	}{
		"inside":    {in: FrameFormat{Width: 640, Height: 480}, out: FrameFormat{Width: 640, Height: 480}},
		"too wide":  {in: FrameFormat{Width: 1920, Height: 1080}, out: FrameFormat{Width: 1280, Height: 1080}},
		"too small": {in: FrameFormat{Width: 0, Height: 2}, out: FrameFormat{Width: 16, Height: 16}},
		"too tall":  {in: FrameFormat{Width: 100, Height: 5000}, out: FrameFormat{Width: 100, Height: 2160}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := tc.in
			l.Clamp(&f)
			assert.Equal(t, tc.out, f)
		})
	}
	assert.True(t, DefaultLimits.Valid())
	assert.False(t, Limits{MinWidth: 32, MaxWidth: 16, MinHeight: 1, MaxHeight: 1}.Valid())
}
