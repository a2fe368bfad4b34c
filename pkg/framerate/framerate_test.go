// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package framerate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pperrors "github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
)

func TestSelectCodeStep(t *testing.T) {
	sink := mbus.Fract{Numerator: 1, Denominator: 30}
	want := map[uint32]uint32{0: 0, 1: 0, 2: 1, 3: 1, 4: 2, 5: 2, 7: 2, 8: 3, 9: 3, 16: 3, 100: 3}
	for ratio, code := range want {
		requested := mbus.Fract{Numerator: ratio, Denominator: 30}
		assert.Equal(t, code, SelectCode(sink, requested), "ratio %d", ratio)
	}
}

func TestSetSourceInterval(t *testing.T) {
	tests := map[string]struct {
		requested mbus.Fract
		src       mbus.Fract
		divisor   uint32
	}{
		"ratio 5":   {requested: mbus.Fract{Numerator: 1, Denominator: 6}, src: mbus.Fract{Numerator: 4, Denominator: 30}, divisor: 4},
		"same":      {requested: mbus.Fract{Numerator: 1, Denominator: 30}, src: mbus.Fract{Numerator: 1, Denominator: 30}, divisor: 1},
		"faster":    {requested: mbus.Fract{Numerator: 1, Denominator: 60}, src: mbus.Fract{Numerator: 1, Denominator: 30}, divisor: 1},
		"just 2":    {requested: mbus.Fract{Numerator: 2, Denominator: 30}, src: mbus.Fract{Numerator: 2, Denominator: 30}, divisor: 2},
		"below 2":   {requested: mbus.Fract{Numerator: 59, Denominator: 900}, src: mbus.Fract{Numerator: 1, Denominator: 30}, divisor: 1},
		"one fps":   {requested: mbus.Fract{Numerator: 1, Denominator: 1}, src: mbus.Fract{Numerator: 8, Denominator: 30}, divisor: 8},
		"zero num":  {requested: mbus.Fract{Numerator: 0, Denominator: 5}, src: mbus.Fract{Numerator: 1, Denominator: 30}, divisor: 1},
		"zero den":  {requested: mbus.Fract{Numerator: 5, Denominator: 0}, src: mbus.Fract{Numerator: 1, Denominator: 30}, divisor: 1},
		"big terms": {requested: mbus.Fract{Numerator: 1000000, Denominator: 7500000}, src: mbus.Fract{Numerator: 4, Denominator: 30}, divisor: 4},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewController(DefaultInterval)
			got := c.SetInterval(mbus.PadSource, tc.requested)
			assert.Equal(t, tc.src, got)
			assert.Equal(t, tc.src, c.Interval(mbus.PadSource))
			assert.Equal(t, tc.divisor, c.Divisor())
			src, ok := Scale(c.Interval(mbus.PadSink), c.Divisor())
			require.True(t, ok)
			assert.Equal(t, src, c.Interval(mbus.PadSource))
		})
	}
}

func TestScaleOverflow(t *testing.T) {
	f, ok := Scale(mbus.Fract{Numerator: 1 << 29, Denominator: 1}, 8)
	assert.False(t, ok)
	assert.Equal(t, mbus.Fract{Numerator: 1 << 29, Denominator: 1}, f)

	f, ok = Scale(mbus.Fract{Numerator: 1<<29 - 1, Denominator: 3}, 8)
	assert.True(t, ok)
	assert.Equal(t, mbus.Fract{Numerator: (1<<29 - 1) * 8, Denominator: 3}, f)
}

func TestSetSourceIntervalLargeNumerator(t *testing.T) {
	sink := mbus.Fract{Numerator: 1 << 30, Denominator: 8}
	c := NewController(sink)

	// Ratio 8 is requested, only divisor 2 keeps the numerator in range.
	got := c.SetInterval(mbus.PadSource, mbus.Fract{Numerator: math.MaxUint32, Denominator: 1})
	assert.Equal(t, uint32(1), c.Code())
	assert.Equal(t, mbus.Fract{Numerator: 1 << 31, Denominator: 8}, got)
	assert.Equal(t, uint64(sink.Numerator)*uint64(c.Divisor()), uint64(got.Numerator))

	_, err := c.Enumerate(mbus.PadSource, 2)
	assert.True(t, errors.Is(err, pperrors.ErrInvalidArgument))
	f, err := c.Enumerate(mbus.PadSource, 1)
	require.NoError(t, err)
	assert.Equal(t, got, f)
}

func TestSetSinkIntervalResetsSkip(t *testing.T) {
	c := NewController(DefaultInterval)
	c.SetInterval(mbus.PadSource, mbus.Fract{Numerator: 1, Denominator: 1})
	require.Equal(t, uint32(3), c.Code())

	got := c.SetInterval(mbus.PadSink, mbus.Fract{Numerator: 1, Denominator: 60})
	assert.Equal(t, mbus.Fract{Numerator: 1, Denominator: 60}, got)
	assert.Equal(t, uint32(0), c.Code())
	assert.Equal(t, mbus.Fract{Numerator: 1, Denominator: 60}, c.Interval(mbus.PadSource))

	got = c.SetInterval(mbus.PadSink, mbus.Fract{})
	assert.Equal(t, mbus.Fract{Numerator: 1, Denominator: 60}, got)
}

func TestEnumerate(t *testing.T) {
	c := NewController(DefaultInterval)
	c.SetInterval(mbus.PadSource, mbus.Fract{Numerator: 1, Denominator: 15})

	f, err := c.Enumerate(mbus.PadSink, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, f)
	_, err = c.Enumerate(mbus.PadSink, 1)
	assert.True(t, errors.Is(err, pperrors.ErrInvalidArgument))

	for i, d := range Divisors {
		f, err := c.Enumerate(mbus.PadSource, uint32(i))
		require.NoError(t, err)
		assert.Equal(t, mbus.Fract{Numerator: d, Denominator: 30}, f)
	}
	_, err = c.Enumerate(mbus.PadSource, 4)
	assert.True(t, errors.Is(err, pperrors.ErrInvalidArgument))
}

func TestNewControllerZero(t *testing.T) {
	c := NewController(mbus.Fract{})
	assert.Equal(t, DefaultInterval, c.Interval(mbus.PadSink))
	assert.Equal(t, DefaultInterval, c.Interval(mbus.PadSource))
}
