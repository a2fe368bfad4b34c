// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package framerate

import (
	"math"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
)

// Divisors lists the frame skip ratios, indexed by the FRATE code.
var Divisors = [...]uint32{1, 2, 4, 8}

var DefaultInterval = mbus.Fract{Numerator: 1, Denominator: 30}

// SelectCode returns the FRATE code for the largest divisor not above the
// requested/sink interval ratio.
func SelectCode(sink, requested mbus.Fract) uint32 {
	ratio := (uint64(sink.Denominator) * uint64(requested.Numerator)) /
		(uint64(sink.Numerator) * uint64(requested.Denominator))
	switch {
	case ratio >= 8:
		return 3
	case ratio >= 4:
		return 2
	case ratio >= 2:
		return 1
	default:
		return 0
	}
}

// Scale multiplies an interval by a divisor. It reports false, and returns
// the interval unchanged, when the numerator does not fit 32 bits.
func Scale(interval mbus.Fract, divisor uint32) (mbus.Fract, bool) {
	n := uint64(interval.Numerator) * uint64(divisor)
	if n > math.MaxUint32 {
		return interval, false
	}
	return mbus.Fract{
		Numerator:   uint32(n),
		Denominator: interval.Denominator,
	}, true
}

// Controller keeps the sink and source intervals and the skip code.
// It is not safe for concurrent use, the owner serializes access.
type Controller struct {
	sink  mbus.Fract
	src   mbus.Fract
	frate uint32
}

func NewController(interval mbus.Fract) *Controller {
	if interval.IsZero() {
		interval = DefaultInterval
	}
	return &Controller{sink: interval, src: interval}
}

func (c *Controller) Interval(pad mbus.Pad) mbus.Fract {
	if pad.IsSource() {
		return c.src
	}
	return c.sink
}

// SetInterval stores the requested interval and returns the interval
// actually achieved on the pad. A zero fraction means the sink interval.
func (c *Controller) SetInterval(pad mbus.Pad, requested mbus.Fract) mbus.Fract {
	if requested.IsZero() {
		requested = c.sink
	}
	if !pad.IsSource() {
		// Sink interval propagates to the source and resets frame skipping.
		c.frate = 0
		c.sink = requested
		c.src = c.sink
		return c.sink
	}
	c.frate = SelectCode(c.sink, requested)
	src, ok := Scale(c.sink, Divisors[c.frate])
	for !ok {
		// Divisor 1 always fits.
		c.frate--
		src, ok = Scale(c.sink, Divisors[c.frate])
	}
	c.src = src
	return c.src
}

// Enumerate lists the sink interval (index 0 only) or the intervals
// reachable on the source with each divisor.
func (c *Controller) Enumerate(pad mbus.Pad, index uint32) (mbus.Fract, error) {
	if !pad.IsSource() {
		if index != 0 {
			return mbus.Fract{}, errors.ErrInvalidIndex(index)
		}
		return c.sink, nil
	}
	if int(index) >= len(Divisors) {
		return mbus.Fract{}, errors.ErrInvalidIndex(index)
	}
	f, ok := Scale(c.sink, Divisors[index])
	if !ok {
		return mbus.Fract{}, errors.ErrInvalidIndex(index)
	}
	return f, nil
}

// Code is the committed FRATE field value.
func (c *Controller) Code() uint32 {
	return c.frate
}

func (c *Controller) Divisor() uint32 {
	return Divisors[c.frate]
}
