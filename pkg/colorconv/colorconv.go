// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package colorconv

import (
	"fmt"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
)

// Config is the programming of the YUV conversion block: six coefficient
// words and the control flags.
type Config struct {
	Matrix        [6]uint32
	Clamping      bool
	ClampingAsRGB bool
	Enable        bool
}

type ColorConv interface {
	Clamp(f *mbus.FrameFormat)
	Configure(in mbus.FrameFormat, out mbus.FrameFormat) (Config, error)
}

// Clamp replaces colorimetry values the pipe does not know with defaults.
func Clamp(f *mbus.FrameFormat) {
	if f.Colorspace == mbus.ColorspaceDefault || f.Colorspace > mbus.ColorspaceDCIP3 {
		f.Colorspace = mbus.ColorspaceREC709
	}
	if f.YCbCrEnc > mbus.YCbCrEncSMPTE240M {
		f.YCbCrEnc = mbus.YCbCrEncDefault
	}
	if f.Quantization > mbus.QuantizationLimRange {
		f.Quantization = mbus.QuantizationDefault
	}
	if f.XferFunc > mbus.XferFuncSMPTE2084 {
		f.XferFunc = mbus.XferFuncDefault
	}
}

// Passthrough never converts.
type Passthrough struct{}

func (Passthrough) Clamp(f *mbus.FrameFormat) {
	Clamp(f)
}

func (Passthrough) Configure(in mbus.FrameFormat, out mbus.FrameFormat) (Config, error) {
	return Config{}, nil
}

// Rule holds the conversion used between two encoding families.
type Rule struct {
	FromYUV bool
	ToYUV   bool
	Config  Config
}

// Static selects a preconfigured conversion by the encoding family (RGB
// or YUV) of the input and output codes. No conversion is needed within a
// family, a family change without a rule is an error.
type Static struct {
	Rules []Rule
}

func (s *Static) Clamp(f *mbus.FrameFormat) {
	Clamp(f)
}

func family(yuv bool) string {
	if yuv {
		return "yuv"
	}
	return "rgb"
}

func (s *Static) Configure(in mbus.FrameFormat, out mbus.FrameFormat) (Config, error) {
	from, to := in.Code.IsYUV(), out.Code.IsYUV()
	if from == to {
		return Config{}, nil
	}
	for _, r := range s.Rules {
		if r.FromYUV == from && r.ToYUV == to {
			c := r.Config
			c.Enable = true
			return c, nil
		}
	}
	return Config{}, errors.NewPixelprocError(errors.ErrInvalidArgument,
		fmt.Sprintf("no conversion from %s to %s", family(from), family(to)))
}
