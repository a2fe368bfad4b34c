// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package mbus

import (
	"fmt"
	"strconv"
	"strings"
)

type Field uint32

const (
	FieldAny Field = iota
	FieldNone
	FieldTop
	FieldBottom
	FieldInterlaced
	FieldSeqTB
	FieldSeqBT
	FieldAlternate
	FieldInterlacedTB
	FieldInterlacedBT
)

type Colorspace uint32

const (
	ColorspaceDefault Colorspace = iota
	ColorspaceSMPTE170M
	ColorspaceSMPTE240M
	ColorspaceREC709
	ColorspaceBT878
	Colorspace470SystemM
	Colorspace470SystemBG
	ColorspaceJPEG
	ColorspaceSRGB
	ColorspaceOPRGB
	ColorspaceBT2020
	ColorspaceRaw
	ColorspaceDCIP3
)

type YCbCrEncoding uint32

const (
	YCbCrEncDefault YCbCrEncoding = iota
	YCbCrEnc601
	YCbCrEnc709
	YCbCrEncXV601
	YCbCrEncXV709
	YCbCrEncSYCC
	YCbCrEncBT2020
	YCbCrEncBT2020ConstLum
	YCbCrEncSMPTE240M
)

type Quantization uint32

const (
	QuantizationDefault Quantization = iota
	QuantizationFullRange
	QuantizationLimRange
)

type XferFunc uint32

const (
	XferFuncDefault XferFunc = iota
	XferFunc709
	XferFuncSRGB
	XferFuncOPRGB
	XferFuncSMPTE240M
	XferFuncNone
	XferFuncDCIP3
	XferFuncSMPTE2084
)

// FrameFormat describes the frames carried on one pad.
type FrameFormat struct {
	Width        uint32
	Height       uint32
	Code         Code
	Field        Field
	Colorspace   Colorspace
	YCbCrEnc     YCbCrEncoding
	Quantization Quantization
	XferFunc     XferFunc
}

func (f FrameFormat) String() string {
	return fmt.Sprintf("%dx%d (0x%x, %d, %d, %d, %d)",
		f.Width, f.Height, uint32(f.Code), f.Colorspace, f.Quantization, f.XferFunc, f.YCbCrEnc)
}

// Rect is a selection rectangle, left/top may be negative on input.
type Rect struct {
	Left   int32
	Top    int32
	Width  uint32
	Height uint32
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width, r.Height, r.Left, r.Top)
}

// Fract is a frame interval in seconds, Numerator/Denominator.
type Fract struct {
	Numerator   uint32
	Denominator uint32
}

func (f Fract) IsZero() bool {
	return f.Numerator == 0 || f.Denominator == 0
}

func (f Fract) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// ParseFract reads an interval written as "n/d", a bare "n" means n/1.
func ParseFract(s string) (Fract, error) {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	n, err := strconv.ParseUint(strings.TrimSpace(num), 10, 32)
	if err != nil {
		return Fract{}, fmt.Errorf("bad interval: %q", s)
	}
	d := uint64(1)
	if found {
		if d, err = strconv.ParseUint(strings.TrimSpace(den), 10, 32); err != nil {
			return Fract{}, fmt.Errorf("bad interval: %q", s)
		}
	}
	f := Fract{Numerator: uint32(n), Denominator: uint32(d)}
	if f.IsZero() {
		return Fract{}, fmt.Errorf("zero interval: %q", s)
	}
	return f, nil
}

type Pad uint32

const (
	PadSink Pad = iota
	PadSource
)

func (p Pad) IsSource() bool {
	return p != PadSink
}

func (p Pad) String() string {
	switch p {
	case PadSink:
		return "sink"
	case PadSource:
		return "src"
	default:
		return fmt.Sprintf("pad%d", uint32(p))
	}
}

// Which selects the live configuration or a negotiation scratch copy.
type Which uint32

const (
	WhichTry Which = iota
	WhichActive
)

func (w Which) String() string {
	if w == WhichActive {
		return "active"
	}
	return "try"
}
