// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package scaler

import (
	"fmt"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/selection"
)

const (
	MaxDec     = 3
	RatioConst = 8192
	RatioMax   = 65535
	DivConst   = 1024
	DivMax     = 1023
)

// Axis holds the decimation exponent (0..3 for 1/2/4/8) and the downsize
// fields for one direction.
type Axis struct {
	Dec   uint32
	Ratio uint32
	Div   uint32
	Size  uint32
}

type Params struct {
	H Axis
	V Axis
}

func (p Params) Decimating() bool {
	return p.H.Dec != 0 || p.V.Dec != 0
}

func (p Params) String() string {
	return fmt.Sprintf("hdec: 0x%x, vdec: 0x%x, hratio: 0x%x, vratio: 0x%x, hdiv: 0x%x, vdiv: 0x%x",
		p.H.Dec, p.V.Dec, p.H.Ratio, p.V.Ratio, p.H.Div, p.V.Div)
}

// CompileAxis decimates by powers of two until the downsize block can
// reach target, then derives the downsize ratio and divider.
//
// Decimation stops at 1/8 (MaxDec) because a fourth step would not fit the
// 2-bit HDEC field and would spill into VDEC. Unlike the uncapped loop of the driver, when
// target was floored below dim/64 the result no longer satisfies
// target*8 >= dim>>dec: the ratio saturates at RatioMax and the produced
// image is larger than target would need (480 to 7 yields dec 3, not 4).
func CompileAxis(dim, target uint32) Axis {
	postDec := uint64(dim)
	t := uint64(target)
	var dec uint32
	for dec < MaxDec && t*selection.MaxDownsizeRatio < postDec {
		dec++
		postDec /= 2
	}
	ratio := postDec * RatioConst / t
	if ratio > RatioMax {
		ratio = RatioMax
	}
	div := t * DivConst / postDec
	if div > DivMax {
		div = DivMax
	}
	return Axis{Dec: dec, Ratio: uint32(ratio), Div: uint32(div), Size: target}
}

// Compile derives the scaler configuration for a crop/compose pair.
func Compile(crop, compose mbus.Rect) (Params, error) {
	if compose.Width == 0 || compose.Height == 0 {
		return Params{}, errors.NewPixelprocError(errors.ErrInvalidArgument,
			fmt.Sprintf("empty compose %s", compose))
	}
	if compose.Width > crop.Width || compose.Height > crop.Height {
		return Params{}, errors.NewPixelprocError(errors.ErrInvalidArgument,
			fmt.Sprintf("compose %s exceeds crop %s", compose, crop))
	}
	return Params{
		H: CompileAxis(crop.Width, compose.Width),
		V: CompileAxis(crop.Height, compose.Height),
	}, nil
}
