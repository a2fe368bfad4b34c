// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"fmt"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
)

// Downscale is done by the decimation block (1/2/4/8) followed by the
// downsize block (up to 8x).
const (
	MaxDecimationRatio = 8
	MaxDownsizeRatio   = 8
	MaxDownscaleRatio  = MaxDecimationRatio * MaxDownsizeRatio
)

type Target uint32

const (
	TargetCrop           Target = 0x0000
	TargetCropDefault    Target = 0x0001
	TargetCropBounds     Target = 0x0002
	TargetNativeSize     Target = 0x0003
	TargetCompose        Target = 0x0100
	TargetComposeDefault Target = 0x0101
	TargetComposeBounds  Target = 0x0102
	TargetComposePadded  Target = 0x0103
)

func (t Target) String() string {
	switch t {
	case TargetCrop:
		return "crop"
	case TargetCropDefault:
		return "crop-default"
	case TargetCropBounds:
		return "crop-bounds"
	case TargetNativeSize:
		return "native-size"
	case TargetCompose:
		return "compose"
	case TargetComposeDefault:
		return "compose-default"
	case TargetComposeBounds:
		return "compose-bounds"
	case TargetComposePadded:
		return "compose-padded"
	default:
		return fmt.Sprintf("target(0x%x)", uint32(t))
	}
}

// Bound is the rectangle covering the whole frame.
func Bound(f mbus.FrameFormat) mbus.Rect {
	return mbus.Rect{Left: 0, Top: 0, Width: f.Width, Height: f.Height}
}

func SetMinSize(r *mbus.Rect, width, height uint32) {
	if r.Width < width {
		r.Width = width
	}
	if r.Height < height {
		r.Height = height
	}
}

// MapInside shrinks r to the size of boundary if needed and then moves it
// so it lies completely inside boundary.
func MapInside(r *mbus.Rect, boundary mbus.Rect) {
	if r.Width > boundary.Width {
		r.Width = boundary.Width
	}
	if r.Height > boundary.Height {
		r.Height = boundary.Height
	}
	if r.Left < boundary.Left {
		r.Left = boundary.Left
	}
	if r.Top < boundary.Top {
		r.Top = boundary.Top
	}
	if int64(r.Left)+int64(r.Width) > int64(boundary.Left)+int64(boundary.Width) {
		r.Left = int32(int64(boundary.Left) + int64(boundary.Width) - int64(r.Width))
	}
	if int64(r.Top)+int64(r.Height) > int64(boundary.Top)+int64(boundary.Height) {
		r.Top = int32(int64(boundary.Top) + int64(boundary.Height) - int64(r.Height))
	}
}

// AdjustCrop returns r grown to the minimum size and mapped inside the
// sink frame.
func AdjustCrop(r mbus.Rect, sink mbus.FrameFormat, limits mbus.Limits) mbus.Rect {
	SetMinSize(&r, limits.MinWidth, limits.MinHeight)
	MapInside(&r, Bound(sink))
	return r
}

// AdjustCompose clamps the compose size between crop/64 and crop, the
// compose rectangle always starts at the origin.
func AdjustCompose(r mbus.Rect, crop mbus.Rect) mbus.Rect {
	if r.Width > crop.Width {
		r.Width = crop.Width
	} else if r.Width < crop.Width/MaxDownscaleRatio {
		r.Width = crop.Width / MaxDownscaleRatio
	}
	if r.Height > crop.Height {
		r.Height = crop.Height
	} else if r.Height < crop.Height/MaxDownscaleRatio {
		r.Height = crop.Height / MaxDownscaleRatio
	}
	r.Top = 0
	r.Left = 0
	return r
}
