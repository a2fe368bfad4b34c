// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package pixmap

import (
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
)

// Format is the pixel packer output format id (PPCR FORMAT field).
type Format uint32

const (
	FormatRGB888OrYUV444 Format = 0x0
	FormatRGB565         Format = 0x1
	FormatARGB8888       Format = 0x2
	FormatRGBA8888       Format = 0x3
	FormatY8             Format = 0x4
	FormatYUV444         Format = 0x5
	FormatYUYV           Format = 0x6
	FormatNV61           Format = 0x7
	FormatNV21           Format = 0x8
	FormatYV12           Format = 0x9
	FormatUYVY           Format = 0xa
)

const (
	SinkDefaultCode   = mbus.CodeRGB888_1X24
	SourceDefaultCode = mbus.CodeRGB565_2X8_LE
)

// Descriptor maps a media bus code to the packer configuration.
//
// Memory layouts without a media bus code of their own (semiplanar and
// planar) borrow a YUV code and are told apart by SwapUV only. Layout
// names the memory layout actually produced.
type Descriptor struct {
	Code   mbus.Code
	Format Format
	SwapUV bool
	Layout string
}

var sinkCatalog = []Descriptor{
	{Code: mbus.CodeRGB888_1X24, Format: FormatRGB888OrYUV444, Layout: "RGB24"},
	{Code: mbus.CodeYUV8_1X24, Format: FormatRGB888OrYUV444, Layout: "YUV24"},
}

var sourceCatalog = []Descriptor{
	{Code: mbus.CodeRGB888_1X24, Format: FormatRGB888OrYUV444, SwapUV: true, Layout: "RGB24"},
	{Code: mbus.CodeBGR888_1X24, Format: FormatRGB888OrYUV444, Layout: "BGR24"},
	{Code: mbus.CodeRGB565_2X8_LE, Format: FormatRGB565, Layout: "RGB565"},
	{Code: mbus.CodeYUYV8_2X8, Format: FormatYUYV, Layout: "YUYV"},
	{Code: mbus.CodeYVYU8_2X8, Format: FormatYUYV, SwapUV: true, Layout: "YVYU"},
	{Code: mbus.CodeUYVY8_2X8, Format: FormatUYVY, Layout: "UYVY"},
	{Code: mbus.CodeVYUY8_2X8, Format: FormatUYVY, SwapUV: true, Layout: "VYUY"},
	{Code: mbus.CodeY8_1X8, Format: FormatY8, Layout: "GREY"},
	{Code: mbus.CodeYUYV8_1_5X8, Format: FormatNV21, Layout: "NV12"},
	{Code: mbus.CodeYVYU8_1_5X8, Format: FormatNV21, SwapUV: true, Layout: "NV21"},
	{Code: mbus.CodeYUYV8_1X16, Format: FormatNV61, Layout: "NV16"},
	{Code: mbus.CodeYVYU8_1X16, Format: FormatNV61, SwapUV: true, Layout: "NV61"},
	{Code: mbus.CodeUYVY8_1_5X8, Format: FormatYV12, Layout: "YU12"},
	{Code: mbus.CodeVYUY8_1_5X8, Format: FormatYV12, SwapUV: true, Layout: "YV12"},
}

func catalog(pad mbus.Pad) []Descriptor {
	if pad.IsSource() {
		return sourceCatalog
	}
	return sinkCatalog
}

// ByCode looks up a code in the catalog of the pad.
func ByCode(code mbus.Code, pad mbus.Pad) (Descriptor, bool) {
	for _, d := range catalog(pad) {
		if d.Code == code {
			return d, true
		}
	}
	return Descriptor{}, false
}

// ByIndex returns the i-th entry of the catalog of the pad.
func ByIndex(i uint32, pad mbus.Pad) (Descriptor, bool) {
	l := catalog(pad)
	if int(i) >= len(l) {
		return Descriptor{}, false
	}
	return l[i], true
}

func Len(pad mbus.Pad) int {
	return len(catalog(pad))
}

func DefaultCode(pad mbus.Pad) mbus.Code {
	if pad.IsSource() {
		return SourceDefaultCode
	}
	return SinkDefaultCode
}
