// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package mbus

import (
	"fmt"
	"strconv"
	"strings"
)

// Code is a media bus pixel code. Values match the Linux
// MEDIA_BUS_FMT_* definitions.
type Code uint32

const (
	CodeFixed Code = 0x0001

	CodeRGB565_2X8_LE Code = 0x1008
	CodeRGB888_1X24   Code = 0x100a
	CodeBGR888_1X24   Code = 0x1013

	CodeY8_1X8      Code = 0x2001
	CodeUYVY8_1_5X8 Code = 0x2002
	CodeVYUY8_1_5X8 Code = 0x2003
	CodeYUYV8_1_5X8 Code = 0x2004
	CodeYVYU8_1_5X8 Code = 0x2005
	CodeUYVY8_2X8   Code = 0x2006
	CodeVYUY8_2X8   Code = 0x2007
	CodeYUYV8_2X8   Code = 0x2008
	CodeYVYU8_2X8   Code = 0x2009
	CodeUYVY8_1X16  Code = 0x200f
	CodeVYUY8_1X16  Code = 0x2010
	CodeYUYV8_1X16  Code = 0x2011
	CodeYVYU8_1X16  Code = 0x2012
	CodeYUV8_1X24   Code = 0x2025

	CodeSBGGR8_1X8 Code = 0x3001
	CodeSGBRG8_1X8 Code = 0x3013
	CodeSGRBG8_1X8 Code = 0x3002
	CodeSRGGB8_1X8 Code = 0x3014

	CodeJPEG_1X8 Code = 0x4001
)

var codeNames = []struct {
	code Code
	name string
}{
	{CodeFixed, "FIXED"},
	{CodeRGB565_2X8_LE, "RGB565_2X8_LE"},
	{CodeRGB888_1X24, "RGB888_1X24"},
	{CodeBGR888_1X24, "BGR888_1X24"},
	{CodeY8_1X8, "Y8_1X8"},
	{CodeUYVY8_1_5X8, "UYVY8_1_5X8"},
	{CodeVYUY8_1_5X8, "VYUY8_1_5X8"},
	{CodeYUYV8_1_5X8, "YUYV8_1_5X8"},
	{CodeYVYU8_1_5X8, "YVYU8_1_5X8"},
	{CodeUYVY8_2X8, "UYVY8_2X8"},
	{CodeVYUY8_2X8, "VYUY8_2X8"},
	{CodeYUYV8_2X8, "YUYV8_2X8"},
	{CodeYVYU8_2X8, "YVYU8_2X8"},
	{CodeUYVY8_1X16, "UYVY8_1X16"},
	{CodeVYUY8_1X16, "VYUY8_1X16"},
	{CodeYUYV8_1X16, "YUYV8_1X16"},
	{CodeYVYU8_1X16, "YVYU8_1X16"},
	{CodeYUV8_1X24, "YUV8_1X24"},
	{CodeSBGGR8_1X8, "SBGGR8_1X8"},
	{CodeSGBRG8_1X8, "SGBRG8_1X8"},
	{CodeSGRBG8_1X8, "SGRBG8_1X8"},
	{CodeSRGGB8_1X8, "SRGGB8_1X8"},
	{CodeJPEG_1X8, "JPEG_1X8"},
}

func (c Code) String() string {
	for _, n := range codeNames {
		if n.code == c {
			return n.name
		}
	}
	return fmt.Sprintf("0x%04x", uint32(c))
}

// IsYUV reports whether the code falls in the luma/chroma range, that is
// after Y8_1X8 and before the first Bayer code.
func (c Code) IsYUV() bool {
	return c >= CodeY8_1X8 && c < CodeSBGGR8_1X8
}

// ParseCode accepts a code name, with or without the MEDIA_BUS_FMT_ prefix,
// or a numeric value (decimal or 0x prefixed hex).
func ParseCode(s string) (Code, error) {
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "MEDIA_BUS_FMT_")
	for _, n := range codeNames {
		if n.name == name {
			return n.code, nil
		}
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown media bus code: %q", s)
	}
	return Code(v), nil
}
