// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package regs

// Reg is a register offset relative to the pipe block base.
type Reg uint32

const (
	FCTCR   Reg = 0x00
	CRSTR   Reg = 0x04
	CRSZR   Reg = 0x08
	DCCR    Reg = 0x0c
	DSCR    Reg = 0x10
	DSRTIOR Reg = 0x14
	DSSZR   Reg = 0x18
	GMCR    Reg = 0x70
	YUVCR   Reg = 0x80
	YUVRR1  Reg = 0x84
	YUVRR2  Reg = 0x88
	YUVGR1  Reg = 0x8c
	YUVGR2  Reg = 0x90
	YUVBR1  Reg = 0x94
	YUVBR2  Reg = 0x98
	PPCR    Reg = 0xc0
)

var regNames = map[Reg]string{
	FCTCR:   "FCTCR",
	CRSTR:   "CRSTR",
	CRSZR:   "CRSZR",
	DCCR:    "DCCR",
	DSCR:    "DSCR",
	DSRTIOR: "DSRTIOR",
	DSSZR:   "DSSZR",
	GMCR:    "GMCR",
	YUVCR:   "YUVCR",
	YUVRR1:  "YUVRR1",
	YUVRR2:  "YUVRR2",
	YUVGR1:  "YUVGR1",
	YUVGR2:  "YUVGR2",
	YUVBR1:  "YUVBR1",
	YUVBR2:  "YUVBR2",
	PPCR:    "PPCR",
}

func (r Reg) String() string {
	if n, ok := regNames[r]; ok {
		return n
	}
	return "UNKNOWN"
}

func (r Reg) colorConvOnly() bool {
	return r >= YUVCR && r <= YUVBR2
}

// YUVMatrix returns the i-th coefficient register (0..5).
func YUVMatrix(i int) Reg {
	return YUVRR1 + Reg(4*i)
}

const (
	FCTCRFrateMask = 0x3

	CRSTRHStartShift = 0
	CRSTRVStartShift = 16

	CRSZREnable     = 1 << 31
	CRSZRHSizeShift = 0
	CRSZRVSizeShift = 16

	DCCREnable    = 1 << 0
	DCCRHDecShift = 1
	DCCRVDecShift = 3

	DSCRHDivShift = 0
	DSCRVDivShift = 16
	DSCREnable    = 1 << 31

	DSRTIORHRatioShift = 0
	DSRTIORVRatioShift = 16

	DSSZRHSizeShift = 0
	DSSZRVSizeShift = 16

	GMCREnable = 1 << 0

	YUVCREnable  = 1 << 0
	YUVCRTypeRGB = 1 << 1
	YUVCRClamp   = 1 << 2

	PPCRFormatMask = 0xf
	PPCRSwap       = 1 << 4
)

func CropStart(left, top uint32) uint32 {
	return top<<CRSTRVStartShift | left<<CRSTRHStartShift
}

func CropSize(width, height uint32) uint32 {
	return width<<CRSZRHSizeShift | height<<CRSZRVSizeShift | CRSZREnable
}

func Decimation(hdec, vdec uint32) uint32 {
	return hdec<<DCCRHDecShift | vdec<<DCCRVDecShift | DCCREnable
}

func DownsizeControl(hdiv, vdiv uint32) uint32 {
	return hdiv<<DSCRHDivShift | vdiv<<DSCRVDivShift | DSCREnable
}

func DownsizeRatio(hratio, vratio uint32) uint32 {
	return hratio<<DSRTIORHRatioShift | vratio<<DSRTIORVRatioShift
}

func DownsizeSize(width, height uint32) uint32 {
	return width<<DSSZRHSizeShift | height<<DSSZRVSizeShift
}

func Gamma(enable bool) uint32 {
	if enable {
		return GMCREnable
	}
	return 0
}

func ColorConvControl(enable, clamp, clampAsRGB bool) uint32 {
	var v uint32
	if clamp {
		v |= YUVCRClamp
	}
	if clampAsRGB {
		v |= YUVCRTypeRGB
	}
	if enable {
		v |= YUVCREnable
	}
	return v
}

func Packer(format uint32, swap bool) uint32 {
	v := format & PPCRFormatMask
	if swap {
		v |= PPCRSwap
	}
	return v
}
