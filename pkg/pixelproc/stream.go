// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package pixelproc

import (
	"fmt"
	"log/slog"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/pixmap"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/regs"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/scaler"
)

// StreamOn programs the committed configuration into the pipe and marks
// the device streaming. On error the device stays idle.
func (d *Device) StreamOn() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.streaming {
		return errors.ErrStreaming("stream on")
	}

	if err := d.configureFramerate(); err != nil {
		return err
	}
	if err := d.configureCrop(); err != nil {
		return err
	}
	if err := d.configureDownscale(); err != nil {
		return err
	}
	if d.channel.HasColorConv() {
		if err := d.configureColorConv(); err != nil {
			return err
		}
	}
	if err := d.configurePacker(); err != nil {
		return err
	}

	// Apply customized values from user when stream starts.
	if err := d.ctrls.Replay(); err != nil {
		return err
	}

	d.streaming = true
	slog.Info(fmt.Sprintf("%s: stream on", d.name))
	return nil
}

// StreamOff marks the device idle, it does not touch the hardware.
func (d *Device) StreamOff() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.streaming {
		slog.Info(fmt.Sprintf("%s: stream off", d.name))
	}
	d.streaming = false
}

func (d *Device) configureFramerate() error {
	if err := d.clear(regs.FCTCR, regs.FCTCRFrateMask); err != nil {
		return err
	}
	return d.set(regs.FCTCR, d.rate.Code())
}

func (d *Device) configureCrop() error {
	crop := d.active.Crop
	if err := d.write(regs.CRSTR, regs.CropStart(uint32(crop.Left), uint32(crop.Top))); err != nil {
		return err
	}
	return d.write(regs.CRSZR, regs.CropSize(crop.Width, crop.Height))
}

func (d *Device) configureDownscale() error {
	p, err := scaler.Compile(d.active.Crop, d.active.Compose)
	if err != nil {
		return err
	}
	slog.Debug(fmt.Sprintf("%s: downscale config: %s", d.name, p))

	if err := d.clear(regs.DCCR, regs.DCCREnable); err != nil {
		return err
	}
	if p.Decimating() {
		if err := d.write(regs.DCCR, regs.Decimation(p.H.Dec, p.V.Dec)); err != nil {
			return err
		}
	}

	if err := d.clear(regs.DSCR, regs.DSCREnable); err != nil {
		return err
	}
	if err := d.write(regs.DSRTIOR, regs.DownsizeRatio(p.H.Ratio, p.V.Ratio)); err != nil {
		return err
	}
	if err := d.write(regs.DSSZR, regs.DownsizeSize(p.H.Size, p.V.Size)); err != nil {
		return err
	}
	return d.write(regs.DSCR, regs.DownsizeControl(p.H.Div, p.V.Div))
}

func (d *Device) configureColorConv() error {
	cc, err := d.colorconv.Configure(d.active.Formats[mbus.PadSink], d.active.Formats[mbus.PadSource])
	if err != nil {
		slog.Error(fmt.Sprintf("%s: colorconv configure failed: %v", d.name, err))
		return err
	}
	for i, v := range cc.Matrix {
		if err := d.write(regs.YUVMatrix(i), v); err != nil {
			return err
		}
	}
	return d.write(regs.YUVCR, regs.ColorConvControl(cc.Enable, cc.Clamping, cc.ClampingAsRGB))
}

func (d *Device) configurePacker() error {
	code := d.active.Formats[mbus.PadSource].Code
	desc, ok := pixmap.ByCode(code, mbus.PadSource)
	if !ok {
		return errors.ErrUnresolvedCode(uint32(code))
	}
	return d.write(regs.PPCR, regs.Packer(uint32(desc.Format), desc.SwapUV))
}
