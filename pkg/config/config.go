// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/colorconv"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/errors"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/mbus"
)

const (
	DefaultEntity    = "dcmipp_main_postproc"
	DefaultTransport = "stub"
	DefaultRedisUrl  = "redis://localhost:6379"
	DefaultInterval  = "1/30"
)

const (
	TransportStub  = "stub"
	TransportRedis = "redis"
	TransportTrace = "trace"
)

// Config describes one pixel processing pipe and the bus it is programmed
// through.
type Config struct {
	Entity    string          `yaml:"entity"`
	Limits    LimitsConfig    `yaml:"limits"`
	Bus       BusConfig       `yaml:"bus"`
	Sink      SinkConfig      `yaml:"sink"`
	Source    SourceConfig    `yaml:"source"`
	Crop      *RectConfig     `yaml:"crop"`
	Compose   *RectConfig     `yaml:"compose"`
	Interval  IntervalConfig  `yaml:"interval"`
	Controls  ControlsConfig  `yaml:"controls"`
	ColorConv ColorConvConfig `yaml:"colorconv"`
	Power     PowerConfig     `yaml:"power"`
}

type LimitsConfig struct {
	MinWidth  uint32 `yaml:"min_width"`
	MaxWidth  uint32 `yaml:"max_width"`
	MinHeight uint32 `yaml:"min_height"`
	MaxHeight uint32 `yaml:"max_height"`
}

type BusConfig struct {
	Transport string `yaml:"transport"`
	Url       string `yaml:"url"`
	Key       string `yaml:"key"`
	// File receives the register write trace (transport trace).
	File string `yaml:"file"`
}

type SinkConfig struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
	Code   string `yaml:"code"`
}

type SourceConfig struct {
	Code string `yaml:"code"`
}

type RectConfig struct {
	Left   int32  `yaml:"left"`
	Top    int32  `yaml:"top"`
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

type IntervalConfig struct {
	Sink   string `yaml:"sink"`
	Source string `yaml:"source"`
}

type ControlsConfig struct {
	Gamma *bool `yaml:"gamma"`
}

type ColorConvConfig struct {
	Rules []ColorConvRule `yaml:"rules"`
}

type ColorConvRule struct {
	From       string    `yaml:"from"`
	To         string    `yaml:"to"`
	Matrix     [6]uint32 `yaml:"matrix"`
	Clamp      bool      `yaml:"clamp"`
	ClampAsRGB bool      `yaml:"clamp_rgb"`
}

type PowerConfig struct {
	// Managed selects a usage counted power domain instead of an always
	// powered device.
	Managed bool `yaml:"managed"`
	// On takes a power reference before streaming (default true).
	On *bool `yaml:"on"`
}

// Load reads a YAML file, expands environment variables, applies defaults
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ErrConfigRead(err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ErrConfigParse(err)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration of an empty document.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Entity == "" {
		c.Entity = DefaultEntity
	}
	d := mbus.DefaultLimits
	if c.Limits.MinWidth == 0 {
		c.Limits.MinWidth = d.MinWidth
	}
	if c.Limits.MaxWidth == 0 {
		c.Limits.MaxWidth = d.MaxWidth
	}
	if c.Limits.MinHeight == 0 {
		c.Limits.MinHeight = d.MinHeight
	}
	if c.Limits.MaxHeight == 0 {
		c.Limits.MaxHeight = d.MaxHeight
	}
	if c.Bus.Transport == "" {
		c.Bus.Transport = DefaultTransport
	}
	c.Bus.Transport = strings.ToLower(c.Bus.Transport)
	if c.Bus.Transport == TransportRedis && c.Bus.Url == "" {
		c.Bus.Url = DefaultRedisUrl
	}
	if c.Sink.Width == 0 {
		c.Sink.Width = 640
	}
	if c.Sink.Height == 0 {
		c.Sink.Height = 480
	}
	if c.Sink.Code == "" {
		c.Sink.Code = "RGB888_1X24"
	}
	if c.Interval.Sink == "" {
		c.Interval.Sink = DefaultInterval
	}
}

func (c *Config) validate() error {
	switch c.Bus.Transport {
	case TransportStub, TransportRedis:
	case TransportTrace:
		if c.Bus.File == "" {
			return errors.ErrConfigValue("bus.file", c.Bus.File)
		}
	default:
		return errors.ErrConfigValue("bus.transport", c.Bus.Transport)
	}
	if !c.FrameLimits().Valid() {
		return errors.ErrConfigValue("limits", fmt.Sprintf("%+v", c.Limits))
	}
	if _, err := c.SinkFormat(); err != nil {
		return err
	}
	if _, _, err := c.SourceCode(); err != nil {
		return err
	}
	if _, err := c.SinkInterval(); err != nil {
		return err
	}
	if _, _, err := c.SourceInterval(); err != nil {
		return err
	}
	if _, err := c.ColorConverter(); err != nil {
		return err
	}
	return nil
}

func (c *Config) FrameLimits() mbus.Limits {
	return mbus.Limits{
		MinWidth:  c.Limits.MinWidth,
		MaxWidth:  c.Limits.MaxWidth,
		MinHeight: c.Limits.MinHeight,
		MaxHeight: c.Limits.MaxHeight,
	}
}

func (c *Config) SinkFormat() (mbus.FrameFormat, error) {
	code, err := mbus.ParseCode(c.Sink.Code)
	if err != nil {
		return mbus.FrameFormat{}, errors.ErrConfigValue("sink.code", c.Sink.Code)
	}
	return mbus.FrameFormat{
		Width:  c.Sink.Width,
		Height: c.Sink.Height,
		Code:   code,
		Field:  mbus.FieldNone,
	}, nil
}

// SourceCode returns the requested source code, ok is false when the
// source code is derived from the sink.
func (c *Config) SourceCode() (code mbus.Code, ok bool, err error) {
	if c.Source.Code == "" {
		return 0, false, nil
	}
	code, err = mbus.ParseCode(c.Source.Code)
	if err != nil {
		return 0, false, errors.ErrConfigValue("source.code", c.Source.Code)
	}
	return code, true, nil
}

func (c *Config) SinkInterval() (mbus.Fract, error) {
	f, err := mbus.ParseFract(c.Interval.Sink)
	if err != nil {
		return mbus.Fract{}, errors.ErrConfigValue("interval.sink", c.Interval.Sink)
	}
	return f, nil
}

func (c *Config) SourceInterval() (f mbus.Fract, ok bool, err error) {
	if c.Interval.Source == "" {
		return mbus.Fract{}, false, nil
	}
	f, err = mbus.ParseFract(c.Interval.Source)
	if err != nil {
		return mbus.Fract{}, false, errors.ErrConfigValue("interval.source", c.Interval.Source)
	}
	return f, true, nil
}

func (r *RectConfig) Rect() mbus.Rect {
	return mbus.Rect{Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height}
}

func parseFamily(field string, s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yuv":
		return true, nil
	case "rgb":
		return false, nil
	}
	return false, errors.ErrConfigValue(field, s)
}

// ColorConverter builds a static converter from the rules, without rules
// the pipe never converts.
func (c *Config) ColorConverter() (colorconv.ColorConv, error) {
	if len(c.ColorConv.Rules) == 0 {
		return colorconv.Passthrough{}, nil
	}
	s := &colorconv.Static{}
	for i, r := range c.ColorConv.Rules {
		from, err := parseFamily(fmt.Sprintf("colorconv.rules[%d].from", i), r.From)
		if err != nil {
			return nil, err
		}
		to, err := parseFamily(fmt.Sprintf("colorconv.rules[%d].to", i), r.To)
		if err != nil {
			return nil, err
		}
		s.Rules = append(s.Rules, colorconv.Rule{
			FromYUV: from,
			ToYUV:   to,
			Config: colorconv.Config{
				Matrix:        r.Matrix,
				Clamping:      r.Clamp,
				ClampingAsRGB: r.ClampAsRGB,
			},
		})
	}
	return s, nil
}

func (p PowerConfig) PowerOn() bool {
	return p.On == nil || *p.On
}
