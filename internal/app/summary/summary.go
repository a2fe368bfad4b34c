// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/boschglobal/dse.clib/extra/go/command"

	"github.com/MY201314MY/yocto-stm32mp2/internal/logger"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/trace"
)

type SummaryCommand struct {
	command.Command

	traceFile string
	long      bool
	logLevel  int
}

func NewSummaryCommand(name string) *SummaryCommand {
	c := &SummaryCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().BoolVar(&c.long, "long", false, "summarise per register")
	c.FlagSet().IntVar(&c.logLevel, "logger", 3, "log level (select between 0..4)")
	return c
}

func (c SummaryCommand) Name() string {
	return c.Command.Name
}

func (c SummaryCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *SummaryCommand) Parse(args []string) error {
	err := c.FlagSet().Parse(args)
	if err != nil {
		return err
	}
	slog.SetDefault(logger.NewLogger(c.logLevel))
	if c.FlagSet().NArg() == 0 {
		return fmt.Errorf("trace file not specified")
	}
	c.traceFile = c.FlagSet().Arg(0)
	return nil
}

func (c *SummaryCommand) Run() error {
	var v trace.Visitor
	trace := trace.Stream{File: c.traceFile}

	// Select and configure the specified visitor.
	long := NewLong()
	if c.long {
		v = long
	} else {
		v = &Short{}
	}

	// Process the trace.
	if err := trace.Process(&v); err != nil {
		return err
	}
	if c.long {
		long.Print()
	}
	return nil
}
