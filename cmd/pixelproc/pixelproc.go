// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/boschglobal/dse.clib/extra/go/command"

	"github.com/MY201314MY/yocto-stm32mp2/internal/app/configure"
	"github.com/MY201314MY/yocto-stm32mp2/internal/app/enum"
	"github.com/MY201314MY/yocto-stm32mp2/internal/app/summary"
)

var cmds = []command.CommandRunner{
	command.NewHelpCommand("help"),
	configure.NewConfigureCommand("configure"),
	enum.NewEnumCommand("enum"),
	summary.NewSummaryCommand("trace"),
}

var usage = `
Configure and inspect a DCMIPP pixel processing pipe.

Usage:

	pixelproc <command> [option]

	pixelproc configure [-config <file>] [-dump]
	pixelproc enum [-entity <name>] [-pad sink|source]
	pixelproc trace [-long] <trace file>

`

func printUsage() {
	command.PrintUsage(usage[1:], cmds)
}

func main() {
	os.Exit(main_())
}

func main_() int {
	flag.Usage = printUsage
	if len(os.Args) == 1 {
		printUsage()
		return 1
	}
	if err := command.DispatchCommand(os.Args[1], cmds); err != nil {
		slog.Error(err.Error())
		return 2
	}

	return 0
}
