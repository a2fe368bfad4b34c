// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"fmt"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/regs"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/trace"
)

type Short struct {
}

func (s *Short) VisitRegisterWrite(rw trace.RegisterWriteMsg) {
	fmt.Printf("%d:%s:0x%03x=0x%08x\n", rw.Msg.Seq, regs.Name(rw.Msg.Offset), rw.Msg.Offset, rw.Msg.Value)
}
