// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/MY201314MY/yocto-stm32mp2/pkg/regs"
	"github.com/MY201314MY/yocto-stm32mp2/pkg/trace"
)

type registerStat struct {
	writes uint32
	first  uint32
	last   uint32
}

// Long collects per register statistics, kept in first write order.
type Long struct {
	stats  *orderedmap.OrderedMap[uint32, *registerStat]
	writes int
}

func NewLong() *Long {
	return &Long{stats: orderedmap.NewOrderedMap[uint32, *registerStat]()}
}

func (l *Long) VisitRegisterWrite(rw trace.RegisterWriteMsg) {
	l.writes++
	s, ok := l.stats.Get(rw.Msg.Offset)
	if !ok {
		s = &registerStat{first: rw.Msg.Value}
		l.stats.Set(rw.Msg.Offset, s)
	}
	s.writes++
	s.last = rw.Msg.Value
}

func (l *Long) Print() {
	for offset, s := range l.stats.AllFromFront() {
		fmt.Printf("%-10s 0x%03x writes=%d first=0x%08x final=0x%08x\n",
			regs.Name(offset), offset, s.writes, s.first, s.last)
	}
	fmt.Printf("Registers: %d, Writes: %d\n", l.stats.Len(), l.writes)
}
