// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

type Visitor interface {
	VisitRegisterWrite(RegisterWriteMsg)
}

type Flatbuffer interface {
	Accept(*Visitor)
}

type RegisterWriteMsg struct {
	Msg RegisterWrite
}

func (rw RegisterWriteMsg) Accept(v *Visitor) {
	if v != nil {
		(*v).VisitRegisterWrite(rw)
	}
}

type Trace interface {
	Process(v *Visitor) error
}
