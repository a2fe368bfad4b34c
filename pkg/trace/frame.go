// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"fmt"
	"io"

	flatbuffers "github.com/google/flatbuffers/go"
)

const FileIdentifier = "PPRW"

// Table slots of a register write frame.
const (
	slotSeq = iota
	slotOffset
	slotValue
	slotCount
)

type RegisterWrite struct {
	Seq    uint32
	Offset uint32
	Value  uint32
}

func slot(i int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT(4 + 2*i)
}

// Encode builds a size prefixed frame. The builder is reset first.
func Encode(b *flatbuffers.Builder, rw RegisterWrite) []byte {
	b.Reset()
	b.StartObject(slotCount)
	b.PrependUint32Slot(slotSeq, rw.Seq, 0)
	b.PrependUint32Slot(slotOffset, rw.Offset, 0)
	b.PrependUint32Slot(slotValue, rw.Value, 0)
	end := b.EndObject()
	b.FinishSizePrefixedWithFileIdentifier(end, []byte(FileIdentifier))
	return b.FinishedBytes()
}

// Decode reads a frame without its size prefix.
func Decode(buf []byte) (RegisterWrite, error) {
	if len(buf) < flatbuffers.SizeUOffsetT+len(FileIdentifier) {
		return RegisterWrite{}, fmt.Errorf("frame too short (%d bytes)", len(buf))
	}
	if id := flatbuffers.GetBufferIdentifier(buf); id != FileIdentifier {
		return RegisterWrite{}, fmt.Errorf("unsupported flatbuffer, file_identifier: %s", id)
	}
	t, err := root(buf)
	if err != nil {
		return RegisterWrite{}, err
	}
	return RegisterWrite{
		Seq:    t.GetUint32Slot(slot(slotSeq), 0),
		Offset: t.GetUint32Slot(slot(slotOffset), 0),
		Value:  t.GetUint32Slot(slot(slotValue), 0),
	}, nil
}

// root locates the frame table and checks that the table, its vtable and
// every slot it references lie inside buf.
func root(buf []byte) (flatbuffers.Table, error) {
	size := int64(len(buf))
	n := int64(flatbuffers.GetUOffsetT(buf))
	if n+flatbuffers.SizeSOffsetT > size {
		return flatbuffers.Table{}, fmt.Errorf("root offset %d out of range (%d bytes)", n, size)
	}
	vt := n - int64(flatbuffers.GetSOffsetT(buf[n:]))
	if vt < 0 || vt+2*flatbuffers.SizeVOffsetT > size {
		return flatbuffers.Table{}, fmt.Errorf("vtable offset %d out of range (%d bytes)", vt, size)
	}
	vtSize := int64(flatbuffers.GetVOffsetT(buf[vt:]))
	for i := 0; i < slotCount; i++ {
		s := int64(slot(i))
		if s >= vtSize {
			continue
		}
		if vt+s+flatbuffers.SizeVOffsetT > size {
			return flatbuffers.Table{}, fmt.Errorf("vtable at %d overruns frame (%d bytes)", vt, size)
		}
		if o := int64(flatbuffers.GetVOffsetT(buf[vt+s:])); o != 0 && n+o+flatbuffers.SizeUint32 > size {
			return flatbuffers.Table{}, fmt.Errorf("slot %d out of range (%d bytes)", i, size)
		}
	}
	return flatbuffers.Table{Bytes: buf, Pos: flatbuffers.UOffsetT(n)}, nil
}

// Writer appends register write frames to a stream.
type Writer struct {
	w   io.Writer
	b   *flatbuffers.Builder
	seq uint32
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, b: flatbuffers.NewBuilder(64)}
}

func (w *Writer) WriteRegister(offset uint32, value uint32) error {
	w.seq += 1
	_, err := w.w.Write(Encode(w.b, RegisterWrite{Seq: w.seq, Offset: offset, Value: value}))
	return err
}
