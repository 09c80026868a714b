package rw

import (
	"errors"
	"io"
	"testing"

	"github.com/gorustyt/gonavgraph/common"
)

func TestWriteThenRead(t *testing.T) {
	w := NewNavMeshDataBinWriter()
	w.WriteUInt8(7)
	w.WriteUInt16(0xbeef)
	w.WriteInt32(int32(-12))
	w.WriteInt32s([]int{1, 2, 3})
	w.WriteVec3(common.Vec3{1.5, -2, 3.25})

	r := NewNavMeshDataBinReader(w.GetWriteBytes())
	if r.ReadUInt8() != 7 {
		t.Errorf("uint8 mismatch")
	}
	if r.ReadUInt16() != 0xbeef {
		t.Errorf("uint16 mismatch")
	}
	if r.ReadInt32() != -12 {
		t.Errorf("int32 mismatch")
	}
	ints := make([]int32, 3)
	r.ReadInt32s(ints)
	if ints[0] != 1 || ints[2] != 3 {
		t.Errorf("int32 slice mismatch %v", ints)
	}
	if v := r.ReadVec3(); v != (common.Vec3{1.5, -2, 3.25}) {
		t.Errorf("vec3 mismatch %v", v)
	}
	if r.Err() != nil || r.Size() != 0 {
		t.Errorf("reader should be drained without error")
	}
}

func TestShortReadIsSticky(t *testing.T) {
	r := NewNavMeshDataBinReader([]byte{1, 2})
	if r.ReadUInt32() != 0 {
		t.Errorf("short read should yield zero")
	}
	if !errors.Is(r.Err(), io.ErrUnexpectedEOF) {
		t.Errorf("expected unexpected EOF, got %v", r.Err())
	}
	if r.ReadUInt8() != 0 {
		t.Errorf("reads after an error should yield zero")
	}
}
