package nbt

import (
	"bytes"
	"encoding/binary"
	"math"
)

// writer accumulates encoded bytes using the session byte order.
type writer struct {
	buf   bytes.Buffer
	order binary.ByteOrder
}

func newWriter(order binary.ByteOrder) *writer {
	return &writer{order: order}
}

func (w *writer) bytes() []byte { return w.buf.Bytes() }

func (w *writer) u8(v uint8)  { w.buf.WriteByte(v) }
func (w *writer) i8(v int8)   { w.u8(uint8(v)) }

func (w *writer) u16(v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.buf.Write(b[:])
}
func (w *writer) i16(v int16) { w.u16(uint16(v)) }

func (w *writer) u32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.buf.Write(b[:])
}
func (w *writer) i32(v int32) { w.u32(uint32(v)) }

func (w *writer) i64(v int64) {
	var b [8]byte
	w.order.PutUint64(b[:], uint64(v))
	w.buf.Write(b[:])
}

func (w *writer) f32(v float32) { w.u32(math.Float32bits(v)) }

func (w *writer) f64(v float64) {
	var b [8]byte
	w.order.PutUint64(b[:], math.Float64bits(v))
	w.buf.Write(b[:])
}

func (w *writer) str(s string) {
	w.u16(uint16(len(s)))
	w.buf.WriteString(s)
}

func (w *writer) arrayLen(n int) {
	w.u32(uint32(n))
}

func (w *writer) raw(b []byte) {
	w.buf.Write(b)
}
