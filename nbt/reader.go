package nbt

import (
	"encoding/binary"
	"math"
)

// reader is a cursor over a decode buffer. It never panics: every accessor
// returns a *MalformedTag when the buffer is exhausted.
type reader struct {
	data  []byte
	pos   int
	order binary.ByteOrder
}

func newReader(data []byte, order binary.ByteOrder) *reader {
	return &reader{data: data, order: order}
}

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, malformedAt(r.pos, "need %d bytes, have %d", n, len(r.data)-r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) i8() (int8, error) {
	b, err := r.u8()
	return int8(b), err
}

func (r *reader) u16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r *reader) i16() (int16, error) {
	v, err := r.u16()
	return int16(v), err
}

func (r *reader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) i64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(r.order.Uint64(b)), nil
}

func (r *reader) f32() (float32, error) {
	v, err := r.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *reader) f64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(r.order.Uint64(b)), nil
}

// str reads a 16-bit length-prefixed UTF-8 string, per §4.1: "String length
// prefix width. 16-bit unsigned length in session endianness."
func (r *reader) str() (string, error) {
	n, err := r.u16()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// arrayLen reads the 32-bit unsigned length prefix shared by ByteArray,
// ShortArray, and IntArray.
func (r *reader) arrayLen() (int, error) {
	n, err := r.u32()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
