package nbt

import "encoding/binary"

// Encode serializes v under the package's current default byte order (see
// WithLittleEndian). It encodes the bare value — no leading kind byte or
// name, matching how a List or Compound stores its children.
func Encode(v Value) []byte {
	return EncodeOrder(v, CurrentOrder())
}

// Decode parses a bare value of the given kind under the package's current
// default byte order.
func Decode(kind Kind, data []byte) (Value, int, error) {
	return DecodeOrder(kind, data, CurrentOrder())
}

// EncodeOrder serializes v under the given explicit byte order.
func EncodeOrder(v Value, order binary.ByteOrder) []byte {
	w := newWriter(order)
	writeValue(w, v)
	return w.bytes()
}

// DecodeOrder parses a bare value of the given kind under the given
// explicit byte order, returning the value and the number of bytes
// consumed from data.
func DecodeOrder(kind Kind, data []byte, order binary.ByteOrder) (Value, int, error) {
	r := newReader(data, order)
	v, err := readValue(r, kind)
	if err != nil {
		return nil, 0, err
	}
	return v, r.pos, nil
}

// EncodeNamedTag writes a full (type, name, value) tuple — the form used at
// the top level of a Compound and at the top of a standalone document such
// as level.dat's payload.
func EncodeNamedTag(name string, v Value, order binary.ByteOrder) []byte {
	w := newWriter(order)
	w.u8(uint8(v.Kind()))
	w.str(name)
	writeValue(w, v)
	return w.bytes()
}

// DecodeNamedTag reads one (type, name, value) tuple starting at data[0].
// It returns ok=false, with name and v unset, if the tuple is an End marker
// (kind byte 0) — the sentinel is consumed but never materialized as a
// Value, per §4.1.
func DecodeNamedTag(data []byte, order binary.ByteOrder) (name string, v Value, consumed int, ok bool, err error) {
	r := newReader(data, order)
	kindByte, err := r.u8()
	if err != nil {
		return "", nil, 0, false, err
	}
	if Kind(kindByte) == KindEnd {
		return "", nil, r.pos, false, nil
	}
	name, err = r.str()
	if err != nil {
		return "", nil, 0, false, err
	}
	v, err = readValue(r, Kind(kindByte))
	if err != nil {
		return "", nil, 0, false, err
	}
	return name, v, r.pos, true, nil
}

func writeValue(w *writer, v Value) {
	switch t := v.(type) {
	case Byte:
		w.i8(int8(t))
	case Short:
		w.i16(int16(t))
	case Int:
		w.i32(int32(t))
	case Long:
		w.i64(int64(t))
	case Float:
		w.f32(float32(t))
	case Double:
		w.f64(float64(t))
	case ByteArray:
		w.arrayLen(len(t))
		w.raw([]byte(t))
	case ShortArray:
		w.arrayLen(len(t))
		for _, s := range t {
			w.u16(s)
		}
	case IntArray:
		w.arrayLen(len(t))
		for _, n := range t {
			w.u32(n)
		}
	case String:
		w.str(string(t))
	case List:
		w.u8(uint8(t.Elem))
		w.i32(int32(len(t.Items)))
		for _, item := range t.Items {
			writeValue(w, item)
		}
	case *Compound:
		for _, f := range t.Fields {
			w.u8(uint8(f.Value.Kind()))
			w.str(f.Name)
			writeValue(w, f.Value)
		}
		w.u8(uint8(KindEnd))
	default:
		panic("nbt: unhandled value type in writeValue")
	}
}

func readValue(r *reader, kind Kind) (Value, error) {
	switch kind {
	case KindByte:
		v, err := r.i8()
		return Byte(v), err
	case KindShort:
		v, err := r.i16()
		return Short(v), err
	case KindInt:
		v, err := r.i32()
		return Int(v), err
	case KindLong:
		v, err := r.i64()
		return Long(v), err
	case KindFloat:
		v, err := r.f32()
		return Float(v), err
	case KindDouble:
		v, err := r.f64()
		return Double(v), err
	case KindByteArray:
		n, err := r.arrayLen()
		if err != nil {
			return nil, err
		}
		b, err := r.take(n)
		if err != nil {
			return nil, err
		}
		out := make([]byte, n)
		copy(out, b)
		return ByteArray(out), nil
	case KindShortArray:
		n, err := r.arrayLen()
		if err != nil {
			return nil, err
		}
		out := make(ShortArray, n)
		for i := 0; i < n; i++ {
			v, err := r.u16()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case KindIntArray:
		n, err := r.arrayLen()
		if err != nil {
			return nil, err
		}
		out := make(IntArray, n)
		for i := 0; i < n; i++ {
			v, err := r.u32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case KindString:
		s, err := r.str()
		return String(s), err
	case KindList:
		elemKindByte, err := r.u8()
		if err != nil {
			return nil, err
		}
		count, err := r.i32()
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, malformedAt(r.pos, "negative list length %d", count)
		}
		elemKind := Kind(elemKindByte)
		items := make([]Value, 0, count)
		for i := int32(0); i < count; i++ {
			item, err := readValue(r, elemKind)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return List{Elem: elemKind, Items: items}, nil
	case KindCompound:
		c := &Compound{}
		for {
			kindByte, err := r.u8()
			if err != nil {
				return nil, err
			}
			if Kind(kindByte) == KindEnd {
				break
			}
			name, err := r.str()
			if err != nil {
				return nil, err
			}
			fv, err := readValue(r, Kind(kindByte))
			if err != nil {
				return nil, err
			}
			c.Fields = append(c.Fields, Field{Name: name, Value: fv})
		}
		return c, nil
	default:
		return nil, malformedAt(r.pos, "unknown tag kind %d", kind)
	}
}
