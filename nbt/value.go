package nbt

// Value is any tagged value: one of Byte, Short, Int, Long, Float, Double,
// ByteArray, ShortArray, IntArray, String, List, or *Compound.
type Value interface {
	Kind() Kind
}

type Byte int8

func (Byte) Kind() Kind { return KindByte }

type Short int16

func (Short) Kind() Kind { return KindShort }

type Int int32

func (Int) Kind() Kind { return KindInt }

type Long int64

func (Long) Kind() Kind { return KindLong }

type Float float32

func (Float) Kind() Kind { return KindFloat }

type Double float64

func (Double) Kind() Kind { return KindDouble }

type ByteArray []byte

func (ByteArray) Kind() Kind { return KindByteArray }

type ShortArray []uint16

func (ShortArray) Kind() Kind { return KindShortArray }

type IntArray []uint32

func (IntArray) Kind() Kind { return KindIntArray }

type String string

func (String) Kind() Kind { return KindString }

// List is a homogeneous sequence of values, all sharing Elem's kind.
type List struct {
	Elem  Kind
	Items []Value
}

func (List) Kind() Kind { return KindList }

// Field is one named entry of a Compound.
type Field struct {
	Name  string
	Value Value
}

// Compound is an ordered mapping from name to tagged value. It is always
// used by pointer so in-place mutation (Set/Delete, and the lazy-default
// accessors in package world) is visible to every holder of the pointer.
type Compound struct {
	Fields []Field
}

func (*Compound) Kind() Kind { return KindCompound }

// NewCompound builds a Compound from the given fields, in order.
func NewCompound(fields ...Field) *Compound {
	return &Compound{Fields: fields}
}

// Get returns the named field's value, or (nil, false) if absent.
func (c *Compound) Get(name string) (Value, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the named field's value wholesale, or appends a new field if
// the name is not yet present.
func (c *Compound) Set(name string, v Value) {
	for i, f := range c.Fields {
		if f.Name == name {
			c.Fields[i].Value = v
			return
		}
	}
	c.Fields = append(c.Fields, Field{Name: name, Value: v})
}

// Delete removes the named field, if present.
func (c *Compound) Delete(name string) {
	for i, f := range c.Fields {
		if f.Name == name {
			c.Fields = append(c.Fields[:i], c.Fields[i+1:]...)
			return
		}
	}
}
