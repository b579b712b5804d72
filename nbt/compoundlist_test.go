package nbt

import (
	"encoding/binary"
	"testing"
)

func TestCompoundListRoundTrip(t *testing.T) {
	compounds := []*Compound{
		NewCompound(Field{Name: "id", Value: String("minecraft:zombie")}, Field{Name: "Health", Value: Short(20)}),
		NewCompound(Field{Name: "id", Value: String("minecraft:chest")}, Field{Name: "Items", Value: List{Elem: KindCompound, Items: nil}}),
		NewCompound(Field{Name: "id", Value: String("minecraft:creeper")}),
	}

	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		encoded := EncodeCompoundList(compounds, order)
		decoded, err := DecodeCompoundList(encoded, order)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(decoded) != len(compounds) {
			t.Fatalf("count: got %d want %d", len(decoded), len(compounds))
		}
		for i, want := range compounds {
			id, ok := want.Get("id")
			if !ok {
				continue
			}
			gotID, ok := decoded[i].Get("id")
			if !ok || gotID != id {
				t.Errorf("entry %d id: got %v want %v", i, gotID, id)
			}
		}
	}
}

func TestCompoundListSeparatorBytes(t *testing.T) {
	compounds := []*Compound{
		NewCompound(Field{Name: "a", Value: Byte(1)}),
		NewCompound(Field{Name: "b", Value: Byte(2)}),
	}
	encoded := EncodeCompoundList(compounds, binary.LittleEndian)

	found := false
	for i := 0; i+len(compoundListSeparator) <= len(encoded); i++ {
		match := true
		for j, b := range compoundListSeparator {
			if encoded[i+j] != b {
				match = false
				break
			}
		}
		if match {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("encoded compound list does not contain the 00 00 00 00 0A separator: % x", encoded)
	}
}

func TestEmptyCompoundListEncodesToZeroBytes(t *testing.T) {
	encoded := EncodeCompoundList(nil, binary.LittleEndian)
	if len(encoded) != 0 {
		t.Fatalf("expected zero bytes for an empty compound list, got %d", len(encoded))
	}

	decoded, err := DecodeCompoundList(nil, binary.LittleEndian)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected zero compounds decoded, got %d", len(decoded))
	}
}

func TestSingleCompoundListRoundTrip(t *testing.T) {
	compounds := []*Compound{NewCompound(Field{Name: "only", Value: Int(42)})}
	encoded := EncodeCompoundList(compounds, binary.LittleEndian)
	decoded, err := DecodeCompoundList(encoded, binary.LittleEndian)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 compound, got %d", len(decoded))
	}
	only, ok := decoded[0].Get("only")
	if !ok || only != Int(42) {
		t.Errorf("only: got %v ok=%v", only, ok)
	}
}
