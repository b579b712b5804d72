package nbt

import (
	"bytes"
	"encoding/binary"
)

// compoundListSeparator is the five-byte marker §4.2 places between
// consecutive top-level Compound tags in an entity/tile-entity payload:
// four zero bytes immediately preceding the next Compound's type byte 0x0A.
var compoundListSeparator = []byte{0x00, 0x00, 0x00, 0x00, byte(KindCompound)}

// EncodeCompoundList concatenates compounds, each written as an unnamed
// top-level tag, separated by compoundListSeparator. An empty slice encodes
// to zero bytes.
func EncodeCompoundList(compounds []*Compound, order binary.ByteOrder) []byte {
	var buf bytes.Buffer
	for i, c := range compounds {
		if i > 0 {
			buf.Write(compoundListSeparator[:4])
		}
		buf.Write(EncodeNamedTag("", c, order))
	}
	return buf.Bytes()
}

// DecodeCompoundList splits data on compoundListSeparator, restores the
// leading 0x0A each split consumed, pads each piece with four trailing zero
// bytes, and decodes each as one Compound. Zero-length data decodes to an
// empty, non-nil slice.
func DecodeCompoundList(data []byte, order binary.ByteOrder) ([]*Compound, error) {
	compounds := make([]*Compound, 0)
	if len(data) == 0 {
		return compounds, nil
	}

	pieces := bytes.Split(data, compoundListSeparator)
	for _, piece := range pieces {
		if len(piece) == 0 {
			continue
		}
		if piece[0] != byte(KindCompound) {
			fixed := make([]byte, 0, len(piece)+1)
			fixed = append(fixed, byte(KindCompound))
			piece = append(fixed, piece...)
		}
		piece = append(piece, 0, 0, 0, 0)

		_, v, _, ok, err := DecodeNamedTag(piece, order)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		c, isCompound := v.(*Compound)
		if !isCompound {
			return nil, malformedAt(0, "compound-list entry decoded as %s, not Compound", v.Kind())
		}
		compounds = append(compounds, c)
	}
	return compounds, nil
}
