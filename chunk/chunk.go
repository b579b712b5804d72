// Package chunk implements the Chunk Codec: translating the fixed-layout
// 83,200-byte terrain blob to and from unpacked three-dimensional arrays,
// and the two Compound-List payloads (tile-entities, entities) to and from
// compound slices. Only Entities carries an "id" field that gets translated
// between its on-disk integer form and an external string via entityids;
// TileEntities is read and written as plain compounds, matching the source's
// tile-entity loader, which never touches "id".
package chunk

import (
	"encoding/binary"

	"pocketworld/entityids"
	"pocketworld/nbt"
)

const (
	Width  = 16
	Depth  = 16
	Height = 128

	blocksLen       = Width * Depth * Height // 32768
	packedLen       = blocksLen / 2          // 16384
	dirtyColumnsLen = Width * Depth          // 256
	grassColorsLen  = Width * Depth * 4      // 1024

	terrainBytesLen = blocksLen + 3*packedLen + dirtyColumnsLen + grassColorsLen // 83200
)

// Index maps a block coordinate to its offset in a flat 16x16x128 array,
// X-major, Z-middle, Y-inner, per §3.
func Index(x, z, y int) int {
	return x*(Depth*Height) + z*Height + y
}

// Chunk is one loaded terrain column pair, plus its tile-entities and
// entities. A Chunk holds no reference to its owning world; the fixed
// height is the package constant Height.
type Chunk struct {
	CX, CZ int32

	Blocks       []byte // len blocksLen, one byte per cell
	Data         []byte // len blocksLen, unpacked nibbles in [0,15]
	SkyLight     []byte // len blocksLen, unpacked nibbles in [0,15]
	BlockLight   []byte // len blocksLen, unpacked nibbles in [0,15]
	DirtyColumns []byte // len dirtyColumnsLen
	GrassColors  []byte // len grassColorsLen

	TileEntities []*nbt.Compound
	Entities     []*nbt.Compound

	dirty         bool
	needsLighting bool
}

// Dirty reports whether the chunk has been mutated since its last
// successful load or save.
func (c *Chunk) Dirty() bool { return c.dirty }

// MarkDirty flags the chunk as mutated since its last save.
func (c *Chunk) MarkDirty() { c.dirty = true }

// NeedsLighting reports whether the chunk is queued for a lighting
// recompute by the host engine.
func (c *Chunk) NeedsLighting() bool { return c.needsLighting }

// MarkNeedsLighting flags the chunk as needing a lighting recompute.
func (c *Chunk) MarkNeedsLighting() { c.needsLighting = true }

func packNibbles(unpacked []byte) []byte {
	packed := make([]byte, len(unpacked)/2)
	for k := range packed {
		lo := unpacked[2*k] & 0x0F
		hi := unpacked[2*k+1] & 0x0F
		packed[k] = lo | (hi << 4)
	}
	return packed
}

func unpackNibbles(packed []byte) []byte {
	unpacked := make([]byte, len(packed)*2)
	for k, b := range packed {
		unpacked[2*k] = b & 0x0F
		unpacked[2*k+1] = (b >> 4) & 0x0F
	}
	return unpacked
}

// translateEntitiesToNames converts the "id" field of each compound from the
// on-disk integer form to the external string form, in place. On error,
// compounds before the failing one are already translated; Decode discards
// the whole freshly decoded list in that case.
func translateEntitiesToNames(compounds []*nbt.Compound) ([]*nbt.Compound, error) {
	out := make([]*nbt.Compound, len(compounds))
	for i, c := range compounds {
		idValue, ok := c.Get("id")
		if !ok {
			out[i] = c
			continue
		}
		idInt, isInt := idValue.(nbt.Int)
		if !isInt {
			out[i] = c
			continue
		}
		name, err := entityids.ToName(int(idInt))
		if err != nil {
			return nil, err
		}
		c.Set("id", nbt.String(name))
		out[i] = c
	}
	return out, nil
}

// Decode parses a chunk's three raw store values into a Chunk. tileEntityBytes
// and entityBytes may be nil (absent key). terrainBytes must be exactly
// terrainBytesLen bytes.
func Decode(cx, cz int32, terrainBytes, tileEntityBytes, entityBytes []byte) (*Chunk, error) {
	if len(terrainBytes) != terrainBytesLen {
		return nil, &MalformedChunk{Len: len(terrainBytes)}
	}

	off := 0
	blocks := terrainBytes[off : off+blocksLen]
	off += blocksLen
	dataPacked := terrainBytes[off : off+packedLen]
	off += packedLen
	skyPacked := terrainBytes[off : off+packedLen]
	off += packedLen
	blockLightPacked := terrainBytes[off : off+packedLen]
	off += packedLen
	dirtyColumns := terrainBytes[off : off+dirtyColumnsLen]
	off += dirtyColumnsLen
	grassColors := terrainBytes[off : off+grassColorsLen]

	var tileEntities, entities []*nbt.Compound
	var err error

	if tileEntityBytes != nil {
		tileEntities, err = nbt.DecodeCompoundList(tileEntityBytes, binary.LittleEndian)
		if err != nil {
			return nil, err
		}
	}
	if entityBytes != nil {
		entities, err = decodeEntityList(entityBytes)
		if err != nil {
			return nil, err
		}
	}

	return &Chunk{
		CX:           cx,
		CZ:           cz,
		Blocks:       append([]byte(nil), blocks...),
		Data:         unpackNibbles(dataPacked),
		SkyLight:     unpackNibbles(skyPacked),
		BlockLight:   unpackNibbles(blockLightPacked),
		DirtyColumns: append([]byte(nil), dirtyColumns...),
		GrassColors:  append([]byte(nil), grassColors...),
		TileEntities: tileEntities,
		Entities:     entities,
	}, nil
}

func decodeEntityList(data []byte) ([]*nbt.Compound, error) {
	compounds, err := nbt.DecodeCompoundList(data, binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	return translateEntitiesToNames(compounds)
}

// Encode re-emits the chunk's terrain blob, tile-entity payload, and entity
// payload. If the chunk is dirty, every DirtyColumns byte is set to 255
// before emit. TileEntities is emitted as-is. Entities' "id" swap to
// on-disk integer form happens on the compounds in place and is reverted
// before Encode returns, whether it succeeds or fails, so the in-memory
// chunk's "id" fields always stay external strings.
func (c *Chunk) Encode() (terrainBytes, tileEntityBytes, entityBytes []byte, err error) {
	dirtyColumns := c.DirtyColumns
	if c.dirty {
		dirtyColumns = make([]byte, dirtyColumnsLen)
		for i := range dirtyColumns {
			dirtyColumns[i] = 255
		}
	}

	terrainBytes = make([]byte, 0, terrainBytesLen)
	terrainBytes = append(terrainBytes, c.Blocks...)
	terrainBytes = append(terrainBytes, packNibbles(c.Data)...)
	terrainBytes = append(terrainBytes, packNibbles(c.SkyLight)...)
	terrainBytes = append(terrainBytes, packNibbles(c.BlockLight)...)
	terrainBytes = append(terrainBytes, dirtyColumns...)
	terrainBytes = append(terrainBytes, c.GrassColors...)

	tileEntityBytes = nbt.EncodeCompoundList(c.TileEntities, binary.LittleEndian)
	entityBytes, err = encodeEntityList(c.Entities)
	if err != nil {
		return nil, nil, nil, err
	}

	return terrainBytes, tileEntityBytes, entityBytes, nil
}

// ClearDirty resets the dirty flag. Package world calls this only after a
// save's write batch has committed successfully — see the save_incremental
// cancellation hazard in §5: clearing dirty before commit would let an
// abandoned batch lose edits that the cache believes are already saved.
func (c *Chunk) ClearDirty() { c.dirty = false }

// encodeEntityList swaps each compound's "id" from external string to
// on-disk integer, encodes the list, then restores every "id" field back to
// its string form — even if an error occurs partway through, so the chunk's
// in-memory state is never left with integer ids on a failed encode.
func encodeEntityList(compounds []*nbt.Compound) ([]byte, error) {
	originalNames := make([]string, len(compounds))
	haveName := make([]bool, len(compounds))

	for i, c := range compounds {
		idValue, ok := c.Get("id")
		if !ok {
			continue
		}
		name, isString := idValue.(nbt.String)
		if !isString {
			continue
		}
		id, err := entityids.ToID(string(name))
		if err != nil {
			restoreNames(compounds, originalNames, haveName)
			return nil, err
		}
		originalNames[i] = string(name)
		haveName[i] = true
		c.Set("id", nbt.Int(id))
	}

	data := nbt.EncodeCompoundList(compounds, binary.LittleEndian)

	restoreNames(compounds, originalNames, haveName)
	return data, nil
}

func restoreNames(compounds []*nbt.Compound, originalNames []string, haveName []bool) {
	for i, had := range haveName {
		if had {
			compounds[i].Set("id", nbt.String(originalNames[i]))
		}
	}
}
