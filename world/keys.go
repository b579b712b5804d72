package world

import "encoding/binary"

const (
	tagTerrain      byte = '0'
	tagTileEntities byte = '1'
	tagEntities     byte = '2'
)

// chunkKey builds the 9-byte store key for (cx, cz, tag), per §3.
func chunkKey(cx, cz int32, tag byte) []byte {
	key := make([]byte, 9)
	binary.LittleEndian.PutUint32(key[0:4], uint32(cx))
	binary.LittleEndian.PutUint32(key[4:8], uint32(cz))
	key[8] = tag
	return key
}

// parseChunkKey reports the (cx, cz) and tag a 9-byte chunk key encodes,
// and whether key is a recognized chunk key ('0', '1' or '2' tag). Keys tagged
// with characters other than '0', '1', '2' exist in the store but are
// ignored by this engine, per §3.
func parseChunkKey(key []byte) (cx, cz int32, tag byte, ok bool) {
	if len(key) != 9 {
		return 0, 0, 0, false
	}
	tag = key[8]
	if tag != tagTerrain && tag != tagTileEntities && tag != tagEntities {
		return 0, 0, 0, false
	}
	cx = int32(binary.LittleEndian.Uint32(key[0:4]))
	cz = int32(binary.LittleEndian.Uint32(key[4:8]))
	return cx, cz, tag, true
}
