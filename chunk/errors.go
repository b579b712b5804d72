package chunk

import "fmt"

// MalformedChunk reports a terrain blob whose length is not exactly
// terrainBytesLen.
type MalformedChunk struct {
	Len int
}

func (e *MalformedChunk) Error() string {
	return fmt.Sprintf("malformed chunk: terrain blob is %d bytes, want %d", e.Len, terrainBytesLen)
}
