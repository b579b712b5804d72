package world

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"pocketworld/chunk"
	"pocketworld/nbt"
	"pocketworld/store"
)

func blankTerrain() []byte {
	return make([]byte, 83200)
}

func writeLevelDat(t *testing.T, path string, version int32, root *nbt.Compound) {
	t.Helper()
	payload := nbt.EncodeNamedTag("", root, binary.LittleEndian)
	buf := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(version))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)))
	copy(buf[8:], payload)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("writing level.dat fixture: %v", err)
	}
}

func newFixtureWorld(t *testing.T, root *nbt.Compound, terrainCoords []Coord) *World {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "db"), 0o755); err != nil {
		t.Fatalf("mkdir db: %v", err)
	}
	writeLevelDat(t, filepath.Join(dir, "level.dat"), 3, root)

	f := store.Open(filepath.Join(dir, "db"), true)
	for _, c := range terrainCoords {
		if err := f.Put(chunkKey(c.CX, c.CZ, tagTerrain), blankTerrain()); err != nil {
			t.Fatalf("seeding chunk (%d,%d): %v", c.CX, c.CZ, err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing fixture store: %v", err)
	}

	w, err := Open(dir, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return w
}

func TestOpenAndEnumerate(t *testing.T) {
	root := nbt.NewCompound(nbt.Field{Name: "LevelName", Value: nbt.String("Test")})
	w := newFixtureWorld(t, root, []Coord{{0, 0}, {0, 1}, {1, 0}})
	defer w.Close()

	if w.Root().LevelName() != "Test" {
		t.Fatalf("LevelName: got %q", w.Root().LevelName())
	}

	coords, err := w.AllChunks()
	if err != nil {
		t.Fatalf("AllChunks: %v", err)
	}
	want := map[Coord]bool{{0, 0}: true, {0, 1}: true, {1, 0}: true}
	if len(coords) != len(want) {
		t.Fatalf("AllChunks count: got %d want %d", len(coords), len(want))
	}
	for _, c := range coords {
		if !want[c] {
			t.Errorf("unexpected coord %+v", c)
		}
	}
}

func TestOpenRejectsOldVersion(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "db"), 0o755)
	writeLevelDat(t, filepath.Join(dir, "level.dat"), 2, nbt.NewCompound())

	_, err := Open(dir, true)
	if err == nil {
		t.Fatal("expected an UnsupportedLevelVersion error")
	}
	if _, ok := err.(*UnsupportedLevelVersion); !ok {
		t.Fatalf("expected *UnsupportedLevelVersion, got %T: %v", err, err)
	}
}

func TestGetChunkMissingFailsWithChunkNotPresent(t *testing.T) {
	w := newFixtureWorld(t, nbt.NewCompound(), nil)
	defer w.Close()

	_, err := w.GetChunk(5, 5)
	if err == nil {
		t.Fatal("expected a ChunkNotPresent error")
	}
	if _, ok := err.(*ChunkNotPresent); !ok {
		t.Fatalf("expected *ChunkNotPresent, got %T: %v", err, err)
	}
}

func TestGetChunkMalformedTerrain(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "db"), 0o755)
	writeLevelDat(t, filepath.Join(dir, "level.dat"), 3, nbt.NewCompound())

	f := store.Open(filepath.Join(dir, "db"), true)
	if err := f.Put(chunkKey(0, 0, tagTerrain), make([]byte, 1024)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	f.Close()

	w, err := Open(dir, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer w.Close()

	_, err = w.GetChunk(0, 0)
	if err == nil {
		t.Fatal("expected a MalformedChunk error")
	}
	malformed, ok := err.(*chunk.MalformedChunk)
	if !ok {
		t.Fatalf("expected *chunk.MalformedChunk, got %T", err)
	}
	if malformed.Len != 1024 {
		t.Fatalf("Len: got %d want 1024", malformed.Len)
	}

	if _, cached := w.cache[Coord{0, 0}]; cached {
		t.Fatal("a failed decode must not populate the cache")
	}
}

func TestDirtySaveRoundTrip(t *testing.T) {
	w := newFixtureWorld(t, nbt.NewCompound(), []Coord{{2, 2}})
	defer w.Close()

	c, err := w.GetChunk(2, 2)
	if err != nil {
		t.Fatalf("GetChunk: %v", err)
	}
	c.Blocks[chunk.Index(4, 4, 4)] = 7
	c.MarkDirty()

	var progressed []SaveProgress
	if err := w.SaveIncremental(func(p SaveProgress) { progressed = append(progressed, p) }); err != nil {
		t.Fatalf("SaveIncremental: %v", err)
	}
	if len(progressed) != 1 {
		t.Fatalf("expected 1 progress step, got %d", len(progressed))
	}
	if c.Dirty() {
		t.Fatal("chunk should be clean after a committed save")
	}

	w.Unload()
	reloaded, err := w.GetChunk(2, 2)
	if err != nil {
		t.Fatalf("GetChunk after unload: %v", err)
	}
	if reloaded.Blocks[chunk.Index(4, 4, 4)] != 7 {
		t.Fatal("mutated block did not survive save + reload")
	}
	for _, b := range reloaded.DirtyColumns {
		if b != 255 {
			t.Fatal("expected DirtyColumns to be all 255 after a dirty save")
		}
	}
}

func TestDeleteChunksInBox(t *testing.T) {
	var coords []Coord
	for cx := int32(0); cx < 3; cx++ {
		for cz := int32(0); cz < 3; cz++ {
			coords = append(coords, Coord{cx, cz})
		}
	}
	coords = append(coords, Coord{10, 10}, Coord{-1, -1}, Coord{5, 5}, Coord{6, 6}, Coord{7, 7})
	w := newFixtureWorld(t, nbt.NewCompound(), coords)
	defer w.Close()

	deleted, err := w.DeleteChunksInBox(Box{MinCX: 0, MaxCX: 3, MinCZ: 0, MaxCZ: 3})
	if err != nil {
		t.Fatalf("DeleteChunksInBox: %v", err)
	}
	if deleted != 9 {
		t.Fatalf("deleted: got %d want 9", deleted)
	}

	all, err := w.AllChunks()
	if err != nil {
		t.Fatalf("AllChunks: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("remaining chunks: got %d want 5", len(all))
	}
	for cx := int32(0); cx < 3; cx++ {
		for cz := int32(0); cz < 3; cz++ {
			if _, err := w.GetChunk(cx, cz); err == nil {
				t.Fatalf("chunk (%d,%d) should have been deleted", cx, cz)
			}
		}
	}
}

func TestUnloadIsIdempotent(t *testing.T) {
	w := newFixtureWorld(t, nbt.NewCompound(), []Coord{{0, 0}})
	defer w.Close()
	w.Unload()
	w.Unload()
}

func TestCloseIsIdempotent(t *testing.T) {
	w := newFixtureWorld(t, nbt.NewCompound(), nil)
	if err := w.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
