// Package world implements the World: an in-memory chunk cache, dirty
// tracking, chunk enumeration, bulk delete, the incremental save pipeline,
// and the root-metadata accessor, all mediated through a Store Facade.
package world

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"pocketworld/chunk"
	"pocketworld/logger"
	"pocketworld/nbt"
	"pocketworld/session"
	"pocketworld/store"
)

const minLevelDatVersion = 3

// Coord is a chunk coordinate pair.
type Coord struct {
	CX, CZ int32
}

// Box is a half-open rectangle of chunk coordinates:
// [MinCX, MaxCX) x [MinCZ, MaxCZ).
type Box struct {
	MinCX, MaxCX int32
	MinCZ, MaxCZ int32
}

// World is the aggregate described in §3: a filesystem path, a Store
// Facade, a root-metadata Compound, a cache of loaded chunks, and a
// memoized chunk-coordinate enumeration. It is not safe for concurrent use
// from multiple goroutines, per the single-threaded cooperative scheduling
// model in §5.
type World struct {
	path     string
	store    *store.Facade
	root     *RootMetadata
	lock     *session.Lock
	holdOpen bool

	cache map[Coord]*chunk.Chunk

	allChunks       []Coord // nil until first AllChunks call
	allChunksCached bool
}

// Open validates path contains "db" and "level.dat", reads root metadata
// from level.dat, and returns a ready World. holdOpen selects the Store
// Facade's handle policy (see package store).
func Open(path string, holdOpen bool) (*World, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("world: %s is not a directory: %w", path, err)
	}

	dbPath := filepath.Join(path, "db")
	if fi, err := os.Stat(dbPath); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("world: %s has no db/ directory", path)
	}

	root, err := readLevelDat(filepath.Join(path, "level.dat"))
	if err != nil {
		if _, isMalformed := err.(*MalformedLevelDat); isMalformed {
			logger.Warn("world: level.dat malformed at %s, retrying level.dat_old", path)
			root, err = readLevelDat(filepath.Join(path, "level.dat_old"))
		}
		if err != nil {
			return nil, err
		}
	}

	lock, lockErr := session.Acquire(path)
	if lockErr != nil {
		logger.Warn("world: could not acquire session lock for %s: %v", path, lockErr)
	}

	w := &World{
		path:     path,
		store:    store.Open(dbPath, holdOpen),
		root:     &RootMetadata{compound: root, dirPath: path},
		lock:     lock,
		holdOpen: holdOpen,
		cache:    make(map[Coord]*chunk.Chunk),
	}
	return w, nil
}

func readLevelDat(path string) (*nbt.Compound, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < 8 {
		return nil, &MalformedLevelDat{Declared: 0, Actual: len(data)}
	}

	version := int32(binary.LittleEndian.Uint32(data[0:4]))
	declaredLen := int32(binary.LittleEndian.Uint32(data[4:8]))
	payload := data[8:]

	if version < minLevelDatVersion {
		return nil, &UnsupportedLevelVersion{Version: version}
	}
	if int(declaredLen) != len(payload) {
		return nil, &MalformedLevelDat{Declared: int(declaredLen), Actual: len(payload)}
	}

	_, v, _, ok, err := nbt.DecodeNamedTag(payload, binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MalformedLevelDat{Declared: int(declaredLen), Actual: 0}
	}
	root, isCompound := v.(*nbt.Compound)
	if !isCompound {
		return nil, &MalformedLevelDat{Declared: int(declaredLen), Actual: len(payload)}
	}
	return root, nil
}

// Root returns the World's root-metadata accessor.
func (w *World) Root() *RootMetadata { return w.root }

// GetChunk returns the chunk at (cx, cz), loading it from the store on a
// cache miss. It fails with *ChunkNotPresent if the terrain key is
// absent.
func (w *World) GetChunk(cx, cz int32) (*chunk.Chunk, error) {
	coord := Coord{cx, cz}
	if c, ok := w.cache[coord]; ok {
		return c, nil
	}

	terrain, err := w.store.Get(chunkKey(cx, cz, tagTerrain))
	if err != nil {
		if err == store.ErrNotFound {
			return nil, &ChunkNotPresent{CX: cx, CZ: cz}
		}
		return nil, err
	}

	tileEntities, err := w.getOptional(chunkKey(cx, cz, tagTileEntities))
	if err != nil {
		return nil, err
	}
	entities, err := w.getOptional(chunkKey(cx, cz, tagEntities))
	if err != nil {
		return nil, err
	}

	c, err := chunk.Decode(cx, cz, terrain, tileEntities, entities)
	if err != nil {
		return nil, err
	}
	w.cache[coord] = c
	return c, nil
}

func (w *World) getOptional(key []byte) ([]byte, error) {
	v, err := w.store.Get(key)
	if err == store.ErrNotFound {
		return nil, nil
	}
	return v, err
}

// AllChunks returns every (cx, cz) with a terrain record, memoizing the
// result until the next Unload. Chunk deletions through this World remove
// their coordinates from the memoized list instead of clearing it.
func (w *World) AllChunks() ([]Coord, error) {
	if w.allChunksCached {
		return w.allChunks, nil
	}

	var coords []Coord
	err := w.store.Iterate(func(kv store.KV) error {
		cx, cz, tag, ok := parseChunkKey(kv.Key)
		if !ok || tag != tagTerrain {
			return nil
		}
		coords = append(coords, Coord{cx, cz})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(coords, func(i, j int) bool {
		if coords[i].CX != coords[j].CX {
			return coords[i].CX < coords[j].CX
		}
		return coords[i].CZ < coords[j].CZ
	})

	w.allChunks = coords
	w.allChunksCached = true
	return w.allChunks, nil
}

func (w *World) removeFromAllChunks(coord Coord) {
	if !w.allChunksCached {
		return
	}
	for i, c := range w.allChunks {
		if c == coord {
			w.allChunks = append(w.allChunks[:i], w.allChunks[i+1:]...)
			return
		}
	}
}

// DeleteChunk deletes the terrain key only — tile-entities and entities
// become orphans, intentionally, matching the source. It removes the
// chunk from the cache and the memoized enumeration.
func (w *World) DeleteChunk(cx, cz int32) error {
	if err := w.store.Delete(chunkKey(cx, cz, tagTerrain)); err != nil {
		return err
	}
	coord := Coord{cx, cz}
	delete(w.cache, coord)
	w.removeFromAllChunks(coord)
	return nil
}

// DeleteChunksInBox deletes every present chunk in the half-open box via a
// single shared batch, committed once. Progress is logged every 100
// chunks, per §5.
func (w *World) DeleteChunksInBox(box Box) (int, error) {
	batch := w.store.NewBatch()
	deleted := 0

	for cx := box.MinCX; cx < box.MaxCX; cx++ {
		for cz := box.MinCZ; cz < box.MaxCZ; cz++ {
			key := chunkKey(cx, cz, tagTerrain)
			if _, err := w.store.Get(key); err == store.ErrNotFound {
				continue
			} else if err != nil {
				return deleted, err
			}
			batch.Delete(key)
			deleted++
			if deleted%100 == 0 {
				logger.Info("world: delete_chunks_in_box progress: %d chunks queued", deleted)
			}
		}
	}

	if batch.Len() == 0 {
		return 0, nil
	}
	if err := w.store.Commit(batch); err != nil {
		return 0, err
	}

	for cx := box.MinCX; cx < box.MaxCX; cx++ {
		for cz := box.MinCZ; cz < box.MaxCZ; cz++ {
			coord := Coord{cx, cz}
			delete(w.cache, coord)
			w.removeFromAllChunks(coord)

			if _, err := w.store.Get(chunkKey(cx, cz, tagTerrain)); err != store.ErrNotFound {
				return deleted, fmt.Errorf("world: chunk (%d, %d) still present after delete_chunks_in_box commit", cx, cz)
			}
		}
	}
	return deleted, nil
}

// SaveProgress is one opaque step yielded by SaveIncremental — one per
// dirty chunk processed.
type SaveProgress struct {
	Coord     Coord
	Processed int
	Total     int
}

// SaveIncremental walks every cached dirty chunk, encodes it into a shared
// batch, and calls onProgress once per chunk. The dirty flag is cleared
// only after the batch commits successfully — a conservative choice that
// avoids losing edits if the batch is discarded mid-way (see §5's
// cancellation hazard): a failed or abandoned save simply leaves those
// chunks dirty for the next call.
func (w *World) SaveIncremental(onProgress func(SaveProgress)) error {
	type dirtyEntry struct {
		coord Coord
		c     *chunk.Chunk
	}
	var dirty []dirtyEntry
	for coord, c := range w.cache {
		if c.Dirty() {
			dirty = append(dirty, dirtyEntry{coord, c})
		}
	}

	if len(dirty) == 0 {
		return nil
	}

	batch := w.store.NewBatch()
	for i, entry := range dirty {
		terrain, tileEntities, entities, err := entry.c.Encode()
		if err != nil {
			return fmt.Errorf("world: save_incremental: encoding chunk (%d, %d): %w", entry.coord.CX, entry.coord.CZ, err)
		}
		batch.Put(chunkKey(entry.coord.CX, entry.coord.CZ, tagTerrain), terrain)
		if len(tileEntities) > 0 {
			batch.Put(chunkKey(entry.coord.CX, entry.coord.CZ, tagTileEntities), tileEntities)
		}
		if len(entities) > 0 {
			batch.Put(chunkKey(entry.coord.CX, entry.coord.CZ, tagEntities), entities)
		}
		if onProgress != nil {
			onProgress(SaveProgress{Coord: entry.coord, Processed: i + 1, Total: len(dirty)})
		}
	}

	if err := w.store.Commit(batch); err != nil {
		return err
	}
	for _, entry := range dirty {
		entry.c.ClearDirty()
	}
	return nil
}

// ChunksNeedingLighting returns the coordinates of cached chunks flagged
// via chunk.Chunk.MarkNeedsLighting, for a host engine's lighting pass to
// drain.
func (w *World) ChunksNeedingLighting() []Coord {
	var coords []Coord
	for coord, c := range w.cache {
		if c.NeedsLighting() {
			coords = append(coords, coord)
		}
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].CX != coords[j].CX {
			return coords[i].CX < coords[j].CX
		}
		return coords[i].CZ < coords[j].CZ
	})
	return coords
}

// Unload clears the chunk cache and the memoized enumeration. Idempotent.
func (w *World) Unload() {
	w.cache = make(map[Coord]*chunk.Chunk)
	w.allChunks = nil
	w.allChunksCached = false
}

// Close unloads the World and releases the store handle. A lost session
// lock is logged and swallowed, per §5. Idempotent.
func (w *World) Close() error {
	w.Unload()
	if err := w.store.Close(); err != nil {
		return err
	}
	if w.lock != nil {
		if err := w.lock.Release(); err != nil {
			var lost *session.LockLost
			if asSessionLockLost(err, &lost) {
				logger.Warn("world: %v", err)
			} else {
				return err
			}
		}
		w.lock = nil
	}
	return nil
}

func asSessionLockLost(err error, target **session.LockLost) bool {
	l, ok := err.(*session.LockLost)
	if !ok {
		return false
	}
	*target = l
	return true
}
