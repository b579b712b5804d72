package world

import (
	"path/filepath"
	"time"

	"pocketworld/nbt"
)

// RootMetadata wraps the World's root Compound with typed, lazy-default
// accessors. Each getter inserts its default into the underlying Compound
// on first access if the field is absent, so later reads return that stored
// value rather than recomputing it. The World never writes level.dat, so
// the Compound, inserted defaults included, stays in memory only.
type RootMetadata struct {
	compound *nbt.Compound
	dirPath  string // the World's own directory, for LevelName's default
}

func (m *RootMetadata) getInt(name string, def int32) int32 {
	v, ok := m.compound.Get(name)
	if !ok {
		m.compound.Set(name, nbt.Int(def))
		return def
	}
	if i, isInt := v.(nbt.Int); isInt {
		return int32(i)
	}
	return def
}

func (m *RootMetadata) setInt(name string, v int32) {
	m.compound.Set(name, nbt.Int(v))
}

func (m *RootMetadata) getLong(name string, def int64) int64 {
	v, ok := m.compound.Get(name)
	if !ok {
		m.compound.Set(name, nbt.Long(def))
		return def
	}
	if l, isLong := v.(nbt.Long); isLong {
		return int64(l)
	}
	return def
}

func (m *RootMetadata) setLong(name string, v int64) {
	m.compound.Set(name, nbt.Long(v))
}

func (m *RootMetadata) getString(name string, def string) string {
	v, ok := m.compound.Get(name)
	if !ok {
		m.compound.Set(name, nbt.String(def))
		return def
	}
	if s, isString := v.(nbt.String); isString {
		return string(s)
	}
	return def
}

func (m *RootMetadata) setString(name string, v string) {
	m.compound.Set(name, nbt.String(v))
}

// SizeOnDisk is an informational byte count the host engine maintains.
func (m *RootMetadata) SizeOnDisk() int32      { return m.getInt("SizeOnDisk", 0) }
func (m *RootMetadata) SetSizeOnDisk(v int32)  { m.setInt("SizeOnDisk", v) }

// RandomSeed is the world generator's seed.
func (m *RootMetadata) RandomSeed() int32     { return m.getInt("RandomSeed", 0) }
func (m *RootMetadata) SetRandomSeed(v int32) { m.setInt("RandomSeed", v) }

// Time is the in-world tick counter.
func (m *RootMetadata) Time() int64     { return m.getLong("Time", 0) }
func (m *RootMetadata) SetTime(v int64) { m.setLong("Time", v) }

// LastPlayed defaults to the current wall-clock time in milliseconds, set
// the first time it's read rather than at World construction, so a World
// object that's opened but never queried doesn't stamp a LastPlayed a
// caller never asked for.
func (m *RootMetadata) LastPlayed() int64 {
	return m.getLong("LastPlayed", time.Now().UnixMilli())
}
func (m *RootMetadata) SetLastPlayed(v int64) { m.setLong("LastPlayed", v) }

// LevelName defaults to the basename of the parent directory of the
// World's own directory.
func (m *RootMetadata) LevelName() string {
	return m.getString("LevelName", filepath.Base(filepath.Dir(m.dirPath)))
}
func (m *RootMetadata) SetLevelName(v string) { m.setString("LevelName", v) }

// Generator names the world's terrain generator.
func (m *RootMetadata) Generator() string     { return m.getString("Generator", "Infinite") }
func (m *RootMetadata) SetGenerator(v string) { m.setString("Generator", v) }

// GameType is the host engine's game-mode selector.
func (m *RootMetadata) GameType() int32     { return m.getInt("GameType", 0) }
func (m *RootMetadata) SetGameType(v int32) { m.setInt("GameType", v) }
