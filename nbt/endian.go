package nbt

import (
	"encoding/binary"
	"sync"
)

// defaultOrderMu guards defaultOrder. It exists purely to back
// WithLittleEndian's scope-guard convenience; every codec entry point that
// matters for chunk/level.dat correctness (package chunk, package world)
// passes its byte order explicitly instead of relying on this package
// global, per the decision recorded in DESIGN.md.
var (
	defaultOrderMu sync.Mutex
	defaultOrder   binary.ByteOrder = binary.BigEndian
)

// CurrentOrder returns the byte order currently in effect for the
// convenience Encode/Decode functions that omit an explicit order.
func CurrentOrder() binary.ByteOrder {
	defaultOrderMu.Lock()
	defer defaultOrderMu.Unlock()
	return defaultOrder
}

// WithLittleEndian runs fn with the package's default byte order set to
// little-endian, restoring whatever order was previously in effect on every
// exit path — including a panic or an error return from fn. Nested calls
// stack correctly: an inner WithLittleEndian restores the order that was
// active when it was entered, which is still little-endian if the caller is
// itself inside an outer WithLittleEndian scope.
func WithLittleEndian(fn func() error) (err error) {
	defaultOrderMu.Lock()
	prev := defaultOrder
	defaultOrder = binary.LittleEndian
	defaultOrderMu.Unlock()

	defer func() {
		defaultOrderMu.Lock()
		defaultOrder = prev
		defaultOrderMu.Unlock()
	}()

	return fn()
}
