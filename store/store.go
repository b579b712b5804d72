// Package store wraps an embedded LevelDB instance behind the narrow
// get/put/delete/iterate/batch/repair surface the rest of the engine needs,
// per the Key-Value Store Facade. It never interprets keys or values — that
// is package world's and package chunk's job.
package store

import (
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"pocketworld/logger"
)

// StoreError wraps a failure from the embedded store with the operation
// that triggered it, so callers get useful context without the facade
// leaking goleveldb's own error types.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// ErrNotFound is returned by Get when the key has no value, mirroring
// leveldb.ErrNotFound without exposing the goleveldb import to callers.
var ErrNotFound = errors.ErrNotFound

// Facade is the engine's sole point of contact with the embedded store. It
// is safe for concurrent use by multiple goroutines.
type Facade struct {
	path     string
	holdOpen bool

	mu sync.Mutex
	db *leveldb.DB // non-nil only while a hold-open handle is live
}

// Open constructs a facade over the LevelDB directory at path. holdOpen
// selects the handle policy described in §4.3: when true, the facade opens
// the store lazily on first use and keeps it open until Close; when false,
// every scoped acquisition opens and releases its own handle.
func Open(path string, holdOpen bool) *Facade {
	return &Facade{path: path, holdOpen: holdOpen}
}

// withDB runs fn against a live *leveldb.DB, honoring the hold-open policy.
// Release is guaranteed on every exit path, matching world_db()'s contract.
func (f *Facade) withDB(op string, fn func(*leveldb.DB) error) error {
	if f.holdOpen {
		f.mu.Lock()
		if f.db == nil {
			db, err := leveldb.OpenFile(f.path, nil)
			if err != nil {
				f.mu.Unlock()
				return storeErr(op, err)
			}
			f.db = db
			logger.Debug("store: opened %s with hold_open=true", f.path)
		}
		db := f.db
		f.mu.Unlock()
		return fn(db)
	}

	db, err := leveldb.OpenFile(f.path, nil)
	if err != nil {
		return storeErr(op, err)
	}
	defer db.Close()
	return fn(db)
}

// Get returns the value stored at key, or ErrNotFound if absent.
func (f *Facade) Get(key []byte) ([]byte, error) {
	var value []byte
	err := f.withDB("get", func(db *leveldb.DB) error {
		v, err := db.Get(key, nil)
		if err != nil {
			if err == leveldb.ErrNotFound {
				return err
			}
			return storeErr("get", err)
		}
		value = v
		return nil
	})
	return value, err
}

// Put writes a single key/value pair outside of any batch.
func (f *Facade) Put(key, value []byte) error {
	return f.withDB("put", func(db *leveldb.DB) error {
		if err := db.Put(key, value, nil); err != nil {
			return storeErr("put", err)
		}
		return nil
	})
}

// Delete removes key, if present. Deleting an absent key is not an error.
func (f *Facade) Delete(key []byte) error {
	return f.withDB("delete", func(db *leveldb.DB) error {
		if err := db.Delete(key, nil); err != nil {
			return storeErr("delete", err)
		}
		return nil
	})
}

// KV is one key/value pair yielded by Iterate.
type KV struct {
	Key   []byte
	Value []byte
}

// Iterate calls fn once per stored key/value pair, in the store's own key
// ordering — callers must not assume this matches chunk-coordinate order.
// Iteration stops at the first error fn returns, and any iterator error is
// surfaced as a *StoreError once the walk finishes.
func (f *Facade) Iterate(fn func(KV) error) error {
	return f.withDB("iterate", func(db *leveldb.DB) error {
		var it iterator.Iterator = db.NewIterator(&util.Range{}, nil)
		defer it.Release()

		for it.Next() {
			key := append([]byte(nil), it.Key()...)
			value := append([]byte(nil), it.Value()...)
			if err := fn(KV{Key: key, Value: value}); err != nil {
				return err
			}
		}
		if err := it.Error(); err != nil {
			return storeErr("iterate", err)
		}
		return nil
	})
}

// Batch accumulates put and delete operations with no read side; Commit
// applies it atomically from the store's perspective.
type Batch struct {
	b *leveldb.Batch
}

// NewBatch returns an empty write batch.
func (f *Facade) NewBatch() *Batch {
	return &Batch{b: new(leveldb.Batch)}
}

func (b *Batch) Put(key, value []byte) { b.b.Put(key, value) }
func (b *Batch) Delete(key []byte)     { b.b.Delete(key) }
func (b *Batch) Len() int              { return b.b.Len() }

// Commit applies batch atomically.
func (f *Facade) Commit(batch *Batch) error {
	return f.withDB("commit", func(db *leveldb.DB) error {
		if err := db.Write(batch.b, nil); err != nil {
			return storeErr("commit", err)
		}
		return nil
	})
}

// Repair attempts to recover a corrupted LevelDB directory at path using
// leveldb's own salvage pass. It is never invoked implicitly by Open —
// callers decide when the cost of a repair pass is warranted.
func Repair(path string, o *opt.Options) error {
	db, err := leveldb.RecoverFile(path, o)
	if err != nil {
		return storeErr("repair", err)
	}
	return db.Close()
}

// Close releases the held handle, if any. Closing a facade that was opened
// with holdOpen=false, or that was never used, is a no-op.
func (f *Facade) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.db == nil {
		return nil
	}
	err := f.db.Close()
	f.db = nil
	if err != nil {
		return storeErr("close", err)
	}
	return nil
}
