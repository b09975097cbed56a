// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
//
// Package store is the program-container boundary: a bolt file holding
// the persisted type, name and prototype tables alongside the
// container's own function table and instruction-set metadata. All file
// I/O lives here; the core packages never touch disk.
package store

import (
	"encoding/binary"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/typegraph/typegraph/codec"
	"github.com/typegraph/typegraph/err"
	"github.com/typegraph/typegraph/typ"
)

const (
	InitialMmapSize = 1024 * 1024 * 16 // 16MB
	Perm            = 0700
)

var (
	bucketTypes      = []byte("typeTable")
	bucketNames      = []byte("typeNameTable")
	bucketPrototypes = []byte("prototypeTable")
	bucketFunctions  = []byte("functionTable")
	bucketMeta       = []byte("meta")

	metaISA         = []byte("isa")
	metaPointerSize = []byte("pointerSize")
)

// typeBuckets are the tables Strip removes; functionTable and meta
// belong to the container itself and survive a strip.
var typeBuckets = [][]byte{bucketTypes, bucketNames, bucketPrototypes}

func Open(path string) (*bolt.DB, error) {
	return bolt.Open(path, Perm, &bolt.Options{
		InitialMmapSize: InitialMmapSize,
		Timeout:         time.Second * 3,
	})
}

// Load decodes the persisted tables into a fresh type table. A missing
// bucket reads as empty; a record with an out-of-range variant index
// fails the load.
func Load(db *bolt.DB) (*typ.Table, err.Error) {
	rs := codec.NewRecords()
	ptrSize := typ.DefaultPointerSize

	e := db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketTypes); b != nil {
			if e := b.ForEach(func(k, v []byte) error {
				id, e := parseId(k)
				if e != nil {
					return e
				}
				variant, e2 := codec.Unmarshal(v)
				if e2 != nil {
					return e2
				}
				// payloads share bolt's mmap, copy before the tx ends
				payload := make([]byte, len(variant.Payload))
				copy(payload, variant.Payload)
				rs.Types[id] = codec.Variant{Index: variant.Index, Payload: payload}
				return nil
			}); e != nil {
				return e
			}
		}
		if b := tx.Bucket(bucketNames); b != nil {
			if e := b.ForEach(func(k, v []byte) error {
				id, e := parseId(k)
				if e != nil {
					return e
				}
				rs.Names[id] = string(v)
				return nil
			}); e != nil {
				return e
			}
		}
		if b := tx.Bucket(bucketPrototypes); b != nil {
			if e := b.ForEach(func(k, v []byte) error {
				entity, e := parseId(k)
				if e != nil {
					return e
				}
				id, e := parseId(v)
				if e != nil {
					return e
				}
				rs.Prototypes[entity] = id
				return nil
			}); e != nil {
				return e
			}
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			if v := b.Get(metaPointerSize); len(v) == 8 {
				ptrSize = int(binary.BigEndian.Uint64(v))
			}
		}
		return nil
	})
	if e != nil {
		if ee, ok := e.(err.Error); ok {
			return nil, ee
		}
		return nil, err.StoreError{Problem: "loading type tables", Wrapped: e}
	}

	tb, ee := codec.LoadTable(rs)
	if ee != nil {
		return nil, ee
	}
	tb.PointerSize = ptrSize
	return tb, nil
}

// Save encodes tb and rewrites the three persisted tables wholesale.
func Save(db *bolt.DB, tb *typ.Table) err.Error {
	rs := codec.SaveTable(tb)

	e := db.Update(func(tx *bolt.Tx) error {
		for _, name := range typeBuckets {
			if tx.Bucket(name) != nil {
				if e := tx.DeleteBucket(name); e != nil {
					return e
				}
			}
		}
		types, e := tx.CreateBucket(bucketTypes)
		if e != nil {
			return e
		}
		for id, v := range rs.Types {
			if e := types.Put(id[:], codec.Marshal(v)); e != nil {
				return e
			}
		}
		names, e := tx.CreateBucket(bucketNames)
		if e != nil {
			return e
		}
		for id, name := range rs.Names {
			if e := names.Put(id[:], []byte(name)); e != nil {
				return e
			}
		}
		protos, e := tx.CreateBucket(bucketPrototypes)
		if e != nil {
			return e
		}
		for entity, id := range rs.Prototypes {
			if e := protos.Put(entity[:], id[:]); e != nil {
				return e
			}
		}
		return nil
	})
	if e != nil {
		return err.StoreError{Problem: "saving type tables", Wrapped: e}
	}
	return nil
}

// Strip deletes the three persisted type tables without touching
// anything else in the container.
func Strip(db *bolt.DB) err.Error {
	e := db.Update(func(tx *bolt.Tx) error {
		for _, name := range typeBuckets {
			if tx.Bucket(name) == nil {
				continue
			}
			if e := tx.DeleteBucket(name); e != nil {
				return e
			}
		}
		return nil
	})
	if e != nil {
		return err.StoreError{Problem: "stripping type tables", Wrapped: e}
	}
	return nil
}

// Functions reads the container-owned entity table: function entity id
// to function name.
func Functions(db *bolt.DB) (map[typ.Id]string, err.Error) {
	fns := make(map[typ.Id]string)
	e := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFunctions)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			id, e := parseId(k)
			if e != nil {
				return e
			}
			fns[id] = string(v)
			return nil
		})
	})
	if e != nil {
		if ee, ok := e.(err.Error); ok {
			return nil, ee
		}
		return nil, err.StoreError{Problem: "loading function table", Wrapped: e}
	}
	return fns, nil
}

// AddFunction records a function entity in the container.
func AddFunction(db *bolt.DB, entity typ.Id, name string) err.Error {
	e := db.Update(func(tx *bolt.Tx) error {
		b, e := tx.CreateBucketIfNotExists(bucketFunctions)
		if e != nil {
			return e
		}
		return b.Put(entity[:], []byte(name))
	})
	if e != nil {
		return err.StoreError{Problem: "adding function", Wrapped: e}
	}
	return nil
}

// SetISA records the container's instruction set name and pointer width
// in bytes.
func SetISA(db *bolt.DB, isa string, pointerSize int) err.Error {
	e := db.Update(func(tx *bolt.Tx) error {
		b, e := tx.CreateBucketIfNotExists(bucketMeta)
		if e != nil {
			return e
		}
		if e := b.Put(metaISA, []byte(isa)); e != nil {
			return e
		}
		v := make([]byte, 8)
		binary.BigEndian.PutUint64(v, uint64(pointerSize))
		return b.Put(metaPointerSize, v)
	})
	if e != nil {
		return err.StoreError{Problem: "setting ISA metadata", Wrapped: e}
	}
	return nil
}

// ISA reads back the container's instruction set metadata.
func ISA(db *bolt.DB) (string, int, err.Error) {
	isa := ""
	ptrSize := typ.DefaultPointerSize
	e := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if b == nil {
			return nil
		}
		isa = string(b.Get(metaISA))
		if v := b.Get(metaPointerSize); len(v) == 8 {
			ptrSize = int(binary.BigEndian.Uint64(v))
		}
		return nil
	})
	if e != nil {
		return "", 0, err.StoreError{Problem: "loading ISA metadata", Wrapped: e}
	}
	return isa, ptrSize, nil
}

func parseId(bs []byte) (typ.Id, err.Error) {
	if len(bs) != 16 {
		return typ.Id{}, err.StoreError{Problem: "malformed id key"}
	}
	id := typ.Id{}
	copy(id[:], bs)
	return id, nil
}
