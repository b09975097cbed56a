// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
package codec

import (
	"github.com/typegraph/typegraph/err"
	"github.com/typegraph/typegraph/typ"
)

// Records is the pure persisted form of a type table: the three maps
// the owning container stores, free of any I/O concern.
type Records struct {
	Types      map[typ.Id]Variant
	Names      map[typ.Id]string
	Prototypes map[typ.Id]typ.Id
}

func NewRecords() Records {
	return Records{
		Types:      make(map[typ.Id]Variant),
		Names:      make(map[typ.Id]string),
		Prototypes: make(map[typ.Id]typ.Id),
	}
}

// LoadTable decodes every persisted record into a fresh table. A single
// out-of-range variant index fails the whole load. Referenced Ids that
// are absent from rs are not an error: resolution stays lazy.
func LoadTable(rs Records) (*typ.Table, err.Error) {
	tb := typ.NewTable()
	for id, v := range rs.Types {
		t, e := Decode(id, v)
		if e != nil {
			return nil, e
		}
		tb.Map[id] = t
	}
	for id, name := range rs.Names {
		tb.Names[id] = name
	}
	for entity, id := range rs.Prototypes {
		tb.Prototypes[entity] = id
	}
	return tb, nil
}

// SaveTable encodes every node of tb plus its two side maps. It is the
// left inverse of LoadTable.
func SaveTable(tb *typ.Table) Records {
	rs := NewRecords()
	for id, t := range tb.Map {
		rs.Types[id] = Encode(t)
	}
	for id, name := range tb.Names {
		rs.Names[id] = name
	}
	for entity, id := range tb.Prototypes {
		rs.Prototypes[entity] = id
	}
	return rs
}
