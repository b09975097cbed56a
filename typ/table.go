// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
package typ

import (
	"github.com/typegraph/typegraph/err"
)

const DefaultPointerSize = 8

// Table owns all type nodes of one program container. Nodes hold
// non-owning Ids into it; a referenced Id need not be present, lookups
// of absent Ids report absence instead of failing. Mutation is
// append/overwrite only, last write wins on Id collision.
type Table struct {
	Map        map[Id]Type
	Names      map[Id]string // sparse, not every node is named
	Prototypes map[Id]Id     // entity id -> declared type id

	// PointerSize is the byte width of pointers (and function values)
	// on the container's instruction set.
	PointerSize int
}

func NewTable() *Table {
	return &Table{
		Map:         make(map[Id]Type),
		Names:       make(map[Id]string),
		Prototypes:  make(map[Id]Id),
		PointerSize: DefaultPointerSize,
	}
}

// Add inserts t by its Id, overwriting any previous node, and records
// name when non-empty. Returns t unchanged.
func (tb *Table) Add(t Type, name string) Type {
	tb.Map[t.TypeId()] = t
	if name != "" {
		tb.Names[t.TypeId()] = name
	}
	return t
}

// AddPrototype records entity's declared type and name together.
func (tb *Table) AddPrototype(fn Function, name string, entity Id) {
	tb.Map[fn.Id] = fn
	tb.Names[fn.Id] = name
	tb.Prototypes[entity] = fn.Id
}

// Get is a pure lookup. Absence is not an error.
func (tb *Table) Get(id Id) (Type, bool) {
	t, ok := tb.Map[id]
	return t, ok
}

// Name returns the display name recorded for id, or "".
func (tb *Table) Name(id Id) string {
	return tb.Names[id]
}

// SizeOf computes the resolved byte size of a node. Pointer and
// function valued sizes come from the table's instruction-set metadata.
// Does not terminate on a malformed value-cycle (an array or alias
// chain reaching itself); such graphs are rejected upstream.
func SizeOf(tb *Table, t Type) (int, err.Error) {
	switch t := t.(type) {
	case Unknown:
		return t.Size, nil
	case Bool:
		return 1, nil
	case Int:
		return t.Size, nil
	case Char:
		return t.Size, nil
	case Float:
		return t.Size, nil
	case Void:
		return 0, nil
	case Pointer:
		return tb.PointerSize, nil
	case Function:
		return tb.PointerSize, nil
	case Struct:
		return t.Size, nil
	case Array:
		elem, ok := tb.Get(t.Element)
		if !ok {
			return 0, err.MissingReferentError{Id: t.Element, Where: "array element"}
		}
		n, e := SizeOf(tb, elem)
		if e != nil {
			return 0, e
		}
		return t.Count * n, nil
	case Alias:
		to, ok := tb.Get(t.To)
		if !ok {
			return 0, err.MissingReferentError{Id: t.To, Where: "alias referent"}
		}
		return SizeOf(tb, to)
	}
	return 0, err.NotRenderableError{Kind: string(t.Kind())}
}

// AggregateDefs collects the user-defined aggregates (structs and
// functions) reachable from t into acc, keyed by Id. Absent referents
// are skipped.
func AggregateDefs(tb *Table, t Type, acc map[Id]Type) {
	if t == nil {
		return
	}
	if _, ok := acc[t.TypeId()]; ok {
		return
	}
	switch t := t.(type) {
	case Struct:
		acc[t.Id] = t
		for _, f := range t.Fields {
			if ft, ok := tb.Get(f.Type); ok {
				AggregateDefs(tb, ft, acc)
			}
		}
	case Pointer:
		if to, ok := tb.Get(t.To); ok {
			AggregateDefs(tb, to, acc)
		}
	case Function:
		acc[t.Id] = t
		if ret, ok := tb.Get(t.Return); ok {
			AggregateDefs(tb, ret, acc)
		}
		for _, arg := range t.Arguments {
			if at, ok := tb.Get(arg); ok {
				AggregateDefs(tb, at, acc)
			}
		}
	case Array:
		if elem, ok := tb.Get(t.Element); ok {
			AggregateDefs(tb, elem, acc)
		}
	}
}
