// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
package typ

import (
	"github.com/google/uuid"

	"github.com/typegraph/typegraph/err"
)

// Id identifies a type node within a Table. Identity, not structural
// equality, is the primary key: two nodes with equal payloads but
// different Ids are distinct types.
type Id = uuid.UUID

// NewId returns a fresh random Id.
func NewId() Id {
	return uuid.New()
}

type Kind string

const (
	KindUnknown  Kind = "unknown"
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindChar     Kind = "char"
	KindFloat    Kind = "float"
	KindFunction Kind = "function"
	KindPointer  Kind = "pointer"
	KindArray    Kind = "array"
	KindStruct   Kind = "struct"
	KindVoid     Kind = "void"
	KindAlias    Kind = "alias"
)

// Type is a node in the type graph. Nodes reference each other by Id,
// never by embedding, because the graph is cyclic and persisted per-node.
// Referents are resolved lazily through the owning Table.
type Type interface {
	TypeId() Id
	Kind() Kind
	Equals(Type) bool
}

// Unknown is a type opaque beyond its byte size.
type Unknown struct {
	Id   Id
	Size int
}

func (t Unknown) TypeId() Id {
	return t.Id
}
func (t Unknown) Kind() Kind {
	return KindUnknown
}
func (t Unknown) Equals(u Type) bool {
	v, ok := u.(Unknown)
	return ok && t == v
}

type Bool struct {
	Id Id
}

func (t Bool) TypeId() Id {
	return t.Id
}
func (t Bool) Kind() Kind {
	return KindBool
}
func (t Bool) Equals(u Type) bool {
	v, ok := u.(Bool)
	return ok && t == v
}

type Int struct {
	Id     Id
	Signed bool
	Size   int
}

func (t Int) TypeId() Id {
	return t.Id
}
func (t Int) Kind() Kind {
	return KindInt
}
func (t Int) Equals(u Type) bool {
	v, ok := u.(Int)
	return ok && t == v
}

// Char is char-like data, kept apart from Int because the lattice
// treats chars as their own category.
type Char struct {
	Id   Id
	Size int
}

func (t Char) TypeId() Id {
	return t.Id
}
func (t Char) Kind() Kind {
	return KindChar
}
func (t Char) Equals(u Type) bool {
	v, ok := u.(Char)
	return ok && t == v
}

type Float struct {
	Id   Id
	Size int
}

func (t Float) TypeId() Id {
	return t.Id
}
func (t Float) Kind() Kind {
	return KindFloat
}
func (t Float) Equals(u Type) bool {
	v, ok := u.(Float)
	return ok && t == v
}

type Function struct {
	Id        Id
	Return    Id
	Arguments []Id
}

func (t Function) TypeId() Id {
	return t.Id
}
func (t Function) Kind() Kind {
	return KindFunction
}
func (t Function) Equals(u Type) bool {
	v, ok := u.(Function)
	if !ok || t.Id != v.Id || t.Return != v.Return {
		return false
	}
	if len(t.Arguments) != len(v.Arguments) {
		return false
	}
	for i := range t.Arguments {
		if t.Arguments[i] != v.Arguments[i] {
			return false
		}
	}
	return true
}

type Pointer struct {
	Id Id
	To Id
}

func (t Pointer) TypeId() Id {
	return t.Id
}
func (t Pointer) Kind() Kind {
	return KindPointer
}
func (t Pointer) Equals(u Type) bool {
	v, ok := u.(Pointer)
	return ok && t == v
}

type Array struct {
	Id      Id
	Element Id
	Count   int
}

func (t Array) TypeId() Id {
	return t.Id
}
func (t Array) Kind() Kind {
	return KindArray
}
func (t Array) Equals(u Type) bool {
	v, ok := u.(Array)
	return ok && t == v
}

// Field places a type at a byte offset within a Struct. Offsets need
// not be contiguous or sorted.
type Field struct {
	Offset int
	Type   Id
}

type Struct struct {
	Id     Id
	Size   int
	Fields []Field
}

// NewStruct validates field offsets against the declared byte range.
// Overlap between fields is not detected here; detecting it would need
// resolved field sizes, which forward references make unavailable at
// construction time.
func NewStruct(id Id, size int, fields []Field) (Struct, err.Error) {
	for _, f := range fields {
		if f.Offset < 0 || f.Offset >= size {
			return Struct{}, err.InvalidStructError{Offset: f.Offset, Size: size}
		}
	}
	return Struct{Id: id, Size: size, Fields: fields}, nil
}

func (t Struct) TypeId() Id {
	return t.Id
}
func (t Struct) Kind() Kind {
	return KindStruct
}
func (t Struct) Equals(u Type) bool {
	v, ok := u.(Struct)
	if !ok || t.Id != v.Id || t.Size != v.Size {
		return false
	}
	if len(t.Fields) != len(v.Fields) {
		return false
	}
	for i := range t.Fields {
		if t.Fields[i] != v.Fields[i] {
			return false
		}
	}
	return true
}

type Void struct {
	Id Id
}

func (t Void) TypeId() Id {
	return t.Id
}
func (t Void) Kind() Kind {
	return KindVoid
}
func (t Void) Equals(u Type) bool {
	v, ok := u.(Void)
	return ok && t == v
}

// Alias is transparent: it semantically equals its referent, but may
// carry its own display name in the table.
type Alias struct {
	Id Id
	To Id
}

func (t Alias) TypeId() Id {
	return t.Id
}
func (t Alias) Kind() Kind {
	return KindAlias
}
func (t Alias) Equals(u Type) bool {
	v, ok := u.(Alias)
	return ok && t == v
}

// Refs returns the Ids a node's payload points at, in payload order.
func Refs(t Type) []Id {
	switch t := t.(type) {
	case Struct:
		ids := make([]Id, 0, len(t.Fields))
		for _, f := range t.Fields {
			ids = append(ids, f.Type)
		}
		return ids
	case Alias:
		return []Id{t.To}
	case Pointer:
		return []Id{t.To}
	case Array:
		return []Id{t.Element}
	case Function:
		ids := make([]Id, 0, len(t.Arguments)+1)
		ids = append(ids, t.Return)
		ids = append(ids, t.Arguments...)
		return ids
	}
	return nil
}

// Aggregate reports wether a node is handled structurally rather than
// through lattice classification.
func Aggregate(t Type) bool {
	switch t.(type) {
	case Function, Pointer, Array, Struct:
		return true
	}
	return false
}
