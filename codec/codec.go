// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
//
// Package codec maps type nodes to and from their tagged persisted form.
// The variant order and the per-kind payload layouts are the wire
// contract: changing either breaks all previously persisted containers.
package codec

import (
	"encoding/binary"

	"github.com/typegraph/typegraph/err"
	"github.com/typegraph/typegraph/typ"
)

// Variant indices, in the canonical wire order.
const (
	VariantUnknown uint64 = iota
	VariantBool
	VariantInt
	VariantChar
	VariantFloat
	VariantFunction
	VariantPointer
	VariantArray
	VariantStruct
	VariantVoid
	VariantAlias

	VariantCount
)

// Variant is a type node in persisted form: a kind index into the wire
// order plus that kind's payload bytes.
type Variant struct {
	Index   uint64
	Payload []byte
}

// emptyMarker is the single payload byte written for Bool and Void.
// Writing it explicitly keeps a no-payload variant distinguishable from
// a one-scalar payload; arity is never inferred from payload shape.
const emptyMarker = byte(0)

// Encode returns the persisted form of t. It never fails: every legal
// node has a wire representation.
func Encode(t typ.Type) Variant {
	switch t := t.(type) {

	case typ.Unknown:
		return Variant{VariantUnknown, encodeUint(uint64(t.Size), nil)}

	case typ.Bool:
		return Variant{VariantBool, []byte{emptyMarker}}

	case typ.Int:
		bs := make([]byte, 0, 4)
		if t.Signed {
			bs = append(bs, 1)
		} else {
			bs = append(bs, 0)
		}
		return Variant{VariantInt, encodeUint(uint64(t.Size), bs)}

	case typ.Char:
		return Variant{VariantChar, encodeUint(uint64(t.Size), nil)}

	case typ.Float:
		return Variant{VariantFloat, encodeUint(uint64(t.Size), nil)}

	case typ.Function:
		bs := make([]byte, 0, 16*(len(t.Arguments)+1)+2)
		bs = encodeId(t.Return, bs)
		bs = encodeUint(uint64(len(t.Arguments)), bs)
		for _, arg := range t.Arguments {
			bs = encodeId(arg, bs)
		}
		return Variant{VariantFunction, bs}

	case typ.Pointer:
		return Variant{VariantPointer, encodeId(t.To, nil)}

	case typ.Array:
		bs := encodeId(t.Element, nil)
		return Variant{VariantArray, encodeUint(uint64(t.Count), bs)}

	case typ.Struct:
		bs := make([]byte, 0, 18*len(t.Fields)+4)
		bs = encodeUint(uint64(t.Size), bs)
		bs = encodeUint(uint64(len(t.Fields)), bs)
		for _, f := range t.Fields {
			bs = encodeUint(uint64(f.Offset), bs)
			bs = encodeId(f.Type, bs)
		}
		return Variant{VariantStruct, bs}

	case typ.Void:
		return Variant{VariantVoid, []byte{emptyMarker}}

	case typ.Alias:
		return Variant{VariantAlias, encodeId(t.To, nil)}

	}
	panic("codec.Encode: unhandled kind")
}

// Decode reconstructs the node persisted as v under id. Referenced Ids
// are not resolved here: forward references are legal during load and
// resolution always goes through the table.
func Decode(id typ.Id, v Variant) (typ.Type, err.Error) {
	if v.Index >= VariantCount {
		return nil, err.UnknownVariantError{Index: v.Index, Max: VariantCount}
	}

	bs := v.Payload
	switch v.Index {

	case VariantUnknown:
		n, bs, e := decodeUint(bs, "unknown")
		if e != nil {
			return nil, e
		}
		if e := rest(bs, "unknown"); e != nil {
			return nil, e
		}
		return typ.Unknown{Id: id, Size: int(n)}, nil

	case VariantBool:
		if e := decodeEmpty(bs, "bool"); e != nil {
			return nil, e
		}
		return typ.Bool{Id: id}, nil

	case VariantInt:
		if len(bs) < 1 {
			return nil, err.InvalidPayloadError{Kind: "int", Problem: "truncated"}
		}
		signed := bs[0] != 0
		n, bs, e := decodeUint(bs[1:], "int")
		if e != nil {
			return nil, e
		}
		if e := rest(bs, "int"); e != nil {
			return nil, e
		}
		return typ.Int{Id: id, Signed: signed, Size: int(n)}, nil

	case VariantChar:
		n, bs, e := decodeUint(bs, "char")
		if e != nil {
			return nil, e
		}
		if e := rest(bs, "char"); e != nil {
			return nil, e
		}
		return typ.Char{Id: id, Size: int(n)}, nil

	case VariantFloat:
		n, bs, e := decodeUint(bs, "float")
		if e != nil {
			return nil, e
		}
		if e := rest(bs, "float"); e != nil {
			return nil, e
		}
		return typ.Float{Id: id, Size: int(n)}, nil

	case VariantFunction:
		ret, bs, e := decodeId(bs, "function")
		if e != nil {
			return nil, e
		}
		n, bs, e := decodeUint(bs, "function")
		if e != nil {
			return nil, e
		}
		// every argument costs 16 payload bytes, bound before allocating
		if n > uint64(len(bs))/16 {
			return nil, err.InvalidPayloadError{Kind: "function", Problem: "truncated"}
		}
		args := make([]typ.Id, n)
		for i := range args {
			args[i], bs, e = decodeId(bs, "function")
			if e != nil {
				return nil, e
			}
		}
		if e := rest(bs, "function"); e != nil {
			return nil, e
		}
		return typ.Function{Id: id, Return: ret, Arguments: args}, nil

	case VariantPointer:
		to, bs, e := decodeId(bs, "pointer")
		if e != nil {
			return nil, e
		}
		if e := rest(bs, "pointer"); e != nil {
			return nil, e
		}
		return typ.Pointer{Id: id, To: to}, nil

	case VariantArray:
		elem, bs, e := decodeId(bs, "array")
		if e != nil {
			return nil, e
		}
		n, bs, e := decodeUint(bs, "array")
		if e != nil {
			return nil, e
		}
		if e := rest(bs, "array"); e != nil {
			return nil, e
		}
		return typ.Array{Id: id, Element: elem, Count: int(n)}, nil

	case VariantStruct:
		size, bs, e := decodeUint(bs, "struct")
		if e != nil {
			return nil, e
		}
		n, bs, e := decodeUint(bs, "struct")
		if e != nil {
			return nil, e
		}
		// every field costs at least 17 payload bytes, bound before allocating
		if n > uint64(len(bs))/17 {
			return nil, err.InvalidPayloadError{Kind: "struct", Problem: "truncated"}
		}
		fields := make([]typ.Field, n)
		for i := range fields {
			off, cs, e := decodeUint(bs, "struct")
			if e != nil {
				return nil, e
			}
			to, cs, e := decodeId(cs, "struct")
			if e != nil {
				return nil, e
			}
			fields[i] = typ.Field{Offset: int(off), Type: to}
			bs = cs
		}
		if e := rest(bs, "struct"); e != nil {
			return nil, e
		}
		return typ.Struct{Id: id, Size: int(size), Fields: fields}, nil

	case VariantVoid:
		if e := decodeEmpty(bs, "void"); e != nil {
			return nil, e
		}
		return typ.Void{Id: id}, nil

	case VariantAlias:
		to, bs, e := decodeId(bs, "alias")
		if e != nil {
			return nil, e
		}
		if e := rest(bs, "alias"); e != nil {
			return nil, e
		}
		return typ.Alias{Id: id, To: to}, nil

	}
	panic("never reached")
}

// Marshal flattens a Variant for storage: uvarint index, then payload.
func Marshal(v Variant) []byte {
	bs := encodeUint(v.Index, make([]byte, 0, len(v.Payload)+2))
	return append(bs, v.Payload...)
}

func Unmarshal(bs []byte) (Variant, err.Error) {
	n, bs, e := decodeUint(bs, "variant")
	if e != nil {
		return Variant{}, e
	}
	return Variant{Index: n, Payload: bs}, nil
}

func encodeUint(n uint64, bs []byte) []byte {
	tmp := [10]byte{}
	ln := binary.PutUvarint(tmp[:], n)
	return append(bs, tmp[:ln]...)
}

func encodeId(id typ.Id, bs []byte) []byte {
	return append(bs, id[:]...)
}

func decodeUint(bs []byte, kind string) (uint64, []byte, err.Error) {
	n, l := binary.Uvarint(bs)
	if l <= 0 {
		return 0, nil, err.InvalidPayloadError{Kind: kind, Problem: "truncated"}
	}
	return n, bs[l:], nil
}

func decodeId(bs []byte, kind string) (typ.Id, []byte, err.Error) {
	if len(bs) < 16 {
		return typ.Id{}, nil, err.InvalidPayloadError{Kind: kind, Problem: "truncated"}
	}
	id := typ.Id{}
	copy(id[:], bs[:16])
	return id, bs[16:], nil
}

func decodeEmpty(bs []byte, kind string) err.Error {
	if len(bs) != 1 || bs[0] != emptyMarker {
		return err.InvalidPayloadError{Kind: kind, Problem: "expected empty marker"}
	}
	return nil
}

func rest(bs []byte, kind string) err.Error {
	if len(bs) != 0 {
		return err.InvalidPayloadError{Kind: kind, Problem: "trailing bytes"}
	}
	return nil
}
