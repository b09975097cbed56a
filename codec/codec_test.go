// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
package codec

import (
	"math/rand"
	"testing"

	"github.com/kr/pretty"

	"github.com/typegraph/typegraph/typ"
)

func TestCodecRoundTrip(t *testing.T) {

	for i := 0; i < 100; i++ {
		x := randomType()
		v := Encode(x)
		y, e := Decode(x.TypeId(), v)
		if e != nil {
			pretty.Println(x)
			t.Fatal(e)
		}
		if !x.Equals(y) {
			pretty.Println(x)
			pretty.Println(y)
			t.Fatal("!x.Equals(y)")
		}
	}

}

func TestCodecMarshalRoundTrip(t *testing.T) {

	for i := 0; i < 100; i++ {
		x := randomType()
		bs := Marshal(Encode(x))
		v, e := Unmarshal(bs)
		if e != nil {
			t.Fatal(e)
		}
		y, e := Decode(x.TypeId(), v)
		if e != nil {
			t.Fatal(e)
		}
		if !x.Equals(y) {
			pretty.Println(x)
			pretty.Println(y)
			t.Fatal("!x.Equals(y)")
		}
	}

}

// The wire order is a contract; these indices must never change.
func TestCodecVariantOrder(t *testing.T) {

	cases := []struct {
		typ   typ.Type
		index uint64
	}{
		{typ.Unknown{Id: typ.NewId(), Size: 4}, 0},
		{typ.Bool{Id: typ.NewId()}, 1},
		{typ.Int{Id: typ.NewId(), Signed: true, Size: 4}, 2},
		{typ.Char{Id: typ.NewId(), Size: 1}, 3},
		{typ.Float{Id: typ.NewId(), Size: 4}, 4},
		{typ.Function{Id: typ.NewId(), Return: typ.NewId()}, 5},
		{typ.Pointer{Id: typ.NewId(), To: typ.NewId()}, 6},
		{typ.Array{Id: typ.NewId(), Element: typ.NewId(), Count: 2}, 7},
		{typ.Struct{Id: typ.NewId(), Size: 0}, 8},
		{typ.Void{Id: typ.NewId()}, 9},
		{typ.Alias{Id: typ.NewId(), To: typ.NewId()}, 10},
	}
	for _, c := range cases {
		if v := Encode(c.typ); v.Index != c.index {
			t.Errorf("%s encoded as variant %d, want %d", c.typ.Kind(), v.Index, c.index)
		}
	}

}

// Bool and Void must not be mistaken for zero-field payloads: they
// carry an explicit marker byte.
func TestCodecEmptyMarker(t *testing.T) {

	for _, x := range []typ.Type{typ.Bool{Id: typ.NewId()}, typ.Void{Id: typ.NewId()}} {
		v := Encode(x)
		if len(v.Payload) != 1 || v.Payload[0] != 0 {
			t.Errorf("%s payload = %v, want single zero byte", x.Kind(), v.Payload)
		}
		if _, e := Decode(x.TypeId(), Variant{Index: v.Index}); e == nil {
			t.Errorf("%s decoded from empty payload, want error", x.Kind())
		}
	}

}

func TestCodecUnknownVariant(t *testing.T) {

	_, e := Decode(typ.NewId(), Variant{Index: VariantCount, Payload: []byte{0}})
	if e == nil {
		t.Fatal("expected UnknownVariantError")
	}

}

func TestCodecTrailingBytes(t *testing.T) {

	v := Encode(typ.Int{Id: typ.NewId(), Signed: true, Size: 4})
	v.Payload = append(v.Payload, 0xff)
	if _, e := Decode(typ.NewId(), v); e == nil {
		t.Fatal("expected InvalidPayloadError")
	}

}

// A record may claim any count it likes; allocation is bounded by the
// bytes actually present, not by the claim.
func TestCodecOversizedCount(t *testing.T) {

	fn := encodeUint(1<<60, encodeId(typ.NewId(), nil))
	if _, e := Decode(typ.NewId(), Variant{Index: VariantFunction, Payload: fn}); e == nil {
		t.Fatal("expected InvalidPayloadError for argument count")
	}

	st := encodeUint(1<<60, encodeUint(8, nil))
	if _, e := Decode(typ.NewId(), Variant{Index: VariantStruct, Payload: st}); e == nil {
		t.Fatal("expected InvalidPayloadError for field count")
	}

}

// Decoding must not fail merely because a referenced id is absent:
// forward references are legal during load.
func TestCodecForwardReference(t *testing.T) {

	rs := NewRecords()
	target := typ.NewId()
	ptr := typ.Pointer{Id: typ.NewId(), To: target}
	rs.Types[ptr.Id] = Encode(ptr)

	tb, e := LoadTable(rs)
	if e != nil {
		t.Fatal(e)
	}
	if _, ok := tb.Get(target); ok {
		t.Fatal("absent referent resolved")
	}
	if _, ok := tb.Get(ptr.Id); !ok {
		t.Fatal("pointer not loaded")
	}

}

func TestTableRoundTrip(t *testing.T) {

	tb := typ.NewTable()
	num := tb.Add(typ.Int{Id: typ.NewId(), Signed: false, Size: 4}, "uint32_t")
	tb.Add(typ.Unknown{Id: typ.NewId(), Size: 32}, "")
	tb.Add(typ.Bool{Id: typ.NewId()}, "")
	tb.Add(typ.Char{Id: typ.NewId(), Size: 4}, "")
	tb.Add(typ.Float{Id: typ.NewId(), Size: 4}, "")
	tb.Add(typ.Pointer{Id: typ.NewId(), To: num.TypeId()}, "")
	tb.Add(typ.Array{Id: typ.NewId(), Element: num.TypeId(), Count: 4}, "")
	tb.Add(typ.Alias{Id: typ.NewId(), To: num.TypeId()}, "size_t")
	tb.Add(typ.Struct{Id: typ.NewId(), Size: 4, Fields: []typ.Field{{Offset: 0, Type: num.TypeId()}}}, "point")
	tb.Add(typ.Void{Id: typ.NewId()}, "")
	fn := typ.Function{Id: typ.NewId(), Return: num.TypeId(), Arguments: []typ.Id{num.TypeId()}}
	tb.AddPrototype(fn, "get_count", typ.NewId())

	tc, e := LoadTable(SaveTable(tb))
	if e != nil {
		t.Fatal(e)
	}

	if len(tc.Map) != len(tb.Map) {
		t.Fatalf("loaded %d nodes, want %d", len(tc.Map), len(tb.Map))
	}
	for id, x := range tb.Map {
		y, ok := tc.Get(id)
		if !ok {
			t.Fatalf("node %s lost", id)
		}
		if !x.Equals(y) {
			pretty.Println(x)
			pretty.Println(y)
			t.Fatal("!x.Equals(y)")
		}
	}
	for id, name := range tb.Names {
		if tc.Names[id] != name {
			t.Errorf("name of %s = %q, want %q", id, tc.Names[id], name)
		}
	}
	for entity, id := range tb.Prototypes {
		if tc.Prototypes[entity] != id {
			t.Errorf("prototype of %s = %s, want %s", entity, tc.Prototypes[entity], id)
		}
	}

}

func randomType() typ.Type {
	id := typ.NewId()
	switch rand.Int() % 11 {
	case 0:
		return typ.Unknown{Id: id, Size: rand.Int() % 1024}
	case 1:
		return typ.Bool{Id: id}
	case 2:
		return typ.Int{Id: id, Signed: rand.Int()%2 == 0, Size: 1 << (rand.Int() % 4)}
	case 3:
		return typ.Char{Id: id, Size: 1 << (rand.Int() % 4)}
	case 4:
		return typ.Float{Id: id, Size: 4 * (1 + rand.Int()%2)}
	case 5:
		args := make([]typ.Id, rand.Int()%8)
		for i := range args {
			args[i] = typ.NewId()
		}
		return typ.Function{Id: id, Return: typ.NewId(), Arguments: args}
	case 6:
		return typ.Pointer{Id: id, To: typ.NewId()}
	case 7:
		return typ.Array{Id: id, Element: typ.NewId(), Count: rand.Int() % 256}
	case 8:
		fields := make([]typ.Field, rand.Int()%8)
		for i := range fields {
			fields[i] = typ.Field{Offset: i * 8, Type: typ.NewId()}
		}
		return typ.Struct{Id: id, Size: 64, Fields: fields}
	case 9:
		return typ.Void{Id: id}
	case 10:
		return typ.Alias{Id: id, To: typ.NewId()}
	}
	panic("never reached")
}
