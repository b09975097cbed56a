// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
package typ

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableAddGet(t *testing.T) {

	tb := NewTable()
	num := tb.Add(Int{Id: NewId(), Signed: true, Size: 4}, "int32_t")

	got, ok := tb.Get(num.TypeId())
	require.True(t, ok)
	require.True(t, num.Equals(got))
	require.Equal(t, "int32_t", tb.Name(num.TypeId()))

	_, ok = tb.Get(NewId())
	require.False(t, ok)

	// last write wins on id reuse
	repl := tb.Add(Int{Id: num.TypeId(), Signed: false, Size: 8}, "")
	got, _ = tb.Get(num.TypeId())
	require.True(t, repl.Equals(got))

}

func TestTableAddPrototype(t *testing.T) {

	tb := NewTable()
	num := tb.Add(Int{Id: NewId(), Signed: true, Size: 4}, "")
	fn := Function{Id: NewId(), Return: num.TypeId()}
	entity := NewId()

	tb.AddPrototype(fn, "main", entity)

	require.Equal(t, fn.Id, tb.Prototypes[entity])
	require.Equal(t, "main", tb.Name(fn.Id))
	got, ok := tb.Get(fn.Id)
	require.True(t, ok)
	require.True(t, fn.Equals(got))

}

func TestNewStruct(t *testing.T) {

	num := NewId()
	_, e := NewStruct(NewId(), 8, []Field{{0, num}, {4, num}})
	require.Nil(t, e)

	_, e = NewStruct(NewId(), 8, []Field{{8, num}})
	require.NotNil(t, e)

	_, e = NewStruct(NewId(), 8, []Field{{-1, num}})
	require.NotNil(t, e)

}

func TestSizeOf(t *testing.T) {

	tb := NewTable()
	num := tb.Add(Int{Id: NewId(), Signed: true, Size: 4}, "")

	cases := []struct {
		typ  Type
		size int
	}{
		{Unknown{Id: NewId(), Size: 32}, 32},
		{Bool{Id: NewId()}, 1},
		{num, 4},
		{Char{Id: NewId(), Size: 2}, 2},
		{Float{Id: NewId(), Size: 8}, 8},
		{Void{Id: NewId()}, 0},
		{Struct{Id: NewId(), Size: 24}, 24},
	}
	for _, c := range cases {
		n, e := SizeOf(tb, c.typ)
		require.Nil(t, e)
		require.Equal(t, c.size, n, string(c.typ.Kind()))
	}

	// pointer and function sizes come from the ISA metadata
	ptr := tb.Add(Pointer{Id: NewId(), To: num.TypeId()}, "")
	fn := tb.Add(Function{Id: NewId(), Return: num.TypeId()}, "")
	for _, x := range []Type{ptr, fn} {
		n, e := SizeOf(tb, x)
		require.Nil(t, e)
		require.Equal(t, DefaultPointerSize, n)
	}
	tb.PointerSize = 4
	n, e := SizeOf(tb, ptr)
	require.Nil(t, e)
	require.Equal(t, 4, n)

	arr := tb.Add(Array{Id: NewId(), Element: num.TypeId(), Count: 6}, "")
	n, e = SizeOf(tb, arr)
	require.Nil(t, e)
	require.Equal(t, 24, n)

	alias := tb.Add(Alias{Id: NewId(), To: arr.TypeId()}, "")
	n, e = SizeOf(tb, alias)
	require.Nil(t, e)
	require.Equal(t, 24, n)

	dangling := Array{Id: NewId(), Element: NewId(), Count: 2}
	_, e = SizeOf(tb, dangling)
	require.NotNil(t, e)

}

func TestRefs(t *testing.T) {

	a, b, c := NewId(), NewId(), NewId()

	require.Nil(t, Refs(Int{Id: NewId(), Signed: true, Size: 4}))
	require.Equal(t, []Id{a}, Refs(Pointer{Id: NewId(), To: a}))
	require.Equal(t, []Id{a}, Refs(Alias{Id: NewId(), To: a}))
	require.Equal(t, []Id{b}, Refs(Array{Id: NewId(), Element: b, Count: 3}))
	require.Equal(t, []Id{a, b, c},
		Refs(Function{Id: NewId(), Return: a, Arguments: []Id{b, c}}))
	require.Equal(t, []Id{b, a},
		Refs(Struct{Id: NewId(), Size: 8, Fields: []Field{{0, b}, {4, a}}}))

}

func TestAggregateDefs(t *testing.T) {

	tb := NewTable()
	num := tb.Add(Int{Id: NewId(), Signed: true, Size: 4}, "")
	inner := tb.Add(Struct{Id: NewId(), Size: 4, Fields: []Field{
		{0, num.TypeId()},
	}}, "inner")
	ptr := tb.Add(Pointer{Id: NewId(), To: inner.TypeId()}, "")
	outer := tb.Add(Struct{Id: NewId(), Size: 8, Fields: []Field{
		{0, ptr.TypeId()},
	}}, "outer")
	fn := tb.Add(Function{Id: NewId(), Return: num.TypeId(),
		Arguments: []Id{outer.TypeId()}}, "").(Function)

	acc := make(map[Id]Type)
	AggregateDefs(tb, fn, acc)

	require.Len(t, acc, 3)
	require.Contains(t, acc, fn.Id)
	require.Contains(t, acc, outer.TypeId())
	require.Contains(t, acc, inner.TypeId())

}

func TestAggregateDefsCycle(t *testing.T) {

	tb := NewTable()
	structId := NewId()
	ptr := tb.Add(Pointer{Id: NewId(), To: structId}, "")
	node := tb.Add(Struct{Id: structId, Size: 8, Fields: []Field{
		{0, ptr.TypeId()},
	}}, "node")

	acc := make(map[Id]Type)
	AggregateDefs(tb, node, acc)

	require.Len(t, acc, 1)
	require.Contains(t, acc, structId)

}
