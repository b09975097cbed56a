// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
//
// Package lattice holds the fixed subtyping order over primitive C type
// categories. It is a DAG rooted at Top and sunk at Bot; shortest-path
// distance between two elements scores how far apart two concrete
// scalar kinds are, with the lattice height as the "incomparable"
// sentinel. The vocabulary and edges are fixed at construction and
// never mutated afterward.
package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/typegraph/typegraph/err"
	"github.com/typegraph/typegraph/typ"
)

const (
	Top = "⊤"
	Bot = "⊥"

	Bool  = "bool"
	Num   = "num"
	Int   = "int"
	Uint  = "uint"
	Char  = "char"
	Float = "float"
	Void  = "void"
)

var (
	intSizes   = []int{8, 16, 32, 64}
	floatSizes = []int{32, 64}
)

func numN(bits int) string {
	return fmt.Sprintf("num%d_t", bits)
}
func intN(bits int) string {
	return fmt.Sprintf("int%d_t", bits)
}
func uintN(bits int) string {
	return fmt.Sprintf("uint%d_t", bits)
}
func charN(bits int) string {
	return fmt.Sprintf("char%d_t", bits)
}
func floatN(bits int) string {
	return fmt.Sprintf("float%d_t", bits)
}

type Lattice struct {
	g      *simple.DirectedGraph
	ids    map[string]int64
	paths  path.AllShortest
	height int
}

func New() *Lattice {
	l := &Lattice{
		g:   simple.NewDirectedGraph(),
		ids: make(map[string]int64),
	}

	l.edge(Top, Num)
	l.edge(Top, Float)
	l.edge(Top, Void)

	l.edge(Num, Int)
	l.edge(Num, Uint)
	l.edge(Uint, Char)
	l.edge(Uint, Bool)

	for _, bits := range intSizes {
		l.edge(Num, numN(bits))
		l.edge(Int, intN(bits))
		l.edge(Uint, uintN(bits))

		l.edge(numN(bits), intN(bits))
		l.edge(numN(bits), uintN(bits))

		// a width-qualified unsigned specializes to a same-width char
		l.edge(uintN(bits), charN(bits))

		l.edge(intN(bits), Bot)
		l.edge(uintN(bits), Bot)
		l.edge(charN(bits), Bot)
	}

	for _, bits := range floatSizes {
		l.edge(Float, floatN(bits))
		l.edge(floatN(bits), Bot)
	}

	l.edge(Char, Bot)
	l.edge(Bool, Bot)
	l.edge(Float, Bot)
	l.edge(Int, Bot)
	l.edge(Uint, Bot)
	l.edge(Void, Bot)

	l.paths = path.DijkstraAllPaths(l.g)
	l.height = l.longest(l.ids[Top], make(map[int64]int))

	return l
}

func (l *Lattice) node(label string) int64 {
	if id, ok := l.ids[label]; ok {
		return id
	}
	n := l.g.NewNode()
	l.g.AddNode(n)
	l.ids[label] = n.ID()
	return n.ID()
}

func (l *Lattice) edge(from, to string) {
	l.g.SetEdge(l.g.NewEdge(l.g.Node(l.node(from)), l.g.Node(l.node(to))))
}

// longest returns the longest path length (in edges) from node id to
// any sink. The graph is a DAG, plain memoized descent terminates.
func (l *Lattice) longest(id int64, memo map[int64]int) int {
	if d, ok := memo[id]; ok {
		return d
	}
	max := 0
	it := l.g.From(id)
	for it.Next() {
		if d := l.longest(it.Node().ID(), memo) + 1; d > max {
			max = d
		}
	}
	memo[id] = max
	return max
}

// Height is the longest path length from Top to Bot, used as the
// maximal distance between incomparable elements.
func (l *Lattice) Height() int {
	return l.height
}

// Distance returns the shortest path length between a and b following
// the order in whichever direction holds, or Height() when neither
// element reaches the other. Labels outside the vocabulary are
// incomparable to everything.
func (l *Lattice) Distance(a, b string) int {
	ida, oka := l.ids[a]
	idb, okb := l.ids[b]
	if !oka || !okb {
		return l.height
	}
	if w := l.paths.Weight(ida, idb); !math.IsInf(w, 1) {
		return int(w)
	}
	if w := l.paths.Weight(idb, ida); !math.IsInf(w, 1) {
		return int(w)
	}
	return l.height
}

// FromType maps a concrete scalar node to its lattice label. Aliases
// are unwrapped through the table. Aggregates are handled structurally
// by the comparator and never classified.
func FromType(tb *typ.Table, t typ.Type) (string, err.Error) {
	switch t := t.(type) {
	case typ.Unknown:
		return Bot, nil
	case typ.Bool:
		return Bool, nil
	case typ.Int:
		if t.Signed {
			return intN(t.Size * 8), nil
		}
		return uintN(t.Size * 8), nil
	case typ.Char:
		return charN(t.Size * 8), nil
	case typ.Float:
		return floatN(t.Size * 8), nil
	case typ.Void:
		return Void, nil
	case typ.Alias:
		to, ok := tb.Get(t.To)
		if !ok {
			return "", err.MissingReferentError{Id: t.To, Where: "alias referent"}
		}
		return FromType(tb, to)
	}
	return "", err.NotComparableError{Kind: string(t.Kind())}
}
