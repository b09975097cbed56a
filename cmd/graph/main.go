// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
//
// Command graph emits the type graph of a program container in DOT
// form: one node per type, one edge per outgoing reference (struct
// fields, alias and pointer referents, function return and arguments).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/typegraph/typegraph/display"
	"github.com/typegraph/typegraph/store"
	"github.com/typegraph/typegraph/typ"
)

var output string

func init() {
	flag.StringVar(&output, "o", "", "Location to write the graph. Defaults to standard output.")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-o out.dot] <container>\n", os.Args[0])
		flag.PrintDefaults()
	}
}

// node carries the DOT identity and label of one type.
type node struct {
	id    int64
	dotId string
	label string
}

func (n node) ID() int64 {
	return n.id
}
func (n node) DOTID() string {
	// a plain DOT identifier, no quoting needed
	return "type_" + strings.ReplaceAll(n.dotId, "-", "_")
}
func (n node) Attributes() []encoding.Attribute {
	if n.label == "" {
		return nil
	}
	return []encoding.Attribute{{Key: "label", Value: n.label}}
}

func main() {

	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	db, e := store.Open(flag.Arg(0))
	if e != nil {
		log.Fatalln(e)
	}
	defer db.Close()

	types, ee := store.Load(db)
	if ee != nil {
		log.Fatalln(ee)
	}

	g, _ := buildGraph(types)

	bs, e := dot.MarshalMulti(g, "types", "", "\t")
	if e != nil {
		log.Fatalln(e)
	}

	if output == "" {
		fmt.Println(string(bs))
		return
	}
	if e := os.WriteFile(output, bs, 0644); e != nil {
		log.Fatalln(e)
	}
}

// buildGraph lays the type table out as a multigraph: self-referential
// types keep their edge, and a type referenced twice by the same node
// gets two.
func buildGraph(types *typ.Table) (*multi.DirectedGraph, map[typ.Id]node) {
	g := multi.NewDirectedGraph()
	nodes := make(map[typ.Id]node)

	add := func(id typ.Id, label string) node {
		if n, ok := nodes[id]; ok {
			return n
		}
		n := node{id: int64(len(nodes) + 1), dotId: id.String(), label: label}
		nodes[id] = n
		g.AddNode(n)
		return n
	}

	for id, t := range types.Map {
		label, ee := display.CStr(types, t, false)
		if ee != nil {
			label = string(t.Kind())
		}
		add(id, label)
	}
	for id, t := range types.Map {
		from := nodes[id]
		for _, ref := range typ.Refs(t) {
			// referenced but absent ids still get a node, the
			// reference is part of the graph
			g.SetLine(g.NewLine(from, add(ref, "")))
		}
	}
	return g, nodes
}
