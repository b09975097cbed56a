// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
//
// Command score does a function-wise type comparison of two program
// containers: a ground truth and an inferred one. Functions are matched
// by name; each matched pair's prototype types are scored against the
// lattice and the average is reported.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/typegraph/typegraph/compare"
	"github.com/typegraph/typegraph/display"
	"github.com/typegraph/typegraph/lattice"
	"github.com/typegraph/typegraph/store"
	"github.com/typegraph/typegraph/typ"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <ground-truth> <inferred>\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {

	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	gtDb, e := store.Open(flag.Arg(0))
	if e != nil {
		log.Fatalln(e)
	}
	defer gtDb.Close()

	infDb, e := store.Open(flag.Arg(1))
	if e != nil {
		log.Fatalln(e)
	}
	defer infDb.Close()

	gtTypes, ee := store.Load(gtDb)
	if ee != nil {
		log.Fatalln(ee)
	}
	infTypes, ee := store.Load(infDb)
	if ee != nil {
		log.Fatalln(ee)
	}

	gtFuncs, ee := store.Functions(gtDb)
	if ee != nil {
		log.Fatalln(ee)
	}
	infFuncs, ee := store.Functions(infDb)
	if ee != nil {
		log.Fatalln(ee)
	}

	gtByName := byName(gtFuncs)
	infByName := byName(infFuncs)

	common := make([]string, 0, len(gtByName))
	all := len(gtByName)
	for name := range infByName {
		if _, ok := gtByName[name]; ok {
			common = append(common, name)
		} else {
			all++
		}
	}
	if float64(len(common)) < float64(all)/2 {
		log.Fatalln("less than half of functions are common")
	}
	sort.Strings(common)

	lat := lattice.New()
	comparer := compare.New(lat, gtTypes, infTypes)
	scores := []float64(nil)

	for _, name := range common {
		gtProto, ok := gtTypes.Prototypes[gtByName[name]]
		if !ok {
			fmt.Println("Skipping", name)
			continue
		}
		infProto, ok := infTypes.Prototypes[infByName[name]]
		if !ok {
			fmt.Println("Skipping", name)
			continue
		}

		gtType, ok := gtTypes.Get(gtProto)
		if !ok {
			fmt.Println("Skipping", name)
			continue
		}
		infType, ok := infTypes.Get(infProto)
		if !ok {
			fmt.Println("Skipping", name)
			continue
		}

		fmt.Println("Function:", name)

		userDefs := make(map[typ.Id]typ.Type)
		typ.AggregateDefs(infTypes, infType, userDefs)
		for _, id := range sortedIds(userDefs) {
			if st, ok := userDefs[id].(typ.Struct); ok {
				fmt.Println(structStr(infTypes, st))
			}
		}

		fmt.Println("Inferred", cStrOrInf(infTypes, infType))

		score, ee := comparer.Compare(gtType, infType)
		if ee != nil {
			log.Println("skipping", name+":", ee)
			continue
		}
		fmt.Println("Score:", score)
		fmt.Println("Original", cStrOrInf(gtTypes, gtType))

		scores = append(scores, score)
		fmt.Println()
	}

	if len(scores) == 0 {
		log.Fatalln("no comparable functions")
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	fmt.Println("Average:", sum/float64(len(scores)))
}

func byName(fns map[typ.Id]string) map[string]typ.Id {
	m := make(map[string]typ.Id, len(fns))
	for id, name := range fns {
		m[name] = id
	}
	return m
}

func sortedIds(m map[typ.Id]typ.Type) []typ.Id {
	ids := make([]typ.Id, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// structStr renders a struct definition, falling back to a marker body
// when the definition recurses into itself and cannot terminate.
func structStr(tb *typ.Table, st typ.Struct) string {
	if !fieldsRenderable(tb, st) {
		n := tb.Name(st.Id)
		if n == "" {
			n = fmt.Sprintf("struct_%x", st.Id[:4])
		}
		return fmt.Sprintf("struct %s { <inf> }", n)
	}
	s, ee := display.CStr(tb, st, true)
	if ee != nil {
		return fmt.Sprintf("struct %s { <error> }", tb.Name(st.Id))
	}
	return s
}

func cStrOrInf(tb *typ.Table, t typ.Type) string {
	ok := true
	if st, isStruct := t.(typ.Struct); isStruct {
		ok = fieldsRenderable(tb, st)
	} else {
		ok = renderable(tb, t.TypeId(), make(map[typ.Id]bool))
	}
	if !ok {
		return "<recursive>"
	}
	s, ee := display.CStr(tb, t, true)
	if ee != nil {
		return "<" + string(t.Kind()) + ">"
	}
	return s
}

// fieldsRenderable reports wether every field of a struct definition
// can be rendered and sized without recursing forever.
func fieldsRenderable(tb *typ.Table, st typ.Struct) bool {
	for _, f := range st.Fields {
		if !renderable(tb, f.Type, make(map[typ.Id]bool)) {
			return false
		}
	}
	return true
}

// renderable walks the edges the renderer would follow and reports
// wether they reach a cycle, which would not terminate on the call
// stack. A struct reached through an edge renders in declaration form
// and has a stored size, so the walk stops there; pointer, alias, array
// and function edges keep recursing.
func renderable(tb *typ.Table, id typ.Id, onPath map[typ.Id]bool) bool {
	if onPath[id] {
		return false
	}
	t, ok := tb.Get(id)
	if !ok {
		return true
	}
	onPath[id] = true
	defer delete(onPath, id)

	switch t := t.(type) {
	case typ.Pointer:
		return renderable(tb, t.To, onPath)
	case typ.Alias:
		return renderable(tb, t.To, onPath)
	case typ.Array:
		return renderable(tb, t.Element, onPath)
	case typ.Function:
		if !renderable(tb, t.Return, onPath) {
			return false
		}
		for _, arg := range t.Arguments {
			if !renderable(tb, arg, onPath) {
				return false
			}
		}
	}
	return true
}
