// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
//
// Package display renders type nodes back into C-like declarations.
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/typegraph/typegraph/err"
	"github.com/typegraph/typegraph/typ"
)

// CStr renders t as C source. With define, aggregates and aliases
// render their full definition (struct x {...}, typedef y = ...);
// without it only the declaration form (struct x, the alias name).
// Recursing into members always uses declaration form.
func CStr(tb *typ.Table, t typ.Type, define bool) (string, err.Error) {
	switch t := t.(type) {

	case typ.Int:
		if t.Signed {
			return fmt.Sprintf("int%d_t", t.Size*8), nil
		}
		return fmt.Sprintf("uint%d_t", t.Size*8), nil

	case typ.Float:
		switch t.Size {
		case 4:
			return "float", nil
		case 8:
			return "double", nil
		}
		return fmt.Sprintf("float%d_t", t.Size*8), nil

	case typ.Bool:
		return "bool", nil

	case typ.Unknown:
		return fmt.Sprintf("char[%d]", t.Size), nil

	case typ.Char:
		if t.Size == 1 {
			return "char", nil
		}
		return fmt.Sprintf("char%d_t", t.Size*8), nil

	case typ.Void:
		return "void", nil

	case typ.Pointer:
		to, ok := tb.Get(t.To)
		if !ok {
			return "", err.MissingReferentError{Id: t.To, Where: "pointer referent"}
		}
		s, e := CStr(tb, to, false)
		if e != nil {
			return "", e
		}
		return s + "*", nil

	case typ.Array:
		elem, ok := tb.Get(t.Element)
		if !ok {
			return "", err.MissingReferentError{Id: t.Element, Where: "array element"}
		}
		s, e := CStr(tb, elem, false)
		if e != nil {
			return "", e
		}
		return fmt.Sprintf("%s[%d]", s, t.Count), nil

	case typ.Alias:
		if define {
			to, ok := tb.Get(t.To)
			if !ok {
				return "", err.MissingReferentError{Id: t.To, Where: "alias referent"}
			}
			s, e := CStr(tb, to, false)
			if e != nil {
				return "", e
			}
			return fmt.Sprintf("typedef %s = %s", name(tb, t), s), nil
		}
		if n := tb.Name(t.Id); n != "" {
			return n, nil
		}
		to, ok := tb.Get(t.To)
		if !ok {
			return "", err.MissingReferentError{Id: t.To, Where: "alias referent"}
		}
		return CStr(tb, to, false)

	case typ.Struct:
		if !define {
			return "struct " + name(tb, t), nil
		}
		return structDef(tb, t)

	case typ.Function:
		ret, ok := tb.Get(t.Return)
		if !ok {
			return "", err.MissingReturnTypeError{Id: t.Id}
		}
		retStr, e := CStr(tb, ret, false)
		if e != nil {
			return "", e
		}
		args := make([]string, len(t.Arguments))
		for i, argId := range t.Arguments {
			arg, ok := tb.Get(argId)
			if !ok {
				return "", err.MissingArgumentTypeError{Id: t.Id, Index: i}
			}
			args[i], e = CStr(tb, arg, false)
			if e != nil {
				return "", e
			}
		}
		return fmt.Sprintf("%s (*)(%s)", retStr, strings.Join(args, ", ")), nil

	}
	return "", err.NotRenderableError{Kind: string(t.Kind())}
}

// structDef walks the struct's byte range emitting a member per field
// and a char gap array for every unoccupied run. Member advancement
// uses each field's resolved size, not a stored one. Overlapping fields
// are emitted at their declared offsets; the walk position just skips
// past whatever the previous field covered.
func structDef(tb *typ.Table, t typ.Struct) (string, err.Error) {
	fields := make(map[int]typ.Id, len(t.Fields))
	offsets := make([]int, 0, len(t.Fields))
	for _, f := range t.Fields {
		if _, ok := fields[f.Offset]; !ok {
			offsets = append(offsets, f.Offset)
		}
		fields[f.Offset] = f.Type
	}
	sort.Ints(offsets)

	var b strings.Builder
	loc := 0
	for loc < t.Size {
		if id, ok := fields[loc]; ok {
			ft, ok := tb.Get(id)
			if !ok {
				return "", err.MissingReferentError{Id: id, Where: "struct field"}
			}
			s, e := CStr(tb, ft, false)
			if e != nil {
				return "", e
			}
			fmt.Fprintf(&b, "\t%s field_%x;\n", s, loc)
			n, e := typ.SizeOf(tb, ft)
			if e != nil {
				return "", e
			}
			if n == 0 {
				// a zero-size member covers no bytes; the run up to
				// the next declared offset is a gap, and the walk must
				// move or it would emit this member forever
				next := t.Size
				if i := sort.SearchInts(offsets, loc+1); i < len(offsets) {
					next = offsets[i]
				}
				fmt.Fprintf(&b, "\tchar gap_%x[%d];\n", loc, next-loc)
				loc = next
				continue
			}
			loc += n
		} else {
			// gap runs to the next declared field, or the end
			next := t.Size
			i := sort.SearchInts(offsets, loc)
			if i < len(offsets) {
				next = offsets[i]
			}
			fmt.Fprintf(&b, "\tchar gap_%x[%d];\n", loc, next-loc)
			loc = next
		}
	}

	return fmt.Sprintf("struct %s {\n%s}", name(tb, t), b.String()), nil
}

// name returns t's display name, or a synthetic one derived from its
// kind and Id when none is recorded.
func name(tb *typ.Table, t typ.Type) string {
	if n := tb.Name(t.TypeId()); n != "" {
		return n
	}
	id := t.TypeId()
	return fmt.Sprintf("%s_%x", t.Kind(), id[:4])
}
