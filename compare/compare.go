// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
//
// Package compare scores how closely one type graph matches another.
// Scalar leaves score by lattice distance, aggregates by structural
// recursion with a visited set guarding against reference cycles.
package compare

import (
	"math"

	"github.com/hashicorp/go-set/v2"

	"github.com/typegraph/typegraph/err"
	"github.com/typegraph/typegraph/lattice"
	"github.com/typegraph/typegraph/typ"
)

// pair marks a (lhs, rhs) comparison in progress on the current
// recursion path.
type pair struct {
	L, R typ.Id
}

type Comparer struct {
	Lattice *lattice.Lattice
	Lhs     *typ.Table // resolves lhs referents
	Rhs     *typ.Table // resolves rhs referents
}

func New(l *lattice.Lattice, lhs, rhs *typ.Table) *Comparer {
	return &Comparer{Lattice: l, Lhs: lhs, Rhs: rhs}
}

// Compare scores l against r. 0 is a perfect match; the lattice height
// is a full mismatch on a single position. Struct scores can exceed the
// height because of the field-count penalty.
func (c *Comparer) Compare(l, r typ.Type) (float64, err.Error) {
	return c.compare(l, r, set.New[pair](8))
}

func (c *Comparer) compare(l, r typ.Type, visited *set.Set[pair]) (float64, err.Error) {
	// A pair already in progress is a recursive reference; treat it
	// as a match to terminate. This is optimistic: two recursive
	// types that disagree past the back-edge still score 0 there.
	if visited.Contains(pair{l.TypeId(), r.TypeId()}) {
		return 0, nil
	}

	if a, ok := l.(typ.Alias); ok {
		to, ok := c.Lhs.Get(a.To)
		if !ok {
			return 0, err.MissingReferentError{Id: a.To, Where: "alias referent"}
		}
		return c.compare(to, r, visited)
	}
	if a, ok := r.(typ.Alias); ok {
		to, ok := c.Rhs.Get(a.To)
		if !ok {
			return 0, err.MissingReferentError{Id: a.To, Where: "alias referent"}
		}
		return c.compare(l, to, visited)
	}

	if ls, ok := l.(typ.Struct); ok {
		if rs, ok := r.(typ.Struct); ok {
			return c.compareStructs(ls, rs, descend(visited, l, r))
		}
	}

	if lf, ok := l.(typ.Function); ok {
		if rf, ok := r.(typ.Function); ok {
			return c.compareFunctions(lf, rf, descend(visited, l, r))
		}
	}

	if lp, ok := l.(typ.Pointer); ok {
		if rp, ok := r.(typ.Pointer); ok {
			lt, ok := c.Lhs.Get(lp.To)
			if !ok {
				return 0, err.MissingReferentError{Id: lp.To, Where: "pointer referent"}
			}
			rt, ok := c.Rhs.Get(rp.To)
			if !ok {
				return 0, err.MissingReferentError{Id: rp.To, Where: "pointer referent"}
			}
			// a pointer scores as its referent; chain depth is
			// PointerAccuracy's concern
			return c.compare(lt, rt, descend(visited, l, r))
		}
	}

	if la, ok := l.(typ.Array); ok {
		if ra, ok := r.(typ.Array); ok {
			lt, ok := c.Lhs.Get(la.Element)
			if !ok {
				return 0, err.MissingReferentError{Id: la.Element, Where: "array element"}
			}
			rt, ok := c.Rhs.Get(ra.Element)
			if !ok {
				return 0, err.MissingReferentError{Id: ra.Element, Where: "array element"}
			}
			return c.compare(lt, rt, descend(visited, l, r))
		}
	}

	if typ.Aggregate(l) || typ.Aggregate(r) {
		return float64(c.Lattice.Height()), nil
	}

	ll, e := lattice.FromType(c.Lhs, l)
	if e != nil {
		return 0, e
	}
	rl, e := lattice.FromType(c.Rhs, r)
	if e != nil {
		return 0, e
	}
	return float64(c.Lattice.Distance(ll, rl)), nil
}

// descend marks (l, r) in progress without contaminating sibling calls:
// the set is copied, never shared back up.
func descend(visited *set.Set[pair], l, r typ.Type) *set.Set[pair] {
	next := visited.Copy()
	next.Insert(pair{l.TypeId(), r.TypeId()})
	return next
}

func (c *Comparer) compareStructs(l, r typ.Struct, visited *set.Set[pair]) (float64, err.Error) {
	if len(l.Fields) == 0 && len(r.Fields) == 0 {
		return 0, nil
	}
	if len(l.Fields) == 0 || len(r.Fields) == 0 {
		return float64(c.Lattice.Height()), nil
	}

	// penalizes differing field counts, saturating as counts grow
	fieldRatio := math.Abs(
		(1 - 1/float64(len(l.Fields))) - (1 - 1/float64(len(r.Fields))))

	lf := fieldMap(l)
	rf := fieldMap(r)
	offsets := make(map[int]struct{}, len(lf)+len(rf))
	for off := range lf {
		offsets[off] = struct{}{}
	}
	for off := range rf {
		offsets[off] = struct{}{}
	}

	sum := 0.0
	for off := range offsets {
		lid, lok := lf[off]
		rid, rok := rf[off]
		if !lok || !rok {
			sum += float64(c.Lattice.Height())
			continue
		}
		lt, ok := c.Lhs.Get(lid)
		if !ok {
			return 0, err.MissingReferentError{Id: lid, Where: "struct field"}
		}
		rt, ok := c.Rhs.Get(rid)
		if !ok {
			return 0, err.MissingReferentError{Id: rid, Where: "struct field"}
		}
		score, e := c.compare(lt, rt, visited)
		if e != nil {
			return 0, e
		}
		sum += score
	}

	mean := sum / float64(len(offsets))
	return mean/float64(c.Lattice.Height()) + fieldRatio, nil
}

func fieldMap(s typ.Struct) map[int]typ.Id {
	m := make(map[int]typ.Id, len(s.Fields))
	for _, f := range s.Fields {
		m[f.Offset] = f.Type
	}
	return m
}

func (c *Comparer) compareFunctions(l, r typ.Function, visited *set.Set[pair]) (float64, err.Error) {
	lret, ok := c.Lhs.Get(l.Return)
	if !ok {
		return 0, err.MissingReturnTypeError{Id: l.Id}
	}
	rret, ok := c.Rhs.Get(r.Return)
	if !ok {
		return 0, err.MissingReturnTypeError{Id: r.Id}
	}

	retScore, e := c.compare(lret, rret, visited)
	if e != nil {
		return 0, e
	}
	if len(l.Arguments) == 0 && len(r.Arguments) == 0 {
		return retScore, nil
	}

	scores := []float64{retScore}
	n := len(l.Arguments)
	if len(r.Arguments) > n {
		n = len(r.Arguments)
	}
	for i := 0; i < n; i++ {
		if i >= len(l.Arguments) || i >= len(r.Arguments) {
			// unpaired argument on the longer side
			scores = append(scores, float64(c.Lattice.Height()))
			continue
		}
		lt, ok := c.Lhs.Get(l.Arguments[i])
		if !ok {
			return 0, err.MissingArgumentTypeError{Id: l.Id, Index: i}
		}
		rt, ok := c.Rhs.Get(r.Arguments[i])
		if !ok {
			return 0, err.MissingArgumentTypeError{Id: r.Id, Index: i}
		}
		score, e := c.compare(lt, rt, visited)
		if e != nil {
			return 0, e
		}
		scores = append(scores, score)
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores)), nil
}

// PointerAccuracy walks both sides' pointer chains in lock-step and
// returns the fraction of levels, final referent included, on which rhs
// keeps up with lhs. Independent of Compare; never fails: unresolvable
// or incomparable positions count as misses.
func (c *Comparer) PointerAccuracy(l, r typ.Type) float64 {
	numCorrect := 0
	total := 0

	for l != nil {
		lp, ok := l.(typ.Pointer)
		if !ok {
			break
		}
		if rp, ok := r.(typ.Pointer); ok {
			r, _ = c.Rhs.Get(rp.To)
			numCorrect++
		} else {
			r = nil
		}
		total++
		l, _ = c.Lhs.Get(lp.To)
	}
	total++

	if l != nil && r != nil {
		ll, le := lattice.FromType(c.Lhs, l)
		rl, re := lattice.FromType(c.Rhs, r)
		if le == nil && re == nil && ll == rl {
			numCorrect++
		}
	}

	return float64(numCorrect) / float64(total)
}
