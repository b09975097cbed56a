// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
package err

import (
	"fmt"
)

// UnknownVariantError indicates that a persisted record carries a variant
// index outside the known kind table. Fatal for the load that saw it.
type UnknownVariantError struct {
	Index  uint64
	Max    uint64
	Child_ Error
}

func (e UnknownVariantError) Error() string {
	return e.String()
}
func (e UnknownVariantError) String() string {
	out := "Unknown Variant Error\n"
	out += "=====================\n"
	out += fmt.Sprintf("variant index %d is above supported %d\n\n", e.Index, e.Max)
	if e.Child_ != nil {
		out += e.Child_.String()
	}
	return out
}
func (e UnknownVariantError) Child() Error {
	return e.Child_
}

// InvalidPayloadError indicates a payload that is truncated or carries
// trailing bytes for its variant kind.
type InvalidPayloadError struct {
	Kind    string
	Problem string
	Child_  Error
}

func (e InvalidPayloadError) Error() string {
	return e.String()
}
func (e InvalidPayloadError) String() string {
	out := "Invalid Payload Error\n"
	out += "=====================\n"
	out += fmt.Sprintf("kind: %s, problem: %s\n\n", e.Kind, e.Problem)
	if e.Child_ != nil {
		out += e.Child_.String()
	}
	return out
}
func (e InvalidPayloadError) Child() Error {
	return e.Child_
}

// MissingReferentError indicates that an operation required a referenced
// type to be present in the table and it was not. Plain lookups never
// produce it; absence is only an error where resolution is mandatory.
type MissingReferentError struct {
	Id     fmt.Stringer
	Where  string
	Child_ Error
}

func (e MissingReferentError) Error() string {
	return e.String()
}
func (e MissingReferentError) String() string {
	out := "Missing Referent Error\n"
	out += "======================\n"
	out += fmt.Sprintf("where: %s, id: %s\n\n", e.Where, e.Id)
	if e.Child_ != nil {
		out += e.Child_.String()
	}
	return out
}
func (e MissingReferentError) Child() Error {
	return e.Child_
}

type MissingReturnTypeError struct {
	Id     fmt.Stringer
	Child_ Error
}

func (e MissingReturnTypeError) Error() string {
	return e.String()
}
func (e MissingReturnTypeError) String() string {
	out := "Missing Return Type Error\n"
	out += "=========================\n"
	out += fmt.Sprintf("function: %s\n\n", e.Id)
	if e.Child_ != nil {
		out += e.Child_.String()
	}
	return out
}
func (e MissingReturnTypeError) Child() Error {
	return e.Child_
}

type MissingArgumentTypeError struct {
	Id     fmt.Stringer
	Index  int
	Child_ Error
}

func (e MissingArgumentTypeError) Error() string {
	return e.String()
}
func (e MissingArgumentTypeError) String() string {
	out := "Missing Argument Type Error\n"
	out += "===========================\n"
	out += fmt.Sprintf("function: %s, argument: %d\n\n", e.Id, e.Index)
	if e.Child_ != nil {
		out += e.Child_.String()
	}
	return out
}
func (e MissingArgumentTypeError) Child() Error {
	return e.Child_
}

// NotComparableError indicates a classification attempt on an aggregate
// kind. Aggregates are compared structurally, never classified.
type NotComparableError struct {
	Kind   string
	Child_ Error
}

func (e NotComparableError) Error() string {
	return e.String()
}
func (e NotComparableError) String() string {
	out := "Not Comparable Error\n"
	out += "====================\n"
	out += fmt.Sprintf("%s invalid for lattice types\n\n", e.Kind)
	if e.Child_ != nil {
		out += e.Child_.String()
	}
	return out
}
func (e NotComparableError) Child() Error {
	return e.Child_
}

// NotRenderableError is the renderer's defensive default. It should not
// occur for well-formed input.
type NotRenderableError struct {
	Kind   string
	Child_ Error
}

func (e NotRenderableError) Error() string {
	return e.String()
}
func (e NotRenderableError) String() string {
	out := "Not Renderable Error\n"
	out += "====================\n"
	out += fmt.Sprintf("kind: %s\n\n", e.Kind)
	if e.Child_ != nil {
		out += e.Child_.String()
	}
	return out
}
func (e NotRenderableError) Child() Error {
	return e.Child_
}

// InvalidStructError rejects struct construction whose field offsets lie
// outside the struct's declared byte range.
type InvalidStructError struct {
	Offset int
	Size   int
	Child_ Error
}

func (e InvalidStructError) Error() string {
	return e.String()
}
func (e InvalidStructError) String() string {
	out := "Invalid Struct Error\n"
	out += "====================\n"
	out += fmt.Sprintf("field offset %d outside [0,%d)\n\n", e.Offset, e.Size)
	if e.Child_ != nil {
		out += e.Child_.String()
	}
	return out
}
func (e InvalidStructError) Child() Error {
	return e.Child_
}

// StoreError wraps a failure in the container storage layer.
type StoreError struct {
	Problem string
	Wrapped error
	Child_  Error
}

func (e StoreError) Error() string {
	return e.String()
}
func (e StoreError) String() string {
	out := "Store Error\n"
	out += "===========\n"
	out += e.Problem + "\n"
	if e.Wrapped != nil {
		out += e.Wrapped.Error() + "\n"
	}
	out += "\n"
	if e.Child_ != nil {
		out += e.Child_.String()
	}
	return out
}
func (e StoreError) Child() Error {
	return e.Child_
}
