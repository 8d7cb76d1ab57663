// Package types implements Gibberish's semantic type system: a small closed
// set of tagged variants, not an open hierarchy.
//
// DESIGN CHOICE: an interface with a private kind() method (closed variant
// set), mirroring the teacher's type system but trimmed to exactly the
// kinds the language has — Int, Bool, Void, String, Error, Fn, Struct,
// StructDef. No Float, Char, Array, or Nil: Gibberish has none of those.
package types

import (
	"fmt"
	"strings"
)

// Type is the interface every semantic type value implements.
type Type interface {
	String() string

	// Equals reports structural equality for scalars, nominal equality for
	// Struct (same declaration), and never true against Error — Error
	// compares equal to nothing so that a single failed check doesn't
	// cascade into further diagnostics on the same expression.
	Equals(other Type) bool

	kind() typeKind
}

type typeKind int

const (
	kindError typeKind = iota
	kindVoid
	kindInt
	kindBool
	kindString
	kindFn
	kindStruct
	kindStructDef
)

// ErrorType is injected at the site of a failed check so that downstream
// checks of the same expression emit nothing further.
type ErrorType struct{}

func (*ErrorType) String() string        { return "<error>" }
func (*ErrorType) Equals(Type) bool      { return false }
func (*ErrorType) kind() typeKind        { return kindError }

type voidType struct{}

func (*voidType) String() string   { return "void" }
func (*voidType) Equals(o Type) bool { _, ok := o.(*voidType); return ok }
func (*voidType) kind() typeKind   { return kindVoid }

type intType struct{}

func (*intType) String() string   { return "int" }
func (*intType) Equals(o Type) bool { _, ok := o.(*intType); return ok }
func (*intType) kind() typeKind   { return kindInt }

type boolType struct{}

func (*boolType) String() string   { return "bool" }
func (*boolType) Equals(o Type) bool { _, ok := o.(*boolType); return ok }
func (*boolType) kind() typeKind   { return kindBool }

type stringType struct{}

func (*stringType) String() string   { return "string" }
func (*stringType) Equals(o Type) bool { _, ok := o.(*stringType); return ok }
func (*stringType) kind() typeKind   { return kindString }

// Singleton instances for the scalar types and the error sentinel. Callers
// compare/construct using these rather than allocating new scalar values.
var (
	Error  = &ErrorType{}
	Void   Type = &voidType{}
	Int    Type = &intType{}
	Bool   Type = &boolType{}
	String Type = &stringType{}
)

// FnType is the type of a function: its parameter types in declaration
// order and its return type.
type FnType struct {
	Params []Type
	Ret    Type
}

func (f *FnType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), f.Ret.String())
}

func (f *FnType) Equals(other Type) bool {
	o, ok := other.(*FnType)
	if !ok || len(f.Params) != len(o.Params) || !f.Ret.Equals(o.Ret) {
		return false
	}
	for i, p := range f.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	return true
}

func (f *FnType) kind() typeKind { return kindFn }

// StructType is the type of a variable declared `struct T`. Decl is the
// declaring symbol (an *opaque comparable handle, in practice a
// *symtab.Symbol) — two StructType values are equal iff they name the same
// declaration, never by structural comparison of fields.
type StructType struct {
	Name string
	Decl interface{}
}

func (s *StructType) String() string { return "struct " + s.Name }

func (s *StructType) Equals(other Type) bool {
	o, ok := other.(*StructType)
	return ok && s.Decl == o.Decl
}

func (s *StructType) kind() typeKind { return kindStruct }

// StructDefType is the type of a struct declaration's own name (as used,
// e.g., when resolving `struct T` in another declaration). Scope is the
// struct's field scope — typically a *symtab.Scope.
type StructDefType struct {
	Name  string
	Scope interface{}
}

func (s *StructDefType) String() string { return "struct-def " + s.Name }

func (s *StructDefType) Equals(other Type) bool {
	o, ok := other.(*StructDefType)
	return ok && s.Scope == o.Scope
}

func (s *StructDefType) kind() typeKind { return kindStructDef }

// IsError reports whether t is the Error sentinel.
func IsError(t Type) bool {
	_, ok := t.(*ErrorType)
	return ok
}

// IsVoid reports whether t is Void.
func IsVoid(t Type) bool { return t == Void }

// IsFn reports whether t is a function type.
func IsFn(t Type) bool {
	_, ok := t.(*FnType)
	return ok
}

// IsStruct reports whether t is a struct-instance type.
func IsStruct(t Type) bool {
	_, ok := t.(*StructType)
	return ok
}

// IsStructDef reports whether t is a struct-definition type.
func IsStructDef(t Type) bool {
	_, ok := t.(*StructDefType)
	return ok
}
