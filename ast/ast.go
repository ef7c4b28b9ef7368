// Package ast defines the immutable schema tree consumed by the strukt
// engine. Nodes are created once by a construction layer, then shared
// freely; smart constructors enforce the structural invariants (member
// ordering, tuple element ordering, union normalization) at build time so
// traversals never have to re-check them.
package ast

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Kind identifies an AST node type.
type Kind int

const (
	KindLiteral Kind = iota
	KindUniqueSymbol
	KindUndefined
	KindVoid
	KindNever
	KindUnknown
	KindAny
	KindString
	KindNumber
	KindBoolean
	KindBigInt
	KindSymbol
	KindObject
	KindEnums
	KindTuple
	KindStruct
	KindUnion
	KindLazy
	KindRefinement
	KindTypeAlias
)

// AST is the root node interface. Implementations are immutable.
type AST interface {
	Kind() Kind
	Annotations() Annotations
}

// Annotations is an open-ended metadata map attached to every node. Keys are
// opaque strings; values never affect matching semantics.
type Annotations map[string]any

// Well-known annotation keys.
const (
	AnnotationIdentifier  = "strukt:identifier"
	AnnotationTitle       = "strukt:title"
	AnnotationDescription = "strukt:description"
	AnnotationMessage     = "strukt:message"
)

// Merge combines a with b, rightmost wins. Neither input is mutated.
func (a Annotations) Merge(b Annotations) Annotations {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(Annotations, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func mergeAnnotations(annot []Annotations) Annotations {
	var out Annotations
	for _, a := range annot {
		out = out.Merge(a)
	}
	return out
}

// Symbol is a process-unique symbolic identifier. Two symbols are the same
// only when they are the same pointer.
type Symbol struct {
	desc string
	id   uint64
}

var symbolSeq atomic.Uint64

// NewSymbol allocates a fresh symbol with the given description.
func NewSymbol(desc string) *Symbol {
	return &Symbol{desc: desc, id: symbolSeq.Add(1)}
}

// Description returns the human-readable description of the symbol.
func (s *Symbol) Description() string { return s.desc }

func (s *Symbol) String() string { return "Symbol(" + s.desc + ")" }

// RuntimeKey returns the string under which a symbol-keyed property is
// stored in a runtime object (map[string]any). The prefix keeps it disjoint
// from ordinary string keys.
func (s *Symbol) RuntimeKey() string {
	return fmt.Sprintf("@@strukt/symbol/%d:%s", s.id, s.desc)
}

// PropertyKey names a struct field: either a plain string or a symbol.
type PropertyKey struct {
	Name   string
	Symbol *Symbol // non-nil for symbol keys
}

// StringKey builds a string property key.
func StringKey(name string) PropertyKey { return PropertyKey{Name: name} }

// SymbolKey builds a symbol property key.
func SymbolKey(s *Symbol) PropertyKey { return PropertyKey{Symbol: s} }

// IsSymbol reports whether the key is a symbol key.
func (k PropertyKey) IsSymbol() bool { return k.Symbol != nil }

// RuntimeKey returns the map key this property occupies at runtime.
func (k PropertyKey) RuntimeKey() string {
	if k.Symbol != nil {
		return k.Symbol.RuntimeKey()
	}
	return k.Name
}

func (k PropertyKey) String() string {
	if k.Symbol != nil {
		return k.Symbol.String()
	}
	return k.Name
}

// ---- nodes ----

// Keyword is a tag-only node covering the primitive type classes
// (undefined, void, never, unknown, any, string, number, boolean, bigint,
// symbol, object).
type Keyword struct {
	kind  Kind
	annot Annotations
}

func (k *Keyword) Kind() Kind               { return k.kind }
func (k *Keyword) Annotations() Annotations { return k.annot }

// Literal matches exactly one scalar value among string, number, boolean,
// null and big integer.
type Literal struct {
	Value any
	annot Annotations
}

func (l *Literal) Kind() Kind               { return KindLiteral }
func (l *Literal) Annotations() Annotations { return l.annot }

// UniqueSymbol matches one specific symbol by identity.
type UniqueSymbol struct {
	Sym   *Symbol
	annot Annotations
}

func (u *UniqueSymbol) Kind() Kind               { return KindUniqueSymbol }
func (u *UniqueSymbol) Annotations() Annotations { return u.annot }

// EnumMember is a (name, value) pair; values are strings or numbers.
type EnumMember struct {
	Name  string
	Value any
}

// Enums matches any of its listed member values.
type Enums struct {
	Members []EnumMember
	annot   Annotations
}

func (e *Enums) Kind() Kind               { return KindEnums }
func (e *Enums) Annotations() Annotations { return e.annot }

// Element is one positional tuple slot.
type Element struct {
	Type       AST
	IsOptional bool
}

// Tuple matches ordered sequences. Elements are positional; Rest, when
// non-nil, is a non-empty sequence whose head covers every position between
// the declared elements and the trailing rest types.
type Tuple struct {
	Elements        []Element
	Rest            []AST
	IsReadonly      bool
	AllowUnexpected bool
	annot           Annotations
}

func (t *Tuple) Kind() Kind               { return KindTuple }
func (t *Tuple) Annotations() Annotations { return t.annot }

// Field is one named struct property.
type Field struct {
	Key        PropertyKey
	Type       AST
	IsOptional bool
	IsReadonly bool
}

// IndexSignature covers all remaining keys of a given domain
// (string, number or symbol keyword, possibly refined).
type IndexSignature struct {
	Key        AST
	Type       AST
	IsReadonly bool
}

// Struct matches generic keyed objects. Fields and index signatures are
// stored sorted ascending by the cardinality of their value type, so the
// most selective checks run first during matching.
type Struct struct {
	Fields          []Field
	Indexes         []IndexSignature
	AllowUnexpected bool
	annot           Annotations
}

func (s *Struct) Kind() Kind               { return KindStruct }
func (s *Struct) Annotations() Annotations { return s.annot }

// Union holds at least two members, flattened, deduplicated and stored
// sorted descending by weight.
type Union struct {
	Members []AST
	annot   Annotations
}

func (u *Union) Kind() Kind               { return KindUnion }
func (u *Union) Annotations() Annotations { return u.annot }

// Lazy defers construction of its node until first traversal, enabling
// self-referential schemas. The producer runs at most once.
type Lazy struct {
	f     func() AST
	once  sync.Once
	node  AST
	annot Annotations
}

func (l *Lazy) Kind() Kind               { return KindLazy }
func (l *Lazy) Annotations() Annotations { return l.annot }

// Resolve invokes the producer on first use and caches the result, so
// cyclic references observe the same structural node on every visit.
func (l *Lazy) Resolve() AST {
	l.once.Do(func() { l.node = l.f() })
	return l.node
}

// Refinement narrows From with a predicate over decoded values. An async
// predicate may be supplied instead of (or in addition to) the synchronous
// one; running it requires the caller to enable the async capability,
// otherwise the engine reports forbidden.
type Refinement struct {
	From           AST
	Predicate      func(v any) bool
	AsyncPredicate func(ctx context.Context, v any) (bool, error)
	Meta           any
	annot          Annotations
}

func (r *Refinement) Kind() Kind               { return KindRefinement }
func (r *Refinement) Annotations() Annotations { return r.annot }

// Transform is an asymmetric decode/encode hook pair attached to a
// TypeAlias: Decode converts the decoded wire value into its canonical
// representation, Encode does the reverse.
type Transform struct {
	Decode func(ctx context.Context, v any) (any, error)
	Encode func(ctx context.Context, v any) (any, error)
}

// TypeAlias wraps another node and is transparent to every structural
// algorithm. It may carry a Transform for asymmetric codecs.
type TypeAlias struct {
	TypeParams []AST
	Type       AST
	Transform  *Transform
	annot      Annotations
}

func (t *TypeAlias) Kind() Kind               { return KindTypeAlias }
func (t *TypeAlias) Annotations() Annotations { return t.annot }
