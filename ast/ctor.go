package ast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"
)

// Construction errors for invariant violations.
var (
	ErrRestAfterRest         = errors.New("ast: a rest element cannot follow another rest element")
	ErrRequiredAfterOptional = errors.New("ast: a required element cannot follow an optional element")
	ErrOptionalAfterRest     = errors.New("ast: an optional element cannot follow a rest element")
	ErrEmptyRest             = errors.New("ast: rest element sequence must be non-empty")
	ErrDuplicateField        = errors.New("ast: duplicate struct field key")
	ErrBadIndexKey           = errors.New("ast: index signature key must be a string, number or symbol type")
	ErrBadLiteral            = errors.New("ast: literal value must be a string, number, boolean, null or big integer")
)

// ---- keywords ----

func keyword(kind Kind, annot []Annotations) *Keyword {
	return &Keyword{kind: kind, annot: mergeAnnotations(annot)}
}

func UndefinedKeyword(annot ...Annotations) *Keyword { return keyword(KindUndefined, annot) }
func VoidKeyword(annot ...Annotations) *Keyword      { return keyword(KindVoid, annot) }
func NeverKeyword(annot ...Annotations) *Keyword     { return keyword(KindNever, annot) }
func UnknownKeyword(annot ...Annotations) *Keyword   { return keyword(KindUnknown, annot) }
func AnyKeyword(annot ...Annotations) *Keyword       { return keyword(KindAny, annot) }
func StringKeyword(annot ...Annotations) *Keyword    { return keyword(KindString, annot) }
func NumberKeyword(annot ...Annotations) *Keyword    { return keyword(KindNumber, annot) }
func BooleanKeyword(annot ...Annotations) *Keyword   { return keyword(KindBoolean, annot) }
func BigIntKeyword(annot ...Annotations) *Keyword    { return keyword(KindBigInt, annot) }
func SymbolKeyword(annot ...Annotations) *Keyword    { return keyword(KindSymbol, annot) }
func ObjectKeyword(annot ...Annotations) *Keyword    { return keyword(KindObject, annot) }

// ---- scalars ----

// NewLiteral builds an exact-value node. Accepted value classes: string,
// bool, nil, int/int64/float64/json.Number, *big.Int.
func NewLiteral(v any, annot ...Annotations) (*Literal, error) {
	switch v.(type) {
	case string, bool, nil, int, int64, float64, json.Number, *big.Int:
		return &Literal{Value: v, annot: mergeAnnotations(annot)}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrBadLiteral, v)
	}
}

// MustLiteral is NewLiteral panicking on invalid values. Intended for
// statically known literals.
func MustLiteral(v any, annot ...Annotations) *Literal {
	l, err := NewLiteral(v, annot...)
	if err != nil {
		panic(err)
	}
	return l
}

// NewUniqueSymbol builds an exact-identity node for sym.
func NewUniqueSymbol(sym *Symbol, annot ...Annotations) *UniqueSymbol {
	return &UniqueSymbol{Sym: sym, annot: mergeAnnotations(annot)}
}

// NewEnums builds a node matching any of the listed member values.
func NewEnums(members []EnumMember, annot ...Annotations) (*Enums, error) {
	for _, m := range members {
		switch m.Value.(type) {
		case string, int, int64, float64, json.Number:
		default:
			return nil, fmt.Errorf("ast: enum member %q must hold a string or number, got %T", m.Name, m.Value)
		}
	}
	ms := make([]EnumMember, len(members))
	copy(ms, members)
	return &Enums{Members: ms, annot: mergeAnnotations(annot)}, nil
}

// ---- tuple ----

// NewTuple validates element ordering and builds a tuple node. rest may be
// nil (no rest element); when non-nil it must be non-empty.
func NewTuple(elements []Element, rest []AST, isReadonly bool, annot ...Annotations) (*Tuple, error) {
	seenOptional := false
	for _, el := range elements {
		if el.IsOptional {
			seenOptional = true
			continue
		}
		if seenOptional {
			return nil, ErrRequiredAfterOptional
		}
	}
	if rest != nil && len(rest) == 0 {
		return nil, ErrEmptyRest
	}
	els := make([]Element, len(elements))
	copy(els, elements)
	var rs []AST
	if rest != nil {
		rs = make([]AST, len(rest))
		copy(rs, rest)
	}
	return &Tuple{Elements: els, Rest: rs, IsReadonly: isReadonly, annot: mergeAnnotations(annot)}, nil
}

// MustTuple is NewTuple panicking on invariant violations.
func MustTuple(elements []Element, rest []AST, isReadonly bool, annot ...Annotations) *Tuple {
	t, err := NewTuple(elements, rest, isReadonly, annot...)
	if err != nil {
		panic(err)
	}
	return t
}

// AppendElement returns a new tuple with e appended. A required element may
// not follow an optional one, and an optional element may not follow a rest
// element; a required element after a rest joins the trailing rest types.
func (t *Tuple) AppendElement(e Element) (*Tuple, error) {
	if t.Rest != nil {
		if e.IsOptional {
			return nil, ErrOptionalAfterRest
		}
		rest := append(append([]AST{}, t.Rest...), e.Type)
		return &Tuple{Elements: t.Elements, Rest: rest, IsReadonly: t.IsReadonly, AllowUnexpected: t.AllowUnexpected, annot: t.annot}, nil
	}
	if n := len(t.Elements); n > 0 && t.Elements[n-1].IsOptional && !e.IsOptional {
		return nil, ErrRequiredAfterOptional
	}
	els := append(append([]Element{}, t.Elements...), e)
	return &Tuple{Elements: els, Rest: nil, IsReadonly: t.IsReadonly, AllowUnexpected: t.AllowUnexpected, annot: t.annot}, nil
}

// AppendRestElement returns a new tuple with a rest element of type a. It
// fails when a rest element is already present.
func (t *Tuple) AppendRestElement(a AST) (*Tuple, error) {
	if t.Rest != nil {
		return nil, ErrRestAfterRest
	}
	return &Tuple{Elements: t.Elements, Rest: []AST{a}, IsReadonly: t.IsReadonly, AllowUnexpected: t.AllowUnexpected, annot: t.annot}, nil
}

// WithAllowUnexpected returns a copy of the tuple with the excess-index
// exemption toggled.
func (t *Tuple) WithAllowUnexpected(allow bool) *Tuple {
	cp := &Tuple{Elements: t.Elements, Rest: t.Rest, IsReadonly: t.IsReadonly, AllowUnexpected: allow, annot: t.annot}
	return cp
}

// ---- struct ----

// NewStruct validates keys and builds a struct node with fields and index
// signatures sorted ascending by the cardinality of their value type.
func NewStruct(fields []Field, indexes []IndexSignature, annot ...Annotations) (*Struct, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		rk := f.Key.RuntimeKey()
		if _, dup := seen[rk]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, f.Key)
		}
		seen[rk] = struct{}{}
	}
	for _, ix := range indexes {
		if _, err := IndexKeyDomain(ix.Key); err != nil {
			return nil, err
		}
	}
	fs := make([]Field, len(fields))
	copy(fs, fields)
	sort.SliceStable(fs, func(i, j int) bool {
		return Cardinality(fs[i].Type) < Cardinality(fs[j].Type)
	})
	ixs := make([]IndexSignature, len(indexes))
	copy(ixs, indexes)
	sort.SliceStable(ixs, func(i, j int) bool {
		return Cardinality(ixs[i].Type) < Cardinality(ixs[j].Type)
	})
	return &Struct{Fields: fs, Indexes: ixs, annot: mergeAnnotations(annot)}, nil
}

// MustStruct is NewStruct panicking on invalid input.
func MustStruct(fields []Field, indexes []IndexSignature, annot ...Annotations) *Struct {
	s, err := NewStruct(fields, indexes, annot...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithAllowUnexpected returns a copy of the struct with the excess-key
// exemption toggled.
func (s *Struct) WithAllowUnexpected(allow bool) *Struct {
	return &Struct{Fields: s.Fields, Indexes: s.Indexes, AllowUnexpected: allow, annot: s.annot}
}

// IndexKeyDomain resolves an index signature key to its base domain kind
// (KindString, KindNumber or KindSymbol), unwrapping refinements and
// aliases.
func IndexKeyDomain(key AST) (Kind, error) {
	switch n := key.(type) {
	case *Keyword:
		switch n.Kind() {
		case KindString, KindNumber, KindSymbol:
			return n.Kind(), nil
		}
	case *Refinement:
		return IndexKeyDomain(n.From)
	case *TypeAlias:
		return IndexKeyDomain(n.Type)
	}
	return 0, ErrBadIndexKey
}

// ---- union ----

// NewUnion normalizes candidates: nested unions are flattened, duplicate
// members (structural identity) removed, and the result sorted descending
// by weight. Zero members collapse to never, a single member to itself.
func NewUnion(members ...AST) AST {
	return NewUnionAnnotated(members, nil)
}

// NewUnionAnnotated is NewUnion with annotations attached to the resulting
// node when it remains a union.
func NewUnionAnnotated(members []AST, annot Annotations) AST {
	flat := make([]AST, 0, len(members))
	var flatten func(ms []AST)
	flatten = func(ms []AST) {
		for _, m := range ms {
			if u, ok := m.(*Union); ok {
				flatten(u.Members)
				continue
			}
			flat = append(flat, m)
		}
	}
	flatten(members)

	uniq := flat[:0]
	for _, m := range flat {
		dup := false
		for _, u := range uniq {
			if Equal(u, m) {
				dup = true
				break
			}
		}
		if !dup {
			uniq = append(uniq, m)
		}
	}

	switch len(uniq) {
	case 0:
		return NeverKeyword(annot)
	case 1:
		return uniq[0]
	}
	sorted := make([]AST, len(uniq))
	copy(sorted, uniq)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Weight(sorted[i]) > Weight(sorted[j])
	})
	return &Union{Members: sorted, annot: annot}
}

// ---- lazy, refinement, alias ----

// NewLazy wraps a zero-argument producer. The producer is invoked at most
// once, on first traversal, so self-referential schemas terminate.
func NewLazy(f func() AST, annot ...Annotations) *Lazy {
	return &Lazy{f: f, annot: mergeAnnotations(annot)}
}

// NewRefinement narrows from with a synchronous predicate. meta is opaque
// caller data carried alongside.
func NewRefinement(from AST, predicate func(v any) bool, meta any, annot ...Annotations) *Refinement {
	return &Refinement{From: from, Predicate: predicate, Meta: meta, annot: mergeAnnotations(annot)}
}

// NewAsyncRefinement narrows from with a predicate that may suspend. The
// engine only runs it when the caller enables the async capability.
func NewAsyncRefinement(from AST, predicate func(ctx context.Context, v any) (bool, error), meta any, annot ...Annotations) *Refinement {
	return &Refinement{From: from, AsyncPredicate: predicate, Meta: meta, annot: mergeAnnotations(annot)}
}

// NewTypeAlias wraps a node transparently, optionally with an asymmetric
// transform.
func NewTypeAlias(typeParams []AST, typ AST, tf *Transform, annot ...Annotations) *TypeAlias {
	var ps []AST
	if len(typeParams) > 0 {
		ps = make([]AST, len(typeParams))
		copy(ps, typeParams)
	}
	return &TypeAlias{TypeParams: ps, Type: typ, Transform: tf, annot: mergeAnnotations(annot)}
}
