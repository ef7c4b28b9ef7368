package ast

import (
	"fmt"
	"strconv"
)

// KeyOf computes the type of the keys a node accepts.
//
// For a struct the result is the union of its field keys (as literal or
// unique-symbol nodes) with its index signature key domains, excluding
// field keys already covered by an index signature domain. For a union it
// is the intersection of the members' key types. never and any accept the
// full {string, number, symbol} key set. Aliases, lazy nodes and
// refinements delegate; every other node has no keys.
func KeyOf(a AST) AST {
	switch n := a.(type) {
	case *Struct:
		domains := make(map[Kind]bool, len(n.Indexes))
		members := make([]AST, 0, len(n.Fields)+len(n.Indexes))
		for _, ix := range n.Indexes {
			d, _ := IndexKeyDomain(ix.Key) // validated at construction
			domains[d] = true
		}
		for _, f := range n.Fields {
			if f.Key.IsSymbol() {
				if !domains[KindSymbol] {
					members = append(members, NewUniqueSymbol(f.Key.Symbol))
				}
				continue
			}
			if !domains[KindString] {
				members = append(members, MustLiteral(f.Key.Name))
			}
		}
		for _, ix := range n.Indexes {
			d, _ := IndexKeyDomain(ix.Key)
			members = append(members, keyword(d, nil))
		}
		return NewUnion(members...)
	case *Union:
		var acc []AST
		for i, m := range n.Members {
			set := keySet(KeyOf(m))
			if i == 0 {
				acc = set
				continue
			}
			acc = intersectKeys(acc, set)
		}
		return NewUnion(acc...)
	case *Lazy:
		return KeyOf(n.Resolve())
	case *TypeAlias:
		return KeyOf(n.Type)
	case *Refinement:
		return KeyOf(n.From)
	default:
		switch a.Kind() {
		case KindNever, KindAny:
			return NewUnion(StringKeyword(), NumberKeyword(), SymbolKeyword())
		}
		return NeverKeyword()
	}
}

func keySet(a AST) []AST {
	switch n := a.(type) {
	case *Union:
		return n.Members
	default:
		if a.Kind() == KindNever {
			return nil
		}
		return []AST{a}
	}
}

func intersectKeys(a, b []AST) []AST {
	var out []AST
	for _, x := range a {
		for _, y := range b {
			if Equal(x, y) {
				out = append(out, x)
				break
			}
		}
	}
	return out
}

// Record builds a struct whose shape is derived by case-splitting the key
// type: literal and unique-symbol keys become fields, primitive key domains
// become index signatures, unions distribute. A refinement or any
// non-key-like node is a construction error.
func Record(key AST, value AST, isReadonly bool, annot ...Annotations) (*Struct, error) {
	var fields []Field
	var indexes []IndexSignature
	var split func(k AST) error
	split = func(k AST) error {
		switch n := k.(type) {
		case *Literal:
			name, err := literalKeyName(n.Value)
			if err != nil {
				return err
			}
			fields = append(fields, Field{Key: StringKey(name), Type: value, IsReadonly: isReadonly})
			return nil
		case *UniqueSymbol:
			fields = append(fields, Field{Key: SymbolKey(n.Sym), Type: value, IsReadonly: isReadonly})
			return nil
		case *Enums:
			for _, m := range n.Members {
				name, err := literalKeyName(m.Value)
				if err != nil {
					return err
				}
				fields = append(fields, Field{Key: StringKey(name), Type: value, IsReadonly: isReadonly})
			}
			return nil
		case *Keyword:
			switch n.Kind() {
			case KindString, KindNumber, KindSymbol:
				indexes = append(indexes, IndexSignature{Key: n, Type: value, IsReadonly: isReadonly})
				return nil
			}
			return fmt.Errorf("ast: record key type %v is not key-like", n.Kind())
		case *Union:
			for _, m := range n.Members {
				if err := split(m); err != nil {
					return err
				}
			}
			return nil
		case *TypeAlias:
			return split(n.Type)
		case *Lazy:
			return split(n.Resolve())
		case *Refinement:
			return fmt.Errorf("ast: record key type must not contain a refinement")
		default:
			return fmt.Errorf("ast: record key type %v is not key-like", k.Kind())
		}
	}
	if err := split(key); err != nil {
		return nil, err
	}
	return NewStruct(fields, indexes, annot...)
}

func literalKeyName(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	if f, ok := NumericValue(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("ast: literal key must be a string or number, got %T", v)
}
