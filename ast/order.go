package ast

// Cardinality estimates how many distinct values a node can match. Struct
// fields and index signatures are stored ascending by this value so the
// most selective checks run first.
//
//	Never = 0
//	Literal, Undefined, UniqueSymbol = 1
//	Boolean = 2
//	String, Number, BigInt, Symbol = 3
//	Unknown, Any = 4
//	everything else = 5
//
// TypeAlias delegates to its wrapped type.
func Cardinality(a AST) int {
	switch n := a.(type) {
	case *TypeAlias:
		return Cardinality(n.Type)
	default:
		switch a.Kind() {
		case KindNever:
			return 0
		case KindLiteral, KindUndefined, KindUniqueSymbol:
			return 1
		case KindBoolean:
			return 2
		case KindString, KindNumber, KindBigInt, KindSymbol:
			return 3
		case KindUnknown, KindAny:
			return 4
		default:
			return 5
		}
	}
}

// lazyWeight is the fixed weight assigned to lazy nodes; their structure is
// unknown until resolution, so they rank above plain structured nodes.
const lazyWeight = 10

// Weight estimates structural complexity. Union members are stored
// descending by this value so the most specific member is tried first.
func Weight(a AST) int {
	switch n := a.(type) {
	case *Tuple:
		w := len(n.Elements)
		if n.Rest != nil {
			w++
		}
		return w
	case *Struct:
		return len(n.Fields) + len(n.Indexes)
	case *Union:
		sum := 0
		for _, m := range n.Members {
			sum += Weight(m)
		}
		return sum
	case *Lazy:
		return lazyWeight
	case *TypeAlias:
		return Weight(n.Type)
	default:
		return 0
	}
}
