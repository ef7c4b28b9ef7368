package strukt

import (
	"context"
	"math/big"

	"github.com/strukt-dev/strukt/ast"
)

// direction selects which side of the codec a traversal serves. Decode and
// encode share one traversal shape; only refinement and alias hooks care.
type direction int

const (
	dirDecode direction = iota
	dirEncode
)

// run dispatches on the node tag. It returns either a value or a non-empty
// issue sequence, never both.
func run(ctx context.Context, node ast.AST, v any, opt ParseOpt, dir direction) (any, []ParseIssue) {
	switch n := node.(type) {
	case *ast.Keyword:
		return runKeyword(n, v)
	case *ast.Literal:
		if scalarMatch(n.Value, v) {
			return v, nil
		}
		return nil, []ParseIssue{TypeIssue{Expected: n, Actual: v}}
	case *ast.UniqueSymbol:
		if s, ok := v.(*ast.Symbol); ok && s == n.Sym {
			return v, nil
		}
		return nil, []ParseIssue{TypeIssue{Expected: n, Actual: v}}
	case *ast.Enums:
		for _, m := range n.Members {
			if scalarMatch(m.Value, v) {
				return v, nil
			}
		}
		return nil, []ParseIssue{TypeIssue{Expected: n, Actual: v}}
	case *ast.Refinement:
		return runRefinement(ctx, n, v, opt, dir)
	case *ast.TypeAlias:
		return runTypeAlias(ctx, n, v, opt, dir)
	case *ast.Lazy:
		return run(ctx, n.Resolve(), v, opt, dir)
	case *ast.Tuple:
		return runTuple(ctx, n, v, opt, dir)
	case *ast.Struct:
		return runStruct(ctx, n, v, opt, dir)
	case *ast.Union:
		return runUnion(ctx, n, v, opt, dir)
	default:
		return nil, []ParseIssue{TypeIssue{Expected: node, Actual: v}}
	}
}

func runKeyword(n *ast.Keyword, v any) (any, []ParseIssue) {
	ok := false
	switch n.Kind() {
	case ast.KindUndefined, ast.KindVoid:
		ok = v == Undefined
	case ast.KindNever:
		ok = false
	case ast.KindUnknown, ast.KindAny:
		ok = true
	case ast.KindString:
		_, ok = v.(string)
	case ast.KindNumber:
		_, ok = ast.NumericValue(v)
	case ast.KindBoolean:
		_, ok = v.(bool)
	case ast.KindBigInt:
		_, ok = v.(*big.Int)
	case ast.KindSymbol:
		_, ok = v.(*ast.Symbol)
	case ast.KindObject:
		switch v.(type) {
		case map[string]any, []any:
			ok = true
		}
	}
	if !ok {
		return nil, []ParseIssue{TypeIssue{Expected: n, Actual: v}}
	}
	return v, nil
}

// runRefinement decodes through the underlying type, then applies the
// predicate to the decoded value. On encode the predicate guards the
// canonical value before it is converted back.
func runRefinement(ctx context.Context, n *ast.Refinement, v any, opt ParseOpt, dir direction) (any, []ParseIssue) {
	if dir == dirEncode {
		if iss := checkPredicates(ctx, n, v, opt); iss != nil {
			return nil, iss
		}
		return run(ctx, n.From, v, opt, dir)
	}
	out, issues := run(ctx, n.From, v, opt, dir)
	if len(issues) > 0 {
		return nil, issues
	}
	if iss := checkPredicates(ctx, n, out, opt); iss != nil {
		return nil, iss
	}
	return out, nil
}

func checkPredicates(ctx context.Context, n *ast.Refinement, v any, opt ParseOpt) []ParseIssue {
	if n.Predicate != nil && !n.Predicate(v) {
		return []ParseIssue{TypeIssue{Expected: n, Actual: v}}
	}
	if n.AsyncPredicate != nil {
		if !opt.AllowAsync {
			return []ParseIssue{ForbiddenIssue{}}
		}
		ok, err := n.AsyncPredicate(ctx, v)
		if err != nil {
			return []ParseIssue{TypeIssue{Expected: n, Actual: v, Message: err.Error()}}
		}
		if !ok {
			return []ParseIssue{TypeIssue{Expected: n, Actual: v}}
		}
	}
	return nil
}

// runTypeAlias is transparent for structure and applies the asymmetric
// transform hooks: decode runs the wrapped type first then the decode hook,
// encode runs the encode hook first then the wrapped type.
func runTypeAlias(ctx context.Context, n *ast.TypeAlias, v any, opt ParseOpt, dir direction) (any, []ParseIssue) {
	if dir == dirEncode {
		w := v
		if n.Transform != nil && n.Transform.Encode != nil {
			res, err := n.Transform.Encode(ctx, v)
			if err != nil {
				return nil, hookIssues(n, v, err)
			}
			w = res
		}
		return run(ctx, n.Type, w, opt, dir)
	}
	out, issues := run(ctx, n.Type, v, opt, dir)
	if len(issues) > 0 {
		return nil, issues
	}
	if n.Transform != nil && n.Transform.Decode != nil {
		res, err := n.Transform.Decode(ctx, out)
		if err != nil {
			return nil, hookIssues(n, v, err)
		}
		out = res
	}
	return out, nil
}

// hookIssues propagates hook-reported ParseErrors verbatim and tags any
// other hook failure as a type mismatch against the alias.
func hookIssues(n *ast.TypeAlias, v any, err error) []ParseIssue {
	if pe, ok := AsParseError(err); ok {
		return pe.Issues
	}
	return []ParseIssue{TypeIssue{Expected: n, Actual: v, Message: err.Error()}}
}

// scalarMatch compares a literal/enum scalar against a runtime value.
func scalarMatch(want, v any) bool {
	if want == nil {
		return v == nil
	}
	if wb, ok := want.(*big.Int); ok {
		vb, ok := v.(*big.Int)
		return ok && wb.Cmp(vb) == 0
	}
	if wf, ok := ast.NumericValue(want); ok {
		vf, ok := ast.NumericValue(v)
		return ok && wf == vf
	}
	return want == v
}
