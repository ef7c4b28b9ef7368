package strukt

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/strukt-dev/strukt/ast"
)

// symbolKeyPrefix mirrors ast.Symbol.RuntimeKey.
const symbolKeyPrefix = "@@strukt/symbol/"

// runStruct matches a generic keyed object. Fields iterate in their stored
// (cardinality-ascending) order so cheap, highly selective checks run
// before expensive structural ones; index signatures then claim remaining
// keys of their domain; leftovers fall under the excess-property policy.
func runStruct(ctx context.Context, s *ast.Struct, v any, opt ParseOpt, dir direction) (any, []ParseIssue) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, []ParseIssue{TypeIssue{Expected: s, Actual: v}}
	}
	out := make(map[string]any, len(m))
	covered := make(map[string]bool, len(m))
	var issues []ParseIssue

	for _, f := range s.Fields {
		rk := f.Key.RuntimeKey()
		if val, exists := m[rk]; exists {
			covered[rk] = true
			res, child := run(ctx, f.Type, val, opt, dir)
			if len(child) > 0 {
				issues = append(issues, KeyIssue{Key: f.Key, Issues: child})
				if opt.Errors == ErrorsFirst {
					return nil, issues
				}
				continue
			}
			out[rk] = res
			continue
		}
		if f.IsOptional {
			continue
		}
		issues = append(issues, KeyIssue{Key: f.Key, Issues: []ParseIssue{MissingIssue{}}})
		if opt.Errors == ErrorsFirst {
			return nil, issues
		}
	}

	var rest []string
	if len(s.Indexes) > 0 || (!s.AllowUnexpected && opt.OnExcessProperty == ExcessError) {
		rest = make([]string, 0, len(m))
		for k := range m {
			if !covered[k] {
				rest = append(rest, k)
			}
		}
		sort.Strings(rest)
	}

	for _, ix := range s.Indexes {
		domain, err := ast.IndexKeyDomain(ix.Key)
		if err != nil {
			continue
		}
		for _, k := range rest {
			if covered[k] || !keyInDomain(k, domain) {
				continue
			}
			covered[k] = true
			res, child := run(ctx, ix.Type, m[k], opt, dir)
			if len(child) > 0 {
				issues = append(issues, KeyIssue{Key: ast.StringKey(k), Issues: child})
				if opt.Errors == ErrorsFirst {
					return nil, issues
				}
				continue
			}
			out[k] = res
		}
	}

	if !s.AllowUnexpected && opt.OnExcessProperty == ExcessError {
		for _, k := range rest {
			if covered[k] {
				continue
			}
			issues = append(issues, KeyIssue{Key: ast.StringKey(k), Issues: []ParseIssue{UnexpectedIssue{Actual: m[k]}}})
			if opt.Errors == ErrorsFirst {
				return nil, issues
			}
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

// keyInDomain reports whether a runtime key belongs to an index signature
// domain. Symbol keys occupy a reserved prefix; the number domain covers
// keys that are numeric text; the string domain covers every non-symbol
// key.
func keyInDomain(k string, domain ast.Kind) bool {
	isSymbol := strings.HasPrefix(k, symbolKeyPrefix)
	switch domain {
	case ast.KindSymbol:
		return isSymbol
	case ast.KindNumber:
		if isSymbol {
			return false
		}
		_, err := strconv.ParseFloat(k, 64)
		return err == nil
	case ast.KindString:
		return !isSymbol
	default:
		return false
	}
}
