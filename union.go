package strukt

import (
	"context"
	"reflect"

	"github.com/strukt-dev/strukt/ast"
)

// runUnion tries members in their stored (weight-descending) order. A
// single success wins outright; multiple successful object matches are
// merged into one "best" output; when nothing matches, the member failures
// are aggregated into a single path-qualified error.
func runUnion(ctx context.Context, u *ast.Union, v any, opt ParseOpt, dir direction) (any, []ParseIssue) {
	var successes []any
	var failures [][]ParseIssue
	for _, m := range u.Members {
		out, issues := run(ctx, m, v, opt, dir)
		if len(issues) > 0 {
			failures = append(failures, issues)
			continue
		}
		successes = append(successes, out)
		if _, isObject := out.(map[string]any); !isObject {
			// nothing a later member could add to a non-object result
			break
		}
	}

	switch len(successes) {
	case 0:
		return nil, aggregateUnionFailures(failures)
	case 1:
		return successes[0], nil
	}

	// Best-output merge: a key appears in the result when any succeeding
	// member's output contains it; UnionMerge settles conflicting values.
	merged := make(map[string]any)
	sawObject := false
	for _, s := range successes {
		obj, ok := s.(map[string]any)
		if !ok {
			continue
		}
		sawObject = true
		for k, val := range obj {
			if _, exists := merged[k]; exists && opt.UnionMerge == UnionMergeFirstWins {
				continue
			}
			merged[k] = val
		}
	}
	if !sawObject {
		return successes[0], nil
	}
	return merged, nil
}

// aggregateUnionFailures collapses per-member failures. Structurally
// identical issues are reported once; when everything left is a plain
// field-presence failure the keys surface directly (one missing per
// distinct key instead of one per member), otherwise each member's failure
// is wrapped in a union member issue.
func aggregateUnionFailures(failures [][]ParseIssue) []ParseIssue {
	var dedup []ParseIssue
	for _, fs := range failures {
		for _, is := range fs {
			if !containsIssue(dedup, is) {
				dedup = append(dedup, is)
			}
		}
	}
	if allPresenceFailures(dedup) {
		return dedup
	}
	var out []ParseIssue
	for _, fs := range failures {
		um := UnionMemberIssue{Issues: fs}
		if !containsIssue(out, um) {
			out = append(out, um)
		}
	}
	return out
}

func allPresenceFailures(issues []ParseIssue) bool {
	if len(issues) == 0 {
		return false
	}
	for _, is := range issues {
		ki, ok := is.(KeyIssue)
		if !ok {
			return false
		}
		for _, inner := range ki.Issues {
			if _, ok := inner.(MissingIssue); !ok {
				return false
			}
		}
	}
	return true
}

func containsIssue(issues []ParseIssue, is ParseIssue) bool {
	for _, have := range issues {
		if issueEqual(have, is) {
			return true
		}
	}
	return false
}

// issueEqual compares issue trees structurally. AST references inside type
// issues are shared node pointers, so DeepEqual's pointer fast path keeps
// this safe even for nodes holding functions.
func issueEqual(a, b ParseIssue) bool {
	return reflect.DeepEqual(a, b)
}
