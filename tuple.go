package strukt

import (
	"context"

	"github.com/strukt-dev/strukt/ast"
)

// runTuple matches an ordered sequence. Declared elements are positional;
// positions beyond them are matched against the rest-type sequence (head
// covers the variable middle, subsequent rest types are required trailing
// positions) or fall under the excess-index policy.
func runTuple(ctx context.Context, t *ast.Tuple, v any, opt ParseOpt, dir direction) (any, []ParseIssue) {
	arr, ok := v.([]any)
	if !ok {
		return nil, []ParseIssue{TypeIssue{Expected: t, Actual: v}}
	}
	n := len(arr)
	out := make([]any, 0, n)
	var issues []ParseIssue

	for i, el := range t.Elements {
		if i >= n {
			if el.IsOptional {
				continue // missing-but-optional positions are omitted
			}
			issues = append(issues, IndexIssue{Index: i, Issues: []ParseIssue{MissingIssue{}}})
			if opt.Errors == ErrorsFirst {
				return nil, issues
			}
			continue
		}
		res, child := run(ctx, el.Type, arr[i], opt, dir)
		if len(child) > 0 {
			issues = append(issues, IndexIssue{Index: i, Issues: child})
			if opt.Errors == ErrorsFirst {
				return nil, issues
			}
			continue
		}
		out = append(out, res)
	}

	consumed := len(t.Elements)
	switch {
	case t.Rest != nil:
		head := t.Rest[0]
		tail := t.Rest[1:]
		middleEnd := n - len(tail)
		if middleEnd < consumed {
			middleEnd = consumed
		}
		for i := consumed; i < middleEnd; i++ {
			res, child := run(ctx, head, arr[i], opt, dir)
			if len(child) > 0 {
				issues = append(issues, IndexIssue{Index: i, Issues: child})
				if opt.Errors == ErrorsFirst {
					return nil, issues
				}
				continue
			}
			out = append(out, res)
		}
		for j, tt := range tail {
			i := middleEnd + j
			if i >= n {
				issues = append(issues, IndexIssue{Index: i, Issues: []ParseIssue{MissingIssue{}}})
				if opt.Errors == ErrorsFirst {
					return nil, issues
				}
				continue
			}
			res, child := run(ctx, tt, arr[i], opt, dir)
			if len(child) > 0 {
				issues = append(issues, IndexIssue{Index: i, Issues: child})
				if opt.Errors == ErrorsFirst {
					return nil, issues
				}
				continue
			}
			out = append(out, res)
		}
	case n > consumed && !t.AllowUnexpected && opt.OnExcessProperty == ExcessError:
		for i := consumed; i < n; i++ {
			issues = append(issues, IndexIssue{Index: i, Issues: []ParseIssue{UnexpectedIssue{Actual: arr[i]}}})
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
