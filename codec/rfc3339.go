// Package codec provides ready-made asymmetric transforms for TypeAlias
// nodes: the wire side is validated by the wrapped schema, the transform
// converts between wire and canonical representations.
package codec

import (
	"context"
	"fmt"
	"time"

	"github.com/strukt-dev/strukt/ast"
)

// RFC3339 returns a transform converting RFC3339 strings (wire) to
// time.Time (canonical) and back. Attach it to a TypeAlias wrapping a
// string schema; Time builds that alias directly.
func RFC3339() *ast.Transform {
	return &ast.Transform{
		Decode: func(ctx context.Context, v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("codec: expected string, got %T", v)
			}
			return parseRFC3339(s)
		},
		Encode: func(ctx context.Context, v any) (any, error) {
			t, ok := v.(time.Time)
			if !ok {
				return nil, fmt.Errorf("codec: expected time.Time, got %T", v)
			}
			return formatRFC3339Canonical(t), nil
		},
	}
}

// Time returns a TypeAlias node accepting RFC3339 strings on the wire and
// decoding to time.Time.
func Time(annot ...ast.Annotations) *ast.TypeAlias {
	return ast.NewTypeAlias(nil, ast.StringKeyword(), RFC3339(), annot...)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
