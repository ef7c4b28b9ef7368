package codec

import (
	"context"

	"github.com/strukt-dev/strukt/ast"
)

// Identity returns a transform that passes values through unchanged in both
// directions. Useful as an explicit no-op hook on aliases that exist only
// for naming or annotations.
func Identity() *ast.Transform {
	pass := func(ctx context.Context, v any) (any, error) { return v, nil }
	return &ast.Transform{Decode: pass, Encode: pass}
}
