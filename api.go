package strukt

import (
	"context"

	"github.com/strukt-dev/strukt/ast"
)

// Decode validates v against node and converts it into its canonical
// in-memory representation. Options follow the trailing-options convention:
// the last ParseOpt wins.
func Decode(ctx context.Context, node ast.AST, v any, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	if opt.Errors == ErrorsFirst {
		ctx = WithFailFast(ctx, true)
	}
	out, issues := run(ctx, node, v, opt, dirDecode)
	if err := newParseError(issues); err != nil {
		return nil, err
	}
	return out, nil
}

// Encode converts a canonical value back into its external representation,
// mirroring Decode with the expected/actual roles swapped.
func Encode(ctx context.Context, node ast.AST, v any, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	if opt.Errors == ErrorsFirst {
		ctx = WithFailFast(ctx, true)
	}
	out, issues := run(ctx, node, v, opt, dirEncode)
	if err := newParseError(issues); err != nil {
		return nil, err
	}
	return out, nil
}

// Is reports whether v conforms to node.
func Is(ctx context.Context, node ast.AST, v any, opts ...ParseOpt) bool {
	_, err := Decode(ctx, node, v, opts...)
	return err == nil
}

// SafeDecode decodes v, returning (nil, false) on validation failure.
func SafeDecode(ctx context.Context, node ast.AST, v any, opts ...ParseOpt) (any, bool) {
	out, err := Decode(ctx, node, v, opts...)
	if err != nil {
		return nil, false
	}
	return out, true
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return ParseOpt{}
}

// ---- run-time context switches (exported for custom hooks) ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context marking fail-fast behavior. It is
// set by Decode/Encode from ParseOpt and may be consulted by custom hooks.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current run stops on the first issue.
func IsFailFast(ctx context.Context) bool {
	b, _ := ctx.Value(_ctxKeyFailFast).(bool)
	return b
}
