package strukt_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	strukt "github.com/strukt-dev/strukt"
	"github.com/strukt-dev/strukt/ast"
	"github.com/strukt-dev/strukt/codec"
)

func TestEncode_AliasRunsHookBeforeType(t *testing.T) {
	ctx := context.Background()
	schema := ast.MustStruct([]ast.Field{
		{Key: ast.StringKey("at"), Type: codec.Time()},
	}, nil)

	decoded, err := strukt.Decode(ctx, schema, map[string]any{"at": "2024-01-02T03:04:05Z"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	at, ok := decoded.(map[string]any)["at"].(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %#v", decoded)
	}
	if at.Year() != 2024 || at.Month() != time.January {
		t.Fatalf("unexpected time: %v", at)
	}

	encoded, err := strukt.Encode(ctx, schema, decoded)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]any{"at": "2024-01-02T03:04:05Z"}
	if !reflect.DeepEqual(encoded, want) {
		t.Fatalf("round trip diverged: %#v", encoded)
	}
}

func TestEncode_HookTypeMismatch(t *testing.T) {
	ctx := context.Background()
	// encoding a non-time value through the RFC3339 transform fails in the hook
	_, err := strukt.Encode(ctx, codec.Time(), "already-a-string")
	pe, ok := strukt.AsParseError(err)
	if !ok {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if _, ok := pe.Issues[0].(strukt.TypeIssue); !ok {
		t.Fatalf("expected a type issue, got %#v", pe.Issues[0])
	}
}

func TestEncode_RefinementGuardsCanonicalValue(t *testing.T) {
	ctx := context.Background()
	positive := ast.NewRefinement(ast.NumberKeyword(), func(v any) bool {
		f, ok := ast.NumericValue(v)
		return ok && f > 0
	}, nil)

	if out, err := strukt.Encode(ctx, positive, 5); err != nil || out != 5 {
		t.Fatalf("unexpected result: %v, %v", out, err)
	}
	if _, err := strukt.Encode(ctx, positive, -1); err == nil {
		t.Fatalf("predicate should guard the value before conversion")
	}
}

func TestEncode_IdentityTransformIsTransparent(t *testing.T) {
	ctx := context.Background()
	alias := ast.NewTypeAlias(nil, ast.StringKeyword(), codec.Identity())

	out, err := strukt.Decode(ctx, alias, "v")
	if err != nil || out != "v" {
		t.Fatalf("unexpected result: %v, %v", out, err)
	}
	out, err = strukt.Encode(ctx, alias, "v")
	if err != nil || out != "v" {
		t.Fatalf("unexpected result: %v, %v", out, err)
	}
}

func TestEncode_StructMirrorsDecode(t *testing.T) {
	ctx := context.Background()
	schema := ast.MustStruct([]ast.Field{
		{Key: ast.StringKey("id"), Type: ast.StringKeyword()},
		{Key: ast.StringKey("tags"), Type: ast.MustTuple(nil, []ast.AST{ast.StringKeyword()}, false), IsOptional: true},
	}, nil)
	in := map[string]any{"id": "a", "tags": []any{"x", "y"}}

	out, err := strukt.Encode(ctx, schema, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("unexpected output: %#v", out)
	}

	_, err = strukt.Encode(ctx, schema, map[string]any{"tags": []any{1}}, strukt.ParseOpt{Errors: strukt.ErrorsAll})
	pe, _ := strukt.AsParseError(err)
	flat := pe.Flatten()
	if len(flat) != 2 {
		t.Fatalf("expected missing id and bad tag, got %+v", flat)
	}
}
