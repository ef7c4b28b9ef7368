package ast_test

import (
	"errors"
	"testing"

	"github.com/strukt-dev/strukt/ast"
)

func TestUnion_FlattenDedupCollapse(t *testing.T) {
	s := ast.StringKeyword()
	n := ast.NumberKeyword()

	// zero candidates collapse to never
	if got := ast.NewUnion(); got.Kind() != ast.KindNever {
		t.Fatalf("expected never, got kind %v", got.Kind())
	}
	// a single candidate is returned unchanged
	if got := ast.NewUnion(s); got != ast.AST(s) {
		t.Fatalf("expected the sole member back, got %#v", got)
	}
	// nested unions are absorbed and duplicates removed
	inner := ast.NewUnion(s, n)
	got := ast.NewUnion(inner, ast.StringKeyword(), ast.BooleanKeyword())
	u, ok := got.(*ast.Union)
	if !ok {
		t.Fatalf("expected a union, got %#v", got)
	}
	if len(u.Members) != 3 {
		t.Fatalf("expected 3 members after flatten+dedup, got %d", len(u.Members))
	}
	for _, m := range u.Members {
		if _, nested := m.(*ast.Union); nested {
			t.Fatalf("nested union survived flattening: %#v", m)
		}
	}
}

func TestUnion_MembersSortedByWeightDescending(t *testing.T) {
	small := ast.MustStruct([]ast.Field{
		{Key: ast.StringKey("a"), Type: ast.StringKeyword()},
	}, nil)
	big := ast.MustStruct([]ast.Field{
		{Key: ast.StringKey("a"), Type: ast.StringKeyword()},
		{Key: ast.StringKey("b"), Type: ast.NumberKeyword()},
		{Key: ast.StringKey("c"), Type: ast.BooleanKeyword()},
	}, nil)

	u, ok := ast.NewUnion(small, big).(*ast.Union)
	if !ok {
		t.Fatalf("expected a union")
	}
	if ast.Weight(u.Members[0]) < ast.Weight(u.Members[1]) {
		t.Fatalf("members not sorted descending by weight: %d < %d",
			ast.Weight(u.Members[0]), ast.Weight(u.Members[1]))
	}
	if u.Members[0] != ast.AST(big) {
		t.Fatalf("heavier member should come first")
	}
}

func TestStruct_FieldsSortedByCardinalityAscending(t *testing.T) {
	s := ast.MustStruct([]ast.Field{
		{Key: ast.StringKey("payload"), Type: ast.MustStruct(nil, nil)},
		{Key: ast.StringKey("name"), Type: ast.StringKeyword()},
		{Key: ast.StringKey("kind"), Type: ast.MustLiteral("event")},
		{Key: ast.StringKey("ok"), Type: ast.BooleanKeyword()},
	}, nil)

	prev := -1
	for _, f := range s.Fields {
		c := ast.Cardinality(f.Type)
		if c < prev {
			t.Fatalf("fields not sorted ascending by cardinality: %v", s.Fields)
		}
		prev = c
	}
	if s.Fields[0].Key.Name != "kind" {
		t.Fatalf("literal field should sort first, got %q", s.Fields[0].Key.Name)
	}
	if s.Fields[len(s.Fields)-1].Key.Name != "payload" {
		t.Fatalf("structured field should sort last, got %q", s.Fields[len(s.Fields)-1].Key.Name)
	}
}

func TestStruct_DuplicateFieldRejected(t *testing.T) {
	_, err := ast.NewStruct([]ast.Field{
		{Key: ast.StringKey("a"), Type: ast.StringKeyword()},
		{Key: ast.StringKey("a"), Type: ast.NumberKeyword()},
	}, nil)
	if !errors.Is(err, ast.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestStruct_IndexSignatureKeyValidated(t *testing.T) {
	_, err := ast.NewStruct(nil, []ast.IndexSignature{
		{Key: ast.BooleanKeyword(), Type: ast.StringKeyword()},
	})
	if !errors.Is(err, ast.ErrBadIndexKey) {
		t.Fatalf("expected ErrBadIndexKey, got %v", err)
	}
}

func TestTuple_AppendInvariants(t *testing.T) {
	base := ast.MustTuple([]ast.Element{{Type: ast.StringKeyword()}}, nil, false)

	withRest, err := base.AppendRestElement(ast.NumberKeyword())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := withRest.AppendRestElement(ast.BooleanKeyword()); !errors.Is(err, ast.ErrRestAfterRest) {
		t.Fatalf("expected ErrRestAfterRest, got %v", err)
	}
	if _, err := withRest.AppendElement(ast.Element{Type: ast.BooleanKeyword(), IsOptional: true}); !errors.Is(err, ast.ErrOptionalAfterRest) {
		t.Fatalf("expected ErrOptionalAfterRest, got %v", err)
	}
	// a required element after a rest joins the trailing rest types
	trailing, err := withRest.AppendElement(ast.Element{Type: ast.BooleanKeyword()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(trailing.Rest) != 2 {
		t.Fatalf("expected trailing rest type, got %v", trailing.Rest)
	}

	withOpt, err := base.AppendElement(ast.Element{Type: ast.NumberKeyword(), IsOptional: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := withOpt.AppendElement(ast.Element{Type: ast.BooleanKeyword()}); !errors.Is(err, ast.ErrRequiredAfterOptional) {
		t.Fatalf("expected ErrRequiredAfterOptional, got %v", err)
	}
}

func TestTuple_NewValidatesElementOrder(t *testing.T) {
	_, err := ast.NewTuple([]ast.Element{
		{Type: ast.StringKeyword(), IsOptional: true},
		{Type: ast.NumberKeyword()},
	}, nil, false)
	if !errors.Is(err, ast.ErrRequiredAfterOptional) {
		t.Fatalf("expected ErrRequiredAfterOptional, got %v", err)
	}
	if _, err := ast.NewTuple(nil, []ast.AST{}, false); !errors.Is(err, ast.ErrEmptyRest) {
		t.Fatalf("expected ErrEmptyRest, got %v", err)
	}
}

func TestLiteral_Validation(t *testing.T) {
	if _, err := ast.NewLiteral(struct{}{}); err == nil {
		t.Fatalf("expected error for non-scalar literal")
	}
	for _, v := range []any{"x", 1, int64(2), 1.5, true, nil} {
		if _, err := ast.NewLiteral(v); err != nil {
			t.Fatalf("unexpected err for %#v: %v", v, err)
		}
	}
}

func TestAnnotations_MergeRightmostWins(t *testing.T) {
	a := ast.Annotations{ast.AnnotationTitle: "left", ast.AnnotationIdentifier: "id"}
	b := ast.Annotations{ast.AnnotationTitle: "right"}
	got := a.Merge(b)
	if got[ast.AnnotationTitle] != "right" {
		t.Fatalf("rightmost should win, got %v", got[ast.AnnotationTitle])
	}
	if got[ast.AnnotationIdentifier] != "id" {
		t.Fatalf("left-only keys should survive, got %v", got)
	}
	if a[ast.AnnotationTitle] != "left" {
		t.Fatalf("merge must not mutate its inputs")
	}
}

func TestLazy_ProducerMemoized(t *testing.T) {
	calls := 0
	l := ast.NewLazy(func() ast.AST {
		calls++
		return ast.StringKeyword()
	})
	first := l.Resolve()
	second := l.Resolve()
	if first != second {
		t.Fatalf("resolve should cache the produced node")
	}
	if calls != 1 {
		t.Fatalf("producer ran %d times, want 1", calls)
	}
}

func TestSymbol_IdentityAndRuntimeKey(t *testing.T) {
	a := ast.NewSymbol("tag")
	b := ast.NewSymbol("tag")
	if a == b {
		t.Fatalf("symbols with equal descriptions must stay distinct")
	}
	if a.RuntimeKey() == b.RuntimeKey() {
		t.Fatalf("runtime keys must be process-unique")
	}
	if !ast.Equal(ast.NewUniqueSymbol(a), ast.NewUniqueSymbol(a)) {
		t.Fatalf("unique symbol nodes over the same symbol should be equal")
	}
	if ast.Equal(ast.NewUniqueSymbol(a), ast.NewUniqueSymbol(b)) {
		t.Fatalf("unique symbol nodes over distinct symbols should differ")
	}
}
